package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ActorRef identifies who or what is issuing a command or query.
type ActorRef struct {
	ID   uuid.UUID
	Type string
}

// Pagination supports offset based listings.
type Pagination struct {
	Limit  int
	Offset int
}

// ProfileEvent signals that a profile mutation occurred.
type ProfileEvent struct {
	UserID     uuid.UUID
	ActorID    uuid.UUID
	GoalChange *GoalChange
	OccurredAt time.Time
	Profile    Profile
}

// MacroEvent is emitted after a macro record has been activated.
type MacroEvent struct {
	UserID     uuid.UUID
	ProfileID  uuid.UUID
	ActorID    uuid.UUID
	Record     MacroRecord
	OccurredAt time.Time
}

// IntakeEvent is emitted whenever a daily log changes.
type IntakeEvent struct {
	UserID     uuid.UUID
	ProfileID  uuid.UUID
	Day        time.Time
	Action     string
	ActorID    uuid.UUID
	OccurredAt time.Time
}

// SettingEvent signals setting mutations so downstream systems can
// invalidate caches or push notifications.
type SettingEvent struct {
	UserID     uuid.UUID
	Key        string
	Action     string
	ActorID    uuid.UUID
	OccurredAt time.Time
}

// Hooks groups optional callbacks invoked after key workflows complete.
type Hooks struct {
	AfterProfileChange    func(context.Context, ProfileEvent)
	AfterMacrosCalculated func(context.Context, MacroEvent)
	AfterIntakeChange     func(context.Context, IntakeEvent)
	AfterSettingChange    func(context.Context, SettingEvent)
	AfterActivity         func(context.Context, ActivityRecord)
}

// ActivityRecord describes sink inputs and is shared across sink and query layers.
type ActivityRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ActorID    uuid.UUID
	Verb       string
	ObjectType string
	ObjectID   string
	Channel    string
	IP         string
	Data       map[string]any
	OccurredAt time.Time
}

// ActivitySink is the minimal contract for emitting activity.
type ActivitySink interface {
	Log(context.Context, ActivityRecord) error
}

// ActivityRepository exposes read-side access to activity logs.
type ActivityRepository interface {
	ListActivity(ctx context.Context, filter ActivityFilter) (ActivityPage, error)
}

// ActivityFilter narrows activity feed queries.
type ActivityFilter struct {
	Actor      ActorRef
	UserID     uuid.UUID
	Verbs      []string
	ObjectType string
	Channel    string
	Since      *time.Time
	Until      *time.Time
	Pagination Pagination
}

// Type implements gocommand.Message for query inputs.
func (ActivityFilter) Type() string {
	return "query.activity.feed"
}

// Validate implements gocommand.Message.
func (filter ActivityFilter) Validate() error {
	if filter.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	return nil
}

// ActivityPage represents a paginated feed response.
type ActivityPage struct {
	Records    []ActivityRecord
	Total      int
	NextOffset int
	HasMore    bool
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// Logger captures basic logging hooks used by the service.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator produces UUIDv4 identifiers.
type UUIDGenerator struct{}

// UUID returns a randomly generated UUID.
func (UUIDGenerator) UUID() uuid.UUID { return uuid.New() }

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}

// DayOf truncates t to the calendar date it falls on, expressed as midnight UTC.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
