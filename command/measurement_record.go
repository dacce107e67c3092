package command

import (
	"context"
	"time"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/activity"
	"github.com/macromate/go-macromate/pkg/types"
)

// MeasurementRecordInput stores a dated body measurement.
type MeasurementRecordInput struct {
	UserID     uuid.UUID
	MeasuredOn time.Time
	WeightKg   float64
	BodyFatPct *float64
	Actor      types.ActorRef
	Result     *types.BodyMeasurement
}

// Type implements gocommand.Message.
func (MeasurementRecordInput) Type() string {
	return "command.profile.measurement.record"
}

// Validate implements gocommand.Message.
func (input MeasurementRecordInput) Validate() error {
	if input.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	if input.WeightKg <= 0 {
		return ErrInvalidWeight
	}
	if input.BodyFatPct != nil && (*input.BodyFatPct <= 0 || *input.BodyFatPct >= 100) {
		return ErrInvalidBodyFat
	}
	return nil
}

// MeasurementRecordCommand appends a measurement and moves the profile's
// current weight to the measured value.
type MeasurementRecordCommand struct {
	profiles     types.ProfileRepository
	measurements types.MeasurementRepository
	sink         types.ActivitySink
	hooks        types.Hooks
	clock        types.Clock
	guard        access.Guard
}

// NewMeasurementRecordCommand constructs the handler.
func NewMeasurementRecordCommand(cfg ProfileCommandConfig) *MeasurementRecordCommand {
	return &MeasurementRecordCommand{
		profiles:     cfg.Repository,
		measurements: cfg.Measurements,
		sink:         safeActivitySink(cfg.Activity),
		hooks:        safeHooks(cfg.Hooks),
		clock:        safeClock(cfg.Clock),
		guard:        safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[MeasurementRecordInput] = (*MeasurementRecordCommand)(nil)

// Execute stores the measurement.
func (c *MeasurementRecordCommand) Execute(ctx context.Context, input MeasurementRecordInput) error {
	if c.profiles == nil {
		return types.ErrMissingProfileRepository
	}
	if c.measurements == nil {
		return types.ErrMissingMeasurementRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	userID, err := c.guard.Enforce(ctx, input.Actor, types.PolicyActionProfileWrite, input.UserID)
	if err != nil {
		return err
	}
	profile, err := profileForUser(ctx, c.profiles, userID)
	if err != nil {
		return err
	}

	occurredAt := now(c.clock)
	measuredOn := input.MeasuredOn
	if measuredOn.IsZero() {
		measuredOn = occurredAt
	}
	m, err := c.measurements.AddMeasurement(ctx, types.BodyMeasurement{
		ProfileID:  profile.ID,
		MeasuredOn: measuredOn,
		WeightKg:   input.WeightKg,
		BodyFatPct: clonePtr(input.BodyFatPct),
	})
	if err != nil {
		return err
	}

	weight := input.WeightKg
	profile.WeightKg = &weight
	updated, _, err := c.profiles.UpdateProfile(ctx, *profile)
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = *m
	}

	data := map[string]any{"weight_kg": m.WeightKg}
	if m.BodyFatPct != nil {
		data["body_fat_pct"] = *m.BodyFatPct
	}
	record(ctx, c.sink, c.hooks, types.ActivityRecord{
		UserID:     userID,
		ActorID:    input.Actor.ID,
		Verb:       activity.VerbMeasurementAdded,
		ObjectType: "body_measurement",
		ObjectID:   m.ID.String(),
		Channel:    activity.ChannelProfile,
		Data:       data,
		OccurredAt: occurredAt,
	})
	emitProfileHook(ctx, c.hooks, types.ProfileEvent{
		UserID:     userID,
		ActorID:    input.Actor.ID,
		OccurredAt: occurredAt,
		Profile:    *updated,
	})
	return nil
}
