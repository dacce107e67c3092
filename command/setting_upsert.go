package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/activity"
	"github.com/macromate/go-macromate/pkg/types"
)

// SettingCommandConfig wires dependencies for setting commands.
type SettingCommandConfig struct {
	Repository types.SettingRepository
	Activity   types.ActivitySink
	Hooks      types.Hooks
	Clock      types.Clock
	Guard      access.Guard
}

// SettingUpsertInput stores one user setting.
type SettingUpsertInput struct {
	UserID uuid.UUID
	Key    string
	Value  map[string]any
	Actor  types.ActorRef
	Result *types.SettingRecord
}

// Type implements gocommand.Message.
func (SettingUpsertInput) Type() string {
	return "command.settings.upsert"
}

// Validate implements gocommand.Message.
func (input SettingUpsertInput) Validate() error {
	switch {
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	case strings.TrimSpace(input.Key) == "":
		return ErrSettingKeyRequired
	case len(input.Value) == 0:
		return ErrSettingValueRequired
	default:
		return nil
	}
}

// SettingUpsertCommand creates or replaces a user setting.
type SettingUpsertCommand struct {
	repo  types.SettingRepository
	sink  types.ActivitySink
	hooks types.Hooks
	clock types.Clock
	guard access.Guard
}

// NewSettingUpsertCommand constructs the handler.
func NewSettingUpsertCommand(cfg SettingCommandConfig) *SettingUpsertCommand {
	return &SettingUpsertCommand{
		repo:  cfg.Repository,
		sink:  safeActivitySink(cfg.Activity),
		hooks: safeHooks(cfg.Hooks),
		clock: safeClock(cfg.Clock),
		guard: safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[SettingUpsertInput] = (*SettingUpsertCommand)(nil)

// Execute stores the setting.
func (c *SettingUpsertCommand) Execute(ctx context.Context, input SettingUpsertInput) error {
	if c.repo == nil {
		return types.ErrMissingSettingRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	userID, err := c.guard.Enforce(ctx, input.Actor, types.PolicyActionSettingsWrite, input.UserID)
	if err != nil {
		return err
	}
	stored, err := c.repo.UpsertSetting(ctx, types.SettingRecord{
		UserID: userID,
		Key:    input.Key,
		Value:  cloneMap(input.Value),
	})
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = *stored
	}

	occurredAt := now(c.clock)
	record(ctx, c.sink, c.hooks, types.ActivityRecord{
		UserID:     userID,
		ActorID:    input.Actor.ID,
		Verb:       activity.VerbSettingUpdated,
		ObjectType: "setting",
		ObjectID:   stored.Key,
		Channel:    activity.ChannelSettings,
		Data: map[string]any{
			"key":     stored.Key,
			"version": stored.Version,
		},
		OccurredAt: occurredAt,
	})
	emitSettingHook(ctx, c.hooks, types.SettingEvent{
		UserID:     userID,
		Key:        stored.Key,
		Action:     "upsert",
		ActorID:    input.Actor.ID,
		OccurredAt: occurredAt,
	})
	return nil
}

// SettingDeleteInput removes a user setting so the default applies again.
type SettingDeleteInput struct {
	UserID uuid.UUID
	Key    string
	Actor  types.ActorRef
}

// Type implements gocommand.Message.
func (SettingDeleteInput) Type() string {
	return "command.settings.delete"
}

// Validate implements gocommand.Message.
func (input SettingDeleteInput) Validate() error {
	if input.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	if strings.TrimSpace(input.Key) == "" {
		return ErrSettingKeyRequired
	}
	return nil
}

// SettingDeleteCommand deletes a user setting.
type SettingDeleteCommand struct {
	repo  types.SettingRepository
	sink  types.ActivitySink
	hooks types.Hooks
	clock types.Clock
	guard access.Guard
}

// NewSettingDeleteCommand constructs the handler.
func NewSettingDeleteCommand(cfg SettingCommandConfig) *SettingDeleteCommand {
	return &SettingDeleteCommand{
		repo:  cfg.Repository,
		sink:  safeActivitySink(cfg.Activity),
		hooks: safeHooks(cfg.Hooks),
		clock: safeClock(cfg.Clock),
		guard: safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[SettingDeleteInput] = (*SettingDeleteCommand)(nil)

// Execute deletes the setting.
func (c *SettingDeleteCommand) Execute(ctx context.Context, input SettingDeleteInput) error {
	if c.repo == nil {
		return types.ErrMissingSettingRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	userID, err := c.guard.Enforce(ctx, input.Actor, types.PolicyActionSettingsWrite, input.UserID)
	if err != nil {
		return err
	}
	key := strings.ToLower(strings.TrimSpace(input.Key))
	if err := c.repo.DeleteSetting(ctx, userID, key); err != nil {
		return err
	}
	occurredAt := now(c.clock)
	record(ctx, c.sink, c.hooks, types.ActivityRecord{
		UserID:     userID,
		ActorID:    input.Actor.ID,
		Verb:       activity.VerbSettingUpdated,
		ObjectType: "setting",
		ObjectID:   key,
		Channel:    activity.ChannelSettings,
		Data:       map[string]any{"key": key, "deleted": true},
		OccurredAt: occurredAt,
	})
	emitSettingHook(ctx, c.hooks, types.SettingEvent{
		UserID:     userID,
		Key:        key,
		Action:     "delete",
		ActorID:    input.Actor.ID,
		OccurredAt: occurredAt,
	})
	return nil
}
