package command

import (
	"context"
	"time"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/activity"
	"github.com/macromate/go-macromate/nutrition"
	"github.com/macromate/go-macromate/pkg/types"
)

// MacroCommandConfig wires dependencies for the macro calculator.
type MacroCommandConfig struct {
	Profiles types.ProfileRepository
	Macros   types.MacroRepository
	Activity types.ActivitySink
	Hooks    types.Hooks
	Clock    types.Clock
	Logger   types.Logger
	Guard    access.Guard
}

// MacroCalculateInput requests a recalculation for the user's profile. On
// overrides the calculation date, which defaults to today.
type MacroCalculateInput struct {
	UserID uuid.UUID
	On     *time.Time
	Actor  types.ActorRef
	Result *MacroCalculateResult
}

// MacroCalculateResult carries the calculator payload and, on success, the
// record that became active.
type MacroCalculateResult struct {
	Macros types.MacroResult
	Record *types.MacroRecord
}

// Type implements gocommand.Message.
func (MacroCalculateInput) Type() string {
	return "command.macros.calculate"
}

// Validate implements gocommand.Message.
func (input MacroCalculateInput) Validate() error {
	if input.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	return nil
}

// MacroCalculateCommand runs the calculation pipeline over the stored
// profile and activates the resulting macro record.
type MacroCalculateCommand struct {
	profiles types.ProfileRepository
	macros   types.MacroRepository
	sink     types.ActivitySink
	hooks    types.Hooks
	clock    types.Clock
	logger   types.Logger
	guard    access.Guard
}

// NewMacroCalculateCommand constructs the handler.
func NewMacroCalculateCommand(cfg MacroCommandConfig) *MacroCalculateCommand {
	return &MacroCalculateCommand{
		profiles: cfg.Profiles,
		macros:   cfg.Macros,
		sink:     safeActivitySink(cfg.Activity),
		hooks:    safeHooks(cfg.Hooks),
		clock:    safeClock(cfg.Clock),
		logger:   safeLogger(cfg.Logger),
		guard:    safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[MacroCalculateInput] = (*MacroCalculateCommand)(nil)

// Execute calculates macros. A profile missing required metrics is not an
// error: the error payload is returned through Result and nothing is stored.
func (c *MacroCalculateCommand) Execute(ctx context.Context, input MacroCalculateInput) error {
	if c.profiles == nil {
		return types.ErrMissingProfileRepository
	}
	if c.macros == nil {
		return types.ErrMissingMacroRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	userID, err := c.guard.Enforce(ctx, input.Actor, types.PolicyActionMacrosWrite, input.UserID)
	if err != nil {
		return err
	}
	profile, err := profileForUser(ctx, c.profiles, userID)
	if err != nil {
		return err
	}

	occurredAt := now(c.clock)
	today := types.DayOf(occurredAt)
	if input.On != nil && !input.On.IsZero() {
		today = types.DayOf(*input.On)
	}

	result := nutrition.Calculate(*profile, today)
	out := MacroCalculateResult{Macros: result}
	if !result.OK() {
		c.logger.Debug("macro calculation rejected", "user_id", userID, "missing", nutrition.MissingFields(*profile))
		if input.Result != nil {
			*input.Result = out
		}
		return nil
	}

	rec, err := c.macros.RecordAndActivate(ctx, profile.ID, result, today)
	if err != nil {
		return err
	}
	out.Record = rec
	if input.Result != nil {
		*input.Result = out
	}

	record(ctx, c.sink, c.hooks, types.ActivityRecord{
		UserID:     userID,
		ActorID:    input.Actor.ID,
		Verb:       activity.VerbMacrosCalculated,
		ObjectType: "macro_record",
		ObjectID:   rec.ID.String(),
		Channel:    activity.ChannelNutrition,
		Data: map[string]any{
			"calories_daily": result.CaloriesDaily,
			"protein_g":      result.ProteinG,
			"carbs_g":        result.CarbsG,
			"fat_g":          result.FatG,
			"goal":           string(profile.Goal),
		},
		OccurredAt: occurredAt,
	})
	emitMacrosHook(ctx, c.hooks, types.MacroEvent{
		UserID:     userID,
		ProfileID:  profile.ID,
		ActorID:    input.Actor.ID,
		Record:     *rec,
		OccurredAt: occurredAt,
	})
	return nil
}
