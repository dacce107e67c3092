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

// ProfileCommandConfig wires dependencies for profile commands.
type ProfileCommandConfig struct {
	Repository   types.ProfileRepository
	Measurements types.MeasurementRepository
	Activity     types.ActivitySink
	Hooks        types.Hooks
	Clock        types.Clock
	Guard        access.Guard
}

// ProfileUpdateInput captures a profile patch request.
type ProfileUpdateInput struct {
	UserID uuid.UUID
	Patch  types.ProfilePatch
	Actor  types.ActorRef
	Result *types.Profile
}

// Type implements gocommand.Message.
func (ProfileUpdateInput) Type() string {
	return "command.profile.update"
}

// Validate implements gocommand.Message.
func (input ProfileUpdateInput) Validate() error {
	if input.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	patch := input.Patch
	if err := positive(patch.WeightKg, ErrInvalidWeight); err != nil {
		return err
	}
	if err := positive(patch.TargetWeightKg, ErrInvalidWeight); err != nil {
		return err
	}
	if err := positive(patch.HeightCm, ErrInvalidHeight); err != nil {
		return err
	}
	if patch.Gender != nil {
		if _, err := types.ParseGender(*patch.Gender); err != nil {
			return err
		}
	}
	if patch.ActivityLevel != nil {
		if _, err := types.ParseActivityLevel(*patch.ActivityLevel); err != nil {
			return err
		}
	}
	if patch.Goal != nil {
		if _, err := types.ParseGoal(*patch.Goal); err != nil {
			return err
		}
	}
	return nil
}

// ProfileUpdateCommand applies profile patches for a user.
type ProfileUpdateCommand struct {
	repo  types.ProfileRepository
	sink  types.ActivitySink
	hooks types.Hooks
	clock types.Clock
	guard access.Guard
}

// NewProfileUpdateCommand constructs the profile command handler.
func NewProfileUpdateCommand(cfg ProfileCommandConfig) *ProfileUpdateCommand {
	return &ProfileUpdateCommand{
		repo:  cfg.Repository,
		sink:  safeActivitySink(cfg.Activity),
		hooks: safeHooks(cfg.Hooks),
		clock: safeClock(cfg.Clock),
		guard: safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[ProfileUpdateInput] = (*ProfileUpdateCommand)(nil)

// Execute applies the supplied patch. Goal changes are recorded by the
// repository in the same transaction.
func (c *ProfileUpdateCommand) Execute(ctx context.Context, input ProfileUpdateInput) error {
	if c.repo == nil {
		return types.ErrMissingProfileRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	userID, err := c.guard.Enforce(ctx, input.Actor, types.PolicyActionProfileWrite, input.UserID)
	if err != nil {
		return err
	}
	occurredAt := now(c.clock)
	if input.Patch.BirthDate != nil && input.Patch.BirthDate.After(occurredAt) {
		return ErrInvalidBirthDate
	}

	existing, err := profileForUser(ctx, c.repo, userID)
	if err != nil {
		return err
	}
	profile := *existing
	changed := applyProfilePatch(&profile, input.Patch)

	updated, goalChange, err := c.repo.UpdateProfile(ctx, profile)
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = *updated
	}

	data := map[string]any{"fields": changed}
	if goalChange != nil {
		data["previous_goal"] = string(goalChange.PreviousGoal)
		data["new_goal"] = string(goalChange.NewGoal)
	}
	record(ctx, c.sink, c.hooks, types.ActivityRecord{
		UserID:     userID,
		ActorID:    input.Actor.ID,
		Verb:       activity.VerbProfileUpdated,
		ObjectType: "profile",
		ObjectID:   updated.ID.String(),
		Channel:    activity.ChannelProfile,
		Data:       data,
		OccurredAt: occurredAt,
	})
	emitProfileHook(ctx, c.hooks, types.ProfileEvent{
		UserID:     userID,
		ActorID:    input.Actor.ID,
		GoalChange: goalChange,
		OccurredAt: occurredAt,
		Profile:    *updated,
	})
	return nil
}

// applyProfilePatch writes the patch onto profile and returns the names of
// the fields it touched. Enum values must already be validated.
func applyProfilePatch(profile *types.Profile, patch types.ProfilePatch) []string {
	var changed []string
	if patch.FirstName != nil {
		profile.FirstName = strings.TrimSpace(*patch.FirstName)
		changed = append(changed, "first_name")
	}
	if patch.LastName != nil {
		profile.LastName = strings.TrimSpace(*patch.LastName)
		changed = append(changed, "last_name")
	}
	if patch.BirthDate != nil {
		day := types.DayOf(*patch.BirthDate)
		profile.BirthDate = &day
		changed = append(changed, "birth_date")
	}
	if patch.Gender != nil {
		profile.Gender, _ = types.ParseGender(*patch.Gender)
		changed = append(changed, "gender")
	}
	if patch.HeightCm != nil {
		profile.HeightCm = clonePtr(patch.HeightCm)
		changed = append(changed, "height_cm")
	}
	if patch.WeightKg != nil {
		profile.WeightKg = clonePtr(patch.WeightKg)
		changed = append(changed, "weight_kg")
	}
	if patch.TargetWeightKg != nil {
		profile.TargetWeightKg = clonePtr(patch.TargetWeightKg)
		changed = append(changed, "target_weight_kg")
	}
	if patch.ActivityLevel != nil {
		profile.ActivityLevel, _ = types.ParseActivityLevel(*patch.ActivityLevel)
		changed = append(changed, "activity_level")
	}
	if patch.Goal != nil {
		profile.Goal, _ = types.ParseGoal(*patch.Goal)
		changed = append(changed, "goal")
	}
	return changed
}
