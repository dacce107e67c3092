package query

import (
	"context"
	"errors"
	"time"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/nutrition"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/macromate/go-macromate/settings"
)

// DailySummaryConfig wires dependencies for the daily summary.
type DailySummaryConfig struct {
	Profiles types.ProfileRepository
	Macros   types.MacroRepository
	Intake   types.IntakeRepository
	Settings settingsResolver
	Clock    types.Clock
	Guard    access.Guard
}

// DailySummaryInput selects the user and day. A zero Day means today.
type DailySummaryInput struct {
	UserID uuid.UUID
	Day    time.Time
	Actor  types.ActorRef
}

// Type implements gocommand.Message.
func (DailySummaryInput) Type() string {
	return "query.diary.summary"
}

// DailySummaryQuery compares what was logged on a day against the active
// macro targets and the water goal.
type DailySummaryQuery struct {
	profiles types.ProfileRepository
	macros   types.MacroRepository
	intake   types.IntakeRepository
	settings settingsResolver
	clock    types.Clock
	guard    access.Guard
}

// NewDailySummaryQuery constructs the helper.
func NewDailySummaryQuery(cfg DailySummaryConfig) *DailySummaryQuery {
	return &DailySummaryQuery{
		profiles: cfg.Profiles,
		macros:   cfg.Macros,
		intake:   cfg.Intake,
		settings: cfg.Settings,
		clock:    safeClock(cfg.Clock),
		guard:    safeGuard(cfg.Guard),
	}
}

var _ gocommand.Querier[DailySummaryInput, types.DailySummary] = (*DailySummaryQuery)(nil)

// Query builds the summary. Days without entries produce an empty summary;
// targets stay nil until macros have been calculated.
func (q *DailySummaryQuery) Query(ctx context.Context, input DailySummaryInput) (types.DailySummary, error) {
	if q.intake == nil {
		return types.DailySummary{}, types.ErrMissingIntakeRepository
	}
	profile, err := resolveProfile(ctx, q.guard, q.profiles, input.Actor, types.PolicyActionIntakeRead, input.UserID)
	if err != nil {
		return types.DailySummary{}, err
	}
	day := input.Day
	if day.IsZero() {
		day = q.clock.Now()
	}
	day = types.DayOf(day)

	summary := types.DailySummary{
		Day:       day,
		Meals:     []types.Meal{},
		Exercises: []types.ExerciseEntry{},
		WaterGoal: settings.WaterGoal(types.SettingsSnapshot{}),
	}

	detail, err := q.intake.GetDay(ctx, profile.ID, day)
	switch {
	case err == nil:
		summary.Consumed = detail.Log.Consumed
		summary.WaterLiters = detail.Log.WaterLiters
		summary.CaloriesBurned = detail.Log.CaloriesBurned
		if detail.Meals != nil {
			summary.Meals = detail.Meals
		}
		if detail.Exercises != nil {
			summary.Exercises = detail.Exercises
		}
	case !errors.Is(err, types.ErrDailyLogNotFound):
		return types.DailySummary{}, err
	}
	summary.NetCalories = summary.Consumed.Calories - summary.CaloriesBurned

	if q.macros != nil {
		active, err := q.macros.GetActive(ctx, profile.ID)
		switch {
		case err == nil:
			target := types.Nutrients{
				Calories: active.CaloriesDaily,
				ProteinG: active.ProteinG,
				CarbsG:   active.CarbsG,
				FatG:     active.FatG,
			}
			remaining, progress := nutrition.Compare(summary.Consumed, target)
			summary.Target = &target
			summary.Remaining = &remaining
			summary.Progress = &progress
		case !errors.Is(err, types.ErrMacrosNotFound):
			return types.DailySummary{}, err
		}
	}

	if q.settings != nil {
		snapshot, err := q.settings.Resolve(ctx, settings.ResolveInput{
			UserID: profile.UserID,
			Keys:   []string{settings.KeyWaterGoal},
		})
		if err != nil {
			return types.DailySummary{}, err
		}
		summary.WaterGoal = settings.WaterGoal(snapshot)
	}
	return summary, nil
}
