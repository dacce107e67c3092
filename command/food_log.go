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

// DiaryCommandConfig wires dependencies for diary commands.
type DiaryCommandConfig struct {
	Profiles types.ProfileRepository
	Catalog  types.CatalogRepository
	Intake   types.IntakeRepository
	Activity types.ActivitySink
	Hooks    types.Hooks
	Clock    types.Clock
	Guard    access.Guard
}

type diaryDeps struct {
	profiles types.ProfileRepository
	catalog  types.CatalogRepository
	intake   types.IntakeRepository
	sink     types.ActivitySink
	hooks    types.Hooks
	clock    types.Clock
	guard    access.Guard
}

func newDiaryDeps(cfg DiaryCommandConfig) diaryDeps {
	return diaryDeps{
		profiles: cfg.Profiles,
		catalog:  cfg.Catalog,
		intake:   cfg.Intake,
		sink:     safeActivitySink(cfg.Activity),
		hooks:    safeHooks(cfg.Hooks),
		clock:    safeClock(cfg.Clock),
		guard:    safeGuard(cfg.Guard),
	}
}

// resolve enforces access and returns the target user's profile.
func (d diaryDeps) resolve(ctx context.Context, actor types.ActorRef, userID uuid.UUID) (uuid.UUID, *types.Profile, error) {
	if d.profiles == nil {
		return uuid.Nil, nil, types.ErrMissingProfileRepository
	}
	if d.intake == nil {
		return uuid.Nil, nil, types.ErrMissingIntakeRepository
	}
	target, err := d.guard.Enforce(ctx, actor, types.PolicyActionIntakeWrite, userID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	profile, err := profileForUser(ctx, d.profiles, target)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return target, profile, nil
}

func (d diaryDeps) day(day time.Time) time.Time {
	if day.IsZero() {
		return types.DayOf(now(d.clock))
	}
	return types.DayOf(day)
}

func (d diaryDeps) emit(ctx context.Context, rec types.ActivityRecord, profileID uuid.UUID, day time.Time, action string) {
	record(ctx, d.sink, d.hooks, rec)
	emitIntakeHook(ctx, d.hooks, types.IntakeEvent{
		UserID:     rec.UserID,
		ProfileID:  profileID,
		Day:        day,
		Action:     action,
		ActorID:    rec.ActorID,
		OccurredAt: rec.OccurredAt,
	})
}

// FoodLogInput adds a portion of a catalog food to a meal.
type FoodLogInput struct {
	UserID   uuid.UUID
	Day      time.Time
	MealType string
	MealName string
	FoodID   uuid.UUID
	Grams    float64
	Actor    types.ActorRef
	Result   *types.DailyLog
}

// Type implements gocommand.Message.
func (FoodLogInput) Type() string {
	return "command.diary.food.log"
}

// Validate implements gocommand.Message.
func (input FoodLogInput) Validate() error {
	switch {
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	case input.FoodID == uuid.Nil:
		return ErrFoodIDRequired
	case input.Grams <= 0:
		return ErrInvalidGrams
	}
	_, err := types.ParseMealType(input.MealType)
	return err
}

// FoodLogCommand scales the food's nutrients to the eaten quantity and adds
// them to the meal and day totals.
type FoodLogCommand struct {
	diaryDeps
}

// NewFoodLogCommand constructs the handler.
func NewFoodLogCommand(cfg DiaryCommandConfig) *FoodLogCommand {
	return &FoodLogCommand{diaryDeps: newDiaryDeps(cfg)}
}

var _ gocommand.Commander[FoodLogInput] = (*FoodLogCommand)(nil)

// Execute logs the food.
func (c *FoodLogCommand) Execute(ctx context.Context, input FoodLogInput) error {
	if c.catalog == nil {
		return types.ErrMissingCatalogRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	userID, profile, err := c.resolve(ctx, input.Actor, input.UserID)
	if err != nil {
		return err
	}
	food, err := c.catalog.GetFood(ctx, input.FoodID)
	if err != nil {
		return err
	}
	mealType, _ := types.ParseMealType(input.MealType)
	day := c.day(input.Day)
	portion := nutrition.Scale(food.Nutrients, input.Grams, food.ServingGrams)

	log, err := c.intake.LogFood(ctx, types.FoodLogEntry{
		ProfileID: profile.ID,
		Day:       day,
		MealType:  mealType,
		MealName:  input.MealName,
		FoodID:    food.ID,
		Grams:     input.Grams,
		Nutrients: portion,
	})
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = *log
	}

	c.emit(ctx, types.ActivityRecord{
		UserID:     userID,
		ActorID:    input.Actor.ID,
		Verb:       activity.VerbFoodLogged,
		ObjectType: "daily_log",
		ObjectID:   log.ID.String(),
		Channel:    activity.ChannelDiary,
		Data: map[string]any{
			"food":      food.Name,
			"meal_type": string(mealType),
			"grams":     input.Grams,
			"calories":  portion.Calories,
		},
		OccurredAt: now(c.clock),
	}, profile.ID, day, "food")
	return nil
}
