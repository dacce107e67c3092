package command

import (
	"context"
	"strings"
	"time"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/activity"
	"github.com/macromate/go-macromate/nutrition"
	"github.com/macromate/go-macromate/pkg/types"
)

// ExerciseLogInput records a catalog exercise performed on a day.
type ExerciseLogInput struct {
	UserID          uuid.UUID
	Day             time.Time
	ExerciseID      uuid.UUID
	DurationMinutes int
	Notes           string
	Actor           types.ActorRef
	Result          *types.DailyLog
}

// Type implements gocommand.Message.
func (ExerciseLogInput) Type() string {
	return "command.diary.exercise.log"
}

// Validate implements gocommand.Message.
func (input ExerciseLogInput) Validate() error {
	switch {
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	case input.ExerciseID == uuid.Nil:
		return ErrExerciseIDRequired
	case input.DurationMinutes <= 0:
		return ErrInvalidDuration
	}
	return nil
}

// ExerciseLogCommand estimates burned calories from the exercise's hourly
// rate and adds the entry to the day.
type ExerciseLogCommand struct {
	diaryDeps
}

// NewExerciseLogCommand constructs the handler.
func NewExerciseLogCommand(cfg DiaryCommandConfig) *ExerciseLogCommand {
	return &ExerciseLogCommand{diaryDeps: newDiaryDeps(cfg)}
}

var _ gocommand.Commander[ExerciseLogInput] = (*ExerciseLogCommand)(nil)

// Execute logs the exercise.
func (c *ExerciseLogCommand) Execute(ctx context.Context, input ExerciseLogInput) error {
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
	exercise, err := c.catalog.GetExercise(ctx, input.ExerciseID)
	if err != nil {
		return err
	}
	day := c.day(input.Day)
	burned := nutrition.ExerciseCalories(exercise.CaloriesPerHour, input.DurationMinutes)

	log, err := c.intake.LogExercise(ctx, types.ExerciseLogEntry{
		ProfileID:       profile.ID,
		Day:             day,
		ExerciseID:      exercise.ID,
		DurationMinutes: input.DurationMinutes,
		CaloriesBurned:  burned,
		Notes:           strings.TrimSpace(input.Notes),
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
		Verb:       activity.VerbExerciseLogged,
		ObjectType: "daily_log",
		ObjectID:   log.ID.String(),
		Channel:    activity.ChannelDiary,
		Data: map[string]any{
			"exercise":        exercise.Name,
			"minutes":         input.DurationMinutes,
			"calories_burned": burned,
		},
		OccurredAt: now(c.clock),
	}, profile.ID, day, "exercise")
	return nil
}
