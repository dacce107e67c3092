package command

import (
	"context"
	"time"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/activity"
	"github.com/macromate/go-macromate/pkg/types"
)

// WaterLogInput adds liters of water to a day.
type WaterLogInput struct {
	UserID uuid.UUID
	Day    time.Time
	Liters float64
	Actor  types.ActorRef
	Result *types.DailyLog
}

// Type implements gocommand.Message.
func (WaterLogInput) Type() string {
	return "command.diary.water.log"
}

// Validate implements gocommand.Message.
func (input WaterLogInput) Validate() error {
	if input.Actor.ID == uuid.Nil {
		return ErrActorRequired
	}
	if input.Liters <= 0 {
		return ErrInvalidLiters
	}
	return nil
}

// WaterLogCommand increments the day's water intake.
type WaterLogCommand struct {
	diaryDeps
}

// NewWaterLogCommand constructs the handler.
func NewWaterLogCommand(cfg DiaryCommandConfig) *WaterLogCommand {
	return &WaterLogCommand{diaryDeps: newDiaryDeps(cfg)}
}

var _ gocommand.Commander[WaterLogInput] = (*WaterLogCommand)(nil)

// Execute logs the water.
func (c *WaterLogCommand) Execute(ctx context.Context, input WaterLogInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	userID, profile, err := c.resolve(ctx, input.Actor, input.UserID)
	if err != nil {
		return err
	}
	day := c.day(input.Day)
	log, err := c.intake.LogWater(ctx, profile.ID, day, input.Liters)
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = *log
	}

	c.emit(ctx, types.ActivityRecord{
		UserID:     userID,
		ActorID:    input.Actor.ID,
		Verb:       activity.VerbWaterLogged,
		ObjectType: "daily_log",
		ObjectID:   log.ID.String(),
		Channel:    activity.ChannelDiary,
		Data: map[string]any{
			"liters":       input.Liters,
			"total_liters": log.WaterLiters,
		},
		OccurredAt: now(c.clock),
	}, profile.ID, day, "water")
	return nil
}
