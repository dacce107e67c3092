package intake

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DailyLogRecord models the daily_logs row holding the running day totals.
type DailyLogRecord struct {
	bun.BaseModel `bun:"table:daily_logs,alias:dl"`

	ID               uuid.UUID `bun:"id,pk,type:uuid"`
	ProfileID        uuid.UUID `bun:"profile_id,type:uuid"`
	Day              time.Time `bun:"day"`
	CaloriesConsumed float64   `bun:"calories_consumed"`
	ProteinConsumed  float64   `bun:"protein_consumed"`
	CarbsConsumed    float64   `bun:"carbs_consumed"`
	FatConsumed      float64   `bun:"fat_consumed"`
	WaterLiters      float64   `bun:"water_liters"`
	CaloriesBurned   float64   `bun:"calories_burned"`
	Notes            string    `bun:"notes"`
	CreatedAt        time.Time `bun:"created_at"`
	UpdatedAt        time.Time `bun:"updated_at"`
}

// MealRecord models the daily_meals row. One row exists per meal type and day.
type MealRecord struct {
	bun.BaseModel `bun:"table:daily_meals,alias:dm"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	DailyLogID uuid.UUID `bun:"daily_log_id,type:uuid"`
	MealType   string    `bun:"meal_type"`
	Name       string    `bun:"name"`
	Calories   float64   `bun:"calories"`
	ProteinG   float64   `bun:"protein_g"`
	CarbsG     float64   `bun:"carbs_g"`
	FatG       float64   `bun:"fat_g"`
}

// ConsumedFoodRecord models the consumed_foods row.
type ConsumedFoodRecord struct {
	bun.BaseModel `bun:"table:consumed_foods,alias:cf"`

	ID       uuid.UUID `bun:"id,pk,type:uuid"`
	MealID   uuid.UUID `bun:"meal_id,type:uuid"`
	FoodID   uuid.UUID `bun:"food_id,type:uuid"`
	FoodName string    `bun:"food_name,scanonly"`
	Grams    float64   `bun:"grams"`
	Calories float64   `bun:"calories"`
	ProteinG float64   `bun:"protein_g"`
	CarbsG   float64   `bun:"carbs_g"`
	FatG     float64   `bun:"fat_g"`
	LoggedAt time.Time `bun:"logged_at"`
}

// ExerciseEntryRecord models the exercise_entries row.
type ExerciseEntryRecord struct {
	bun.BaseModel `bun:"table:exercise_entries,alias:ee"`

	ID              uuid.UUID `bun:"id,pk,type:uuid"`
	DailyLogID      uuid.UUID `bun:"daily_log_id,type:uuid"`
	ExerciseID      uuid.UUID `bun:"exercise_id,type:uuid"`
	ExerciseName    string    `bun:"exercise_name,scanonly"`
	DurationMinutes int       `bun:"duration_minutes"`
	CaloriesBurned  float64   `bun:"calories_burned"`
	Notes           string    `bun:"notes"`
	LoggedAt        time.Time `bun:"logged_at"`
}
