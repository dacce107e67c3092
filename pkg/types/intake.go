package types

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MealType names the meal slot a consumed food belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

var mealAliases = map[string]MealType{
	"breakfast": MealBreakfast,
	"desayuno":  MealBreakfast,
	"lunch":     MealLunch,
	"almuerzo":  MealLunch,
	"dinner":    MealDinner,
	"cena":      MealDinner,
	"snack":     MealSnack,
}

// ParseMealType validates a user supplied meal type.
func ParseMealType(raw string) (MealType, error) {
	if v, ok := mealAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return v, nil
	}
	return "", ErrInvalidMealType
}

// DailyLog aggregates everything logged for one profile and calendar day.
type DailyLog struct {
	ID             uuid.UUID `json:"id"`
	ProfileID      uuid.UUID `json:"profile_id"`
	Day            time.Time `json:"day"`
	Consumed       Nutrients `json:"consumed"`
	WaterLiters    float64   `json:"water_liters"`
	CaloriesBurned float64   `json:"calories_burned"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Meal is one slot of a daily log.
type Meal struct {
	ID         uuid.UUID      `json:"id"`
	DailyLogID uuid.UUID      `json:"daily_log_id"`
	MealType   MealType       `json:"meal_type"`
	Name       string         `json:"name,omitempty"`
	Totals     Nutrients      `json:"totals"`
	Foods      []ConsumedFood `json:"foods,omitempty"`
}

// ConsumedFood is a portion of a catalog food eaten in a meal.
type ConsumedFood struct {
	ID        uuid.UUID `json:"id"`
	MealID    uuid.UUID `json:"meal_id"`
	FoodID    uuid.UUID `json:"food_id"`
	FoodName  string    `json:"food_name,omitempty"`
	Grams     float64   `json:"grams"`
	Nutrients Nutrients `json:"nutrients"`
	LoggedAt  time.Time `json:"logged_at"`
}

// ExerciseEntry is an exercise performed on a given day.
type ExerciseEntry struct {
	ID              uuid.UUID `json:"id"`
	DailyLogID      uuid.UUID `json:"daily_log_id"`
	ExerciseID      uuid.UUID `json:"exercise_id"`
	ExerciseName    string    `json:"exercise_name,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	CaloriesBurned  float64   `json:"calories_burned"`
	Notes           string    `json:"notes,omitempty"`
	LoggedAt        time.Time `json:"logged_at"`
}

// DailyDetail is a daily log with its meals and exercises expanded.
type DailyDetail struct {
	Log       DailyLog        `json:"log"`
	Meals     []Meal          `json:"meals"`
	Exercises []ExerciseEntry `json:"exercises"`
}

// FoodLogEntry carries a computed portion to be added to a day.
type FoodLogEntry struct {
	ProfileID uuid.UUID
	Day       time.Time
	MealType  MealType
	MealName  string
	FoodID    uuid.UUID
	Grams     float64
	Nutrients Nutrients
}

// ExerciseLogEntry carries a computed exercise entry to be added to a day.
type ExerciseLogEntry struct {
	ProfileID       uuid.UUID
	Day             time.Time
	ExerciseID      uuid.UUID
	DurationMinutes int
	CaloriesBurned  float64
	Notes           string
}

// IntakeRepository persists daily logs.
type IntakeRepository interface {
	LogFood(ctx context.Context, entry FoodLogEntry) (*DailyLog, error)
	LogWater(ctx context.Context, profileID uuid.UUID, day time.Time, liters float64) (*DailyLog, error)
	LogExercise(ctx context.Context, entry ExerciseLogEntry) (*DailyLog, error)
	GetDay(ctx context.Context, profileID uuid.UUID, day time.Time) (*DailyDetail, error)
}

// DailySummary compares a day's intake with the active macro targets.
type DailySummary struct {
	Day            time.Time       `json:"day"`
	Consumed       Nutrients       `json:"consumed"`
	Target         *Nutrients      `json:"target,omitempty"`
	Remaining      *Nutrients      `json:"remaining,omitempty"`
	Progress       *Nutrients      `json:"progress,omitempty"`
	CaloriesBurned float64         `json:"calories_burned"`
	NetCalories    float64         `json:"net_calories"`
	WaterLiters    float64         `json:"water_liters"`
	WaterGoal      float64         `json:"water_goal_liters"`
	Meals          []Meal          `json:"meals"`
	Exercises      []ExerciseEntry `json:"exercises"`
}
