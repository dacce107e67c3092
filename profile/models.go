package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the profiles row.
type Record struct {
	bun.BaseModel `bun:"table:profiles"`

	ID              uuid.UUID  `bun:"id,pk,type:uuid"`
	UserID          uuid.UUID  `bun:"user_id,type:uuid"`
	FirstName       string     `bun:"first_name"`
	LastName        string     `bun:"last_name"`
	BirthDate       *time.Time `bun:"birth_date"`
	Gender          string     `bun:"gender"`
	HeightCm        *float64   `bun:"height_cm"`
	WeightKg        *float64   `bun:"weight_kg"`
	TargetWeightKg  *float64   `bun:"target_weight_kg"`
	ActivityLevel   string     `bun:"activity_level"`
	Goal            string     `bun:"goal"`
	MacrosUpdatedAt *time.Time `bun:"macros_updated_at"`
	CreatedAt       time.Time  `bun:"created_at"`
	UpdatedAt       time.Time  `bun:"updated_at"`
}

// GoalChangeRecord models the profile_goal_history row.
type GoalChangeRecord struct {
	bun.BaseModel `bun:"table:profile_goal_history"`

	ID           uuid.UUID `bun:"id,pk,type:uuid"`
	ProfileID    uuid.UUID `bun:"profile_id,type:uuid"`
	PreviousGoal string    `bun:"previous_goal"`
	NewGoal      string    `bun:"new_goal"`
	WeightKg     *float64  `bun:"weight_kg"`
	ChangedAt    time.Time `bun:"changed_at"`
}

// MeasurementRecord models the body_measurements row.
type MeasurementRecord struct {
	bun.BaseModel `bun:"table:body_measurements"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	ProfileID  uuid.UUID `bun:"profile_id,type:uuid"`
	MeasuredOn time.Time `bun:"measured_on"`
	WeightKg   float64   `bun:"weight_kg"`
	BodyFatPct *float64  `bun:"body_fat_pct"`
	CreatedAt  time.Time `bun:"created_at"`
}
