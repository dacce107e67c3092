package types

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender drives the sex constant of the BMR formula.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ActivityLevel selects the TDEE multiplier.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Goal selects the calorie adjustment and the macro split.
type Goal string

const (
	GoalWeightLoss  Goal = "weight_loss"
	GoalMaintenance Goal = "maintenance"
	GoalMuscleGain  Goal = "muscle_gain"
)

var genderAliases = map[string]Gender{
	"male":      GenderMale,
	"m":         GenderMale,
	"masculino": GenderMale,
	"female":    GenderFemale,
	"f":         GenderFemale,
	"femenino":  GenderFemale,
	"other":     GenderOther,
	"otro":      GenderOther,
}

var activityAliases = map[string]ActivityLevel{
	"sedentary":   ActivitySedentary,
	"sedentario":  ActivitySedentary,
	"light":       ActivityLight,
	"ligero":      ActivityLight,
	"moderate":    ActivityModerate,
	"moderado":    ActivityModerate,
	"active":      ActivityActive,
	"activo":      ActivityActive,
	"very_active": ActivityVeryActive,
	"muy_activo":  ActivityVeryActive,
}

var goalAliases = map[string]Goal{
	"weight_loss":       GoalWeightLoss,
	"perdida_peso":      GoalWeightLoss,
	"maintenance":       GoalMaintenance,
	"mantenimiento":     GoalMaintenance,
	"muscle_gain":       GoalMuscleGain,
	"ganancia_muscular": GoalMuscleGain,
}

func aliasKey(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Canonical resolves accepted aliases; unknown values are returned lower-cased.
func (g Gender) Canonical() Gender {
	if v, ok := genderAliases[aliasKey(string(g))]; ok {
		return v
	}
	return Gender(aliasKey(string(g)))
}

// Canonical resolves accepted aliases; unknown values are returned lower-cased.
func (a ActivityLevel) Canonical() ActivityLevel {
	if v, ok := activityAliases[aliasKey(string(a))]; ok {
		return v
	}
	return ActivityLevel(aliasKey(string(a)))
}

// Canonical resolves accepted aliases; unknown values are returned lower-cased.
func (g Goal) Canonical() Goal {
	if v, ok := goalAliases[aliasKey(string(g))]; ok {
		return v
	}
	return Goal(aliasKey(string(g)))
}

// ParseGender validates a user supplied gender value.
func ParseGender(raw string) (Gender, error) {
	if v, ok := genderAliases[aliasKey(raw)]; ok {
		return v, nil
	}
	return "", ErrInvalidGender
}

// ParseActivityLevel validates a user supplied activity level.
func ParseActivityLevel(raw string) (ActivityLevel, error) {
	if v, ok := activityAliases[aliasKey(raw)]; ok {
		return v, nil
	}
	return "", ErrInvalidActivityLevel
}

// ParseGoal validates a user supplied goal.
func ParseGoal(raw string) (Goal, error) {
	if v, ok := goalAliases[aliasKey(raw)]; ok {
		return v, nil
	}
	return "", ErrInvalidGoal
}

// Profile holds the body metrics and preferences the calculator consumes.
// Weight, height and birth date stay nil until the user fills them in.
type Profile struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	FirstName       string        `json:"first_name"`
	LastName        string        `json:"last_name"`
	BirthDate       *time.Time    `json:"birth_date,omitempty"`
	Gender          Gender        `json:"gender,omitempty"`
	HeightCm        *float64      `json:"height_cm,omitempty"`
	WeightKg        *float64      `json:"weight_kg,omitempty"`
	TargetWeightKg  *float64      `json:"target_weight_kg,omitempty"`
	ActivityLevel   ActivityLevel `json:"activity_level"`
	Goal            Goal          `json:"goal"`
	MacrosUpdatedAt *time.Time    `json:"macros_updated_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ProfilePatch represents partial updates applied to a profile.
type ProfilePatch struct {
	FirstName      *string
	LastName       *string
	BirthDate      *time.Time
	Gender         *string
	HeightCm       *float64
	WeightKg       *float64
	TargetWeightKg *float64
	ActivityLevel  *string
	Goal           *string
}

// GoalChange records a transition between goals.
type GoalChange struct {
	ID           uuid.UUID `json:"id"`
	ProfileID    uuid.UUID `json:"profile_id"`
	PreviousGoal Goal      `json:"previous_goal"`
	NewGoal      Goal      `json:"new_goal"`
	WeightKg     *float64  `json:"weight_kg,omitempty"`
	ChangedAt    time.Time `json:"changed_at"`
}

// BodyMeasurement is a dated weight/body fat reading.
type BodyMeasurement struct {
	ID         uuid.UUID `json:"id"`
	ProfileID  uuid.UUID `json:"profile_id"`
	MeasuredOn time.Time `json:"measured_on"`
	WeightKg   float64   `json:"weight_kg"`
	BodyFatPct *float64  `json:"body_fat_pct,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// MacroSplit holds daily macronutrient grams.
type MacroSplit struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// MacroResult is the calculator outcome. Exactly one of Error or Message is
// set; on error every numeric field is zero.
type MacroResult struct {
	Error         string  `json:"error,omitempty"`
	CaloriesDaily int     `json:"calories_daily"`
	ProteinG      float64 `json:"protein_g"`
	CarbsG        float64 `json:"carbs_g"`
	FatG          float64 `json:"fat_g"`
	BMR           int     `json:"bmr"`
	TDEE          int     `json:"tdee"`
	Message       string  `json:"message,omitempty"`
}

// OK reports whether the result is a success payload.
func (r MacroResult) OK() bool {
	return r.Error == ""
}

// MacroRecord is a persisted snapshot of a successful calculation.
type MacroRecord struct {
	ID            uuid.UUID `json:"id"`
	ProfileID     uuid.UUID `json:"profile_id"`
	CaloriesDaily float64   `json:"calories_daily"`
	ProteinG      float64   `json:"protein_g"`
	CarbsG        float64   `json:"carbs_g"`
	FatG          float64   `json:"fat_g"`
	ComputedOn    time.Time `json:"computed_on"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// MacroHistoryPage lists past records newest first.
type MacroHistoryPage struct {
	Records    []MacroRecord
	Total      int
	NextOffset int
	HasMore    bool
}

// ProfileRepository persists and retrieves profiles.
type ProfileRepository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetProfileByUser(ctx context.Context, userID uuid.UUID) (*Profile, error)
	CreateProfile(ctx context.Context, profile Profile) (*Profile, error)
	UpdateProfile(ctx context.Context, profile Profile) (*Profile, *GoalChange, error)
	ListGoalHistory(ctx context.Context, profileID uuid.UUID) ([]GoalChange, error)
}

// MeasurementRepository stores body measurements.
type MeasurementRepository interface {
	AddMeasurement(ctx context.Context, m BodyMeasurement) (*BodyMeasurement, error)
	ListMeasurements(ctx context.Context, profileID uuid.UUID, page Pagination) ([]BodyMeasurement, int, error)
}

// MacroRepository stores macro records keeping one active record per profile.
type MacroRepository interface {
	RecordAndActivate(ctx context.Context, profileID uuid.UUID, result MacroResult, computedOn time.Time) (*MacroRecord, error)
	GetActive(ctx context.Context, profileID uuid.UUID) (*MacroRecord, error)
	ListHistory(ctx context.Context, profileID uuid.UUID, page Pagination) (MacroHistoryPage, error)
}
