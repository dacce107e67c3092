package nutrition

import (
	"math"
	"time"

	"github.com/macromate/go-macromate/pkg/types"
)

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9

	defaultActivityFactor = 1.2
)

type macroRatios struct {
	protein float64
	fat     float64
	carbs   float64
}

func activityFactor(level types.ActivityLevel) float64 {
	switch level.Canonical() {
	case types.ActivitySedentary:
		return 1.2
	case types.ActivityLight:
		return 1.375
	case types.ActivityModerate:
		return 1.55
	case types.ActivityActive:
		return 1.725
	case types.ActivityVeryActive:
		return 1.9
	default:
		return defaultActivityFactor
	}
}

func goalFactor(goal types.Goal) float64 {
	switch goal.Canonical() {
	case types.GoalWeightLoss:
		return 0.8
	case types.GoalMuscleGain:
		return 1.1
	default:
		return 1.0
	}
}

func ratiosFor(goal types.Goal) macroRatios {
	switch goal.Canonical() {
	case types.GoalWeightLoss:
		return macroRatios{protein: 0.35, fat: 0.25, carbs: 0.40}
	case types.GoalMuscleGain:
		return macroRatios{protein: 0.30, fat: 0.25, carbs: 0.45}
	default:
		return macroRatios{protein: 0.25, fat: 0.25, carbs: 0.50}
	}
}

// Age returns whole years between birthDate and today. It returns 0 when the
// birth date is unknown.
func Age(birthDate *time.Time, today time.Time) int {
	if birthDate == nil || birthDate.IsZero() {
		return 0
	}
	by, bm, bd := birthDate.Date()
	ty, tm, td := today.Date()
	age := ty - by
	if tm < bm || (tm == bm && td < bd) {
		age--
	}
	return age
}

// BMR computes the basal metabolic rate with the Mifflin-St Jeor equation.
func BMR(weightKg, heightCm float64, age int, gender types.Gender) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch gender.Canonical() {
	case types.GenderMale:
		return base + 5
	case types.GenderFemale:
		return base - 161
	default:
		return base - 78
	}
}

// BMRForProfile runs BMR over a profile treating missing weight or height as 0.
func BMRForProfile(p types.Profile, today time.Time) float64 {
	return BMR(deref(p.WeightKg), deref(p.HeightCm), Age(p.BirthDate, today), p.Gender)
}

// TDEE scales the BMR by the activity factor. Unknown levels use the
// sedentary factor.
func TDEE(bmr float64, level types.ActivityLevel) float64 {
	return bmr * activityFactor(level)
}

// GoalAdjustedCalories applies the goal deficit or surplus to the TDEE.
func GoalAdjustedCalories(tdee float64, goal types.Goal) float64 {
	return tdee * goalFactor(goal)
}

// MacroSplit distributes calories into protein, carbs and fat grams, each
// rounded to one decimal place.
func MacroSplit(calories float64, goal types.Goal) types.MacroSplit {
	r := ratiosFor(goal)
	return types.MacroSplit{
		ProteinG: round1(calories * r.protein / kcalPerGramProtein),
		CarbsG:   round1(calories * r.carbs / kcalPerGramCarbs),
		FatG:     round1(calories * r.fat / kcalPerGramFat),
	}
}

// SplitCalories returns the energy represented by a split, used to reconcile
// a split against its calorie total.
func SplitCalories(split types.MacroSplit) float64 {
	return split.ProteinG*kcalPerGramProtein + split.CarbsG*kcalPerGramCarbs + split.FatG*kcalPerGramFat
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
