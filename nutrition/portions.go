package nutrition

import (
	"math"

	"github.com/macromate/go-macromate/pkg/types"
)

const defaultServingGrams = 100

// Scale converts per-serving nutrients into the amount contained in grams of
// product. A zero serving size is treated as 100 g.
func Scale(n types.Nutrients, grams, servingGrams float64) types.Nutrients {
	if servingGrams <= 0 {
		servingGrams = defaultServingGrams
	}
	f := grams / servingGrams
	return types.Nutrients{
		Calories: round1(n.Calories * f),
		ProteinG: round1(n.ProteinG * f),
		CarbsG:   round1(n.CarbsG * f),
		FatG:     round1(n.FatG * f),
	}
}

// PerServing divides recipe totals by the number of servings.
func PerServing(total types.Nutrients, servings int) types.Nutrients {
	if servings < 1 {
		servings = 1
	}
	s := float64(servings)
	return types.Nutrients{
		Calories: round1(total.Calories / s),
		ProteinG: round1(total.ProteinG / s),
		CarbsG:   round1(total.CarbsG / s),
		FatG:     round1(total.FatG / s),
	}
}

// ExerciseCalories estimates energy burned over minutes at the given hourly rate.
func ExerciseCalories(caloriesPerHour float64, minutes int) float64 {
	if minutes <= 0 || caloriesPerHour <= 0 {
		return 0
	}
	return round1(caloriesPerHour * float64(minutes) / 60)
}

// Progress reports consumed/target capped to [0, 1]. A non-positive target
// yields 0.
func Progress(consumed, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, consumed/target))
}

// Compare builds remaining and progress values for consumed against target.
func Compare(consumed, target types.Nutrients) (remaining, progress types.Nutrients) {
	remaining = types.Nutrients{
		Calories: round1(target.Calories - consumed.Calories),
		ProteinG: round1(target.ProteinG - consumed.ProteinG),
		CarbsG:   round1(target.CarbsG - consumed.CarbsG),
		FatG:     round1(target.FatG - consumed.FatG),
	}
	progress = types.Nutrients{
		Calories: Progress(consumed.Calories, target.Calories),
		ProteinG: Progress(consumed.ProteinG, target.ProteinG),
		CarbsG:   Progress(consumed.CarbsG, target.CarbsG),
		FatG:     Progress(consumed.FatG, target.FatG),
	}
	return remaining, progress
}
