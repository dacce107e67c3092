package nutrition

import (
	"math"
	"time"

	"github.com/macromate/go-macromate/pkg/types"
)

const (
	// MessageCalculated accompanies every successful result.
	MessageCalculated = "Calculation completed successfully"
	// MessageMissingMetrics is returned when the profile lacks the inputs the
	// pipeline needs.
	MessageMissingMetrics = "weight, height and birth date are required to calculate macros"
)

// MissingFields lists the profile inputs that prevent a calculation. Weight
// and height must be positive; birth date must be set.
func MissingFields(p types.Profile) []string {
	var missing []string
	if p.WeightKg == nil || *p.WeightKg <= 0 {
		missing = append(missing, "weight_kg")
	}
	if p.HeightCm == nil || *p.HeightCm <= 0 {
		missing = append(missing, "height_cm")
	}
	if p.BirthDate == nil || p.BirthDate.IsZero() {
		missing = append(missing, "birth_date")
	}
	return missing
}

// Calculate runs age, BMR, TDEE, goal adjustment and macro split in that order.
// A profile missing required metrics yields the zero-valued error payload.
func Calculate(p types.Profile, today time.Time) types.MacroResult {
	if len(MissingFields(p)) > 0 {
		return types.MacroResult{Error: MessageMissingMetrics}
	}

	bmr := BMRForProfile(p, today)
	tdee := TDEE(bmr, p.ActivityLevel)
	calories := GoalAdjustedCalories(tdee, p.Goal)
	split := MacroSplit(calories, p.Goal)

	return types.MacroResult{
		CaloriesDaily: int(math.Round(calories)),
		ProteinG:      split.ProteinG,
		CarbsG:        split.CarbsG,
		FatG:          split.FatG,
		BMR:           int(math.Round(bmr)),
		TDEE:          int(math.Round(tdee)),
		Message:       MessageCalculated,
	}
}
