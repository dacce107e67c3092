package nutrition

import (
	"math"
	"testing"
	"time"

	"github.com/macromate/go-macromate/pkg/types"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func TestAge(t *testing.T) {
	cases := []struct {
		name  string
		birth *time.Time
		today time.Time
		want  int
	}{
		{name: "anniversary passed", birth: ptr(date(2000, 1, 1)), today: date(2025, 6, 1), want: 25},
		{name: "day before anniversary", birth: ptr(date(2000, 6, 15)), today: date(2025, 6, 14), want: 24},
		{name: "on anniversary", birth: ptr(date(2000, 6, 15)), today: date(2025, 6, 15), want: 25},
		{name: "leap day before march", birth: ptr(date(2000, 2, 29)), today: date(2025, 2, 28), want: 24},
		{name: "leap day after march", birth: ptr(date(2000, 2, 29)), today: date(2025, 3, 1), want: 25},
		{name: "missing birth date", birth: nil, today: date(2025, 3, 1), want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Age(tc.birth, tc.today))
		})
	}
}

func TestBMR(t *testing.T) {
	require.InDelta(t, 1780, BMR(80, 180, 30, types.GenderMale), 0.001)
	require.InDelta(t, 1345.25, BMR(60, 165, 25, types.GenderFemale), 0.001)
	require.InDelta(t, 1484.5, BMR(70, 170, 40, types.GenderOther), 0.001)
	require.InDelta(t, 1484.5, BMR(70, 170, 40, ""), 0.001)
}

func TestBMR_GenderOffsetAndAliases(t *testing.T) {
	male := BMR(72, 175, 33, types.GenderMale)
	female := BMR(72, 175, 33, types.GenderFemale)
	require.InDelta(t, 166, male-female, 0.0001)

	require.Equal(t, male, BMR(72, 175, 33, "masculino"))
	require.Equal(t, female, BMR(72, 175, 33, "Femenino"))
}

func TestTDEE(t *testing.T) {
	require.InDelta(t, 2136, TDEE(1780, types.ActivitySedentary), 0.001)
	require.InDelta(t, 1375, TDEE(1000, types.ActivityLight), 0.001)
	require.InDelta(t, 1550, TDEE(1000, types.ActivityModerate), 0.001)
	require.InDelta(t, 1725, TDEE(1000, types.ActivityActive), 0.001)
	require.InDelta(t, 1900, TDEE(1000, types.ActivityVeryActive), 0.001)
	require.InDelta(t, 1900, TDEE(1000, "muy_activo"), 0.001)
	require.InDelta(t, 1200, TDEE(1000, "couch"), 0.001)
}

func TestGoalAdjustedCalories(t *testing.T) {
	require.InDelta(t, 2000, GoalAdjustedCalories(2500, types.GoalWeightLoss), 0.001)
	require.InDelta(t, 2500, GoalAdjustedCalories(2500, types.GoalMaintenance), 0.001)
	require.InDelta(t, 2750, GoalAdjustedCalories(2500, types.GoalMuscleGain), 0.001)
	require.InDelta(t, 2000, GoalAdjustedCalories(2500, "perdida_peso"), 0.001)
	require.InDelta(t, 2500, GoalAdjustedCalories(2500, "bulk"), 0.001)
}

func TestMacroSplit(t *testing.T) {
	split := MacroSplit(3000, types.GoalMuscleGain)
	require.Equal(t, 225.0, split.ProteinG)
	require.Equal(t, 337.5, split.CarbsG)
	require.Equal(t, 83.3, split.FatG)
	require.InDelta(t, 3000, SplitCalories(split), 1)

	loss := MacroSplit(2000, types.GoalWeightLoss)
	require.Equal(t, 175.0, loss.ProteinG)
	require.Equal(t, 200.0, loss.CarbsG)
	require.Equal(t, 55.6, loss.FatG)

	maint := MacroSplit(2000, types.GoalMaintenance)
	require.Equal(t, MacroSplit(2000, "unknown"), maint)
	require.Equal(t, 125.0, maint.ProteinG)
	require.Equal(t, 250.0, maint.CarbsG)
}

func TestMacroSplit_RoundsToOneDecimal(t *testing.T) {
	goals := []types.Goal{types.GoalWeightLoss, types.GoalMaintenance, types.GoalMuscleGain}
	for calories := 1000.0; calories < 4000; calories += 37.3 {
		for _, goal := range goals {
			split := MacroSplit(calories, goal)
			for _, v := range []float64{split.ProteinG, split.CarbsG, split.FatG} {
				scaled := v * 10
				require.InDelta(t, math.Round(scaled), scaled, 1e-6)
			}
			require.InDelta(t, calories, SplitCalories(split), 1)
		}
	}
}
