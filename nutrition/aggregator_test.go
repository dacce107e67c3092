package nutrition

import (
	"testing"

	"github.com/macromate/go-macromate/pkg/types"
	"github.com/stretchr/testify/require"
)

func femaleProfile() types.Profile {
	return types.Profile{
		WeightKg:      ptr(60.0),
		HeightCm:      ptr(165.0),
		BirthDate:     ptr(date(2000, 1, 1)),
		Gender:        types.GenderFemale,
		ActivityLevel: types.ActivityVeryActive,
		Goal:          types.GoalWeightLoss,
	}
}

func TestCalculate_EndToEnd(t *testing.T) {
	result := Calculate(femaleProfile(), date(2025, 6, 1))

	require.True(t, result.OK())
	require.Equal(t, MessageCalculated, result.Message)
	require.Equal(t, 1345, result.BMR)
	require.Equal(t, 2556, result.TDEE)
	require.Equal(t, 2045, result.CaloriesDaily)
	require.Equal(t, 178.9, result.ProteinG)
	require.Equal(t, 204.5, result.CarbsG)
	require.Equal(t, 56.8, result.FatG)
}

func TestCalculate_SpanishAliases(t *testing.T) {
	profile := femaleProfile()
	profile.Gender = "femenino"
	profile.ActivityLevel = "muy_activo"
	profile.Goal = "perdida_peso"

	require.Equal(t, Calculate(femaleProfile(), date(2025, 6, 1)), Calculate(profile, date(2025, 6, 1)))
}

func TestCalculate_Idempotent(t *testing.T) {
	profile := femaleProfile()
	today := date(2025, 6, 1)
	require.Equal(t, Calculate(profile, today), Calculate(profile, today))
}

func TestCalculate_MissingMetrics(t *testing.T) {
	cases := map[string]func(*types.Profile){
		"birth date": func(p *types.Profile) { p.BirthDate = nil },
		"weight":     func(p *types.Profile) { p.WeightKg = nil },
		"height":     func(p *types.Profile) { p.HeightCm = nil },
		"zero weight": func(p *types.Profile) {
			p.WeightKg = ptr(0.0)
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			profile := femaleProfile()
			mutate(&profile)

			result := Calculate(profile, date(2025, 6, 1))
			require.False(t, result.OK())
			require.Equal(t, types.MacroResult{Error: MessageMissingMetrics}, result)
		})
	}
}

func TestMissingFields(t *testing.T) {
	require.Empty(t, MissingFields(femaleProfile()))
	require.Equal(t, []string{"weight_kg", "height_cm", "birth_date"}, MissingFields(types.Profile{}))
}
