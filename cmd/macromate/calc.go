package main

import (
	"fmt"
	"time"

	"github.com/goliatone/go-print"
	"github.com/spf13/cobra"

	"github.com/macromate/go-macromate/nutrition"
	"github.com/macromate/go-macromate/pkg/types"
)

type calcFlags struct {
	weight    float64
	height    float64
	birthDate string
	gender    string
	activity  string
	goal      string
	on        string
}

var calcOpts calcFlags

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate daily calories and macros without a database",
	Long: `Runs the macro calculator on the supplied body metrics and prints the
result as JSON. Missing metrics produce an error payload, not a failure.

Example:
  macromate calc --weight 70 --height 175 --birth-date 1990-05-15 \
    --gender male --activity moderate --goal maintenance`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		profile, today, err := calcOpts.profile(time.Now().UTC())
		if err != nil {
			return err
		}
		result := nutrition.Calculate(profile, today)
		fmt.Fprintln(cmd.OutOrStdout(), print.MaybeHighlightJSON(result))
		return nil
	},
}

func init() {
	flags := calcCmd.Flags()
	flags.Float64Var(&calcOpts.weight, "weight", 0, "Body weight in kg")
	flags.Float64Var(&calcOpts.height, "height", 0, "Height in cm")
	flags.StringVar(&calcOpts.birthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
	flags.StringVar(&calcOpts.gender, "gender", "other", "male, female or other")
	flags.StringVar(&calcOpts.activity, "activity", string(types.ActivitySedentary), "sedentary, light, moderate, active or very_active")
	flags.StringVar(&calcOpts.goal, "goal", string(types.GoalMaintenance), "weight_loss, maintenance or muscle_gain")
	flags.StringVar(&calcOpts.on, "on", "", "Calculation date (YYYY-MM-DD), defaults to today")
}

// profile builds the calculator input. Zero weight or height and an empty
// birth date are left unset so the calculator reports them as missing.
func (f calcFlags) profile(now time.Time) (types.Profile, time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if f.on != "" {
		on, err := time.Parse(time.DateOnly, f.on)
		if err != nil {
			return types.Profile{}, time.Time{}, fmt.Errorf("invalid --on date %q: %w", f.on, err)
		}
		today = on
	}

	gender, err := types.ParseGender(f.gender)
	if err != nil {
		return types.Profile{}, time.Time{}, err
	}
	activity, err := types.ParseActivityLevel(f.activity)
	if err != nil {
		return types.Profile{}, time.Time{}, err
	}
	goal, err := types.ParseGoal(f.goal)
	if err != nil {
		return types.Profile{}, time.Time{}, err
	}

	p := types.Profile{
		Gender:        gender,
		ActivityLevel: activity,
		Goal:          goal,
	}
	if f.weight > 0 {
		weight := f.weight
		p.WeightKg = &weight
	}
	if f.height > 0 {
		height := f.height
		p.HeightCm = &height
	}
	if f.birthDate != "" {
		birth, err := time.Parse(time.DateOnly, f.birthDate)
		if err != nil {
			return types.Profile{}, time.Time{}, fmt.Errorf("invalid --birth-date %q: %w", f.birthDate, err)
		}
		p.BirthDate = &birth
	}
	return p, today, nil
}
