package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	goauth "github.com/macromate/go-macromate/adapter/goauth"
	"github.com/macromate/go-macromate/command"
	"github.com/macromate/go-macromate/pkg/types"
)

var (
	seedAdminEmail    string
	seedAdminPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the default food and exercise catalog",
	Long: `Inserts the default food categories, foods and exercises when the
catalog is empty. With --admin-email and --admin-password an admin account is
created as well.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedAdminEmail, "admin-email", "", "Email for an admin account")
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "", "Password for the admin account")
}

type seedFood struct {
	name      string
	nutrients types.Nutrients
}

// Nutrients are per 100g.
var seedCatalog = map[string][]seedFood{
	"Grains": {
		{"Oats", types.Nutrients{Calories: 389, ProteinG: 16.9, CarbsG: 66.3, FatG: 6.9}},
		{"White rice, cooked", types.Nutrients{Calories: 130, ProteinG: 2.7, CarbsG: 28.2, FatG: 0.3}},
		{"Whole wheat bread", types.Nutrients{Calories: 247, ProteinG: 13, CarbsG: 41, FatG: 3.4}},
	},
	"Proteins": {
		{"Chicken breast, cooked", types.Nutrients{Calories: 165, ProteinG: 31, CarbsG: 0, FatG: 3.6}},
		{"Egg", types.Nutrients{Calories: 155, ProteinG: 13, CarbsG: 1.1, FatG: 11}},
		{"Salmon", types.Nutrients{Calories: 208, ProteinG: 20, CarbsG: 0, FatG: 13}},
		{"Black beans, cooked", types.Nutrients{Calories: 132, ProteinG: 8.9, CarbsG: 23.7, FatG: 0.5}},
	},
	"Dairy": {
		{"Greek yogurt, plain", types.Nutrients{Calories: 59, ProteinG: 10, CarbsG: 3.6, FatG: 0.4}},
		{"Whole milk", types.Nutrients{Calories: 61, ProteinG: 3.2, CarbsG: 4.8, FatG: 3.3}},
	},
	"Fruits": {
		{"Banana", types.Nutrients{Calories: 89, ProteinG: 1.1, CarbsG: 22.8, FatG: 0.3}},
		{"Apple", types.Nutrients{Calories: 52, ProteinG: 0.3, CarbsG: 13.8, FatG: 0.2}},
		{"Avocado", types.Nutrients{Calories: 160, ProteinG: 2, CarbsG: 8.5, FatG: 14.7}},
	},
	"Vegetables": {
		{"Broccoli", types.Nutrients{Calories: 34, ProteinG: 2.8, CarbsG: 6.6, FatG: 0.4}},
		{"Spinach", types.Nutrients{Calories: 23, ProteinG: 2.9, CarbsG: 3.6, FatG: 0.4}},
	},
	"Fats": {
		{"Olive oil", types.Nutrients{Calories: 884, ProteinG: 0, CarbsG: 0, FatG: 100}},
		{"Almonds", types.Nutrients{Calories: 579, ProteinG: 21, CarbsG: 22, FatG: 50}},
	},
}

var seedExercises = []types.Exercise{
	{Name: "Running", Category: types.ExerciseCardio, CaloriesPerHour: 600},
	{Name: "Cycling", Category: types.ExerciseCardio, CaloriesPerHour: 500},
	{Name: "Swimming", Category: types.ExerciseEndurance, CaloriesPerHour: 550},
	{Name: "Walking", Category: types.ExerciseCardio, CaloriesPerHour: 280},
	{Name: "Weight training", Category: types.ExerciseStrength, CaloriesPerHour: 360},
	{Name: "Yoga", Category: types.ExerciseFlexibility, CaloriesPerHour: 180},
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	if err := WithPersistence(ctx, app, app.Config().Persistence.AutoMigrate); err != nil {
		return err
	}
	if err := WithService(ctx, app); err != nil {
		return err
	}

	logger := getLogger("seed")
	created, err := seedCatalogData(ctx, app.catalog)
	if err != nil {
		return err
	}
	if created {
		logger.Info("catalog seeded", "categories", len(seedCatalog), "exercises", len(seedExercises))
	} else {
		logger.Info("catalog already populated, skipping")
	}

	if seedAdminEmail != "" {
		if err := seedAdmin(ctx, app, seedAdminEmail, seedAdminPassword); err != nil {
			return err
		}
		logger.Info("admin account ready", "email", seedAdminEmail)
	}
	return nil
}

// seedCatalogData fills an empty catalog. It reports false when categories
// already exist.
func seedCatalogData(ctx context.Context, repo types.CatalogRepository) (bool, error) {
	existing, err := repo.ListCategories(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	for name, foods := range seedCatalog {
		category, err := repo.CreateCategory(ctx, types.FoodCategory{Name: name})
		if err != nil {
			return false, err
		}
		for _, food := range foods {
			if _, err := repo.CreateFood(ctx, types.Food{
				CategoryID:   category.ID,
				Name:         food.name,
				Nutrients:    food.nutrients,
				ServingGrams: 100,
			}); err != nil {
				return false, err
			}
		}
	}
	for _, exercise := range seedExercises {
		if _, err := repo.CreateExercise(ctx, exercise); err != nil {
			return false, err
		}
	}
	return true, nil
}

func seedAdmin(ctx context.Context, app *App, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < 8 {
		return command.ErrPasswordTooShort
	}
	accounts := goauth.NewAccountsAdapter(app.authRepo.Users())
	if existing, err := accounts.GetByIdentifier(ctx, email); err == nil && existing != nil {
		return nil
	}
	hash, err := goauth.BcryptHasher{}.Hash(password)
	if err != nil {
		return err
	}
	username := email
	if at := strings.Index(email, "@"); at > 0 {
		username = email[:at]
	}
	account, err := accounts.Create(ctx, &types.Account{
		Email:        email,
		Username:     username,
		Role:         types.ActorRoleAdmin,
		Status:       "active",
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}
	_, err = app.profiles.CreateProfile(ctx, types.Profile{
		UserID:        account.ID,
		ActivityLevel: types.ActivitySedentary,
		Goal:          types.GoalMaintenance,
	})
	return err
}
