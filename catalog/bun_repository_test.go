package catalog

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestRepository_FoodSearchMatchesCategoryName(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	dairy, err := repo.CreateCategory(ctx, types.FoodCategory{Name: "Dairy"})
	require.NoError(t, err)
	grains, err := repo.CreateCategory(ctx, types.FoodCategory{Name: "Grains"})
	require.NoError(t, err)

	_, err = repo.CreateFood(ctx, types.Food{
		CategoryID: dairy.ID,
		Name:       "Greek Yogurt",
		Nutrients:  types.Nutrients{Calories: 97, ProteinG: 9, CarbsG: 3.6, FatG: 5},
	})
	require.NoError(t, err)
	_, err = repo.CreateFood(ctx, types.Food{
		CategoryID: grains.ID,
		Name:       "Oats",
		Nutrients:  types.Nutrients{Calories: 389, ProteinG: 16.9, CarbsG: 66.3, FatG: 6.9},
	})
	require.NoError(t, err)

	page, err := repo.ListFoods(ctx, types.FoodFilter{Keyword: "dair"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, "Greek Yogurt", page.Foods[0].Name)
	require.Equal(t, "Dairy", page.Foods[0].CategoryName)
	require.Equal(t, 100.0, page.Foods[0].ServingGrams)

	page, err = repo.ListFoods(ctx, types.FoodFilter{Keyword: "OATS"})
	require.NoError(t, err)
	require.Len(t, page.Foods, 1)

	page, err = repo.ListFoods(ctx, types.FoodFilter{CategoryID: grains.ID})
	require.NoError(t, err)
	require.Len(t, page.Foods, 1)
	require.Equal(t, "Oats", page.Foods[0].Name)

	page, err = repo.ListFoods(ctx, types.FoodFilter{Pagination: types.Pagination{Limit: 1}})
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)
	require.True(t, page.HasMore)
	require.Equal(t, 1, page.NextOffset)
}

func TestRepository_GetFoodNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetFood(context.Background(), uuid.New())
	require.ErrorIs(t, err, types.ErrFoodNotFound)
}

func TestRepository_CreateRecipeDerivesPerServing(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	oats, err := repo.CreateFood(ctx, types.Food{
		Name:      "Oats",
		Nutrients: types.Nutrients{Calories: 380, ProteinG: 13, CarbsG: 67, FatG: 7},
	})
	require.NoError(t, err)
	milk, err := repo.CreateFood(ctx, types.Food{
		Name:         "Milk",
		Nutrients:    types.Nutrients{Calories: 120, ProteinG: 8, CarbsG: 12, FatG: 5},
		ServingGrams: 250,
	})
	require.NoError(t, err)

	owner := uuid.New()
	recipe, err := repo.CreateRecipe(ctx, types.Recipe{
		OwnerID:  owner,
		Name:     "Porridge",
		Servings: 2,
		Ingredients: []types.RecipeIngredient{
			{FoodID: oats.ID, Grams: 100},
			{FoodID: milk.ID, Grams: 500},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 310.0, recipe.PerServing.Calories)
	require.Equal(t, 14.5, recipe.PerServing.ProteinG)
	require.Equal(t, 45.5, recipe.PerServing.CarbsG)
	require.Equal(t, 8.5, recipe.PerServing.FatG)

	fetched, err := repo.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Ingredients, 2)
	names := []string{fetched.Ingredients[0].FoodName, fetched.Ingredients[1].FoodName}
	require.ElementsMatch(t, []string{"Oats", "Milk"}, names)

	page, err := repo.ListRecipes(ctx, types.RecipeFilter{OwnerID: owner, Keyword: "porr"})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)

	page, err = repo.ListRecipes(ctx, types.RecipeFilter{OwnerID: uuid.New()})
	require.NoError(t, err)
	require.Zero(t, page.Total)
}

func TestRepository_CreateRecipeRejectsUnknownFood(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.CreateRecipe(ctx, types.Recipe{
		OwnerID:     uuid.New(),
		Name:        "Ghost",
		Ingredients: []types.RecipeIngredient{{FoodID: uuid.New(), Grams: 10}},
	})
	require.ErrorIs(t, err, types.ErrFoodNotFound)

	_, err = repo.CreateRecipe(ctx, types.Recipe{OwnerID: uuid.New(), Name: "Empty"})
	require.ErrorIs(t, err, ErrIngredientsRequired)

	page, err := repo.ListRecipes(ctx, types.RecipeFilter{})
	require.NoError(t, err)
	require.Zero(t, page.Total)
}

func TestRepository_Exercises(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	run, err := repo.CreateExercise(ctx, types.Exercise{Name: "Running", Category: types.ExerciseCardio, CaloriesPerHour: 600})
	require.NoError(t, err)
	_, err = repo.CreateExercise(ctx, types.Exercise{Name: "Yoga", Category: "stretching", CaloriesPerHour: 180})
	require.NoError(t, err)
	_, err = repo.CreateExercise(ctx, types.Exercise{Name: "Idle"})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	list, err := repo.ListExercises(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Running", list[0].Name)
	require.Equal(t, types.ExerciseOther, list[1].Category)

	list, err = repo.ListExercises(ctx, "run")
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := repo.GetExercise(ctx, run.ID)
	require.NoError(t, err)
	require.Equal(t, 600.0, got.CaloriesPerHour)

	_, err = repo.GetExercise(ctx, uuid.New())
	require.ErrorIs(t, err, types.ErrExerciseNotFound)
}

func newTestRepository(t *testing.T, opts ...RepositoryOption) *Repository {
	t.Helper()
	db := newTestDB(t)
	applyDDL(t, db, "00003_catalog.up.sql")
	repo, err := NewRepository(RepositoryConfig{
		DB:    db,
		Clock: fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	}, opts...)
	require.NoError(t, err)
	return repo
}

func newTestDB(t *testing.T) *bun.DB {
	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func applyDDL(t *testing.T, db *bun.DB, files ...string) {
	for _, file := range files {
		content, err := os.ReadFile("../data/sql/migrations/sqlite/" + file)
		require.NoError(t, err)
		for _, stmt := range strings.Split(string(content), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			_, err := db.Exec(stmt)
			require.NoError(t, err)
		}
	}
}
