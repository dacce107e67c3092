package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Nutrients groups the energy and macronutrient values of a portion.
type Nutrients struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Add returns the element-wise sum.
func (n Nutrients) Add(other Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + other.Calories,
		ProteinG: n.ProteinG + other.ProteinG,
		CarbsG:   n.CarbsG + other.CarbsG,
		FatG:     n.FatG + other.FatG,
	}
}

// FoodCategory groups catalog foods.
type FoodCategory struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// Food is a catalog entry whose nutrients refer to ServingGrams of product.
type Food struct {
	ID           uuid.UUID `json:"id"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Name         string    `json:"name"`
	Nutrients    Nutrients `json:"nutrients"`
	ServingGrams float64   `json:"serving_grams"`
	CreatedAt    time.Time `json:"created_at"`
}

// FoodFilter narrows food searches. Keyword matches food and category names.
type FoodFilter struct {
	Keyword    string
	CategoryID uuid.UUID
	Pagination Pagination
}

// FoodPage is a paginated food listing.
type FoodPage struct {
	Foods      []Food
	Total      int
	NextOffset int
	HasMore    bool
}

// RecipeIngredient links a food and quantity to a recipe.
type RecipeIngredient struct {
	ID       uuid.UUID `json:"id"`
	RecipeID uuid.UUID `json:"recipe_id"`
	FoodID   uuid.UUID `json:"food_id"`
	FoodName string    `json:"food_name,omitempty"`
	Grams    float64   `json:"grams"`
}

// Recipe is a user owned composition of foods. PerServing is derived from the
// ingredients when the recipe is created.
type Recipe struct {
	ID           uuid.UUID          `json:"id"`
	OwnerID      uuid.UUID          `json:"owner_id"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	Instructions string             `json:"instructions,omitempty"`
	Servings     int                `json:"servings"`
	PerServing   Nutrients          `json:"per_serving"`
	Ingredients  []RecipeIngredient `json:"ingredients,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// RecipeFilter narrows recipe listings. Keyword matches name and description.
type RecipeFilter struct {
	OwnerID    uuid.UUID
	Keyword    string
	Pagination Pagination
}

// RecipePage is a paginated recipe listing.
type RecipePage struct {
	Recipes    []Recipe
	Total      int
	NextOffset int
	HasMore    bool
}

// ExerciseCategory classifies catalog exercises.
type ExerciseCategory string

const (
	ExerciseCardio      ExerciseCategory = "cardio"
	ExerciseStrength    ExerciseCategory = "strength"
	ExerciseFlexibility ExerciseCategory = "flexibility"
	ExerciseEndurance   ExerciseCategory = "endurance"
	ExerciseOther       ExerciseCategory = "other"
)

// Valid reports whether the category is one of the known values.
func (c ExerciseCategory) Valid() bool {
	switch c {
	case ExerciseCardio, ExerciseStrength, ExerciseFlexibility, ExerciseEndurance, ExerciseOther:
		return true
	}
	return false
}

// Exercise is a catalog activity with its hourly energy expenditure.
type Exercise struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Category        ExerciseCategory `json:"category"`
	CaloriesPerHour float64          `json:"calories_per_hour"`
	Description     string           `json:"description,omitempty"`
}

// CatalogRepository exposes the food, recipe and exercise catalogs.
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]FoodCategory, error)
	CreateCategory(ctx context.Context, category FoodCategory) (*FoodCategory, error)
	ListFoods(ctx context.Context, filter FoodFilter) (FoodPage, error)
	GetFood(ctx context.Context, id uuid.UUID) (*Food, error)
	GetFoods(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Food, error)
	CreateFood(ctx context.Context, food Food) (*Food, error)
	ListRecipes(ctx context.Context, filter RecipeFilter) (RecipePage, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*Recipe, error)
	CreateRecipe(ctx context.Context, recipe Recipe) (*Recipe, error)
	ListExercises(ctx context.Context, keyword string) ([]Exercise, error)
	GetExercise(ctx context.Context, id uuid.UUID) (*Exercise, error)
	CreateExercise(ctx context.Context, exercise Exercise) (*Exercise, error)
}
