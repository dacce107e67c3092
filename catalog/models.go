package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CategoryRecord models the food_categories row.
type CategoryRecord struct {
	bun.BaseModel `bun:"table:food_categories,alias:fc" crud:"resource:food-category"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name" json:"name"`
	Description string    `bun:"description" json:"description"`
}

// FoodRecord models the foods row. Nutrient columns refer to ServingGrams.
type FoodRecord struct {
	bun.BaseModel `bun:"table:foods,alias:f"`

	ID           uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	CategoryID   uuid.UUID `bun:"category_id,type:uuid,nullzero" json:"category_id"`
	Name         string    `bun:"name" json:"name"`
	Calories     float64   `bun:"calories" json:"calories"`
	ProteinG     float64   `bun:"protein_g" json:"protein_g"`
	CarbsG       float64   `bun:"carbs_g" json:"carbs_g"`
	FatG         float64   `bun:"fat_g" json:"fat_g"`
	ServingGrams float64   `bun:"serving_grams" json:"serving_grams"`
	CreatedAt    time.Time `bun:"created_at" json:"created_at"`
}

// RecipeRecord models the recipes row.
type RecipeRecord struct {
	bun.BaseModel `bun:"table:recipes,alias:rc"`

	ID                 uuid.UUID `bun:"id,pk,type:uuid"`
	OwnerID            uuid.UUID `bun:"owner_id,type:uuid"`
	Name               string    `bun:"name"`
	Description        string    `bun:"description"`
	Instructions       string    `bun:"instructions"`
	Servings           int       `bun:"servings"`
	CaloriesPerServing float64   `bun:"calories_per_serving"`
	ProteinPerServing  float64   `bun:"protein_per_serving"`
	CarbsPerServing    float64   `bun:"carbs_per_serving"`
	FatPerServing      float64   `bun:"fat_per_serving"`
	CreatedAt          time.Time `bun:"created_at"`
	UpdatedAt          time.Time `bun:"updated_at"`
}

// IngredientRecord models the recipe_ingredients row.
type IngredientRecord struct {
	bun.BaseModel `bun:"table:recipe_ingredients,alias:ri"`

	ID       uuid.UUID `bun:"id,pk,type:uuid"`
	RecipeID uuid.UUID `bun:"recipe_id,type:uuid"`
	FoodID   uuid.UUID `bun:"food_id,type:uuid"`
	Grams    float64   `bun:"grams"`
}

// ExerciseRecord models the exercises row.
type ExerciseRecord struct {
	bun.BaseModel `bun:"table:exercises,alias:ex" crud:"resource:exercise"`

	ID              uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name            string    `bun:"name" json:"name"`
	Category        string    `bun:"category" json:"category"`
	CaloriesPerHour float64   `bun:"calories_per_hour" json:"calories_per_hour"`
	Description     string    `bun:"description" json:"description"`
}
