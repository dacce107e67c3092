package query

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/pkg/types"
)

// FoodSearchInput searches the food catalog.
type FoodSearchInput struct {
	Actor  types.ActorRef
	Filter types.FoodFilter
}

// Type implements gocommand.Message.
func (FoodSearchInput) Type() string {
	return "query.catalog.foods"
}

// FoodSearchQuery searches foods by name or category.
type FoodSearchQuery struct {
	repo types.CatalogRepository
}

// NewFoodSearchQuery constructs the helper.
func NewFoodSearchQuery(repo types.CatalogRepository) *FoodSearchQuery {
	return &FoodSearchQuery{repo: repo}
}

var _ gocommand.Querier[FoodSearchInput, types.FoodPage] = (*FoodSearchQuery)(nil)

// Query returns a page of foods.
func (q *FoodSearchQuery) Query(ctx context.Context, input FoodSearchInput) (types.FoodPage, error) {
	if q.repo == nil {
		return types.FoodPage{}, types.ErrMissingCatalogRepository
	}
	if input.Actor.ID == uuid.Nil {
		return types.FoodPage{}, types.ErrActorRequired
	}
	filter := input.Filter
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	return q.repo.ListFoods(ctx, filter)
}

// CategoryListQuery lists food categories.
type CategoryListQuery struct {
	repo types.CatalogRepository
}

// NewCategoryListQuery constructs the helper.
func NewCategoryListQuery(repo types.CatalogRepository) *CategoryListQuery {
	return &CategoryListQuery{repo: repo}
}

// CategoryListInput lists every food category.
type CategoryListInput struct {
	Actor types.ActorRef
}

// Type implements gocommand.Message.
func (CategoryListInput) Type() string {
	return "query.catalog.categories"
}

var _ gocommand.Querier[CategoryListInput, []types.FoodCategory] = (*CategoryListQuery)(nil)

// Query returns every category.
func (q *CategoryListQuery) Query(ctx context.Context, input CategoryListInput) ([]types.FoodCategory, error) {
	if q.repo == nil {
		return nil, types.ErrMissingCatalogRepository
	}
	if input.Actor.ID == uuid.Nil {
		return nil, types.ErrActorRequired
	}
	return q.repo.ListCategories(ctx)
}

// RecipeListInput lists a user's recipes.
type RecipeListInput struct {
	UserID     uuid.UUID
	Keyword    string
	Actor      types.ActorRef
	Pagination types.Pagination
}

// Type implements gocommand.Message.
func (RecipeListInput) Type() string {
	return "query.recipe.list"
}

// RecipeListQuery lists recipes owned by a user.
type RecipeListQuery struct {
	repo  types.CatalogRepository
	guard access.Guard
}

// NewRecipeListQuery constructs the helper.
func NewRecipeListQuery(repo types.CatalogRepository, guard access.Guard) *RecipeListQuery {
	return &RecipeListQuery{repo: repo, guard: safeGuard(guard)}
}

var _ gocommand.Querier[RecipeListInput, types.RecipePage] = (*RecipeListQuery)(nil)

// Query returns a page of recipes.
func (q *RecipeListQuery) Query(ctx context.Context, input RecipeListInput) (types.RecipePage, error) {
	if q.repo == nil {
		return types.RecipePage{}, types.ErrMissingCatalogRepository
	}
	owner, err := q.guard.Enforce(ctx, input.Actor, types.PolicyActionRecipesRead, input.UserID)
	if err != nil {
		return types.RecipePage{}, err
	}
	return q.repo.ListRecipes(ctx, types.RecipeFilter{
		OwnerID:    owner,
		Keyword:    strings.TrimSpace(input.Keyword),
		Pagination: input.Pagination,
	})
}

// RecipeDetailInput selects a recipe.
type RecipeDetailInput struct {
	RecipeID uuid.UUID
	Actor    types.ActorRef
}

// Type implements gocommand.Message.
func (RecipeDetailInput) Type() string {
	return "query.recipe.detail"
}

// RecipeDetailQuery returns a recipe with its ingredients. Recipes owned by
// someone else are reported as missing.
type RecipeDetailQuery struct {
	repo  types.CatalogRepository
	guard access.Guard
}

// NewRecipeDetailQuery constructs the helper.
func NewRecipeDetailQuery(repo types.CatalogRepository, guard access.Guard) *RecipeDetailQuery {
	return &RecipeDetailQuery{repo: repo, guard: safeGuard(guard)}
}

var _ gocommand.Querier[RecipeDetailInput, *types.Recipe] = (*RecipeDetailQuery)(nil)

// Query returns the recipe.
func (q *RecipeDetailQuery) Query(ctx context.Context, input RecipeDetailInput) (*types.Recipe, error) {
	if q.repo == nil {
		return nil, types.ErrMissingCatalogRepository
	}
	if input.Actor.ID == uuid.Nil {
		return nil, types.ErrActorRequired
	}
	recipe, err := q.repo.GetRecipe(ctx, input.RecipeID)
	if err != nil {
		return nil, err
	}
	if _, err := q.guard.Enforce(ctx, input.Actor, types.PolicyActionRecipesRead, recipe.OwnerID); err != nil {
		return nil, types.ErrRecipeNotFound
	}
	return recipe, nil
}

// ExerciseListInput searches the exercise catalog.
type ExerciseListInput struct {
	Keyword string
	Actor   types.ActorRef
}

// Type implements gocommand.Message.
func (ExerciseListInput) Type() string {
	return "query.catalog.exercises"
}

// ExerciseListQuery lists catalog exercises.
type ExerciseListQuery struct {
	repo types.CatalogRepository
}

// NewExerciseListQuery constructs the helper.
func NewExerciseListQuery(repo types.CatalogRepository) *ExerciseListQuery {
	return &ExerciseListQuery{repo: repo}
}

var _ gocommand.Querier[ExerciseListInput, []types.Exercise] = (*ExerciseListQuery)(nil)

// Query returns matching exercises.
func (q *ExerciseListQuery) Query(ctx context.Context, input ExerciseListInput) ([]types.Exercise, error) {
	if q.repo == nil {
		return nil, types.ErrMissingCatalogRepository
	}
	if input.Actor.ID == uuid.Nil {
		return nil, types.ErrActorRequired
	}
	return q.repo.ListExercises(ctx, strings.TrimSpace(input.Keyword))
}
