package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/activity"
	"github.com/macromate/go-macromate/pkg/types"
)

// CatalogCommandConfig wires dependencies for recipe commands.
type CatalogCommandConfig struct {
	Repository types.CatalogRepository
	Activity   types.ActivitySink
	Hooks      types.Hooks
	Clock      types.Clock
	Guard      access.Guard
}

// RecipeIngredientInput references a catalog food by id.
type RecipeIngredientInput struct {
	FoodID uuid.UUID
	Grams  float64
}

// RecipeCreateInput captures a new recipe owned by the user.
type RecipeCreateInput struct {
	OwnerID      uuid.UUID
	Name         string
	Description  string
	Instructions string
	Servings     int
	Ingredients  []RecipeIngredientInput
	Actor        types.ActorRef
	Result       *types.Recipe
}

// Type implements gocommand.Message.
func (RecipeCreateInput) Type() string {
	return "command.recipe.create"
}

// Validate implements gocommand.Message.
func (input RecipeCreateInput) Validate() error {
	switch {
	case input.Actor.ID == uuid.Nil:
		return ErrActorRequired
	case strings.TrimSpace(input.Name) == "":
		return ErrRecipeNameRequired
	case len(input.Ingredients) == 0:
		return ErrIngredientsRequired
	}
	for _, ing := range input.Ingredients {
		if ing.FoodID == uuid.Nil {
			return ErrFoodIDRequired
		}
		if ing.Grams <= 0 {
			return ErrInvalidGrams
		}
	}
	return nil
}

// RecipeCreateCommand stores a recipe and its per-serving nutrients.
type RecipeCreateCommand struct {
	repo  types.CatalogRepository
	sink  types.ActivitySink
	hooks types.Hooks
	clock types.Clock
	guard access.Guard
}

// NewRecipeCreateCommand constructs the handler.
func NewRecipeCreateCommand(cfg CatalogCommandConfig) *RecipeCreateCommand {
	return &RecipeCreateCommand{
		repo:  cfg.Repository,
		sink:  safeActivitySink(cfg.Activity),
		hooks: safeHooks(cfg.Hooks),
		clock: safeClock(cfg.Clock),
		guard: safeGuard(cfg.Guard),
	}
}

var _ gocommand.Commander[RecipeCreateInput] = (*RecipeCreateCommand)(nil)

// Execute creates the recipe. Unknown foods fail with types.ErrFoodNotFound.
func (c *RecipeCreateCommand) Execute(ctx context.Context, input RecipeCreateInput) error {
	if c.repo == nil {
		return types.ErrMissingCatalogRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}
	ownerID, err := c.guard.Enforce(ctx, input.Actor, types.PolicyActionRecipesWrite, input.OwnerID)
	if err != nil {
		return err
	}

	servings := input.Servings
	if servings < 1 {
		servings = 1
	}
	ingredients := make([]types.RecipeIngredient, 0, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		ingredients = append(ingredients, types.RecipeIngredient{FoodID: ing.FoodID, Grams: ing.Grams})
	}
	recipe, err := c.repo.CreateRecipe(ctx, types.Recipe{
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(input.Name),
		Description:  strings.TrimSpace(input.Description),
		Instructions: strings.TrimSpace(input.Instructions),
		Servings:     servings,
		Ingredients:  ingredients,
	})
	if err != nil {
		return err
	}
	if input.Result != nil {
		*input.Result = *recipe
	}

	record(ctx, c.sink, c.hooks, types.ActivityRecord{
		UserID:     ownerID,
		ActorID:    input.Actor.ID,
		Verb:       activity.VerbRecipeCreated,
		ObjectType: "recipe",
		ObjectID:   recipe.ID.String(),
		Channel:    activity.ChannelCatalog,
		Data: map[string]any{
			"name":        recipe.Name,
			"servings":    recipe.Servings,
			"ingredients": len(recipe.Ingredients),
		},
		OccurredAt: now(c.clock),
	})
	return nil
}
