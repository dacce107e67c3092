package httpapi

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-router"
	"github.com/macromate/go-macromate/command"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/macromate/go-macromate/query"
)

func (a *API) searchFoods(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	categoryID, err := optionalUUID(c.Query("category_id"), "category_id")
	if err != nil {
		return a.fail(c, err)
	}
	page, err := a.queries.FoodSearch.Query(c.Context(), query.FoodSearchInput{
		Actor: actor,
		Filter: types.FoodFilter{
			Keyword:    c.Query("q"),
			CategoryID: categoryID,
			Pagination: pagination(c),
		},
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"foods":       page.Foods,
		"total":       page.Total,
		"next_offset": page.NextOffset,
		"has_more":    page.HasMore,
	})
}

func (a *API) listRecipes(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	page, err := a.queries.RecipeList.Query(c.Context(), query.RecipeListInput{
		Keyword:    c.Query("q"),
		Actor:      actor,
		Pagination: pagination(c),
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"recipes":     page.Recipes,
		"total":       page.Total,
		"next_offset": page.NextOffset,
		"has_more":    page.HasMore,
	})
}

type ingredientRequest struct {
	FoodID string  `json:"food_id"`
	Grams  float64 `json:"grams"`
}

type recipeRequest struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Instructions string              `json:"instructions"`
	Servings     int                 `json:"servings"`
	Ingredients  []ingredientRequest `json:"ingredients"`
}

func (a *API) createRecipe(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	var req recipeRequest
	if err := a.bind(c, &req); err != nil {
		return a.fail(c, err)
	}
	ingredients := make([]command.RecipeIngredientInput, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		foodID, err := parseUUID(ing.FoodID, "food_id")
		if err != nil {
			return a.fail(c, err)
		}
		ingredients = append(ingredients, command.RecipeIngredientInput{FoodID: foodID, Grams: ing.Grams})
	}
	recipe := &types.Recipe{}
	err = a.commands.RecipeCreate.Execute(c.Context(), command.RecipeCreateInput{
		Name:         req.Name,
		Description:  req.Description,
		Instructions: req.Instructions,
		Servings:     req.Servings,
		Ingredients:  ingredients,
		Actor:        actor,
		Result:       recipe,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusCreated, recipe)
}

func (a *API) recipeDetail(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	recipeID, err := parseUUID(c.Param("id"), "recipe id")
	if err != nil {
		return a.fail(c, err)
	}
	recipe, err := a.queries.RecipeDetail.Query(c.Context(), query.RecipeDetailInput{
		RecipeID: recipeID,
		Actor:    actor,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, recipe)
}

func (a *API) listExercises(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	exercises, err := a.queries.ExerciseList.Query(c.Context(), query.ExerciseListInput{
		Keyword: c.Query("q"),
		Actor:   actor,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"exercises": exercises})
}

type foodLogRequest struct {
	Day      string  `json:"day"`
	MealType string  `json:"meal_type"`
	MealName string  `json:"meal_name"`
	FoodID   string  `json:"food_id"`
	Grams    float64 `json:"grams"`
}

func (a *API) logFood(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	var req foodLogRequest
	if err := a.bind(c, &req); err != nil {
		return a.fail(c, err)
	}
	day, err := parseDay(req.Day, a.clock.Now())
	if err != nil {
		return a.fail(c, err)
	}
	foodID, err := parseUUID(req.FoodID, "food_id")
	if err != nil {
		return a.fail(c, err)
	}
	log := &types.DailyLog{}
	err = a.commands.FoodLog.Execute(c.Context(), command.FoodLogInput{
		Day:      day,
		MealType: strings.TrimSpace(req.MealType),
		MealName: req.MealName,
		FoodID:   foodID,
		Grams:    req.Grams,
		Actor:    actor,
		Result:   log,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusCreated, log)
}

type waterLogRequest struct {
	Day    string  `json:"day"`
	Liters float64 `json:"liters"`
}

func (a *API) logWater(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	var req waterLogRequest
	if err := a.bind(c, &req); err != nil {
		return a.fail(c, err)
	}
	day, err := parseDay(req.Day, a.clock.Now())
	if err != nil {
		return a.fail(c, err)
	}
	log := &types.DailyLog{}
	err = a.commands.WaterLog.Execute(c.Context(), command.WaterLogInput{
		Day:    day,
		Liters: req.Liters,
		Actor:  actor,
		Result: log,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusCreated, log)
}

type exerciseLogRequest struct {
	Day             string `json:"day"`
	ExerciseID      string `json:"exercise_id"`
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes"`
}

func (a *API) logExercise(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	var req exerciseLogRequest
	if err := a.bind(c, &req); err != nil {
		return a.fail(c, err)
	}
	day, err := parseDay(req.Day, a.clock.Now())
	if err != nil {
		return a.fail(c, err)
	}
	exerciseID, err := parseUUID(req.ExerciseID, "exercise_id")
	if err != nil {
		return a.fail(c, err)
	}
	log := &types.DailyLog{}
	err = a.commands.ExerciseLog.Execute(c.Context(), command.ExerciseLogInput{
		Day:             day,
		ExerciseID:      exerciseID,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		Actor:           actor,
		Result:          log,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusCreated, log)
}

func (a *API) dailySummary(c router.Context) error {
	actor, err := a.actor(c)
	if err != nil {
		return a.fail(c, err)
	}
	day, err := parseDay(c.Param("day"), a.clock.Now())
	if err != nil {
		return a.fail(c, err)
	}
	summary, err := a.queries.DailySummary.Query(c.Context(), query.DailySummaryInput{
		Day:   day,
		Actor: actor,
	})
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
