package catalog

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/nutrition"
	"github.com/macromate/go-macromate/pkg/querycache"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/uptrace/bun"
)

const (
	defaultPageLimit = 25
	maxPageLimit     = 100
)

var (
	// ErrNameRequired indicates a catalog entry without a name.
	ErrNameRequired = errors.New("catalog: name required")
	// ErrIngredientsRequired indicates a recipe without ingredients.
	ErrIngredientsRequired = errors.New("catalog: recipe requires at least one ingredient")
	// ErrInvalidQuantity indicates a non positive gram or calorie value.
	ErrInvalidQuantity = errors.New("catalog: quantities must be positive")
)

// RepositoryConfig wires the Bun-backed catalog stores. Individual stores may
// be injected for tests; missing ones are built from DB.
type RepositoryConfig struct {
	DB          *bun.DB
	Categories  repository.Repository[*CategoryRecord]
	Foods       repository.Repository[*FoodRecord]
	Recipes     repository.Repository[*RecipeRecord]
	Ingredients repository.Repository[*IngredientRecord]
	Exercises   repository.Repository[*ExerciseRecord]
	Clock       types.Clock
	IDGen       types.IDGenerator
}

type foodStore interface {
	repository.Repository[*FoodRecord]
}

type exerciseStore interface {
	repository.Repository[*ExerciseRecord]
}

// Repository implements types.CatalogRepository. foods and exercises may be
// cache decorated; criteria reads go through the undecorated stores and, when
// caching is on, through lists keyed by the filter values.
type Repository struct {
	db            *bun.DB
	categories    repository.Repository[*CategoryRecord]
	foods         foodStore
	foodReads     repository.Repository[*FoodRecord]
	recipes       repository.Repository[*RecipeRecord]
	ingredients   repository.Repository[*IngredientRecord]
	exercises     exerciseStore
	exerciseReads repository.Repository[*ExerciseRecord]
	lists         *querycache.Cache
	clock         types.Clock
	idGen         types.IDGenerator
}

// NewRepository constructs the catalog repository.
func NewRepository(cfg RepositoryConfig, opts ...RepositoryOption) (*Repository, error) {
	if cfg.DB == nil {
		return nil, errors.New("catalog: db required")
	}
	options := applyRepositoryOptions(opts)

	categories := cfg.Categories
	if categories == nil {
		categories = newStore(cfg.DB, func() *CategoryRecord { return &CategoryRecord{} },
			func(rec *CategoryRecord) *uuid.UUID { return &rec.ID })
	}
	foods := cfg.Foods
	if foods == nil {
		foods = newStore(cfg.DB, func() *FoodRecord { return &FoodRecord{} },
			func(rec *FoodRecord) *uuid.UUID { return &rec.ID })
	}
	recipes := cfg.Recipes
	if recipes == nil {
		recipes = newStore(cfg.DB, func() *RecipeRecord { return &RecipeRecord{} },
			func(rec *RecipeRecord) *uuid.UUID { return &rec.ID })
	}
	ingredients := cfg.Ingredients
	if ingredients == nil {
		ingredients = newStore(cfg.DB, func() *IngredientRecord { return &IngredientRecord{} },
			func(rec *IngredientRecord) *uuid.UUID { return &rec.ID })
	}
	exercises := cfg.Exercises
	if exercises == nil {
		exercises = newStore(cfg.DB, func() *ExerciseRecord { return &ExerciseRecord{} },
			func(rec *ExerciseRecord) *uuid.UUID { return &rec.ID })
	}

	var (
		foodReads     repository.Repository[*FoodRecord]     = foods
		exerciseReads repository.Repository[*ExerciseRecord] = exercises
		lists         *querycache.Cache
	)
	if options.CacheEnabled {
		cacheCfg := cache.DefaultConfig()
		if options.CacheConfig != nil {
			cacheCfg = *options.CacheConfig
		}
		cacheService, err := cache.NewCacheService(cacheCfg)
		if err != nil {
			return nil, err
		}
		keySerializer := cache.NewDefaultKeySerializer()
		if _, ok := foods.(*repositorycache.CachedRepository[*FoodRecord]); ok {
			foodReads = newStore(cfg.DB, func() *FoodRecord { return &FoodRecord{} },
				func(rec *FoodRecord) *uuid.UUID { return &rec.ID })
		} else {
			foods = repositorycache.New(foods, cacheService, keySerializer)
		}
		if _, ok := exercises.(*repositorycache.CachedRepository[*ExerciseRecord]); ok {
			exerciseReads = newStore(cfg.DB, func() *ExerciseRecord { return &ExerciseRecord{} },
				func(rec *ExerciseRecord) *uuid.UUID { return &rec.ID })
		} else {
			exercises = repositorycache.New(exercises, cacheService, keySerializer)
		}
		lists = querycache.New(cacheService, "catalog")
	}

	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	return &Repository{
		db:            cfg.DB,
		categories:    categories,
		foods:         foods,
		foodReads:     foodReads,
		recipes:       recipes,
		ingredients:   ingredients,
		exercises:     exercises,
		exerciseReads: exerciseReads,
		lists:         lists,
		clock:         clock,
		idGen:         idGen,
	}, nil
}

func newStore[T any](db *bun.DB, newRecord func() T, idOf func(T) *uuid.UUID) repository.Repository[T] {
	return repository.NewRepository(db, repository.ModelHandlers[T]{
		NewRecord: newRecord,
		GetID: func(rec T) uuid.UUID {
			return *idOf(rec)
		},
		SetID: func(rec T, id uuid.UUID) {
			*idOf(rec) = id
		},
	})
}

var _ types.CatalogRepository = (*Repository)(nil)

// Categories exposes the raw category store for CRUD controllers.
func (r *Repository) Categories() repository.Repository[*CategoryRecord] {
	return r.categories
}

// Exercises exposes the raw exercise store for CRUD controllers.
func (r *Repository) Exercises() repository.Repository[*ExerciseRecord] {
	return r.exercises
}

// ListCategories returns every category ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]types.FoodCategory, error) {
	rows, _, err := r.categories.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("name ASC")
	})
	if err != nil {
		return nil, err
	}
	out := make([]types.FoodCategory, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.FoodCategory{ID: row.ID, Name: row.Name, Description: row.Description})
	}
	return out, nil
}

// CreateCategory inserts a category.
func (r *Repository) CreateCategory(ctx context.Context, category types.FoodCategory) (*types.FoodCategory, error) {
	name := strings.TrimSpace(category.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	id := category.ID
	if id == uuid.Nil {
		id = r.idGen.UUID()
	}
	created, err := r.categories.Create(ctx, &CategoryRecord{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(category.Description),
	})
	if err != nil {
		return nil, err
	}
	if err := r.lists.Invalidate(ctx, "foods"); err != nil {
		return nil, err
	}
	return &types.FoodCategory{ID: created.ID, Name: created.Name, Description: created.Description}, nil
}

// ListFoods searches the food catalog. The keyword matches food names and
// the name of the food's category, case-insensitively.
func (r *Repository) ListFoods(ctx context.Context, filter types.FoodFilter) (types.FoodPage, error) {
	limit, offset := normalizePagination(filter.Pagination)
	keyword := strings.ToLower(strings.TrimSpace(filter.Keyword))
	page, err := querycache.Fetch(ctx, r.lists, func(ctx context.Context) (types.FoodPage, error) {
		return r.searchFoods(ctx, keyword, filter.CategoryID, limit, offset)
	}, "foods", "search", keyword, filter.CategoryID.String(), strconv.Itoa(limit), strconv.Itoa(offset))
	if err != nil {
		return types.FoodPage{}, err
	}
	page.Foods = append([]types.Food(nil), page.Foods...)
	return page, nil
}

func (r *Repository) searchFoods(ctx context.Context, keyword string, categoryID uuid.UUID, limit, offset int) (types.FoodPage, error) {
	rows, total, err := r.foodReads.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		if keyword != "" {
			like := "%" + keyword + "%"
			q = q.Where("(lower(f.name) LIKE ? OR f.category_id IN (SELECT id FROM food_categories WHERE lower(name) LIKE ?))", like, like)
		}
		if categoryID != uuid.Nil {
			q = q.Where("f.category_id = ?", categoryID.String())
		}
		return q.Order("f.name ASC").Limit(limit).Offset(offset)
	})
	if err != nil {
		return types.FoodPage{}, err
	}
	names, err := r.categoryNames(ctx, rows)
	if err != nil {
		return types.FoodPage{}, err
	}
	page := types.FoodPage{Foods: make([]types.Food, 0, len(rows)), Total: total}
	for _, row := range rows {
		food := foodToDomain(row)
		food.CategoryName = names[row.CategoryID]
		page.Foods = append(page.Foods, food)
	}
	if next := offset + len(rows); next < total {
		page.HasMore = true
		page.NextOffset = next
	}
	return page, nil
}

// GetFood returns a single food or types.ErrFoodNotFound.
func (r *Repository) GetFood(ctx context.Context, id uuid.UUID) (*types.Food, error) {
	if id == uuid.Nil {
		return nil, types.ErrFoodNotFound
	}
	row, err := r.foods.GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrFoodNotFound
		}
		return nil, err
	}
	names, err := r.categoryNames(ctx, []*FoodRecord{row})
	if err != nil {
		return nil, err
	}
	food := foodToDomain(row)
	food.CategoryName = names[row.CategoryID]
	return &food, nil
}

// GetFoods loads the requested foods keyed by id. Missing ids are absent from
// the map.
func (r *Repository) GetFoods(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]types.Food, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]types.Food{}, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}
	sort.Strings(keys)
	found, err := querycache.Fetch(ctx, r.lists, func(ctx context.Context) (map[uuid.UUID]types.Food, error) {
		rows, _, err := r.foodReads.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("f.id IN (?)", bun.In(keys))
		})
		if err != nil {
			return nil, err
		}
		out := make(map[uuid.UUID]types.Food, len(rows))
		for _, row := range rows {
			out[row.ID] = foodToDomain(row)
		}
		return out, nil
	}, "foods", "ids", strings.Join(keys, ","))
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]types.Food, len(found))
	for id, food := range found {
		out[id] = food
	}
	return out, nil
}

// CreateFood inserts a catalog food. A zero serving size defaults to 100g.
func (r *Repository) CreateFood(ctx context.Context, food types.Food) (*types.Food, error) {
	name := strings.TrimSpace(food.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	n := food.Nutrients
	if n.Calories < 0 || n.ProteinG < 0 || n.CarbsG < 0 || n.FatG < 0 || food.ServingGrams < 0 {
		return nil, ErrInvalidQuantity
	}
	serving := food.ServingGrams
	if serving == 0 {
		serving = 100
	}
	id := food.ID
	if id == uuid.Nil {
		id = r.idGen.UUID()
	}
	created, err := r.foods.Create(ctx, &FoodRecord{
		ID:           id,
		CategoryID:   food.CategoryID,
		Name:         name,
		Calories:     n.Calories,
		ProteinG:     n.ProteinG,
		CarbsG:       n.CarbsG,
		FatG:         n.FatG,
		ServingGrams: serving,
		CreatedAt:    r.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	if err := r.lists.Invalidate(ctx, "foods"); err != nil {
		return nil, err
	}
	out := foodToDomain(created)
	return &out, nil
}

// ListRecipes lists recipes, optionally restricted to one owner.
func (r *Repository) ListRecipes(ctx context.Context, filter types.RecipeFilter) (types.RecipePage, error) {
	limit, offset := normalizePagination(filter.Pagination)
	keyword := strings.ToLower(strings.TrimSpace(filter.Keyword))
	rows, total, err := r.recipes.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		if filter.OwnerID != uuid.Nil {
			q = q.Where("rc.owner_id = ?", filter.OwnerID.String())
		}
		if keyword != "" {
			like := "%" + keyword + "%"
			q = q.Where("(lower(rc.name) LIKE ? OR lower(rc.description) LIKE ?)", like, like)
		}
		return q.Order("rc.created_at DESC").Limit(limit).Offset(offset)
	})
	if err != nil {
		return types.RecipePage{}, err
	}
	page := types.RecipePage{Recipes: make([]types.Recipe, 0, len(rows)), Total: total}
	for _, row := range rows {
		page.Recipes = append(page.Recipes, recipeToDomain(row, nil))
	}
	if next := offset + len(rows); next < total {
		page.HasMore = true
		page.NextOffset = next
	}
	return page, nil
}

// GetRecipe returns a recipe with its ingredients expanded.
func (r *Repository) GetRecipe(ctx context.Context, id uuid.UUID) (*types.Recipe, error) {
	if id == uuid.Nil {
		return nil, types.ErrRecipeNotFound
	}
	row, err := r.recipes.GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrRecipeNotFound
		}
		return nil, err
	}
	ingredients, _, err := r.ingredients.List(ctx, repository.SelectBy("recipe_id", "=", id.String()))
	if err != nil {
		return nil, err
	}
	foodIDs := make([]uuid.UUID, 0, len(ingredients))
	for _, ing := range ingredients {
		foodIDs = append(foodIDs, ing.FoodID)
	}
	foods, err := r.GetFoods(ctx, foodIDs)
	if err != nil {
		return nil, err
	}
	out := recipeToDomain(row, ingredients)
	for i := range out.Ingredients {
		out.Ingredients[i].FoodName = foods[out.Ingredients[i].FoodID].Name
	}
	return &out, nil
}

// CreateRecipe stores the recipe and its ingredients in one transaction. The
// per-serving nutrients are derived from the referenced foods.
func (r *Repository) CreateRecipe(ctx context.Context, recipe types.Recipe) (*types.Recipe, error) {
	name := strings.TrimSpace(recipe.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(recipe.Ingredients) == 0 {
		return nil, ErrIngredientsRequired
	}
	foodIDs := make([]uuid.UUID, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		if ing.Grams <= 0 {
			return nil, ErrInvalidQuantity
		}
		foodIDs = append(foodIDs, ing.FoodID)
	}
	foods, err := r.GetFoods(ctx, foodIDs)
	if err != nil {
		return nil, err
	}

	servings := recipe.Servings
	if servings < 1 {
		servings = 1
	}
	id := recipe.ID
	if id == uuid.Nil {
		id = r.idGen.UUID()
	}
	var total types.Nutrients
	ingredients := make([]*IngredientRecord, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		food, ok := foods[ing.FoodID]
		if !ok {
			return nil, types.ErrFoodNotFound
		}
		total = total.Add(nutrition.Scale(food.Nutrients, ing.Grams, food.ServingGrams))
		ingredients = append(ingredients, &IngredientRecord{
			ID:       r.idGen.UUID(),
			RecipeID: id,
			FoodID:   ing.FoodID,
			Grams:    ing.Grams,
		})
	}
	per := nutrition.PerServing(total, servings)
	now := r.clock.Now()
	row := &RecipeRecord{
		ID:                 id,
		OwnerID:            recipe.OwnerID,
		Name:               name,
		Description:        strings.TrimSpace(recipe.Description),
		Instructions:       strings.TrimSpace(recipe.Instructions),
		Servings:           servings,
		CaloriesPerServing: per.Calories,
		ProteinPerServing:  per.ProteinG,
		CarbsPerServing:    per.CarbsG,
		FatPerServing:      per.FatG,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(&ingredients).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := recipeToDomain(row, ingredients)
	for i := range out.Ingredients {
		out.Ingredients[i].FoodName = foods[out.Ingredients[i].FoodID].Name
	}
	return &out, nil
}

// ListExercises returns catalog exercises whose name contains keyword.
func (r *Repository) ListExercises(ctx context.Context, keyword string) ([]types.Exercise, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	exercises, err := querycache.Fetch(ctx, r.lists, func(ctx context.Context) ([]types.Exercise, error) {
		rows, _, err := r.exerciseReads.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
			if keyword != "" {
				q = q.Where("lower(ex.name) LIKE ?", "%"+keyword+"%")
			}
			return q.Order("ex.name ASC")
		})
		if err != nil {
			return nil, err
		}
		out := make([]types.Exercise, 0, len(rows))
		for _, row := range rows {
			out = append(out, exerciseToDomain(row))
		}
		return out, nil
	}, "exercises", keyword)
	if err != nil {
		return nil, err
	}
	return append([]types.Exercise(nil), exercises...), nil
}

// GetExercise returns one exercise or types.ErrExerciseNotFound.
func (r *Repository) GetExercise(ctx context.Context, id uuid.UUID) (*types.Exercise, error) {
	if id == uuid.Nil {
		return nil, types.ErrExerciseNotFound
	}
	row, err := r.exercises.GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrExerciseNotFound
		}
		return nil, err
	}
	out := exerciseToDomain(row)
	return &out, nil
}

// CreateExercise inserts a catalog exercise.
func (r *Repository) CreateExercise(ctx context.Context, exercise types.Exercise) (*types.Exercise, error) {
	name := strings.TrimSpace(exercise.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if exercise.CaloriesPerHour <= 0 {
		return nil, ErrInvalidQuantity
	}
	category := exercise.Category
	if !category.Valid() {
		category = types.ExerciseOther
	}
	id := exercise.ID
	if id == uuid.Nil {
		id = r.idGen.UUID()
	}
	created, err := r.exercises.Create(ctx, &ExerciseRecord{
		ID:              id,
		Name:            name,
		Category:        string(category),
		CaloriesPerHour: exercise.CaloriesPerHour,
		Description:     strings.TrimSpace(exercise.Description),
	})
	if err != nil {
		return nil, err
	}
	if err := r.lists.Invalidate(ctx, "exercises"); err != nil {
		return nil, err
	}
	out := exerciseToDomain(created)
	return &out, nil
}

func (r *Repository) categoryNames(ctx context.Context, foods []*FoodRecord) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)
	ids := make([]string, 0, len(foods))
	seen := make(map[uuid.UUID]struct{})
	for _, food := range foods {
		if food == nil || food.CategoryID == uuid.Nil {
			continue
		}
		if _, ok := seen[food.CategoryID]; ok {
			continue
		}
		seen[food.CategoryID] = struct{}{}
		ids = append(ids, food.CategoryID.String())
	}
	if len(ids) == 0 {
		return names, nil
	}
	rows, _, err := r.categories.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("fc.id IN (?)", bun.In(ids))
	})
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

func normalizePagination(p types.Pagination) (int, int) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func foodToDomain(row *FoodRecord) types.Food {
	return types.Food{
		ID:         row.ID,
		CategoryID: row.CategoryID,
		Name:       row.Name,
		Nutrients: types.Nutrients{
			Calories: row.Calories,
			ProteinG: row.ProteinG,
			CarbsG:   row.CarbsG,
			FatG:     row.FatG,
		},
		ServingGrams: row.ServingGrams,
		CreatedAt:    row.CreatedAt,
	}
}

func recipeToDomain(row *RecipeRecord, ingredients []*IngredientRecord) types.Recipe {
	out := types.Recipe{
		ID:           row.ID,
		OwnerID:      row.OwnerID,
		Name:         row.Name,
		Description:  row.Description,
		Instructions: row.Instructions,
		Servings:     row.Servings,
		PerServing: types.Nutrients{
			Calories: row.CaloriesPerServing,
			ProteinG: row.ProteinPerServing,
			CarbsG:   row.CarbsPerServing,
			FatG:     row.FatPerServing,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	for _, ing := range ingredients {
		out.Ingredients = append(out.Ingredients, types.RecipeIngredient{
			ID:       ing.ID,
			RecipeID: ing.RecipeID,
			FoodID:   ing.FoodID,
			Grams:    ing.Grams,
		})
	}
	return out
}

func exerciseToDomain(row *ExerciseRecord) types.Exercise {
	return types.Exercise{
		ID:              row.ID,
		Name:            row.Name,
		Category:        types.ExerciseCategory(row.Category),
		CaloriesPerHour: row.CaloriesPerHour,
		Description:     row.Description,
	}
}
