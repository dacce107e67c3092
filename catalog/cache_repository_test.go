package catalog

import (
	"context"
	"testing"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestCatalogRepository_CacheWrapsReadHeavyStores(t *testing.T) {
	db := newTestDB(t)
	applyDDL(t, db, "00003_catalog.up.sql")

	repo, err := NewRepository(RepositoryConfig{DB: db}, WithCache(true))
	require.NoError(t, err)

	_, ok := repo.foods.(*repositorycache.CachedRepository[*FoodRecord])
	require.True(t, ok)
	_, ok = repo.exercises.(*repositorycache.CachedRepository[*ExerciseRecord])
	require.True(t, ok)
}

func TestCatalogRepository_CacheDisabledByDefault(t *testing.T) {
	repo := newTestRepository(t)

	_, ok := repo.foods.(*repositorycache.CachedRepository[*FoodRecord])
	require.False(t, ok)
}

func TestCatalogRepository_CacheDoesNotDoubleWrap(t *testing.T) {
	db := newTestDB(t)
	applyDDL(t, db, "00003_catalog.up.sql")

	cacheService, err := cache.NewCacheService(cache.DefaultConfig())
	require.NoError(t, err)
	cached := repositorycache.New(newBaseFoodRepository(db), cacheService, cache.NewDefaultKeySerializer())

	repo, err := NewRepository(RepositoryConfig{DB: db, Foods: cached}, WithCache(true), WithCacheConfig(cache.DefaultConfig()))
	require.NoError(t, err)

	stored, ok := repo.foods.(*repositorycache.CachedRepository[*FoodRecord])
	require.True(t, ok)
	require.Same(t, cached, stored)
}

func TestCatalogRepository_ListFoodsGoesThroughStore(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db, "00003_catalog.up.sql")

	spy := &spyFoodRepository{Repository: newBaseFoodRepository(db)}
	repo, err := NewRepository(RepositoryConfig{DB: db, Foods: spy})
	require.NoError(t, err)

	_, err = repo.ListFoods(ctx, types.FoodFilter{Keyword: "rice"})
	require.NoError(t, err)
	_, err = repo.GetFoods(ctx, []uuid.UUID{uuid.New()})
	require.NoError(t, err)
	require.Equal(t, 2, spy.listCalls)
}

type spyFoodRepository struct {
	repository.Repository[*FoodRecord]
	listCalls int
}

func (s *spyFoodRepository) List(ctx context.Context, criteria ...repository.SelectCriteria) ([]*FoodRecord, int, error) {
	s.listCalls++
	return s.Repository.List(ctx, criteria...)
}

func newBaseFoodRepository(db *bun.DB) repository.Repository[*FoodRecord] {
	return repository.NewRepository(db, repository.ModelHandlers[*FoodRecord]{
		NewRecord: func() *FoodRecord { return &FoodRecord{} },
		GetID: func(rec *FoodRecord) uuid.UUID {
			if rec == nil {
				return uuid.Nil
			}
			return rec.ID
		},
		SetID: func(rec *FoodRecord, id uuid.UUID) {
			if rec != nil {
				rec.ID = id
			}
		},
	})
}

func TestCatalogRepository_CachedSearchesKeyOnFilterValues(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, WithCache(true))

	grains, err := repo.CreateCategory(ctx, types.FoodCategory{Name: "Grains"})
	require.NoError(t, err)
	oats, err := repo.CreateFood(ctx, types.Food{CategoryID: grains.ID, Name: "Oats", Nutrients: types.Nutrients{Calories: 389}})
	require.NoError(t, err)
	rice, err := repo.CreateFood(ctx, types.Food{Name: "Rice", Nutrients: types.Nutrients{Calories: 130}})
	require.NoError(t, err)

	page, err := repo.ListFoods(ctx, types.FoodFilter{Keyword: "oat"})
	require.NoError(t, err)
	require.Equal(t, []string{"Oats"}, foodNames(page.Foods))

	page, err = repo.ListFoods(ctx, types.FoodFilter{Keyword: "rice"})
	require.NoError(t, err)
	require.Equal(t, []string{"Rice"}, foodNames(page.Foods))

	page, err = repo.ListFoods(ctx, types.FoodFilter{CategoryID: grains.ID})
	require.NoError(t, err)
	require.Equal(t, []string{"Oats"}, foodNames(page.Foods))

	found, err := repo.GetFoods(ctx, []uuid.UUID{oats.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Contains(t, found, oats.ID)

	found, err = repo.GetFoods(ctx, []uuid.UUID{rice.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Contains(t, found, rice.ID)

	_, err = repo.CreateFood(ctx, types.Food{Name: "Rice Cakes", Nutrients: types.Nutrients{Calories: 387}})
	require.NoError(t, err)
	page, err = repo.ListFoods(ctx, types.FoodFilter{Keyword: "rice"})
	require.NoError(t, err)
	require.Equal(t, []string{"Rice", "Rice Cakes"}, foodNames(page.Foods))
}

func TestCatalogRepository_CachedExerciseListsKeyOnKeyword(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, WithCache(true))

	_, err := repo.CreateExercise(ctx, types.Exercise{Name: "Running", CaloriesPerHour: 600})
	require.NoError(t, err)
	_, err = repo.CreateExercise(ctx, types.Exercise{Name: "Yoga", CaloriesPerHour: 180})
	require.NoError(t, err)

	list, err := repo.ListExercises(ctx, "run")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Running", list[0].Name)

	list, err = repo.ListExercises(ctx, "yoga")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Yoga", list[0].Name)

	_, err = repo.CreateExercise(ctx, types.Exercise{Name: "Trail Running", CaloriesPerHour: 700})
	require.NoError(t, err)
	list, err = repo.ListExercises(ctx, "run")
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestCatalogRepository_CacheServesRepeatedSearches(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	applyDDL(t, db, "00003_catalog.up.sql")

	spy := &spyFoodRepository{Repository: newBaseFoodRepository(db)}
	repo, err := NewRepository(RepositoryConfig{DB: db, Foods: spy}, WithCache(true))
	require.NoError(t, err)

	_, err = repo.ListFoods(ctx, types.FoodFilter{Keyword: "oat"})
	require.NoError(t, err)
	_, err = repo.ListFoods(ctx, types.FoodFilter{Keyword: "oat"})
	require.NoError(t, err)
	require.Equal(t, 1, spy.listCalls)

	_, err = repo.ListFoods(ctx, types.FoodFilter{Keyword: "rice"})
	require.NoError(t, err)
	require.Equal(t, 2, spy.listCalls)
}

func foodNames(foods []types.Food) []string {
	names := make([]string, 0, len(foods))
	for _, food := range foods {
		names = append(names, food.Name)
	}
	return names
}
