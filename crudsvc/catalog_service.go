package crudsvc

import (
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-crud"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/macromate/go-macromate/catalog"
	"github.com/macromate/go-macromate/crudguard"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/macromate/go-macromate/query"
)

// CategoryServiceConfig wires the food category resource.
type CategoryServiceConfig struct {
	Guard GuardAdapter
	List  gocommand.Querier[query.CategoryListInput, []types.FoodCategory]
	Store repository.Repository[*catalog.CategoryRecord]
}

// CategoryService serves food categories through go-crud. Writes are disabled;
// categories are managed by the seed command.
type CategoryService struct {
	guard  GuardAdapter
	list   gocommand.Querier[query.CategoryListInput, []types.FoodCategory]
	store  repository.Repository[*catalog.CategoryRecord]
	logger types.Logger
}

// NewCategoryService constructs the adapter.
func NewCategoryService(cfg CategoryServiceConfig, opts ...ServiceOption) *CategoryService {
	options := applyOptions(opts)
	return &CategoryService{
		guard:  cfg.Guard,
		list:   cfg.List,
		store:  cfg.Store,
		logger: options.logger,
	}
}

func (s *CategoryService) Create(crud.Context, *catalog.CategoryRecord) (*catalog.CategoryRecord, error) {
	return nil, notSupported(crud.OpCreate)
}

func (s *CategoryService) CreateBatch(crud.Context, []*catalog.CategoryRecord) ([]*catalog.CategoryRecord, error) {
	return nil, notSupported(crud.OpCreateBatch)
}

func (s *CategoryService) Update(crud.Context, *catalog.CategoryRecord) (*catalog.CategoryRecord, error) {
	return nil, notSupported(crud.OpUpdate)
}

func (s *CategoryService) UpdateBatch(crud.Context, []*catalog.CategoryRecord) ([]*catalog.CategoryRecord, error) {
	return nil, notSupported(crud.OpUpdateBatch)
}

func (s *CategoryService) Delete(crud.Context, *catalog.CategoryRecord) error {
	return notSupported(crud.OpDelete)
}

func (s *CategoryService) DeleteBatch(crud.Context, []*catalog.CategoryRecord) error {
	return notSupported(crud.OpDeleteBatch)
}

func (s *CategoryService) Index(ctx crud.Context, _ []repository.SelectCriteria) ([]*catalog.CategoryRecord, int, error) {
	if s.list == nil || s.guard == nil {
		return nil, 0, unavailable("category list query")
	}
	res, err := s.guard.Enforce(crudguard.GuardInput{Context: ctx, Operation: crud.OpList})
	if err != nil {
		return nil, 0, err
	}
	categories, err := s.list.Query(ctx.UserContext(), query.CategoryListInput{Actor: res.Actor})
	if err != nil {
		return nil, 0, err
	}
	records := make([]*catalog.CategoryRecord, 0, len(categories))
	for _, c := range categories {
		records = append(records, &catalog.CategoryRecord{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
		})
	}
	return records, len(records), nil
}

func (s *CategoryService) Show(ctx crud.Context, id string, _ []repository.SelectCriteria) (*catalog.CategoryRecord, error) {
	if s.store == nil || s.guard == nil {
		return nil, unavailable("category store")
	}
	if _, err := s.guard.Enforce(crudguard.GuardInput{Context: ctx, Operation: crud.OpRead}); err != nil {
		return nil, err
	}
	categoryID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	record, err := s.store.GetByID(ctx.UserContext(), categoryID.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, notFound("food category")
		}
		s.logger.Error("crudsvc: category lookup failed", err, "id", id)
		return nil, err
	}
	return record, nil
}

// ExerciseServiceConfig wires the exercise resource.
type ExerciseServiceConfig struct {
	Guard GuardAdapter
	List  gocommand.Querier[query.ExerciseListInput, []types.Exercise]
	Store repository.Repository[*catalog.ExerciseRecord]
}

// ExerciseService serves the exercise catalog through go-crud. The `q` query
// parameter filters by name.
type ExerciseService struct {
	guard  GuardAdapter
	list   gocommand.Querier[query.ExerciseListInput, []types.Exercise]
	store  repository.Repository[*catalog.ExerciseRecord]
	logger types.Logger
}

// NewExerciseService constructs the adapter.
func NewExerciseService(cfg ExerciseServiceConfig, opts ...ServiceOption) *ExerciseService {
	options := applyOptions(opts)
	return &ExerciseService{
		guard:  cfg.Guard,
		list:   cfg.List,
		store:  cfg.Store,
		logger: options.logger,
	}
}

func (s *ExerciseService) Create(crud.Context, *catalog.ExerciseRecord) (*catalog.ExerciseRecord, error) {
	return nil, notSupported(crud.OpCreate)
}

func (s *ExerciseService) CreateBatch(crud.Context, []*catalog.ExerciseRecord) ([]*catalog.ExerciseRecord, error) {
	return nil, notSupported(crud.OpCreateBatch)
}

func (s *ExerciseService) Update(crud.Context, *catalog.ExerciseRecord) (*catalog.ExerciseRecord, error) {
	return nil, notSupported(crud.OpUpdate)
}

func (s *ExerciseService) UpdateBatch(crud.Context, []*catalog.ExerciseRecord) ([]*catalog.ExerciseRecord, error) {
	return nil, notSupported(crud.OpUpdateBatch)
}

func (s *ExerciseService) Delete(crud.Context, *catalog.ExerciseRecord) error {
	return notSupported(crud.OpDelete)
}

func (s *ExerciseService) DeleteBatch(crud.Context, []*catalog.ExerciseRecord) error {
	return notSupported(crud.OpDeleteBatch)
}

func (s *ExerciseService) Index(ctx crud.Context, _ []repository.SelectCriteria) ([]*catalog.ExerciseRecord, int, error) {
	if s.list == nil || s.guard == nil {
		return nil, 0, unavailable("exercise list query")
	}
	res, err := s.guard.Enforce(crudguard.GuardInput{Context: ctx, Operation: crud.OpList})
	if err != nil {
		return nil, 0, err
	}
	exercises, err := s.list.Query(ctx.UserContext(), query.ExerciseListInput{
		Keyword: strings.TrimSpace(ctx.Query("q")),
		Actor:   res.Actor,
	})
	if err != nil {
		return nil, 0, err
	}
	records := make([]*catalog.ExerciseRecord, 0, len(exercises))
	for _, ex := range exercises {
		records = append(records, &catalog.ExerciseRecord{
			ID:              ex.ID,
			Name:            ex.Name,
			Category:        string(ex.Category),
			CaloriesPerHour: ex.CaloriesPerHour,
			Description:     ex.Description,
		})
	}
	return records, len(records), nil
}

func (s *ExerciseService) Show(ctx crud.Context, id string, _ []repository.SelectCriteria) (*catalog.ExerciseRecord, error) {
	if s.store == nil || s.guard == nil {
		return nil, unavailable("exercise store")
	}
	if _, err := s.guard.Enforce(crudguard.GuardInput{Context: ctx, Operation: crud.OpRead}); err != nil {
		return nil, err
	}
	exerciseID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	record, err := s.store.GetByID(ctx.UserContext(), exerciseID.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, notFound("exercise")
		}
		s.logger.Error("crudsvc: exercise lookup failed", err, "id", id)
		return nil, err
	}
	return record, nil
}
