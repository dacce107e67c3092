package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-crud"
	"github.com/goliatone/go-router"
	"github.com/macromate/go-macromate/activity"
	"github.com/macromate/go-macromate/catalog"
	"github.com/macromate/go-macromate/crudguard"
	"github.com/macromate/go-macromate/crudsvc"
	"github.com/macromate/go-macromate/pkg/schema"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/macromate/go-macromate/service"
)

// ResourceConfig wires the read-only go-crud controllers.
type ResourceConfig struct {
	Service  *service.Service
	Catalog  *catalog.Repository
	Activity *activity.Repository
	Schemas  *schema.Registry
	Logger   types.Logger
}

// RegisterResources mounts the food-category, exercise and activity
// controllers and records their metadata in the schema registry. Mount it on
// its own group (the binary uses `/api/crud`) so the controller paths do not
// shadow the JSON routes.
func RegisterResources(r router.Router[*fiber.App], cfg ResourceConfig) error {
	if cfg.Service == nil || cfg.Catalog == nil || cfg.Activity == nil {
		return errors.New("httpapi: service, catalog and activity are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	adapter := crud.NewGoRouterAdapter(r)
	queries := cfg.Service.Queries()
	guard := cfg.Service.Guard()

	catalogGuard, err := crudguard.NewAdapter(crudguard.Config{
		Guard:     guard,
		Logger:    logger,
		PolicyMap: crudguard.DefaultPolicyMap(types.PolicyActionCatalogRead, types.PolicyActionCatalogWrite),
	})
	if err != nil {
		return err
	}
	activityGuard, err := crudguard.NewAdapter(crudguard.Config{
		Guard:     guard,
		Logger:    logger,
		PolicyMap: crudguard.ReadOnlyPolicyMap(types.PolicyActionActivityRead),
	})
	if err != nil {
		return err
	}

	categories := crud.NewController(cfg.Catalog.Categories(),
		crud.WithService[*catalog.CategoryRecord](crudsvc.NewCategoryService(crudsvc.CategoryServiceConfig{
			Guard: catalogGuard,
			List:  queries.Categories,
			Store: cfg.Catalog.Categories(),
		}, crudsvc.WithLogger(logger))),
		crud.WithRouteConfig[*catalog.CategoryRecord](crudsvc.ReadOnlyRoutes()),
	)
	categories.RegisterRoutes(adapter)

	exercises := crud.NewController(cfg.Catalog.Exercises(),
		crud.WithService[*catalog.ExerciseRecord](crudsvc.NewExerciseService(crudsvc.ExerciseServiceConfig{
			Guard: catalogGuard,
			List:  queries.ExerciseList,
			Store: cfg.Catalog.Exercises(),
		}, crudsvc.WithLogger(logger))),
		crud.WithRouteConfig[*catalog.ExerciseRecord](crudsvc.ReadOnlyRoutes()),
	)
	exercises.RegisterRoutes(adapter)

	feed := crud.NewController[*activity.LogEntry](cfg.Activity,
		crud.WithService[*activity.LogEntry](crudsvc.NewActivityService(crudsvc.ActivityServiceConfig{
			Guard:     activityGuard,
			FeedQuery: queries.ActivityFeed,
		}, crudsvc.WithLogger(logger))),
		crud.WithRouteConfig[*activity.LogEntry](crudsvc.ReadOnlyRoutes()),
	)
	feed.RegisterRoutes(adapter)

	if cfg.Schemas != nil {
		cfg.Schemas.RegisterAll(categories, exercises, feed)
		r.Get("/schemas", cfg.Schemas.Handler())
	}
	return nil
}
