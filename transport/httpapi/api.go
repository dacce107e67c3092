package httpapi

import (
	"github.com/goliatone/go-router"
	"github.com/macromate/go-macromate/pkg/authctx"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/macromate/go-macromate/service"
)

// ActorResolver extracts the calling actor from a routed request.
type ActorResolver func(router.Context) (types.ActorRef, error)

// Config wires the API handlers.
type Config struct {
	Service *service.Service
	// Protect wraps every route that requires an actor, typically the go-auth
	// protected route middleware.
	Protect       router.MiddlewareFunc
	ActorResolver ActorResolver
	Clock         types.Clock
	Logger        types.Logger
}

// API holds the JSON handlers.
type API struct {
	commands service.Commands
	queries  service.Queries
	protect  router.MiddlewareFunc
	actor    ActorResolver
	clock    types.Clock
	logger   types.Logger
}

// New builds the handlers from a configured service.
func New(cfg Config) *API {
	api := &API{
		protect: cfg.Protect,
		actor:   cfg.ActorResolver,
		clock:   cfg.Clock,
		logger:  cfg.Logger,
	}
	if cfg.Service != nil {
		api.commands = cfg.Service.Commands()
		api.queries = cfg.Service.Queries()
	}
	if api.actor == nil {
		api.actor = authctx.ActorRefFromRouter
	}
	if api.clock == nil {
		api.clock = types.SystemClock{}
	}
	if api.logger == nil {
		api.logger = types.NopLogger{}
	}
	return api
}

// Register mounts the routes under the supplied router, usually a `/api`
// group.
func Register[T any](r router.Router[T], api *API) {
	var protected []router.MiddlewareFunc
	if api.protect != nil {
		protected = append(protected, api.protect)
	}

	r.Post("/accounts/register", api.register)
	r.Post("/accounts/password", api.changePassword, protected...)

	r.Get("/profile", api.profileDetail, protected...)
	r.Put("/profile", api.profileUpdate, protected...)
	r.Get("/profile/goals", api.goalHistory, protected...)
	r.Get("/profile/measurements", api.measurements, protected...)
	r.Post("/profile/measurements", api.recordMeasurement, protected...)

	r.Post("/nutrition/macros/calculate", api.calculateMacros, protected...)
	r.Get("/nutrition/macros/current", api.activeMacros, protected...)
	r.Get("/nutrition/macros/history", api.macroHistory, protected...)

	r.Get("/foods", api.searchFoods, protected...)
	r.Get("/recipes", api.listRecipes, protected...)
	r.Post("/recipes", api.createRecipe, protected...)
	r.Get("/recipes/:id", api.recipeDetail, protected...)
	r.Get("/exercises", api.listExercises, protected...)

	r.Post("/diary/foods", api.logFood, protected...)
	r.Post("/diary/water", api.logWater, protected...)
	r.Post("/diary/exercises", api.logExercise, protected...)
	r.Get("/diary/:day", api.dailySummary, protected...)

	r.Get("/chat", api.chatHistory, protected...)
	r.Post("/chat", api.sendChat, protected...)
	r.Delete("/chat", api.resetChat, protected...)

	r.Get("/settings", api.settings, protected...)
	r.Post("/settings", api.upsertSetting, protected...)
	r.Delete("/settings/:key", api.deleteSetting, protected...)

	r.Get("/activity", api.activityFeed, protected...)
}
