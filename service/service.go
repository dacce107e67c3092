package service

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/adapter/goauth"
	"github.com/macromate/go-macromate/chat"
	"github.com/macromate/go-macromate/command"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/macromate/go-macromate/query"
	"github.com/macromate/go-macromate/settings"
)

// Service is the entry point for macromate. It wires repositories, hooks,
// and command/query facades supplied by the host application.
type Service struct {
	cfg              Config
	commands         Commands
	queries          Queries
	settingsResolver SettingsResolver
	guard            access.Guard
}

// Commands exposes the service command handlers.
type Commands struct {
	AccountRegister   *command.AccountRegisterCommand
	PasswordChange    *command.PasswordChangeCommand
	ProfileUpdate     *command.ProfileUpdateCommand
	MeasurementRecord *command.MeasurementRecordCommand
	MacroCalculate    *command.MacroCalculateCommand
	RecipeCreate      *command.RecipeCreateCommand
	FoodLog           *command.FoodLogCommand
	WaterLog          *command.WaterLogCommand
	ExerciseLog       *command.ExerciseLogCommand
	ChatSend          *command.ChatSendCommand
	ChatReset         *command.ChatResetCommand
	SettingUpsert     *command.SettingUpsertCommand
	SettingDelete     *command.SettingDeleteCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	ProfileDetail *query.ProfileDetailQuery
	GoalHistory   *query.GoalHistoryQuery
	Measurements  *query.MeasurementsQuery
	ActiveMacros  *query.ActiveMacrosQuery
	MacroHistory  *query.MacroHistoryQuery
	FoodSearch    *query.FoodSearchQuery
	Categories    *query.CategoryListQuery
	RecipeList    *query.RecipeListQuery
	RecipeDetail  *query.RecipeDetailQuery
	ExerciseList  *query.ExerciseListQuery
	DailySummary  *query.DailySummaryQuery
	ChatHistory   *query.ChatHistoryQuery
	Settings      *query.SettingsQuery
	ActivityFeed  *query.ActivityFeedQuery
}

// Config captures all required dependencies so callers can provide their own
// instances (bun.DB backed repositories, cached catalogs, hooks, etc.).
type Config struct {
	AccountRepository     types.AccountRepository
	ProfileRepository     types.ProfileRepository
	MeasurementRepository types.MeasurementRepository
	MacroRepository       types.MacroRepository
	CatalogRepository     types.CatalogRepository
	IntakeRepository      types.IntakeRepository
	ChatRepository        types.ChatRepository
	SettingRepository     types.SettingRepository
	SettingsResolver      SettingsResolver
	ActivitySink          types.ActivitySink
	ActivityRepository    types.ActivityRepository
	Responder             types.Responder
	PasswordHasher        types.PasswordHasher
	FeatureGate           featuregate.FeatureGate
	Hooks                 types.Hooks
	Clock                 types.Clock
	IDGenerator           types.IDGenerator
	Logger                types.Logger
	AuthorizationPolicy   types.AuthorizationPolicy
}

// SettingsResolver resolves layered settings for queries.
type SettingsResolver interface {
	Resolve(ctx context.Context, input settings.ResolveInput) (types.SettingsSnapshot, error)
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)
	resolver := norm.SettingsResolver
	if resolver == nil && norm.SettingRepository != nil {
		if r, err := settings.NewResolver(settings.ResolverConfig{
			Repository: norm.SettingRepository,
		}); err == nil {
			resolver = r
		} else {
			norm.Logger.Error("macromate: settings resolver initialization failed", err)
		}
	}

	s := &Service{
		cfg:              norm,
		settingsResolver: resolver,
		guard:            access.Ensure(access.NewGuard(norm.AuthorizationPolicy)),
	}
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = types.UUIDGenerator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	if cfg.PasswordHasher == nil {
		cfg.PasswordHasher = goauth.BcryptHasher{}
	}
	if cfg.Responder == nil {
		cfg.Responder = chat.EchoResponder{}
	}
	if cfg.MeasurementRepository == nil {
		if repo, ok := cfg.ProfileRepository.(types.MeasurementRepository); ok {
			cfg.MeasurementRepository = repo
		}
	}
	if cfg.ActivityRepository == nil {
		if repo, ok := cfg.ActivitySink.(types.ActivityRepository); ok {
			cfg.ActivityRepository = repo
		}
	}
	return cfg
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// Ready reports whether the service has the required dependencies wired in.
func (s *Service) Ready() bool {
	return s != nil && s.HealthCheck(context.Background()) == nil
}

// HealthCheck surfaces the first missing dependency so transports can refuse
// to start with a partial configuration.
func (s *Service) HealthCheck(_ context.Context) error {
	if s == nil {
		return types.ErrServiceNotReady
	}
	switch {
	case s.cfg.AccountRepository == nil:
		return types.ErrMissingAccountRepository
	case s.cfg.ProfileRepository == nil:
		return types.ErrMissingProfileRepository
	case s.cfg.MeasurementRepository == nil:
		return types.ErrMissingMeasurementRepository
	case s.cfg.MacroRepository == nil:
		return types.ErrMissingMacroRepository
	case s.cfg.CatalogRepository == nil:
		return types.ErrMissingCatalogRepository
	case s.cfg.IntakeRepository == nil:
		return types.ErrMissingIntakeRepository
	case s.cfg.ChatRepository == nil:
		return types.ErrMissingChatRepository
	case s.cfg.SettingRepository == nil:
		return types.ErrMissingSettingRepository
	case s.settingsResolver == nil:
		return types.ErrMissingSettingsResolver
	case s.cfg.ActivitySink == nil:
		return types.ErrMissingActivitySink
	case s.cfg.ActivityRepository == nil:
		return types.ErrMissingActivityRepository
	}
	return nil
}

// Guard exposes the access guard used internally so transports can reuse the
// same policy for auxiliary handlers.
func (s *Service) Guard() access.Guard {
	if s == nil {
		return access.Ensure(nil)
	}
	return access.Ensure(s.guard)
}

// ActivitySink returns the configured sink so transports can emit activity
// records for auxiliary workflows (e.g. CRUD controllers).
func (s *Service) ActivitySink() types.ActivitySink {
	if s == nil {
		return nil
	}
	return s.cfg.ActivitySink
}

func (s *Service) buildCommands() Commands {
	profileCfg := command.ProfileCommandConfig{
		Repository:   s.cfg.ProfileRepository,
		Measurements: s.cfg.MeasurementRepository,
		Activity:     s.cfg.ActivitySink,
		Hooks:        s.cfg.Hooks,
		Clock:        s.cfg.Clock,
		Guard:        s.guard,
	}
	diaryCfg := command.DiaryCommandConfig{
		Profiles: s.cfg.ProfileRepository,
		Catalog:  s.cfg.CatalogRepository,
		Intake:   s.cfg.IntakeRepository,
		Activity: s.cfg.ActivitySink,
		Hooks:    s.cfg.Hooks,
		Clock:    s.cfg.Clock,
		Guard:    s.guard,
	}
	chatCfg := command.ChatCommandConfig{
		Repository:  s.cfg.ChatRepository,
		Profiles:    s.cfg.ProfileRepository,
		Responder:   s.cfg.Responder,
		FeatureGate: s.cfg.FeatureGate,
		Activity:    s.cfg.ActivitySink,
		Hooks:       s.cfg.Hooks,
		Clock:       s.cfg.Clock,
		Logger:      s.cfg.Logger,
		Guard:       s.guard,
	}
	settingCfg := command.SettingCommandConfig{
		Repository: s.cfg.SettingRepository,
		Activity:   s.cfg.ActivitySink,
		Hooks:      s.cfg.Hooks,
		Clock:      s.cfg.Clock,
		Guard:      s.guard,
	}
	return Commands{
		AccountRegister: command.NewAccountRegisterCommand(command.AccountCommandConfig{
			Accounts:    s.cfg.AccountRepository,
			Profiles:    s.cfg.ProfileRepository,
			Hasher:      s.cfg.PasswordHasher,
			FeatureGate: s.cfg.FeatureGate,
			Activity:    s.cfg.ActivitySink,
			Hooks:       s.cfg.Hooks,
			Clock:       s.cfg.Clock,
			Logger:      s.cfg.Logger,
		}),
		PasswordChange: command.NewPasswordChangeCommand(command.PasswordChangeConfig{
			Accounts: s.cfg.AccountRepository,
			Hasher:   s.cfg.PasswordHasher,
			Activity: s.cfg.ActivitySink,
			Hooks:    s.cfg.Hooks,
			Clock:    s.cfg.Clock,
			Guard:    s.guard,
		}),
		ProfileUpdate:     command.NewProfileUpdateCommand(profileCfg),
		MeasurementRecord: command.NewMeasurementRecordCommand(profileCfg),
		MacroCalculate: command.NewMacroCalculateCommand(command.MacroCommandConfig{
			Profiles: s.cfg.ProfileRepository,
			Macros:   s.cfg.MacroRepository,
			Activity: s.cfg.ActivitySink,
			Hooks:    s.cfg.Hooks,
			Clock:    s.cfg.Clock,
			Logger:   s.cfg.Logger,
			Guard:    s.guard,
		}),
		RecipeCreate: command.NewRecipeCreateCommand(command.CatalogCommandConfig{
			Repository: s.cfg.CatalogRepository,
			Activity:   s.cfg.ActivitySink,
			Hooks:      s.cfg.Hooks,
			Clock:      s.cfg.Clock,
			Guard:      s.guard,
		}),
		FoodLog:       command.NewFoodLogCommand(diaryCfg),
		WaterLog:      command.NewWaterLogCommand(diaryCfg),
		ExerciseLog:   command.NewExerciseLogCommand(diaryCfg),
		ChatSend:      command.NewChatSendCommand(chatCfg),
		ChatReset:     command.NewChatResetCommand(chatCfg),
		SettingUpsert: command.NewSettingUpsertCommand(settingCfg),
		SettingDelete: command.NewSettingDeleteCommand(settingCfg),
	}
}

func (s *Service) buildQueries() Queries {
	macroCfg := query.MacroQueryConfig{
		Profiles: s.cfg.ProfileRepository,
		Macros:   s.cfg.MacroRepository,
		Guard:    s.guard,
	}
	return Queries{
		ProfileDetail: query.NewProfileDetailQuery(s.cfg.ProfileRepository, s.guard),
		GoalHistory:   query.NewGoalHistoryQuery(s.cfg.ProfileRepository, s.guard),
		Measurements:  query.NewMeasurementsQuery(s.cfg.ProfileRepository, s.cfg.MeasurementRepository, s.guard),
		ActiveMacros:  query.NewActiveMacrosQuery(macroCfg),
		MacroHistory:  query.NewMacroHistoryQuery(macroCfg),
		FoodSearch:    query.NewFoodSearchQuery(s.cfg.CatalogRepository),
		Categories:    query.NewCategoryListQuery(s.cfg.CatalogRepository),
		RecipeList:    query.NewRecipeListQuery(s.cfg.CatalogRepository, s.guard),
		RecipeDetail:  query.NewRecipeDetailQuery(s.cfg.CatalogRepository, s.guard),
		ExerciseList:  query.NewExerciseListQuery(s.cfg.CatalogRepository),
		DailySummary: query.NewDailySummaryQuery(query.DailySummaryConfig{
			Profiles: s.cfg.ProfileRepository,
			Macros:   s.cfg.MacroRepository,
			Intake:   s.cfg.IntakeRepository,
			Settings: s.settingsResolver,
			Clock:    s.cfg.Clock,
			Guard:    s.guard,
		}),
		ChatHistory:  query.NewChatHistoryQuery(s.cfg.ChatRepository, s.guard),
		Settings:     query.NewSettingsQuery(s.settingsResolver, s.guard),
		ActivityFeed: query.NewActivityFeedQuery(s.cfg.ActivityRepository, s.guard),
	}
}
