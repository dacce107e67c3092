package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goliatone/go-auth"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-persistence-bun"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	bunschema "github.com/uptrace/bun/schema"

	"github.com/macromate/go-macromate/activity"
	goauth "github.com/macromate/go-macromate/adapter/goauth"
	"github.com/macromate/go-macromate/catalog"
	"github.com/macromate/go-macromate/chat"
	"github.com/macromate/go-macromate/config"
	"github.com/macromate/go-macromate/intake"
	"github.com/macromate/go-macromate/macros"
	"github.com/macromate/go-macromate/migrations"
	_ "github.com/macromate/go-macromate/migrations/bootstrap"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/macromate/go-macromate/profile"
	"github.com/macromate/go-macromate/service"
	"github.com/macromate/go-macromate/settings"
)

type App struct {
	config   *gconfig.Container[*config.BaseConfig]
	bunDB    *bun.DB
	authRepo auth.RepositoryManager
	profiles *profile.Repository
	catalog  *catalog.Repository
	activity *activity.Repository
	svc      *service.Service
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func newApp(ctx context.Context) (*App, error) {
	cfg := gconfig.New(config.Defaults()).WithLogger(getLogger("config"))
	if err := cfg.Load(ctx); err != nil {
		return nil, err
	}
	if err := cfg.Raw().Validate(); err != nil {
		return nil, err
	}
	return &App{config: cfg}, nil
}

func openDatabase(cfg config.PersistenceConfig) (*sql.DB, bunschema.Dialect, error) {
	if cfg.IsPostgres() {
		db, err := sql.Open("postgres", cfg.GetServer())
		return db, pgdialect.New(), err
	}
	dsn := cfg.GetServer()
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}
	db, err := sql.Open("sqlite3", dsn)
	return db, sqlitedialect.New(), err
}

// WithPersistence opens the database and, when migrate is set, applies the
// embedded migrations for the configured dialect.
func WithPersistence(ctx context.Context, app *App, migrate bool) error {
	cfg := app.Config().Persistence
	db, dialect, err := openDatabase(cfg)
	if err != nil {
		return err
	}

	persistence.RegisterModel((*auth.User)(nil))
	persistence.RegisterModel((*profile.Record)(nil))
	persistence.RegisterModel((*profile.GoalChangeRecord)(nil))
	persistence.RegisterModel((*profile.MeasurementRecord)(nil))
	persistence.RegisterModel((*macros.Record)(nil))
	persistence.RegisterModel((*catalog.CategoryRecord)(nil))
	persistence.RegisterModel((*catalog.FoodRecord)(nil))
	persistence.RegisterModel((*catalog.RecipeRecord)(nil))
	persistence.RegisterModel((*catalog.IngredientRecord)(nil))
	persistence.RegisterModel((*catalog.ExerciseRecord)(nil))
	persistence.RegisterModel((*intake.DailyLogRecord)(nil))
	persistence.RegisterModel((*intake.MealRecord)(nil))
	persistence.RegisterModel((*intake.ConsumedFoodRecord)(nil))
	persistence.RegisterModel((*intake.ExerciseEntryRecord)(nil))
	persistence.RegisterModel((*chat.ConversationRecord)(nil))
	persistence.RegisterModel((*chat.MessageRecord)(nil))
	persistence.RegisterModel((*settings.Record)(nil))
	persistence.RegisterModel((*activity.LogEntry)(nil))

	client, err := persistence.New(cfg, db, dialect)
	if err != nil {
		return err
	}
	client.SetLogger(getLogger("persistence"))

	if migrate {
		for _, src := range migrations.Sources() {
			getLogger("persistence").Debug("registering migrations", "source", src.Name)
			client.RegisterDialectMigrations(
				src.FS,
				persistence.WithDialectSourceLabel("."),
				persistence.WithValidationTargets("postgres", "sqlite"),
			)
		}
		if err := client.ValidateDialects(ctx); err != nil {
			getLogger("persistence").Warn("dialect validation failed", "error", err)
		}
		if err := client.Migrate(ctx); err != nil {
			return err
		}
		if report := client.Report(); report != nil && !report.IsZero() {
			getLogger("persistence").Info("migrations applied", "report", report.String())
		}
		if err := migrations.ValidateSchema(ctx, db, cfg.GetDriver()); err != nil {
			return err
		}
	}

	app.bunDB = client.DB()
	return nil
}

// WithService builds the repositories and the macromate service.
func WithService(ctx context.Context, app *App) error {
	if app.bunDB == nil {
		return fmt.Errorf("macromate: persistence not initialized")
	}
	cfg := app.Config()

	app.authRepo = auth.NewRepositoryManager(app.bunDB)
	if err := app.authRepo.Validate(); err != nil {
		return err
	}

	profiles, err := profile.NewRepository(profile.RepositoryConfig{DB: app.bunDB})
	if err != nil {
		return err
	}
	macroRepo, err := macros.NewRepository(macros.RepositoryConfig{DB: app.bunDB})
	if err != nil {
		return err
	}
	catalogRepo, err := catalog.NewRepository(catalog.RepositoryConfig{DB: app.bunDB},
		catalog.WithCache(cfg.Cache.Catalog))
	if err != nil {
		return err
	}
	intakeRepo, err := intake.NewRepository(intake.RepositoryConfig{DB: app.bunDB})
	if err != nil {
		return err
	}
	chatRepo, err := chat.NewRepository(chat.RepositoryConfig{DB: app.bunDB})
	if err != nil {
		return err
	}
	settingRepo, err := settings.NewRepository(settings.RepositoryConfig{DB: app.bunDB},
		settings.WithCache(cfg.Cache.Settings))
	if err != nil {
		return err
	}
	activityRepo, err := activity.NewRepository(activity.RepositoryConfig{DB: app.bunDB})
	if err != nil {
		return err
	}

	hookLogger := getLogger("hooks")
	svc := service.New(service.Config{
		AccountRepository: goauth.NewAccountsAdapter(app.authRepo.Users()),
		ProfileRepository: profiles,
		MacroRepository:   macroRepo,
		CatalogRepository: catalogRepo,
		IntakeRepository:  intakeRepo,
		ChatRepository:    chatRepo,
		SettingRepository: settingRepo,
		ActivitySink:      activityRepo,
		PasswordHasher:    goauth.BcryptHasher{},
		FeatureGate:       cfg.Features.Gate(),
		Hooks: types.Hooks{
			AfterMacrosCalculated: func(_ context.Context, event types.MacroEvent) {
				hookLogger.Info("macros calculated",
					"user_id", event.UserID,
					"calories", event.Record.CaloriesDaily)
			},
			AfterProfileChange: func(_ context.Context, event types.ProfileEvent) {
				if event.GoalChange != nil {
					hookLogger.Info("goal changed",
						"user_id", event.UserID,
						"from", event.GoalChange.PreviousGoal,
						"to", event.GoalChange.NewGoal)
				}
			},
		},
		Logger: newLogger("service"),
	})
	if err := svc.HealthCheck(ctx); err != nil {
		return err
	}

	app.profiles = profiles
	app.catalog = catalogRepo
	app.activity = activityRepo
	app.svc = svc
	return nil
}
