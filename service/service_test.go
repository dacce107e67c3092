package service_test

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/macromate/go-macromate/activity"
	"github.com/macromate/go-macromate/catalog"
	"github.com/macromate/go-macromate/chat"
	"github.com/macromate/go-macromate/command"
	"github.com/macromate/go-macromate/intake"
	"github.com/macromate/go-macromate/macros"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/macromate/go-macromate/profile"
	"github.com/macromate/go-macromate/query"
	"github.com/macromate/go-macromate/service"
	"github.com/macromate/go-macromate/settings"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestService_HealthCheckReportsMissingDependencies(t *testing.T) {
	svc := service.New(service.Config{})
	require.False(t, svc.Ready())
	require.ErrorIs(t, svc.HealthCheck(context.Background()), types.ErrMissingAccountRepository)
}

func TestService_RegisterCalculateAndSummarize(t *testing.T) {
	ctx := context.Background()
	clock := fixedClock{t: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)}
	db := newTestDB(t)
	svc, foods := newSQLiteService(t, db, clock)
	require.NoError(t, svc.HealthCheck(ctx))

	reg := &command.AccountRegisterResult{}
	require.NoError(t, svc.Commands().AccountRegister.Execute(ctx, command.AccountRegisterInput{
		Email:           "ana@example.com",
		Username:        "ana",
		Password:        "supersecret",
		PasswordConfirm: "supersecret",
		Result:          reg,
	}))
	actor := types.ActorRef{ID: reg.Account.ID, Type: types.ActorRoleMember}

	// An empty profile cannot be calculated and nothing is stored.
	calc := &command.MacroCalculateResult{}
	require.NoError(t, svc.Commands().MacroCalculate.Execute(ctx, command.MacroCalculateInput{Actor: actor, Result: calc}))
	require.False(t, calc.Macros.OK())
	_, err := svc.Queries().ActiveMacros.Query(ctx, query.ProfileQueryInput{Actor: actor})
	require.ErrorIs(t, err, types.ErrMacrosNotFound)

	birth := time.Date(1994, 3, 10, 0, 0, 0, 0, time.UTC)
	weight, height := 60.0, 165.0
	gender, level, goal := "female", "sedentary", "maintenance"
	require.NoError(t, svc.Commands().ProfileUpdate.Execute(ctx, command.ProfileUpdateInput{
		Patch: types.ProfilePatch{
			BirthDate:     &birth,
			WeightKg:      &weight,
			HeightCm:      &height,
			Gender:        &gender,
			ActivityLevel: &level,
			Goal:          &goal,
		},
		Actor: actor,
	}))

	require.NoError(t, svc.Commands().MacroCalculate.Execute(ctx, command.MacroCalculateInput{Actor: actor, Result: calc}))
	require.True(t, calc.Macros.OK())
	// age 30: 600 + 1031.25 - 150 - 161 = 1320.25; x1.2 = 1584.3
	require.Equal(t, 1320, calc.Macros.BMR)
	require.Equal(t, 1584, calc.Macros.CaloriesDaily)

	active, err := svc.Queries().ActiveMacros.Query(ctx, query.ProfileQueryInput{Actor: actor})
	require.NoError(t, err)
	require.Equal(t, calc.Record.ID, active.ID)

	oats, err := foods.CreateFood(ctx, types.Food{
		Name:         "Oats",
		Nutrients:    types.Nutrients{Calories: 380, ProteinG: 13, CarbsG: 67, FatG: 7},
		ServingGrams: 100,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Commands().FoodLog.Execute(ctx, command.FoodLogInput{
		MealType: "breakfast",
		FoodID:   oats.ID,
		Grams:    100,
		Actor:    actor,
	}))
	require.NoError(t, svc.Commands().WaterLog.Execute(ctx, command.WaterLogInput{Liters: 1, Actor: actor}))

	summary, err := svc.Queries().DailySummary.Query(ctx, query.DailySummaryInput{Actor: actor})
	require.NoError(t, err)
	require.Equal(t, 380.0, summary.Consumed.Calories)
	require.NotNil(t, summary.Target)
	require.InDelta(t, 1584-380, summary.Remaining.Calories, 0.5)
	require.Equal(t, 2.0, summary.WaterGoal)

	require.NoError(t, svc.Commands().SettingUpsert.Execute(ctx, command.SettingUpsertInput{
		Key:   settings.KeyWaterGoal,
		Value: map[string]any{"liters": 2.5},
		Actor: actor,
	}))
	summary, err = svc.Queries().DailySummary.Query(ctx, query.DailySummaryInput{Actor: actor})
	require.NoError(t, err)
	require.Equal(t, 2.5, summary.WaterGoal)

	feed, err := svc.Queries().ActivityFeed.Query(ctx, types.ActivityFilter{Actor: actor})
	require.NoError(t, err)
	verbs := make([]string, 0, len(feed.Records))
	for _, rec := range feed.Records {
		verbs = append(verbs, rec.Verb)
	}
	require.Contains(t, verbs, activity.VerbAccountRegistered)
	require.Contains(t, verbs, activity.VerbMacrosCalculated)
	require.Contains(t, verbs, activity.VerbFoodLogged)
}

func newSQLiteService(t *testing.T, db *bun.DB, clock types.Clock) (*service.Service, types.CatalogRepository) {
	t.Helper()
	applyDDL(t, db,
		"00001_profiles.up.sql",
		"00002_macro_records.up.sql",
		"00003_catalog.up.sql",
		"00004_intake.up.sql",
		"00005_chat.up.sql",
		"00006_settings_activity.up.sql",
	)
	profiles, err := profile.NewRepository(profile.RepositoryConfig{DB: db, Clock: clock})
	require.NoError(t, err)
	macroRepo, err := macros.NewRepository(macros.RepositoryConfig{DB: db, Clock: clock})
	require.NoError(t, err)
	catalogRepo, err := catalog.NewRepository(catalog.RepositoryConfig{DB: db, Clock: clock})
	require.NoError(t, err)
	intakeRepo, err := intake.NewRepository(intake.RepositoryConfig{DB: db, Clock: clock})
	require.NoError(t, err)
	chatRepo, err := chat.NewRepository(chat.RepositoryConfig{DB: db, Clock: clock})
	require.NoError(t, err)
	settingRepo, err := settings.NewRepository(settings.RepositoryConfig{DB: db, Clock: clock})
	require.NoError(t, err)
	activityRepo, err := activity.NewRepository(activity.RepositoryConfig{DB: db, Clock: clock})
	require.NoError(t, err)

	svc := service.New(service.Config{
		AccountRepository: newMemoryAccounts(),
		ProfileRepository: profiles,
		MacroRepository:   macroRepo,
		CatalogRepository: catalogRepo,
		IntakeRepository:  intakeRepo,
		ChatRepository:    chatRepo,
		SettingRepository: settingRepo,
		ActivitySink:      activityRepo,
		PasswordHasher:    plainHasher{},
		Clock:             clock,
	})
	return svc, catalogRepo
}

func newTestDB(t *testing.T) *bun.DB {
	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func applyDDL(t *testing.T, db *bun.DB, files ...string) {
	for _, file := range files {
		content, err := os.ReadFile("../data/sql/migrations/sqlite/" + file)
		require.NoError(t, err)
		for _, stmt := range strings.Split(string(content), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			_, err := db.Exec(stmt)
			require.NoError(t, err)
		}
	}
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return command.ErrCurrentPasswordInvalid
	}
	return nil
}

type memoryAccounts struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]types.Account
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{accounts: make(map[uuid.UUID]types.Account)}
}

func (m *memoryAccounts) GetByID(_ context.Context, id uuid.UUID) (*types.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return nil, types.ErrAccountNotFound
	}
	return &acc, nil
}

func (m *memoryAccounts) GetByIdentifier(_ context.Context, identifier string) (*types.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range m.accounts {
		if acc.Email == identifier || acc.Username == identifier {
			return &acc, nil
		}
	}
	return nil, types.ErrAccountNotFound
}

func (m *memoryAccounts) Create(_ context.Context, account *types.Account) (*types.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc := *account
	acc.ID = uuid.New()
	m.accounts[acc.ID] = acc
	return &acc, nil
}

func (m *memoryAccounts) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return types.ErrAccountNotFound
	}
	acc.PasswordHash = hash
	m.accounts[id] = acc
	return nil
}
