package profile

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestRepository_CreateProfileDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	userID := uuid.New()
	created, err := repo.CreateProfile(ctx, types.Profile{UserID: userID})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.Equal(t, types.ActivitySedentary, created.ActivityLevel)
	require.Equal(t, types.GoalMaintenance, created.Goal)
	require.Nil(t, created.WeightKg)
	require.Nil(t, created.BirthDate)

	again, err := repo.CreateProfile(ctx, types.Profile{UserID: userID, FirstName: "Other"})
	require.NoError(t, err)
	require.Equal(t, created.ID, again.ID)
	require.Empty(t, again.FirstName)

	fetched, err := repo.GetProfileByUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)

	byID, err := repo.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, userID, byID.UserID)
}

func TestRepository_GetProfileByUserNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetProfileByUser(context.Background(), uuid.New())
	require.ErrorIs(t, err, types.ErrProfileNotFound)

	_, err = repo.GetProfile(context.Background(), uuid.New())
	require.ErrorIs(t, err, types.ErrProfileNotFound)

	_, err = repo.GetProfileByUser(context.Background(), uuid.Nil)
	require.ErrorIs(t, err, types.ErrUserIDRequired)
}

func TestRepository_UpdateProfileTracksGoalChanges(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	created, err := repo.CreateProfile(ctx, types.Profile{UserID: uuid.New()})
	require.NoError(t, err)

	weight := 82.5
	height := 180.0
	birth := time.Date(1990, 4, 12, 15, 30, 0, 0, time.UTC)
	patched := *created
	patched.WeightKg = &weight
	patched.HeightCm = &height
	patched.BirthDate = &birth
	patched.Gender = "masculino"

	updated, change, err := repo.UpdateProfile(ctx, patched)
	require.NoError(t, err)
	require.Nil(t, change)
	require.Equal(t, types.GenderMale, updated.Gender)
	require.Equal(t, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), *updated.BirthDate)

	updated.Goal = types.GoalWeightLoss
	_, change, err = repo.UpdateProfile(ctx, *updated)
	require.NoError(t, err)
	require.NotNil(t, change)
	require.Equal(t, types.GoalMaintenance, change.PreviousGoal)
	require.Equal(t, types.GoalWeightLoss, change.NewGoal)
	require.Equal(t, 82.5, *change.WeightKg)

	history, err := repo.ListGoalHistory(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)

	fetched, err := repo.GetProfileByUser(ctx, created.UserID)
	require.NoError(t, err)
	require.Equal(t, types.GoalWeightLoss, fetched.Goal)
	require.Equal(t, 82.5, *fetched.WeightKg)
	require.Equal(t, 180.0, *fetched.HeightCm)
	require.True(t, fetched.BirthDate.Equal(time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)))
}

func TestRepository_UpdateMissingProfile(t *testing.T) {
	repo := newTestRepository(t)

	_, _, err := repo.UpdateProfile(context.Background(), types.Profile{ID: uuid.New(), UserID: uuid.New()})
	require.ErrorIs(t, err, types.ErrProfileNotFound)
}

func TestRepository_Measurements(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	created, err := repo.CreateProfile(ctx, types.Profile{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = repo.AddMeasurement(ctx, types.BodyMeasurement{ProfileID: created.ID})
	require.ErrorIs(t, err, ErrMeasurementWeightRequired)

	fat := 18.5
	for i, weight := range []float64{80, 79.4, 78.9} {
		_, err := repo.AddMeasurement(ctx, types.BodyMeasurement{
			ProfileID:  created.ID,
			MeasuredOn: time.Date(2025, 1, 1+i, 9, 0, 0, 0, time.UTC),
			WeightKg:   weight,
			BodyFatPct: &fat,
		})
		require.NoError(t, err)
	}

	list, total, err := repo.ListMeasurements(ctx, created.ID, types.Pagination{Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, list, 2)
	require.Equal(t, 78.9, list[0].WeightKg)
	require.Equal(t, 18.5, *list[0].BodyFatPct)
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db := newTestDB(t)
	applyDDL(t, db, "00001_profiles.up.sql")
	repo, err := NewRepository(RepositoryConfig{
		DB:    db,
		Clock: fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	return repo
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
		for _, stmt := range splitStatements(string(content)) {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			_, err := db.Exec(stmt)
			require.NoError(t, err)
		}
	}
}

func splitStatements(sql string) []string {
	lines := strings.Split(sql, "\n")
	var builder strings.Builder
	var statements []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		builder.WriteString(line)
		if strings.HasSuffix(line, ";") {
			statements = append(statements, strings.TrimSuffix(builder.String(), ";"))
			builder.Reset()
		} else {
			builder.WriteString(" ")
		}
	}
	if builder.Len() > 0 {
		statements = append(statements, builder.String())
	}
	return statements
}
