package migrations_test

import (
	"context"
	"database/sql"
	"io/fs"
	"sort"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/macromate/go-macromate/migrations"
	"github.com/macromate/go-macromate/migrations/bootstrap"
)

func TestMigrationsApplyToSQLite(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	sources := migrations.Sources()
	require.Len(t, sources, 2)
	require.Equal(t, bootstrap.AuthSource, sources[0].Name)
	require.Equal(t, migrations.CoreSource, sources[1].Name)
	applyAll(t, ctx, db)

	require.NoError(t, migrations.ValidateSchema(ctx, db, "sqlite3"))
}

func TestMigrationsDownReverseUp(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	applyAll(t, ctx, db)

	for _, fsys := range migrations.Filesystems() {
		require.NoError(t, applyFiles(ctx, db, fsys, "sqlite/*.down.sql", true))
	}

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='macro_records'").Scan(&count))
	require.Zero(t, count)
}

func TestValidateSchemaReportsMissingTables(t *testing.T) {
	db := openSQLite(t)
	err := migrations.ValidateSchema(context.Background(), db, "sqlite")
	require.Error(t, err)

	var schemaErr *migrations.SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	require.Contains(t, schemaErr.MissingTables, "macro_records")

	require.Error(t, migrations.ValidateSchema(context.Background(), db, "mysql"))
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func applyAll(t *testing.T, ctx context.Context, db *sql.DB) {
	t.Helper()
	for _, fsys := range migrations.Filesystems() {
		require.NoError(t, applyFiles(ctx, db, fsys, "sqlite/*.up.sql", false))
	}
}

func applyFiles(ctx context.Context, db *sql.DB, filesystem fs.FS, pattern string, reverse bool) error {
	entries, err := fs.Glob(filesystem, pattern)
	if err != nil {
		return err
	}
	sort.Strings(entries)
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(entries)))
	}
	for _, entry := range entries {
		sqlBytes, err := fs.ReadFile(filesystem, entry)
		if err != nil {
			return err
		}
		for _, stmt := range strings.Split(string(sqlBytes), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}
