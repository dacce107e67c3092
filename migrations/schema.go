package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// SchemaCheck names a table and the columns the application reads from it.
type SchemaCheck struct {
	Table   string
	Columns []string
}

// DefaultSchemaChecks covers the go-auth users table and the tables whose
// columns are referenced through raw SQL (UPDATE ... SET, aggregates).
var DefaultSchemaChecks = []SchemaCheck{
	{Table: "users", Columns: []string{"id", "email", "username", "password_hash", "status"}},
	{Table: "profiles", Columns: []string{"id", "user_id", "goal", "macros_updated_at"}},
	{Table: "macro_records", Columns: []string{"id", "profile_id", "active", "computed_on"}},
	{Table: "daily_logs", Columns: []string{"id", "profile_id", "day", "calories_consumed", "water_liters", "calories_burned"}},
	{Table: "daily_meals", Columns: []string{"id", "daily_log_id", "meal_type"}},
	{Table: "chat_conversations", Columns: []string{"id", "user_id", "active"}},
}

// SchemaOption customizes schema validation.
type SchemaOption func(*schemaConfig)

type schemaConfig struct {
	checks []SchemaCheck
}

// WithSchemaChecks replaces the default checks.
func WithSchemaChecks(checks []SchemaCheck) SchemaOption {
	return func(cfg *schemaConfig) {
		cfg.checks = checks
	}
}

// SchemaValidationError lists what is missing from the live schema.
type SchemaValidationError struct {
	MissingTables  []string
	MissingColumns map[string][]string
}

func (e *SchemaValidationError) Error() string {
	if e == nil {
		return ""
	}
	var parts []string
	if len(e.MissingTables) > 0 {
		parts = append(parts, "missing tables: "+strings.Join(e.MissingTables, ", "))
	}
	tables := make([]string, 0, len(e.MissingColumns))
	for table := range e.MissingColumns {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	for _, table := range tables {
		cols := append([]string(nil), e.MissingColumns[table]...)
		sort.Strings(cols)
		parts = append(parts, fmt.Sprintf("%s missing columns (%s)", table, strings.Join(cols, ", ")))
	}
	if len(parts) == 0 {
		return "schema validation failed"
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

// ValidateSchema checks the live database after migrations ran. dialect is
// "postgres" or "sqlite" (aliases postgresql and sqlite3 are accepted).
func ValidateSchema(ctx context.Context, db *sql.DB, dialect string, opts ...SchemaOption) error {
	if db == nil {
		return errors.New("migrations: db required")
	}
	normalized, err := normalizeDialect(dialect)
	if err != nil {
		return err
	}

	cfg := schemaConfig{checks: DefaultSchemaChecks}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	result := &SchemaValidationError{MissingColumns: map[string][]string{}}
	for _, check := range cfg.checks {
		table := strings.TrimSpace(check.Table)
		if table == "" {
			continue
		}
		cols, err := tableColumns(ctx, db, normalized, table)
		if err != nil {
			return err
		}
		if len(cols) == 0 {
			result.MissingTables = append(result.MissingTables, table)
			continue
		}
		for _, col := range check.Columns {
			col = strings.ToLower(strings.TrimSpace(col))
			if col != "" && !cols[col] {
				result.MissingColumns[table] = append(result.MissingColumns[table], col)
			}
		}
	}

	if len(result.MissingTables) == 0 && len(result.MissingColumns) == 0 {
		return nil
	}
	sort.Strings(result.MissingTables)
	return result
}

func normalizeDialect(dialect string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "postgres", nil
	case "sqlite", "sqlite3":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("migrations: unsupported dialect %q", dialect)
	}
}

func tableColumns(ctx context.Context, db *sql.DB, dialect, table string) (map[string]bool, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if dialect == "postgres" {
		rows, err = db.QueryContext(ctx, `SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`, table)
	} else {
		rows, err = db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[strings.ToLower(name)] = true
	}
	return cols, rows.Err()
}
