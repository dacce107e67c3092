package macromate

import "embed"

// MigrationsFS contains SQL migrations for both PostgreSQL and SQLite.
//
// The migrations are organized in a dialect-aware structure:
//   - Root files (data/sql/migrations/*.sql) contain PostgreSQL migrations
//   - SQLite overrides are in data/sql/migrations/sqlite/*.sql
//   - data/sql/migrations/auth holds a minimal users table for hosts that do
//     not run go-auth's own migrations
//
// Usage:
//
//	migrationsFS, _ := fs.Sub(macromate.GetCoreMigrationsFS(), "data/sql/migrations")
//	client.RegisterDialectMigrations(
//	    migrationsFS,
//	    persistence.WithDialectSourceLabel("."),
//	    persistence.WithValidationTargets("postgres", "sqlite"),
//	)
//
//go:embed data/sql/migrations
var MigrationsFS embed.FS

// CoreMigrationsFS contains the nutrition tables (profiles, macros, catalog,
// intake, chat, settings, activity). It omits the auth bootstrap tables.
//
//go:embed data/sql/migrations/*.sql data/sql/migrations/sqlite/*.sql
var CoreMigrationsFS embed.FS

// AuthBootstrapMigrationsFS contains the users table normally owned by go-auth.
//
//go:embed data/sql/migrations/auth
var AuthBootstrapMigrationsFS embed.FS

// GetCoreMigrationsFS exposes the nutrition migrations.
func GetCoreMigrationsFS() embed.FS {
	return CoreMigrationsFS
}

// GetAuthBootstrapMigrationsFS exposes the auth bootstrap migrations.
func GetAuthBootstrapMigrationsFS() embed.FS {
	return AuthBootstrapMigrationsFS
}
