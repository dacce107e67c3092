// Package bootstrap adds the users table for deployments that do not run
// go-auth's own migrations. Import it for side effects.
package bootstrap

import (
	"io/fs"

	macromate "github.com/macromate/go-macromate"
	"github.com/macromate/go-macromate/migrations"
)

// AuthSource names the users table migrations.
const AuthSource = "auth"

func init() {
	if authFS, err := fs.Sub(macromate.GetAuthBootstrapMigrationsFS(), "data/sql/migrations/auth"); err == nil {
		migrations.Register(AuthSource, authFS)
	}
}
