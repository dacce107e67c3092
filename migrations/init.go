package migrations

import (
	"io/fs"

	macromate "github.com/macromate/go-macromate"
)

// CoreSource names the nutrition migrations.
const CoreSource = "core"

func init() {
	if coreFS, err := fs.Sub(macromate.GetCoreMigrationsFS(), "data/sql/migrations"); err == nil {
		Register(CoreSource, coreFS)
	}
}
