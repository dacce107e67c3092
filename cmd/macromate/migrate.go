package main

import (
	"context"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded database migrations",
	Long: `Applies the users bootstrap and nutrition migrations for the configured
driver (sqlite or postgres) and exits.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		app, err := newApp(ctx)
		if err != nil {
			return err
		}
		if err := WithPersistence(ctx, app, true); err != nil {
			return err
		}
		getLogger("migrate").Info("database up to date", "driver", app.Config().Persistence.GetDriver())
		return nil
	},
}
