package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-auth"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/spf13/cobra"

	"github.com/macromate/go-macromate/pkg/schema"
	"github.com/macromate/go-macromate/transport/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the JSON API under /api. Read-only catalog and activity resources
are mounted under /api/crud and described by /api/crud/schemas.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Println(print.MaybeHighlightJSON(app.Config()))
	}
	if err := WithPersistence(ctx, app, app.Config().Persistence.AutoMigrate); err != nil {
		return err
	}
	if err := WithService(ctx, app); err != nil {
		return err
	}

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
		})
	})
	srv.Router().WithLogger(getLogger("router"))

	authCfg := app.Config().GetAuth()
	httpAuth, err := WithHTTPAuth(app, srv)
	if err != nil {
		return err
	}
	protected := httpAuth.ProtectedRoute(authCfg, httpAuth.MakeClientRouteAuthErrorHandler(false))

	api := srv.Router().Group("/api")
	httpapi.Register(api, httpapi.New(httpapi.Config{
		Service: app.svc,
		Protect: protected,
		Logger:  newLogger("api"),
	}))

	registry := schema.NewRegistry(
		schema.WithInfo(router.OpenAPIInfo{
			Title:       "Macromate Resources",
			Description: "Read-only catalog and activity resources",
		}),
		schema.WithTags("catalog", "activity"),
		schema.WithLogger(newLogger("schema")),
	)
	registry.Subscribe(func(_ context.Context, snap schema.Snapshot) {
		getLogger("schema").Debug("schema registry updated", "resources", snap.Resources)
	})
	if err := httpapi.RegisterResources(api.Group("/crud"), httpapi.ResourceConfig{
		Service:  app.svc,
		Catalog:  app.catalog,
		Activity: app.activity,
		Schemas:  registry,
		Logger:   newLogger("crud"),
	}); err != nil {
		return err
	}

	serverCfg := app.Config().GetServer()
	addr := fmt.Sprintf("%s:%s", serverCfg.Host, serverCfg.Port)
	getLogger("server").Info("starting server", "addr", addr)
	srv.Serve(addr)

	sig := WaitExitSignal()
	getLogger("server").Info("shutting down", "signal", sig.String())
	return nil
}

// WithHTTPAuth builds the go-auth authenticator and mounts its login routes
// under /auth.
func WithHTTPAuth(app *App, srv router.Server[*fiber.App]) (auth.HTTPAuthenticator, error) {
	cfg := app.Config().GetAuth()

	userTracker := &userTrackerAdapter{users: app.authRepo.Users()}
	userProvider := auth.NewUserProvider(userTracker)
	userProvider.WithLogger(getLogger("auth:prv"))

	authenticator := auth.NewAuthenticator(userProvider, cfg)
	authenticator.WithLogger(getLogger("auth:authz"))

	httpAuth, err := auth.NewHTTPAuthenticator(authenticator, cfg)
	if err != nil {
		return nil, err
	}
	httpAuth.WithLogger(getLogger("auth:http"))

	auth.RegisterAuthRoutes(srv.Router().Group("/auth"),
		func(ac *auth.AuthController) *auth.AuthController {
			ac.Auther = httpAuth
			ac.Repo = app.authRepo
			ac.WithLogger(getLogger("auth:ctrl"))
			return ac
		})

	return httpAuth, nil
}

// userTrackerAdapter adapts auth.Users to auth.UserTracker interface
type userTrackerAdapter struct {
	users auth.Users
}

func (u *userTrackerAdapter) GetByIdentifier(ctx context.Context, identifier string) (*auth.User, error) {
	return u.users.GetByIdentifier(ctx, identifier)
}

func (u *userTrackerAdapter) TrackAttemptedLogin(ctx context.Context, user *auth.User) error {
	return u.users.TrackAttemptedLogin(ctx, user)
}

func (u *userTrackerAdapter) TrackSucccessfulLogin(ctx context.Context, user *auth.User) error {
	return u.users.TrackSucccessfulLogin(ctx, user)
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
