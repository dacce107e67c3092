// Package config holds the runtime configuration for the macromate binary.
package config

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-auth"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-persistence-bun"
	"github.com/macromate/go-macromate/command"
)

// BaseConfig holds all configuration for the macromate binary
type BaseConfig struct {
	Server      ServerConfig      `json:"server"`
	Auth        AuthConfig        `json:"auth"`
	Persistence PersistenceConfig `json:"persistence"`
	Features    FeaturesConfig    `json:"features"`
	Cache       CacheConfig       `json:"cache"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string `json:"port" env:"MACROMATE_PORT" default:"8978"`
	Host string `json:"host" env:"MACROMATE_HOST" default:"localhost"`
}

// AuthConfig implements auth.Config interface
type AuthConfig struct {
	SigningKey            string   `json:"signing_key" env:"MACROMATE_SIGNING_KEY" default:"changeme-secret-key"`
	SigningMethod         string   `json:"signing_method" default:"HS256"`
	ContextKey            string   `json:"context_key" default:"user"`
	TokenExpiration       int      `json:"token_expiration" default:"3600"`
	ExtendedTokenDuration int      `json:"extended_token_duration" default:"86400"`
	TokenLookup           string   `json:"token_lookup" default:"header:Authorization"`
	AuthScheme            string   `json:"auth_scheme" default:"Bearer"`
	Issuer                string   `json:"issuer" default:"macromate"`
	Audience              []string `json:"audience"`
	RejectedRouteKey      string   `json:"rejected_route_key" default:"rejected_route"`
	RejectedRouteDefault  string   `json:"rejected_route_default" default:"/api/auth/login"`
}

func (c AuthConfig) GetSigningKey() string           { return c.SigningKey }
func (c AuthConfig) GetSigningMethod() string        { return c.SigningMethod }
func (c AuthConfig) GetContextKey() string           { return c.ContextKey }
func (c AuthConfig) GetTokenExpiration() int         { return c.TokenExpiration }
func (c AuthConfig) GetExtendedTokenDuration() int   { return c.ExtendedTokenDuration }
func (c AuthConfig) GetTokenLookup() string          { return c.TokenLookup }
func (c AuthConfig) GetAuthScheme() string           { return c.AuthScheme }
func (c AuthConfig) GetIssuer() string               { return c.Issuer }
func (c AuthConfig) GetAudience() []string           { return c.Audience }
func (c AuthConfig) GetRejectedRouteKey() string     { return c.RejectedRouteKey }
func (c AuthConfig) GetRejectedRouteDefault() string { return c.RejectedRouteDefault }

// PersistenceConfig implements persistence.Config interface. Driver is either
// "sqlite" or "postgres".
type PersistenceConfig struct {
	Debug          bool          `json:"debug" env:"MACROMATE_DB_DEBUG" default:"false"`
	Driver         string        `json:"driver" env:"MACROMATE_DB_DRIVER" default:"sqlite"`
	Server         string        `json:"server" env:"MACROMATE_DB_SERVER" default:"file:macromate.db?_journal_mode=WAL&cache=shared&_fk=1"`
	PingTimeout    time.Duration `json:"ping_timeout" default:"5s"`
	OtelIdentifier string        `json:"otel_identifier" default:"macromate"`
	AutoMigrate    bool          `json:"auto_migrate" env:"MACROMATE_DB_AUTO_MIGRATE" default:"true"`
}

func (c PersistenceConfig) GetDebug() bool                { return c.Debug }
func (c PersistenceConfig) GetDriver() string             { return c.Driver }
func (c PersistenceConfig) GetServer() string             { return c.Server }
func (c PersistenceConfig) GetPingTimeout() time.Duration { return c.PingTimeout }
func (c PersistenceConfig) GetOtelIdentifier() string     { return c.OtelIdentifier }

// IsPostgres reports whether the configured driver targets PostgreSQL.
func (c PersistenceConfig) IsPostgres() bool {
	switch strings.ToLower(c.Driver) {
	case "postgres", "postgresql", "pg":
		return true
	}
	return false
}

// FeaturesConfig toggles optional product features.
type FeaturesConfig struct {
	Signup bool `json:"signup" env:"MACROMATE_SIGNUP" default:"true"`
	Chat   bool `json:"chat" env:"MACROMATE_CHAT" default:"true"`
}

// Gate exposes the toggles as a feature gate. Unknown keys are enabled.
func (c FeaturesConfig) Gate() featuregate.FeatureGate {
	return staticGate{
		command.FeatureSignup: c.Signup,
		command.FeatureChat:   c.Chat,
	}
}

type staticGate map[string]bool

func (g staticGate) Enabled(_ context.Context, key string, _ ...featuregate.ResolveOption) (bool, error) {
	enabled, ok := g[key]
	if !ok {
		return true, nil
	}
	return enabled, nil
}

// CacheConfig enables the read-through repository caches.
type CacheConfig struct {
	Catalog  bool `json:"catalog" env:"MACROMATE_CACHE_CATALOG" default:"false"`
	Settings bool `json:"settings" env:"MACROMATE_CACHE_SETTINGS" default:"false"`
}

// Defaults returns the configuration used before files and env are applied.
func Defaults() *BaseConfig {
	return &BaseConfig{
		Server: ServerConfig{
			Host: "localhost",
			Port: "8978",
		},
		Auth: AuthConfig{
			SigningKey:            "changeme-secret-key-please-use-env-var",
			SigningMethod:         "HS256",
			ContextKey:            "user",
			TokenExpiration:       3600,
			ExtendedTokenDuration: 86400,
			TokenLookup:           "header:Authorization",
			AuthScheme:            "Bearer",
			Issuer:                "macromate",
			RejectedRouteKey:      "rejected_route",
			RejectedRouteDefault:  "/api/auth/login",
		},
		Persistence: PersistenceConfig{
			Driver:         "sqlite",
			Server:         "file:macromate.db?_journal_mode=WAL&cache=shared&_fk=1",
			PingTimeout:    5 * time.Second,
			OtelIdentifier: "macromate",
			AutoMigrate:    true,
		},
		Features: FeaturesConfig{
			Signup: true,
			Chat:   true,
		},
	}
}

// GetAuth returns auth config
func (c *BaseConfig) GetAuth() auth.Config {
	return c.Auth
}

// GetPersistence returns persistence config
func (c *BaseConfig) GetPersistence() persistence.Config {
	return c.Persistence
}

// GetServer returns server config
func (c *BaseConfig) GetServer() ServerConfig {
	return c.Server
}

// Validate implements config.Validable interface
func (c *BaseConfig) Validate() error {
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		return ErrSigningKeyRequired
	}
	switch strings.ToLower(c.Persistence.Driver) {
	case "sqlite", "sqlite3", "postgres", "postgresql", "pg":
	default:
		return ErrUnsupportedDriver
	}
	return nil
}
