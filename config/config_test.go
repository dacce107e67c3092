package config

import (
	"context"
	"errors"
	"testing"

	"github.com/macromate/go-macromate/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "sqlite", cfg.GetPersistence().GetDriver())
	assert.Equal(t, "macromate", cfg.GetAuth().GetIssuer())
	assert.False(t, cfg.Persistence.IsPostgres())
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := Defaults()
	cfg.Persistence.Driver = "mysql"
	assert.True(t, errors.Is(cfg.Validate(), ErrUnsupportedDriver))

	cfg.Persistence.Driver = "Postgres"
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Persistence.IsPostgres())
}

func TestValidateRequiresSigningKey(t *testing.T) {
	cfg := Defaults()
	cfg.Auth.SigningKey = "  "
	assert.True(t, errors.Is(cfg.Validate(), ErrSigningKeyRequired))
}

func TestFeaturesGate(t *testing.T) {
	gate := FeaturesConfig{Signup: false, Chat: true}.Gate()
	ctx := context.Background()

	enabled, err := gate.Enabled(ctx, command.FeatureSignup)
	require.NoError(t, err)
	assert.False(t, enabled)

	enabled, err = gate.Enabled(ctx, command.FeatureChat)
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = gate.Enabled(ctx, "macromate.unknown")
	require.NoError(t, err)
	assert.True(t, enabled)
}
