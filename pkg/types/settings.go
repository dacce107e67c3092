package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SettingRecord represents a stored user setting entry.
type SettingRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Key       string
	Value     map[string]any
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SettingFilter narrows setting listings.
type SettingFilter struct {
	UserID uuid.UUID
	Keys   []string
}

// SettingRepository exposes CRUD helpers for user settings.
type SettingRepository interface {
	ListSettings(ctx context.Context, filter SettingFilter) ([]SettingRecord, error)
	UpsertSetting(ctx context.Context, record SettingRecord) (*SettingRecord, error)
	DeleteSetting(ctx context.Context, userID uuid.UUID, key string) error
}

// SettingLevel identifies the layer a resolved value came from.
type SettingLevel string

const (
	SettingLevelSystem SettingLevel = "system"
	SettingLevelUser   SettingLevel = "user"
)

// SettingsSnapshot depicts the effective settings plus provenance per key.
type SettingsSnapshot struct {
	Effective map[string]any `json:"effective"`
	Traces    []SettingTrace `json:"traces,omitempty"`
}

// SettingTrace captures which layer supplied a key.
type SettingTrace struct {
	Key   string       `json:"key"`
	Level SettingLevel `json:"level"`
	Value any          `json:"value"`
}
