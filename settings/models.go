package settings

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the user_settings row.
type Record struct {
	bun.BaseModel `bun:"table:user_settings,alias:us"`

	ID        uuid.UUID      `bun:"id,pk,type:uuid"`
	UserID    uuid.UUID      `bun:"user_id,type:uuid"`
	Key       string         `bun:"key"`
	Value     map[string]any `bun:"value,type:jsonb"`
	Version   int            `bun:"version"`
	CreatedAt time.Time      `bun:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at"`
}
