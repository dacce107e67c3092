package macros

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the macro_records row.
type Record struct {
	bun.BaseModel `bun:"table:macro_records"`

	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	ProfileID     uuid.UUID `bun:"profile_id,type:uuid"`
	CaloriesDaily float64   `bun:"calories_daily"`
	ProteinG      float64   `bun:"protein_g"`
	CarbsG        float64   `bun:"carbs_g"`
	FatG          float64   `bun:"fat_g"`
	ComputedOn    time.Time `bun:"computed_on"`
	Active        bool      `bun:"active"`
	CreatedAt     time.Time `bun:"created_at"`
}
