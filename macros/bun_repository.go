package macros

import (
	"context"
	"errors"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/uptrace/bun"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// ErrResultNotStorable indicates an error payload was handed to the store.
var ErrResultNotStorable = errors.New("macros: only successful results can be recorded")

// RepositoryConfig wires the Bun-backed macro record store.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

type recordStore interface {
	repository.Repository[*Record]
}

// Repository implements types.MacroRepository. Every write runs in a single
// transaction that first touches the owning profile row, so concurrent
// recalculations for one profile serialize on that row and never leave two
// active records behind. The generic store stays unexported so inserts can
// only go through RecordAndActivate.
type Repository struct {
	store recordStore
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the macro record store.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.DB == nil {
		return nil, errors.New("macros: db required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *Record, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
		})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	return &Repository{
		store: repo,
		db:    cfg.DB,
		clock: clock,
		idGen: idGen,
	}, nil
}

var _ types.MacroRepository = (*Repository)(nil)

// RecordAndActivate deactivates the profile's current record and inserts the
// new one as active. Either both happen or neither does.
func (r *Repository) RecordAndActivate(ctx context.Context, profileID uuid.UUID, result types.MacroResult, computedOn time.Time) (*types.MacroRecord, error) {
	if profileID == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	if !result.OK() {
		return nil, ErrResultNotStorable
	}
	now := r.clock.Now()
	if computedOn.IsZero() {
		computedOn = now
	}
	rec := &Record{
		ID:            r.idGen.UUID(),
		ProfileID:     profileID,
		CaloriesDaily: float64(result.CaloriesDaily),
		ProteinG:      result.ProteinG,
		CarbsG:        result.CarbsG,
		FatG:          result.FatG,
		ComputedOn:    types.DayOf(computedOn),
		Active:        true,
		CreatedAt:     now,
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Table("profiles").
			Set("macros_updated_at = ?", now).
			Where("id = ?", profileID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return types.ErrProfileNotFound
		}

		if _, err := tx.NewUpdate().
			Model((*Record)(nil)).
			Set("active = ?", false).
			Where("profile_id = ?", profileID).
			Where("active = ?", true).
			Exec(ctx); err != nil {
			return err
		}

		_, err = tx.NewInsert().Model(rec).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toDomain(rec), nil
}

// GetActive returns the active record for the profile or types.ErrMacrosNotFound.
func (r *Repository) GetActive(ctx context.Context, profileID uuid.UUID) (*types.MacroRecord, error) {
	if profileID == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	rec, err := r.store.Get(ctx,
		repository.SelectBy("profile_id", "=", profileID.String()),
		selectActive(),
	)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrMacrosNotFound
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// ListHistory returns all records for the profile, newest first.
func (r *Repository) ListHistory(ctx context.Context, profileID uuid.UUID, page types.Pagination) (types.MacroHistoryPage, error) {
	if profileID == uuid.Nil {
		return types.MacroHistoryPage{}, types.ErrProfileIDRequired
	}
	limit, offset := normalizePagination(page)
	records, total, err := r.store.List(ctx,
		repository.SelectBy("profile_id", "=", profileID.String()),
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("created_at DESC").Limit(limit).Offset(offset)
		},
	)
	if err != nil {
		return types.MacroHistoryPage{}, err
	}
	out := types.MacroHistoryPage{
		Records: make([]types.MacroRecord, 0, len(records)),
		Total:   total,
	}
	for _, rec := range records {
		out.Records = append(out.Records, *toDomain(rec))
	}
	next := offset + len(records)
	if next < total {
		out.HasMore = true
		out.NextOffset = next
	}
	return out, nil
}

func selectActive() repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("active = ?", true)
	}
}

func normalizePagination(p types.Pagination) (int, int) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func toDomain(rec *Record) *types.MacroRecord {
	if rec == nil {
		return nil
	}
	return &types.MacroRecord{
		ID:            rec.ID,
		ProfileID:     rec.ProfileID,
		CaloriesDaily: rec.CaloriesDaily,
		ProteinG:      rec.ProteinG,
		CarbsG:        rec.CarbsG,
		FatG:          rec.FatG,
		ComputedOn:    rec.ComputedOn,
		Active:        rec.Active,
		CreatedAt:     rec.CreatedAt,
	}
}
