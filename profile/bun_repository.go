package profile

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed profile repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

type profileStore interface {
	repository.Repository[*Record]
}

// Repository implements types.ProfileRepository and
// types.MeasurementRepository using Bun.
type Repository struct {
	profileStore
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the default profile repository. The DB is
// required because profile updates and goal history share a transaction.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.DB == nil {
		return nil, errors.New("profile: db required")
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
		profileStore: repo,
		db:           cfg.DB,
		clock:        clock,
		idGen:        idGen,
	}, nil
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.ProfileRepository        = (*Repository)(nil)
	_ types.MeasurementRepository    = (*Repository)(nil)
)

// GetProfile returns the profile by its own identifier.
func (r *Repository) GetProfile(ctx context.Context, id uuid.UUID) (*types.Profile, error) {
	if id == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	rec, err := r.GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrProfileNotFound
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// GetProfileByUser returns the profile owned by the user.
func (r *Repository) GetProfileByUser(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	if userID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	rec, err := r.Get(ctx, selectUserID(userID))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrProfileNotFound
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// CreateProfile inserts the profile for a user. When the user already has one
// the existing profile is returned unchanged.
func (r *Repository) CreateProfile(ctx context.Context, profile types.Profile) (*types.Profile, error) {
	if profile.UserID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	existing, err := r.GetProfileByUser(ctx, profile.UserID)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, types.ErrProfileNotFound):
		return nil, err
	}

	now := r.clock.Now()
	rec := fromDomain(profile)
	if rec.ID == uuid.Nil {
		rec.ID = r.idGen.UUID()
	}
	applyDefaults(rec)
	rec.MacrosUpdatedAt = nil
	rec.CreatedAt = now
	rec.UpdatedAt = now

	created, err := r.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

// UpdateProfile stores the profile and, when the goal changed, appends a goal
// history row in the same transaction.
func (r *Repository) UpdateProfile(ctx context.Context, profile types.Profile) (*types.Profile, *types.GoalChange, error) {
	if profile.ID == uuid.Nil {
		return nil, nil, types.ErrProfileIDRequired
	}
	now := r.clock.Now()
	rec := fromDomain(profile)
	applyDefaults(rec)

	var change *GoalChangeRecord
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		existing := &Record{}
		if err := tx.NewSelect().Model(existing).Where("id = ?", profile.ID).Limit(1).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return types.ErrProfileNotFound
			}
			return err
		}
		rec.UserID = existing.UserID
		rec.CreatedAt = existing.CreatedAt
		rec.MacrosUpdatedAt = existing.MacrosUpdatedAt
		rec.UpdatedAt = now

		if _, err := tx.NewUpdate().Model(rec).WherePK().Exec(ctx); err != nil {
			return err
		}
		if existing.Goal == rec.Goal {
			return nil
		}
		change = &GoalChangeRecord{
			ID:           r.idGen.UUID(),
			ProfileID:    rec.ID,
			PreviousGoal: existing.Goal,
			NewGoal:      rec.Goal,
			WeightKg:     rec.WeightKg,
			ChangedAt:    now,
		}
		_, err := tx.NewInsert().Model(change).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return toDomain(rec), goalChangeToDomain(change), nil
}

// ListGoalHistory returns goal transitions newest first.
func (r *Repository) ListGoalHistory(ctx context.Context, profileID uuid.UUID) ([]types.GoalChange, error) {
	if profileID == uuid.Nil {
		return nil, types.ErrProfileIDRequired
	}
	var records []GoalChangeRecord
	err := r.db.NewSelect().
		Model(&records).
		Where("profile_id = ?", profileID).
		Order("changed_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.GoalChange, 0, len(records))
	for i := range records {
		out = append(out, *goalChangeToDomain(&records[i]))
	}
	return out, nil
}

func selectUserID(userID uuid.UUID) repository.SelectCriteria {
	return repository.SelectBy("user_id", "=", userID.String())
}

func applyDefaults(rec *Record) {
	if rec.ActivityLevel == "" {
		rec.ActivityLevel = string(types.ActivitySedentary)
	}
	if rec.Goal == "" {
		rec.Goal = string(types.GoalMaintenance)
	}
	rec.Gender = string(types.Gender(rec.Gender).Canonical())
	rec.ActivityLevel = string(types.ActivityLevel(rec.ActivityLevel).Canonical())
	rec.Goal = string(types.Goal(rec.Goal).Canonical())
	if rec.BirthDate != nil {
		day := types.DayOf(*rec.BirthDate)
		rec.BirthDate = &day
	}
	rec.FirstName = strings.TrimSpace(rec.FirstName)
	rec.LastName = strings.TrimSpace(rec.LastName)
}

func fromDomain(p types.Profile) *Record {
	return &Record{
		ID:              p.ID,
		UserID:          p.UserID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		BirthDate:       cloneTime(p.BirthDate),
		Gender:          string(p.Gender),
		HeightCm:        cloneFloat(p.HeightCm),
		WeightKg:        cloneFloat(p.WeightKg),
		TargetWeightKg:  cloneFloat(p.TargetWeightKg),
		ActivityLevel:   string(p.ActivityLevel),
		Goal:            string(p.Goal),
		MacrosUpdatedAt: cloneTime(p.MacrosUpdatedAt),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toDomain(rec *Record) *types.Profile {
	if rec == nil {
		return nil
	}
	return &types.Profile{
		ID:              rec.ID,
		UserID:          rec.UserID,
		FirstName:       rec.FirstName,
		LastName:        rec.LastName,
		BirthDate:       cloneTime(rec.BirthDate),
		Gender:          types.Gender(rec.Gender),
		HeightCm:        cloneFloat(rec.HeightCm),
		WeightKg:        cloneFloat(rec.WeightKg),
		TargetWeightKg:  cloneFloat(rec.TargetWeightKg),
		ActivityLevel:   types.ActivityLevel(rec.ActivityLevel),
		Goal:            types.Goal(rec.Goal),
		MacrosUpdatedAt: cloneTime(rec.MacrosUpdatedAt),
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}

func goalChangeToDomain(rec *GoalChangeRecord) *types.GoalChange {
	if rec == nil {
		return nil
	}
	return &types.GoalChange{
		ID:           rec.ID,
		ProfileID:    rec.ProfileID,
		PreviousGoal: types.Goal(rec.PreviousGoal),
		NewGoal:      types.Goal(rec.NewGoal),
		WeightKg:     cloneFloat(rec.WeightKg),
		ChangedAt:    rec.ChangedAt,
	}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
