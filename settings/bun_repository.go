package settings

import (
	"context"
	"errors"
	"sort"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/querycache"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/uptrace/bun"
)

// ErrKeyRequired indicates a blank setting key.
var ErrKeyRequired = errors.New("settings: key required")

// RepositoryConfig wires dependencies for the Bun-backed settings store.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

type settingStore interface {
	repository.Repository[*Record]
}

// Repository implements types.SettingRepository. store may be cache
// decorated; criteria reads use reads and cache per-user results in lists.
type Repository struct {
	store settingStore
	reads repository.Repository[*Record]
	lists *querycache.Cache
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the default settings repository.
func NewRepository(cfg RepositoryConfig, opts ...RepositoryOption) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("settings: db or repository required")
	}
	options := applyRepositoryOptions(opts)
	repo := cfg.Repository
	if repo == nil {
		repo = newStore(cfg.DB)
	}
	reads := repo
	var lists *querycache.Cache
	if options.CacheEnabled {
		cacheCfg := cache.DefaultConfig()
		if options.CacheConfig != nil {
			cacheCfg = *options.CacheConfig
		}
		cacheService, err := cache.NewCacheService(cacheCfg)
		if err != nil {
			return nil, err
		}
		if _, ok := repo.(*repositorycache.CachedRepository[*Record]); ok {
			if cfg.DB == nil {
				return nil, errors.New("settings: db required to read around a cached repository")
			}
			reads = newStore(cfg.DB)
		} else {
			repo = repositorycache.New(repo, cacheService, cache.NewDefaultKeySerializer())
		}
		lists = querycache.New(cacheService, "settings")
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
		reads: reads,
		lists: lists,
		clock: clock,
		idGen: idGen,
	}, nil
}

func newStore(db *bun.DB) repository.Repository[*Record] {
	return repository.NewRepository(db, repository.ModelHandlers[*Record]{
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

var _ types.SettingRepository = (*Repository)(nil)

// ListSettings fetches the user's settings ordered by key.
func (r *Repository) ListSettings(ctx context.Context, filter types.SettingFilter) ([]types.SettingRecord, error) {
	if filter.UserID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	keys := make([]string, 0, len(filter.Keys))
	for _, key := range filter.Keys {
		keys = append(keys, normalizeKey(key))
	}
	sort.Strings(keys)

	rows, err := querycache.Fetch(ctx, r.lists, func(ctx context.Context) ([]*Record, error) {
		rows, _, err := r.reads.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("user_id = ?", filter.UserID).OrderExpr("key ASC")
			if len(keys) > 0 {
				q = q.Where("key IN (?)", bun.In(keys))
			}
			return q
		})
		return rows, err
	}, filter.UserID.String(), strings.Join(keys, ","))
	if err != nil {
		return nil, err
	}
	result := make([]types.SettingRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomain(row))
	}
	return result, nil
}

// UpsertSetting inserts a setting or replaces the stored value, bumping its
// version.
func (r *Repository) UpsertSetting(ctx context.Context, record types.SettingRecord) (*types.SettingRecord, error) {
	if record.UserID == uuid.Nil {
		return nil, types.ErrUserIDRequired
	}
	key := normalizeKey(record.Key)
	if key == "" {
		return nil, ErrKeyRequired
	}
	now := r.clock.Now()
	payload := &Record{
		UserID: record.UserID,
		Key:    key,
		Value:  cloneMap(record.Value),
	}
	if payload.Value == nil {
		payload.Value = map[string]any{}
	}

	existing, err := r.findExisting(ctx, record.UserID, key)
	switch {
	case err == nil && existing != nil:
		payload.ID = existing.ID
		payload.CreatedAt = existing.CreatedAt
		payload.Version = existing.Version + 1
		payload.UpdatedAt = now
		updated, err := r.store.Update(ctx, payload)
		if err != nil {
			return nil, err
		}
		if err := r.lists.Invalidate(ctx, record.UserID.String()); err != nil {
			return nil, err
		}
		out := toDomain(updated)
		return &out, nil
	case repository.IsRecordNotFound(err):
		payload.ID = r.idGen.UUID()
		payload.Version = 1
		payload.CreatedAt = now
		payload.UpdatedAt = now
		created, err := r.store.Create(ctx, payload)
		if err != nil {
			return nil, err
		}
		if err := r.lists.Invalidate(ctx, record.UserID.String()); err != nil {
			return nil, err
		}
		out := toDomain(created)
		return &out, nil
	default:
		return nil, err
	}
}

// DeleteSetting removes a stored setting so the default applies again.
func (r *Repository) DeleteSetting(ctx context.Context, userID uuid.UUID, key string) error {
	if userID == uuid.Nil {
		return types.ErrUserIDRequired
	}
	existing, err := r.findExisting(ctx, userID, normalizeKey(key))
	if err != nil {
		return err
	}
	if err := r.store.Delete(ctx, existing); err != nil {
		return err
	}
	return r.lists.Invalidate(ctx, userID.String())
}

func (r *Repository) findExisting(ctx context.Context, userID uuid.UUID, key string) (*Record, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	rows, _, err := r.reads.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("user_id = ?", userID).
			Where("key = ?", key).
			Limit(1)
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repository.NewRecordNotFound()
	}
	return rows[0], nil
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func toDomain(rec *Record) types.SettingRecord {
	return types.SettingRecord{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Key:       rec.Key,
		Value:     cloneMap(rec.Value),
		Version:   rec.Version,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		if nested, ok := v.(map[string]any); ok {
			out[k] = cloneMap(nested)
			continue
		}
		out[k] = v
	}
	return out
}
