package settings

import (
	"context"
	"errors"
	"sort"

	opts "github.com/goliatone/go-options"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/types"
)

const (
	KeyWaterGoal = "water_goal"
	KeyUnits     = "units"
	KeyMeals     = "meals"
)

// DefaultValues returns the system level settings applied when a user has not
// stored an override.
func DefaultValues() map[string]any {
	return map[string]any{
		KeyWaterGoal: map[string]any{"liters": 2.0},
		KeyUnits:     map[string]any{"system": "metric"},
		KeyMeals:     map[string]any{"per_day": 4},
	}
}

// ResolverConfig wires dependencies for the settings resolver.
type ResolverConfig struct {
	Repository types.SettingRepository
	Defaults   map[string]any
}

// Resolver merges system defaults with user settings via go-options.
type Resolver struct {
	repo     types.SettingRepository
	defaults map[string]any
}

// ResolveInput selects the user and, optionally, the keys to resolve.
type ResolveInput struct {
	UserID uuid.UUID
	Keys   []string
}

// NewResolver constructs a settings resolver. Nil defaults fall back to
// DefaultValues.
func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	if cfg.Repository == nil {
		return nil, errors.New("settings: repository required")
	}
	defaults := cfg.Defaults
	if defaults == nil {
		defaults = DefaultValues()
	}
	return &Resolver{
		repo:     cfg.Repository,
		defaults: cloneMap(defaults),
	}, nil
}

// Resolve builds the effective settings snapshot for the user.
func (r *Resolver) Resolve(ctx context.Context, input ResolveInput) (types.SettingsSnapshot, error) {
	system := cloneMap(r.defaults)
	if len(input.Keys) > 0 {
		system = pick(system, input.Keys)
	}
	user := map[string]any{}
	if input.UserID != uuid.Nil {
		recs, err := r.repo.ListSettings(ctx, types.SettingFilter{UserID: input.UserID, Keys: input.Keys})
		if err != nil {
			return types.SettingsSnapshot{}, err
		}
		for _, rec := range recs {
			user[rec.Key] = cloneMap(rec.Value)
		}
	}

	systemScope := opts.NewScope("system", opts.ScopePrioritySystem,
		opts.WithScopeLabel("System Defaults"))
	userScope := opts.NewScope("user", opts.ScopePriorityUser,
		opts.WithScopeLabel("User"),
		opts.WithScopeMetadata(map[string]any{"user_id": input.UserID.String()}))

	stack, err := opts.NewStack(
		opts.NewLayer(systemScope, system, opts.WithSnapshotID[map[string]any](systemScope.Name)),
		opts.NewLayer(userScope, user, opts.WithSnapshotID[map[string]any](userScope.Name)),
	)
	if err != nil {
		return types.SettingsSnapshot{}, err
	}
	merged, err := stack.Merge()
	if err != nil {
		return types.SettingsSnapshot{}, err
	}

	effective := cloneMap(merged.Value)
	if effective == nil {
		effective = map[string]any{}
	}
	return types.SettingsSnapshot{
		Effective: effective,
		Traces:    buildTraces(effective, user),
	}, nil
}

// WaterGoal reads the daily water target in liters from a snapshot, falling
// back to the system default.
func WaterGoal(snapshot types.SettingsSnapshot) float64 {
	if section, ok := snapshot.Effective[KeyWaterGoal].(map[string]any); ok {
		if liters, ok := toFloat(section["liters"]); ok && liters > 0 {
			return liters
		}
	}
	return 2.0
}

func buildTraces(effective, user map[string]any) []types.SettingTrace {
	keys := make([]string, 0, len(effective))
	for key := range effective {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	traces := make([]types.SettingTrace, 0, len(keys))
	for _, key := range keys {
		level := types.SettingLevelSystem
		if _, ok := user[key]; ok {
			level = types.SettingLevelUser
		}
		traces = append(traces, types.SettingTrace{Key: key, Level: level, Value: effective[key]})
	}
	return traces
}

func pick(values map[string]any, keys []string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, key := range keys {
		if v, ok := values[normalizeKey(key)]; ok {
			out[normalizeKey(key)] = v
		}
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
