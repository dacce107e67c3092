package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/macromate/go-macromate/settings"
)

// SettingsQueryInput selects the user and, optionally, the keys to resolve.
type SettingsQueryInput struct {
	UserID uuid.UUID
	Keys   []string
	Actor  types.ActorRef
}

// Type implements gocommand.Message.
func (SettingsQueryInput) Type() string {
	return "query.settings"
}

type settingsResolver interface {
	Resolve(ctx context.Context, input settings.ResolveInput) (types.SettingsSnapshot, error)
}

// SettingsQuery resolves effective settings via the injected resolver.
type SettingsQuery struct {
	resolver settingsResolver
	guard    access.Guard
}

// NewSettingsQuery constructs the settings query helper.
func NewSettingsQuery(resolver settingsResolver, guard access.Guard) *SettingsQuery {
	return &SettingsQuery{
		resolver: resolver,
		guard:    safeGuard(guard),
	}
}

var _ gocommand.Querier[SettingsQueryInput, types.SettingsSnapshot] = (*SettingsQuery)(nil)

// Query resolves the user's settings over the system defaults.
func (q *SettingsQuery) Query(ctx context.Context, input SettingsQueryInput) (types.SettingsSnapshot, error) {
	if q.resolver == nil {
		return types.SettingsSnapshot{}, types.ErrMissingSettingsResolver
	}
	userID, err := q.guard.Enforce(ctx, input.Actor, types.PolicyActionSettingsRead, input.UserID)
	if err != nil {
		return types.SettingsSnapshot{}, err
	}
	return q.resolver.Resolve(ctx, settings.ResolveInput{
		UserID: userID,
		Keys:   input.Keys,
	})
}
