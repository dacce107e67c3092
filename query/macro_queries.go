package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/pkg/types"
)

// MacroQueryConfig wires dependencies for macro queries.
type MacroQueryConfig struct {
	Profiles types.ProfileRepository
	Macros   types.MacroRepository
	Guard    access.Guard
}

// ActiveMacrosQuery returns the active macro record. A profile that was never
// calculated yields types.ErrMacrosNotFound rather than zero targets.
type ActiveMacrosQuery struct {
	profiles types.ProfileRepository
	macros   types.MacroRepository
	guard    access.Guard
}

// NewActiveMacrosQuery constructs the helper.
func NewActiveMacrosQuery(cfg MacroQueryConfig) *ActiveMacrosQuery {
	return &ActiveMacrosQuery{
		profiles: cfg.Profiles,
		macros:   cfg.Macros,
		guard:    safeGuard(cfg.Guard),
	}
}

var _ gocommand.Querier[ProfileQueryInput, *types.MacroRecord] = (*ActiveMacrosQuery)(nil)

// Query returns the active record.
func (q *ActiveMacrosQuery) Query(ctx context.Context, input ProfileQueryInput) (*types.MacroRecord, error) {
	if q.macros == nil {
		return nil, types.ErrMissingMacroRepository
	}
	profile, err := resolveProfile(ctx, q.guard, q.profiles, input.Actor, types.PolicyActionMacrosRead, input.UserID)
	if err != nil {
		return nil, err
	}
	return q.macros.GetActive(ctx, profile.ID)
}

// MacroHistoryInput pages through past calculations.
type MacroHistoryInput struct {
	UserID     uuid.UUID
	Actor      types.ActorRef
	Pagination types.Pagination
}

// Type implements gocommand.Message.
func (MacroHistoryInput) Type() string {
	return "query.macros.history"
}

// MacroHistoryQuery lists macro records newest first.
type MacroHistoryQuery struct {
	profiles types.ProfileRepository
	macros   types.MacroRepository
	guard    access.Guard
}

// NewMacroHistoryQuery constructs the helper.
func NewMacroHistoryQuery(cfg MacroQueryConfig) *MacroHistoryQuery {
	return &MacroHistoryQuery{
		profiles: cfg.Profiles,
		macros:   cfg.Macros,
		guard:    safeGuard(cfg.Guard),
	}
}

var _ gocommand.Querier[MacroHistoryInput, types.MacroHistoryPage] = (*MacroHistoryQuery)(nil)

// Query returns a page of records.
func (q *MacroHistoryQuery) Query(ctx context.Context, input MacroHistoryInput) (types.MacroHistoryPage, error) {
	if q.macros == nil {
		return types.MacroHistoryPage{}, types.ErrMissingMacroRepository
	}
	profile, err := resolveProfile(ctx, q.guard, q.profiles, input.Actor, types.PolicyActionMacrosRead, input.UserID)
	if err != nil {
		return types.MacroHistoryPage{}, err
	}
	return q.macros.ListHistory(ctx, profile.ID, input.Pagination)
}
