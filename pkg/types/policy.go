package types

import (
	"context"

	"github.com/google/uuid"
)

// PolicyAction enumerates the authorization actions checked by the access
// guard. Host applications can remap these actions to their own ACL systems.
type PolicyAction string

const (
	PolicyActionProfileRead   PolicyAction = "profile:read"
	PolicyActionProfileWrite  PolicyAction = "profile:write"
	PolicyActionMacrosRead    PolicyAction = "macros:read"
	PolicyActionMacrosWrite   PolicyAction = "macros:write"
	PolicyActionIntakeRead    PolicyAction = "intake:read"
	PolicyActionIntakeWrite   PolicyAction = "intake:write"
	PolicyActionRecipesRead   PolicyAction = "recipes:read"
	PolicyActionRecipesWrite  PolicyAction = "recipes:write"
	PolicyActionChatRead      PolicyAction = "chat:read"
	PolicyActionChatWrite     PolicyAction = "chat:write"
	PolicyActionSettingsRead  PolicyAction = "settings:read"
	PolicyActionSettingsWrite PolicyAction = "settings:write"
	PolicyActionCatalogRead   PolicyAction = "catalog:read"
	PolicyActionCatalogWrite  PolicyAction = "catalog:write"
	PolicyActionActivityRead  PolicyAction = "activity:read"
	PolicyActionAccountWrite  PolicyAction = "account:write"
)

// PolicyCheck captures the authorization context for a single command/query.
type PolicyCheck struct {
	Actor    ActorRef
	Action   PolicyAction
	TargetID uuid.UUID
}

// AuthorizationPolicy governs whether an actor can run the action against the
// target user.
type AuthorizationPolicy interface {
	Authorize(ctx context.Context, check PolicyCheck) error
}

// AuthorizationPolicyFunc adapts bare functions to AuthorizationPolicy.
type AuthorizationPolicyFunc func(ctx context.Context, check PolicyCheck) error

// Authorize implements AuthorizationPolicy.
func (f AuthorizationPolicyFunc) Authorize(ctx context.Context, check PolicyCheck) error {
	return f(ctx, check)
}

// AllowAllAuthorizationPolicy allows every action.
type AllowAllAuthorizationPolicy struct{}

// Authorize implements AuthorizationPolicy.
func (AllowAllAuthorizationPolicy) Authorize(context.Context, PolicyCheck) error {
	return nil
}
