package access

import (
	"context"

	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/types"
)

// Guard resolves the user a command or query targets and authorizes the actor
// against it.
type Guard interface {
	Enforce(ctx context.Context, actor types.ActorRef, action types.PolicyAction, target uuid.UUID) (uuid.UUID, error)
}

type guard struct {
	policy types.AuthorizationPolicy
}

// NewGuard builds a Guard. Actors may always act on themselves and privileged
// roles may act on anyone; the policy, when set, gets the final say.
func NewGuard(policy types.AuthorizationPolicy) Guard {
	return guard{policy: policy}
}

// Ensure returns a non-nil guard so constructors can accept nil guards.
func Ensure(g Guard) Guard {
	if g == nil {
		return guard{}
	}
	return g
}

// Enforce returns the effective target user. A nil target means the actor.
func (g guard) Enforce(ctx context.Context, actor types.ActorRef, action types.PolicyAction, target uuid.UUID) (uuid.UUID, error) {
	if actor.ID == uuid.Nil {
		return uuid.Nil, types.ErrActorRequired
	}
	if target == uuid.Nil {
		target = actor.ID
	}
	if target != actor.ID && !actor.IsPrivileged() {
		return uuid.Nil, types.ErrUnauthorized
	}
	if g.policy != nil && action != "" {
		check := types.PolicyCheck{
			Actor:    actor,
			Action:   action,
			TargetID: target,
		}
		if err := g.policy.Authorize(ctx, check); err != nil {
			return uuid.Nil, err
		}
	}
	return target, nil
}
