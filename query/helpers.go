package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/pkg/types"
)

func safeGuard(g access.Guard) access.Guard {
	return access.Ensure(g)
}

func safeClock(clock types.Clock) types.Clock {
	if clock != nil {
		return clock
	}
	return types.SystemClock{}
}

// resolveProfile enforces access for the action and loads the target
// user's profile.
func resolveProfile(ctx context.Context, guard access.Guard, repo types.ProfileRepository, actor types.ActorRef, action types.PolicyAction, userID uuid.UUID) (*types.Profile, error) {
	if repo == nil {
		return nil, types.ErrMissingProfileRepository
	}
	target, err := guard.Enforce(ctx, actor, action, userID)
	if err != nil {
		return nil, err
	}
	return repo.GetProfileByUser(ctx, target)
}
