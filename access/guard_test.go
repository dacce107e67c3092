package access

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestGuard_DefaultsTargetToActor(t *testing.T) {
	actor := types.ActorRef{ID: uuid.New(), Type: types.ActorRoleMember}

	target, err := Ensure(nil).Enforce(context.Background(), actor, types.PolicyActionProfileRead, uuid.Nil)
	require.NoError(t, err)
	require.Equal(t, actor.ID, target)
}

func TestGuard_MembersCannotTargetOthers(t *testing.T) {
	g := NewGuard(nil)
	member := types.ActorRef{ID: uuid.New(), Type: types.ActorRoleMember}

	_, err := g.Enforce(context.Background(), member, types.PolicyActionMacrosRead, uuid.New())
	require.ErrorIs(t, err, types.ErrUnauthorized)

	admin := types.ActorRef{ID: uuid.New(), Type: "Admin"}
	other := uuid.New()
	target, err := g.Enforce(context.Background(), admin, types.PolicyActionMacrosRead, other)
	require.NoError(t, err)
	require.Equal(t, other, target)
}

func TestGuard_PolicyHasFinalSay(t *testing.T) {
	denied := errors.New("denied")
	var seen types.PolicyCheck
	g := NewGuard(types.AuthorizationPolicyFunc(func(_ context.Context, check types.PolicyCheck) error {
		seen = check
		if check.Action == types.PolicyActionChatWrite {
			return denied
		}
		return nil
	}))
	actor := types.ActorRef{ID: uuid.New()}

	_, err := g.Enforce(context.Background(), actor, types.PolicyActionChatWrite, uuid.Nil)
	require.ErrorIs(t, err, denied)
	require.Equal(t, actor.ID, seen.TargetID)

	_, err = g.Enforce(context.Background(), actor, types.PolicyActionChatRead, uuid.Nil)
	require.NoError(t, err)
}

func TestGuard_RequiresActor(t *testing.T) {
	_, err := NewGuard(types.AllowAllAuthorizationPolicy{}).Enforce(context.Background(), types.ActorRef{}, types.PolicyActionProfileRead, uuid.Nil)
	require.ErrorIs(t, err, types.ErrActorRequired)
}
