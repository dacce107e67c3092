// Package authctx bridges go-auth actor metadata and the actor references
// consumed by macromate commands and queries.
package authctx

import (
	"context"

	auth "github.com/goliatone/go-auth"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/pkg/types"
)

const (
	textCodeActorMissing = "ACTOR_CONTEXT_MISSING"
	textCodeActorInvalid = "ACTOR_CONTEXT_INVALID"
)

// ResolveActorContext returns the actor stored by go-auth middleware or
// rebuilds it from JWT claims when no actor was attached.
func ResolveActorContext(ctx context.Context) (*auth.ActorContext, error) {
	if ctx == nil {
		return nil, errors.New("macromate: missing request context", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodeActorMissing)
	}

	if actor, ok := auth.ActorFromContext(ctx); ok && actor != nil {
		return actor, nil
	}

	if claims, ok := auth.GetClaims(ctx); ok && claims != nil {
		if actor := auth.ActorContextFromClaims(claims); actor != nil {
			return actor, nil
		}
	}

	return nil, errors.New("macromate: auth actor context not found on request", errors.CategoryAuth).
		WithCode(errors.CodeUnauthorized).
		WithTextCode(textCodeActorMissing)
}

// ResolveActorContextFromRouter checks the router context before falling
// back to the request context.
func ResolveActorContextFromRouter(ctx router.Context) (*auth.ActorContext, error) {
	if ctx == nil {
		return nil, errors.New("macromate: missing router context", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodeActorMissing)
	}

	if actor, ok := auth.ActorFromRouterContext(ctx); ok && actor != nil {
		return actor, nil
	}

	return ResolveActorContext(ctx.Context())
}

// ResolveActor returns the actor reference for the request.
func ResolveActor(ctx context.Context) (types.ActorRef, error) {
	actorCtx, err := ResolveActorContext(ctx)
	if err != nil {
		return types.ActorRef{}, err
	}
	return ActorRefFromActorContext(actorCtx)
}

// ActorRefFromRouter resolves the actor reference for a routed request.
func ActorRefFromRouter(ctx router.Context) (types.ActorRef, error) {
	actorCtx, err := ResolveActorContextFromRouter(ctx)
	if err != nil {
		return types.ActorRef{}, err
	}
	return ActorRefFromActorContext(actorCtx)
}

// ActorRefFromActorContext converts the auth middleware payload into an
// ActorRef. The actor role becomes the ref type.
func ActorRefFromActorContext(actor *auth.ActorContext) (types.ActorRef, error) {
	if actor == nil {
		return types.ActorRef{}, errors.New("macromate: actor context is nil", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodeActorInvalid)
	}
	if actor.ActorID == "" {
		return types.ActorRef{}, errors.New("macromate: actor context missing actor_id", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodeActorInvalid)
	}

	actorID, err := uuid.Parse(actor.ActorID)
	if err != nil {
		return types.ActorRef{}, errors.Wrap(err, errors.CategoryAuth, "macromate: invalid actor_id on auth context").
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodeActorInvalid)
	}

	ref := types.ActorRef{
		ID:   actorID,
		Type: actor.Role,
	}
	if ref.Type == "" {
		ref.Type = types.ActorRoleMember
	}
	return ref, nil
}

// WithActor stores the actor on ctx the way go-auth middleware does. The CLI
// uses it to run commands as the system actor.
func WithActor(ctx context.Context, ref types.ActorRef) context.Context {
	return auth.WithActorContext(ctx, &auth.ActorContext{
		ActorID: ref.ID.String(),
		Subject: ref.ID.String(),
		Role:    ref.Type,
	})
}
