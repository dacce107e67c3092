package crudguard

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/pkg/authctx"
	"github.com/macromate/go-macromate/pkg/types"
)

const (
	textCodeAccessDenied          = "ACCESS_DENIED"
	textCodeAccessEnforcementFail = "ACCESS_ENFORCEMENT_FAILED"
	textCodeMissingPolicy         = "ACCESS_POLICY_MISSING"
	textCodeMissingContext        = "CONTEXT_MISSING"
)

// Config drives Adapter construction.
type Config struct {
	Guard          access.Guard
	Logger         types.Logger
	PolicyMap      PolicyMap
	FallbackAction types.PolicyAction
}

// Adapter turns go-crud operations into access guard enforcement calls.
type Adapter struct {
	guard          access.Guard
	logger         types.Logger
	policyMap      PolicyMap
	fallbackAction types.PolicyAction
}

// GuardInput captures per-request parameters supplied by transports.
type GuardInput struct {
	Context   crud.Context
	Operation crud.CrudOperation
	TargetID  uuid.UUID
	Bypass    *BypassConfig
}

// GuardResult reports the actor and the user the request resolved to.
type GuardResult struct {
	Actor        types.ActorRef
	TargetID     uuid.UUID
	Operation    crud.CrudOperation
	Bypassed     bool
	BypassReason string
}

// BypassConfig explicitly allows guard skips for whitelisted routes (e.g.
// schema exports). It must never be enabled by default.
type BypassConfig struct {
	Enabled bool
	Reason  string
}

// NewAdapter constructs a Guard adapter and validates the supplied config.
func NewAdapter(cfg Config) (*Adapter, error) {
	if cfg.Guard == nil {
		return nil, goerrors.New("macromate: access guard is required", goerrors.CategoryInternal).
			WithCode(goerrors.CodeInternal).
			WithTextCode(textCodeAccessEnforcementFail)
	}
	if len(cfg.PolicyMap) == 0 && cfg.FallbackAction == "" {
		return nil, goerrors.New("macromate: policy map or fallback action must be provided", goerrors.CategoryInternal).
			WithCode(goerrors.CodeInternal).
			WithTextCode(textCodeMissingPolicy)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}

	return &Adapter{
		guard:          access.Ensure(cfg.Guard),
		logger:         logger,
		policyMap:      cfg.PolicyMap.clone(),
		fallbackAction: cfg.FallbackAction,
	}, nil
}

// Enforce resolves the actor, optionally bypasses, and finally enforces the
// access guard with the mapped PolicyAction.
func (a *Adapter) Enforce(in GuardInput) (GuardResult, error) {
	if in.Context == nil {
		return GuardResult{}, goerrors.New("macromate: crudguard requires a context", goerrors.CategoryInternal).
			WithCode(goerrors.CodeInternal).
			WithTextCode(textCodeMissingContext)
	}

	ctx := in.Context.UserContext()
	actorRef, err := authctx.ResolveActor(ctx)
	if err != nil {
		return GuardResult{}, err
	}

	if in.Bypass != nil && in.Bypass.Enabled {
		a.logger.Info("crudguard: bypassing guard enforcement", "operation", string(in.Operation), "reason", in.Bypass.Reason)
		target := in.TargetID
		if target == uuid.Nil {
			target = actorRef.ID
		}
		return GuardResult{
			Actor:        actorRef,
			TargetID:     target,
			Operation:    in.Operation,
			Bypassed:     true,
			BypassReason: in.Bypass.Reason,
		}, nil
	}

	action, err := a.actionForOperation(in.Operation)
	if err != nil {
		return GuardResult{}, err
	}

	target, err := a.guard.Enforce(ctx, actorRef, action, in.TargetID)
	if err != nil {
		return GuardResult{}, wrapGuardError(err, action)
	}

	return GuardResult{
		Actor:     actorRef,
		TargetID:  target,
		Operation: in.Operation,
	}, nil
}

func (a *Adapter) actionForOperation(op crud.CrudOperation) (types.PolicyAction, error) {
	if act, ok := a.policyMap.action(op); ok {
		return act, nil
	}
	if a.fallbackAction != "" {
		return a.fallbackAction, nil
	}
	return "", goerrors.New(fmt.Sprintf("macromate: no policy action configured for %s", op), goerrors.CategoryInternal).
		WithCode(goerrors.CodeInternal).
		WithTextCode(textCodeMissingPolicy)
}

func wrapGuardError(err error, action types.PolicyAction) error {
	if errors.Is(err, types.ErrUnauthorized) {
		return goerrors.Wrap(err, goerrors.CategoryAuthz, "macromate: access guard rejected the request").
			WithCode(goerrors.CodeForbidden).
			WithTextCode(textCodeAccessDenied)
	}
	if errors.Is(err, types.ErrActorRequired) {
		return goerrors.Wrap(err, goerrors.CategoryAuth, "macromate: actor required").
			WithCode(goerrors.CodeUnauthorized).
			WithTextCode(textCodeAccessDenied)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("macromate: access guard failed for action %s", action)).
		WithCode(goerrors.CodeInternal).
		WithTextCode(textCodeAccessEnforcementFail)
}
