package crudguard

import (
	"context"
	"testing"
	"time"

	auth "github.com/goliatone/go-auth"
	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/macromate/go-macromate/access"
	"github.com/macromate/go-macromate/pkg/types"
)

func TestAdapterEnforceRunsGuard(t *testing.T) {
	guard := &stubGuard{}
	adapter := newTestAdapter(t, guard)

	actorID := uuid.New()
	ctx := newStubCrudContext(auth.WithActorContext(context.Background(), &auth.ActorContext{
		ActorID: actorID.String(),
		Role:    "admin",
	}))
	result, err := adapter.Enforce(GuardInput{
		Context:   ctx,
		Operation: crud.OpList,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !guard.called {
		t.Fatal("expected guard to be called")
	}
	if guard.lastAction != types.PolicyActionCatalogRead {
		t.Fatalf("expected action %s, got %s", types.PolicyActionCatalogRead, guard.lastAction)
	}
	if result.TargetID != actorID {
		t.Fatalf("expected target to default to the actor")
	}
}

func TestAdapterEnforceBypassSkipsGuard(t *testing.T) {
	guard := &stubGuard{}
	adapter := newTestAdapter(t, guard)
	actorCtx := &auth.ActorContext{ActorID: uuid.NewString(), Role: "admin"}
	ctx := newStubCrudContext(auth.WithActorContext(context.Background(), actorCtx))

	result, err := adapter.Enforce(GuardInput{
		Context:   ctx,
		Operation: crud.OpRead,
		Bypass: &BypassConfig{
			Enabled: true,
			Reason:  "schema export",
		},
	})
	if err != nil {
		t.Fatalf("expected bypass to succeed, got %v", err)
	}
	if guard.called {
		t.Fatal("expected guard not to be called when bypass active")
	}
	if !result.Bypassed {
		t.Fatal("expected bypass flag in result")
	}
	if result.BypassReason != "schema export" {
		t.Fatalf("expected bypass reason to propagate, got %s", result.BypassReason)
	}
}

func TestAdapterMissingActorReturnsError(t *testing.T) {
	guard := &stubGuard{}
	adapter := newTestAdapter(t, guard)
	_, err := adapter.Enforce(GuardInput{
		Context:   newStubCrudContext(context.Background()),
		Operation: crud.OpRead,
	})
	if err == nil {
		t.Fatal("expected error when actor context missing")
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected go-errors.Error, got %T", err)
	}
	if richErr.TextCode != "ACTOR_CONTEXT_MISSING" {
		t.Fatalf("expected text code ACTOR_CONTEXT_MISSING, got %s", richErr.TextCode)
	}
}

func TestAdapterFallsBackToClaims(t *testing.T) {
	guard := &stubGuard{}
	adapter := newTestAdapter(t, guard)

	actorID := uuid.New()
	claims := &testClaims{
		subject: actorID.String(),
		uid:     actorID.String(),
		role:    "member",
	}
	ctx := auth.WithClaimsContext(context.Background(), claims)

	_, err := adapter.Enforce(GuardInput{
		Context:   newStubCrudContext(ctx),
		Operation: crud.OpRead,
	})
	if err != nil {
		t.Fatalf("expected fallback to claims, got %v", err)
	}
	if !guard.called {
		t.Fatal("expected guard to run")
	}
}

func TestAdapterWrapsUnauthorized(t *testing.T) {
	adapter := newTestAdapter(t, access.NewGuard(nil))
	actorCtx := &auth.ActorContext{ActorID: uuid.NewString(), Role: types.ActorRoleMember}
	ctx := newStubCrudContext(auth.WithActorContext(context.Background(), actorCtx))

	_, err := adapter.Enforce(GuardInput{
		Context:   ctx,
		Operation: crud.OpList,
		TargetID:  uuid.New(),
	})
	if err == nil {
		t.Fatal("expected access enforcement failure")
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected go-errors.Error, got %T", err)
	}
	if richErr.TextCode != textCodeAccessDenied {
		t.Fatalf("expected text code %s, got %s", textCodeAccessDenied, richErr.TextCode)
	}
	if richErr.Code != goerrors.CodeForbidden {
		t.Fatalf("expected forbidden code, got %d", richErr.Code)
	}
}

func TestReadOnlyPolicyRejectsMutations(t *testing.T) {
	guard := &stubGuard{}
	adapter, err := NewAdapter(Config{
		Guard:     guard,
		PolicyMap: ReadOnlyPolicyMap(types.PolicyActionActivityRead),
	})
	if err != nil {
		t.Fatalf("unexpected adapter construction error: %v", err)
	}
	ctx := newStubCrudContext(auth.WithActorContext(context.Background(), &auth.ActorContext{
		ActorID: uuid.NewString(),
		Role:    types.ActorRoleMember,
	}))

	if _, err := adapter.Enforce(GuardInput{Context: ctx, Operation: crud.OpList}); err != nil {
		t.Fatalf("expected list to pass, got %v", err)
	}
	if guard.lastAction != types.PolicyActionActivityRead {
		t.Fatalf("expected action %s, got %s", types.PolicyActionActivityRead, guard.lastAction)
	}

	guard.called = false
	_, err = adapter.Enforce(GuardInput{Context: ctx, Operation: crud.OpCreate})
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) || richErr.TextCode != textCodeMissingPolicy {
		t.Fatalf("expected %s error, got %v", textCodeMissingPolicy, err)
	}
	if guard.called {
		t.Fatal("guard must not run without a mapped action")
	}
}

func TestNewAdapterRequiresPolicy(t *testing.T) {
	if _, err := NewAdapter(Config{Guard: &stubGuard{}}); err == nil {
		t.Fatal("expected error without policy map or fallback action")
	}
	if _, err := NewAdapter(Config{PolicyMap: DefaultPolicyMap(types.PolicyActionCatalogRead, types.PolicyActionCatalogWrite)}); err == nil {
		t.Fatal("expected error without guard")
	}
}

// helpers

type stubGuard struct {
	err        error
	called     bool
	lastAction types.PolicyAction
}

func (s *stubGuard) Enforce(_ context.Context, actor types.ActorRef, action types.PolicyAction, target uuid.UUID) (uuid.UUID, error) {
	s.called = true
	s.lastAction = action
	if s.err != nil {
		return uuid.Nil, s.err
	}
	if target == uuid.Nil {
		return actor.ID, nil
	}
	return target, nil
}

func newTestAdapter(t *testing.T, guard access.Guard) *Adapter {
	t.Helper()
	adapter, err := NewAdapter(Config{
		Guard:     guard,
		Logger:    types.NopLogger{},
		PolicyMap: DefaultPolicyMap(types.PolicyActionCatalogRead, types.PolicyActionCatalogWrite),
	})
	if err != nil {
		t.Fatalf("unexpected adapter construction error: %v", err)
	}
	return adapter
}

type stubCrudContext struct {
	ctx     context.Context
	status  int
	body    []byte
	queries map[string]string
}

func newStubCrudContext(ctx context.Context) *stubCrudContext {
	return &stubCrudContext{
		ctx:     ctx,
		queries: map[string]string{},
	}
}

func (s *stubCrudContext) UserContext() context.Context {
	return s.ctx
}

func (s *stubCrudContext) Params(key string, defaultValue ...string) string {
	return ""
}

func (s *stubCrudContext) BodyParser(out any) error {
	return nil
}

func (s *stubCrudContext) Query(key string, defaultValue ...string) string {
	if v, ok := s.queries[key]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (s *stubCrudContext) QueryValues(key string) []string {
	if v, ok := s.queries[key]; ok {
		return []string{v}
	}
	return nil
}

func (s *stubCrudContext) QueryInt(key string, defaultValue ...int) int {
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

func (s *stubCrudContext) Queries() map[string]string {
	return s.queries
}

func (s *stubCrudContext) Body() []byte {
	return s.body
}

func (s *stubCrudContext) Status(status int) crud.Response {
	s.status = status
	return s
}

func (s *stubCrudContext) JSON(data any, ctype ...string) error {
	return nil
}

func (s *stubCrudContext) SendStatus(status int) error {
	s.status = status
	return nil
}

type testClaims struct {
	subject  string
	uid      string
	role     string
	metadata map[string]any
	res      map[string]string
}

func (t *testClaims) Subject() string                  { return t.subject }
func (t *testClaims) UserID() string                   { return t.uid }
func (t *testClaims) Role() string                     { return t.role }
func (t *testClaims) CanRead(string) bool              { return true }
func (t *testClaims) CanEdit(string) bool              { return true }
func (t *testClaims) CanCreate(string) bool            { return true }
func (t *testClaims) CanDelete(string) bool            { return true }
func (t *testClaims) HasRole(role string) bool         { return t.role == role }
func (t *testClaims) IsAtLeast(string) bool            { return true }
func (t *testClaims) Expires() time.Time               { return time.Time{} }
func (t *testClaims) IssuedAt() time.Time              { return time.Time{} }
func (t *testClaims) ResourceRoles() map[string]string { return t.res }
func (t *testClaims) ClaimsMetadata() map[string]any   { return t.metadata }
