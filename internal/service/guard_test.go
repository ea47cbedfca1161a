package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BRENHINES/SUPRSS/internal/adapters/credstore"
	"github.com/BRENHINES/SUPRSS/internal/adapters/onboarding"
	domainauth "github.com/BRENHINES/SUPRSS/internal/domain/auth"
	"github.com/BRENHINES/SUPRSS/internal/mocks/authmocks"
)

func newGuardFixture(t *testing.T) (*fixture, *Guard) {
	t.Helper()
	f := newFixture(t)
	return f, NewGuard(f.ctrl)
}

func TestGuard_PendingBeforeStartupResolves(t *testing.T) {
	_, guard := newGuardFixture(t)

	decision := guard.Evaluate("/feeds")

	// No redirect may fire while the startup identity check is in flight.
	assert.Equal(t, DecisionPending, decision.Kind)
	assert.Empty(t, decision.Target)
}

func TestGuard_PublicPathsAlwaysAllowed(t *testing.T) {
	f, guard := newGuardFixture(t)
	f.ctrl.Start(context.Background())

	for _, path := range []string{
		"/",
		"/login",
		"/register",
		"/forgot-password",
		"/reset-password/tok-123",
		"/verify-email",
		"/auth/callback",
		"/about",
	} {
		decision := guard.Evaluate(path)
		assert.Equalf(t, DecisionAllow, decision.Kind, "path %s", path)
	}
}

func TestGuard_UnauthenticatedRedirectsToLogin(t *testing.T) {
	f, guard := newGuardFixture(t)
	f.ctrl.Start(context.Background())

	decision := guard.Evaluate("/feeds/42")

	assert.Equal(t, DecisionRedirect, decision.Kind)
	assert.Equal(t, "/login", decision.Target)
	assert.Equal(t, "/feeds/42", decision.Capture)
}

func TestGuard_AuthorizeRecordsCapturedDestination(t *testing.T) {
	f, guard := newGuardFixture(t)
	f.ctrl.Start(context.Background())
	require.NoError(t, f.ledger.MarkOnboarded("user-1"))

	decision := guard.Authorize("/protected")
	require.Equal(t, DecisionRedirect, decision.Kind)
	require.Equal(t, "/login", decision.Target)

	// A later login returns to the path the guard turned away from.
	target, err := f.ctrl.Login(context.Background(), "alice", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, "/protected", target)
}

func TestGuard_EvaluateDoesNotRecordCapture(t *testing.T) {
	f, guard := newGuardFixture(t)
	f.ctrl.Start(context.Background())
	require.NoError(t, f.ledger.MarkOnboarded("user-1"))

	guard.Evaluate("/protected")

	target, err := f.ctrl.Login(context.Background(), "alice", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, "/", target)
}

func TestGuard_NotOnboardedRedirectsToOnboarding(t *testing.T) {
	f, guard := newGuardFixture(t)
	require.NoError(t, f.creds.SetAccess("at-1"))
	f.ctrl.Start(context.Background())

	decision := guard.Evaluate("/feeds")

	assert.Equal(t, DecisionRedirect, decision.Kind)
	assert.Equal(t, "/onboarding", decision.Target)
	assert.Empty(t, decision.Capture)
}

func TestGuard_OnboardingPathAllowedWhileNotOnboarded(t *testing.T) {
	f, guard := newGuardFixture(t)
	require.NoError(t, f.creds.SetAccess("at-1"))
	f.ctrl.Start(context.Background())

	decision := guard.Evaluate("/onboarding")

	assert.Equal(t, DecisionAllow, decision.Kind)
}

func TestGuard_OnboardedUserPassesProtectedPaths(t *testing.T) {
	f, guard := newGuardFixture(t)
	require.NoError(t, f.creds.SetAccess("at-1"))
	f.ctrl.Start(context.Background())

	require.Equal(t, DecisionRedirect, guard.Evaluate("/feeds").Kind)

	require.NoError(t, f.ctrl.MarkOnboarded())

	assert.Equal(t, DecisionAllow, guard.Evaluate("/feeds").Kind)
	assert.Equal(t, DecisionAllow, guard.Evaluate("/settings").Kind)
}

func TestGuard_OnboardingFlagIsPerIdentity(t *testing.T) {
	state := authmocks.NewMemoryStateStore()
	ledger := onboarding.New(state)
	require.NoError(t, ledger.MarkOnboarded("42"))

	gateway := authmocks.NewMockGateway()
	gateway.FetchIdentityFunc = func(ctx context.Context) (*domainauth.Identity, error) {
		return &domainauth.Identity{ID: "43", Email: "other@example.com", Username: "other"}, nil
	}
	creds := credstore.New(state)
	require.NoError(t, creds.SetAccess("at-43"))

	ctrl := NewController(ControllerOptions{
		Gateway:     gateway,
		Credentials: creds,
		Onboarding:  ledger,
	})
	ctrl.Start(context.Background())
	guard := NewGuard(ctrl)

	// Identity 42 finished onboarding; identity 43 did not.
	decision := guard.Evaluate("/feeds")
	assert.Equal(t, DecisionRedirect, decision.Kind)
	assert.Equal(t, "/onboarding", decision.Target)
}
