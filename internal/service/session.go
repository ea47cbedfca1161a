package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	domainauth "github.com/BRENHINES/SUPRSS/internal/domain/auth"
	"github.com/BRENHINES/SUPRSS/internal/ports"
)

// ErrStaleResponse reports that an auth response arrived after a newer
// session transition and was discarded. Callers may safely ignore it.
var ErrStaleResponse = errors.New("stale auth response discarded")

// Paths names the navigation targets the session core decides between.
type Paths struct {
	Login      string
	Onboarding string
	Landing    string
	// Public lists path prefixes reachable without authentication, in
	// addition to Login itself.
	Public []string
}

// DefaultPaths returns the SUPRSS client route scheme.
func DefaultPaths() Paths {
	return Paths{
		Login:      "/login",
		Onboarding: "/onboarding",
		Landing:    "/",
		Public: []string{
			"/login",
			"/register",
			"/forgot-password",
			"/reset-password",
			"/verify-email",
			"/auth/callback",
			"/about",
			"/features",
			"/help",
			"/privacy",
			"/terms",
			"/contact",
		},
	}
}

// ControllerOptions groups dependencies for NewController.
type ControllerOptions struct {
	Gateway     ports.AuthGateway
	Credentials ports.CredentialStore
	Onboarding  ports.OnboardingLedger
	Paths       Paths
	Logger      *slog.Logger
}

// Controller is the Session Controller: it owns the current identity and
// session state, orchestrates login/logout/registration, and decides
// redirect targets after each transition. It is the only component that
// mutates the Credential Store.
type Controller struct {
	gateway ports.AuthGateway
	creds   ports.CredentialStore
	ledger  ports.OnboardingLedger
	paths   Paths
	logger  *slog.Logger

	mu       sync.RWMutex
	state    domainauth.State
	identity *domainauth.Identity
	captured string
	gen      uint64

	hydrate singleflight.Group
}

// NewController constructs a controller in the initializing state. Call
// Start to resolve it.
func NewController(opts ControllerOptions) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	paths := opts.Paths
	if paths.Login == "" {
		paths = DefaultPaths()
	}
	return &Controller{
		gateway: opts.Gateway,
		creds:   opts.Credentials,
		ledger:  opts.Onboarding,
		paths:   paths,
		logger:  logger,
		state:   domainauth.StateInitializing,
	}
}

// State returns the current session state.
func (c *Controller) State() domainauth.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Identity returns a copy of the current identity, or nil when not
// authenticated. The credential invariant wins over any cached identity:
// with no access token the identity reads as absent.
func (c *Controller) Identity() *domainauth.Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.identity == nil || c.creds.Access() == "" {
		return nil
	}
	ident := *c.identity
	return &ident
}

// IsOnboarded reports whether the current identity completed onboarding.
// False while unauthenticated.
func (c *Controller) IsOnboarded() bool {
	ident := c.Identity()
	if ident == nil {
		return false
	}
	return c.ledger.IsOnboarded(string(ident.ID))
}

// MarkOnboarded flips the onboarding flag for the current identity.
func (c *Controller) MarkOnboarded() error {
	ident := c.Identity()
	if ident == nil {
		return errors.New("no authenticated identity")
	}
	return c.ledger.MarkOnboarded(string(ident.ID))
}

// Paths returns the navigation targets the controller decides between.
func (c *Controller) Paths() Paths { return c.paths }

// Start resolves the initializing state. With a stored access token it
// re-hydrates the identity from the backend; any failure clears the stale
// credentials and lands unauthenticated. Without a token it resolves
// unauthenticated immediately. Concurrent calls share one identity fetch.
func (c *Controller) Start(ctx context.Context) domainauth.State {
	if c.creds.Access() == "" {
		c.apply(domainauth.StateUnauthenticated, nil)
		return c.State()
	}

	gen := c.snapshot()
	v, err, _ := c.hydrate.Do("identity", func() (any, error) {
		return c.gateway.FetchIdentity(ctx)
	})
	if err != nil {
		// Startup check failures stay silent; the redirect to login is
		// the user-visible outcome.
		c.logger.DebugContext(ctx, "startup identity check failed", "error", err)
		c.clearCredentials(ctx)
		c.transition(gen, domainauth.StateUnauthenticated, nil)
		return c.State()
	}

	identity, ok := v.(*domainauth.Identity)
	if !ok || identity == nil {
		c.clearCredentials(ctx)
		c.transition(gen, domainauth.StateUnauthenticated, nil)
		return c.State()
	}
	c.transition(gen, domainauth.StateAuthenticated, identity)
	return c.State()
}

// Login authenticates with an identifier and password. On success it
// persists the grant tokens, resolves the canonical identity through the
// gateway (never trusting an inline identity in the grant), transitions to
// authenticated, and returns the post-auth navigation target. On failure
// the gateway error is returned verbatim for inline display.
func (c *Controller) Login(ctx context.Context, identifier, password string) (string, error) {
	gen := c.snapshot()

	grant, err := c.gateway.Login(ctx, identifier, password)
	if err != nil {
		return "", err
	}
	return c.completeGrant(ctx, gen, grant)
}

// Register creates an account and performs the same persist + identity
// resolution + redirect sequence as Login.
func (c *Controller) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	gen := c.snapshot()

	grant, err := c.gateway.Register(ctx, in)
	if err != nil {
		return "", err
	}
	return c.completeGrant(ctx, gen, grant)
}

// OAuthCallback carries the parameters of the delegated-login callback.
// Redirect-based exchanges deliver tokens directly in query parameters;
// code-based exchanges deliver a code plus optional state.
type OAuthCallback struct {
	Provider     string
	AccessToken  string
	RefreshToken string
	Code         string
	State        string
	// Next is the optional in-app destination carried through the
	// delegated flow.
	Next string
}

// CompleteOAuth finishes a delegated login. On failure the error is
// returned for display; the caller offers the path back to manual login.
func (c *Controller) CompleteOAuth(ctx context.Context, cb OAuthCallback) (string, error) {
	gen := c.snapshot()

	var grant domainauth.TokenGrant
	switch {
	case cb.AccessToken != "":
		grant = domainauth.TokenGrant{
			TokenType:    "bearer",
			AccessToken:  cb.AccessToken,
			RefreshToken: cb.RefreshToken,
		}
	case cb.Code != "":
		var err error
		grant, err = c.gateway.ExchangeOAuthCode(ctx, cb.Provider, cb.Code, cb.State)
		if err != nil {
			return "", err
		}
	default:
		return "", errors.New("callback carries neither tokens nor an authorization code")
	}

	if cb.Next != "" && cb.Next != c.paths.Login {
		c.CaptureDestination(cb.Next)
	}
	return c.completeGrant(ctx, gen, grant)
}

// Logout tears the session down. The remote call is best-effort: its
// outcome never blocks clearing local state. Returns the login path as
// the navigation target.
func (c *Controller) Logout(ctx context.Context) string {
	if err := c.gateway.Logout(ctx); err != nil {
		c.logger.DebugContext(ctx, "remote logout failed, clearing local session anyway", "error", err)
	}
	c.clearCredentials(ctx)
	c.apply(domainauth.StateUnauthenticated, nil)
	return c.paths.Login
}

// CaptureDestination records the originally requested path so a later
// successful login returns there. The login path itself is never captured
// to avoid redirect loops.
func (c *Controller) CaptureDestination(path string) {
	if path == "" || path == c.paths.Login {
		return
	}
	c.mu.Lock()
	c.captured = path
	c.mu.Unlock()
}

// completeGrant persists the grant, resolves the canonical identity, and
// transitions to authenticated. A stale generation means a newer
// transition won the race; the grant is dropped without touching state.
func (c *Controller) completeGrant(ctx context.Context, gen uint64, grant domainauth.TokenGrant) (string, error) {
	if c.stale(gen) {
		return "", ErrStaleResponse
	}

	if err := c.creds.SetAccess(grant.AccessToken); err != nil {
		c.logger.WarnContext(ctx, "persist access token failed", "error", err)
	}
	if err := c.creds.SetRefresh(grant.RefreshToken); err != nil {
		c.logger.WarnContext(ctx, "persist refresh token failed", "error", err)
	}

	identity, err := c.gateway.FetchIdentity(ctx)
	if err != nil {
		// A grant we cannot resolve an identity for is unusable.
		c.clearCredentials(ctx)
		c.transition(gen, domainauth.StateUnauthenticated, nil)
		return "", err
	}

	if !c.transition(gen, domainauth.StateAuthenticated, identity) {
		return "", ErrStaleResponse
	}
	c.logger.InfoContext(ctx, "session authenticated", "identity_id", string(identity.ID))
	return c.postAuthTarget(identity), nil
}

// postAuthTarget applies the post-authentication redirect policy.
func (c *Controller) postAuthTarget(identity *domainauth.Identity) string {
	if !c.ledger.IsOnboarded(string(identity.ID)) {
		return c.paths.Onboarding
	}

	c.mu.Lock()
	captured := c.captured
	c.captured = ""
	c.mu.Unlock()

	if captured != "" && captured != c.paths.Login {
		return captured
	}
	return c.paths.Landing
}

func (c *Controller) clearCredentials(ctx context.Context) {
	if err := c.creds.Clear(); err != nil {
		c.logger.WarnContext(ctx, "clear credentials failed", "error", err)
	}
}

// snapshot returns the current generation for the stale-response guard.
func (c *Controller) snapshot() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

func (c *Controller) stale(gen uint64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen != gen
}

// transition applies a state change if gen is still current, bumping the
// generation so in-flight responses from before the change are dropped.
func (c *Controller) transition(gen uint64, state domainauth.State, identity *domainauth.Identity) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return false
	}
	c.applyLocked(state, identity)
	return true
}

// apply forces a state change regardless of in-flight responses. Used by
// unconditional transitions such as logout.
func (c *Controller) apply(state domainauth.State, identity *domainauth.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyLocked(state, identity)
}

func (c *Controller) applyLocked(state domainauth.State, identity *domainauth.Identity) {
	c.gen++
	c.state = state
	c.identity = identity
}
