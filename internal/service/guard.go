package service

import (
	"strings"

	domainauth "github.com/BRENHINES/SUPRSS/internal/domain/auth"
)

// DecisionKind classifies a Route Guard verdict.
type DecisionKind string

const (
	// DecisionAllow lets the navigation proceed.
	DecisionAllow DecisionKind = "allow"
	// DecisionPending means the startup identity check has not resolved;
	// render a neutral loading state and do not redirect yet.
	DecisionPending DecisionKind = "pending"
	// DecisionRedirect sends the visitor elsewhere.
	DecisionRedirect DecisionKind = "redirect"
)

// Decision is a Route Guard verdict for one navigation.
type Decision struct {
	Kind DecisionKind
	// Target is the redirect destination when Kind is DecisionRedirect.
	Target string
	// Capture is the originally requested path to return to after login;
	// set only on redirects to the login screen.
	Capture string
}

// SessionReader is the read-only session view the guard consults.
type SessionReader interface {
	State() domainauth.State
	IsOnboarded() bool
	CaptureDestination(path string)
	Paths() Paths
}

// Guard gates every navigation against the current session state.
type Guard struct {
	session SessionReader
}

// NewGuard creates a Route Guard over the session controller.
func NewGuard(session SessionReader) *Guard {
	return &Guard{session: session}
}

// Evaluate is the pure decision function: given the target path and the
// current session state it allows, defers, or redirects. It records
// nothing; see Authorize for the stateful variant.
func (g *Guard) Evaluate(path string) Decision {
	paths := g.session.Paths()

	if isPublic(paths, path) {
		return Decision{Kind: DecisionAllow}
	}

	switch g.session.State() {
	case domainauth.StateInitializing:
		// Redirecting before the startup check resolves would thrash the UI.
		return Decision{Kind: DecisionPending}
	case domainauth.StateUnauthenticated:
		return Decision{
			Kind:    DecisionRedirect,
			Target:  paths.Login,
			Capture: path,
		}
	case domainauth.StateAuthenticated:
		if !g.session.IsOnboarded() && path != paths.Onboarding {
			return Decision{Kind: DecisionRedirect, Target: paths.Onboarding}
		}
		return Decision{Kind: DecisionAllow}
	default:
		return Decision{Kind: DecisionPending}
	}
}

// Authorize evaluates the navigation and, on a redirect to login, records
// the requested path with the Session Controller so a later successful
// login returns there.
func (g *Guard) Authorize(path string) Decision {
	decision := g.Evaluate(path)
	if decision.Kind == DecisionRedirect && decision.Capture != "" {
		g.session.CaptureDestination(decision.Capture)
	}
	return decision
}

// isPublic reports whether path is reachable without authentication.
// The landing path matches exactly; other public entries match by prefix
// so token-bearing variants like /reset-password/<token> stay public.
func isPublic(paths Paths, path string) bool {
	if path == paths.Landing {
		return true
	}
	for _, p := range paths.Public {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
