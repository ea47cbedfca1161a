package ports

// Package ports defines interfaces (hexagonal ports) for the session core.
// Implementations live in internal/adapters and internal/gateway;
// orchestration in internal/service.

import (
	"context"

	domainauth "github.com/BRENHINES/SUPRSS/internal/domain/auth"
)

// StateStore is durable client-local key/value storage. It backs the
// Credential Store's persistence mirror and the Onboarding Ledger.
// Get returns ("", false) when the key is absent.
type StateStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// CredentialReader is the read-only view of the Credential Store handed to
// the Authenticated Transport. Only the Session Controller mutates
// credentials; everything else reads.
type CredentialReader interface {
	Access() string
	Refresh() string
}

// CredentialStore holds the current bearer credential pair and mirrors
// every write into durable local storage so a restart can re-hydrate
// before the first request.
type CredentialStore interface {
	CredentialReader

	SetAccess(token string) error
	SetRefresh(token string) error
	// Clear removes both tokens from memory and durable storage.
	Clear() error
}

// OnboardingLedger records per-identity completion of the one-time setup
// flow. Flag absence reads as "not onboarded"; flags never expire.
type OnboardingLedger interface {
	IsOnboarded(identityID string) bool
	MarkOnboarded(identityID string) error
}

// RegisterInput groups parameters for AuthGateway.Register.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName string
}

// AuthGateway is the set of remote auth operations exposed by the backend.
// Operations translate recognized backend error payloads into the
// internal/errors taxonomy and otherwise surface a generic message.
type AuthGateway interface {
	Login(ctx context.Context, identifier, password string) (domainauth.TokenGrant, error)
	Register(ctx context.Context, in RegisterInput) (domainauth.TokenGrant, error)
	Logout(ctx context.Context) error
	FetchIdentity(ctx context.Context) (*domainauth.Identity, error)
	ExchangeOAuthCode(ctx context.Context, provider, code, state string) (domainauth.TokenGrant, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	VerifyEmail(ctx context.Context, token string) error
}
