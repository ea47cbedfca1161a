package authmocks

// Package authmocks contains simple hand-written test doubles for the
// session core ports. These are lightweight and suitable for unit tests
// without codegen.

import (
	"context"
	"sync"

	domainauth "github.com/BRENHINES/SUPRSS/internal/domain/auth"
	apperrors "github.com/BRENHINES/SUPRSS/internal/errors"
	"github.com/BRENHINES/SUPRSS/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.StateStore  = (*MemoryStateStore)(nil)
	_ ports.AuthGateway = (*MockGateway)(nil)
)

// MemoryStateStore is an in-memory StateStore for tests. An optional
// FailWrites flag makes every mutation fail, to simulate a broken disk.
type MemoryStateStore struct {
	mu         sync.RWMutex
	values     map[string]string
	FailWrites bool
}

// NewMemoryStateStore creates an empty in-memory state store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{values: make(map[string]string)}
}

func (m *MemoryStateStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStateStore) Set(key, value string) error {
	if m.FailWrites {
		return apperrors.Internal("state store write failed")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStateStore) Delete(key string) error {
	if m.FailWrites {
		return apperrors.Internal("state store write failed")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryStateStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// MockGateway simulates the Auth Gateway with per-operation override funcs
// and deterministic defaults. Call counters allow asserting how often each
// remote operation was invoked.
type MockGateway struct {
	LoginFunc         func(ctx context.Context, identifier, password string) (domainauth.TokenGrant, error)
	RegisterFunc      func(ctx context.Context, in ports.RegisterInput) (domainauth.TokenGrant, error)
	LogoutFunc        func(ctx context.Context) error
	FetchIdentityFunc func(ctx context.Context) (*domainauth.Identity, error)
	ExchangeFunc      func(ctx context.Context, provider, code, state string) (domainauth.TokenGrant, error)
	ForgotFunc        func(ctx context.Context, email string) error
	ResetFunc         func(ctx context.Context, token, newPassword string) error
	VerifyFunc        func(ctx context.Context, token string) error

	mu            sync.Mutex
	LoginCalls    int
	LogoutCalls   int
	IdentityCalls int
	ExchangeCalls int
}

// NewMockGateway creates a gateway double whose defaults succeed with a
// deterministic grant and identity.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// DefaultGrant is the grant returned by un-overridden operations.
func DefaultGrant() domainauth.TokenGrant {
	return domainauth.TokenGrant{
		TokenType:    "bearer",
		AccessToken:  "mock-access",
		RefreshToken: "mock-refresh",
	}
}

// DefaultIdentity is the identity returned by un-overridden FetchIdentity.
func DefaultIdentity() *domainauth.Identity {
	return &domainauth.Identity{
		ID:       "user-1",
		Email:    "user@example.com",
		Username: "user",
	}
}

func (m *MockGateway) Login(ctx context.Context, identifier, password string) (domainauth.TokenGrant, error) {
	m.mu.Lock()
	m.LoginCalls++
	m.mu.Unlock()
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, identifier, password)
	}
	return DefaultGrant(), nil
}

func (m *MockGateway) Register(ctx context.Context, in ports.RegisterInput) (domainauth.TokenGrant, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return DefaultGrant(), nil
}

func (m *MockGateway) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.LogoutCalls++
	m.mu.Unlock()
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *MockGateway) FetchIdentity(ctx context.Context) (*domainauth.Identity, error) {
	m.mu.Lock()
	m.IdentityCalls++
	m.mu.Unlock()
	if m.FetchIdentityFunc != nil {
		return m.FetchIdentityFunc(ctx)
	}
	return DefaultIdentity(), nil
}

func (m *MockGateway) ExchangeOAuthCode(ctx context.Context, provider, code, state string) (domainauth.TokenGrant, error) {
	m.mu.Lock()
	m.ExchangeCalls++
	m.mu.Unlock()
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, provider, code, state)
	}
	return DefaultGrant(), nil
}

func (m *MockGateway) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotFunc != nil {
		return m.ForgotFunc(ctx, email)
	}
	return nil
}

func (m *MockGateway) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, token, newPassword)
	}
	return nil
}

func (m *MockGateway) VerifyEmail(ctx context.Context, token string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return nil
}
