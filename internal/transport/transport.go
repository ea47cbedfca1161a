package transport

// Package transport provides the Authenticated Transport: an
// http.RoundTripper decorator that attaches the current bearer credential
// to every outbound request. It is a pure pass-through otherwise: no
// retries, no token refresh, no redirects, and errors propagate unmodified.

import (
	"net/http"

	"github.com/BRENHINES/SUPRSS/internal/ports"
)

// Bearer decorates a base RoundTripper with Authorization header injection.
// The Credential Store is read on every call, so a token set after the
// client was constructed is picked up immediately.
type Bearer struct {
	creds ports.CredentialReader
	base  http.RoundTripper
}

var _ http.RoundTripper = (*Bearer)(nil)

// NewBearer creates the transport. A nil base falls back to
// http.DefaultTransport.
func NewBearer(creds ports.CredentialReader, base http.RoundTripper) *Bearer {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Bearer{creds: creds, base: base}
}

// RoundTrip implements http.RoundTripper. The incoming request is cloned
// before mutation, per the RoundTripper contract.
func (b *Bearer) RoundTrip(req *http.Request) (*http.Response, error) {
	token := b.creds.Access()
	if token == "" {
		return b.base.RoundTrip(req)
	}

	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", "Bearer "+token)
	return b.base.RoundTrip(authed)
}

// Client returns an *http.Client using the bearer transport.
func (b *Bearer) Client() *http.Client {
	return &http.Client{Transport: b}
}
