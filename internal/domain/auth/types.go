package auth

// Package auth contains domain-level types for the client session core.
// It is pure and free of transport/adapter concerns.

import (
	"encoding/json"
	"fmt"
)

// State is the derived session state exposed to the rest of the client.
// It starts at StateInitializing while the startup identity check is in
// flight and resolves to exactly one of the other two values.
type State string

const (
	StateInitializing    State = "initializing"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Credentials is the bearer credential pair held by the Credential Store.
// Both values are opaque blobs; the backend owns their well-formedness.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Empty reports whether no access token is held. An empty access token
// means unauthenticated behavior regardless of any cached identity.
func (c Credentials) Empty() bool { return c.AccessToken == "" }

// ID is an identity identifier. Backend variants serialize it as either a
// JSON string or a bare number; both decode to the string form.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identity id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Identity is the authenticated user's profile record as known to the
// client. Set only from a successful login/register/identity fetch.
type Identity struct {
	ID        ID     `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// TokenGrant is the raw token response of login, register, and OAuth
// exchange. The inline Identity is informational only; the controller
// always resolves the canonical identity through a separate fetch.
type TokenGrant struct {
	TokenType       string    `json:"token_type"`
	AccessToken     string    `json:"access_token"`
	RefreshToken    string    `json:"refresh_token,omitempty"`
	AccessExpiresIn int64     `json:"access_expires_in,omitempty"`
	Identity        *Identity `json:"user,omitempty"`
}

// Credentials converts the grant into the credential pair to persist.
func (g TokenGrant) Credentials() Credentials {
	return Credentials{
		AccessToken:  g.AccessToken,
		RefreshToken: g.RefreshToken,
	}
}
