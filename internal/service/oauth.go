package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// OAuthProvider describes one delegated identity source the client can
// hand the browser off to. The provider name is the opaque string the
// backend's exchange endpoint expects.
type OAuthProvider struct {
	Name        string
	AuthURL     string
	ClientID    string
	RedirectURL string
	Scope       string
}

// OAuthURLBuilder builds provider authorization URLs for the browser
// hand-off step of a delegated login. The code/token exchange itself is
// owned by the backend; this builder only starts the flow.
type OAuthURLBuilder struct {
	configs map[string]*oauth2.Config
}

// NewOAuthURLBuilder creates a builder from the configured providers.
func NewOAuthURLBuilder(providers []OAuthProvider) (*OAuthURLBuilder, error) {
	configs := make(map[string]*oauth2.Config, len(providers))
	for _, p := range providers {
		if p.Name == "" {
			return nil, fmt.Errorf("oauth provider name is required")
		}
		if p.AuthURL == "" {
			return nil, fmt.Errorf("oauth provider %q: auth URL is required", p.Name)
		}
		configs[p.Name] = &oauth2.Config{
			ClientID:    p.ClientID,
			RedirectURL: p.RedirectURL,
			Scopes:      strings.Fields(p.Scope),
			Endpoint:    oauth2.Endpoint{AuthURL: p.AuthURL},
		}
	}
	return &OAuthURLBuilder{configs: configs}, nil
}

// Providers returns the configured provider names, sorted.
func (b *OAuthURLBuilder) Providers() []string {
	names := make([]string, 0, len(b.configs))
	for name := range b.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AuthorizeURL returns the provider authorization URL and the opaque
// state parameter bound to this attempt. The caller hands the URL to the
// browser and later passes the state back through CompleteOAuth.
func (b *OAuthURLBuilder) AuthorizeURL(provider string) (authURL, state string, err error) {
	cfg, ok := b.configs[provider]
	if !ok {
		return "", "", fmt.Errorf("unknown oauth provider %q", provider)
	}

	state = uuid.NewString()
	return cfg.AuthCodeURL(state), state, nil
}
