package service

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOAuthURLBuilder_AuthorizeURL(t *testing.T) {
	builder, err := NewOAuthURLBuilder([]OAuthProvider{
		{
			Name:        "google",
			AuthURL:     "https://accounts.google.com/o/oauth2/auth",
			ClientID:    "client-1",
			RedirectURL: "https://app.example.com/auth/callback",
			Scope:       "openid email",
		},
	})
	require.NoError(t, err)

	authURL, state, err := builder.AuthorizeURL("google")
	require.NoError(t, err)
	require.NotEmpty(t, state)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "client-1", q.Get("client_id"))
	assert.Equal(t, "https://app.example.com/auth/callback", q.Get("redirect_uri"))
	assert.Equal(t, state, q.Get("state"))
	assert.Contains(t, q.Get("scope"), "email")
}

func TestOAuthURLBuilder_StateIsUniquePerAttempt(t *testing.T) {
	builder, err := NewOAuthURLBuilder([]OAuthProvider{
		{Name: "github", AuthURL: "https://github.com/login/oauth/authorize"},
	})
	require.NoError(t, err)

	_, first, err := builder.AuthorizeURL("github")
	require.NoError(t, err)
	_, second, err := builder.AuthorizeURL("github")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestOAuthURLBuilder_UnknownProvider(t *testing.T) {
	builder, err := NewOAuthURLBuilder(nil)
	require.NoError(t, err)

	_, _, err = builder.AuthorizeURL("google")
	assert.Error(t, err)
}

func TestOAuthURLBuilder_ProvidersSorted(t *testing.T) {
	builder, err := NewOAuthURLBuilder([]OAuthProvider{
		{Name: "github", AuthURL: "https://github.com/login/oauth/authorize"},
		{Name: "google", AuthURL: "https://accounts.google.com/o/oauth2/auth"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"github", "google"}, builder.Providers())
}

func TestOAuthURLBuilder_RejectsIncompleteProvider(t *testing.T) {
	_, err := NewOAuthURLBuilder([]OAuthProvider{{Name: "google"}})
	assert.Error(t, err)

	_, err = NewOAuthURLBuilder([]OAuthProvider{{AuthURL: "https://x.example.com/auth"}})
	assert.Error(t, err)
}
