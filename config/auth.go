package config

// OAuthProviderConfig describes one delegated identity provider the
// client can hand the browser off to. A provider with an empty AuthURL
// is treated as unconfigured and skipped.
type OAuthProviderConfig struct {
	AuthURL     string `env:"AUTH_URL"`
	ClientID    string `env:"CLIENT_ID"`
	RedirectURL string `env:"REDIRECT_URL" envDefault:"http://localhost:3000/auth/callback"`
	Scope       string `env:"SCOPE"        envDefault:"openid profile email"`
}

// Enabled reports whether the provider is configured.
func (c OAuthProviderConfig) Enabled() bool {
	return c.AuthURL != ""
}

// AuthConfig groups delegated login configuration per provider.
type AuthConfig struct {
	Google OAuthProviderConfig `envPrefix:"SUPRSS_OAUTH_GOOGLE_"`
	GitHub OAuthProviderConfig `envPrefix:"SUPRSS_OAUTH_GITHUB_"`
}
