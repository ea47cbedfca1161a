package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BRENHINES/SUPRSS/config"
)

func baseConfig(t *testing.T) config.AppConfig {
	t.Helper()
	cfg := config.AppConfig{}
	cfg.API.Base = "http://localhost:8000"
	cfg.API.Prefix = "/api"
	cfg.State.Backend = config.StateBackendFile
	cfg.State.Dir = t.TempDir()
	cfg.Sanitize()
	return cfg
}

func TestNewApp_FileBackend(t *testing.T) {
	app, err := NewApp(baseConfig(t), nil)
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.Credentials)
	assert.NotNil(t, app.Onboarding)
	assert.NotNil(t, app.Gateway)
	assert.NotNil(t, app.Controller)
	assert.NotNil(t, app.Guard)
	assert.NotNil(t, app.OAuth)
	assert.Empty(t, app.OAuth.Providers())
}

func TestNewApp_ConfiguredProviders(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Auth.Google.AuthURL = "https://accounts.google.com/o/oauth2/auth"
	cfg.Auth.Google.ClientID = "client-1"

	app, err := NewApp(cfg, nil)
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, []string{"google"}, app.OAuth.Providers())
}

func TestNewApp_InvalidGatewayConfig(t *testing.T) {
	cfg := baseConfig(t)
	cfg.API.Base = ""

	_, err := NewApp(cfg, nil)
	assert.Error(t, err)
}
