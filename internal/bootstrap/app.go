package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/BRENHINES/SUPRSS/config"
	"github.com/BRENHINES/SUPRSS/internal/adapters/credstore"
	"github.com/BRENHINES/SUPRSS/internal/adapters/filestate"
	"github.com/BRENHINES/SUPRSS/internal/adapters/onboarding"
	"github.com/BRENHINES/SUPRSS/internal/adapters/redisstate"
	"github.com/BRENHINES/SUPRSS/internal/gateway"
	"github.com/BRENHINES/SUPRSS/internal/ports"
	"github.com/BRENHINES/SUPRSS/internal/service"
	"github.com/BRENHINES/SUPRSS/internal/transport"
)

// App bundles the wired session core components.
type App struct {
	Config      config.AppConfig
	Logger      *slog.Logger
	Credentials *credstore.Store
	Onboarding  *onboarding.Ledger
	Gateway     *gateway.Client
	Controller  *service.Controller
	Guard       *service.Guard
	OAuth       *service.OAuthURLBuilder

	redisClient *redis.Client
}

// NewApp wires the session core from configuration: state store,
// credential store, onboarding ledger, authenticated HTTP client, auth
// gateway, session controller and route guard.
func NewApp(cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	app := &App{Config: cfg, Logger: logger}

	store, err := app.openStateStore(cfg)
	if err != nil {
		return nil, err
	}

	app.Credentials = credstore.New(store)
	app.Onboarding = onboarding.New(store)

	httpClient := &http.Client{
		Transport: transport.NewBearer(app.Credentials, http.DefaultTransport),
	}

	app.Gateway, err = gateway.New(gateway.Options{
		BaseURL:    cfg.API.Base,
		Prefix:     cfg.API.Prefix,
		HTTPClient: httpClient,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create auth gateway: %w", err)
	}

	app.Controller = service.NewController(service.ControllerOptions{
		Gateway:     app.Gateway,
		Credentials: app.Credentials,
		Onboarding:  app.Onboarding,
		Paths:       service.DefaultPaths(),
		Logger:      logger,
	})
	app.Guard = service.NewGuard(app.Controller)

	app.OAuth, err = service.NewOAuthURLBuilder(oauthProviders(cfg.Auth))
	if err != nil {
		return nil, fmt.Errorf("configure oauth providers: %w", err)
	}

	return app, nil
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a.redisClient != nil {
		return a.redisClient.Close()
	}
	return nil
}

func (a *App) openStateStore(cfg config.AppConfig) (ports.StateStore, error) {
	switch cfg.State.Backend {
	case config.StateBackendRedis:
		a.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redisstate.NewStoreWithPrefix(a.redisClient, a.Logger, cfg.Redis.KeyPrefix), nil
	default:
		dir := cfg.State.Dir
		if dir == "" {
			base, err := os.UserConfigDir()
			if err != nil {
				return nil, fmt.Errorf("resolve state dir: %w", err)
			}
			dir = filepath.Join(base, "suprss")
		}
		store, err := filestate.Open(dir)
		if err != nil {
			return nil, fmt.Errorf("open state file: %w", err)
		}
		return store, nil
	}
}

// oauthProviders collects the configured delegated login providers.
func oauthProviders(cfg config.AuthConfig) []service.OAuthProvider {
	providers := make([]service.OAuthProvider, 0, 2)
	if cfg.Google.Enabled() {
		providers = append(providers, service.OAuthProvider{
			Name:        "google",
			AuthURL:     cfg.Google.AuthURL,
			ClientID:    cfg.Google.ClientID,
			RedirectURL: cfg.Google.RedirectURL,
			Scope:       cfg.Google.Scope,
		})
	}
	if cfg.GitHub.Enabled() {
		providers = append(providers, service.OAuthProvider{
			Name:        "github",
			AuthURL:     cfg.GitHub.AuthURL,
			ClientID:    cfg.GitHub.ClientID,
			RedirectURL: cfg.GitHub.RedirectURL,
			Scope:       cfg.GitHub.Scope,
		})
	}
	return providers
}
