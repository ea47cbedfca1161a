package gateway

// Package gateway implements the Auth Gateway: the set of remote auth
// operations exposed by the SUPRSS backend, built on the Authenticated
// Transport. Each operation translates recognized backend error payload
// shapes into the internal/errors taxonomy and otherwise surfaces a
// generic message. The gateway never retries and never touches the
// Credential Store; persisting tokens is the Session Controller's job.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/BRENHINES/SUPRSS/internal/domain/auth"
	apperrors "github.com/BRENHINES/SUPRSS/internal/errors"
	"github.com/BRENHINES/SUPRSS/internal/ports"
)

// Backend paths, relative to the configured API prefix.
const (
	pathLogin    = "/auth/login"
	pathRegister = "/users"
	pathLogout   = "/auth/logout"
	pathMe       = "/auth/me"
	pathForgot   = "/auth/forgot-password"
	pathReset    = "/auth/reset-password"
	pathVerify   = "/auth/verify-email"
	pathOAuth    = "/auth/oauth/%s/callback"
)

const defaultTimeout = 30 * time.Second

// Options groups dependencies for New.
type Options struct {
	// BaseURL is the API origin, e.g. "https://suprss.example.com".
	BaseURL string
	// Prefix is the API path prefix, e.g. "/api".
	Prefix string
	// HTTPClient should carry the Authenticated Transport. Defaults to a
	// plain client with a 30s timeout.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client is the REST Auth Gateway.
type Client struct {
	base   string
	http   *http.Client
	logger *slog.Logger
}

var _ ports.AuthGateway = (*Client)(nil)

// New creates an Auth Gateway client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		base:   strings.TrimSuffix(opts.BaseURL, "/") + strings.TrimSuffix(opts.Prefix, "/"),
		http:   httpClient,
		logger: logger,
	}, nil
}

// Login exchanges an identifier (email or username) and password for a
// token grant. The backend decides which identifier form is valid.
func (c *Client) Login(ctx context.Context, identifier, password string) (domainauth.TokenGrant, error) {
	if err := validateLogin(identifier, password); err != nil {
		return domainauth.TokenGrant{}, err
	}

	body := map[string]string{
		"username_or_email": identifier,
		"password":          password,
	}
	var grant domainauth.TokenGrant
	resp, err := c.do(ctx, http.MethodPost, pathLogin, body)
	if err != nil {
		return domainauth.TokenGrant{}, err
	}
	if !is2xx(resp.status) {
		return domainauth.TokenGrant{}, apperrors.InvalidCredentials(resp.errorMessage("invalid credentials"))
	}
	if err := json.Unmarshal(resp.body, &grant); err != nil {
		return domainauth.TokenGrant{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode login response")
	}
	return grant, nil
}

// Register creates a new account and returns the same grant shape as Login.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (domainauth.TokenGrant, error) {
	if err := validateRegister(in); err != nil {
		return domainauth.TokenGrant{}, err
	}

	body := map[string]string{
		"email":    in.Email,
		"username": in.Username,
		"password": in.Password,
	}
	if in.FullName != "" {
		body["full_name"] = in.FullName
	}

	resp, err := c.do(ctx, http.MethodPost, pathRegister, body)
	if err != nil {
		return domainauth.TokenGrant{}, err
	}
	if !is2xx(resp.status) {
		if fields := resp.fieldErrors(); len(fields) > 0 {
			return domainauth.TokenGrant{}, apperrors.ValidationFields(resp.errorMessage("invalid registration data"), fields)
		}
		return domainauth.TokenGrant{}, apperrors.Registration(resp.errorMessage("registration failed"))
	}

	var grant domainauth.TokenGrant
	if err := json.Unmarshal(resp.body, &grant); err != nil {
		return domainauth.TokenGrant{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode register response")
	}
	return grant, nil
}

// Logout notifies the backend. Callers treat the outcome as best-effort;
// local teardown must proceed regardless.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, pathLogout, map[string]string{})
	if err != nil {
		return err
	}
	if !is2xx(resp.status) {
		return apperrors.Internalf("logout rejected with status %d", resp.status)
	}
	return nil
}

// FetchIdentity returns the current identity. The backend sometimes nests
// the identity under a "user" wrapper and sometimes returns it flat; both
// shapes normalize into one Identity.
func (c *Client) FetchIdentity(ctx context.Context) (*domainauth.Identity, error) {
	resp, err := c.do(ctx, http.MethodGet, pathMe, nil)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusUnauthorized {
		return nil, apperrors.InvalidCredentials(resp.errorMessage("not authenticated"))
	}
	if !is2xx(resp.status) {
		return nil, apperrors.Internalf("identity fetch failed with status %d", resp.status)
	}

	identity := normalizeIdentity(resp.body)
	if identity == nil {
		return nil, apperrors.NotFound("no identity in response")
	}
	return identity, nil
}

// ExchangeOAuthCode completes a delegated login by exchanging the
// provider's code (and optional state) at the backend callback endpoint.
func (c *Client) ExchangeOAuthCode(ctx context.Context, provider, code, state string) (domainauth.TokenGrant, error) {
	if provider == "" {
		return domainauth.TokenGrant{}, apperrors.Validation("provider is required")
	}
	if code == "" {
		return domainauth.TokenGrant{}, apperrors.Validation("authorization code is required")
	}

	body := map[string]string{"code": code}
	if state != "" {
		body["state"] = state
	}

	path := fmt.Sprintf(pathOAuth, url.PathEscape(provider))
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return domainauth.TokenGrant{}, err
	}
	if !is2xx(resp.status) {
		return domainauth.TokenGrant{}, apperrors.OAuthExchange(resp.errorMessage("delegated login failed"))
	}

	var grant domainauth.TokenGrant
	if err := json.Unmarshal(resp.body, &grant); err != nil {
		return domainauth.TokenGrant{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode exchange response")
	}
	return grant, nil
}

// ForgotPassword requests a reset email. The backend answers success
// whether or not the account exists, to prevent enumeration; the client
// mirrors that contract and treats any backend verdict as success. Only
// transport failures and server faults surface.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, pathForgot, map[string]string{"email": email})
	if err != nil {
		return err
	}
	if resp.status >= http.StatusInternalServerError {
		return apperrors.Internalf("forgot password failed with status %d", resp.status)
	}
	return nil
}

// ResetPassword sets a new password using a one-time reset token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return apperrors.ValidationField("token", "reset token is required")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	body := map[string]string{"token": token, "password": newPassword}
	resp, err := c.do(ctx, http.MethodPost, pathReset, body)
	if err != nil {
		return err
	}
	if !is2xx(resp.status) {
		return apperrors.InvalidToken(resp.errorMessage("invalid or expired token"))
	}
	return nil
}

// VerifyEmail confirms an address using a one-time verification token.
// Some backend variants expose verification as an idempotent read with the
// token in the query string; a 404 on the POST path triggers that fallback.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ValidationField("token", "verification token is required")
	}

	resp, err := c.do(ctx, http.MethodPost, pathVerify, map[string]string{"token": token})
	if err != nil {
		return err
	}
	if resp.status == http.StatusNotFound {
		resp, err = c.do(ctx, http.MethodGet, pathVerify+"?token="+url.QueryEscape(token), nil)
		if err != nil {
			return err
		}
	}
	if !is2xx(resp.status) {
		return apperrors.InvalidToken(resp.errorMessage("invalid or expired token"))
	}
	return nil
}

// response is a fully read backend reply.
type response struct {
	status int
	body   []byte
}

// do performs one request. Transport-level failures come back as Network
// errors; HTTP status handling is left to the operation.
func (c *Client) do(ctx context.Context, method, path string, body any) (*response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Network(err, "request failed")
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug("close response body failed", "path", path, "error", cerr)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Network(err, "read response body")
	}
	return &response{status: resp.StatusCode, body: data}, nil
}

func is2xx(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// normalizeIdentity accepts both the flat Identity shape and the
// {"user": Identity} wrapper, returning nil when neither matches.
func normalizeIdentity(data []byte) *domainauth.Identity {
	var wrapped struct {
		User *domainauth.Identity `json:"user"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.User != nil && wrapped.User.ID != "" {
		return wrapped.User
	}

	var flat domainauth.Identity
	if err := json.Unmarshal(data, &flat); err == nil && flat.ID != "" {
		return &flat
	}
	return nil
}
