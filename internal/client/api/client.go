// Package api implements the typed HTTP client for the SalesPoint backend.
// It owns the cookie jar (the refresh cookie travels only there), the access
// token store, and the authenticated transport with single-flight refresh.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/salespoint/salespoint/internal/client/auth"
	"github.com/salespoint/salespoint/internal/client/models"
	"github.com/salespoint/salespoint/internal/client/transport"
	"github.com/salespoint/salespoint/internal/common"
	"github.com/salespoint/salespoint/internal/logging"
)

// Endpoint paths of the backend wire contract.
const (
	LoginPath   = "/api/auth/login"
	RefreshPath = "/api/auth/refresh-token"
	LogoutPath  = "/api/auth/logout"
	MePath      = "/api/auth/me"
	PingPath    = "/ping"
)

// Client is the application-facing API client. All requests go through the
// AuthTransport, except the refresh call itself, which uses a bare client
// sharing the same cookie jar.
type Client struct {
	baseURL     *url.URL
	http        *http.Client
	store       *auth.Store
	coordinator *auth.RefreshCoordinator
	transport   *transport.AuthTransport
	logger      logging.Logger
}

// New constructs a Client for the backend at baseURL (scheme and host only).
// Cookies are always included: both the authenticated client and the refresh
// client share one in-memory jar.
func New(baseURL string, timeout time.Duration, logger logging.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar init error: %w", err)
	}

	c := &Client{
		baseURL: u,
		store:   auth.NewStore(),
		logger:  logger.With("module", "api_client"),
	}

	refreshClient := &http.Client{Jar: jar, Timeout: timeout}
	c.coordinator = auth.NewRefreshCoordinator(c.store, func(ctx context.Context) (string, error) {
		return c.refreshCall(ctx, refreshClient)
	}, logger)

	c.transport = transport.New(http.DefaultTransport, c.store, c.coordinator, LoginPath, RefreshPath, logger)
	c.http = &http.Client{Transport: c.transport, Jar: jar, Timeout: timeout}

	return c, nil
}

// TokenStore exposes the access-token store (the session controller clears it
// on logout).
func (c *Client) TokenStore() *auth.Store {
	return c.store
}

// OnSessionEnd registers the hook fired when an irrecoverable 401 tears the
// session down.
func (c *Client) OnSessionEnd(fn func()) {
	c.transport.OnSessionEnd(fn)
}

// Login authenticates with the backend. On success the access token is placed
// in the store and the refresh cookie lands in the jar; the returned profile
// is the backend's user object. A 401 here surfaces as common.ErrCredentials
// and never triggers a refresh.
func (c *Client) Login(ctx context.Context, creds Credentials) (*models.UserProfile, error) {
	var out loginResponse
	if err := c.doJSON(ctx, c.http, http.MethodPost, LoginPath, creds, &out); err != nil {
		return nil, err
	}
	c.store.Set(out.AccessToken)
	return &out.User, nil
}

// RefreshSession runs one refresh cycle through the coordinator, using only
// the ambient refresh cookie. Used for startup session restoration; it is
// single-flight like every other refresh.
func (c *Client) RefreshSession(ctx context.Context) error {
	_, err := c.coordinator.Refresh(ctx)
	return err
}

// Logout asks the backend to revoke the refresh-token record. The server also
// expires the cookie. Returns the server's farewell message.
func (c *Client) Logout(ctx context.Context) (string, error) {
	var out logoutResponse
	if err := c.doJSON(ctx, c.http, http.MethodPost, LogoutPath, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := c.doJSON(ctx, c.http, http.MethodGet, MePath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping checks backend liveness.
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSON(ctx, c.http, http.MethodGet, PingPath, nil, nil)
}

// refreshCall performs the actual POST to the refresh endpoint. No body is
// sent; the cookie jar carries the refresh token. Runs on the bare client so
// it can never recurse into the auth transport.
func (c *Client) refreshCall(ctx context.Context, client *http.Client) (string, error) {
	var out refreshResponse
	if err := c.doJSON(ctx, client, http.MethodPost, RefreshPath, nil, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (c *Client) endpoint(path string) string {
	u := *c.baseURL
	u.Path = path
	return u.String()
}

// doJSON sends one JSON request and decodes the response into out (if out is
// non-nil). Non-2xx responses are decoded into the error envelope and
// classified; failures with no response at all surface as common.ErrNetwork.
func (c *Client) doJSON(ctx context.Context, client *http.Client, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("request encoding error: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return fmt.Errorf("request creation error: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("response decoding error: %w", err)
		}
		return nil
	}

	apiErr := &Error{StatusCode: resp.StatusCode}
	// A non-JSON error body still yields a classified error.
	_ = json.NewDecoder(resp.Body).Decode(apiErr)
	apiErr.StatusCode = resp.StatusCode
	apiErr.kind = classify(resp.StatusCode, path == LoginPath)

	c.logger.Debug(ctx, "api call failed", "method", method, "path", path, "status", resp.StatusCode, "code", apiErr.ErrorCode)
	return apiErr
}
