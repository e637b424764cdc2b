// Package session implements the application-facing session state machine:
// anonymous, pending (logging in or restoring), authenticated. Token handling
// is delegated entirely to the API client's store and transport; routing code
// only ever consumes the derived "is authenticated" boolean.
package session

import (
	"context"
	"sync"

	"github.com/salespoint/salespoint/internal/client/api"
	"github.com/salespoint/salespoint/internal/client/auth"
	"github.com/salespoint/salespoint/internal/client/models"
	"github.com/salespoint/salespoint/internal/client/repositories/profile"
	"github.com/salespoint/salespoint/internal/logging"
)

// State of the session machine.
type State string

const (
	StateAnonymous     State = "anonymous"
	StatePending       State = "pending"
	StateAuthenticated State = "authenticated"
)

// API is the subset of the API client the controller depends on.
type API interface {
	Login(ctx context.Context, creds api.Credentials) (*models.UserProfile, error)
	RefreshSession(ctx context.Context) error
	Logout(ctx context.Context) (string, error)
	OnSessionEnd(fn func())
	TokenStore() *auth.Store
}

// Controller drives login, logout, and startup session restoration.
type Controller struct {
	api      API
	profiles profile.Repository
	navigate func()
	logger   logging.Logger

	mu    sync.Mutex
	state State
	user  *models.UserProfile
}

// NewController wires the controller to the API client. navigate is the
// redirect-equivalent invoked when the session ends irrecoverably; it fires
// at most once per teardown and never when already anonymous. profiles may be
// nil when no durable cache is configured.
func NewController(apiClient API, profiles profile.Repository, navigate func(), logger logging.Logger) *Controller {
	c := &Controller{
		api:      apiClient,
		profiles: profiles,
		navigate: navigate,
		logger:   logger.With("module", "session"),
		state:    StateAnonymous,
	}
	apiClient.OnSessionEnd(c.handleSessionEnd)
	return c
}

// State returns the current machine state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsAuthenticated is the boolean route guards consume.
func (c *Controller) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

// User returns the profile of the authenticated user, or nil.
func (c *Controller) User() *models.UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// Login authenticates with the backend. On failure the machine returns to
// anonymous and the error is surfaced verbatim; invalid credentials are never
// retried here.
func (c *Controller) Login(ctx context.Context, creds api.Credentials) error {
	c.setState(StatePending)

	user, err := c.api.Login(ctx, creds)
	if err != nil {
		c.become(StateAnonymous, nil)
		return err
	}

	c.become(StateAuthenticated, user)

	if c.profiles != nil {
		if err := c.profiles.Save(ctx, user); err != nil {
			c.logger.Warn(ctx, "profile cache write failed", "error", err)
		}
	}
	return nil
}

// Logout tears the session down. The backend call is best-effort: a failure
// is logged and swallowed, because local teardown must always succeed.
// Calling Logout when already anonymous is a no-op that still leaves the
// token store empty.
func (c *Controller) Logout(ctx context.Context) error {
	c.setState(StatePending)

	if _, err := c.api.Logout(ctx); err != nil {
		c.logger.Warn(ctx, "logout call failed", "error", err)
	}

	c.api.TokenStore().Clear()
	c.clearProfileCache(ctx)
	c.become(StateAnonymous, nil)
	return nil
}

// RestoreSession attempts to resume a previous session at startup using only
// the ambient refresh cookie. No credentials exist at this point, so a failed
// refresh is not an error condition, merely "no session": the machine lands
// in anonymous and nil is returned.
func (c *Controller) RestoreSession(ctx context.Context) error {
	c.setState(StatePending)

	if err := c.api.RefreshSession(ctx); err != nil {
		c.logger.Info(ctx, "no session to restore", "reason", err)
		c.become(StateAnonymous, nil)
		return nil
	}

	var user *models.UserProfile
	if c.profiles != nil {
		cached, err := c.profiles.Load(ctx)
		if err != nil {
			c.logger.Debug(ctx, "no cached profile", "reason", err)
		} else {
			user = cached
		}
	}

	c.become(StateAuthenticated, user)
	return nil
}

// handleSessionEnd runs when the transport reports an irrecoverable 401.
// The navigate hook fires only on a transition out of an active session, so
// repeated signals while already anonymous cause no repeated redirects.
func (c *Controller) handleSessionEnd() {
	c.mu.Lock()
	wasActive := c.state != StateAnonymous
	c.state = StateAnonymous
	c.user = nil
	c.mu.Unlock()

	if !wasActive {
		return
	}

	c.clearProfileCache(context.Background())
	if c.navigate != nil {
		c.navigate()
	}
}

func (c *Controller) clearProfileCache(ctx context.Context) {
	if c.profiles == nil {
		return
	}
	if err := c.profiles.Clear(ctx); err != nil {
		c.logger.Warn(ctx, "profile cache clear failed", "error", err)
	}
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Controller) become(s State, user *models.UserProfile) {
	c.mu.Lock()
	c.state = s
	c.user = user
	c.mu.Unlock()
}
