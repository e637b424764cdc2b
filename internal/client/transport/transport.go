// Package transport provides the authenticated HTTP transport used by the
// API client. It attaches the bearer access token to every outgoing request
// and transparently recovers from expired-token 401s through the refresh
// coordinator, retrying the failed request once with the new token.
package transport

import (
	"io"
	"net/http"
	"sync"

	"github.com/salespoint/salespoint/internal/client/auth"
	"github.com/salespoint/salespoint/internal/common"
	"github.com/salespoint/salespoint/internal/logging"
)

// AuthTransport is an http.RoundTripper that wraps a base transport.
//
// Recovery rules for a 401 response:
//   - from the login endpoint: a credentials failure, propagated untouched;
//   - from the refresh endpoint: recovery impossible, session is torn down;
//   - from any other endpoint: one refresh cycle, then one retry; a 401 on
//     the retried request tears the session down instead of refreshing again.
//
// Every other status and every network failure passes through unchanged.
type AuthTransport struct {
	base        http.RoundTripper
	store       *auth.Store
	coordinator *auth.RefreshCoordinator
	loginPath   string
	refreshPath string
	logger      logging.Logger

	mu           sync.Mutex
	onSessionEnd func()
}

// New constructs an AuthTransport over base. loginPath and refreshPath
// identify the two endpoints excluded from refresh recovery.
func New(base http.RoundTripper, store *auth.Store, coordinator *auth.RefreshCoordinator, loginPath, refreshPath string, logger logging.Logger) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &AuthTransport{
		base:        base,
		store:       store,
		coordinator: coordinator,
		loginPath:   loginPath,
		refreshPath: refreshPath,
		logger:      logger.With("module", "auth_transport"),
	}
}

// OnSessionEnd registers the hook invoked when an irrecoverable 401 ends the
// session. The session controller uses it to transition to anonymous and
// trigger the navigate-to-login side effect.
func (t *AuthTransport) OnSessionEnd(fn func()) {
	t.mu.Lock()
	t.onSessionEnd = fn
	t.mu.Unlock()
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.send(req, t.store.Get())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	switch req.URL.Path {
	case t.loginPath:
		// Credentials failure, not a session expiry.
		return resp, nil
	case t.refreshPath:
		// The refresh endpoint rejected the cookie: recovery is impossible.
		t.store.Clear()
		t.endSession(req)
		return resp, nil
	}

	token, rerr := t.coordinator.Refresh(req.Context())
	if rerr != nil {
		// The coordinator already cleared the store. The caller sees the
		// original 401, classified as a session expiry upstream.
		t.endSession(req)
		return resp, nil
	}

	retry, ok := cloneForRetry(req)
	if !ok {
		// Body cannot be replayed, so the caller sees the original 401.
		return resp, nil
	}

	drainAndClose(resp)

	retryResp, err := t.send(retry, token)
	if err != nil {
		return nil, err
	}
	if retryResp.StatusCode == http.StatusUnauthorized {
		// A freshly minted token was rejected. Never recurse into a second
		// refresh; tear the session down.
		t.logger.Warn(req.Context(), "retried request rejected with fresh token", "path", req.URL.Path)
		t.store.Clear()
		t.endSession(req)
	}
	return retryResp, nil
}

// send dispatches a clone of req with the bearer token attached. The caller's
// request is never mutated, per the RoundTripper contract.
func (t *AuthTransport) send(req *http.Request, token string) (*http.Response, error) {
	r := req.Clone(req.Context())
	if token != "" {
		r.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}
	return t.base.RoundTrip(r)
}

func (t *AuthTransport) endSession(req *http.Request) {
	t.logger.Warn(req.Context(), "session ended", "path", req.URL.Path)
	t.mu.Lock()
	fn := t.onSessionEnd
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// cloneForRetry rebuilds the request for a second attempt. Requests with a
// one-shot body that exposes no GetBody cannot be retried.
func cloneForRetry(req *http.Request) (*http.Request, bool) {
	if req.Body == nil || req.Body == http.NoBody {
		return req.Clone(req.Context()), true
	}
	if req.GetBody == nil {
		return nil, false
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	r := req.Clone(req.Context())
	r.Body = body
	return r, true
}

// drainAndClose consumes the remainder of a discarded response body so the
// underlying connection can be reused.
func drainAndClose(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
