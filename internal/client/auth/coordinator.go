package auth

import (
	"context"
	"sync"

	"github.com/salespoint/salespoint/internal/logging"
)

// RefreshFunc performs a single call to the refresh endpoint and returns the
// new access token. The refresh cookie travels automatically via the cookie
// jar; no request body is sent.
type RefreshFunc func(ctx context.Context) (string, error)

type refreshResult struct {
	token string
	err   error
}

// RefreshCoordinator guarantees at most one in-flight refresh call
// system-wide. Callers that arrive while a refresh is in flight do not issue
// a second call; they block until the in-flight refresh settles and receive
// the same result.
//
// Without this, N requests failing concurrently on an expired access token
// would each call the refresh endpoint, racing to rotate the refresh token
// and invalidating each other.
type RefreshCoordinator struct {
	store   *Store
	refresh RefreshFunc
	logger  logging.Logger

	mu         sync.Mutex
	refreshing bool
	waiters    []chan refreshResult
}

// NewRefreshCoordinator constructs a coordinator that stores successful
// results in store and clears it on failure.
func NewRefreshCoordinator(store *Store, refresh RefreshFunc, logger logging.Logger) *RefreshCoordinator {
	return &RefreshCoordinator{
		store:   store,
		refresh: refresh,
		logger:  logger.With("module", "refresh_coordinator"),
	}
}

// Refresh returns a fresh access token. The first caller of an expiry event
// owns the flight; everyone else waits for its result. The waiter queue is
// drained exactly once per cycle, on both success and failure.
func (c *RefreshCoordinator) Refresh(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan refreshResult, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		select {
		case res := <-ch:
			return res.token, res.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	return c.runFlight(ctx)
}

// runFlight executes the refresh call and fans the result out. The settle
// happens in a defer so the refreshing flag is reset even if refresh panics,
// allowing a later 401 to start a new cycle.
func (c *RefreshCoordinator) runFlight(ctx context.Context) (token string, err error) {
	res := refreshResult{}
	defer func() {
		c.settle(res)
	}()

	res.token, res.err = c.refresh(ctx)
	if res.err != nil {
		c.logger.Warn(ctx, "refresh failed", "error", res.err)
		c.store.Clear()
		return "", res.err
	}

	c.store.Set(res.token)
	return res.token, nil
}

// settle resets the refreshing flag and delivers the result to every waiter.
// Waiter channels are buffered, so delivery cannot block on a caller that
// already gave up on its context.
func (c *RefreshCoordinator) settle(res refreshResult) {
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- res
	}
}
