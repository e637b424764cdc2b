package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/salespoint/salespoint/internal/client/api"
	"github.com/salespoint/salespoint/internal/client/auth"
	"github.com/salespoint/salespoint/internal/client/models"
	"github.com/salespoint/salespoint/internal/common"
	"github.com/salespoint/salespoint/internal/logging"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ---- fakes ----

type fakeAPI struct {
	store      *auth.Store
	sessionEnd func()

	loginUser  *models.UserProfile
	loginErr   error
	refreshErr error
	logoutErr  error

	loginCalls   int
	refreshCalls int
	logoutCalls  int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{store: auth.NewStore()}
}

func (f *fakeAPI) Login(ctx context.Context, creds api.Credentials) (*models.UserProfile, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.store.Set("access-token")
	return f.loginUser, nil
}

func (f *fakeAPI) RefreshSession(ctx context.Context) error {
	f.refreshCalls++
	if f.refreshErr != nil {
		f.store.Clear()
		return f.refreshErr
	}
	f.store.Set("restored-token")
	return nil
}

func (f *fakeAPI) Logout(ctx context.Context) (string, error) {
	f.logoutCalls++
	if f.logoutErr != nil {
		return "", f.logoutErr
	}
	return "logged out", nil
}

func (f *fakeAPI) OnSessionEnd(fn func()) { f.sessionEnd = fn }

func (f *fakeAPI) TokenStore() *auth.Store { return f.store }

type memProfileRepo struct {
	user     *models.UserProfile
	saveErr  error
	clearErr error
}

func (m *memProfileRepo) Save(ctx context.Context, user *models.UserProfile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.user = user
	return nil
}

func (m *memProfileRepo) Load(ctx context.Context) (*models.UserProfile, error) {
	if m.user == nil {
		return nil, common.ErrorNotFound
	}
	return m.user, nil
}

func (m *memProfileRepo) Clear(ctx context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.user = nil
	return nil
}

// ---- tests ----

func TestLogin_Success(t *testing.T) {
	f := newFakeAPI()
	f.loginUser = &models.UserProfile{ID: "u1", UserName: "alice"}
	repo := &memProfileRepo{}
	c := NewController(f, repo, nil, discardLogger())

	require.NoError(t, c.Login(context.Background(), api.Credentials{UserName: "alice", Password: "pw"}))

	require.Equal(t, StateAuthenticated, c.State())
	require.True(t, c.IsAuthenticated())
	require.Equal(t, "alice", c.User().UserName)
	require.True(t, f.store.Has(), "token store must hold the access token after login")
	require.Equal(t, "alice", repo.user.UserName, "profile must be cached")
}

func TestLogin_Failure_ReturnsToAnonymous(t *testing.T) {
	f := newFakeAPI()
	f.loginErr = common.ErrCredentials
	c := NewController(f, nil, nil, discardLogger())

	err := c.Login(context.Background(), api.Credentials{UserName: "alice", Password: "bad"})
	require.ErrorIs(t, err, common.ErrCredentials)
	require.Equal(t, StateAnonymous, c.State())
	require.Nil(t, c.User())
	require.Equal(t, 1, f.loginCalls, "invalid credentials must not be retried")
}

func TestLogout_ClearsEverything(t *testing.T) {
	f := newFakeAPI()
	f.loginUser = &models.UserProfile{ID: "u1", UserName: "alice"}
	repo := &memProfileRepo{}
	c := NewController(f, repo, nil, discardLogger())
	require.NoError(t, c.Login(context.Background(), api.Credentials{}))

	require.NoError(t, c.Logout(context.Background()))

	require.Equal(t, StateAnonymous, c.State())
	require.False(t, f.store.Has())
	require.Nil(t, repo.user)
	require.Equal(t, 1, f.logoutCalls)
}

func TestLogout_SwallowsBackendFailure(t *testing.T) {
	f := newFakeAPI()
	f.loginUser = &models.UserProfile{ID: "u1"}
	f.logoutErr = errors.New("server unreachable")
	c := NewController(f, nil, nil, discardLogger())
	require.NoError(t, c.Login(context.Background(), api.Credentials{}))

	require.NoError(t, c.Logout(context.Background()), "logout must never fail observably")
	require.Equal(t, StateAnonymous, c.State())
	require.False(t, f.store.Has())
}

func TestLogout_WhenAnonymous_Idempotent(t *testing.T) {
	f := newFakeAPI()
	c := NewController(f, nil, nil, discardLogger())

	require.NoError(t, c.Logout(context.Background()))
	require.Equal(t, StateAnonymous, c.State())
	require.False(t, f.store.Has())
}

func TestRestoreSession_Success_UsesCachedProfile(t *testing.T) {
	f := newFakeAPI()
	repo := &memProfileRepo{user: &models.UserProfile{ID: "u1", UserName: "alice"}}
	c := NewController(f, repo, nil, discardLogger())

	require.NoError(t, c.RestoreSession(context.Background()))

	require.Equal(t, StateAuthenticated, c.State())
	require.Equal(t, "alice", c.User().UserName)
	require.Equal(t, 1, f.refreshCalls)
}

func TestRestoreSession_NoCookie_AnonymousWithoutError(t *testing.T) {
	f := newFakeAPI()
	f.refreshErr = common.ErrSessionExpired
	c := NewController(f, nil, nil, discardLogger())

	require.NoError(t, c.RestoreSession(context.Background()), "a missing session is not an error")
	require.Equal(t, StateAnonymous, c.State())
	require.False(t, f.store.Has())
}

func TestRestoreSession_NoCachedProfile(t *testing.T) {
	f := newFakeAPI()
	c := NewController(f, &memProfileRepo{}, nil, discardLogger())

	require.NoError(t, c.RestoreSession(context.Background()))
	require.Equal(t, StateAuthenticated, c.State())
	require.Nil(t, c.User())
}

func TestSessionEnd_NavigatesExactlyOnce(t *testing.T) {
	f := newFakeAPI()
	f.loginUser = &models.UserProfile{ID: "u1"}
	repo := &memProfileRepo{}

	navigations := 0
	c := NewController(f, repo, func() { navigations++ }, discardLogger())
	require.NoError(t, c.Login(context.Background(), api.Credentials{}))

	f.sessionEnd()
	f.sessionEnd()
	f.sessionEnd()

	require.Equal(t, 1, navigations, "redirect must fire once per teardown")
	require.Equal(t, StateAnonymous, c.State())
	require.Nil(t, repo.user, "cached profile must be cleared on session end")
}

func TestSessionEnd_WhenAnonymous_NoNavigation(t *testing.T) {
	f := newFakeAPI()
	navigations := 0
	c := NewController(f, nil, func() { navigations++ }, discardLogger())

	f.sessionEnd()
	require.Zero(t, navigations, "already on the login view; no redirect")
	require.Equal(t, StateAnonymous, c.State())
}
