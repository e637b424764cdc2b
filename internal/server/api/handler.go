// Package api exposes the SalesPoint authentication endpoints over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/salespoint/salespoint/internal/common"
	"github.com/salespoint/salespoint/internal/logging"
	"github.com/salespoint/salespoint/internal/server/config"
	"github.com/salespoint/salespoint/internal/server/models"
	"github.com/salespoint/salespoint/internal/server/services"
)

// UserAuth is the slice of UserService the handlers need.
type UserAuth interface {
	Register(ctx context.Context, email, userName, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserIDFromAccessToken(token string) (string, error)
}

// Handler serves the authentication API.
type Handler struct {
	users                UserAuth
	logger               logging.Logger
	cookieSecure         bool
	refreshTokenValidity time.Duration
}

// NewHandler constructs a Handler from the user service and server config.
func NewHandler(users UserAuth, cfg *config.Config, logger logging.Logger) *Handler {
	return &Handler{
		users:                users,
		logger:               logger,
		cookieSecure:         cfg.CookieSecure,
		refreshTokenValidity: cfg.RefreshTokenValidityDuration,
	}
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, UserName: u.UserName}
}

type registerRequest struct {
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        userResponse `json:"user"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "email and password are required")
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.UserName, req.Password)
	if err != nil {
		h.logger.Error(r.Context(), "registration failed", "email", req.Email, "error", err)
		writeServiceError(w, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "userID", user.ID)
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// Login handles POST /api/auth/login. On success the response carries the
// access token in the body and the refresh token as an HttpOnly cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "email and password are required")
		return
	}

	user, pair, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn(r.Context(), "login failed", "email", req.Email, "requestID", RequestID(r.Context()))
		writeServiceError(w, err)
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken)
	h.logger.Info(r.Context(), "login", "userID", user.ID)
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: pair.AccessToken, User: toUserResponse(user)})
}

// Refresh handles POST /api/auth/refresh-token. The refresh token travels
// only in the cookie; a missing cookie is treated like an invalid token.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(common.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "REFRESH_TOKEN_MISSING", "no refresh token")
		return
	}

	pair, err := h.users.RefreshToken(r.Context(), cookie.Value)
	if err != nil {
		h.logger.Warn(r.Context(), "refresh rejected", "error", err, "requestID", RequestID(r.Context()))
		h.clearRefreshCookie(w)
		writeServiceError(w, err)
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusOK, refreshResponse{AccessToken: pair.AccessToken})
}

// Logout handles POST /api/auth/logout. The cookie is cleared even when no
// server-side record matches it.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(common.RefreshCookieName); err == nil && cookie.Value != "" {
		if err := h.users.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Error(r.Context(), "logout revocation failed", "error", err)
		}
	}

	h.clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

// Me handles GET /api/auth/me, returning the profile of the bearer of a
// valid access token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Ping handles GET /ping.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "OK"})
}

// authenticate extracts and verifies the bearer token, writing the error
// response itself when verification fails.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		writeError(w, http.StatusUnauthorized, "TOKEN_MISSING", "missing bearer token")
		return "", false
	}

	userID, err := h.users.GetUserIDFromAccessToken(token)
	if err != nil {
		writeServiceError(w, err)
		return "", false
	}
	return userID, true
}
