package api

import (
	"net/http"
	"time"

	"github.com/salespoint/salespoint/internal/common"
)

// setRefreshCookie installs the refresh token as an HttpOnly cookie scoped to
// the whole site. SameSite=Strict keeps the browser from attaching it to
// cross-site requests.
func (h *Handler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.RefreshCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.refreshTokenValidity),
		MaxAge:   int(h.refreshTokenValidity.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearRefreshCookie expires the refresh cookie immediately.
func (h *Handler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
