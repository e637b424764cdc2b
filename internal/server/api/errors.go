package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/salespoint/salespoint/internal/common"
)

// errorEnvelope is the JSON body of every non-2xx response.
type errorEnvelope struct {
	StatusCode   int    `json:"StatusCode"`
	ErrorCode    string `json:"ErrorCode"`
	ErrorType    string `json:"ErrorType"`
	ErrorMessage string `json:"ErrorMessage"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		StatusCode:   status,
		ErrorCode:    code,
		ErrorType:    "error",
		ErrorMessage: msg,
	})
}

// writeServiceError maps service-layer sentinel errors onto the wire envelope.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials or token")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		writeError(w, http.StatusUnauthorized, "REFRESH_TOKEN_EXPIRED", "refresh token expired")
	case errors.Is(err, common.ErrRefreshReuseDetected):
		writeError(w, http.StatusUnauthorized, "REFRESH_TOKEN_REVOKED", "refresh token revoked")
	case errors.Is(err, common.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "TOKEN_EXPIRED", "access token expired")
	case errors.Is(err, common.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "invalid access token")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
