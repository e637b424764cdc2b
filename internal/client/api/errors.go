package api

import (
	"fmt"
	"net/http"

	"github.com/salespoint/salespoint/internal/common"
)

// Error is the backend's error envelope, decoded from every non-2xx response.
// It unwraps to one of the sentinel errors in common, so callers can write
// errors.Is(err, common.ErrPermissionDenied) without touching the envelope.
type Error struct {
	StatusCode   int    `json:"StatusCode"`
	ErrorCode    string `json:"ErrorCode"`
	ErrorType    string `json:"ErrorType"`
	ErrorMessage string `json:"ErrorMessage"`

	kind error
}

func (e *Error) Error() string {
	if e.ErrorMessage != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.ErrorCode, e.ErrorMessage)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

func (e *Error) Unwrap() error { return e.kind }

// classify maps a response status to the client failure taxonomy. A 401 from
// the login endpoint is a credentials failure; a 401 anywhere else reaches
// this code only after transparent refresh recovery has already failed, so it
// means the session is gone.
func classify(status int, isLogin bool) error {
	switch {
	case status == http.StatusUnauthorized && isLogin:
		return common.ErrCredentials
	case status == http.StatusUnauthorized:
		return common.ErrSessionExpired
	case status == http.StatusForbidden:
		return common.ErrPermissionDenied
	case status == http.StatusNotFound:
		return common.ErrorNotFound
	case status == http.StatusUnprocessableEntity:
		return common.ErrValidation
	case status >= http.StatusInternalServerError:
		return common.ErrServer
	default:
		return common.ErrorInternal
	}
}
