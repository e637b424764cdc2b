// Package common contains shared constants and sentinel errors used across
// SalesPoint components.
package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer access
// token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RefreshCookieName is the name of the HttpOnly cookie that transports the
// refresh token. The client never reads its value; it is set and consumed by
// the server and carried automatically by the cookie jar.
const RefreshCookieName = "refreshToken"
