package api

import "github.com/salespoint/salespoint/internal/client/models"

// Credentials is the login request body. The backend accepts either the
// email or the user name as the identifier; both are sent.
type Credentials struct {
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string             `json:"accessToken"`
	User        models.UserProfile `json:"user"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type logoutResponse struct {
	Message string `json:"message"`
}
