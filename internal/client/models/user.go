// Package models contains data structures shared by the client packages.
package models

// UserProfile is the non-sensitive profile returned by the backend on login.
// It may be cached in durable local storage; tokens never are.
type UserProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
}
