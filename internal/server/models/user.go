// Package models defines the persistence-level entities of the server.
package models

import "time"

type User struct {
	ID           string
	Email        string
	UserName     string
	PasswordHash []byte
	CreatedAt    time.Time
}
