// Package models defines server-side data models persisted by the
// repositories.
package models

import "time"

// Account is a registered user. PasswordHash is a bcrypt hash and never
// leaves the server.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
