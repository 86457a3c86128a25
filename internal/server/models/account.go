package models

import "time"

// Account is a login identity. Role is derived by membership probing
// (see roles.Resolver), not stored redundantly here.
type Account struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
}
