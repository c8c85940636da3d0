package account

import "time"

// Account represents a registered wallet owner.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	TokenVersion int
	CreatedAt    time.Time
}

// Credentials carries a login attempt.
type Credentials struct {
	Email    string
	Password string
}
