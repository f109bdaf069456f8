package models

import "time"

// User is an account holder. PasswordHash contains a bcrypt hash and must
// never leave the server, hence the "-" JSON tag.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	Payments     Payments  `json:"payments"`
}
