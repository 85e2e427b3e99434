// Package model defines the data structures shared by every layer, plus the
// request shapes and validation rules for them.
package model

import "time"

// User represents a registered account.
//
// The `json:"..."` tags decide what leaves the server. Only the four public
// fields are ever serialized; the password hash and timestamps are tagged
// `json:"-"` so encoding/json skips them entirely.
type User struct {
	ID           string    `json:"id"           db:"id"`
	FirstName    string    `json:"firstName"    db:"first_name"`
	LastName     string    `json:"lastName"     db:"last_name"`
	EmailAddress string    `json:"emailAddress" db:"email_address"`
	PasswordHash string    `json:"-"            db:"password_hash"` // bcrypt, never plaintext
	CreatedAt    time.Time `json:"-"            db:"created_at"`
	UpdatedAt    time.Time `json:"-"            db:"updated_at"`
}

// UserInput is the request body for POST /api/users.
//
// Each field is a Text so validation can tell a missing key apart from an
// empty string, and report different messages for each.
type UserInput struct {
	FirstName    Text `json:"firstName"`
	LastName     Text `json:"lastName"`
	EmailAddress Text `json:"emailAddress"`
	Password     Text `json:"password"`
}
