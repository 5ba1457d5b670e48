package models

import "time"

// User is a registered account of the payment platform.
//
// PasswordHash stores the bcrypt hash of the user's password; the plain-text
// password never leaves the login/register handlers. JSON tags expose only
// fields that are safe to return to API clients.
type User struct {
	// UserID is the server-assigned primary key.
	UserID int64 `json:"id"`

	// Firstname and Lastname are the user's display names.
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`

	// Email is the login identifier; unique across the platform.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to JSON.
	PasswordHash string `json:"-"`

	// CreatedAt is the registration timestamp assigned by the database.
	CreatedAt time.Time `json:"created_at"`
}
