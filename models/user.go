package models

import "time"

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Login is the unique user login identifier.
	Login string `json:"login"`

	// Password is the plaintext password received from the client.
	// It is never persisted; the server stores PasswordHash instead.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash of Password.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Session is the authenticated client state persisted between runs.
// DeviceID identifies this installation; the server never reports a
// conflict between two writes of the same device.
type Session struct {
	Login    string `json:"login"`
	Token    string `json:"token"`
	DeviceID string `json:"device_id"`
}

// IsAuthenticated reports whether the session carries a token.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}
