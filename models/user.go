package models

import "time"

// User represents an annotator account.
// Password is accepted from clients on register/login and never returned;
// only PasswordHash is persisted.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Login is the unique user name. It is also stamped as the annotator
	// of every tag the user edits.
	Login string `json:"login"`

	// Password is the plain-text password supplied by the client.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash of the password.
	PasswordHash string `json:"-"`

	// IsAdmin grants access to every document and tag regardless of owner.
	IsAdmin bool `json:"is_admin"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID  int64
	Login   string
	IsAdmin bool
}

// CanModify reports whether the actor may change a resource owned by ownerID.
func (a Actor) CanModify(ownerID int64) bool {
	return a.IsAdmin || a.UserID == ownerID
}
