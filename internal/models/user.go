package models

import "time"

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address (unique across all users).
	// Used for login.
	Email string `json:"email"`

	// Password holds the obscured credential. Accounts created by this
	// service store a bcrypt hash; accounts imported from the browser app
	// carry the legacy encoding until their next login.
	Password string `json:"password"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthUser is the redacted view of a User. It is what callers get back from
// the account store and what the session record holds.
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Redact returns the password-free view of the user.
func (u *User) Redact() *AuthUser {
	return &AuthUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// ProfilePatch names the user fields that may change after registration.
// Nil fields are left untouched.
type ProfilePatch struct {
	Name  *string
	Email *string
}
