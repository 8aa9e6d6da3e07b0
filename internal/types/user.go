package types

import (
	"time"

	"github.com/google/uuid"
)

// User represents the core user entity in the domain.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"` // Unique username used for login.
	Email        string    `json:"email"`    // Unique email address.
	PasswordHash string    `json:"-"`        // Hashed password (never exposed).
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicUser is the user-facing projection of a User with sensitive fields removed.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public strips the password hash for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CreateUserParams carries already-validated input for user creation.
// Password arrives in plaintext and is hashed before it reaches the store.
type CreateUserParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserParams defines the fields allowed for user updates.
// Pointers distinguish "not provided" from an explicit empty value, so a
// partial update only mutates the named fields.
type UpdateUserParams struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}
