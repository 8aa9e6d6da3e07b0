package types

import (
	"time"

	"github.com/google/uuid"
)

// Account is a named balance bucket owned by exactly one user. The amount is a
// free-form numeric field, not tied to any ledger.
type Account struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Amount      float64   `json:"amount"`
	Description *string   `json:"description,omitempty"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateAccountParams struct {
	Name        string    `json:"name"`
	Amount      *float64  `json:"amount"`
	Description *string   `json:"description,omitempty"`
	UserID      uuid.UUID `json:"user_id"`
}

// UpdateAccountParams allows partial updates; nil fields are left unchanged.
type UpdateAccountParams struct {
	Name        *string  `json:"name,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Description *string  `json:"description,omitempty"`
}
