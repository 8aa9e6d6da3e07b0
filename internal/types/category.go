package types

import (
	"time"

	"github.com/google/uuid"
)

// Category is a per-user expense grouping seeded at bootstrap.
type Category struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	UserID        uuid.UUID     `json:"user_id"`
	Subcategories []Subcategory `json:"subcategories"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type Subcategory struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	CategoryID uuid.UUID `json:"category_id"`
	UserID     uuid.UUID `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
