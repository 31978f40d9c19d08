package domain

import (
	"time"
)

// Review represents a product review submitted by an authenticated user.
// Username is denormalized at submission time so the review survives
// profile renames unchanged.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
