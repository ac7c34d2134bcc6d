package entity

import (
	"time"
)

// Review is a customer product review. Reviews start unapproved and only
// become publicly visible once an admin approves them.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"` // Display name captured at creation so moderation lists are readable.
	Rating    int       `json:"rating"`   // 1 to 5 stars.
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}
