package entity

import (
	"time"
)

// Coupon is a storefront promotion granting a percentage discount on the
// cart subtotal. Only one coupon applies to a cart at a time; applying a
// coupon overwrites any previously applied discount.
type Coupon struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`            // Case-insensitive code the shopper types at checkout.
	DiscountPercent int       `json:"discountPercent"` // Percentage off the subtotal, 0-100.
	Active          bool      `json:"active"`
	ExpiresAt       time.Time `json:"expiresAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Usable reports whether the coupon can still be applied at the given time.
func (c *Coupon) Usable(now time.Time) bool {
	return c.Active && (c.ExpiresAt.IsZero() || now.Before(c.ExpiresAt))
}
