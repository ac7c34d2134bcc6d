package usecase

import (
	"context"

	"bijou/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// CartUsecase owns the current identity's cart and applied discount.
//
// The cart is client-authoritative: totals and quantities come from here,
// with a best-effort server mirror on add. Every mutation re-persists the
// full snapshot under the current identity's keys in the same call; there
// is no separate save step. Guests have no cart: mutations fail with
// ErrNotAuthenticated and never write a snapshot. Before the first
// identity transition has been delivered mutations fail with
// ErrSessionResolving instead, matching the session manager's guards.
type CartUsecase interface {
	// OnIdentityChange swaps the cart to the given identity's persisted
	// snapshot, or resets to empty for guest. Wired to the identity bus.
	OnIdentityChange(ctx context.Context, identity *entity.Identity)

	// AddLine appends a line with a price snapshot of the product's
	// effective price, or increments quantity when the product already has
	// a line. Each invocation counts: a double add increments twice.
	// The line is persisted before the remote mirror is written; a mirror
	// failure is returned to the caller but the local line is kept.
	AddLine(ctx context.Context, product entity.Product, quantity int) error

	// UpdateQuantity sets the line's quantity to max(1, quantity).
	// Decrementing to zero is rejected by clamping, never by removing the
	// line. Missing lines are left untouched.
	UpdateQuantity(ctx context.Context, productID string, quantity int) error

	// RemoveLine deletes the line for productID.
	RemoveLine(ctx context.Context, productID string) error

	// Clear empties the cart, resets the discount to zero and deletes the
	// persisted snapshot for the current identity.
	Clear(ctx context.Context) error

	// SetDiscount applies a percentage (0-100) to the subtotal.
	SetDiscount(ctx context.Context, percent int) error

	// Discount returns the currently applied percentage.
	Discount() int

	// Subtotal recomputes sum(price x quantity) over all lines on every call.
	Subtotal() decimal.Decimal

	// Lines returns a copy of the cart lines in insertion order.
	Lines() []entity.CartLine
}
