package usecase

import (
	"context"

	"bijou/internal/domain/entity"
)

// WishlistUsecase maintains the in-memory mirror of the server-held
// saved-items set for the current identity. The mirror is refetched on
// identity change and flipped on toggle only after the server confirms,
// so a failed toggle never leaves the mirror diverged from server state.
type WishlistUsecase interface {
	// OnIdentityChange refetches the wishlist for the new identity, or
	// clears the mirror for guest. Wired to the identity bus.
	OnIdentityChange(ctx context.Context, identity *entity.Identity)

	// Toggle flips membership of the product server-side and, on success,
	// locally. Returns whether the product is a member afterwards. Guests
	// get ErrNotAuthenticated, a still-resolving session ErrSessionResolving;
	// on any API failure local membership is unchanged.
	Toggle(ctx context.Context, product entity.Product) (bool, error)

	// Refresh replaces the mirror with the server's current set.
	Refresh(ctx context.Context) error

	// IsMember is an O(1) membership test against the mirror.
	IsMember(productID string) bool

	// Items returns the mirrored products in unspecified order.
	Items() []entity.Product
}
