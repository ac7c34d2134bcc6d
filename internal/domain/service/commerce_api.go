// Package service defines the contracts for external collaborators: the
// remote commerce API the storefront talks to, and the identity event
// channel the state managers coordinate through.
package service

import (
	"context"

	"bijou/internal/domain/entity"
)

// Credentials carries a login attempt.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration carries a new-account request.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is what the API returns from login and register: the bearer
// token plus the identity it authenticates.
type AuthResult struct {
	Token    string          `json:"token"`
	Identity entity.Identity `json:"user"`
}

// AuthAPI covers credential exchange. The auth protocol itself is the
// server's concern; the client only stores and replays the opaque token.
type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Register(ctx context.Context, reg Registration) (*AuthResult, error)
}

// ProfileUpdate carries the mutable profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// ProfileAPI reads and updates the authenticated user's profile.
type ProfileAPI interface {
	// FetchProfile resolves the identity behind the current bearer token.
	// An authentication failure here means the token is dead.
	FetchProfile(ctx context.Context) (*entity.Identity, error)

	// UpdateProfile applies the given changes and returns the server's view
	// of the profile afterwards. The response may arrive wrapped in a
	// {"user": ...} envelope; callers pass it through AuthSession.UpdateIdentity.
	UpdateProfile(ctx context.Context, update ProfileUpdate) ([]byte, error)
}

// CartMirrorAPI mirrors cart additions server-side for durability. The
// client-held cart remains the source of truth for totals and quantities;
// this call is best effort.
type CartMirrorAPI interface {
	AddItem(ctx context.Context, line entity.CartLine) error
}

// WishlistAPI is the authoritative home of the saved-items set.
type WishlistAPI interface {
	// Fetch returns the full wishlist for the current identity.
	Fetch(ctx context.Context) ([]entity.Product, error)

	// Toggle flips membership of one product server-side.
	Toggle(ctx context.Context, productID string) error
}

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	CategoryID string
	OnSaleOnly bool
	Search     string
}

// CatalogAPI lists and reads the storefront catalog.
type CatalogAPI interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]entity.Product, error)
	GetProduct(ctx context.Context, productID string) (*entity.Product, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
}

// OrderDraft is the payload for placing an order at checkout.
type OrderDraft struct {
	Items           []entity.OrderItem `json:"items"`
	Subtotal        string             `json:"subtotal"`
	DiscountPercent int                `json:"discountPercent"`
	ShippingFee     string             `json:"shippingFee"`
	Total           string             `json:"total"`
	ShippingAddress string             `json:"shippingAddress"`
	IdempotencyKey  string             `json:"idempotencyKey"` // Client-generated UUID so a double-submit cannot place two orders.
}

// OrderAPI covers order placement, the customer's order history and the
// admin back-office operations.
type OrderAPI interface {
	Create(ctx context.Context, draft OrderDraft) (*entity.Order, error)
	ListMine(ctx context.Context) ([]entity.Order, error)

	// Admin surface.
	ListAll(ctx context.Context) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error)
	Delete(ctx context.Context, orderID string) error
}

// CouponDraft is the admin payload for creating a coupon.
type CouponDraft struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discountPercent"`
	ExpiresAt       string `json:"expiresAt,omitempty"` // RFC 3339; empty means no expiry.
}

// CouponAPI resolves and manages promotion codes.
type CouponAPI interface {
	// LatestActive returns the newest running promotion, or nil when none is active.
	LatestActive(ctx context.Context) (*entity.Coupon, error)

	// Apply validates a code and returns the discount percentage it grants.
	Apply(ctx context.Context, code string) (int, error)

	// Admin surface.
	Create(ctx context.Context, draft CouponDraft) (*entity.Coupon, error)
	List(ctx context.Context) ([]entity.Coupon, error)
}

// ReviewDraft is the payload for submitting a product review.
type ReviewDraft struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// ReviewAPI covers public review reads, customer submissions and moderation.
type ReviewAPI interface {
	ApprovedForProduct(ctx context.Context, productID string) ([]entity.Review, error)
	Create(ctx context.Context, draft ReviewDraft) (*entity.Review, error)
	Delete(ctx context.Context, reviewID string) error

	// Admin surface.
	ListAll(ctx context.Context) ([]entity.Review, error)
	Approve(ctx context.Context, reviewID string) (*entity.Review, error)
}
