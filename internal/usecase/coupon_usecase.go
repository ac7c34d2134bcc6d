package usecase

import (
	"context"

	"bijou/internal/domain/entity"
)

// CouponUsecase resolves promotion codes and feeds the granted discount
// into the cart.
type CouponUsecase interface {
	// LatestActive returns the newest running promotion for the storefront
	// banner, or nil when none is active (an empty state, not an error).
	LatestActive(ctx context.Context) (*entity.Coupon, error)

	// Apply validates the code with the remote API and sets the granted
	// percentage on the current cart. Requires a signed-in identity.
	Apply(ctx context.Context, code string) (int, error)

	// Admin surface.
	Create(ctx context.Context, input CreateCouponInput) (*entity.Coupon, error)
	List(ctx context.Context) ([]entity.Coupon, error)
}

// CreateCouponInput carries the admin coupon form.
type CreateCouponInput struct {
	Code            string `validate:"required,alphanum,min=3,max=24"`
	DiscountPercent int    `validate:"required,gte=1,lte=100"`
	ExpiresAt       string `validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}
