package usecase

import (
	"context"

	"bijou/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// CheckoutInput carries what the checkout form collects beyond the cart.
type CheckoutInput struct {
	ShippingAddress string `validate:"required,min=10,max=500"`
}

// CheckoutQuote is the price breakdown the checkout view renders. The cart
// manager owns only the subtotal and the discount percentage; the final
// total including the shipping business rule is computed here.
type CheckoutQuote struct {
	Subtotal        decimal.Decimal
	DiscountPercent int
	DiscountAmount  decimal.Decimal
	ShippingFee     decimal.Decimal
	Total           decimal.Decimal
}

// OrderUsecase owns checkout and order history, plus the admin back-office
// order operations guarded by the client-side role check.
type OrderUsecase interface {
	// Quote computes the current price breakdown from the cart's subtotal,
	// the applied discount and the configured shipping rule.
	Quote() CheckoutQuote

	// Checkout validates the input, places the order with the remote API
	// and clears the cart on success. Requires a signed-in identity and a
	// non-empty cart.
	Checkout(ctx context.Context, input CheckoutInput) (*entity.Order, error)

	// MyOrders lists the current identity's order history.
	MyOrders(ctx context.Context) ([]entity.Order, error)

	// Admin surface: all three require the admin role client-side before
	// the API is even called.
	ListAll(ctx context.Context) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error)
	Delete(ctx context.Context, orderID string) error
}
