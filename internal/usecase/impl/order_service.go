package impl

import (
	"context"
	"log/slog"

	"bijou/config"
	"bijou/internal/appctx"
	"bijou/internal/domain/entity"
	domainerrors "bijou/internal/domain/errors"
	"bijou/internal/domain/service"
	"bijou/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// orderService implements the OrderUsecase interface. It is the consuming
// side of the cart: the cart owns the subtotal and the discount percentage,
// the order service owns the shipping rule and the final total.
type orderService struct {
	api      service.OrderAPI
	auth     usecase.AuthSessionUsecase
	cart     usecase.CartUsecase
	validate *validator.Validate
	logger   *slog.Logger

	shippingFee      decimal.Decimal
	freeShippingOver decimal.Decimal // zero means shipping is never waived
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	cfg *config.Config,
	api service.OrderAPI,
	auth usecase.AuthSessionUsecase,
	cart usecase.CartUsecase,
	logger *slog.Logger,
) usecase.OrderUsecase {
	srv := &orderService{
		api:      api,
		auth:     auth,
		cart:     cart,
		validate: validator.New(),
		logger:   logger,
	}
	if cfg.Checkout != nil {
		srv.shippingFee = decimal.NewFromFloat(cfg.Checkout.ShippingFee)
		srv.freeShippingOver = decimal.NewFromFloat(cfg.Checkout.FreeShippingOver)
	}

	return srv
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return appctx.GetLoggerOrDefault(ctx, srv.logger)
}

// Quote computes the checkout price breakdown from the live cart state.
func (srv *orderService) Quote() usecase.CheckoutQuote {
	subtotal := srv.cart.Subtotal()
	percent := srv.cart.Discount()

	discountAmount := subtotal.
		Mul(decimal.NewFromInt(int64(percent))).
		Div(decimal.NewFromInt(100))

	shipping := decimal.Zero
	if len(srv.cart.Lines()) > 0 {
		shipping = srv.shippingFee
		if srv.freeShippingOver.IsPositive() && subtotal.GreaterThanOrEqual(srv.freeShippingOver) {
			shipping = decimal.Zero
		}
	}

	return usecase.CheckoutQuote{
		Subtotal:        subtotal,
		DiscountPercent: percent,
		DiscountAmount:  discountAmount,
		ShippingFee:     shipping,
		Total:           subtotal.Sub(discountAmount).Add(shipping),
	}
}

// Checkout places the order from the current cart and clears the cart on
// success.
func (srv *orderService) Checkout(ctx context.Context, input usecase.CheckoutInput) (*entity.Order, error) {
	identity, err := requireIdentity(srv.auth)
	if err != nil {
		return nil, err
	}

	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidation.WithDetails(err.Error())
	}

	lines := srv.cart.Lines()
	if len(lines) == 0 {
		return nil, domainerrors.ErrCartEmpty
	}

	quote := srv.Quote()
	items := make([]entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, entity.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	draft := service.OrderDraft{
		Items:           items,
		Subtotal:        quote.Subtotal.String(),
		DiscountPercent: quote.DiscountPercent,
		ShippingFee:     quote.ShippingFee.String(),
		Total:           quote.Total.String(),
		ShippingAddress: input.ShippingAddress,
		IdempotencyKey:  uuid.New().String(),
	}

	order, err := srv.api.Create(ctx, draft)
	if err != nil {
		srv.log(ctx).Error("Order placement failed",
			slog.String("user_id", identity.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to place order")
	}

	// The cart has served its purpose. A failed clear is not worth failing
	// the placed order over.
	if err := srv.cart.Clear(ctx); err != nil {
		srv.log(ctx).Warn("Failed to clear cart after checkout", slog.Any("error", err))
	}

	srv.log(ctx).Info("Order placed",
		slog.String("order_id", order.ID),
		slog.String("user_id", identity.ID),
		slog.String("total", quote.Total.String()))

	return order, nil
}

// MyOrders lists the current identity's order history.
func (srv *orderService) MyOrders(ctx context.Context) ([]entity.Order, error) {
	if _, err := requireIdentity(srv.auth); err != nil {
		return nil, err
	}

	orders, err := srv.api.ListMine(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// ListAll lists every order for the back office.
func (srv *orderService) ListAll(ctx context.Context) ([]entity.Order, error) {
	if _, err := requireAdmin(srv.auth); err != nil {
		return nil, err
	}

	orders, err := srv.api.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list all orders")
	}

	return orders, nil
}

var validTransitions = map[entity.OrderStatus]bool{
	entity.OrderPending:   true,
	entity.OrderConfirmed: true,
	entity.OrderShipped:   true,
	entity.OrderDelivered: true,
	entity.OrderCancelled: true,
}

// UpdateStatus moves an order along the fulfilment stepper.
func (srv *orderService) UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error) {
	if _, err := requireAdmin(srv.auth); err != nil {
		return nil, err
	}

	if !validTransitions[status] {
		return nil, domainerrors.ErrValidation.WithDetails("unknown order status: " + string(status))
	}

	order, err := srv.api.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}
	srv.log(ctx).Info("Order status updated",
		slog.String("order_id", orderID), slog.String("status", string(status)))

	return order, nil
}

// Delete removes an order from the back office.
func (srv *orderService) Delete(ctx context.Context, orderID string) error {
	if _, err := requireAdmin(srv.auth); err != nil {
		return err
	}

	if err := srv.api.Delete(ctx, orderID); err != nil {
		return errors.Wrap(err, "failed to delete order")
	}
	srv.log(ctx).Info("Order deleted", slog.String("order_id", orderID))

	return nil
}
