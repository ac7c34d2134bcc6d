package impl

import (
	"context"
	"testing"

	"bijou/internal/domain/entity"
	domainerrors "bijou/internal/domain/errors"
	"bijou/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(t *testing.T) (*commerceFixture, *fakeOrderAPI, usecase.OrderUsecase) {
	t.Helper()

	f := newCommerceFixture(t)
	orders := &fakeOrderAPI{created: &entity.Order{ID: "order-1", Status: entity.OrderPending}}
	svc := NewOrderService(newCheckoutConfig(50, 1000), orders, f.auth, f.cart, newDiscardLogger())

	return f, orders, svc
}

func TestOrderService_Quote_DiscountAndShipping(t *testing.T) {
	f, _, svc := newOrderFixture(t)
	ctx := context.Background()
	f.signIn(t, testCustomer())

	// 2 x 300 = 600 subtotal, 10% off, under the free-shipping threshold.
	require.NoError(t, f.cart.AddLine(ctx, testNecklace(), 2))
	require.NoError(t, f.cart.SetDiscount(ctx, 10))

	quote := svc.Quote()

	assert.True(t, quote.Subtotal.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, 10, quote.DiscountPercent)
	assert.True(t, quote.DiscountAmount.Equal(decimal.NewFromInt(60)))
	assert.True(t, quote.ShippingFee.Equal(decimal.NewFromInt(50)))
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(590)))
}

func TestOrderService_Quote_FreeShippingOverThreshold(t *testing.T) {
	f, _, svc := newOrderFixture(t)
	ctx := context.Background()
	f.signIn(t, testCustomer())

	require.NoError(t, f.cart.AddLine(ctx, testRing(), 1)) // 1200, over 1000

	quote := svc.Quote()

	assert.True(t, quote.ShippingFee.IsZero())
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(1200)))
}

func TestOrderService_Quote_EmptyCartShipsNothing(t *testing.T) {
	f, _, svc := newOrderFixture(t)
	f.signIn(t, testCustomer())

	quote := svc.Quote()

	assert.True(t, quote.Subtotal.IsZero())
	assert.True(t, quote.ShippingFee.IsZero())
	assert.True(t, quote.Total.IsZero())
}

func TestOrderService_Checkout_PlacesOrderAndClearsCart(t *testing.T) {
	f, orders, svc := newOrderFixture(t)
	ctx := context.Background()
	f.signIn(t, testCustomer())

	require.NoError(t, f.cart.AddLine(ctx, testNecklace(), 2))
	require.NoError(t, f.cart.SetDiscount(ctx, 10))

	order, err := svc.Checkout(ctx, usecase.CheckoutInput{ShippingAddress: "1 Jewelers Row, Springfield"})

	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Empty(t, f.cart.Lines())
	assert.Equal(t, 0, f.cart.Discount())

	require.Len(t, orders.drafts, 1)
	draft := orders.drafts[0]
	assert.Equal(t, "600", draft.Subtotal)
	assert.Equal(t, 10, draft.DiscountPercent)
	assert.Equal(t, "50", draft.ShippingFee)
	assert.Equal(t, "590", draft.Total)
	assert.NotEmpty(t, draft.IdempotencyKey)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, "necklace-1", draft.Items[0].ProductID)
	assert.Equal(t, 2, draft.Items[0].Quantity)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	f, _, svc := newOrderFixture(t)
	f.signIn(t, testCustomer())

	_, err := svc.Checkout(context.Background(), usecase.CheckoutInput{ShippingAddress: "1 Jewelers Row, Springfield"})

	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)
}

func TestOrderService_Checkout_ShortAddressRejected(t *testing.T) {
	f, _, svc := newOrderFixture(t)
	ctx := context.Background()
	f.signIn(t, testCustomer())
	require.NoError(t, f.cart.AddLine(ctx, testRing(), 1))

	_, err := svc.Checkout(ctx, usecase.CheckoutInput{ShippingAddress: "short"})

	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	// Nothing was placed and the cart is untouched.
	assert.Len(t, f.cart.Lines(), 1)
}

func TestOrderService_Checkout_CreateFailureKeepsCart(t *testing.T) {
	f, orders, svc := newOrderFixture(t)
	ctx := context.Background()
	f.signIn(t, testCustomer())
	require.NoError(t, f.cart.AddLine(ctx, testRing(), 1))

	orders.createErr = domainerrors.ErrRemoteUnavailable

	_, err := svc.Checkout(ctx, usecase.CheckoutInput{ShippingAddress: "1 Jewelers Row, Springfield"})

	require.Error(t, err)
	assert.Len(t, f.cart.Lines(), 1)
}

func TestOrderService_AdminGuards(t *testing.T) {
	f, _, svc := newOrderFixture(t)
	ctx := context.Background()
	f.signIn(t, testCustomer())

	_, err := svc.ListAll(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrAdminOnly)

	_, err = svc.UpdateStatus(ctx, "order-1", entity.OrderShipped)
	assert.ErrorIs(t, err, domainerrors.ErrAdminOnly)

	assert.ErrorIs(t, svc.Delete(ctx, "order-1"), domainerrors.ErrAdminOnly)
}

func TestOrderService_AdminOperations(t *testing.T) {
	f, orders, svc := newOrderFixture(t)
	ctx := context.Background()
	f.signIn(t, testAdmin())

	orders.orders = []entity.Order{{ID: "order-1"}, {ID: "order-2"}}

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	updated, err := svc.UpdateStatus(ctx, "order-1", entity.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, updated.Status)

	_, err = svc.UpdateStatus(ctx, "order-1", entity.OrderStatus("teleported"))
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	require.NoError(t, svc.Delete(ctx, "order-2"))
	assert.Equal(t, []string{"order-2"}, orders.deleted)
}

func TestOrderService_MyOrders_RequiresIdentity(t *testing.T) {
	f, orders, svc := newOrderFixture(t)
	ctx := context.Background()
	require.NoError(t, f.auth.Initialize(ctx))

	_, err := svc.MyOrders(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)

	f.signIn(t, testCustomer())
	orders.orders = []entity.Order{{ID: "order-1"}}

	mine, err := svc.MyOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
