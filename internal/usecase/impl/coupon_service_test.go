package impl

import (
	"context"
	"testing"

	"bijou/internal/domain/entity"
	domainerrors "bijou/internal/domain/errors"
	"bijou/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCouponFixture(t *testing.T) (*commerceFixture, *fakeCouponAPI, usecase.CouponUsecase) {
	t.Helper()

	f := newCommerceFixture(t)
	coupons := &fakeCouponAPI{}
	svc := NewCouponService(coupons, f.auth, f.cart, newDiscardLogger())

	return f, coupons, svc
}

func TestCouponService_Apply_SetsCartDiscount(t *testing.T) {
	f, coupons, svc := newCouponFixture(t)
	ctx := context.Background()
	f.signIn(t, testCustomer())
	require.NoError(t, f.cart.AddLine(ctx, testRing(), 1))

	coupons.percent = 15

	percent, err := svc.Apply(ctx, "  summer15 ")

	require.NoError(t, err)
	assert.Equal(t, 15, percent)
	assert.Equal(t, "SUMMER15", coupons.lastCode)
	assert.Equal(t, 15, f.cart.Discount())
}

func TestCouponService_Apply_ReplacesPreviousDiscount(t *testing.T) {
	f, coupons, svc := newCouponFixture(t)
	ctx := context.Background()
	f.signIn(t, testCustomer())
	require.NoError(t, f.cart.AddLine(ctx, testRing(), 1))

	coupons.percent = 10
	_, err := svc.Apply(ctx, "TEN")
	require.NoError(t, err)

	coupons.percent = 25
	_, err = svc.Apply(ctx, "QUARTER")
	require.NoError(t, err)

	assert.Equal(t, 25, f.cart.Discount())
}

func TestCouponService_Apply_Failures(t *testing.T) {
	f, coupons, svc := newCouponFixture(t)
	ctx := context.Background()

	// Guests cannot hold a discount; there is no cart to discount.
	require.NoError(t, f.auth.Initialize(ctx))
	_, err := svc.Apply(ctx, "SUMMER15")
	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)

	f.signIn(t, testCustomer())

	_, err = svc.Apply(ctx, "   ")
	assert.ErrorIs(t, err, domainerrors.ErrCouponInvalid)

	coupons.applyErr = domainerrors.ErrCouponExpired
	_, err = svc.Apply(ctx, "LASTYEAR")
	assert.ErrorIs(t, err, domainerrors.ErrCouponExpired)
	assert.Equal(t, 0, f.cart.Discount())
}

func TestCouponService_LatestActive_NoneIsNotAnError(t *testing.T) {
	_, coupons, svc := newCouponFixture(t)
	ctx := context.Background()

	coupons.latestErr = domainerrors.ErrNotFound

	coupon, err := svc.LatestActive(ctx)

	require.NoError(t, err)
	assert.Nil(t, coupon)
}

func TestCouponService_LatestActive_ReturnsPromotion(t *testing.T) {
	_, coupons, svc := newCouponFixture(t)
	ctx := context.Background()

	coupons.latest = &entity.Coupon{ID: "c-1", Code: "SUMMER15", DiscountPercent: 15, Active: true}

	coupon, err := svc.LatestActive(ctx)

	require.NoError(t, err)
	require.NotNil(t, coupon)
	assert.Equal(t, "SUMMER15", coupon.Code)
}

func TestCouponService_Create_AdminOnly(t *testing.T) {
	f, coupons, svc := newCouponFixture(t)
	ctx := context.Background()
	f.signIn(t, testCustomer())

	input := usecase.CreateCouponInput{Code: "WINTER20", DiscountPercent: 20}

	_, err := svc.Create(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrAdminOnly)

	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrAdminOnly)

	f.signIn(t, testAdmin())
	coupons.created = &entity.Coupon{ID: "c-2", Code: "WINTER20", DiscountPercent: 20}

	coupon, err := svc.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "WINTER20", coupon.Code)
	require.Len(t, coupons.lastDrafts, 1)
	assert.Equal(t, "WINTER20", coupons.lastDrafts[0].Code)
}

func TestCouponService_Create_Validation(t *testing.T) {
	f, _, svc := newCouponFixture(t)
	ctx := context.Background()
	f.signIn(t, testAdmin())

	cases := []usecase.CreateCouponInput{
		{Code: "AB", DiscountPercent: 10},                                  // too short
		{Code: "WINTER20", DiscountPercent: 0},                             // no discount
		{Code: "WINTER20", DiscountPercent: 120},                           // over 100
		{Code: "WINTER20", DiscountPercent: 10, ExpiresAt: "next tuesday"}, // not RFC 3339
	}

	for _, input := range cases {
		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
	}
}
