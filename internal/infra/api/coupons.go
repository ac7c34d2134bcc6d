package api

import (
	"context"
	"net/http"

	"bijou/internal/domain/entity"
	"bijou/internal/domain/service"
)

type couponAPI struct {
	c *Client
}

// Coupons returns the coupon surface of the client.
func (c *Client) Coupons() service.CouponAPI {
	return couponAPI{c: c}
}

// LatestActive returns the newest running promotion.
func (a couponAPI) LatestActive(ctx context.Context) (*entity.Coupon, error) {
	var coupon entity.Coupon
	if err := a.c.do(ctx, http.MethodGet, "/coupons/active", nil, &coupon); err != nil {
		return nil, err
	}

	return &coupon, nil
}

// Apply validates a code and returns the discount percentage it grants.
func (a couponAPI) Apply(ctx context.Context, code string) (int, error) {
	payload := struct {
		Code string `json:"code"`
	}{Code: code}

	var result struct {
		DiscountPercent int `json:"discountPercent"`
	}
	if err := a.c.do(ctx, http.MethodPost, "/coupons/apply", payload, &result); err != nil {
		return 0, err
	}

	return result.DiscountPercent, nil
}

// Create adds a coupon, for the back office.
func (a couponAPI) Create(ctx context.Context, draft service.CouponDraft) (*entity.Coupon, error) {
	var coupon entity.Coupon
	if err := a.c.do(ctx, http.MethodPost, "/coupons", draft, &coupon); err != nil {
		return nil, err
	}

	return &coupon, nil
}

// List lists every coupon, for the back office.
func (a couponAPI) List(ctx context.Context) ([]entity.Coupon, error) {
	var coupons []entity.Coupon
	if err := a.c.do(ctx, http.MethodGet, "/coupons", nil, &coupons); err != nil {
		return nil, err
	}

	return coupons, nil
}
