package impl

import (
	"context"
	"log/slog"
	"strings"

	"bijou/internal/appctx"
	"bijou/internal/domain/entity"
	domainerrors "bijou/internal/domain/errors"
	"bijou/internal/domain/service"
	"bijou/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// couponService implements the CouponUsecase interface.
type couponService struct {
	api      service.CouponAPI
	auth     usecase.AuthSessionUsecase
	cart     usecase.CartUsecase
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCouponService is the constructor for couponService.
func NewCouponService(
	api service.CouponAPI,
	auth usecase.AuthSessionUsecase,
	cart usecase.CartUsecase,
	logger *slog.Logger,
) usecase.CouponUsecase {
	return &couponService{
		api:      api,
		auth:     auth,
		cart:     cart,
		validate: validator.New(),
		logger:   logger,
	}
}

func (srv *couponService) log(ctx context.Context) *slog.Logger {
	return appctx.GetLoggerOrDefault(ctx, srv.logger)
}

// LatestActive returns the newest running promotion, or nil when there is
// none. No promotion is an empty state, not an error.
func (srv *couponService) LatestActive(ctx context.Context) (*entity.Coupon, error) {
	coupon, err := srv.api.LatestActive(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to fetch active coupon")
	}

	return coupon, nil
}

// Apply validates the code with the API and pushes the granted percentage
// into the cart's discount.
func (srv *couponService) Apply(ctx context.Context, code string) (int, error) {
	if _, err := requireIdentity(srv.auth); err != nil {
		return 0, err
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return 0, domainerrors.ErrCouponInvalid
	}

	percent, err := srv.api.Apply(ctx, code)
	if err != nil {
		srv.log(ctx).Info("Coupon rejected", slog.String("code", code), slog.Any("error", err))

		return 0, errors.Wrap(err, "coupon apply failed")
	}

	if err := srv.cart.SetDiscount(ctx, percent); err != nil {
		return 0, errors.Wrap(err, "failed to apply discount to cart")
	}

	srv.log(ctx).Info("Coupon applied", slog.String("code", code), slog.Int("percent", percent))

	return percent, nil
}

// Create adds a coupon from the admin console.
func (srv *couponService) Create(ctx context.Context, input usecase.CreateCouponInput) (*entity.Coupon, error) {
	if _, err := requireAdmin(srv.auth); err != nil {
		return nil, err
	}

	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidation.WithDetails(err.Error())
	}

	coupon, err := srv.api.Create(ctx, service.CouponDraft{
		Code:            strings.ToUpper(strings.TrimSpace(input.Code)),
		DiscountPercent: input.DiscountPercent,
		ExpiresAt:       input.ExpiresAt,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create coupon")
	}
	srv.log(ctx).Info("Coupon created", slog.String("code", coupon.Code))

	return coupon, nil
}

// List returns all coupons for the admin console.
func (srv *couponService) List(ctx context.Context) ([]entity.Coupon, error) {
	if _, err := requireAdmin(srv.auth); err != nil {
		return nil, err
	}

	coupons, err := srv.api.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list coupons")
	}

	return coupons, nil
}
