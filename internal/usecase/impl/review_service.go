package impl

import (
	"context"
	"log/slog"

	"bijou/internal/appctx"
	"bijou/internal/domain/entity"
	domainerrors "bijou/internal/domain/errors"
	"bijou/internal/domain/service"
	"bijou/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	api      service.ReviewAPI
	auth     usecase.AuthSessionUsecase
	validate *validator.Validate
	logger   *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(
	api service.ReviewAPI,
	auth usecase.AuthSessionUsecase,
	logger *slog.Logger,
) usecase.ReviewUsecase {
	return &reviewService{
		api:      api,
		auth:     auth,
		validate: validator.New(),
		logger:   logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return appctx.GetLoggerOrDefault(ctx, srv.logger)
}

// ForProduct lists the approved reviews for a product page. An empty list
// is a normal state.
func (srv *reviewService) ForProduct(ctx context.Context, productID string) ([]entity.Review, error) {
	reviews, err := srv.api.ApprovedForProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch reviews")
	}

	return reviews, nil
}

// Create submits a review for moderation.
func (srv *reviewService) Create(ctx context.Context, input usecase.CreateReviewInput) (*entity.Review, error) {
	identity, err := requireIdentity(srv.auth)
	if err != nil {
		return nil, err
	}

	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidation.WithDetails(err.Error())
	}

	review, err := srv.api.Create(ctx, service.ReviewDraft{
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to submit review")
	}
	srv.log(ctx).Info("Review submitted",
		slog.String("product_id", input.ProductID), slog.String("user_id", identity.ID))

	return review, nil
}

// ListAll returns the full moderation queue.
func (srv *reviewService) ListAll(ctx context.Context) ([]entity.Review, error) {
	if _, err := requireAdmin(srv.auth); err != nil {
		return nil, err
	}

	reviews, err := srv.api.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}

// Approve publishes a pending review.
func (srv *reviewService) Approve(ctx context.Context, reviewID string) (*entity.Review, error) {
	if _, err := requireAdmin(srv.auth); err != nil {
		return nil, err
	}

	review, err := srv.api.Approve(ctx, reviewID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to approve review")
	}
	srv.log(ctx).Info("Review approved", slog.String("review_id", reviewID))

	return review, nil
}

// Delete removes a review. The server enforces that non-admins can only
// delete their own; the client just requires a signed-in identity.
func (srv *reviewService) Delete(ctx context.Context, reviewID string) error {
	if _, err := requireIdentity(srv.auth); err != nil {
		return err
	}

	if err := srv.api.Delete(ctx, reviewID); err != nil {
		return errors.Wrap(err, "failed to delete review")
	}
	srv.log(ctx).Info("Review deleted", slog.String("review_id", reviewID))

	return nil
}
