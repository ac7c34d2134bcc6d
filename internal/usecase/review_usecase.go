package usecase

import (
	"context"

	"bijou/internal/domain/entity"
)

// CreateReviewInput carries a customer review submission.
type CreateReviewInput struct {
	ProductID string `validate:"required"`
	Rating    int    `validate:"required,gte=1,lte=5"`
	Comment   string `validate:"max=2000"`
}

// ReviewUsecase covers public review reads, customer submissions and the
// admin moderation queue.
type ReviewUsecase interface {
	// ForProduct lists the approved reviews shown on a product page.
	ForProduct(ctx context.Context, productID string) ([]entity.Review, error)

	// Create submits a review for moderation. Requires a signed-in identity.
	Create(ctx context.Context, input CreateReviewInput) (*entity.Review, error)

	// Admin surface.
	ListAll(ctx context.Context) ([]entity.Review, error)
	Approve(ctx context.Context, reviewID string) (*entity.Review, error)
	Delete(ctx context.Context, reviewID string) error
}
