package api

import (
	"context"
	"net/http"
	"net/url"

	"bijou/internal/domain/entity"
	"bijou/internal/domain/service"
)

type reviewAPI struct {
	c *Client
}

// Reviews returns the review surface of the client.
func (c *Client) Reviews() service.ReviewAPI {
	return reviewAPI{c: c}
}

// ApprovedForProduct lists the approved reviews for one product.
func (a reviewAPI) ApprovedForProduct(ctx context.Context, productID string) ([]entity.Review, error) {
	var reviews []entity.Review
	if err := a.c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(productID)+"/reviews", nil, &reviews); err != nil {
		return nil, err
	}

	return reviews, nil
}

// Create submits a review for moderation.
func (a reviewAPI) Create(ctx context.Context, draft service.ReviewDraft) (*entity.Review, error) {
	var review entity.Review
	if err := a.c.do(ctx, http.MethodPost, "/reviews", draft, &review); err != nil {
		return nil, err
	}

	return &review, nil
}

// Delete removes a review.
func (a reviewAPI) Delete(ctx context.Context, reviewID string) error {
	return a.c.do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(reviewID), nil, nil)
}

// ListAll returns the full moderation queue.
func (a reviewAPI) ListAll(ctx context.Context) ([]entity.Review, error) {
	var reviews []entity.Review
	if err := a.c.do(ctx, http.MethodGet, "/reviews", nil, &reviews); err != nil {
		return nil, err
	}

	return reviews, nil
}

// Approve publishes a pending review.
func (a reviewAPI) Approve(ctx context.Context, reviewID string) (*entity.Review, error) {
	var review entity.Review
	if err := a.c.do(ctx, http.MethodPost, "/reviews/"+url.PathEscape(reviewID)+"/approve", nil, &review); err != nil {
		return nil, err
	}

	return &review, nil
}
