package usecase

import (
	"context"

	"bijou/internal/domain/entity"
	"bijou/internal/domain/service"
)

// CatalogUsecase exposes the storefront catalog to views. Reads are
// identity-independent and pass through to the remote API.
type CatalogUsecase interface {
	ListProducts(ctx context.Context, filter service.ProductFilter) ([]entity.Product, error)
	GetProduct(ctx context.Context, productID string) (*entity.Product, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
}
