package impl

import (
	"context"
	"log/slog"

	"bijou/internal/appctx"
	"bijou/internal/domain/entity"
	"bijou/internal/domain/service"
	"bijou/internal/usecase"

	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	api    service.CatalogAPI
	logger *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(api service.CatalogAPI, logger *slog.Logger) usecase.CatalogUsecase {
	return &catalogService{
		api:    api,
		logger: logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return appctx.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts lists the catalog, optionally narrowed by category, sale
// flag or search text.
func (srv *catalogService) ListProducts(ctx context.Context, filter service.ProductFilter) ([]entity.Product, error) {
	products, err := srv.api.ListProducts(ctx, filter)
	if err != nil {
		srv.log(ctx).Error("Failed to list products", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProduct reads one product by ID.
func (srv *catalogService) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := srv.api.GetProduct(ctx, productID)
	if err != nil {
		srv.log(ctx).Error("Failed to get product", slog.String("product_id", productID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to get product")
	}

	return product, nil
}

// ListCategories lists the catalog's categories.
func (srv *catalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := srv.api.ListCategories(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list categories", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}
