package api

import (
	"context"
	"net/http"
	"net/url"

	"bijou/internal/domain/entity"
	"bijou/internal/domain/service"
)

type catalogAPI struct {
	c *Client
}

// Catalog returns the catalog surface of the client.
func (c *Client) Catalog() service.CatalogAPI {
	return catalogAPI{c: c}
}

// ListProducts lists the catalog, narrowed by the filter.
func (a catalogAPI) ListProducts(ctx context.Context, filter service.ProductFilter) ([]entity.Product, error) {
	query := url.Values{}
	if filter.CategoryID != "" {
		query.Set("category", filter.CategoryID)
	}
	if filter.OnSaleOnly {
		query.Set("onSale", "true")
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	path := "/products"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var products []entity.Product
	if err := a.c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

// GetProduct reads one product by ID.
func (a catalogAPI) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	var product entity.Product
	if err := a.c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(productID), nil, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// ListCategories lists the catalog's categories.
func (a catalogAPI) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	if err := a.c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}
