package api

import (
	"context"
	"net/http"
	"net/url"

	"bijou/internal/domain/entity"
	"bijou/internal/domain/service"
)

type cartMirrorAPI struct {
	c *Client
}

// CartMirror returns the server-side cart mirror surface of the client.
func (c *Client) CartMirror() service.CartMirrorAPI {
	return cartMirrorAPI{c: c}
}

// AddItem mirrors a cart line server-side. The client cart remains the
// source of truth; this call exists for durability and analytics only.
func (a cartMirrorAPI) AddItem(ctx context.Context, line entity.CartLine) error {
	return a.c.do(ctx, http.MethodPost, "/cart/items", line, nil)
}

type wishlistAPI struct {
	c *Client
}

// Wishlist returns the wishlist surface of the client.
func (c *Client) Wishlist() service.WishlistAPI {
	return wishlistAPI{c: c}
}

// Fetch returns the full wishlist for the current identity.
func (a wishlistAPI) Fetch(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := a.c.do(ctx, http.MethodGet, "/wishlist", nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

// Toggle flips membership of one product in the server-side wishlist.
func (a wishlistAPI) Toggle(ctx context.Context, productID string) error {
	return a.c.do(ctx, http.MethodPost, "/wishlist/"+url.PathEscape(productID)+"/toggle", nil, nil)
}
