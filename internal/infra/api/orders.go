package api

import (
	"context"
	"net/http"
	"net/url"

	"bijou/internal/domain/entity"
	"bijou/internal/domain/service"
)

type orderAPI struct {
	c *Client
}

// Orders returns the order surface of the client.
func (c *Client) Orders() service.OrderAPI {
	return orderAPI{c: c}
}

// Create places an order.
func (a orderAPI) Create(ctx context.Context, draft service.OrderDraft) (*entity.Order, error) {
	var order entity.Order
	if err := a.c.do(ctx, http.MethodPost, "/orders", draft, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// ListMine lists the current identity's orders.
func (a orderAPI) ListMine(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := a.c.do(ctx, http.MethodGet, "/orders/mine", nil, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// ListAll lists every order, for the back office.
func (a orderAPI) ListAll(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := a.c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateStatus moves an order to the given fulfilment status.
func (a orderAPI) UpdateStatus(ctx context.Context, orderID string, status entity.OrderStatus) (*entity.Order, error) {
	payload := struct {
		Status entity.OrderStatus `json:"status"`
	}{Status: status}

	var order entity.Order
	if err := a.c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(orderID)+"/status", payload, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// Delete removes an order.
func (a orderAPI) Delete(ctx context.Context, orderID string) error {
	return a.c.do(ctx, http.MethodDelete, "/orders/"+url.PathEscape(orderID), nil, nil)
}
