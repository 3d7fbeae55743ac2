package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/online-shop/shopfront/internal/domain/model"
	"github.com/online-shop/shopfront/internal/ports"
)

var _ ports.OrderAPI = OrdersClient{}

// OrdersClient is the order-surface view of Client. Get and Create live
// here because their names collide with the cart and product surfaces.
type OrdersClient struct{ *Client }

// Orders returns the order-surface view of the client.
func (c *Client) Orders() OrdersClient { return OrdersClient{c} }

// Create places an order from an explicit item list.
func (c OrdersClient) Create(ctx context.Context, in model.CreateOrderInput) (model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, in, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// CreateFromCart places an order from the user's current cart contents.
func (c *Client) CreateFromCart(ctx context.Context, userID int64, shippingAddress, billingAddress string) (model.Order, error) {
	var order model.Order
	path := fmt.Sprintf("/orders/from-cart/%d", userID)
	query := url.Values{
		"shippingAddress": {shippingAddress},
		"billingAddress":  {billingAddress},
	}
	if err := c.do(ctx, http.MethodPost, path, query, nil, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// Get fetches a single order.
func (c OrdersClient) Get(ctx context.Context, id int64) (model.Order, error) {
	var order model.Order
	path := fmt.Sprintf("/orders/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// ListByUser fetches all orders placed by one user.
func (c *Client) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order
	path := fmt.Sprintf("/orders/user/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAll fetches every order. Admin only by backend convention.
func (c *Client) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus requests an order state transition. The backend owns the
// state machine and rejects invalid transitions.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	var order model.Order
	path := fmt.Sprintf("/orders/%d/status", id)
	query := url.Values{"status": {string(status)}}
	if err := c.do(ctx, http.MethodPut, path, query, nil, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// Cancel cancels an order.
func (c *Client) Cancel(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/orders/%d/cancel", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
