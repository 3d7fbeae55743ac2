package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/online-shop/shopfront/internal/domain/model"
	"github.com/online-shop/shopfront/internal/ports"
)

var _ ports.CartAPI = (*Client)(nil)

// Get fetches the user's cart.
func (c *Client) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	var cart model.Cart
	path := fmt.Sprintf("/cart/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem adds a product to the cart and returns the full cart snapshot.
func (c *Client) AddItem(ctx context.Context, userID int64, in model.AddItemInput) (*model.Cart, error) {
	var cart model.Cart
	path := fmt.Sprintf("/cart/%d/add-item", userID)
	if err := c.do(ctx, http.MethodPost, path, nil, in, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateItem changes a line item's quantity and returns the full cart snapshot.
func (c *Client) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error) {
	var cart model.Cart
	path := fmt.Sprintf("/cart/%d/update-item/%d", userID, itemID)
	query := url.Values{"quantity": {strconv.Itoa(quantity)}}
	if err := c.do(ctx, http.MethodPut, path, query, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveItem removes a line item and returns the full cart snapshot.
func (c *Client) RemoveItem(ctx context.Context, userID, itemID int64) (*model.Cart, error) {
	var cart model.Cart
	path := fmt.Sprintf("/cart/%d/remove-item/%d", userID, itemID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Clear empties the cart. The backend returns no snapshot.
func (c *Client) Clear(ctx context.Context, userID int64) error {
	path := fmt.Sprintf("/cart/%d/clear", userID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
