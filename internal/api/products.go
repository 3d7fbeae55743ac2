package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	apperrors "github.com/online-shop/shopfront/internal/errors"
	"github.com/online-shop/shopfront/internal/domain/model"
	"github.com/online-shop/shopfront/internal/ports"
)

var _ ports.ProductAPI = ProductsClient{}

// ProductsClient is the catalog-surface view of Client. Get and Create live
// here because their names collide with the cart and order surfaces.
type ProductsClient struct{ *Client }

// Products returns the catalog-surface view of the client.
func (c *Client) Products() ProductsClient { return ProductsClient{c} }

// List fetches a page of the catalog. The backend returns either a Spring
// style page envelope or a flat array; both are normalized to a ProductPage.
func (c *Client) List(ctx context.Context, q model.ProductQuery) (model.ProductPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	size := q.Size
	if size <= 0 {
		size = 10
	}
	query.Set("size", strconv.Itoa(size))
	if q.Category != "" {
		query.Set("category", q.Category)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, &raw); err != nil {
		return model.ProductPage{}, err
	}
	return normalizeProductPage(raw, q.Page, size)
}

// normalizeProductPage accepts either a page envelope or a flat array.
func normalizeProductPage(raw json.RawMessage, page, size int) (model.ProductPage, error) {
	var flat []model.Product
	if err := json.Unmarshal(raw, &flat); err == nil {
		return model.ProductPage{
			Content:       flat,
			TotalElements: int64(len(flat)),
			TotalPages:    1,
			Number:        page,
			Size:          size,
		}, nil
	}

	var paged model.ProductPage
	if err := json.Unmarshal(raw, &paged); err != nil {
		return model.ProductPage{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode product listing")
	}
	if paged.Content == nil {
		paged.Content = []model.Product{}
	}
	return paged, nil
}

// Get fetches a single product.
func (c ProductsClient) Get(ctx context.Context, id int64) (model.Product, error) {
	var product model.Product
	path := fmt.Sprintf("/products/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &product); err != nil {
		return model.Product{}, err
	}
	return product, nil
}

// Create adds a product to the catalog.
func (c ProductsClient) Create(ctx context.Context, in model.ProductInput) (model.Product, error) {
	var product model.Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, in, &product); err != nil {
		return model.Product{}, err
	}
	return product, nil
}

// Update replaces a product's catalog data.
func (c *Client) Update(ctx context.Context, id int64, in model.ProductInput) (model.Product, error) {
	var product model.Product
	path := fmt.Sprintf("/products/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, in, &product); err != nil {
		return model.Product{}, err
	}
	return product, nil
}

// Delete removes a product from the catalog.
func (c *Client) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/products/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// UpdateStock sets a product's stock quantity.
func (c *Client) UpdateStock(ctx context.Context, id int64, quantity int) (model.Product, error) {
	var product model.Product
	path := fmt.Sprintf("/products/%d/stock", id)
	query := url.Values{"quantity": {strconv.Itoa(quantity)}}
	if err := c.do(ctx, http.MethodPut, path, query, nil, &product); err != nil {
		return model.Product{}, err
	}
	return product, nil
}
