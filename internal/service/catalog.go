package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/online-shop/shopfront/internal/domain/model"
	apperrors "github.com/online-shop/shopfront/internal/errors"
	"github.com/online-shop/shopfront/internal/ports"
)

// CatalogServiceOptions groups dependencies for CatalogService.
type CatalogServiceOptions struct {
	API           ports.ProductAPI // Required: backend catalog surface
	Observability Observability    // Optional: logger and metrics
}

// CatalogService exposes the product catalog to views. It holds no local
// state; every call goes to the backend.
type CatalogService struct {
	api    ports.ProductAPI
	logger *slog.Logger
}

// NewCatalogService constructs a new CatalogService.
func NewCatalogService(opts CatalogServiceOptions) *CatalogService {
	if opts.API == nil {
		panic("ProductAPI is required")
	}
	return &CatalogService{
		api:    opts.API,
		logger: opts.Observability.logger(),
	}
}

// List fetches one page of the catalog.
func (s *CatalogService) List(ctx context.Context, q model.ProductQuery) (model.ProductPage, error) {
	page, err := s.api.List(ctx, q)
	if err != nil {
		return model.ProductPage{}, fmt.Errorf("list products: %w", err)
	}
	return page, nil
}

// Get fetches a single product.
func (s *CatalogService) Get(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.api.Get(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return product, nil
}

// Create adds a product to the catalog. Admin only by backend convention.
func (s *CatalogService) Create(ctx context.Context, in model.ProductInput) (model.Product, error) {
	if in.Name == "" {
		return model.Product{}, apperrors.ValidationField("name", "product name is required")
	}
	if in.Price < 0 {
		return model.Product{}, apperrors.ValidationField("price", "product price cannot be negative")
	}

	product, err := s.api.Create(ctx, in)
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Update replaces a product's catalog data. Admin only by backend convention.
func (s *CatalogService) Update(ctx context.Context, id int64, in model.ProductInput) (model.Product, error) {
	if in.Price < 0 {
		return model.Product{}, apperrors.ValidationField("price", "product price cannot be negative")
	}

	product, err := s.api.Update(ctx, id, in)
	if err != nil {
		return model.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}
	return product, nil
}

// Delete removes a product from the catalog. Admin only by backend convention.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// UpdateStock sets a product's stock count. The backend stays the stock
// authority; this only requests the new value.
func (s *CatalogService) UpdateStock(ctx context.Context, id int64, quantity int) (model.Product, error) {
	if quantity < 0 {
		return model.Product{}, apperrors.ValidationField("quantity", "stock quantity cannot be negative")
	}

	product, err := s.api.UpdateStock(ctx, id, quantity)
	if err != nil {
		return model.Product{}, fmt.Errorf("update stock for product %d: %w", id, err)
	}
	return product, nil
}
