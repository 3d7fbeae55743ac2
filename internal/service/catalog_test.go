package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/online-shop/shopfront/internal/domain/model"
	apperrors "github.com/online-shop/shopfront/internal/errors"
	"github.com/online-shop/shopfront/internal/mocks/backend"
)

func TestNewCatalogService_RequiresAPI(t *testing.T) {
	assert.Panics(t, func() {
		NewCatalogService(CatalogServiceOptions{})
	})
}

func TestCatalogService_List(t *testing.T) {
	var gotQuery model.ProductQuery
	api := &backend.ProductAPIStub{
		ListFunc: func(_ context.Context, q model.ProductQuery) (model.ProductPage, error) {
			gotQuery = q
			return model.ProductPage{
				Content:       []model.Product{{ID: 1, Name: "Mug"}},
				TotalElements: 1,
				TotalPages:    1,
			}, nil
		},
	}
	service := NewCatalogService(CatalogServiceOptions{API: api})

	page, err := service.List(context.Background(), model.ProductQuery{Page: 1, Category: "kitchen"})

	require.NoError(t, err)
	assert.Equal(t, model.ProductQuery{Page: 1, Category: "kitchen"}, gotQuery)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Mug", page.Content[0].Name)
}

func TestCatalogService_List_WrapsError(t *testing.T) {
	api := &backend.ProductAPIStub{
		ListFunc: func(context.Context, model.ProductQuery) (model.ProductPage, error) {
			return model.ProductPage{}, apperrors.API("backend down")
		},
	}
	service := NewCatalogService(CatalogServiceOptions{API: api})

	_, err := service.List(context.Background(), model.ProductQuery{})

	require.Error(t, err)
	assert.True(t, apperrors.IsAPI(err))
	assert.Contains(t, err.Error(), "list products")
}

func TestCatalogService_Create_Validation(t *testing.T) {
	service := NewCatalogService(CatalogServiceOptions{API: &backend.ProductAPIStub{
		CreateFunc: func(context.Context, model.ProductInput) (model.Product, error) {
			t.Fatal("backend must not be called for invalid input")
			return model.Product{}, nil
		},
	}})
	ctx := context.Background()

	_, err := service.Create(ctx, model.ProductInput{Price: 9.99})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = service.Create(ctx, model.ProductInput{Name: "Mug", Price: -1})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCatalogService_Create_PassesInput(t *testing.T) {
	var gotInput model.ProductInput
	api := &backend.ProductAPIStub{
		CreateFunc: func(_ context.Context, in model.ProductInput) (model.Product, error) {
			gotInput = in
			return model.Product{ID: 5, Name: in.Name, Price: in.Price}, nil
		},
	}
	service := NewCatalogService(CatalogServiceOptions{API: api})

	product, err := service.Create(context.Background(), model.ProductInput{Name: "Mug", Price: 9.99, Quantity: 3})

	require.NoError(t, err)
	assert.Equal(t, "Mug", gotInput.Name)
	assert.Equal(t, int64(5), product.ID)
}

func TestCatalogService_Update_RejectsNegativePrice(t *testing.T) {
	service := NewCatalogService(CatalogServiceOptions{API: &backend.ProductAPIStub{}})

	_, err := service.Update(context.Background(), 5, model.ProductInput{Name: "Mug", Price: -1})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCatalogService_UpdateStock(t *testing.T) {
	service := NewCatalogService(CatalogServiceOptions{API: &backend.ProductAPIStub{}})
	ctx := context.Background()

	_, err := service.UpdateStock(ctx, 5, -1)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	product, err := service.UpdateStock(ctx, 5, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, product.Quantity)
}

func TestCatalogService_Delete_WrapsError(t *testing.T) {
	api := &backend.ProductAPIStub{
		DeleteFunc: func(context.Context, int64) error {
			return apperrors.NotFoundf("product %d not found", 5)
		},
	}
	service := NewCatalogService(CatalogServiceOptions{API: api})

	err := service.Delete(context.Background(), 5)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
