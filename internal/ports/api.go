package ports

// Package ports defines interfaces (hexagonal ports) for the remote backend
// and local persisted state. Implementations live in internal/api and
// internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/online-shop/shopfront/internal/domain/auth"
	"github.com/online-shop/shopfront/internal/domain/model"
)

// AuthAPI is the backend's authentication and profile surface.
type AuthAPI interface {
	// Register creates a new customer account. It never logs the caller in.
	Register(ctx context.Context, profile domainauth.Profile) error

	// RegisterAdmin creates a new admin account.
	RegisterAdmin(ctx context.Context, profile domainauth.Profile) error

	// Login exchanges credentials for the backend's identity response.
	Login(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResult, error)

	// GetProfile fetches the full account record for a user.
	GetProfile(ctx context.Context, userID int64) (domainauth.Account, error)

	// UpdateProfile applies a partial profile update and returns the
	// updated account as the backend sees it.
	UpdateProfile(ctx context.Context, userID int64, profile domainauth.Profile) (domainauth.Account, error)
}

// CartAPI is the backend's cart surface. Every mutation returns the full
// cart snapshot with server-computed totals.
type CartAPI interface {
	Get(ctx context.Context, userID int64) (*model.Cart, error)
	AddItem(ctx context.Context, userID int64, in model.AddItemInput) (*model.Cart, error)
	UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID int64) (*model.Cart, error)

	// Clear empties the cart. It returns no snapshot; callers decide how
	// to reconcile local state.
	Clear(ctx context.Context, userID int64) error
}

// ProductAPI is the backend's catalog surface, including the admin CRUD
// operations (admin only by backend convention, not enforced here).
type ProductAPI interface {
	List(ctx context.Context, q model.ProductQuery) (model.ProductPage, error)
	Get(ctx context.Context, id int64) (model.Product, error)
	Create(ctx context.Context, in model.ProductInput) (model.Product, error)
	Update(ctx context.Context, id int64, in model.ProductInput) (model.Product, error)
	Delete(ctx context.Context, id int64) error
	UpdateStock(ctx context.Context, id int64, quantity int) (model.Product, error)
}

// OrderAPI is the backend's order surface.
type OrderAPI interface {
	Create(ctx context.Context, in model.CreateOrderInput) (model.Order, error)
	CreateFromCart(ctx context.Context, userID int64, shippingAddress, billingAddress string) (model.Order, error)
	Get(ctx context.Context, id int64) (model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error)
	Cancel(ctx context.Context, id int64) error
}
