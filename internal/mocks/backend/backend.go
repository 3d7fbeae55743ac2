package backend

// Package backend contains simple hand-written test doubles for the remote
// API ports. These are lightweight and suitable for unit tests without
// codegen.

import (
	"context"
	"sync"

	domainauth "github.com/online-shop/shopfront/internal/domain/auth"
	"github.com/online-shop/shopfront/internal/domain/model"
	apperrors "github.com/online-shop/shopfront/internal/errors"
	"github.com/online-shop/shopfront/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthAPI    = (*AuthAPIStub)(nil)
	_ ports.CartAPI    = (*CartAPIStub)(nil)
	_ ports.CartAPI    = (*FakeCartBackend)(nil)
	_ ports.ProductAPI = (*ProductAPIStub)(nil)
	_ ports.OrderAPI   = (*OrderAPIStub)(nil)
)

// AuthAPIStub is a scriptable AuthAPI double. Unset funcs fall back to
// deterministic defaults.
type AuthAPIStub struct {
	RegisterFunc      func(ctx context.Context, profile domainauth.Profile) error
	RegisterAdminFunc func(ctx context.Context, profile domainauth.Profile) error
	LoginFunc         func(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResult, error)
	GetProfileFunc    func(ctx context.Context, userID int64) (domainauth.Account, error)
	UpdateProfileFunc func(ctx context.Context, userID int64, profile domainauth.Profile) (domainauth.Account, error)

	// DefaultResult is returned by Login when LoginFunc is unset.
	DefaultResult domainauth.LoginResult

	mu             sync.Mutex
	loginCalls     int
	registerCalls  int
	updateCalls    int
	lastUpdateUser int64
}

// NewAuthAPIStub creates an AuthAPIStub with a default successful login.
func NewAuthAPIStub() *AuthAPIStub {
	return &AuthAPIStub{
		DefaultResult: domainauth.LoginResult{
			Message:  "Login successful!",
			Token:    "tok-1",
			UserID:   7,
			Username: "alice",
			Role:     domainauth.RoleCustomer,
		},
	}
}

func (s *AuthAPIStub) Register(ctx context.Context, profile domainauth.Profile) error {
	s.mu.Lock()
	s.registerCalls++
	s.mu.Unlock()
	if s.RegisterFunc != nil {
		return s.RegisterFunc(ctx, profile)
	}
	return nil
}

func (s *AuthAPIStub) RegisterAdmin(ctx context.Context, profile domainauth.Profile) error {
	if s.RegisterAdminFunc != nil {
		return s.RegisterAdminFunc(ctx, profile)
	}
	return nil
}

func (s *AuthAPIStub) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResult, error) {
	s.mu.Lock()
	s.loginCalls++
	s.mu.Unlock()
	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, creds)
	}
	return s.DefaultResult, nil
}

func (s *AuthAPIStub) GetProfile(ctx context.Context, userID int64) (domainauth.Account, error) {
	if s.GetProfileFunc != nil {
		return s.GetProfileFunc(ctx, userID)
	}
	return domainauth.Account{ID: userID, Username: s.DefaultResult.Username}, nil
}

func (s *AuthAPIStub) UpdateProfile(ctx context.Context, userID int64, profile domainauth.Profile) (domainauth.Account, error) {
	s.mu.Lock()
	s.updateCalls++
	s.lastUpdateUser = userID
	s.mu.Unlock()
	if s.UpdateProfileFunc != nil {
		return s.UpdateProfileFunc(ctx, userID, profile)
	}
	return domainauth.Account{ID: userID}, nil
}

// LoginCalls reports how many times Login was invoked.
func (s *AuthAPIStub) LoginCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginCalls
}

// RegisterCalls reports how many times Register was invoked.
func (s *AuthAPIStub) RegisterCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registerCalls
}

// UpdateProfileCalls reports how many times UpdateProfile was invoked and
// the last user it targeted.
func (s *AuthAPIStub) UpdateProfileCalls() (int, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateCalls, s.lastUpdateUser
}

// CartAPIStub is a scriptable CartAPI double. Unset funcs return a
// not-found error, matching a backend with no cart yet.
type CartAPIStub struct {
	GetFunc        func(ctx context.Context, userID int64) (*model.Cart, error)
	AddItemFunc    func(ctx context.Context, userID int64, in model.AddItemInput) (*model.Cart, error)
	UpdateItemFunc func(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error)
	RemoveItemFunc func(ctx context.Context, userID, itemID int64) (*model.Cart, error)
	ClearFunc      func(ctx context.Context, userID int64) error

	mu       sync.Mutex
	getCalls int
}

func (s *CartAPIStub) Get(ctx context.Context, userID int64) (*model.Cart, error) {
	s.mu.Lock()
	s.getCalls++
	s.mu.Unlock()
	if s.GetFunc != nil {
		return s.GetFunc(ctx, userID)
	}
	return nil, apperrors.NotFoundf("cart for user %d not found", userID)
}

func (s *CartAPIStub) AddItem(ctx context.Context, userID int64, in model.AddItemInput) (*model.Cart, error) {
	if s.AddItemFunc != nil {
		return s.AddItemFunc(ctx, userID, in)
	}
	return nil, apperrors.NotFoundf("cart for user %d not found", userID)
}

func (s *CartAPIStub) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) (*model.Cart, error) {
	if s.UpdateItemFunc != nil {
		return s.UpdateItemFunc(ctx, userID, itemID, quantity)
	}
	return nil, apperrors.NotFoundf("cart item %d not found", itemID)
}

func (s *CartAPIStub) RemoveItem(ctx context.Context, userID, itemID int64) (*model.Cart, error) {
	if s.RemoveItemFunc != nil {
		return s.RemoveItemFunc(ctx, userID, itemID)
	}
	return nil, apperrors.NotFoundf("cart item %d not found", itemID)
}

func (s *CartAPIStub) Clear(ctx context.Context, userID int64) error {
	if s.ClearFunc != nil {
		return s.ClearFunc(ctx, userID)
	}
	return nil
}

// GetCalls reports how many times Get was invoked.
func (s *CartAPIStub) GetCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCalls
}

// FakeCartBackend is a stateful CartAPI double that behaves like the real
// backend: it owns the carts, assigns item IDs, and computes totals. Useful
// for multi-operation tests where the store must track server responses.
type FakeCartBackend struct {
	// Prices maps product id to unit price for subtotal computation.
	Prices map[int64]float64

	mu     sync.Mutex
	carts  map[int64]*model.Cart
	nextID int64
}

// NewFakeCartBackend creates an empty fake backend.
func NewFakeCartBackend(prices map[int64]float64) *FakeCartBackend {
	return &FakeCartBackend{
		Prices: prices,
		carts:  make(map[int64]*model.Cart),
		nextID: 1,
	}
}

func (f *FakeCartBackend) Get(_ context.Context, userID int64) (*model.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[userID]
	if !ok {
		return nil, apperrors.NotFoundf("cart for user %d not found", userID)
	}
	return snapshot(cart), nil
}

func (f *FakeCartBackend) AddItem(_ context.Context, userID int64, in model.AddItemInput) (*model.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart, ok := f.carts[userID]
	if !ok {
		cart = &model.Cart{ID: f.nextID, UserID: userID, Items: []model.CartItem{}}
		f.nextID++
		f.carts[userID] = cart
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == in.ProductID {
			cart.Items[i].Quantity += in.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, model.CartItem{
			ID:           f.nextID,
			ProductID:    in.ProductID,
			Quantity:     in.Quantity,
			ProductPrice: f.Prices[in.ProductID],
		})
		f.nextID++
	}

	f.recalc(cart)
	return snapshot(cart), nil
}

func (f *FakeCartBackend) UpdateItem(_ context.Context, userID, itemID int64, quantity int) (*model.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart, ok := f.carts[userID]
	if !ok {
		return nil, apperrors.NotFoundf("cart for user %d not found", userID)
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			f.recalc(cart)
			return snapshot(cart), nil
		}
	}
	return nil, apperrors.NotFoundf("cart item %d not found", itemID)
}

func (f *FakeCartBackend) RemoveItem(_ context.Context, userID, itemID int64) (*model.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart, ok := f.carts[userID]
	if !ok {
		return nil, apperrors.NotFoundf("cart for user %d not found", userID)
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			f.recalc(cart)
			return snapshot(cart), nil
		}
	}
	return nil, apperrors.NotFoundf("cart item %d not found", itemID)
}

func (f *FakeCartBackend) Clear(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if cart, ok := f.carts[userID]; ok {
		cart.Items = []model.CartItem{}
		f.recalc(cart)
	}
	return nil
}

func (f *FakeCartBackend) recalc(cart *model.Cart) {
	items, price := 0, 0.0
	for i := range cart.Items {
		cart.Items[i].Subtotal = float64(cart.Items[i].Quantity) * cart.Items[i].ProductPrice
		items += cart.Items[i].Quantity
		price += cart.Items[i].Subtotal
	}
	cart.TotalItems = items
	cart.TotalPrice = price
}

func snapshot(cart *model.Cart) *model.Cart {
	cp := *cart
	cp.Items = append([]model.CartItem(nil), cart.Items...)
	return &cp
}

// ProductAPIStub is a scriptable ProductAPI double. Unset funcs return
// zero values.
type ProductAPIStub struct {
	ListFunc        func(ctx context.Context, q model.ProductQuery) (model.ProductPage, error)
	GetFunc         func(ctx context.Context, id int64) (model.Product, error)
	CreateFunc      func(ctx context.Context, in model.ProductInput) (model.Product, error)
	UpdateFunc      func(ctx context.Context, id int64, in model.ProductInput) (model.Product, error)
	DeleteFunc      func(ctx context.Context, id int64) error
	UpdateStockFunc func(ctx context.Context, id int64, quantity int) (model.Product, error)
}

func (s *ProductAPIStub) List(ctx context.Context, q model.ProductQuery) (model.ProductPage, error) {
	if s.ListFunc != nil {
		return s.ListFunc(ctx, q)
	}
	return model.ProductPage{Content: []model.Product{}}, nil
}

func (s *ProductAPIStub) Get(ctx context.Context, id int64) (model.Product, error) {
	if s.GetFunc != nil {
		return s.GetFunc(ctx, id)
	}
	return model.Product{ID: id}, nil
}

func (s *ProductAPIStub) Create(ctx context.Context, in model.ProductInput) (model.Product, error) {
	if s.CreateFunc != nil {
		return s.CreateFunc(ctx, in)
	}
	return model.Product{ID: 1, Name: in.Name, Price: in.Price}, nil
}

func (s *ProductAPIStub) Update(ctx context.Context, id int64, in model.ProductInput) (model.Product, error) {
	if s.UpdateFunc != nil {
		return s.UpdateFunc(ctx, id, in)
	}
	return model.Product{ID: id, Name: in.Name, Price: in.Price}, nil
}

func (s *ProductAPIStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFunc != nil {
		return s.DeleteFunc(ctx, id)
	}
	return nil
}

func (s *ProductAPIStub) UpdateStock(ctx context.Context, id int64, quantity int) (model.Product, error) {
	if s.UpdateStockFunc != nil {
		return s.UpdateStockFunc(ctx, id, quantity)
	}
	return model.Product{ID: id, Quantity: quantity}, nil
}

// OrderAPIStub is a scriptable OrderAPI double. Unset funcs return zero
// values.
type OrderAPIStub struct {
	CreateFunc         func(ctx context.Context, in model.CreateOrderInput) (model.Order, error)
	CreateFromCartFunc func(ctx context.Context, userID int64, shippingAddress, billingAddress string) (model.Order, error)
	GetFunc            func(ctx context.Context, id int64) (model.Order, error)
	ListByUserFunc     func(ctx context.Context, userID int64) ([]model.Order, error)
	ListAllFunc        func(ctx context.Context) ([]model.Order, error)
	UpdateStatusFunc   func(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error)
	CancelFunc         func(ctx context.Context, id int64) error
}

func (s *OrderAPIStub) Create(ctx context.Context, in model.CreateOrderInput) (model.Order, error) {
	if s.CreateFunc != nil {
		return s.CreateFunc(ctx, in)
	}
	return model.Order{ID: 1, Status: model.OrderStatusPending}, nil
}

func (s *OrderAPIStub) CreateFromCart(ctx context.Context, userID int64, shippingAddress, billingAddress string) (model.Order, error) {
	if s.CreateFromCartFunc != nil {
		return s.CreateFromCartFunc(ctx, userID, shippingAddress, billingAddress)
	}
	return model.Order{ID: 1, UserID: userID, Status: model.OrderStatusPending}, nil
}

func (s *OrderAPIStub) Get(ctx context.Context, id int64) (model.Order, error) {
	if s.GetFunc != nil {
		return s.GetFunc(ctx, id)
	}
	return model.Order{ID: id}, nil
}

func (s *OrderAPIStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFunc != nil {
		return s.ListByUserFunc(ctx, userID)
	}
	return []model.Order{}, nil
}

func (s *OrderAPIStub) ListAll(ctx context.Context) ([]model.Order, error) {
	if s.ListAllFunc != nil {
		return s.ListAllFunc(ctx)
	}
	return []model.Order{}, nil
}

func (s *OrderAPIStub) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	if s.UpdateStatusFunc != nil {
		return s.UpdateStatusFunc(ctx, id, status)
	}
	return model.Order{ID: id, Status: status}, nil
}

func (s *OrderAPIStub) Cancel(ctx context.Context, id int64) error {
	if s.CancelFunc != nil {
		return s.CancelFunc(ctx, id)
	}
	return nil
}
