package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/online-shop/shopfront/internal/domain/model"
	apperrors "github.com/online-shop/shopfront/internal/errors"
	"github.com/online-shop/shopfront/internal/ports"
)

// OrderServiceOptions groups dependencies for OrderService.
type OrderServiceOptions struct {
	API           ports.OrderAPI // Required: backend order surface
	Session       sessionSource  // Required: current-user source
	Observability Observability  // Optional: logger and metrics
}

// OrderService places and reads orders on behalf of the current user. The
// order state machine is owned by the backend; this layer only issues
// requests and renders results.
type OrderService struct {
	api     ports.OrderAPI
	session sessionSource
	logger  *slog.Logger
}

// NewOrderService constructs a new OrderService.
func NewOrderService(opts OrderServiceOptions) *OrderService {
	if opts.API == nil {
		panic("OrderAPI is required")
	}
	if opts.Session == nil {
		panic("session source is required")
	}
	return &OrderService{
		api:     opts.API,
		session: opts.Session,
		logger:  opts.Observability.logger(),
	}
}

// Checkout places an order from the current user's cart contents.
func (s *OrderService) Checkout(ctx context.Context, shippingAddress, billingAddress string) (model.Order, error) {
	user := s.session.Current()
	if user == nil {
		return model.Order{}, apperrors.Unauthorized("checkout requires a logged-in user")
	}
	if shippingAddress == "" {
		return model.Order{}, apperrors.ValidationField("shippingAddress", "shipping address is required")
	}
	if billingAddress == "" {
		billingAddress = shippingAddress
	}

	order, err := s.api.CreateFromCart(ctx, user.ID, shippingAddress, billingAddress)
	if err != nil {
		return model.Order{}, fmt.Errorf("checkout from cart: %w", err)
	}
	s.logger.InfoContext(ctx, "order placed", "order_id", order.ID, "user_id", user.ID)
	return order, nil
}

// Create places an order from an explicit item list.
func (s *OrderService) Create(ctx context.Context, in model.CreateOrderInput) (model.Order, error) {
	if len(in.Items) == 0 {
		return model.Order{}, apperrors.ValidationField("orderItems", "order needs at least one item")
	}

	order, err := s.api.Create(ctx, in)
	if err != nil {
		return model.Order{}, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// Get fetches a single order.
func (s *OrderService) Get(ctx context.Context, id int64) (model.Order, error) {
	order, err := s.api.Get(ctx, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}
	return order, nil
}

// History fetches the current user's orders, newest first as served by the
// backend. Returns an empty list when no user is authenticated.
func (s *OrderService) History(ctx context.Context) ([]model.Order, error) {
	user := s.session.Current()
	if user == nil {
		return []model.Order{}, nil
	}

	orders, err := s.api.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list orders for user %d: %w", user.ID, err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// ListAll fetches every order. Admin only by backend convention.
func (s *OrderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.api.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus requests an order state transition. Admin only by backend
// convention.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	order, err := s.api.UpdateStatus(ctx, id, status)
	if err != nil {
		return model.Order{}, fmt.Errorf("update status for order %d: %w", id, err)
	}
	return order, nil
}

// Cancel cancels an order.
func (s *OrderService) Cancel(ctx context.Context, id int64) error {
	if err := s.api.Cancel(ctx, id); err != nil {
		return fmt.Errorf("cancel order %d: %w", id, err)
	}
	return nil
}
