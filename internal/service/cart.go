package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	domainauth "github.com/online-shop/shopfront/internal/domain/auth"
	"github.com/online-shop/shopfront/internal/domain/model"
	"github.com/online-shop/shopfront/internal/observability/statsd"
	"github.com/online-shop/shopfront/internal/ports"
)

// sessionSource is the slice of SessionService the cart store depends on.
type sessionSource interface {
	Current() *domainauth.Session
	Subscribe(ports.SessionListener)
}

// CartServiceOptions groups dependencies for CartService.
type CartServiceOptions struct {
	API           ports.CartAPI // Required: backend cart surface
	Session       sessionSource // Required: current-user source and change feed
	Observability Observability // Optional: logger and metrics
}

// CartService keeps a server-backed cart in sync with local mutation
// intents, scoped to the current session.
//
// The cart is server-authoritative: every successful mutation replaces the
// whole snapshot with the backend's response and totals are never
// recomputed locally. Each applied snapshot carries a monotonic request
// token; a response superseded by a later request is discarded instead of
// applied out of order.
type CartService struct {
	api     ports.CartAPI
	session sessionSource
	logger  *slog.Logger
	metrics statsd.Sink

	mu      sync.RWMutex
	cart    *model.Cart
	loading bool
	seq     uint64

	loads singleflight.Group
}

// NewCartService constructs a CartService and subscribes it to session
// changes: a login or restore triggers one cart fetch for that user, a
// logout discards the cart locally without a network call.
func NewCartService(opts CartServiceOptions) *CartService {
	if opts.API == nil {
		panic("CartAPI is required")
	}
	if opts.Session == nil {
		panic("session source is required")
	}

	s := &CartService{
		api:     opts.API,
		session: opts.Session,
		logger:  opts.Observability.logger(),
		metrics: opts.Observability.Metrics,
	}
	opts.Session.Subscribe(s.onSessionChange)
	return s
}

// onSessionChange reacts to the session feed. The previous user's cart is
// always discarded first, so a user switch never leaves the old cart
// visible while the new one loads.
func (s *CartService) onSessionChange(ctx context.Context, sess *domainauth.Session) {
	s.mu.Lock()
	s.cart = nil
	s.seq++ // invalidate any in-flight response for the previous user
	s.mu.Unlock()

	if sess == nil {
		return
	}
	if err := s.LoadCart(ctx); err != nil {
		// LoadCart is fail-soft; this only fires when there is no user,
		// which cannot happen here.
		s.logger.WarnContext(ctx, "reload cart after session change", "error", err)
	}
}

// LoadCart fetches the current user's cart. Concurrent loads for the same
// user collapse into one request. A fetch failure substitutes the
// well-defined empty cart instead of leaving state undefined.
func (s *CartService) LoadCart(ctx context.Context) error {
	user := s.session.Current()
	if user == nil {
		return nil
	}

	token := s.begin()
	v, err, _ := s.loads.Do(strconv.FormatInt(user.ID, 10), func() (any, error) {
		return s.api.Get(ctx, user.ID)
	})

	snapshot, _ := v.(*model.Cart)
	if err != nil {
		s.logger.WarnContext(ctx, "load cart", "user_id", user.ID, "error", err)
		s.count("cart.load.error")
		snapshot = model.EmptyCart(user.ID)
	}

	s.finish(token, snapshot, true)
	return nil
}

// AddToCart adds a product to the cart. A silent no-op when no user is
// authenticated.
func (s *CartService) AddToCart(ctx context.Context, product model.Product, quantity int) error {
	user := s.session.Current()
	if user == nil {
		return nil
	}

	token := s.begin()
	snapshot, err := s.api.AddItem(ctx, user.ID, model.AddItemInput{
		ProductID: product.ID,
		Quantity:  quantity,
	})
	if err != nil {
		s.finish(token, nil, false)
		s.count("cart.add.error")
		return fmt.Errorf("add item to cart: %w", err)
	}

	s.finish(token, snapshot, true)
	s.count("cart.add.ok")
	return nil
}

// RemoveFromCart removes a line item. A silent no-op when no user is
// authenticated.
func (s *CartService) RemoveFromCart(ctx context.Context, itemID int64) error {
	user := s.session.Current()
	if user == nil {
		return nil
	}

	token := s.begin()
	snapshot, err := s.api.RemoveItem(ctx, user.ID, itemID)
	if err != nil {
		s.finish(token, nil, false)
		s.count("cart.remove.error")
		return fmt.Errorf("remove item from cart: %w", err)
	}

	s.finish(token, snapshot, true)
	s.count("cart.remove.ok")
	return nil
}

// UpdateQuantity changes a line item's quantity. A silent no-op when no
// user is authenticated.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID int64, quantity int) error {
	user := s.session.Current()
	if user == nil {
		return nil
	}

	token := s.begin()
	snapshot, err := s.api.UpdateItem(ctx, user.ID, itemID, quantity)
	if err != nil {
		s.finish(token, nil, false)
		s.count("cart.update.error")
		return fmt.Errorf("update item quantity: %w", err)
	}

	s.finish(token, snapshot, true)
	s.count("cart.update.ok")
	return nil
}

// ClearCart empties the cart. On success the empty cart shape is
// substituted locally without a re-fetch. On failure the true server state
// is unknown, so the cart is re-fetched before the error is propagated.
func (s *CartService) ClearCart(ctx context.Context) error {
	user := s.session.Current()
	if user == nil {
		return nil
	}

	token := s.begin()
	if err := s.api.Clear(ctx, user.ID); err != nil {
		s.finish(token, nil, false)
		s.count("cart.clear.error")
		if loadErr := s.LoadCart(ctx); loadErr != nil {
			s.logger.WarnContext(ctx, "reload cart after failed clear", "error", loadErr)
		}
		return fmt.Errorf("clear cart: %w", err)
	}

	s.finish(token, model.EmptyCart(user.ID), true)
	s.count("cart.clear.ok")
	return nil
}

// Cart returns a copy of the current cart snapshot, or nil when absent.
func (s *CartService) Cart() *model.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return nil
	}
	cart := *s.cart
	cart.Items = make([]model.CartItem, len(s.cart.Items))
	copy(cart.Items, s.cart.Items)
	return &cart
}

// CartItemCount returns the server-computed item total, 0 when no cart is
// loaded. It never fails.
func (s *CartService) CartItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.ItemCount()
}

// CartTotal returns the server-computed price total, 0 when no cart is
// loaded. It never fails.
func (s *CartService) CartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Total()
}

// Loading reports whether a cart call is in flight.
func (s *CartService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// begin marks a new request as the current one and returns its token.
func (s *CartService) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.loading = true
	return s.seq
}

// finish resets the loading flag and, when apply is set, installs the
// snapshot unless a newer request has superseded this one.
func (s *CartService) finish(token uint64, snapshot *model.Cart, apply bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if apply && token == s.seq {
		s.cart = snapshot
	}
}

func (s *CartService) count(name string) {
	if s.metrics != nil {
		s.metrics.Count(name, 1, nil)
	}
}
