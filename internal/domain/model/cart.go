package model

// CartItem is a single line item inside a cart. Identity is the
// server-assigned ID; ProductID is a back-reference, not an ownership
// relation. Product display fields and subtotal are denormalized by the
// backend and may be absent.
type CartItem struct {
	ID              int64   `json:"id"`
	ProductID       int64   `json:"productId"`
	Quantity        int     `json:"quantity"`
	ProductName     string  `json:"productName,omitempty"`
	ProductPrice    float64 `json:"productPrice,omitempty"`
	ProductImageURL string  `json:"productImageUrl,omitempty"`
	Subtotal        float64 `json:"subtotal,omitempty"`
}

// Cart is the server-authoritative collection of line items for one user.
// TotalPrice and TotalItems are computed by the backend and taken verbatim
// from every response; the client never recomputes them.
type Cart struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userId"`
	Items      []CartItem `json:"cartItems"`
	TotalPrice float64    `json:"totalPrice"`
	TotalItems int        `json:"totalItems"`
}

// EmptyCart returns the well-defined empty cart shape used as the fail-soft
// substitute when a fetch fails and as the local result of a clear.
func EmptyCart(userID int64) *Cart {
	return &Cart{
		ID:         0,
		UserID:     userID,
		Items:      []CartItem{},
		TotalPrice: 0,
		TotalItems: 0,
	}
}

// ItemCount returns the server-computed item total, 0 for a nil cart.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	return c.TotalItems
}

// Total returns the server-computed price total, 0 for a nil cart.
func (c *Cart) Total() float64 {
	if c == nil {
		return 0
	}
	return c.TotalPrice
}

// AddItemInput is the body for the add-item call.
type AddItemInput struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
