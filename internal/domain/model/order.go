package model

import "time"

// OrderStatus mirrors the backend's order lifecycle states. The state
// machine itself is owned by the backend; the client only displays and
// requests transitions.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderItem is a purchased line item with the price captured at order time.
type OrderItem struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a placed order as served by the backend.
type Order struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"userId"`
	Items           []OrderItem `json:"orderItems"`
	Status          OrderStatus `json:"status"`
	TotalPrice      float64     `json:"totalPrice"`
	OrderDate       time.Time   `json:"orderDate,omitzero"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	BillingAddress  string      `json:"billingAddress,omitempty"`
}

// CreateOrderItem names a product and quantity for order creation.
type CreateOrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderInput is the body for creating an order directly.
type CreateOrderInput struct {
	UserID          int64             `json:"userId"`
	Items           []CreateOrderItem `json:"orderItems"`
	ShippingAddress string            `json:"shippingAddress"`
	BillingAddress  string            `json:"billingAddress"`
}
