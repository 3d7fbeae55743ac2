package model

import "time"

// Product is a catalog entry as served by the backend. Quantity is the
// backend's stock count; the client treats it as display data only.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	SKU         string    `json:"sku,omitempty"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// ProductQuery controls paging and filtering for product listings.
// Zero-valued filters are omitted from the request.
type ProductQuery struct {
	Page     int
	Size     int
	Category string
	Search   string
}

// ProductInput is the create/update payload for admin product CRUD.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	SKU         string  `json:"sku,omitempty"`
	Category    string  `json:"category,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// ProductPage is one page of a paginated product listing. Backends that
// return a flat array are normalized into a single page.
type ProductPage struct {
	Content       []Product `json:"content"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
	Number        int       `json:"number"`
	Size          int       `json:"size"`
}
