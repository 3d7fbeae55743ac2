package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of transport/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence; values match what the backend issues.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// Identity is the set of persisted restart markers for a logged-in user.
// All four fields are written together on login and cleared together on
// logout; their presence is the sole basis for session bootstrap.
type Identity struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Valid reports whether the markers are sufficient to restore a session.
// Both a token and a user id must be present.
func (i Identity) Valid() bool {
	return i.Token != "" && i.UserID != 0
}

// Session is the in-memory record for the authenticated user.
// The login response carries only id, username, and role; the remaining
// fields are defaulted at construction time.
type Session struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin returns true if the session role is admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Credentials carries a username/password pair for login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Profile is the account payload for registration and profile updates.
// Zero-valued optional fields are omitted from the wire body so partial
// updates stay partial.
type Profile struct {
	Username        string `json:"username,omitempty"`
	Password        string `json:"password,omitempty"`
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	ShippingAddress string `json:"shippingAddress,omitempty"`
	BillingAddress  string `json:"billingAddress,omitempty"`
	Role            Role   `json:"role,omitempty"`
}

// Account is the full user record as served by the backend's profile
// endpoints. The session layer keeps only the Session subset of it.
type Account struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	ShippingAddress string    `json:"shippingAddress,omitempty"`
	BillingAddress  string    `json:"billingAddress,omitempty"`
	Role            Role      `json:"role"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt,omitzero"`
	UpdatedAt       time.Time `json:"updatedAt,omitzero"`
}

// LoginResult is the backend's successful login response.
// Token is optional; some deployments rely on session affinity instead.
type LoginResult struct {
	Message  string `json:"message,omitempty"`
	Token    string `json:"token,omitempty"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
