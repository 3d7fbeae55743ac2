package ports

import (
	"context"

	domainauth "github.com/online-shop/shopfront/internal/domain/auth"
)

// CredentialStore persists the identity markers that survive restarts.
// Save writes all markers as one unit; Clear removes them as one unit.
// A reader must never observe a partially written or partially cleared set.
type CredentialStore interface {
	Save(ctx context.Context, id domainauth.Identity) error

	// Load returns the stored markers, or ErrNoIdentity when none are set.
	Load(ctx context.Context) (domainauth.Identity, error)

	Clear(ctx context.Context) error
}

// SessionListener receives session-changed notifications. The session is
// nil when the user logged out, non-nil after a successful login or
// bootstrap restore.
type SessionListener func(ctx context.Context, sess *domainauth.Session)

// ErrNoIdentity is returned when no identity markers are persisted.
type noIdentityError struct{}

func (noIdentityError) Error() string { return "no stored identity" }

var ErrNoIdentity error = noIdentityError{}
