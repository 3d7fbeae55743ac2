package memstate

// Package memstate provides an in-process credential store for tests and
// single-process embedding where restart survival is not needed.

import (
	"context"
	"sync"

	domainauth "github.com/online-shop/shopfront/internal/domain/auth"
	"github.com/online-shop/shopfront/internal/ports"
)

// Store holds the identity markers in memory behind a mutex. Save and
// Clear each swap the whole value, so readers never observe a partial set.
type Store struct {
	mu      sync.RWMutex
	id      domainauth.Identity
	present bool
}

var _ ports.CredentialStore = (*Store)(nil)

// NewStore creates an empty in-memory credential store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Save(_ context.Context, id domainauth.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	s.present = true
	return nil
}

func (s *Store) Load(_ context.Context) (domainauth.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return domainauth.Identity{}, ports.ErrNoIdentity
	}
	return s.id, nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = domainauth.Identity{}
	s.present = false
	return nil
}
