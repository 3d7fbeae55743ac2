package redisstate

// Package redisstate provides a Redis-backed credential store so the
// persisted identity markers survive process restarts.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/online-shop/shopfront/internal/domain/auth"
	"github.com/online-shop/shopfront/internal/ports"
)

// Store keeps the four identity markers (token, user id, username, role)
// as a single JSON value under one key. One SET writes them together and
// one DEL clears them together, so a concurrent reader never sees a
// partial set.
type Store struct {
	client redis.UniversalClient
	key    string
}

var _ ports.CredentialStore = (*Store)(nil)

// NewStore creates a Redis-backed credential store.
func NewStore(client redis.UniversalClient) *Store {
	return &Store{
		client: client,
		key:    "shopfront:identity",
	}
}

// NewStoreWithKey creates a credential store under a custom key.
func NewStoreWithKey(client redis.UniversalClient, key string) *Store {
	return &Store{
		client: client,
		key:    key,
	}
}

func (s *Store) Save(ctx context.Context, id domainauth.Identity) error {
	if id.UserID == 0 {
		return errors.New("identity user id cannot be empty")
	}

	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *Store) Load(ctx context.Context) (domainauth.Identity, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Identity{}, ports.ErrNoIdentity
		}
		return domainauth.Identity{}, fmt.Errorf("redis get: %w", err)
	}

	var id domainauth.Identity
	if unmarshalErr := json.Unmarshal([]byte(data), &id); unmarshalErr != nil {
		return domainauth.Identity{}, fmt.Errorf("unmarshal identity: %w", unmarshalErr)
	}

	return id, nil
}

func (s *Store) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
