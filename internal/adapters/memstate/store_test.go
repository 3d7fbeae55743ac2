package memstate

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/online-shop/shopfront/internal/domain/auth"
	"github.com/online-shop/shopfront/internal/ports"
)

func TestStore_EmptyLoadReturnsNoIdentity(t *testing.T) {
	store := NewStore()

	_, err := store.Load(context.Background())

	assert.True(t, errors.Is(err, ports.ErrNoIdentity))
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	id := domainauth.Identity{Token: "tok", UserID: 7, Username: "alice", Role: domainauth.RoleCustomer}

	require.NoError(t, store.Save(ctx, id))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestStore_ClearRemovesAllMarkers(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domainauth.Identity{Token: "tok", UserID: 7}))

	require.NoError(t, store.Clear(ctx))

	_, err := store.Load(ctx)
	assert.True(t, errors.Is(err, ports.ErrNoIdentity))
}

func TestStore_ClearOnEmptyIsIdempotent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Save(ctx, domainauth.Identity{Token: "tok", UserID: 7, Username: "alice"})
		}()
		go func() {
			defer wg.Done()
			id, err := store.Load(ctx)
			if err == nil {
				// A loaded identity is always complete, never a partial write.
				assert.Equal(t, "tok", id.Token)
				assert.Equal(t, int64(7), id.UserID)
			}
		}()
	}
	wg.Wait()
}
