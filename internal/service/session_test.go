package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/online-shop/shopfront/internal/adapters/memstate"
	domainauth "github.com/online-shop/shopfront/internal/domain/auth"
	"github.com/online-shop/shopfront/internal/mocks"
	"github.com/online-shop/shopfront/internal/mocks/backend"
	"github.com/online-shop/shopfront/internal/ports"
)

func newSessionService(api ports.AuthAPI, creds ports.CredentialStore) *SessionService {
	return NewSessionService(SessionServiceOptions{
		API:         api,
		Credentials: creds,
	})
}

func TestNewSessionService(t *testing.T) {
	api := backend.NewAuthAPIStub()
	creds := memstate.NewStore()

	service := newSessionService(api, creds)

	assert.NotNil(t, service)
	assert.True(t, service.Loading())
	assert.False(t, service.IsAuthenticated())
	assert.Nil(t, service.Current())
}

func TestSessionService_Bootstrap_NoMarkers(t *testing.T) {
	api := backend.NewAuthAPIStub()
	service := newSessionService(api, memstate.NewStore())

	service.Bootstrap(context.Background())

	assert.False(t, service.Loading())
	assert.False(t, service.IsAuthenticated())
	assert.Nil(t, service.Current())
	// Bootstrap never talks to the backend.
	assert.Equal(t, 0, api.LoginCalls())
}

func TestSessionService_Bootstrap_RestoresFromMarkers(t *testing.T) {
	creds := memstate.NewStore()
	require.NoError(t, creds.Save(context.Background(), domainauth.Identity{
		Token:    "tok-7",
		UserID:   7,
		Username: "alice",
		Role:     domainauth.RoleCustomer,
	}))

	service := newSessionService(backend.NewAuthAPIStub(), creds)
	service.Bootstrap(context.Background())

	require.True(t, service.IsAuthenticated())
	sess := service.Current()
	require.NotNil(t, sess)
	assert.Equal(t, int64(7), sess.ID)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, domainauth.RoleCustomer, sess.Role)
	assert.Empty(t, sess.Email)
	assert.True(t, sess.IsActive)
	assert.False(t, service.Loading())
}

func TestSessionService_Bootstrap_IgnoresPartialMarkers(t *testing.T) {
	creds := memstate.NewStore()
	// User id without a token is not enough to restore.
	require.NoError(t, creds.Save(context.Background(), domainauth.Identity{
		UserID:   7,
		Username: "alice",
	}))

	service := newSessionService(backend.NewAuthAPIStub(), creds)
	service.Bootstrap(context.Background())

	assert.False(t, service.IsAuthenticated())
	assert.False(t, service.Loading())
}

func TestSessionService_Bootstrap_RunsOnce(t *testing.T) {
	creds := memstate.NewStore()
	service := newSessionService(backend.NewAuthAPIStub(), creds)

	service.Bootstrap(context.Background())
	require.False(t, service.Loading())

	// Markers appearing later must not resurrect a session through a
	// second bootstrap.
	require.NoError(t, creds.Save(context.Background(), domainauth.Identity{
		Token: "tok-7", UserID: 7,
	}))
	service.Bootstrap(context.Background())

	assert.False(t, service.IsAuthenticated())
}

func TestSessionService_Login_Success(t *testing.T) {
	api := backend.NewAuthAPIStub()
	api.LoginFunc = func(_ context.Context, creds domainauth.Credentials) (domainauth.LoginResult, error) {
		require.Equal(t, "alice", creds.Username)
		require.Equal(t, "secret", creds.Password)
		return domainauth.LoginResult{
			Token:    "tok-7",
			UserID:   7,
			Username: "alice",
			Role:     domainauth.RoleCustomer,
		}, nil
	}
	creds := memstate.NewStore()
	service := newSessionService(api, creds)
	service.Bootstrap(context.Background())

	err := service.Login(context.Background(), domainauth.Credentials{Username: "alice", Password: "secret"})

	require.NoError(t, err)
	require.True(t, service.IsAuthenticated())
	sess := service.Current()
	assert.Equal(t, int64(7), sess.ID)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, domainauth.RoleCustomer, sess.Role)
	assert.Empty(t, sess.Email)
	assert.True(t, sess.IsActive)
	assert.False(t, sess.CreatedAt.IsZero())

	stored, err := creds.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domainauth.Identity{
		Token:    "tok-7",
		UserID:   7,
		Username: "alice",
		Role:     domainauth.RoleCustomer,
	}, stored)
}

func TestSessionService_Login_FailureLeavesStateUnchanged(t *testing.T) {
	api := backend.NewAuthAPIStub()
	api.LoginFunc = func(context.Context, domainauth.Credentials) (domainauth.LoginResult, error) {
		return domainauth.LoginResult{}, errors.New("Invalid credentials!")
	}
	creds := memstate.NewStore()
	service := newSessionService(api, creds)
	service.Bootstrap(context.Background())

	err := service.Login(context.Background(), domainauth.Credentials{Username: "alice", Password: "wrong"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials!")
	assert.False(t, service.IsAuthenticated())

	_, loadErr := creds.Load(context.Background())
	assert.ErrorIs(t, loadErr, ports.ErrNoIdentity)
}

func TestSessionService_Login_PersistFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCredentialStore(ctrl)
	store.EXPECT().Load(gomock.Any()).Return(domainauth.Identity{}, ports.ErrNoIdentity)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	service := newSessionService(backend.NewAuthAPIStub(), store)
	service.Bootstrap(context.Background())

	err := service.Login(context.Background(), domainauth.Credentials{Username: "alice", Password: "secret"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist identity")
	// A login that could not be persisted takes no effect at all.
	assert.False(t, service.IsAuthenticated())
}

func TestSessionService_Register_DoesNotMutateSession(t *testing.T) {
	api := backend.NewAuthAPIStub()
	service := newSessionService(api, memstate.NewStore())
	service.Bootstrap(context.Background())

	err := service.Register(context.Background(), domainauth.Profile{
		Username: "bob",
		Password: "hunter2",
		Email:    "bob@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, api.RegisterCalls())
	assert.False(t, service.IsAuthenticated())
}

func TestSessionService_Logout_ClearsEverythingTogether(t *testing.T) {
	creds := memstate.NewStore()
	service := newSessionService(backend.NewAuthAPIStub(), creds)
	service.Bootstrap(context.Background())
	require.NoError(t, service.Login(context.Background(), domainauth.Credentials{Username: "alice", Password: "secret"}))

	require.NoError(t, service.Logout(context.Background()))

	assert.False(t, service.IsAuthenticated())
	assert.Nil(t, service.Current())
	_, err := creds.Load(context.Background())
	assert.ErrorIs(t, err, ports.ErrNoIdentity)
}

func TestSessionService_Logout_ClearFailureKeepsSessionIntact(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCredentialStore(ctrl)
	store.EXPECT().Load(gomock.Any()).Return(domainauth.Identity{}, ports.ErrNoIdentity)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	store.EXPECT().Clear(gomock.Any()).Return(errors.New("redis down"))

	service := newSessionService(backend.NewAuthAPIStub(), store)
	service.Bootstrap(context.Background())
	require.NoError(t, service.Login(context.Background(), domainauth.Credentials{Username: "alice", Password: "secret"}))

	err := service.Logout(context.Background())

	require.Error(t, err)
	// No partial logout: the session stays fully visible.
	assert.True(t, service.IsAuthenticated())
}

func TestSessionService_Logout_WhenAnonymousIsQuiet(t *testing.T) {
	service := newSessionService(backend.NewAuthAPIStub(), memstate.NewStore())
	service.Bootstrap(context.Background())

	var notified int
	service.Subscribe(func(context.Context, *domainauth.Session) { notified++ })

	require.NoError(t, service.Logout(context.Background()))
	assert.Zero(t, notified)
}

func TestSessionService_UpdateProfile_FireAndForget(t *testing.T) {
	api := backend.NewAuthAPIStub()
	api.UpdateProfileFunc = func(_ context.Context, userID int64, _ domainauth.Profile) (domainauth.Account, error) {
		return domainauth.Account{ID: userID, Email: "new@example.com"}, nil
	}
	service := newSessionService(api, memstate.NewStore())
	service.Bootstrap(context.Background())
	require.NoError(t, service.Login(context.Background(), domainauth.Credentials{Username: "alice", Password: "secret"}))

	err := service.UpdateProfile(context.Background(), 7, domainauth.Profile{Email: "new@example.com"})

	require.NoError(t, err)
	calls, lastUser := api.UpdateProfileCalls()
	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(7), lastUser)
	// The response is not merged into the session.
	assert.Empty(t, service.Current().Email)
}

func TestSessionService_Subscribe_NotifiedOnTransitions(t *testing.T) {
	service := newSessionService(backend.NewAuthAPIStub(), memstate.NewStore())

	var events []*domainauth.Session
	service.Subscribe(func(_ context.Context, sess *domainauth.Session) {
		events = append(events, sess)
	})
	service.Bootstrap(context.Background())
	require.Empty(t, events)

	require.NoError(t, service.Login(context.Background(), domainauth.Credentials{Username: "alice", Password: "secret"}))
	require.Len(t, events, 1)
	require.NotNil(t, events[0])
	assert.Equal(t, int64(7), events[0].ID)

	require.NoError(t, service.Logout(context.Background()))
	require.Len(t, events, 2)
	assert.Nil(t, events[1])
}
