package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/online-shop/shopfront/internal/domain/auth"
	"github.com/online-shop/shopfront/internal/observability/statsd"
	"github.com/online-shop/shopfront/internal/ports"
)

// Observability groups the optional observability dependencies shared by
// the services in this package.
type Observability struct {
	Logger  *slog.Logger
	Metrics statsd.Sink
}

func (o Observability) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	API           ports.AuthAPI         // Required: backend auth surface
	Credentials   ports.CredentialStore // Required: persisted restart markers
	Observability Observability         // Optional: logger and metrics
}

// SessionService is the single source of truth for who is logged in,
// surviving restarts through the credential store.
//
// State machine: loading -> {anonymous, authenticated};
// anonymous -> authenticated via a successful Login only;
// authenticated -> anonymous via Logout only.
type SessionService struct {
	api     ports.AuthAPI
	creds   ports.CredentialStore
	logger  *slog.Logger
	metrics statsd.Sink

	mu           sync.RWMutex
	session      *domainauth.Session
	loading      bool
	bootstrapped bool
	listeners    []ports.SessionListener
}

// NewSessionService constructs a new SessionService. The service starts in
// the loading state until Bootstrap completes.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	if opts.API == nil {
		panic("AuthAPI is required")
	}
	if opts.Credentials == nil {
		panic("CredentialStore is required")
	}

	return &SessionService{
		api:     opts.API,
		creds:   opts.Credentials,
		logger:  opts.Observability.logger(),
		metrics: opts.Observability.Metrics,
		loading: true,
	}
}

// Subscribe registers a listener for session-changed notifications.
// Listeners are invoked synchronously, after the new state is visible,
// in registration order. Subscribe before Bootstrap to observe the
// restored session.
func (s *SessionService) Subscribe(l ports.SessionListener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Bootstrap restores the session from the persisted identity markers.
// The markers are trusted without a server round trip; a revoked token is
// only discovered when the next API call rejects it. Bootstrap never fails
// and flips the loading flag exactly once.
func (s *SessionService) Bootstrap(ctx context.Context) {
	s.mu.Lock()
	if s.bootstrapped {
		s.mu.Unlock()
		return
	}
	s.bootstrapped = true
	s.mu.Unlock()

	var restored *domainauth.Session
	id, err := s.creds.Load(ctx)
	switch {
	case errors.Is(err, ports.ErrNoIdentity):
		// First run or logged out; stay anonymous.
	case err != nil:
		s.logger.WarnContext(ctx, "load persisted identity", "error", err)
	case id.Valid():
		restored = sessionFromIdentity(id)
	}

	s.mu.Lock()
	s.session = restored
	s.loading = false
	s.mu.Unlock()

	if restored != nil {
		s.count("session.bootstrap.restored")
		s.notify(ctx)
	}
}

// Login authenticates against the backend. On success the four identity
// markers are persisted together and the in-memory session is constructed
// from the response. On any failure the session is left unchanged and the
// error is propagated.
func (s *SessionService) Login(ctx context.Context, creds domainauth.Credentials) error {
	result, err := s.api.Login(ctx, creds)
	if err != nil {
		s.count("session.login.error")
		return fmt.Errorf("login: %w", err)
	}

	id := domainauth.Identity{
		Token:    result.Token,
		UserID:   result.UserID,
		Username: result.Username,
		Role:     result.Role,
	}
	if saveErr := s.creds.Save(ctx, id); saveErr != nil {
		// Keep memory and persisted state consistent: without the markers
		// the login is not durable, so it does not take effect at all.
		s.count("session.login.error")
		return fmt.Errorf("persist identity: %w", saveErr)
	}

	s.mu.Lock()
	s.session = sessionFromIdentity(id)
	s.mu.Unlock()

	s.count("session.login.ok")
	s.notify(ctx)
	return nil
}

// Register creates a new account. It never mutates the local session;
// callers decide whether to navigate to login afterwards.
func (s *SessionService) Register(ctx context.Context, profile domainauth.Profile) error {
	if err := s.api.Register(ctx, profile); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Logout clears the persisted markers and the in-memory session together.
// If the store clear fails, the session is left fully intact so observers
// never see a partial logout.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.creds.Clear(ctx); err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}

	s.mu.Lock()
	wasAuthenticated := s.session != nil
	s.session = nil
	s.mu.Unlock()

	if wasAuthenticated {
		s.count("session.logout")
		s.notify(ctx)
	}
	return nil
}

// UpdateProfile sends a partial profile update. The response is not merged
// into the session; the backend remains the source of truth and callers
// refetch through GetProfile where fresh data is needed.
func (s *SessionService) UpdateProfile(ctx context.Context, userID int64, profile domainauth.Profile) error {
	if _, err := s.api.UpdateProfile(ctx, userID, profile); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// GetProfile fetches the full account record for a user.
func (s *SessionService) GetProfile(ctx context.Context, userID int64) (domainauth.Account, error) {
	account, err := s.api.GetProfile(ctx, userID)
	if err != nil {
		return domainauth.Account{}, fmt.Errorf("get profile: %w", err)
	}
	return account, nil
}

// Current returns a copy of the current session, or nil when anonymous.
func (s *SessionService) Current() *domainauth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	sess := *s.session
	return &sess
}

// IsAuthenticated reports whether a session is present.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// Loading reports whether Bootstrap has not yet completed.
func (s *SessionService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// notify invokes the listeners with the current session outside the lock.
func (s *SessionService) notify(ctx context.Context) {
	s.mu.RLock()
	listeners := make([]ports.SessionListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	sess := s.Current()
	for _, l := range listeners {
		l(ctx, sess)
	}
}

func (s *SessionService) count(name string) {
	if s.metrics != nil {
		s.metrics.Count(name, 1, nil)
	}
}

// sessionFromIdentity builds the in-memory session from the markers. The
// login response carries no email or timestamps, so email defaults empty
// and both timestamps default to now.
func sessionFromIdentity(id domainauth.Identity) *domainauth.Session {
	now := time.Now()
	return &domainauth.Session{
		ID:        id.UserID,
		Username:  id.Username,
		Role:      id.Role,
		Email:     "",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
