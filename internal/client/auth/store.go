// Package auth holds the client-side session state: who is logged in,
// and whether an auth operation is in progress.
//
// The Store is created once at startup and passed to whatever needs it.
// It is the only writer of the session state and it keeps
// IsAuthenticated equal to (User != nil) at every observable point.
package auth

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/achievo/internal/client/client"
	"github.com/dmitrijs2005/achievo/internal/client/models"
	"github.com/dmitrijs2005/achievo/internal/client/session"
	"github.com/dmitrijs2005/achievo/internal/logging"
)

// API is the subset of the backend gateway used by the Store.
type API interface {
	Login(ctx context.Context, data models.LoginData) (*models.TokenResponse, error)
	Register(ctx context.Context, data models.RegisterData) (*models.User, error)
	RegisterWithOTP(ctx context.Context, data models.RegisterData, otp string) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
}

// EventSource publishes gateway 401 notifications.
type EventSource interface {
	Subscribe(fn func(client.UnauthorizedEvent)) (unsubscribe func())
}

// State is a snapshot of the session.
type State struct {
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
}

type Store struct {
	api    API
	tokens session.TokenStore
	nav    client.Navigator
	logger logging.Logger

	mu        sync.Mutex
	state     State
	epoch     uint64
	listeners map[int]func(State)
	nextID    int

	fetch singleflight.Group
}

func NewStore(api API, tokens session.TokenStore, nav client.Navigator, logger logging.Logger) *Store {
	if nav == nil {
		nav = client.NavigatorFunc(func(client.Route) {})
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{
		api:       api,
		tokens:    tokens,
		nav:       nav,
		logger:    logger,
		listeners: make(map[int]func(State)),
	}
}

// WatchUnauthorized moves the store to the anonymous state whenever src
// reports a 401.
func (s *Store) WatchUnauthorized(src EventSource) (stop func()) {
	return src.Subscribe(func(ev client.UnauthorizedEvent) {
		s.logger.Info(context.Background(), "session ended by backend", "path", ev.Path, "request_id", ev.RequestID)
		s.set(func(st *State) bool {
			st.User = nil
			st.IsAuthenticated = false
			return true
		})
	})
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Store) User() *models.User {
	return s.Snapshot().User
}

func (s *Store) IsAuthenticated() bool {
	return s.Snapshot().IsAuthenticated
}

// OnChange registers fn to be called with the new state after every
// transition.
func (s *Store) OnChange(fn func(State)) (remove func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// set applies mutate under the lock. When endSession is true the epoch is
// bumped so in-flight FetchUser results are discarded.
func (s *Store) set(mutate func(st *State) (endSession bool)) {
	s.mu.Lock()
	if mutate(&s.state) {
		s.epoch++
	}
	s.notifyLocked()
}

// notifyLocked releases s.mu and then calls the listeners with the state
// as it was at release time.
func (s *Store) notifyLocked() {
	snap := s.state.clone()
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (s *Store) setLoading(v bool) {
	s.set(func(st *State) bool {
		st.IsLoading = v
		return false
	})
}

func (s *Store) setAuthenticated(u *models.User) {
	s.set(func(st *State) bool {
		st.User = u
		st.IsAuthenticated = true
		st.IsLoading = false
		return true
	})
}

// Login exchanges credentials for a token, persists it and loads the
// profile. User and IsAuthenticated change together, and only on success.
// On failure the error is returned and only IsLoading is reset.
//
// If the profile cannot be loaded the new token is discarded and the
// previously stored token, if any, is put back, so a failed login leaves
// the prior session intact. A 401 from the profile request is the
// exception: the token is cleared and the session ends.
func (s *Store) Login(ctx context.Context, data models.LoginData) error {
	s.setLoading(true)
	u, err := s.login(ctx, data)
	if err != nil {
		s.setLoading(false)
		return err
	}
	s.setAuthenticated(u)
	return nil
}

func (s *Store) login(ctx context.Context, data models.LoginData) (*models.User, error) {
	tok, err := s.api.Login(ctx, data)
	if err != nil {
		return nil, err
	}
	prev, err := s.tokens.Token(ctx)
	if err != nil {
		s.logger.Warn(ctx, "token read failed before login", "error", err)
		prev = ""
	}
	if err := s.tokens.SetToken(ctx, tok.AccessToken); err != nil {
		return nil, fmt.Errorf("store access token: %w", err)
	}

	u, err := s.api.Me(ctx)
	if err != nil {
		s.rollbackToken(ctx, prev, err)
		return nil, err
	}
	return u, nil
}

// rollbackToken drops a token whose owner could not be loaded and puts
// prev back unless the failure was a 401.
func (s *Store) rollbackToken(ctx context.Context, prev string, cause error) {
	ctx = context.WithoutCancel(ctx)
	if prev == "" || client.IsUnauthorized(cause) {
		if err := s.tokens.ClearToken(ctx); err != nil {
			s.logger.Error(ctx, "failed to clear token after profile load failure", "error", err)
		}
		return
	}
	if err := s.tokens.SetToken(ctx, prev); err != nil {
		s.logger.Error(ctx, "failed to restore previous token after profile load failure", "error", err)
	}
}

// Register creates the account and then logs in with the same
// credentials.
func (s *Store) Register(ctx context.Context, data models.RegisterData) error {
	return s.registerThenLogin(ctx, data, func() error {
		_, err := s.api.Register(ctx, data)
		return err
	})
}

// RegisterWithOTP is Register for backends that require an emailed
// verification code.
func (s *Store) RegisterWithOTP(ctx context.Context, data models.RegisterData, otp string) error {
	if err := models.ValidateOTP(otp); err != nil {
		return err
	}
	return s.registerThenLogin(ctx, data, func() error {
		_, err := s.api.RegisterWithOTP(ctx, data, otp)
		return err
	})
}

func (s *Store) registerThenLogin(ctx context.Context, data models.RegisterData, register func() error) error {
	s.setLoading(true)
	if err := register(); err != nil {
		s.setLoading(false)
		return err
	}
	u, err := s.login(ctx, models.LoginData{Username: data.Email, Password: data.Password})
	if err != nil {
		s.setLoading(false)
		return err
	}
	s.setAuthenticated(u)
	return nil
}

// Logout drops the token and the user and returns to the root route. It
// never fails; calling it while logged out only navigates.
func (s *Store) Logout(ctx context.Context) {
	if err := s.tokens.ClearToken(ctx); err != nil {
		s.logger.Error(ctx, "failed to clear token on logout", "error", err)
	}
	s.set(func(st *State) bool {
		*st = State{}
		return true
	})
	s.nav.Navigate(client.RouteRoot)
}

// FetchUser rebuilds the session from the stored token. Without a token the
// store becomes anonymous and no request is made. If /me fails the token is
// removed and the store becomes anonymous. Concurrent calls share one
// request.
func (s *Store) FetchUser(ctx context.Context) error {
	_, err, _ := s.fetch.Do("me", func() (any, error) {
		return nil, s.fetchUser(ctx)
	})
	return err
}

func (s *Store) fetchUser(ctx context.Context) error {
	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.logger.Warn(ctx, "token read failed, treating session as anonymous", "error", err)
		token = ""
	}
	if token == "" {
		s.applyFetch(epoch, nil)
		return nil
	}

	u, err := s.api.Me(ctx)
	if err != nil {
		if cerr := s.tokens.ClearToken(context.WithoutCancel(ctx)); cerr != nil {
			s.logger.Error(ctx, "failed to clear token after profile load failure", "error", cerr)
		}
		s.applyFetch(epoch, nil)
		return err
	}
	s.applyFetch(epoch, u)
	return nil
}

// applyFetch stores the FetchUser outcome unless a login, logout or 401
// happened meanwhile.
func (s *Store) applyFetch(epoch uint64, u *models.User) {
	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return
	}
	s.state.User = u
	s.state.IsAuthenticated = u != nil
	s.notifyLocked()
}

func (st State) clone() State {
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}
