package auth

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/achievo/internal/client/client"
	"github.com/dmitrijs2005/achievo/internal/client/models"
	"github.com/dmitrijs2005/achievo/internal/client/session"
	"github.com/dmitrijs2005/achievo/internal/logging"
)

type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	loginResp *models.TokenResponse
	loginErr  error
	lastLogin models.LoginData

	registerErr  error
	lastRegister models.RegisterData
	lastOTP      string

	meUser  *models.User
	meErr   error
	meGate  chan struct{}
	meEnter chan struct{}
	meCalls int32
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeAPI) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Login(_ context.Context, data models.LoginData) (*models.TokenResponse, error) {
	f.record("login")
	f.lastLogin = data
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Register(_ context.Context, data models.RegisterData) (*models.User, error) {
	f.record("register")
	f.lastRegister = data
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{Email: data.Email}, nil
}

func (f *fakeAPI) RegisterWithOTP(_ context.Context, data models.RegisterData, otp string) (*models.User, error) {
	f.record("register_otp")
	f.lastRegister = data
	f.lastOTP = otp
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{Email: data.Email}, nil
}

func (f *fakeAPI) Me(context.Context) (*models.User, error) {
	atomic.AddInt32(&f.meCalls, 1)
	f.record("me")
	if f.meEnter != nil {
		f.meEnter <- struct{}{}
	}
	if f.meGate != nil {
		<-f.meGate
	}
	if f.meErr != nil {
		return nil, f.meErr
	}
	u := *f.meUser
	return &u, nil
}

type navSpy struct {
	mu     sync.Mutex
	routes []client.Route
}

func (n *navSpy) Navigate(r client.Route) {
	n.mu.Lock()
	n.routes = append(n.routes, r)
	n.mu.Unlock()
}

func (n *navSpy) got() []client.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]client.Route(nil), n.routes...)
}

type fakeEvents struct {
	fn func(client.UnauthorizedEvent)
}

func (f *fakeEvents) Subscribe(fn func(client.UnauthorizedEvent)) func() {
	f.fn = fn
	return func() { f.fn = nil }
}

var alice = &models.User{ID: 1, Email: "alice@example.com", FullName: "Alice", IsActive: true}

func newStore(t *testing.T, api *fakeAPI, token string) (*Store, *session.MemoryTokenStore, *navSpy) {
	t.Helper()
	tokens := session.NewMemoryTokenStore(token)
	nav := &navSpy{}
	s := NewStore(api, tokens, nav, logging.Discard())

	// every observable state must satisfy the core invariant
	s.OnChange(func(st State) {
		assert.Equal(t, st.User != nil, st.IsAuthenticated, "state %+v", st)
	})
	return s, tokens, nav
}

func tokenOf(t *testing.T, ts session.TokenStore) string {
	t.Helper()
	tok, err := ts.Token(context.Background())
	require.NoError(t, err)
	return tok
}

func TestLogin_Success(t *testing.T) {
	api := &fakeAPI{loginResp: &models.TokenResponse{AccessToken: "jwt-1", TokenType: "bearer"}, meUser: alice}
	s, tokens, _ := newStore(t, api, "")

	var loadingSeen bool
	s.OnChange(func(st State) {
		if st.IsLoading {
			loadingSeen = true
		}
	})

	err := s.Login(context.Background(), models.LoginData{Username: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	st := s.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Equal(t, "alice@example.com", st.User.Email)
	assert.Equal(t, "jwt-1", tokenOf(t, tokens))
	assert.Equal(t, []string{"login", "me"}, api.called())
	assert.Equal(t, "alice@example.com", api.lastLogin.Username)
	assert.True(t, loadingSeen)
}

func TestLogin_RejectedLeavesStateAndStorage(t *testing.T) {
	api := &fakeAPI{loginErr: &client.APIError{StatusCode: 401, Detail: "Incorrect email or password"}}
	s, tokens, _ := newStore(t, api, "")

	err := s.Login(context.Background(), models.LoginData{Username: "a", Password: "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	assert.Equal(t, State{}, s.Snapshot())
	assert.Empty(t, tokenOf(t, tokens))
	assert.Equal(t, []string{"login"}, api.called())
}

func TestLogin_FailureKeepsPriorAuthenticatedState(t *testing.T) {
	api := &fakeAPI{meUser: alice}
	s, _, _ := newStore(t, api, "old")
	require.NoError(t, s.FetchUser(context.Background()))
	require.True(t, s.IsAuthenticated())

	api.loginErr = errors.New("network down")
	require.Error(t, s.Login(context.Background(), models.LoginData{Username: "x", Password: "y"}))

	st := s.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Equal(t, alice.Email, st.User.Email)
}

func TestLogin_ProfileFailureDropsNewToken(t *testing.T) {
	api := &fakeAPI{loginResp: &models.TokenResponse{AccessToken: "jwt-2"}, meErr: errors.New("boom")}
	s, tokens, _ := newStore(t, api, "")

	err := s.Login(context.Background(), models.LoginData{Username: "a", Password: "b"})
	require.Error(t, err)

	assert.Empty(t, tokenOf(t, tokens))
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.Snapshot().IsLoading)
}

func TestLogin_ProfileFailureRestoresPriorSession(t *testing.T) {
	api := &fakeAPI{meUser: alice}
	s, tokens, _ := newStore(t, api, "old")
	require.NoError(t, s.FetchUser(context.Background()))
	require.True(t, s.IsAuthenticated())

	api.loginResp = &models.TokenResponse{AccessToken: "jwt-2"}
	api.meErr = &client.APIError{StatusCode: 500}
	require.Error(t, s.Login(context.Background(), models.LoginData{Username: "x", Password: "y"}))

	assert.Equal(t, "old", tokenOf(t, tokens))
	st := s.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Equal(t, alice.Email, st.User.Email)
}

func TestLogin_ProfileUnauthorizedClearsToken(t *testing.T) {
	api := &fakeAPI{meUser: alice}
	s, tokens, _ := newStore(t, api, "old")
	require.NoError(t, s.FetchUser(context.Background()))

	api.loginResp = &models.TokenResponse{AccessToken: "jwt-2"}
	api.meErr = &client.APIError{StatusCode: 401, Detail: "Could not validate credentials"}
	err := s.Login(context.Background(), models.LoginData{Username: "x", Password: "y"})
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))

	assert.Empty(t, tokenOf(t, tokens))
	assert.False(t, s.Snapshot().IsLoading)
}

func TestRegister_ThenAutoLogin(t *testing.T) {
	api := &fakeAPI{loginResp: &models.TokenResponse{AccessToken: "jwt-3"}, meUser: alice}
	s, tokens, _ := newStore(t, api, "")

	data := models.RegisterData{Email: "alice@example.com", Password: "Str0ng!pw", FullName: "Alice"}
	require.NoError(t, s.Register(context.Background(), data))

	assert.Equal(t, []string{"register", "login", "me"}, api.called())
	assert.Equal(t, models.LoginData{Username: data.Email, Password: data.Password}, api.lastLogin)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "jwt-3", tokenOf(t, tokens))
}

func TestRegister_FailureNoSessionChange(t *testing.T) {
	api := &fakeAPI{registerErr: &client.APIError{StatusCode: 400, Detail: "Email already registered"}}
	s, tokens, _ := newStore(t, api, "")

	err := s.Register(context.Background(), models.RegisterData{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrValidation)

	assert.Equal(t, []string{"register"}, api.called())
	assert.Equal(t, State{}, s.Snapshot())
	assert.Empty(t, tokenOf(t, tokens))
}

func TestRegister_LoginAfterRegisterFails(t *testing.T) {
	api := &fakeAPI{loginErr: errors.New("login broke")}
	s, _, _ := newStore(t, api, "")

	err := s.Register(context.Background(), models.RegisterData{Email: "a@b.c", Password: "x"})
	require.EqualError(t, err, "login broke")
	assert.Equal(t, State{}, s.Snapshot())
}

func TestRegisterWithOTP(t *testing.T) {
	api := &fakeAPI{loginResp: &models.TokenResponse{AccessToken: "jwt-4"}, meUser: alice}
	s, _, _ := newStore(t, api, "")

	err := s.RegisterWithOTP(context.Background(), models.RegisterData{Email: "a@b.c", Password: "p"}, "12a")
	assert.ErrorIs(t, err, models.ErrInvalidOTP)
	assert.Empty(t, api.called())

	require.NoError(t, s.RegisterWithOTP(context.Background(), models.RegisterData{Email: "a@b.c", Password: "p"}, "123456"))
	assert.Equal(t, "123456", api.lastOTP)
	assert.Equal(t, []string{"register_otp", "login", "me"}, api.called())
	assert.True(t, s.IsAuthenticated())
}

func TestLogout_ClearsEverythingAndNavigatesRoot(t *testing.T) {
	api := &fakeAPI{meUser: alice}
	s, tokens, nav := newStore(t, api, "tok")
	require.NoError(t, s.FetchUser(context.Background()))

	s.Logout(context.Background())
	assert.Equal(t, State{}, s.Snapshot())
	assert.Empty(t, tokenOf(t, tokens))

	s.Logout(context.Background())
	assert.Equal(t, State{}, s.Snapshot())
	assert.Equal(t, []client.Route{client.RouteRoot, client.RouteRoot}, nav.got())
}

type failingClear struct{ *session.MemoryTokenStore }

func (failingClear) ClearToken(context.Context) error { return errors.New("locked") }

func TestLogout_TokenStoreFailureIsNotFatal(t *testing.T) {
	api := &fakeAPI{meUser: alice}
	tokens := failingClear{session.NewMemoryTokenStore("tok")}
	s := NewStore(api, tokens, nil, nil)
	require.NoError(t, s.FetchUser(context.Background()))

	s.Logout(context.Background())
	assert.False(t, s.IsAuthenticated())
}

func TestFetchUser_NoTokenNoRequest(t *testing.T) {
	api := &fakeAPI{meUser: alice}
	s, _, _ := newStore(t, api, "")

	require.NoError(t, s.FetchUser(context.Background()))
	assert.Empty(t, api.called())
	assert.Equal(t, State{}, s.Snapshot())
}

func TestFetchUser_ValidToken(t *testing.T) {
	api := &fakeAPI{meUser: alice}
	s, tokens, _ := newStore(t, api, "good")

	require.NoError(t, s.FetchUser(context.Background()))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "Alice", s.User().FullName)
	assert.Equal(t, "good", tokenOf(t, tokens))
}

func TestFetchUser_FailureDropsToken(t *testing.T) {
	api := &fakeAPI{meErr: &client.APIError{StatusCode: 500}}
	s, tokens, _ := newStore(t, api, "bad")

	err := s.FetchUser(context.Background())
	assert.ErrorIs(t, err, client.ErrServer)
	assert.Empty(t, tokenOf(t, tokens))
	assert.Equal(t, State{}, s.Snapshot())
}

func TestFetchUser_ConcurrentCallsShareOneRequest(t *testing.T) {
	api := &fakeAPI{meUser: alice, meGate: make(chan struct{}), meEnter: make(chan struct{}, 1)}
	s, _, _ := newStore(t, api, "tok")

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.FetchUser(context.Background())
		}()
	}

	<-api.meEnter
	time.Sleep(50 * time.Millisecond)
	close(api.meGate)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.meCalls))
	assert.True(t, s.IsAuthenticated())
}

func TestFetchUser_ResultDiscardedAfterLogout(t *testing.T) {
	api := &fakeAPI{meUser: alice, meGate: make(chan struct{}), meEnter: make(chan struct{}, 1)}
	s, _, _ := newStore(t, api, "tok")

	done := make(chan error, 1)
	go func() { done <- s.FetchUser(context.Background()) }()

	<-api.meEnter
	s.Logout(context.Background())
	close(api.meGate)
	require.NoError(t, <-done)

	assert.Equal(t, State{}, s.Snapshot())
}

func TestWatchUnauthorized_EndsSession(t *testing.T) {
	api := &fakeAPI{meUser: alice}
	s, _, _ := newStore(t, api, "tok")
	require.NoError(t, s.FetchUser(context.Background()))

	ev := &fakeEvents{}
	stop := s.WatchUnauthorized(ev)
	require.NotNil(t, ev.fn)

	ev.fn(client.UnauthorizedEvent{Path: "/api/goals/"})
	assert.Equal(t, State{}, s.Snapshot())

	stop()
	assert.Nil(t, ev.fn)
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	api := &fakeAPI{meUser: alice}
	s, _, _ := newStore(t, api, "tok")
	require.NoError(t, s.FetchUser(context.Background()))

	snap := s.Snapshot()
	snap.User.Email = "mallory@example.com"
	assert.Equal(t, alice.Email, s.User().Email)
}

func TestOnChange_Remove(t *testing.T) {
	s, _, _ := newStore(t, &fakeAPI{}, "")
	n := 0
	remove := s.OnChange(func(State) { n++ })

	s.Logout(context.Background())
	remove()
	s.Logout(context.Background())
	assert.Equal(t, 1, n)
}
