package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/achievo/internal/client/auth"
	"github.com/dmitrijs2005/achievo/internal/client/client"
	"github.com/dmitrijs2005/achievo/internal/client/config"
	"github.com/dmitrijs2005/achievo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/achievo/internal/client/services"
	"github.com/dmitrijs2005/achievo/internal/client/session"
	"github.com/dmitrijs2005/achievo/internal/logging"

	_ "modernc.org/sqlite"
)

// App is one interactive session. It is also the client.Navigator: routes
// requested by the gateway or the auth store are picked up by the REPL
// before the next prompt.
type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	tokens  session.TokenStore
	api     *client.HTTPClient
	store   *auth.Store
	account services.AccountService
	content *services.ContentService
	reader  *bufio.Reader
	out     io.Writer

	mu    sync.Mutex
	route client.Route

	unwatch func()
}

// NewApp wires logging, the local database, the token store, the gateway
// and the auth store.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.New(os.Stderr, c.LogLevel, c.LogFormat)

	baseURL, err := c.ResolveBaseURL()
	if err != nil {
		return nil, fmt.Errorf("resolve backend url: %w", err)
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	tokens := session.NewSQLiteTokenStore(metadata.NewSQLiteRepository(db))

	a := newApp(c, logger, baseURL, tokens, bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, baseURL string, tokens session.TokenStore, reader *bufio.Reader, out io.Writer) *App {
	a := &App{
		config: c,
		logger: logger,
		tokens: tokens,
		reader: reader,
		out:    out,
	}

	a.api = client.New(baseURL, tokens,
		client.WithTimeout(c.RequestTimeout),
		client.WithNavigator(a),
		client.WithLogger(logger),
	)
	a.store = auth.NewStore(a.api, tokens, a, logger)
	a.unwatch = a.store.WatchUnauthorized(a.api)
	a.account = services.NewAccountService(a.api, a.store)
	a.content = services.NewContentService(a.api.Achievements(), a.api.Skills(), a.api.Goals())

	logger.Debug(context.Background(), "backend resolved", "base_url", a.api.BaseURL())
	return a
}

// Navigate records the route; the REPL acts on it before the next prompt.
func (a *App) Navigate(r client.Route) {
	a.mu.Lock()
	a.route = r
	a.mu.Unlock()
}

// takeRoute returns and clears the pending route.
func (a *App) takeRoute() client.Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	r := a.route
	a.route = ""
	return r
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	u := a.store.User()
	return u != nil && u.IsSuperuser
}

func (a *App) getStatus() string {
	u := a.store.User()
	if u == nil {
		return "(guest)"
	}
	if u.IsSuperuser {
		return fmt.Sprintf("(%s admin)", u.Email)
	}
	return fmt.Sprintf("(%s)", u.Email)
}

// Run blocks until the user exits, then releases resources.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Root restores the previous session, if any, and starts the REPL.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Achievo CLI (type 'help' for commands)")

	if err := a.account.Ping(ctx); err != nil {
		a.logger.Warn(ctx, "backend health check failed", "base_url", a.api.BaseURL(), "error", err)
		fmt.Fprintf(a.out, "Backend %s is not reachable right now.\n", a.api.BaseURL())
	}

	if err := a.store.FetchUser(ctx); err != nil {
		_ = a.report(ctx, "restore session", err)
	}
	if u := a.store.User(); u != nil {
		fmt.Fprintf(a.out, "Logged in as %s.\n", u.DisplayName())
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.unwatch != nil {
		a.unwatch()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error(context.Background(), "close database", "error", err)
		}
	}
}
