package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/achievo/internal/client/apipaths"
	"github.com/dmitrijs2005/achievo/internal/client/session"
	"github.com/dmitrijs2005/achievo/internal/common"
	"github.com/dmitrijs2005/achievo/internal/logging"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20
)

// HTTPClient is the single gateway to the backend. All requests go through
// one authTransport, so token injection and 401 handling apply uniformly.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  session.TokenStore
	nav     Navigator
	logger  logging.Logger
	events  broadcaster
	now     func() time.Time
}

type Option func(*options)

type options struct {
	timeout   time.Duration
	transport http.RoundTripper
	nav       Navigator
	logger    logging.Logger
}

// WithTimeout sets the per-request timeout of the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTransport replaces the network transport below the auth layer.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

func WithNavigator(n Navigator) Option {
	return func(o *options) { o.nav = n }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New returns a gateway bound to baseURL. The base URL is fixed for the
// lifetime of the client.
func New(baseURL string, tokens session.TokenStore, opts ...Option) *HTTPClient {
	o := options{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.transport == nil {
		o.transport = http.DefaultTransport
	}
	if o.nav == nil {
		o.nav = noopNavigator{}
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		nav:     o.nav,
		logger:  o.logger,
		now:     time.Now,
	}
	c.http = &http.Client{
		Timeout: o.timeout,
		Transport: &authTransport{
			base:           o.transport,
			tokens:         tokens,
			logger:         o.logger,
			onUnauthorized: c.handleUnauthorized,
		},
	}
	return c
}

func (c *HTTPClient) BaseURL() string { return c.baseURL }

// Subscribe registers fn for UnauthorizedEvent. The returned function
// removes the subscription.
func (c *HTTPClient) Subscribe(fn func(UnauthorizedEvent)) (unsubscribe func()) {
	return c.events.subscribe(fn)
}

// handleUnauthorized runs once for each 401 response: the stored token is
// dropped, subscribers are told, and the user is sent to the login route.
func (c *HTTPClient) handleUnauthorized(r *http.Request) {
	ctx := context.WithoutCancel(r.Context())
	if err := c.tokens.ClearToken(ctx); err != nil {
		c.logger.Error(ctx, "failed to clear token after 401", "error", err)
	}
	reqID := r.Header.Get(common.RequestIDHeader)
	c.logger.Info(ctx, "session rejected by backend", "path", r.URL.Path, "request_id", reqID)

	c.events.publish(UnauthorizedEvent{
		Method:    r.Method,
		Path:      r.URL.Path,
		RequestID: reqID,
		At:        c.now(),
	})
	c.nav.Navigate(RouteLogin)
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if in == nil {
		return c.do(ctx, method, path, query, nil, "", out)
	}
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", method, path, err)
	}
	return c.do(ctx, method, path, query, bytes.NewReader(b), "application/json", out)
}

func (c *HTTPClient) postForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", out)
}

// Ping checks the backend health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, apipaths.Health, nil, &resp); err != nil {
		return err
	}
	if resp.Status != "healthy" {
		return fmt.Errorf("%w: health status %q", ErrUnavailable, resp.Status)
	}
	return nil
}

// IsUnauthorized reports whether err came from a 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
