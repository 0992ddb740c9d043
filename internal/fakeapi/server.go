// Package fakeapi is an in-memory stand-in for the Achievo REST backend.
//
// It serves the routes the client consumes with the same status codes and
// {"detail": ...} error bodies, so the client and CLI can be exercised end
// to end in tests or locally without the real service.
package fakeapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/achievo/internal/client/models"
	"github.com/dmitrijs2005/achievo/internal/logging"
)

// Server owns the gin engine and the backend state.
type Server struct {
	cfg    *Config
	logger logging.Logger
	store  *memoryStore
	engine *gin.Engine
	secret []byte
	now    func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithClock replaces time.Now, for tests that need stable dates.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer builds the router and seeds the admin account when both admin
// credentials are configured.
func NewServer(cfg *Config, logger logging.Logger, opts ...Option) (*Server, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		secret: []byte(cfg.SecretKey),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.store = newMemoryStore(func() time.Time { return s.now() })
	s.engine = s.routes()

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if _, err := s.SeedUser(cfg.AdminEmail, cfg.AdminPassword, "Administrator", true); err != nil {
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	}
	return s, nil
}

// Handler exposes the router, e.g. for httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "fake API listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	s.logger.Info(ctx, "shutting down fake API")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// SeedUser creates an account directly, bypassing the OTP flow. Seeded
// accounts count as email-verified.
func (s *Server) SeedUser(email, password, fullName string, superuser bool) (models.User, error) {
	return s.store.createUser(email, password, fullName, superuser, true)
}

// IssueToken signs an access token for userID with the configured TTL.
func (s *Server) IssueToken(userID int64) (string, error) {
	return GenerateToken(userID, s.secret, s.cfg.AccessTokenTTL, s.now())
}

// RegistrationOTP returns the pending registration code for email.
func (s *Server) RegistrationOTP(email string) (string, bool) {
	return s.store.pendingOTP(purposeRegister, email)
}

// ResetOTP returns the pending password reset code for email.
func (s *Server) ResetOTP(email string) (string, bool) {
	return s.store.pendingOTP(purposeReset, email)
}

// SetUserActive toggles an account, as an admin would.
func (s *Server) SetUserActive(id int64, active bool) bool {
	_, ok := s.store.adminUpdateUser(id, models.UserAdminUpdate{IsActive: &active})
	return ok
}
