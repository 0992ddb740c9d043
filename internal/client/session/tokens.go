// Package session keeps the access token issued by the backend between
// requests and across CLI runs.
//
// A stored token only means the user logged in at some point. It says
// nothing about whether the backend still accepts it.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/achievo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/achievo/internal/common"
)

// TokenStore holds at most one access token. An empty string means no
// token is present.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// SQLiteTokenStore persists the token in the local metadata table.
type SQLiteTokenStore struct {
	repo metadata.Repository
}

func NewSQLiteTokenStore(repo metadata.Repository) *SQLiteTokenStore {
	return &SQLiteTokenStore{repo: repo}
}

func (s *SQLiteTokenStore) Token(ctx context.Context) (string, error) {
	e, err := s.repo.Get(ctx, common.AccessTokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if e == nil {
		return "", nil
	}
	return string(e.Value), nil
}

// SavedAt reports when the current token was stored. ok is false when
// there is no token.
func (s *SQLiteTokenStore) SavedAt(ctx context.Context) (at time.Time, ok bool, err error) {
	e, err := s.repo.Get(ctx, common.AccessTokenKey)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read token: %w", err)
	}
	if e == nil || e.UpdatedAt.IsZero() {
		return time.Time{}, false, nil
	}
	return e.UpdatedAt, true, nil
}

func (s *SQLiteTokenStore) SetToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return common.ErrEmptyToken
	}
	if err := s.repo.Set(ctx, common.AccessTokenKey, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// ClearToken is a no-op when no token is stored.
func (s *SQLiteTokenStore) ClearToken(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.AccessTokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps the token for the lifetime of the process.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Token(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryTokenStore) SetToken(_ context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return common.ErrEmptyToken
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryTokenStore) ClearToken(context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
