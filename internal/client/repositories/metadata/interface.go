// Package metadata stores small key/value settings of the local client
// database, such as the persisted access token.
package metadata

import (
	"context"
	"time"
)

// Entry is one stored setting. UpdatedAt is the time of the last Set.
type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// Repository is a key/value store. Get of a missing key returns (nil, nil).
type Repository interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
