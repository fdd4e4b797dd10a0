package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by a Storage when no record exists for a key.
	ErrNotFound = errors.New("no record for key")
)

// Storage is a byte-oriented key-value store backing the snapshot cache.
// Any error other than ErrNotFound is treated as "storage unavailable".
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
