// Package storage holds the key/blob adapters the menu store persists through.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Adapter is a plain key to blob store without versioning.
type Adapter interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
