// Package metadata is the client's local key/value store. The session keeps
// the current user here between runs.
package metadata

import (
	"context"
)

// Repository stores opaque values by key. Get returns common.ErrorNotFound
// for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
