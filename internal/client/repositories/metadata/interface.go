// Package metadata is a small key/value repository over the local SQLite
// database. The session keeps its persisted credential here.
package metadata

import (
	"context"
)

// Repository stores opaque values by key.
//
// Get reports found=false (with a nil error) when the key is absent.
// Delete of an absent key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
