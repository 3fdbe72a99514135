// This adapter wires the MongoDB backend into the storage-agnostic factory
// by registering a constructor at init time. The CLI obtains a Repository
// via storage.New(...) without importing this package directly.
package mongodb

import (
	"context"

	"mongoetl/internal/storage"
)

// newRepository is a test hook that points to NewRepository by default.
var newRepository = NewRepository

var _ storage.Repository = (*Repository)(nil)

func init() {
	storage.Register("mongodb", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return newRepository(ctx, Config{
			URI:        cfg.URI,
			Database:   cfg.Database,
			Collection: cfg.Collection,
		})
	})
}
