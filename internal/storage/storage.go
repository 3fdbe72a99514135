// Package storage defines the backend-agnostic repository contract and the
// factory used to construct the configured backend. Concrete backends
// register themselves at init time (see internal/storage/all), so callers
// never import a driver package directly.
package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"mongoetl/internal/record"
)

// Config selects and configures a storage backend.
type Config struct {
	// Kind selects the backend implementation. Current value: "mongodb".
	Kind string

	// URI is the store connection string.
	URI string

	// Database and Collection name the target collection.
	Database   string
	Collection string
}

// Repository is the write surface consumed by the pipeline.
//
// The bulk methods absorb batch-level write failures: they log the error
// with structural detail and return the batch's contribution to the
// written count, which may undercount on partial failure. The run
// continues either way; only index provisioning and connection setup are
// fatal.
type Repository interface {
	// BulkInsert performs an unordered plain insert of docs.
	BulkInsert(ctx context.Context, docs []*record.Admission) int64

	// BulkUpsert merges each document by its natural key: every field and
	// last_modified_at follow the incoming document, while ingested_at is
	// written only when no matching document existed.
	BulkUpsert(ctx context.Context, docs []*record.Admission) int64

	// EnsureNaturalKeyIndex idempotently creates the unique compound index
	// over (name, gender, blood_type, date_of_admission, hospital).
	EnsureNaturalKeyIndex(ctx context.Context) error

	Close(ctx context.Context) error
}

// Factory constructs a Repository from a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var registry = map[string]Factory{}

// Register installs a backend constructor under kind. Backends call this
// from init.
func Register(kind string, fn Factory) {
	registry[kind] = fn
}

// New constructs the repository selected by cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	fn, ok := registry[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%q (registered: %s)", cfg.Kind, strings.Join(kinds(), ", "))
	}
	return fn(ctx, cfg)
}

func kinds() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
