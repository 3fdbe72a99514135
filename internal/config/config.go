// Package config defines the configuration surface of one migration run
// and a lightweight validator that reports findings with severities rather
// than failing on the first problem.
//
// Transport is the caller's concern: cmd/mongoetl resolves flags and
// environment variables into a Config; the pipeline consumes the struct
// only.
package config

// Defaults mirror the original migration job.
const (
	DefaultMongoURI   = "mongodb://localhost:27017"
	DefaultDatabase   = "healthcare"
	DefaultCollection = "patients"
	DefaultBatchSize  = 1000
	DefaultChunkSize  = 5000
)

// Config describes a full migration run.
type Config struct {
	// CSVPath is the local path to the input file.
	CSVPath string

	// MongoURI, Database, and Collection name the target collection.
	MongoURI   string
	Database   string
	Collection string

	// BatchSize is the bulk-write batch size; ChunkSize is the number of
	// CSV rows read per chunk. They are independent.
	BatchSize int
	ChunkSize int

	// DryRun transforms the first chunk and previews documents without
	// contacting the store.
	DryRun bool

	// Upsert selects natural-key merge writes (the default); false means
	// plain inserts.
	Upsert bool

	// CreateIndexes provisions the unique natural-key index before
	// writing.
	CreateIndexes bool
}
