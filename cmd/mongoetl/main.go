// Command mongoetl migrates a healthcare CSV export into a MongoDB
// collection: it streams the file in chunks, normalizes each row into a
// typed document, and bulk-writes batches under a natural-key idempotency
// contract.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"mongoetl/internal/config"

	// register all backends with the storage factory.
	_ "mongoetl/internal/storage/all"
)

func main() {
	cfg, validateOnly, verbose := parseFlags()

	issues := config.Validate(cfg)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		os.Exit(2)
	}
	if validateOnly {
		fmt.Println("configuration is valid")
		os.Exit(0)
	}

	if err := run(context.Background(), cfg, verbose); err != nil {
		fatalf("%v", err)
	}
}

// parseFlags resolves the configuration surface: flag → environment →
// default. Environment keys match the original migration job (CSV_PATH,
// MONGO_URI, MONGO_DB, MONGO_COLLECTION).
func parseFlags() (cfg config.Config, validateOnly, verbose bool) {
	flag.StringVar(&cfg.CSVPath, "csv", os.Getenv("CSV_PATH"),
		"path to the input CSV file (or env CSV_PATH)")
	flag.StringVar(&cfg.MongoURI, "mongo-uri", getenv("MONGO_URI", config.DefaultMongoURI),
		"Mongo connection string (or env MONGO_URI)")
	flag.StringVar(&cfg.Database, "db", getenv("MONGO_DB", config.DefaultDatabase),
		"Mongo database name (or env MONGO_DB)")
	flag.StringVar(&cfg.Collection, "collection", getenv("MONGO_COLLECTION", config.DefaultCollection),
		"Mongo collection name (or env MONGO_COLLECTION)")
	flag.IntVar(&cfg.BatchSize, "batch-size", config.DefaultBatchSize,
		"batch size for bulk writes")
	flag.IntVar(&cfg.ChunkSize, "chunksize", config.DefaultChunkSize,
		"read the CSV in chunks of this many rows (streaming)")
	flag.BoolVar(&cfg.DryRun, "dry-run", false,
		"validate and transform, but do not write to MongoDB")
	flag.BoolVar(&cfg.CreateIndexes, "create-indexes", false,
		"create the unique compound index for idempotent upserts")
	upsert := flag.Bool("upsert", true, "use upsert mode (default)")
	noUpsert := flag.Bool("no-upsert", false, "disable upsert; perform plain inserts")
	v := flag.Bool("v", false, "enable verbose logs")
	validate := flag.Bool("validate", false, "validate the configuration and exit")
	flag.Parse()

	cfg.Upsert = *upsert && !*noUpsert
	return cfg, *validate, *v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
