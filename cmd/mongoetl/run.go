package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"mongoetl/internal/config"
	"mongoetl/internal/pipeline"
	"mongoetl/internal/reader"
	"mongoetl/internal/storage"
)

// previewDocs caps the number of documents printed in dry-run mode.
const previewDocs = 5

// run executes a full migration: open + validate the source, optionally
// provision the unique index, then stream batches to the store. Dry-run
// stops after previewing the first chunk and never contacts the store.
func run(ctx context.Context, cfg config.Config, verbose bool) error {
	start := time.Now()
	log.Printf("reading CSV from: %s", cfg.CSVPath)

	r, err := reader.Open(cfg.CSVPath, cfg.ChunkSize)
	if err != nil {
		return err
	}
	defer r.Close()

	if cfg.DryRun {
		return preview(os.Stdout, r)
	}

	log.Printf("connecting to MongoDB: %s | db=%s | collection=%s",
		cfg.MongoURI, cfg.Database, cfg.Collection)

	repo, err := storage.New(ctx, storage.Config{
		Kind:       "mongodb",
		URI:        cfg.MongoURI,
		Database:   cfg.Database,
		Collection: cfg.Collection,
	})
	if err != nil {
		return fmt.Errorf("init repo: %w", err)
	}
	defer repo.Close(ctx)

	if cfg.CreateIndexes {
		if err := repo.EnsureNaturalKeyIndex(ctx); err != nil {
			return err
		}
	}

	mode := "INSERT"
	if cfg.Upsert {
		mode = "UPSERT"
	}
	log.Printf("mode: %s", mode)

	written, err := pipeline.Run(ctx, r, repo, pipeline.Options{
		BatchSize: cfg.BatchSize,
		Upsert:    cfg.Upsert,
	})
	if err != nil {
		return err
	}

	log.Printf("written %d documents into %s.%s (skipped_rows=%d)",
		written, cfg.Database, cfg.Collection, r.Skipped)
	if verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
	return nil
}

// preview prints up to previewDocs transformed documents from the first
// non-empty chunk as indented JSON.
func preview(w io.Writer, r *reader.Reader) error {
	for {
		docs, err := r.Next()
		if err == io.EOF {
			log.Printf("WARNING: CSV appears empty; nothing to preview")
			return nil
		}
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			continue
		}

		if len(docs) > previewDocs {
			docs = docs[:previewDocs]
		}
		log.Printf("previewing %d transformed documents (dry-run):", len(docs))
		out, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("encode preview: %w", err)
		}
		fmt.Fprintln(w, string(out))
		return nil
	}
}
