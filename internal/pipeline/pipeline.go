// Package pipeline drains the chunked reader into fixed-size write batches
// and flushes them to storage one batch at a time.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"mongoetl/internal/record"
	"mongoetl/internal/storage"
)

// Source is the pull side of the pipeline, satisfied by *reader.Reader.
// Next returns io.EOF once the input is exhausted.
type Source interface {
	Next() ([]*record.Admission, error)
}

// Options configure one run.
type Options struct {
	// BatchSize is the write batch size, independent of the reader's chunk
	// size.
	BatchSize int

	// Upsert selects natural-key merge writes; false means plain unordered
	// inserts.
	Upsert bool
}

// stats accumulates run counters. The pipeline is single-threaded, so
// plain integers suffice.
type stats struct {
	chunks  int64
	docs    int64
	batches int64
	written int64
}

// Run pulls document chunks from src, re-groups them into opts.BatchSize
// write batches, and flushes each batch to repo before pulling the next
// chunk. Batch-level write failures undercount and the run continues; the
// return value is the summed written count across all batches.
func Run(ctx context.Context, src Source, repo storage.Repository, opts Options) (int64, error) {
	if opts.BatchSize <= 0 {
		return 0, fmt.Errorf("batch size must be positive, got %d", opts.BatchSize)
	}

	var st stats
	start := time.Now()
	buf := make([]*record.Admission, 0, opts.BatchSize)

	flush := func() {
		if len(buf) == 0 {
			return
		}
		warnDuplicateKeys(buf)

		var n int64
		if opts.Upsert {
			n = repo.BulkUpsert(ctx, buf)
		} else {
			n = repo.BulkInsert(ctx, buf)
		}
		st.batches++
		st.written += n

		log.Printf("batch=%d size=%d written=%d total_written=%d elapsed=%s",
			st.batches, len(buf), n, st.written, time.Since(start).Truncate(time.Millisecond))
		buf = buf[:0]
	}

	for {
		select {
		case <-ctx.Done():
			return st.written, ctx.Err()
		default:
		}

		docs, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return st.written, fmt.Errorf("read chunk: %w", err)
		}
		st.chunks++
		st.docs += int64(len(docs))

		for _, d := range docs {
			buf = append(buf, d)
			if len(buf) >= opts.BatchSize {
				flush()
			}
		}
	}
	flush()

	log.Printf("summary: chunks=%d documents=%d batches=%d written=%d elapsed=%s",
		st.chunks, st.docs, st.batches, st.written, time.Since(start).Truncate(time.Millisecond))
	return st.written, nil
}

// warnDuplicateKeys logs when two documents in one unordered batch target
// the same natural key. The server applies every upsert; which duplicate's
// attribute values survive is unspecified, so the condition is surfaced
// rather than deduplicated client-side.
func warnDuplicateKeys(batch []*record.Admission) {
	seen := make(map[uint64]int, len(batch))
	dups := 0
	for _, d := range batch {
		h := d.Key().Hash()
		seen[h]++
		if seen[h] == 2 {
			dups++
		}
	}
	if dups > 0 {
		log.Printf("WARNING: %d natural keys appear more than once within this batch", dups)
	}
}
