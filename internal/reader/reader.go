// Package reader streams the source CSV in bounded-memory chunks.
//
// The header is validated once against the expected schema; after that the
// file is pulled one chunk at a time, each chunk transformed into
// normalized documents before the next chunk is read. At most one chunk of
// raw rows plus its derived documents is held in memory, so total input
// size is unbounded.
package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"mongoetl/internal/record"
	"mongoetl/internal/transform"
)

// Reader is a single-use pull source of document chunks. Once Next has
// returned io.EOF the reader is exhausted and cannot be restarted.
type Reader struct {
	f         *os.File
	cr        *csv.Reader
	columns   []string // column name per position; "" for ignored extras
	chunkSize int
	line      int // last physical line handed out; header is line 1
	done      bool

	// nowFn stamps ingested_at/last_modified_at on fresh documents; a seam
	// for tests.
	nowFn func() time.Time

	// Skipped counts rows dropped for a malformed CSV line, a wrong field
	// count, or an incomplete natural key.
	Skipped int64
}

// Open opens the source file and validates its header. Missing expected
// columns are fatal: downstream field access by name would be silently
// wrong. Extra columns are logged once and ignored.
func Open(path string, chunkSize int) (*Reader, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // width is enforced per row against the header

	header, err := cr.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	columns, err := validateHeader(header)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Reader{
		f:         f,
		cr:        cr,
		columns:   columns,
		chunkSize: chunkSize,
		line:      1,
		nowFn:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// validateHeader checks the header against transform.Columns and returns
// the positional column mapping used to build row maps.
func validateHeader(header []string) ([]string, error) {
	expected := make(map[string]bool, len(transform.Columns))
	for _, c := range transform.Columns {
		expected[c] = true
	}

	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	var extra []string
	for i, h := range header {
		h = strings.TrimSpace(h)
		if expected[h] {
			columns[i] = h
			seen[h] = true
			continue
		}
		extra = append(extra, h)
	}

	var missing []string
	for _, c := range transform.Columns {
		if !seen[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing expected columns: %s", strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		log.Printf("WARNING: extra columns present and will be ignored: %s", strings.Join(extra, ", "))
	}
	return columns, nil
}

// Next reads one chunk of raw rows and returns the documents derived from
// it. Rows failing the natural-key check are excluded, so the slice may be
// empty. Next returns io.EOF once the file is exhausted.
func (r *Reader) Next() ([]*record.Admission, error) {
	if r.done {
		return nil, io.EOF
	}

	docs := make([]*record.Admission, 0, r.chunkSize)
	rows := 0
	for rows < r.chunkSize {
		rec, err := r.cr.Read()
		if err == io.EOF {
			r.done = true
			break
		}
		r.line++
		rows++

		if err != nil {
			log.Printf("WARNING: line %d: parse: %v", r.line, err)
			r.Skipped++
			continue
		}
		if len(rec) != len(r.columns) {
			log.Printf("WARNING: line %d: incorrect number of fields: expected %d, got %d",
				r.line, len(r.columns), len(rec))
			r.Skipped++
			continue
		}

		row := make(map[string]string, len(transform.Columns))
		for i, v := range rec {
			if r.columns[i] != "" {
				row[r.columns[i]] = v
			}
		}

		doc, ok := transform.FromRow(row, r.nowFn())
		if !ok {
			r.Skipped++
			continue
		}
		docs = append(docs, doc)
	}

	if rows == 0 && r.done {
		return nil, io.EOF
	}
	return docs, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}
