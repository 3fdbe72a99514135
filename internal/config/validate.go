package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding worth surfacing that does not
	// block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path names the offending
// option (flag name without the dash).
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where one is expected.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static checks over cfg and returns every finding. It
// does not mutate cfg; callers decide whether warnings block execution.
func Validate(cfg Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(cfg.CSVPath) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "csv",
			Message:  "csv path is required (flag -csv or env CSV_PATH)",
		})
	}

	// Store settings only matter when the run will contact the store.
	if !cfg.DryRun {
		if strings.TrimSpace(cfg.MongoURI) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "mongo-uri",
				Message:  "mongo connection string must not be empty",
			})
		}
		if strings.TrimSpace(cfg.Database) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "db",
				Message:  "database name must not be empty",
			})
		}
		if strings.TrimSpace(cfg.Collection) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "collection",
				Message:  "collection name must not be empty",
			})
		}
	}

	if cfg.BatchSize <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "batch-size",
			Message:  fmt.Sprintf("batch size must be positive, got %d", cfg.BatchSize),
		})
	}
	if cfg.ChunkSize <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "chunksize",
			Message:  fmt.Sprintf("chunk size must be positive, got %d", cfg.ChunkSize),
		})
	}

	if cfg.DryRun && cfg.CreateIndexes {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "create-indexes",
			Message:  "ignored in dry-run: the store is never contacted",
		})
	}

	return issues
}
