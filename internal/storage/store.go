package storage

import (
	"context"

	"fuzzyreg/internal/inference"
)

// RunStore persists inference results for later inspection.
type RunStore interface {
	// SaveRun records one result and returns its generated ID.
	SaveRun(ctx context.Context, res inference.Result) (string, error)

	// SaveRuns records several results atomically.
	SaveRuns(ctx context.Context, results []inference.Result) ([]string, error)

	// ListRuns returns up to limit runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// GetRun retrieves a run by ID. Missing runs wrap ErrRunNotFound.
	GetRun(ctx context.Context, id string) (Run, error)

	Close() error
}

var _ RunStore = (*SQLiteStore)(nil)
