// Package repository stores extraction jobs and their records.
package repository

import (
	"context"
	"time"

	"github.com/okian/cvparse/internal/domain/model"
	"github.com/okian/cvparse/pkg/metrics"
)

// Store provides read/write access to jobs.
type Store interface {
	// Save inserts or replaces the job with the same ID. A replaced job keeps
	// its place in submission order.
	Save(ctx context.Context, j model.Job) error

	// Get returns the job with id or ErrNotFound.
	Get(ctx context.Context, id string) (model.Job, error)

	// List returns up to limit jobs, most recently submitted first.
	List(ctx context.Context, limit int) ([]model.Job, error)

	// All returns every job, most recently submitted first.
	All(ctx context.Context) ([]model.Job, error)

	// Delete removes the job with id. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored jobs.
	Count(ctx context.Context) int
}

func observe(op string, start time.Time) {
	metrics.RecordStoreLatency(op, float64(time.Since(start).Microseconds())/1000)
}

func checkLimit(limit int) error {
	if limit < 1 {
		return ErrInvalidLimit
	}
	return nil
}
