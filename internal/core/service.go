package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/logging"
)

// DefaultExportTimeout bounds a single fetch-and-render.
const DefaultExportTimeout = 30 * time.Second

// ServiceOptions tunes the export path. Zero values take the defaults.
type ServiceOptions struct {
	MaxConcurrentExports int
	ExportWait           time.Duration
	ExportTimeout        time.Duration
}

// Service accepts submissions and produces reports. It is safe for
// concurrent use.
type Service struct {
	store         Store
	exports       *ExportLimiter
	exportTimeout time.Duration
}

// NewService creates a Service backed by store.
func NewService(store Store, opts ServiceOptions) *Service {
	if opts.ExportTimeout <= 0 {
		opts.ExportTimeout = DefaultExportTimeout
	}
	return &Service{
		store:         store,
		exports:       NewExportLimiter(opts.MaxConcurrentExports, opts.ExportWait),
		exportTimeout: opts.ExportTimeout,
	}
}

// Submit validates a submission and persists it, returning the stored id.
//
// Values are trimmed before validation and storage. The returned error is a
// *ValidationError when any field is missing or malformed,
// ErrIdempotencyKeyReused when the key belongs to different values and a
// *StorageError when the store fails; nothing is retried.
func (s *Service) Submit(ctx context.Context, raw NewSubmission) (int64, error) {
	log := logging.FromContext(ctx)
	sub := raw.Normalized()

	if verr := ValidateSubmission(sub); verr != nil {
		log.Info("submission rejected", "fields", len(verr.Errors), "error", verr)
		return 0, verr
	}

	id, err := s.store.InsertSubmission(ctx, sub)
	if errors.Is(err, ErrIdempotencyKeyReused) {
		log.Info("submission rejected", "reason", "idempotency key reused", "ip", IPAddressFromContext(ctx))
		return 0, err
	}
	if err != nil {
		return 0, storageErr("insert submission", err)
	}

	log.Info("submission stored",
		"id", id,
		"mess", sub.DiningMessName,
		"meal", sub.MealType,
		"idempotent", sub.IdempotencyKey != "",
		"ip", IPAddressFromContext(ctx),
	)
	return id, nil
}

// ListSubmissions returns every stored submission, oldest first.
func (s *Service) ListSubmissions(ctx context.Context) ([]Submission, error) {
	records, err := s.store.ListSubmissions(ctx)
	if err != nil {
		return nil, storageErr("list submissions", err)
	}
	return records, nil
}

// Export reads the full dataset and hands it to render. The whole document
// is built in memory, so a failure at any point yields no partial output.
// Concurrent exports are bounded; a request that cannot get a slot in time
// fails with ErrTooManyExports.
func (s *Service) Export(ctx context.Context, render RenderFunc) ([]byte, error) {
	if err := s.exports.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.exports.Release()

	ctx, cancel := context.WithTimeout(ctx, s.exportTimeout)
	defer cancel()

	start := time.Now()
	records, err := s.ListSubmissions(ctx)
	if err != nil {
		return nil, err
	}

	data, err := render(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	logging.FromContext(ctx).Info("report rendered",
		"records", len(records),
		"bytes", len(data),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return data, nil
}

// CountSubmissions returns the number of stored submissions.
func (s *Service) CountSubmissions(ctx context.Context) (int64, error) {
	n, err := s.store.CountSubmissions(ctx)
	if err != nil {
		return 0, storageErr("count submissions", err)
	}
	return n, nil
}

// Ping checks the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// ExportStatus reports export slot usage.
func (s *Service) ExportStatus() ExportLimiterStatus {
	return s.exports.Status()
}

// WaitForExports blocks until in-flight exports finish or ctx ends.
func (s *Service) WaitForExports(ctx context.Context) error {
	return s.exports.WaitForDrain(ctx)
}
