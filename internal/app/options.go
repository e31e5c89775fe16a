package service

import (
	"github.com/okian/cvparse/internal/adapters/blob"
	"github.com/okian/cvparse/internal/adapters/repository"
	"github.com/okian/cvparse/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of extraction workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the fingerprint cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMinTextLength sets the shortest text accepted for extraction.
func WithMinTextLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minTextLength = n
		}
	}
}

// WithPDF enables PDF decoding.
func WithPDF(enabled bool) Option {
	return func(s *Service) {
		s.pdfEnabled = enabled
	}
}

// WithStore sets the job store. The default keeps jobs in memory.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithBlobStore sets where uploads and generated documents are written.
func WithBlobStore(store blob.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.blobs = store
		}
	}
}

// WithStoragePath sets the root of the default filesystem blob store.
func WithStoragePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.storagePath = path
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
