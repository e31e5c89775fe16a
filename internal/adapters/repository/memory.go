package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/cvparse/internal/domain/model"
)

// MemoryStore keeps jobs in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	jobs  map[string]model.Job
	order []string // submission order, oldest first
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]model.Job)}
}

// Save stores j.
func (s *MemoryStore) Save(_ context.Context, j model.Job) error { //nolint:gocritic // hugeParam: jobs travel by value
	defer observe("save", time.Now())
	if j.ID == "" {
		return ErrInvalidJob
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[j.ID]; !ok {
		s.order = append(s.order, j.ID)
	}
	s.jobs[j.ID] = j
	return nil
}

// Get returns the job with id.
func (s *MemoryStore) Get(_ context.Context, id string) (model.Job, error) {
	defer observe("get", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return model.Job{}, ErrNotFound
	}
	return j, nil
}

// List returns up to limit jobs, newest first.
func (s *MemoryStore) List(_ context.Context, limit int) ([]model.Job, error) {
	defer observe("list", time.Now())
	if err := checkLimit(limit); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newest(limit), nil
}

// All returns every job, newest first.
func (s *MemoryStore) All(_ context.Context) ([]model.Job, error) {
	defer observe("all", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newest(len(s.order)), nil
}

func (s *MemoryStore) newest(limit int) []model.Job {
	n := min(limit, len(s.order))
	out := make([]model.Job, 0, n)
	for i := len(s.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.jobs[s.order[i]])
	}
	return out
}

// Delete removes the job with id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	defer observe("delete", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return nil
	}
	delete(s.jobs, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored jobs.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
