// Package dedupe tracks which documents have already been submitted, keyed by
// a fingerprint of their extracted text.
package dedupe

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"sync/atomic"
)

const defaultMaxSize = 50000

// Deduper maps content fingerprints to the job that first claimed them.
type Deduper interface {
	// Claim records id for fingerprint unless the fingerprint is already
	// known. It returns the owning job id and whether it was already known.
	Claim(ctx context.Context, fingerprint, id string) (owner string, seen bool)

	// Release forgets fingerprint so that a later submission is accepted
	// again. Used when a claimed job could not be enqueued.
	Release(ctx context.Context, fingerprint string)

	Size() int64
}

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize sets how many fingerprints are kept. When full the oldest
// claim is evicted. A value <= 0 disables the bound.
func WithMaxSize(n int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = n
	}
}

type claim struct {
	fingerprint string
	owner       string
}

type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List // front is the newest claim
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a bounded in-memory Deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
		seen:    make(map[string]*list.Element),
		order:   list.New(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) Claim(_ context.Context, fingerprint, id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[fingerprint]; ok {
		return el.Value.(claim).owner, true
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		d.evictOldest()
	}
	d.seen[fingerprint] = d.order.PushFront(claim{fingerprint: fingerprint, owner: id})
	d.size.Add(1)
	return id, false
}

func (d *inMemoryDeduper) Release(_ context.Context, fingerprint string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[fingerprint]; ok {
		d.order.Remove(el)
		delete(d.seen, fingerprint)
		d.size.Add(-1)
	}
}

// evictOldest must be called with d.mu held.
func (d *inMemoryDeduper) evictOldest() {
	el := d.order.Back()
	if el == nil {
		return
	}
	d.order.Remove(el)
	delete(d.seen, el.Value.(claim).fingerprint)
	d.size.Add(-1)
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}

// Fingerprint hashes text after folding case and collapsing whitespace, so
// that the same résumé decoded twice, or re-saved with different line
// breaks, gets the same fingerprint.
func Fingerprint(text string) string {
	norm := strings.ToLower(strings.Join(strings.Fields(text), " "))
	sum := sha256.Sum256([]byte(norm))
	return hex.EncodeToString(sum[:])
}
