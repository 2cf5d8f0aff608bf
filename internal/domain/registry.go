package domain

import (
	"context"
	"sync"
)

// PairSource provides the set of tradable pair identifiers, typically
// backed by the upstream exchange's product listing.
type PairSource interface {
	ListProducts(ctx context.Context) ([]string, error)
}

// PairRegistry is the process-wide pair-membership cache. The tradable
// pair set is fetched lazily on first lookup and reused for the life of
// the process. Safe for concurrent use; population is all-or-nothing,
// so a failed fetch leaves the registry empty and the next lookup
// retries.
type PairRegistry struct {
	mu     sync.RWMutex
	source PairSource
	pairs  map[string]bool
	loaded bool
}

// NewPairRegistry creates an unpopulated PairRegistry backed by the
// given source.
func NewPairRegistry(source PairSource) *PairRegistry {
	return &PairRegistry{source: source}
}

// Valid reports whether id is a tradable pair identifier, populating
// the registry from the source on first use.
func (r *PairRegistry) Valid(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	if r.loaded {
		ok := r.pairs[id]
		r.mu.RUnlock()
		return ok, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	// Double-check after acquiring write lock.
	if r.loaded {
		return r.pairs[id], nil
	}

	ids, err := r.source.ListProducts(ctx)
	if err != nil {
		return false, err
	}

	pairs := make(map[string]bool, len(ids))
	for _, pid := range ids {
		pairs[pid] = true
	}
	r.pairs = pairs
	r.loaded = true

	return r.pairs[id], nil
}
