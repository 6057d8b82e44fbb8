package dashboard

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type Refetcher interface {
	Refetch(ctx context.Context) error
}

type registryEntry struct {
	key string
	r   Refetcher
}

// QueryRegistry maps query keys to the tables showing them.
// Keys are hierarchical: invalidating "grades" also refetches "grades/<id>".
type QueryRegistry struct {
	mu      sync.Mutex
	next    uint64
	entries map[uint64]registryEntry
}

func NewQueryRegistry() *QueryRegistry {
	return &QueryRegistry{entries: make(map[uint64]registryEntry)}
}

// Register adds r under key and returns the func removing it.
func (qr *QueryRegistry) Register(key string, r Refetcher) func() {
	qr.mu.Lock()
	defer qr.mu.Unlock()
	qr.next++
	id := qr.next
	qr.entries[id] = registryEntry{key: key, r: r}
	return func() {
		qr.mu.Lock()
		delete(qr.entries, id)
		qr.mu.Unlock()
	}
}

// Invalidate refetches every entry under key and returns the first error.
func (qr *QueryRegistry) Invalidate(ctx context.Context, key string) error {
	if qr == nil || key == "" {
		return nil
	}

	qr.mu.Lock()
	var matched []registryEntry
	for _, e := range qr.entries {
		if e.key == key || strings.HasPrefix(e.key, key+"/") {
			matched = append(matched, e)
		}
	}
	qr.mu.Unlock()

	var firstErr error
	for _, e := range matched {
		if err := e.r.Refetch(ctx); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "refetching %q", e.key)
		}
	}
	return firstErr
}
