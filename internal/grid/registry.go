package grid

import (
	"sync"
	"time"

	"laraibcreative.com/store-web/internal/catalog"
)

// registryLimit bounds the number of visitor loaders kept in memory.
const registryLimit = 1024

// Registry hands out one Loader per visitor so that racing filter changes
// from the same browser share a supersession sequence, while different
// visitors never interfere.
type Registry struct {
	svc catalog.Service

	mu      sync.Mutex
	loaders map[string]*registryEntry
}

type registryEntry struct {
	loader   *Loader
	lastUsed time.Time
}

// NewRegistry builds a registry over the given catalog service.
func NewRegistry(svc catalog.Service) *Registry {
	return &Registry{
		svc:     svc,
		loaders: make(map[string]*registryEntry),
	}
}

// For returns the loader for a visitor, creating it on first use. An empty
// id (no session cookie yet) gets a throwaway loader; there is nothing to
// race against without a session.
func (r *Registry) For(visitorID string) *Loader {
	if visitorID == "" {
		return NewLoader(r.svc)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.loaders[visitorID]
	if !ok {
		if len(r.loaders) >= registryLimit {
			r.evictOldest()
		}
		entry = &registryEntry{loader: NewLoader(r.svc)}
		r.loaders[visitorID] = entry
	}
	entry.lastUsed = time.Now()
	return entry.loader
}

// evictOldest drops the least recently used loader. Called with the lock
// held.
func (r *Registry) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, entry := range r.loaders {
		if oldestID == "" || entry.lastUsed.Before(oldest) {
			oldestID = id
			oldest = entry.lastUsed
		}
	}
	if oldestID != "" {
		delete(r.loaders, oldestID)
	}
}
