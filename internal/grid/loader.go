// Package grid orchestrates product-listing fetches for the storefront
// grid. Its job is the ordering guarantee the UI needs: when filter
// changes race, only the most recently issued fetch may reach the screen.
package grid

import (
	"context"
	"sync"
	"time"

	"laraibcreative.com/store-web/internal/catalog"
	"laraibcreative.com/store-web/internal/metrics"
)

// Phase is the grid's display state.
type Phase string

const (
	PhaseLoading   Phase = "loading"
	PhaseError     Phase = "error"
	PhaseEmpty     Phase = "empty"
	PhasePopulated Phase = "populated"
)

// Snapshot is what the grid renders: the phase, the filters it was
// fetched for, and either a result or the error that stopped it.
type Snapshot struct {
	Phase   Phase
	Filters catalog.FilterState
	Result  catalog.ListResult
	Err     error
}

// Loader serializes listing fetches for one visitor. Every Load bumps a
// sequence number and cancels the context of the fetch it supersedes; a
// settled result is applied only while its sequence is still the newest.
// A superseded caller gets ok=false and must not render its result.
type Loader struct {
	svc catalog.Service

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	snap   Snapshot
}

// NewLoader builds a loader over the given catalog service.
func NewLoader(svc catalog.Service) *Loader {
	return &Loader{
		svc:  svc,
		snap: Snapshot{Phase: PhaseLoading, Filters: catalog.DefaultFilterState()},
	}
}

// Load fetches the listing for the given filters. The returned bool is
// false when a newer Load superseded this one while it was in flight; the
// snapshot is then the loader's current (newer) state and must not be
// treated as this call's result.
func (l *Loader) Load(ctx context.Context, state catalog.FilterState) (Snapshot, bool) {
	l.mu.Lock()
	l.seq++
	mine := l.seq
	if l.cancel != nil {
		l.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	start := time.Now()
	result, err := l.svc.List(fetchCtx, state)
	cancel()
	metrics.CatalogDuration.Observe(time.Since(start).Seconds())

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seq != mine {
		// A newer fetch owns the display now; discard this result.
		metrics.CatalogRequests.WithLabelValues("superseded").Inc()
		return l.snap, false
	}

	snap := Snapshot{Filters: state}
	switch {
	case err != nil:
		snap.Phase = PhaseError
		snap.Err = err
	case result.Total == 0 || len(result.Products) == 0:
		snap.Phase = PhaseEmpty
		snap.Result = result
	default:
		snap.Phase = PhasePopulated
		snap.Result = result
	}
	metrics.CatalogRequests.WithLabelValues(string(snap.Phase)).Inc()
	l.snap = snap
	return snap, true
}

// Current returns the snapshot last applied to the display.
func (l *Loader) Current() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}
