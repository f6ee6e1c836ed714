// Package status reports the health of the storefront's upstream
// dependencies for the health endpoint.
package status

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// State is the health of one dependency.
type State string

const (
	StateOK       State = "ok"
	StateDegraded State = "degraded"
)

// Component is one probed subsystem.
type Component struct {
	Name   string `json:"name"`
	Status State  `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Summary is the health snapshot served by the health endpoint.
type Summary struct {
	Status     State       `json:"status"`
	CheckedAt  time.Time   `json:"checkedAt"`
	Components []Component `json:"components"`
}

// Probe checks one dependency. A nil error means healthy.
type Probe func(ctx context.Context) error

// Checker runs named probes with a shared timeout and caches the result
// briefly so health polling does not hammer the backends.
type Checker struct {
	timeout time.Duration
	ttl     time.Duration

	mu     sync.Mutex
	names  []string
	probes map[string]Probe

	cached  Summary
	expires time.Time
}

// NewChecker builds a checker. Zero timeout and ttl get sane defaults.
func NewChecker(timeout, ttl time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Checker{
		timeout: timeout,
		ttl:     ttl,
		probes:  map[string]Probe{},
	}
}

// Register adds a probe under a stable component name. Registration order
// is the report order.
func (c *Checker) Register(name string, probe Probe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.probes[name]; !exists {
		c.names = append(c.names, name)
	}
	c.probes[name] = probe
}

// Check runs every probe concurrently and returns the combined summary.
// A fresh cached summary is returned as-is.
func (c *Checker) Check(ctx context.Context) Summary {
	c.mu.Lock()
	if time.Now().Before(c.expires) {
		cached := c.cached
		c.mu.Unlock()
		return cached
	}
	names := append([]string(nil), c.names...)
	probes := make(map[string]Probe, len(c.probes))
	for name, probe := range c.probes {
		probes[name] = probe
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	components := make([]Component, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			comp := Component{Name: name, Status: StateOK}
			if err := probes[name](gctx); err != nil {
				comp.Status = StateDegraded
				comp.Error = err.Error()
			}
			components[i] = comp
			return nil
		})
	}
	_ = g.Wait()

	summary := Summary{Status: StateOK, CheckedAt: time.Now(), Components: components}
	for _, comp := range components {
		if comp.Status != StateOK {
			summary.Status = StateDegraded
			break
		}
	}

	c.mu.Lock()
	c.cached = summary
	c.expires = summary.CheckedAt.Add(c.ttl)
	c.mu.Unlock()
	return summary
}
