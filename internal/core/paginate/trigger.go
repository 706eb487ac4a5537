package paginate

import (
	"context"
	"sync"
)

// Trigger turns "end of content is within range" observations into page continuations
// It fires on a false to true edge, plus once when the very first observation is
// already in range; staying in range never fires again. An edge seen while the
// list cannot continue is kept until it can
type Trigger struct {
	mu       sync.Mutex
	measured bool
	near     bool

	ready func() bool
	next  func(context.Context) error
}

// NewTrigger fires next when ready reports true at a qualifying edge
func NewTrigger(ready func() bool, next func(context.Context) error) *Trigger {
	return &Trigger{ready: ready, next: next}
}

// Observe records proximity and runs the continuation when the edge rule allows
// fired is false when nothing ran; err is the continuation's result
func (t *Trigger) Observe(ctx context.Context, near bool) (fired bool, err error) {
	t.mu.Lock()
	edge := near && (!t.measured || !t.near)
	if edge && !t.ready() {
		// the edge stays pending until a continuation can start
		t.mu.Unlock()
		return false, nil
	}
	t.measured, t.near = true, near
	t.mu.Unlock()

	if !edge {
		return false, nil
	}
	return true, t.next(ctx)
}

// Reset forgets past observations, e.g. when the list is replaced
func (t *Trigger) Reset() {
	t.mu.Lock()
	t.measured, t.near = false, false
	t.mu.Unlock()
}
