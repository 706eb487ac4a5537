package paginate

import (
	"context"
	"net/url"
	"sync"
	"time"

	"videotube/internal/core/media"
)

// DefaultStaleFor is how long a loaded query is served without refetching
const DefaultStaleFor = 5 * time.Minute

// Key identifies a query by its kind and full parameter set
func Key(kind string, params url.Values) string {
	if len(params) == 0 {
		return kind
	}
	return kind + "?" + params.Encode()
}

type cached[T media.Keyed] struct {
	q        *Query[T]
	staleFor time.Duration
	added    time.Time
}

func (e cached[T]) expired(now time.Time) bool {
	return now.Sub(e.added) >= e.staleFor && !e.q.freshAt(now, e.staleFor)
}

// Cache holds queries by key; entries are fresh for their own staleness window
type Cache[T media.Keyed] struct {
	mu      sync.Mutex
	entries map[string]cached[T]
	now     func() time.Time
}

// NewCache returns an empty Cache
func NewCache[T media.Keyed]() *Cache[T] {
	return &Cache[T]{entries: map[string]cached[T]{}, now: time.Now}
}

// Fresh returns the query for key when it is still within its window
func (c *Cache[T]) Fresh(key string) (*Query[T], bool) {
	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if !ok || !e.q.freshAt(c.now(), e.staleFor) {
		return nil, false
	}
	return e.q, true
}

// Put stores q under key
func (c *Cache[T]) Put(key string, q *Query[T], staleFor time.Duration) {
	if staleFor <= 0 {
		staleFor = DefaultStaleFor
	}
	c.mu.Lock()
	c.entries[key] = cached[T]{q: q, staleFor: staleFor, added: c.now()}
	c.mu.Unlock()
}

// Sweep drops entries past their window, including queries that never loaded,
// and returns how many were removed
func (c *Cache[T]) Sweep() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Delete drops key
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of keys held, fresh or not
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Orchestrator hands out queries per key and reuses them while fresh
type Orchestrator[T media.Keyed] struct {
	mu       sync.Mutex
	cache    *Cache[T]
	staleFor time.Duration
}

// New returns an Orchestrator whose queries default to staleFor
func New[T media.Keyed](staleFor time.Duration) *Orchestrator[T] {
	if staleFor <= 0 {
		staleFor = DefaultStaleFor
	}
	return &Orchestrator[T]{cache: NewCache[T](), staleFor: staleFor}
}

// Open returns the query for key: the cached one while fresh, else a new idle one over fetch
// staleFor overrides the default window for this key when positive
func (o *Orchestrator[T]) Open(key string, fetch Fetcher[T], staleFor time.Duration) *Query[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cache.Sweep()
	if q, ok := o.cache.Fresh(key); ok {
		return q
	}
	if staleFor <= 0 {
		staleFor = o.staleFor
	}
	q := NewQuery(fetch)
	q.now = o.cache.now
	o.cache.Put(key, q, staleFor)
	return q
}

// Load opens key and makes sure its first page is present
// A fresh cached query returns its merged pages without a network call
func (o *Orchestrator[T]) Load(ctx context.Context, key string, fetch Fetcher[T], staleFor time.Duration) (*Query[T], error) {
	q := o.Open(key, fetch, staleFor)
	if q.Snapshot().Pages == 0 {
		return q, q.FetchFirstPage(ctx)
	}
	return q, nil
}

// Invalidate forces the next Open of key to start over
func (o *Orchestrator[T]) Invalidate(key string) { o.cache.Delete(key) }

// Latest keeps only the newest request alive; each Begin cancels the previous one
type Latest struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// Begin derives a context for a new request and cancels the one before it
// The returned func releases the context once the request is done
func (l *Latest) Begin(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.cancel = cancel
	l.mu.Unlock()
	return ctx, cancel
}

// Stop cancels the current request, if any
func (l *Latest) Stop() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()
}
