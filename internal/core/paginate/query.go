// Package paginate drives cursor based infinite lists: one Query per parameter
// set, merged pages deduplicated by key, and a staleness aware cache of queries
package paginate

import (
	"context"
	"errors"
	"sync"
	"time"

	"videotube/internal/core/media"
)

// State of a Query
type State uint8

const (
	Idle State = iota
	LoadingFirst
	Ready
	LoadingNext
	Exhausted
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case LoadingFirst:
		return "loading_first"
	case Ready:
		return "ready"
	case LoadingNext:
		return "loading_next"
	case Exhausted:
		return "exhausted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetcher loads the page at cursor; "" is the first page
// Cursors are opaque and passed back verbatim
type Fetcher[T media.Keyed] func(ctx context.Context, cursor string) (media.Page[T], error)

// Snapshot is a consistent copy of a Query's state
type Snapshot[T media.Keyed] struct {
	Items          []T
	State          State
	IsLoadingFirst bool
	IsLoadingNext  bool
	HasMore        bool
	Err            error
	Pages          int
	FetchedAt      time.Time
}

type call struct {
	done chan struct{}
	err  error
}

func (c *call) wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Query is one paginated list; safe for concurrent use
// Fetches run outside the lock and at most one is in flight at a time
type Query[T media.Keyed] struct {
	mu    sync.Mutex
	fetch Fetcher[T]
	now   func() time.Time

	items     []T
	seen      map[string]struct{}
	cursor    string
	pages     int
	state     State
	err       error
	fetchedAt time.Time

	gen      uint64
	inflight *call
}

// NewQuery returns an idle Query over fetch
func NewQuery[T media.Keyed](fetch Fetcher[T]) *Query[T] {
	return &Query[T]{fetch: fetch, now: time.Now, seen: map[string]struct{}{}}
}

// FetchFirstPage drops merged state and loads from an empty cursor
// A fetch already in flight is superseded; its result is discarded
func (q *Query[T]) FetchFirstPage(ctx context.Context) error {
	q.mu.Lock()
	return q.runLocked(ctx, true)
}

// FetchNextPage loads the page after the last seen cursor
// No-op while exhausted; joins the in-flight fetch while loading
func (q *Query[T]) FetchNextPage(ctx context.Context) error {
	q.mu.Lock()
	switch q.state {
	case LoadingFirst, LoadingNext:
		c := q.inflight
		q.mu.Unlock()
		return c.wait(ctx)
	case Exhausted:
		q.mu.Unlock()
		return nil
	case Idle:
		return q.runLocked(ctx, true)
	case Failed:
		if q.pages == 0 {
			return q.runLocked(ctx, true)
		}
	}
	return q.runLocked(ctx, false)
}

// runLocked is entered with q.mu held and releases it
func (q *Query[T]) runLocked(ctx context.Context, first bool) error {
	if first {
		q.gen++
		q.items, q.seen = nil, map[string]struct{}{}
		q.cursor, q.pages = "", 0
		q.state = LoadingFirst
	} else {
		q.state = LoadingNext
	}
	q.err = nil
	c := &call{done: make(chan struct{})}
	q.inflight = c
	gen, cursor := q.gen, q.cursor
	q.mu.Unlock()

	page, err := q.fetch(ctx, cursor)

	q.mu.Lock()
	if gen == q.gen && q.inflight == c {
		q.inflight = nil
		q.apply(page, err)
	}
	q.mu.Unlock()

	c.err = err
	close(c.done)
	return err
}

func (q *Query[T]) apply(page media.Page[T], err error) {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// the caller walked away; fall back to what we had
			if q.pages == 0 {
				q.state = Idle
			} else {
				q.state = Ready
			}
			return
		}
		q.err = err
		q.state = Failed
		return
	}
	for _, it := range page.Items {
		k := it.Key()
		if _, dup := q.seen[k]; dup {
			continue
		}
		q.seen[k] = struct{}{}
		q.items = append(q.items, it)
	}
	q.pages++
	if q.pages == 1 {
		q.fetchedAt = q.now()
	}
	q.cursor = page.NextPageToken
	if q.cursor == "" {
		q.state = Exhausted
	} else {
		q.state = Ready
	}
}

// Snapshot returns a copy of the current state
func (q *Query[T]) Snapshot() Snapshot[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := make([]T, len(q.items))
	copy(items, q.items)
	return Snapshot[T]{
		Items:          items,
		State:          q.state,
		IsLoadingFirst: q.state == LoadingFirst,
		IsLoadingNext:  q.state == LoadingNext,
		HasMore:        q.pages > 0 && q.cursor != "" && q.state != Exhausted,
		Err:            q.err,
		Pages:          q.pages,
		FetchedAt:      q.fetchedAt,
	}
}

// canContinue reports whether an automatic continuation may start now
func (q *Query[T]) canContinue() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state == Ready && q.cursor != ""
}

// freshAt reports whether the first page was loaded within window of now
func (q *Query[T]) freshAt(now time.Time, window time.Duration) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	switch q.state {
	case LoadingFirst:
		return true
	case Idle, Failed:
		if q.pages == 0 {
			return false
		}
	}
	return now.Sub(q.fetchedAt) < window
}

// Trigger binds a proximity Trigger to this query's FetchNextPage
func (q *Query[T]) Trigger() *Trigger {
	return NewTrigger(q.canContinue, q.FetchNextPage)
}
