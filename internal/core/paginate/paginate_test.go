package paginate

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"videotube/internal/core/media"
)

func vids(ids ...string) []media.Video {
	out := make([]media.Video, len(ids))
	for i, id := range ids {
		out[i] = media.Video{ID: id}
	}
	return out
}

func ids(items []media.Video) string {
	s := ""
	for _, v := range items {
		s += v.ID
	}
	return s
}

// pages serves a fixed cursor chain: "" -> p[0], "c1" -> p[1], ...
type pages struct {
	calls   atomic.Int32
	cursors []string
	mu      sync.Mutex
	data    [][]media.Video
	fail    error
}

func (p *pages) fetch(_ context.Context, cursor string) (media.Page[media.Video], error) {
	p.calls.Add(1)
	p.mu.Lock()
	p.cursors = append(p.cursors, cursor)
	fail := p.fail
	p.mu.Unlock()
	if fail != nil {
		return media.Page[media.Video]{}, fail
	}
	idx := 0
	if cursor != "" {
		idx = int(cursor[1] - '0')
	}
	pg := media.Page[media.Video]{Items: p.data[idx]}
	if idx+1 < len(p.data) {
		pg.NextPageToken = "c" + string(rune('0'+idx+1))
	}
	return pg, nil
}

func TestQuery_DedupeAcrossPages(t *testing.T) {
	src := &pages{data: [][]media.Video{vids("A", "B", "C"), vids("C", "D")}}
	q := NewQuery(src.fetch)
	ctx := context.Background()

	if err := q.FetchFirstPage(ctx); err != nil {
		t.Fatalf("first: %v", err)
	}
	snap := q.Snapshot()
	if snap.State != Ready || !snap.HasMore || ids(snap.Items) != "ABC" {
		t.Fatalf("after first: %+v", snap)
	}
	if err := q.FetchNextPage(ctx); err != nil {
		t.Fatalf("next: %v", err)
	}
	snap = q.Snapshot()
	if ids(snap.Items) != "ABCD" || snap.State != Exhausted || snap.HasMore {
		t.Fatalf("after next: %+v", snap)
	}
}

func TestQuery_ExhaustedIsNoop(t *testing.T) {
	src := &pages{data: [][]media.Video{vids("A")}}
	q := NewQuery(src.fetch)
	ctx := context.Background()
	_ = q.FetchFirstPage(ctx)
	for range 3 {
		if err := q.FetchNextPage(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if n := src.calls.Load(); n != 1 {
		t.Fatalf("network calls = %d, want 1", n)
	}
}

func TestQuery_FirstPageResetsCursor(t *testing.T) {
	src := &pages{data: [][]media.Video{vids("A"), vids("B"), vids("C")}}
	q := NewQuery(src.fetch)
	ctx := context.Background()
	_ = q.FetchFirstPage(ctx)
	_ = q.FetchNextPage(ctx)
	_ = q.FetchFirstPage(ctx)

	if got := q.Snapshot(); ids(got.Items) != "A" || got.Pages != 1 {
		t.Fatalf("after reset: %+v", got)
	}
	want := []string{"", "c1", ""}
	for i, c := range want {
		if src.cursors[i] != c {
			t.Fatalf("cursors = %v, want %v", src.cursors, want)
		}
	}
}

func TestQuery_ConcurrentNextCoalesces(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	q := NewQuery(func(_ context.Context, cursor string) (media.Page[media.Video], error) {
		calls.Add(1)
		if cursor == "" {
			return media.Page[media.Video]{Items: vids("A"), NextPageToken: "n"}, nil
		}
		<-release
		return media.Page[media.Video]{Items: vids("B")}, nil
	})
	ctx := context.Background()
	_ = q.FetchFirstPage(ctx)

	var wg sync.WaitGroup
	started := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		close(started)
		_ = q.FetchNextPage(ctx)
	}()
	<-started
	for q.Snapshot().State != LoadingNext {
		time.Sleep(time.Millisecond)
	}
	if !q.Snapshot().IsLoadingNext {
		t.Fatalf("expected loading next")
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = q.FetchNextPage(ctx)
	}()
	time.Sleep(5 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 2 {
		t.Fatalf("calls = %d, want 2", n)
	}
	if got := ids(q.Snapshot().Items); got != "AB" {
		t.Fatalf("items = %s", got)
	}
}

func TestQuery_FailureThenRecovery(t *testing.T) {
	src := &pages{data: [][]media.Video{vids("A"), vids("B")}}
	q := NewQuery(src.fetch)
	ctx := context.Background()
	_ = q.FetchFirstPage(ctx)

	boom := errors.New("boom")
	src.fail = boom
	if err := q.FetchNextPage(ctx); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	snap := q.Snapshot()
	if snap.State != Failed || !errors.Is(snap.Err, boom) || ids(snap.Items) != "A" {
		t.Fatalf("failed snapshot: %+v", snap)
	}

	src.fail = nil
	if err := q.FetchNextPage(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if snap := q.Snapshot(); ids(snap.Items) != "AB" || snap.Err != nil {
		t.Fatalf("recovered snapshot: %+v", snap)
	}
}

func TestQuery_CancellationRestoresState(t *testing.T) {
	q := NewQuery(func(ctx context.Context, _ string) (media.Page[media.Video], error) {
		return media.Page[media.Video]{}, context.Canceled
	})
	if err := q.FetchFirstPage(context.Background()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if snap := q.Snapshot(); snap.State != Idle || snap.Err != nil {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestTrigger_EdgeRule(t *testing.T) {
	var fired int
	ready := true
	tr := NewTrigger(func() bool { return ready }, func(context.Context) error { fired++; return nil })
	ctx := context.Background()

	steps := []struct {
		near bool
		want int
	}{
		{true, 1},  // in range at first measurement
		{true, 1},  // still in range
		{true, 1},  // short page stays visible
		{false, 1}, // scrolled away
		{true, 2},  // came back
		{true, 2},
	}
	for i, s := range steps {
		_, _ = tr.Observe(ctx, s.near)
		if fired != s.want {
			t.Fatalf("step %d: fired = %d, want %d", i, fired, s.want)
		}
	}

	ready = false
	_, _ = tr.Observe(ctx, false)
	if ok, _ := tr.Observe(ctx, true); ok || fired != 2 {
		t.Fatalf("must not fire while not ready")
	}

	tr.Reset()
	ready = true
	if ok, _ := tr.Observe(ctx, false); ok {
		t.Fatalf("out of range never fires")
	}
}

func TestQueryTrigger_StopsWhenExhausted(t *testing.T) {
	src := &pages{data: [][]media.Video{vids("A"), vids("B")}}
	q := NewQuery(src.fetch)
	ctx := context.Background()
	tr := q.Trigger()

	if ok, _ := tr.Observe(ctx, true); ok {
		t.Fatalf("idle query has nothing to continue")
	}
	_ = q.FetchFirstPage(ctx)
	_, _ = tr.Observe(ctx, false)
	if ok, err := tr.Observe(ctx, true); !ok || err != nil {
		t.Fatalf("expected continuation, got %v %v", ok, err)
	}
	_, _ = tr.Observe(ctx, false)
	if ok, _ := tr.Observe(ctx, true); ok {
		t.Fatalf("exhausted query must not continue")
	}
	if n := src.calls.Load(); n != 2 {
		t.Fatalf("calls = %d", n)
	}
}

func TestQueryTrigger_InRangeWhileFirstPageLoads(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	q := NewQuery(func(_ context.Context, cursor string) (media.Page[media.Video], error) {
		calls.Add(1)
		if cursor == "" {
			<-release
			return media.Page[media.Video]{Items: vids("A"), NextPageToken: "n"}, nil
		}
		return media.Page[media.Video]{Items: vids("B")}, nil
	})
	ctx := context.Background()
	tr := q.Trigger()

	done := make(chan error, 1)
	go func() { done <- q.FetchFirstPage(ctx) }()
	for q.Snapshot().State != LoadingFirst {
		time.Sleep(time.Millisecond)
	}
	if ok, _ := tr.Observe(ctx, true); ok {
		t.Fatalf("must not continue while the first page loads")
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first: %v", err)
	}

	if ok, err := tr.Observe(ctx, true); !ok || err != nil {
		t.Fatalf("short first page should continue once, got %v %v", ok, err)
	}
	if ok, _ := tr.Observe(ctx, true); ok {
		t.Fatalf("staying in range must not refire")
	}
	snap := q.Snapshot()
	if calls.Load() != 2 || ids(snap.Items) != "AB" || snap.HasMore {
		t.Fatalf("calls = %d, snapshot = %+v", calls.Load(), snap)
	}
}

func TestOrchestrator_NewestSearchWins(t *testing.T) {
	o := New[media.Video](time.Minute)
	started := make(chan struct{})
	var calls atomic.Int32
	fetch := func(ctx context.Context, _ string) (media.Page[media.Video], error) {
		if calls.Add(1) == 1 {
			close(started)
			<-ctx.Done()
			return media.Page[media.Video]{}, ctx.Err()
		}
		return media.Page[media.Video]{Items: vids("R")}, nil
	}
	key := Key("search", url.Values{"query": {"react"}})

	var l Latest
	olderCtx, doneOlder := l.Begin(context.Background())
	defer doneOlder()
	older := make(chan error, 1)
	go func() {
		_, err := o.Load(olderCtx, key, fetch, 0)
		older <- err
	}()
	<-started

	newestCtx, doneNewest := l.Begin(context.Background())
	defer doneNewest()
	q, err := o.Load(newestCtx, key, fetch, 0)
	if err != nil {
		t.Fatalf("newest request must complete, got %v", err)
	}
	if err := <-older; !errors.Is(err, context.Canceled) {
		t.Fatalf("older err = %v", err)
	}
	if snap := q.Snapshot(); snap.State != Exhausted || ids(snap.Items) != "R" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestQuery_FirstPageSupersedesInFlight(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	q := NewQuery(func(_ context.Context, _ string) (media.Page[media.Video], error) {
		if calls.Add(1) == 1 {
			<-release
			return media.Page[media.Video]{Items: vids("OLD")}, nil
		}
		return media.Page[media.Video]{Items: vids("NEW")}, nil
	})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- q.FetchFirstPage(ctx) }()
	for calls.Load() != 1 {
		time.Sleep(time.Millisecond)
	}
	if err := q.FetchFirstPage(ctx); err != nil {
		t.Fatalf("second: %v", err)
	}
	close(release)
	<-done
	if got := ids(q.Snapshot().Items); got != "NEW" {
		t.Fatalf("superseded page leaked in: %s", got)
	}
}

func TestOrchestrator_SweepsExpiredKeys(t *testing.T) {
	o := New[media.Video](time.Minute)
	now := time.Unix(1_700_000_000, 0)
	o.cache.now = func() time.Time { return now }
	ctx := context.Background()
	src := &pages{data: [][]media.Video{vids("A")}}

	for _, prefix := range []string{"r", "re", "rea"} {
		_, _ = o.Load(ctx, Key("search", url.Values{"query": {prefix}}), src.fetch, 0)
	}
	// a cancelled prefix never loads a page
	o.Open(Key("search", url.Values{"query": {"reac"}}), src.fetch, 0)
	if n := o.cache.Len(); n != 4 {
		t.Fatalf("len = %d", n)
	}

	now = now.Add(2 * time.Minute)
	_, _ = o.Load(ctx, Key("search", url.Values{"query": {"react"}}), src.fetch, 0)
	if n := o.cache.Len(); n != 1 {
		t.Fatalf("expired keys kept, len = %d", n)
	}
}

func TestOrchestrator_StalenessAndKeys(t *testing.T) {
	o := New[media.Video](time.Minute)
	now := time.Unix(1_700_000_000, 0)
	o.cache.now = func() time.Time { return now }
	ctx := context.Background()

	src := &pages{data: [][]media.Video{vids("A", "B"), vids("C")}}
	key := Key("search", url.Values{"query": {"go"}})

	q, err := o.Load(ctx, key, src.fetch, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	_ = q.FetchNextPage(ctx)

	again, _ := o.Load(ctx, key, src.fetch, 0)
	if again != q || ids(again.Snapshot().Items) != "ABC" || src.calls.Load() != 2 {
		t.Fatalf("fresh key must reuse merged pages without network, calls = %d", src.calls.Load())
	}

	other := &pages{data: [][]media.Video{vids("X")}}
	_, _ = o.Load(ctx, Key("search", url.Values{"query": {"rust"}}), other.fetch, 0)
	if other.calls.Load() != 1 || src.calls.Load() != 2 {
		t.Fatalf("keys must be independent")
	}

	now = now.Add(2 * time.Minute)
	fresh, _ := o.Load(ctx, key, src.fetch, 0)
	if fresh == q || ids(fresh.Snapshot().Items) != "AB" || src.calls.Load() != 3 {
		t.Fatalf("stale key must refetch from the first page")
	}

	o.Invalidate(key)
	if _, ok := o.cache.Fresh(key); ok {
		t.Fatalf("invalidated key must not be fresh")
	}
}

func TestOrchestrator_PerKeyWindow(t *testing.T) {
	o := New[media.Video](time.Minute)
	now := time.Unix(1_700_000_000, 0)
	o.cache.now = func() time.Time { return now }
	src := &pages{data: [][]media.Video{vids("A")}}

	_, _ = o.Load(context.Background(), "video?id=a", src.fetch, 10*time.Minute)
	now = now.Add(5 * time.Minute)
	_, _ = o.Load(context.Background(), "video?id=a", src.fetch, 10*time.Minute)
	if src.calls.Load() != 1 {
		t.Fatalf("per-key window not honored, calls = %d", src.calls.Load())
	}
}

func TestLatest_CancelsPrevious(t *testing.T) {
	var l Latest
	first, done1 := l.Begin(context.Background())
	defer done1()
	second, done2 := l.Begin(context.Background())
	defer done2()

	if first.Err() == nil {
		t.Fatalf("first request should be cancelled")
	}
	if second.Err() != nil {
		t.Fatalf("newest request must stay alive")
	}
	l.Stop()
	if second.Err() == nil {
		t.Fatalf("Stop should cancel the current request")
	}
}

func TestKey(t *testing.T) {
	a := Key("search", url.Values{"b": {"2"}, "a": {"1"}})
	b := Key("search", url.Values{"a": {"1"}, "b": {"2"}})
	if a != b || a != "search?a=1&b=2" {
		t.Fatalf("keys %q %q", a, b)
	}
	if Key("popular", nil) != "popular" {
		t.Fatalf("bare key")
	}
}
