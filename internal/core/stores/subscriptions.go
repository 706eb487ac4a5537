package stores

import (
	"context"
	"sort"
	"strings"
	"sync"

	perr "videotube/internal/platform/errors"
)

const subscriptionBlob = "subscription-storage"

// Mutation is the server's answer to a subscribe or unsubscribe
// SubscriberCount is set when the server knows the new count
type Mutation struct {
	ChannelID       string `json:"channelId"`
	SubscriberCount *int64 `json:"subscriberCount,omitempty"`
}

// SubscriptionAPI is the authoritative server side of the subscription set
type SubscriptionAPI interface {
	ListSubscriptions(ctx context.Context) ([]string, error)
	Subscribe(ctx context.Context, channelID string) (Mutation, error)
	Unsubscribe(ctx context.Context, channelID string) (Mutation, error)
}

// subscriptionDoc is the persisted form: a sorted id list and [id, count] pairs
type subscriptionDoc struct {
	Subscriptions    []string     `json:"subscriptions"`
	SubscriberCounts []countEntry `json:"subscriberCounts"`
}

type countEntry struct {
	ChannelID string
	Count     int64
}

func (c countEntry) MarshalJSON() ([]byte, error) {
	return jsonTuple(c.ChannelID, c.Count)
}

func (c *countEntry) UnmarshalJSON(b []byte) error {
	return jsonUntuple(b, &c.ChannelID, &c.Count)
}

// Subscriptions is the server confirmed subscription set
// Local state changes only after the server accepts a mutation
type Subscriptions struct {
	mu       sync.Mutex
	api      SubscriptionAPI
	ids      map[string]struct{}
	counts   map[string]int64
	inflight map[string]struct{}
	loading  int
	lastErr  string

	blob Blob
}

// NewSubscriptions restores the cached set from b
func NewSubscriptions(api SubscriptionAPI, b Blob) *Subscriptions {
	s := &Subscriptions{
		api:      api,
		ids:      map[string]struct{}{},
		counts:   map[string]int64{},
		inflight: map[string]struct{}{},
		blob:     b,
	}
	var doc subscriptionDoc
	restore(b, subscriptionBlob, &doc)
	for _, id := range doc.Subscriptions {
		s.ids[id] = struct{}{}
	}
	for _, c := range doc.SubscriberCounts {
		s.counts[c.ChannelID] = c.Count
	}
	return s
}

// Subscribe asks the server first and records the channel only on success
func (s *Subscriptions) Subscribe(ctx context.Context, channelID string) error {
	return s.mutate(ctx, channelID, "subscribe", s.api.Subscribe, func(id string) {
		s.ids[id] = struct{}{}
	})
}

// Unsubscribe asks the server first and drops the channel only on success
func (s *Subscriptions) Unsubscribe(ctx context.Context, channelID string) error {
	return s.mutate(ctx, channelID, "unsubscribe", s.api.Unsubscribe, func(id string) {
		delete(s.ids, id)
	})
}

func (s *Subscriptions) mutate(
	ctx context.Context,
	channelID, verb string,
	call func(context.Context, string) (Mutation, error),
	apply func(id string),
) error {
	id := strings.TrimSpace(channelID)
	if id == "" {
		err := perr.FieldErrorf("channelId", "channelId is required")
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if _, busy := s.inflight[id]; busy {
		s.mu.Unlock()
		return perr.Conflictf("a %s request for %s is already in flight", verb, id)
	}
	s.inflight[id] = struct{}{}
	s.loading++
	s.lastErr = ""
	s.mu.Unlock()

	res, err := call(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
	s.loading--
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	apply(id)
	if res.SubscriberCount != nil {
		s.counts[id] = *res.SubscriberCount
	}
	s.saveLocked()
	return nil
}

// Load replaces the local set with the server's; it never merges
func (s *Subscriptions) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading++
	s.lastErr = ""
	s.mu.Unlock()

	ids, err := s.api.ListSubscriptions(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading--
	if err != nil {
		s.lastErr = err.Error()
		return err
	}
	s.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	s.saveLocked()
	return nil
}

// IsSubscribed is a pure lookup
func (s *Subscriptions) IsSubscribed(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[channelID]
	return ok
}

// IDs returns the subscribed channel ids, sorted
func (s *Subscriptions) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked()
}

// SubscriberCount returns the cached count for channelID, or def
func (s *Subscriptions) SubscriberCount(channelID string, def int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.counts[channelID]; ok {
		return n
	}
	return def
}

// SetSubscriberCount caches a count seen elsewhere, e.g. on a channel page
func (s *Subscriptions) SetSubscriberCount(channelID string, n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[channelID] = n
	s.saveLocked()
}

// IsLoading reports whether any server call is in flight
func (s *Subscriptions) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading > 0
}

// Error returns the message of the last failed call, "" after a success
func (s *Subscriptions) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Reset clears memory without touching the blob
func (s *Subscriptions) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = map[string]struct{}{}
	s.counts = map[string]int64{}
	s.inflight = map[string]struct{}{}
	s.loading, s.lastErr = 0, ""
}

func (s *Subscriptions) sortedLocked() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *Subscriptions) saveLocked() {
	doc := subscriptionDoc{Subscriptions: s.sortedLocked(), SubscriberCounts: make([]countEntry, 0, len(s.counts))}
	for id, n := range s.counts {
		doc.SubscriberCounts = append(doc.SubscriberCounts, countEntry{ChannelID: id, Count: n})
	}
	sort.Slice(doc.SubscriberCounts, func(i, j int) bool {
		return doc.SubscriberCounts[i].ChannelID < doc.SubscriberCounts[j].ChannelID
	})
	persist(s.blob, subscriptionBlob, doc)
}
