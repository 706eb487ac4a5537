// Package repo persists user subscriptions in memory or in postgres
package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"videotube/internal/modkit/repokit"
)

// Repo defines the repository contract for subscriptions
// Add and Remove are idempotent
type Repo interface {
	List(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, channelID string) error
	Remove(ctx context.Context, userID, channelID string) error
}

// Memory is a process local Repo; order follows subscription time
type Memory struct {
	mu   sync.Mutex
	subs map[string]map[string]time.Time
	now  func() time.Time
}

// NewMemory returns an empty Memory repo
func NewMemory() *Memory {
	return &Memory{subs: map[string]map[string]time.Time{}, now: time.Now}
}

func (m *Memory) List(_ context.Context, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := m.subs[userID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := set[out[i]], set[out[j]]
		if ti.Equal(tj) {
			return out[i] < out[j]
		}
		return ti.Before(tj)
	})
	return out, nil
}

func (m *Memory) Add(_ context.Context, userID, channelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := m.subs[userID]
	if set == nil {
		set = map[string]time.Time{}
		m.subs[userID] = set
	}
	if _, ok := set[channelID]; !ok {
		set[channelID] = m.now()
	}
	return nil
}

func (m *Memory) Remove(_ context.Context, userID, channelID string) error {
	m.mu.Lock()
	delete(m.subs[userID], channelID)
	m.mu.Unlock()
	return nil
}

// Schema creates the postgres table used by the PG repo
const Schema = `
create table if not exists user_subscriptions (
	user_id    text        not null,
	channel_id text        not null,
	created_at timestamptz not null default now(),
	primary key (user_id, channel_id)
)`

type (
	// PG binds the Repo to a postgres Queryer
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// EnsureSchema applies Schema; safe to run on every boot
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, Schema)
	return err
}

func (r *queries) List(ctx context.Context, userID string) ([]string, error) {
	const sql = `
select channel_id
from user_subscriptions
where user_id = $1
order by created_at, channel_id
`
	rows, err := r.q.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *queries) Add(ctx context.Context, userID, channelID string) error {
	const sql = `
insert into user_subscriptions (user_id, channel_id)
values ($1, $2)
on conflict (user_id, channel_id) do nothing
`
	_, err := r.q.Exec(ctx, sql, userID, channelID)
	return err
}

func (r *queries) Remove(ctx context.Context, userID, channelID string) error {
	const sql = `delete from user_subscriptions where user_id = $1 and channel_id = $2`
	_, err := r.q.Exec(ctx, sql, userID, channelID)
	return err
}
