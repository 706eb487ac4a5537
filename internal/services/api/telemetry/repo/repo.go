// Package repo stores client error reports
package repo

import (
	"context"
	"encoding/json"
	"time"

	"videotube/internal/platform/logger"
	"videotube/internal/platform/monitor"
	"videotube/internal/platform/store"

	"github.com/google/uuid"
)

// Table receives one row per client error report
const Table = "client_errors"

// Schema creates Table in clickhouse
const Schema = `
CREATE TABLE IF NOT EXISTS client_errors (
	id          UUID,
	level       LowCardinality(String),
	message     String,
	component   LowCardinality(String),
	action      String,
	user_id     String,
	email       String,
	context     String,
	reported_at DateTime64(3, 'UTC'),
	received_at DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (received_at, id)`

// Event is a validated report with server assigned fields
type Event struct {
	ID         uuid.UUID
	Report     monitor.Report
	ReceivedAt time.Time
}

// Sink persists events
type Sink interface {
	Store(ctx context.Context, ev Event) error
}

// CH writes events to clickhouse
type CH struct{ db store.Clickhouse }

// NewCH returns a clickhouse sink
func NewCH(db store.Clickhouse) *CH { return &CH{db: db} }

// EnsureSchema applies Schema
func (c *CH) EnsureSchema(ctx context.Context) error {
	return c.db.Exec(ctx, Schema)
}

// Store appends ev as a single row batch
func (c *CH) Store(ctx context.Context, ev Event) error {
	return c.db.Insert(ctx, Table, [][]any{row(ev)})
}

func row(ev Event) []any {
	r := ev.Report
	ctxJSON := "{}"
	if len(r.Context) > 0 {
		if b, err := json.Marshal(r.Context); err == nil {
			ctxJSON = string(b)
		}
	}
	return []any{
		ev.ID,
		string(r.Level),
		r.Message,
		r.Component,
		r.Action,
		r.UserID,
		r.Email,
		ctxJSON,
		r.Timestamp.UTC(),
		ev.ReceivedAt.UTC(),
	}
}

// Log writes events to the zerolog stream; used when clickhouse is off
type Log struct{ log logger.Logger }

// NewLog returns a log-only sink
func NewLog() *Log { return &Log{log: *logger.Named("telemetry")} }

// Store logs ev at warn level
func (l *Log) Store(_ context.Context, ev Event) error {
	r := ev.Report
	ev2 := l.log.Warn().
		Str("event_id", ev.ID.String()).
		Str("level", string(r.Level)).
		Str("component", r.Component).
		Str("action", r.Action).
		Time("reported_at", r.Timestamp)
	if r.UserID != "" {
		ev2 = ev2.Str("user_id", r.UserID)
	}
	if len(r.Context) > 0 {
		ev2 = ev2.Fields(map[string]any(r.Context))
	}
	ev2.Msg(r.Message)
	return nil
}
