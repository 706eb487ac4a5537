package pg

import (
	"context"
	"strings"
	"time"

	"videotube/internal/platform/logger"

	"github.com/jackc/pgx/v5"
)

// Tracer is a pgx.QueryTracer that logs statements; args are counted, never logged
type Tracer struct {
	Log  logger.Logger
	All  bool
	Slow time.Duration

	now func() time.Time
}

var _ pgx.QueryTracer = (*Tracer)(nil)

type startKey struct{}

type queryStart struct {
	sql  string
	args int
	at   time.Time
}

func (t *Tracer) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

// TraceQueryStart stashes the statement and start time in ctx
func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, startKey{}, queryStart{sql: d.SQL, args: len(d.Args), at: t.clock()})
}

// TraceQueryEnd logs the finished statement when it is slow or All is set
func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	st, ok := ctx.Value(startKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := t.clock().Sub(st.at)
	slow := t.Slow > 0 && elapsed >= t.Slow
	if !slow && !t.All {
		return
	}
	ev := t.Log.Debug()
	if slow {
		ev = t.Log.Warn()
	}
	ev.Dur("elapsed", elapsed).
		Bool("slow", slow).
		Str("sql", strings.Join(strings.Fields(st.sql), " ")).
		Int("args", st.args).
		Str("tag", d.CommandTag.String()).
		Err(d.Err).
		Msg("pg query")
}
