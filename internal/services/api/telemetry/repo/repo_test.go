package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	"videotube/internal/platform/monitor"
	"videotube/internal/platform/store"

	"github.com/google/uuid"
)

type fakeCH struct {
	table string
	rows  [][]any
	execs []string
}

func (f *fakeCH) Insert(_ context.Context, table string, data any) error {
	f.table = table
	f.rows = append(f.rows, data.([][]any)...)
	return nil
}
func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.execs = append(f.execs, sql)
	return nil
}
func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *fakeCH) Close() error                                               { return nil }

func TestCH_StoreRowShape(t *testing.T) {
	f := &fakeCH{}
	s := NewCH(f)
	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(f.execs) != 1 || !strings.Contains(f.execs[0], "client_errors") {
		t.Fatalf("schema exec: %v", f.execs)
	}

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("x", 3600))
	ev := Event{
		ID: uuid.New(),
		Report: monitor.Report{
			Level: monitor.LevelError, Message: "boom", Component: "player",
			Context: monitor.Fields{"videoId": "v1"}, Timestamp: at,
		},
		ReceivedAt: at,
	}
	if err := s.Store(context.Background(), ev); err != nil {
		t.Fatal(err)
	}
	if f.table != Table || len(f.rows) != 1 {
		t.Fatalf("insert: %s %v", f.table, f.rows)
	}
	r := f.rows[0]
	if len(r) != 10 {
		t.Fatalf("row has %d columns", len(r))
	}
	if r[0] != ev.ID || r[1] != "error" || r[2] != "boom" || r[7] != `{"videoId":"v1"}` {
		t.Fatalf("row = %v", r)
	}
	if ts := r[8].(time.Time); ts.Location() != time.UTC {
		t.Fatalf("timestamps must be UTC: %v", ts)
	}

	f.rows = nil
	ev.Report.Context = nil
	_ = s.Store(context.Background(), ev)
	if f.rows[0][7] != "{}" {
		t.Fatalf("empty context = %v", f.rows[0][7])
	}
}

func TestLog_Store(t *testing.T) {
	err := NewLog().Store(context.Background(), Event{
		ID:     uuid.New(),
		Report: monitor.Report{Level: monitor.LevelWarning, Message: "slow", UserID: "u1"},
	})
	if err != nil {
		t.Fatalf("log sink: %v", err)
	}
}
