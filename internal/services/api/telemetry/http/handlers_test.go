package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"videotube/internal/modkit/httpkit"
	phttp "videotube/internal/platform/net/http"
	"videotube/internal/services/api/telemetry/repo"

	"github.com/go-chi/chi/v5"
)

type memSink struct {
	got []repo.Event
	err error
}

func (m *memSink) Store(_ context.Context, ev repo.Event) error {
	if m.err != nil {
		return m.err
	}
	m.got = append(m.got, ev)
	return nil
}

func post(t *testing.T, sink repo.Sink, body string) (int, httpkit.Envelope) {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), sink)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodPost, "/errors", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)
	var env httpkit.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

func TestReport_Accepted(t *testing.T) {
	sink := &memSink{}
	code, env := post(t, sink, `{"level":"error","message":"boom","component":"player","context":{"videoId":"v1"}}`)
	if code != stdhttp.StatusAccepted {
		t.Fatalf("status = %d (%+v)", code, env)
	}
	if len(sink.got) != 1 {
		t.Fatalf("stored %d events", len(sink.got))
	}
	ev := sink.got[0]
	data, _ := env.Data.(map[string]any)
	if data["id"] != ev.ID.String() {
		t.Fatalf("id mismatch: %v vs %s", data["id"], ev.ID)
	}
	if ev.Report.Timestamp.IsZero() || time.Since(ev.ReceivedAt) > time.Minute {
		t.Fatalf("timestamps not filled: %+v", ev)
	}
	if ev.Report.Component != "player" || ev.Report.Context["videoId"] != "v1" {
		t.Fatalf("report: %+v", ev.Report)
	}
}

func TestReport_Rejected(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{name: "missing message", body: `{"level":"error"}`, status: 400, field: "message"},
		{name: "bad level", body: `{"level":"fatal","message":"x"}`, status: 400, field: "level"},
		{name: "bad email", body: `{"level":"warning","message":"x","email":"nope"}`, status: 400, field: "email"},
		{name: "unknown field", body: `{"level":"error","message":"x","stack":"..."}`, status: 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink := &memSink{}
			code, env := post(t, sink, tc.body)
			if code != tc.status || env.Error == nil {
				t.Fatalf("status = %d (%+v)", code, env)
			}
			if tc.field != "" && env.Error.Field != tc.field {
				t.Fatalf("field = %q, want %q", env.Error.Field, tc.field)
			}
			if len(sink.got) != 0 {
				t.Fatalf("rejected report was stored")
			}
		})
	}
}

func TestReport_SinkFailure(t *testing.T) {
	code, _ := post(t, &memSink{err: errors.New("ch down")}, `{"level":"error","message":"x"}`)
	if code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d", code)
	}
}
