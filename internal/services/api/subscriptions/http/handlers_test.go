package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"videotube/internal/modkit/httpkit"
	phttp "videotube/internal/platform/net/http"
	"videotube/internal/services/api/subscriptions/repo"
	svc "videotube/internal/services/api/subscriptions/service"

	"github.com/go-chi/chi/v5"
)

func newRouter() stdhttp.Handler {
	mux := chi.NewRouter()
	port := httpkit.NewPortFunc(httpkit.StaticTokens([]string{"tok1=u1:a@example.com", "tok2=u2"}))
	httpkit.Protected(phttp.AdaptChi(mux), port, func(r httpkit.Router) {
		Register(r, svc.New(repo.NewMemory()))
	})
	return mux
}

func call(t *testing.T, h stdhttp.Handler, method, target, token, body string) (int, phttp.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

func data(t *testing.T, env phttp.Envelope) map[string]any {
	t.Helper()
	m, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("data is %T", env.Data)
	}
	return m
}

func TestSubscriptionFlow(t *testing.T) {
	h := newRouter()

	code, env := call(t, h, stdhttp.MethodPost, "/subscribe", "tok1", `{"channelId":"UC1"}`)
	if code != 200 {
		t.Fatalf("subscribe status %d: %+v", code, env)
	}
	if d := data(t, env); d["success"] != true || d["channelId"] != "UC1" {
		t.Fatalf("subscribe body: %+v", d)
	}

	code, env = call(t, h, stdhttp.MethodGet, "/", "tok1", "")
	if code != 200 {
		t.Fatalf("list status %d", code)
	}
	subs, _ := data(t, env)["subscriptions"].([]any)
	if len(subs) != 1 || subs[0] != "UC1" {
		t.Fatalf("subscriptions = %v", subs)
	}

	_, env = call(t, h, stdhttp.MethodGet, "/", "tok2", "")
	if subs, _ := data(t, env)["subscriptions"].([]any); len(subs) != 0 {
		t.Fatalf("other user sees %v", subs)
	}

	code, env = call(t, h, stdhttp.MethodPost, "/unsubscribe", "tok1", `{"channelId":"UC1"}`)
	if code != 200 || data(t, env)["success"] != true {
		t.Fatalf("unsubscribe: %d %+v", code, env)
	}
}

func TestSubscriptionErrors(t *testing.T) {
	h := newRouter()
	cases := []struct {
		name   string
		method string
		target string
		token  string
		body   string
		status int
		field  string
	}{
		{name: "no token", method: stdhttp.MethodGet, target: "/", status: 401},
		{name: "unknown token", method: stdhttp.MethodGet, target: "/", token: "nope", status: 401},
		{name: "blank channel", method: stdhttp.MethodPost, target: "/subscribe", token: "tok1", body: `{"channelId":"  "}`, status: 400, field: "channelId"},
		{name: "missing channel", method: stdhttp.MethodPost, target: "/unsubscribe", token: "tok1", body: `{}`, status: 400, field: "channelId"},
		{name: "bad json", method: stdhttp.MethodPost, target: "/subscribe", token: "tok1", body: `{"channelId":`, status: 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := call(t, h, tc.method, tc.target, tc.token, tc.body)
			if code != tc.status {
				t.Fatalf("status = %d, want %d (%+v)", code, tc.status, env)
			}
			if env.Error == nil {
				t.Fatalf("expected error body")
			}
			if tc.field != "" && env.Error.Field != tc.field {
				t.Fatalf("field = %q, want %q", env.Error.Field, tc.field)
			}
		})
	}
}
