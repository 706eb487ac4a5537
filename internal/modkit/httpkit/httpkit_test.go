package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perrs "videotube/internal/platform/errors"
	pnet "videotube/internal/platform/net"
	phttp "videotube/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func newRouter() (Router, http.Handler) {
	mux := chi.NewRouter()
	return phttp.AdaptChi(mux), mux
}

func do(t *testing.T, h http.Handler, method, target, body, auth string) (int, phttp.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env phttp.Envelope
	if rec.Code != http.StatusNoContent {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code, env
}

type echoQuery struct {
	Query string `query:"query" validate:"required"`
	Max   int    `query:"maxResults" validate:"omitempty,min=1,max=50"`
}

type echoBody struct {
	ChannelID string `json:"channelId" validate:"required"`
}

func TestGetQuery_BindsAndValidates(t *testing.T) {
	r, h := newRouter()
	GetQuery(r, "/search", func(_ *http.Request, in echoQuery) (any, error) {
		return in, nil
	})

	code, env := do(t, h, http.MethodGet, "/search?query=go&maxResults=5", "", "")
	if code != 200 {
		t.Fatalf("status = %d", code)
	}
	data, _ := json.Marshal(env.Data)
	if string(data) != `{"Query":"go","Max":5}` {
		t.Fatalf("data = %s", data)
	}

	code, env = do(t, h, http.MethodGet, "/search?maxResults=5", "", "")
	if code != 400 || env.Error == nil || env.Error.Field != "query" {
		t.Fatalf("got %d %+v", code, env.Error)
	}
}

func TestPostJSON_ErrorsUseEnvelope(t *testing.T) {
	r, h := newRouter()
	PostJSON(r, "/subscribe", func(_ *http.Request, in echoBody) (any, error) {
		if in.ChannelID == "gone" {
			return nil, perrs.NotFoundf("Channel not found")
		}
		return map[string]any{"success": true, "channelId": in.ChannelID}, nil
	})

	code, _ := do(t, h, http.MethodPost, "/subscribe", `{"channelId":"UC1"}`, "")
	if code != 200 {
		t.Fatalf("status = %d", code)
	}
	code, env := do(t, h, http.MethodPost, "/subscribe", `{}`, "")
	if code != 400 || env.Error == nil || env.Error.Field != "channelId" {
		t.Fatalf("missing id: %d %+v", code, env.Error)
	}
	code, env = do(t, h, http.MethodPost, "/subscribe", `{"channelId":"gone"}`, "")
	if code != 404 || env.Error.Message != "Channel not found" {
		t.Fatalf("not found: %d %+v", code, env.Error)
	}
}

func TestPost_PassesThroughResponse(t *testing.T) {
	r, h := newRouter()
	Post(r, "/errors", func(*http.Request) (any, error) {
		return Response{Status: http.StatusAccepted, Body: map[string]string{"id": "x"}}, nil
	})
	code, env := do(t, h, http.MethodPost, "/errors", "", "")
	if code != 202 || env.Data.(map[string]any)["id"] != "x" {
		t.Fatalf("accepted: %d %+v", code, env.Data)
	}
}

func TestPort_Parse(t *testing.T) {
	p := NewPortFunc(StaticTokens([]string{"tok-a=user-a:a@example.com", "broken", "tok-b=user-b"}))
	cases := []struct {
		name   string
		header string
		user   string
	}{
		{name: "missing", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "empty token", header: "Bearer   "},
		{name: "unknown token", header: "Bearer nope"},
		{name: "with email", header: "Bearer tok-a", user: "user-a"},
		{name: "case insensitive", header: "bearer tok-b", user: "user-b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			who, err := p.Parse(req)
			if tc.user == "" {
				if !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
					t.Fatalf("want unauthorized, got %v", err)
				}
				return
			}
			if err != nil || who.UserID != tc.user {
				t.Fatalf("got %+v %v", who, err)
			}
		})
	}

	nilPort := NewPortFunc(nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	if _, err := nilPort.Parse(req); err == nil {
		t.Fatalf("nil parser must reject")
	}
}

func TestProtected_RequiresPrincipal(t *testing.T) {
	r, h := newRouter()
	port := NewPortFunc(StaticTokens([]string{"tok=u1:u1@example.com"}))
	Protected(r, port, func(pr Router) {
		Get(pr, "/me", func(req *http.Request) (any, error) {
			return pnet.PrincipalFrom(req.Context()), nil
		})
	})
	Get(r, "/open", func(req *http.Request) (any, error) {
		_, err := User(req)
		return nil, err
	})

	code, env := do(t, h, http.MethodGet, "/me", "", "")
	if code != 401 || env.Error == nil || env.Error.Message != "Unauthorized" {
		t.Fatalf("anonymous: %d %+v", code, env.Error)
	}
	code, env = do(t, h, http.MethodGet, "/me", "", "Bearer tok")
	data, _ := json.Marshal(env.Data)
	if code != 200 || !strings.Contains(string(data), `"UserID":"u1"`) {
		t.Fatalf("authed: %d %s", code, data)
	}
	if code, _ := do(t, h, http.MethodGet, "/open", "", ""); code != 401 {
		t.Fatalf("User without principal should be 401, got %d", code)
	}
}

func TestUser_ReadsContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := User(req); perrs.CodeOf(err) != perrs.ErrorCodeUnauthorized {
		t.Fatalf("anonymous: %v", err)
	}
	req = req.WithContext(pnet.WithUser(req.Context(), "u9"))
	if got, err := User(req); err != nil || got != "u9" {
		t.Fatalf("got %q %v", got, err)
	}
}

func TestBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer  abc ")
	if tok, err := Bearer(req); err != nil || tok != "abc" {
		t.Fatalf("got %q %v", tok, err)
	}
	for _, h := range []string{"Token abc", "Bearer", "Bearer   ", "bearerabc", ""} {
		req.Header.Set("Authorization", h)
		if _, err := Bearer(req); err == nil {
			t.Fatalf("%q: expected error", h)
		}
	}
	req.Header.Set("Authorization", "bearer xyz")
	if tok, _ := Bearer(req); tok != "xyz" {
		t.Fatalf("lowercase scheme: %q", tok)
	}
}

func TestMountAPIV1_AppliesStack(t *testing.T) {
	r, h := newRouter()
	MountAPIV1(r, CommonStack(StackOptions{CORSOrigins: []string{"http://localhost:5173"}}), func(api Router) {
		api.Route("/meta", func(m Router) {
			Get(m, "/ping", func(*http.Request) (any, error) { return "pong", nil })
		})
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/meta/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	h.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || env.RequestID == "" {
		t.Fatalf("request id not propagated: %v %s", err, rec.Body.String())
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("cors header = %q", got)
	}
}

func TestErrorResponse(t *testing.T) {
	r, h := newRouter()
	Get(r, "/boom", func(*http.Request) (any, error) { return nil, errors.New("plain") })
	code, env := do(t, h, http.MethodGet, "/boom", "", "")
	if code != 500 || env.Error == nil || env.Error.Message != "plain" {
		t.Fatalf("got %d %+v", code, env.Error)
	}
}
