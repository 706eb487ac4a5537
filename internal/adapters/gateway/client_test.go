package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"videotube/internal/adapters/youtube"
	perr "videotube/internal/platform/errors"
	"videotube/internal/platform/monitor"
)

func newTestClient(t *testing.T, token string, h http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL + "/api/v1/", Token: token}), &calls
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status_code": status,
		"status":      http.StatusText(status),
		"data":        data,
	})
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status_code": status,
		"error":       map[string]any{"code": 0, "message": msg},
	})
}

func TestSearchVideos_PathAndQuery(t *testing.T) {
	c, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/youtube/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "go" || q.Get("maxResults") != "12" || q.Has("pageToken") {
			t.Errorf("query = %v", q)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected auth header")
		}
		writeData(w, 200, youtube.SearchListResponse{
			NextPageToken: "p2",
			Items:         []youtube.SearchResult{{ID: youtube.ResourceID{VideoID: "v1"}}},
		})
	})

	out, err := c.SearchVideos(context.Background(), youtube.SearchParams{Query: " go ", MaxResults: 12})
	if err != nil {
		t.Fatalf("SearchVideos: %v", err)
	}
	if out.NextPageToken != "p2" || len(out.Items) != 1 || out.Items[0].ID.VideoID != "v1" {
		t.Fatalf("out = %+v", out)
	}
}

func TestChannelRoutes(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path+"?"+r.URL.RawQuery)
		writeData(w, 200, map[string]any{"items": []any{}})
	})
	ctx := context.Background()

	if _, err := c.ChannelsByID(ctx, youtube.ChannelsParams{IDs: []string{"UC1", "UC2"}}); err != nil {
		t.Fatalf("ChannelsByID: %v", err)
	}
	if _, err := c.ChannelVideos(ctx, youtube.ChannelVideosParams{ChannelID: "UC1", PageToken: "t2"}); err != nil {
		t.Fatalf("ChannelVideos: %v", err)
	}
	if _, err := c.VideosByID(ctx, youtube.VideosParams{IDs: []string{"a", "b"}}); err != nil {
		t.Fatalf("VideosByID: %v", err)
	}

	want := []string{
		"/api/v1/youtube/channels/UC1,UC2?",
		"/api/v1/youtube/channels/UC1/videos?pageToken=t2",
		"/api/v1/youtube/videos?id=a%2Cb",
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("call %d = %q want %q", i, paths[i], want[i])
		}
	}
}

func TestValidationBeforeNetwork(t *testing.T) {
	c, calls := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, 200, nil)
	})
	ctx := context.Background()

	_, err := c.SearchChannels(ctx, youtube.SearchParams{Query: "  "})
	if e, ok := perr.As(err); !ok || e.Field() != "query" {
		t.Fatalf("want query field error, got %v", err)
	}
	if _, err := c.RelatedVideos(ctx, youtube.RelatedParams{}); err == nil {
		t.Fatalf("want videoId error")
	}
	if _, err := c.PopularVideos(ctx, youtube.PopularParams{RegionCode: "USA"}); err == nil {
		t.Fatalf("want regionCode error")
	}
	if n := calls.Load(); n != 0 {
		t.Fatalf("network calls = %d, want 0", n)
	}
}

func TestErrorEnvelopeMapping(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
		code    perr.ErrorCode
	}{
		{name: "envelope message", status: 401, body: `{"error":{"code":5,"message":"Unauthorized"}}`, message: "Unauthorized", code: perr.ErrorCodeUnauthorized},
		{name: "not found", status: 404, body: `{"error":{"message":"Channel not found"}}`, message: "Channel not found", code: perr.ErrorCodeNotFound},
		{name: "no body", status: 502, body: ``, message: "HTTP 502: Bad Gateway", code: perr.ErrorCodeUpstream},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})
			_, err := c.ListSubscriptions(context.Background())
			ge, ok := youtube.AsGatewayError(err)
			if !ok {
				t.Fatalf("want GatewayError, got %T %v", err, err)
			}
			if ge.Message != tc.message || ge.Status != tc.status || perr.CodeOf(err) != tc.code {
				t.Fatalf("got %q %d %v", ge.Message, ge.Status, perr.CodeOf(err))
			}
		})
	}
}

func TestSubscriptions_RoundTrip(t *testing.T) {
	c, _ := newTestClient(t, "tok-1", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			writeErr(w, 401, "Unauthorized")
			return
		}
		switch r.URL.Path {
		case "/api/v1/subscriptions":
			writeData(w, 200, map[string]any{"subscriptions": []string{"UC1", "UC2"}})
		case "/api/v1/subscriptions/subscribe":
			var in mutationBody
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ChannelID != "UC3" {
				writeErr(w, 400, "Channel ID is required")
				return
			}
			writeData(w, 200, map[string]any{"success": true, "channelId": in.ChannelID, "subscriberCount": 1201})
		case "/api/v1/subscriptions/unsubscribe":
			writeData(w, 200, map[string]any{"success": true})
		default:
			writeErr(w, 404, "nope")
		}
	})
	ctx := context.Background()

	ids, err := c.ListSubscriptions(ctx)
	if err != nil || strings.Join(ids, ",") != "UC1,UC2" {
		t.Fatalf("list = %v %v", ids, err)
	}
	m, err := c.Subscribe(ctx, " UC3 ")
	if err != nil || m.ChannelID != "UC3" || m.SubscriberCount == nil || *m.SubscriberCount != 1201 {
		t.Fatalf("subscribe = %+v %v", m, err)
	}
	m, err = c.Unsubscribe(ctx, "UC1")
	if err != nil || m.ChannelID != "UC1" || m.SubscriberCount != nil {
		t.Fatalf("unsubscribe = %+v %v", m, err)
	}
}

func TestSubscriptions_Unauthorized(t *testing.T) {
	c, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, 401, "Unauthorized")
	})
	_, err := c.Subscribe(context.Background(), "UC1")
	if !youtube.IsUnauthorized(err) {
		t.Fatalf("want unauthorized, got %v", err)
	}
}

func TestReport_PostsJSON(t *testing.T) {
	var got monitor.Report
	c, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/telemetry/errors" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	})
	err := c.Report(context.Background(), monitor.Report{Level: monitor.LevelError, Message: "boom", Component: "player"})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if got.Message != "boom" || got.Component != "player" || got.Level != monitor.LevelError {
		t.Fatalf("got %+v", got)
	}
}

func TestCanceledIsNotGatewayError(t *testing.T) {
	c, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.PopularVideos(ctx, youtube.PopularParams{})
	if !youtube.IsCanceled(err) {
		t.Fatalf("want canceled, got %v", err)
	}
	if _, ok := youtube.AsGatewayError(err); ok {
		t.Fatalf("cancellation must not be a GatewayError")
	}
}

func TestNetworkFailure(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://127.0.0.1:1/api/v1"})
	_, err := c.ListSubscriptions(context.Background())
	ge, ok := youtube.AsGatewayError(err)
	if !ok || ge.Status != 0 || perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("got %v", err)
	}
}
