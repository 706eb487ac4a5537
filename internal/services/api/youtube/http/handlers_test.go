package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"videotube/internal/adapters/youtube"
	phttp "videotube/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

// emptyChannels answers every channel lookup with no items
type emptyChannels struct{ *youtube.Fixture }

func (emptyChannels) ChannelsByID(context.Context, youtube.ChannelsParams) (youtube.ChannelListResponse, error) {
	return youtube.ChannelListResponse{}, nil
}

func serve(t *testing.T, api youtube.API, target string) (int, phttp.Envelope) {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), api)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, target, nil))
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

func dataAs[T any](t *testing.T, env phttp.Envelope) T {
	t.Helper()
	var out T
	b, _ := json.Marshal(env.Data)
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("data: %v", err)
	}
	return out
}

func TestRoutes(t *testing.T) {
	fx := youtube.NewFixture()
	cases := []struct {
		name   string
		target string
		status int
		field  string
		items  int
	}{
		{name: "search", target: "/search?query=go", status: 200, items: 3},
		{name: "search missing query", target: "/search", status: 400, field: "query"},
		{name: "search bad maxResults", target: "/search?query=go&maxResults=99", status: 400, field: "maxResults"},
		{name: "channel search", target: "/channels?query=go", status: 200, items: 3},
		{name: "channels by id", target: "/channels/UC1,UC2", status: 200, items: 2},
		{name: "channel videos", target: "/channels/UC1/videos", status: 200, items: 3},
		{name: "videos by id", target: "/videos?id=a,b,c", status: 200, items: 3},
		{name: "videos missing id", target: "/videos", status: 400, field: "id"},
		{name: "videos bad id list", target: "/videos?id=a,,b", status: 400, field: "id"},
		{name: "popular", target: "/popular?regionCode=GB", status: 200, items: 5},
		{name: "related", target: "/related?videoId=abc", status: 200, items: 5},
		{name: "related missing id", target: "/related", status: 400, field: "videoId"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := serve(t, fx, tc.target)
			if code != tc.status {
				t.Fatalf("status = %d want %d (%+v)", code, tc.status, env.Error)
			}
			if tc.field != "" {
				if env.Error == nil || env.Error.Field != tc.field {
					t.Fatalf("error = %+v, want field %q", env.Error, tc.field)
				}
				return
			}
			got := dataAs[struct {
				Items []json.RawMessage `json:"items"`
			}](t, env)
			if len(got.Items) != tc.items {
				t.Fatalf("items = %d want %d", len(got.Items), tc.items)
			}
		})
	}
}

func TestChannelVideos_Paging(t *testing.T) {
	code, env := serve(t, youtube.NewFixture(), "/channels/UC1/videos?pageToken=mock-page-2")
	if code != 200 {
		t.Fatalf("status = %d", code)
	}
	page := dataAs[youtube.SearchListResponse](t, env)
	if page.NextPageToken != "" || len(page.Items) != 3 || page.Items[0].ID.VideoID != "channel-video-4" {
		t.Fatalf("page = %+v", page)
	}
}

func TestChannels_EmptyIsNotFound(t *testing.T) {
	code, env := serve(t, emptyChannels{youtube.NewFixture()}, "/channels/UCmissing")
	if code != 404 || env.Error == nil || env.Error.Message != "Channel not found" {
		t.Fatalf("got %d %+v", code, env.Error)
	}
}
