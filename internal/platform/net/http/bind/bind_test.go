package bind

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "videotube/internal/platform/errors"
)

type subscribeBody struct {
	ChannelID string `json:"channelId" validate:"required,min=2"`
	Note      string `json:"note,omitempty"`
}

func TestParseJSON_Success(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"channelId":"UC123"}`))
	got, err := ParseJSON[subscribeBody](req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ChannelID != "UC123" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	if _, err := ParseJSON[subscribeBody](req); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error code, got %v (%v)", perr.CodeOf(err), err)
	}

	get := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	if _, err := ParseJSON[subscribeBody](get); err != nil {
		t.Fatalf("GET with empty body should be tolerated: %v", err)
	}
}

func TestParseJSON_UnknownFieldAndTrailingData(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"channelId":"UC1","extra":1}`))
	if _, err := ParseJSON[subscribeBody](req); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("unknown field should be rejected, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"channelId":"UC1"} {}`))
	if _, err := ParseJSON[subscribeBody](req); err == nil || !strings.Contains(err.Error(), "trailing") {
		t.Fatalf("expected trailing data error, got %v", err)
	}
}

func TestParseJSON_ValidationCarriesField(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"channelId":""}`))
	_, err := ParseJSON[subscribeBody](req)
	e, ok := perr.As(err)
	if !ok || e.Code() != perr.ErrorCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if e.Field() != "channelId" {
		t.Fatalf("field = %q, want channelId", e.Field())
	}
}

func TestParseJSON_AllowEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	got, err := ParseJSON[struct {
		Note string `json:"note"`
	}](req, JSONOptions{AllowEmptyBody: true, MaxBytes: 16})
	if err != nil || got.Note != "" {
		t.Fatalf("got %+v, %v", got, err)
	}
}

type listQuery struct {
	Query      string `query:"query" validate:"required"`
	MaxResults int    `query:"maxResults" validate:"omitempty,min=1,max=50"`
	IDs        string `query:"id" validate:"omitempty,comma_ids"`
	Strict     bool   `query:"strict"`
}

func TestParseQuery(t *testing.T) {
	cases := []struct {
		name      string
		url       string
		wantField string
		want      listQuery
	}{
		{name: "all fields", url: "/?query=go&maxResults=10&id=a1,b_2&strict=true",
			want: listQuery{Query: "go", MaxResults: 10, IDs: "a1,b_2", Strict: true}},
		{name: "missing required", url: "/?maxResults=10", wantField: "query"},
		{name: "bad int", url: "/?query=go&maxResults=ten", wantField: "maxResults"},
		{name: "out of range", url: "/?query=go&maxResults=99", wantField: "maxResults"},
		{name: "bad id list", url: "/?query=go&id=a,,b", wantField: "id"},
		{name: "bad bool", url: "/?query=go&strict=maybe", wantField: "strict"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseQuery[listQuery](httptest.NewRequest(http.MethodGet, tc.url, nil))
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tc.want {
					t.Fatalf("got %+v want %+v", got, tc.want)
				}
				return
			}
			e, ok := perr.As(err)
			if !ok || e.Code() != perr.ErrorCodeValidation || e.Field() != tc.wantField {
				t.Fatalf("want validation error on %q, got %v", tc.wantField, err)
			}
		})
	}
}

func TestValidateMessages(t *testing.T) {
	type short struct {
		Name string `json:"name" validate:"min=3"`
		Tags string `json:"tags,omitempty" validate:"max=4"`
	}
	for in, want := range map[short]string{
		{Name: "a"}:                    "name must be at least 3",
		{Name: "abc", Tags: "toolong"}: "tags must be at most 4",
	} {
		err := Validate(in)
		if e, ok := perr.As(err); !ok || e.Error() != want {
			t.Errorf("%+v: got %v, want %q", in, err, want)
		}
	}
	if err := Validate(short{Name: "abc"}); err != nil {
		t.Fatalf("valid struct: %v", err)
	}
	if err := Validate(42); perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("non-struct should be a validation error: %v", err)
	}
	if f, m := describe(errors.New("boom")); f != "" || m != "boom" {
		t.Fatalf("generic error mapping: %q %q", f, m)
	}
}
