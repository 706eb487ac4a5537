package youtube

import (
	"context"
	"testing"
	"time"
)

func TestFixture_ChannelVideosPaging(t *testing.T) {
	f := NewFixture()
	ctx := context.Background()

	first, err := f.ChannelVideos(ctx, ChannelVideosParams{ChannelID: "UCx"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Items) != 3 || first.NextPageToken != "mock-page-2" {
		t.Fatalf("first page = %d items, token %q", len(first.Items), first.NextPageToken)
	}
	if first.Items[0].Snippet.ChannelID != "UCx" {
		t.Fatalf("channel id not propagated: %+v", first.Items[0].Snippet)
	}

	second, _ := f.ChannelVideos(ctx, ChannelVideosParams{ChannelID: "UCx", PageToken: first.NextPageToken})
	if len(second.Items) != 3 || second.NextPageToken != "" || second.Items[0].ID.VideoID != "channel-video-4" {
		t.Fatalf("second page = %+v", second)
	}

	other, _ := f.ChannelVideos(ctx, ChannelVideosParams{ChannelID: "UCx", PageToken: "bogus"})
	if len(other.Items) != 0 {
		t.Fatalf("unknown token should be empty, got %d", len(other.Items))
	}
}

func TestFixture_SearchUsesQuery(t *testing.T) {
	out, err := NewFixture().SearchVideos(context.Background(), SearchParams{Query: "rust"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Items) != 3 || out.Items[0].Snippet.Title != "rust - Tutorial Part 1" || out.NextPageToken != "" {
		t.Fatalf("got %+v", out)
	}
	if _, err := NewFixture().SearchVideos(context.Background(), SearchParams{}); err == nil {
		t.Fatalf("empty query must fail validation")
	}
}

func TestFixture_ByIDEchoesIDs(t *testing.T) {
	f := NewFixture()
	vids, _ := f.VideosByID(context.Background(), VideosParams{IDs: []string{"a", "b"}})
	if len(vids.Items) != 2 || vids.Items[1].ID != "b" || vids.Items[0].ContentDetails.Duration != "PT15M32S" {
		t.Fatalf("videos = %+v", vids.Items)
	}
	chans, _ := f.ChannelsByID(context.Background(), ChannelsParams{IDs: []string{"c1", "c2", "c3", "c4"}})
	if len(chans.Items) != 4 || chans.Items[3].Snippet.Title != "Tech Academy" || chans.Items[2].Statistics.SubscriberCount != "420000" {
		t.Fatalf("channels = %+v", chans.Items)
	}
	if chans.Items[1].BannerURL() == "" {
		t.Fatalf("banner missing")
	}
}

func TestFixture_PopularDerivedStats(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	f := &Fixture{now: func() time.Time { return now }}
	out, _ := f.PopularVideos(context.Background(), PopularParams{})
	if len(out.Items) != 5 {
		t.Fatalf("items = %d", len(out.Items))
	}
	v := out.Items[1]
	if v.Statistics.LikeCount != "42511" || v.Statistics.CommentCount != "850" {
		t.Fatalf("stats = %+v", v.Statistics)
	}
	if v.Snippet.PublishedAt != "2025-03-09T12:00:00Z" {
		t.Fatalf("publishedAt = %s", v.Snippet.PublishedAt)
	}
}
