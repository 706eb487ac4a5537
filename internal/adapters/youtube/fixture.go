package youtube

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	fixtureChannelID = "UCuAXFkgsw1L7xaCfnd5JJOw"
	fixturePageTwo   = "mock-page-2"
)

// Fixture is a deterministic in-process backend used when no API key is configured
// Responses mirror the Data API shapes closely enough for every consumer
type Fixture struct {
	now func() time.Time
}

// NewFixture returns a Fixture stamped with the wall clock
func NewFixture() *Fixture { return &Fixture{now: time.Now} }

func videoThumbs(id string) Thumbnails {
	return Thumbnails{
		Default: &Thumbnail{URL: "https://i.ytimg.com/vi/" + id + "/default.jpg", Width: 120, Height: 90},
		Medium:  &Thumbnail{URL: "https://i.ytimg.com/vi/" + id + "/mqdefault.jpg", Width: 320, Height: 180},
		High:    &Thumbnail{URL: "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg", Width: 480, Height: 360},
	}
}

type fixtureItem struct {
	id, channelID, channelTitle, title, description, publishedAt string
}

func (it fixtureItem) searchResult(etag string) SearchResult {
	return SearchResult{
		Kind: "youtube#searchResult",
		ETag: etag,
		ID:   ResourceID{Kind: "youtube#video", VideoID: it.id},
		Snippet: Snippet{
			PublishedAt:  it.publishedAt,
			ChannelID:    it.channelID,
			Title:        it.title,
			Description:  it.description,
			Thumbnails:   videoThumbs(it.id),
			ChannelTitle: it.channelTitle,
		},
	}
}

func (f *Fixture) SearchVideos(_ context.Context, p SearchParams) (SearchListResponse, error) {
	if err := p.Validate(); err != nil {
		return SearchListResponse{}, err
	}
	q := strings.TrimSpace(p.Query)
	items := []fixtureItem{
		{"dQw4w9WgXcQ", fixtureChannelID, "Tech Academy", q + " - Tutorial Part 1",
			"Learn " + q + " from scratch in this comprehensive tutorial.", "2024-01-15T10:00:00Z"},
		{"jNQXAC9IVRw", fixtureChannelID, "Code Masters", "Advanced " + q + " Techniques",
			"Master advanced " + q + " patterns and best practices.", "2024-01-10T14:30:00Z"},
		{"9bZkp7q19f0", fixtureChannelID, "Production Ready", q + " in Production - Real World Examples",
			"See how " + q + " is used in real production applications.", "2024-01-05T09:15:00Z"},
	}
	out := SearchListResponse{
		Kind:     "youtube#searchListResponse",
		ETag:     "mock-etag",
		PageInfo: PageInfo{TotalResults: len(items), ResultsPerPage: 20},
	}
	for i, it := range items {
		out.Items = append(out.Items, it.searchResult(fmt.Sprintf("mock-%d", i+1)))
	}
	return out, nil
}

func (f *Fixture) SearchChannels(_ context.Context, p SearchParams) (SearchListResponse, error) {
	if err := p.Validate(); err != nil {
		return SearchListResponse{}, err
	}
	q := strings.TrimSpace(p.Query)
	type ch struct{ id, title, desc, published string }
	chans := []ch{
		{"UCJUmE61LxhbhudzqiYZTyAg", q + " Academy",
			"The ultimate destination for learning " + q + ". Join millions of students mastering " + q + " through our comprehensive tutorials and courses.",
			"2015-03-01T10:00:00Z"},
		{"UCW6MNdOsqv2E7mjdGbGC16w", "Tech " + q,
			"Exploring the world of " + q + " with in-depth tutorials, tips, and tricks. Subscribe for weekly " + q + " content!",
			"2018-06-15T14:30:00Z"},
		{"UCmtyQOKKmrMVaKuRXz02jbQ", q + " Masters",
			"Master " + q + " from beginner to advanced. Professional tutorials, real-world projects, and expert insights on " + q + ".",
			"2020-01-10T09:15:00Z"},
	}
	out := SearchListResponse{
		Kind:     "youtube#searchListResponse",
		ETag:     "mock-etag",
		PageInfo: PageInfo{TotalResults: len(chans), ResultsPerPage: 20},
	}
	for i, c := range chans {
		n := strconv.Itoa(i + 1)
		out.Items = append(out.Items, SearchResult{
			Kind: "youtube#searchResult",
			ETag: "mock-channel-" + n,
			ID:   ResourceID{Kind: "youtube#channel", ChannelID: c.id},
			Snippet: Snippet{
				PublishedAt:  c.published,
				ChannelID:    c.id,
				Title:        c.title,
				Description:  c.desc,
				ChannelTitle: c.title,
				Thumbnails: Thumbnails{
					Default: &Thumbnail{URL: "https://yt3.ggpht.com/ytc/default" + n + ".jpg", Width: 88, Height: 88},
					Medium:  &Thumbnail{URL: "https://yt3.ggpht.com/ytc/medium" + n + ".jpg", Width: 240, Height: 240},
					High:    &Thumbnail{URL: "https://yt3.ggpht.com/ytc/high" + n + ".jpg", Width: 800, Height: 800},
				},
			},
		})
	}
	return out, nil
}

func (f *Fixture) VideosByID(_ context.Context, p VideosParams) (VideoListResponse, error) {
	if err := p.Validate(); err != nil {
		return VideoListResponse{}, err
	}
	out := VideoListResponse{
		Kind:     "youtube#videoListResponse",
		ETag:     "mock-etag",
		PageInfo: PageInfo{TotalResults: len(p.IDs), ResultsPerPage: len(p.IDs)},
	}
	for _, id := range p.IDs {
		th := videoThumbs(id)
		th.Standard = &Thumbnail{URL: "https://i.ytimg.com/vi/" + id + "/sddefault.jpg", Width: 640, Height: 480}
		out.Items = append(out.Items, Video{
			Kind: "youtube#video",
			ETag: "mock-video-etag",
			ID:   id,
			Snippet: Snippet{
				PublishedAt:  "2024-01-15T10:00:00Z",
				ChannelID:    fixtureChannelID,
				Title:        "Building Modern Web Applications",
				Description:  "Learn how to build modern web applications with the latest technologies and best practices.",
				Thumbnails:   th,
				ChannelTitle: "Tech Academy",
				Tags:         []string{"web development", "tutorial", "programming"},
				CategoryID:   "28",
			},
			ContentDetails: &ContentDetails{Duration: "PT15M32S", Dimension: "2d", Definition: "hd", Caption: "false"},
			Statistics:     &VideoStatistics{ViewCount: "1234567", LikeCount: "45678", CommentCount: "1234"},
		})
	}
	return out, nil
}

var fixtureChannels = []struct {
	title, description, customURL, subscribers, videos string
}{
	{"Tech Academy", "Welcome to Tech Academy! We provide high-quality tutorials on programming, web development, and technology.", "@techacademy", "250000", "450"},
	{"Code Masters", "Master coding with our comprehensive tutorials and real-world projects.", "@codemasters", "180000", "320"},
	{"Dev Learning", "Learn web development, software engineering, and programming from scratch.", "@devlearning", "420000", "580"},
}

func (f *Fixture) ChannelsByID(_ context.Context, p ChannelsParams) (ChannelListResponse, error) {
	if err := p.Validate(); err != nil {
		return ChannelListResponse{}, err
	}
	out := ChannelListResponse{
		Kind:     "youtube#channelListResponse",
		ETag:     "mock-etag",
		PageInfo: PageInfo{TotalResults: len(p.IDs), ResultsPerPage: len(p.IDs)},
	}
	for i, id := range p.IDs {
		n := i % len(fixtureChannels)
		fc := fixtureChannels[n]
		ns := strconv.Itoa(n)
		bs := &BrandingSettings{}
		bs.Channel.Title = fc.title
		bs.Channel.Description = fc.description
		bs.Channel.Keywords = "programming tutorials tech education coding"
		bs.Image = &struct {
			BannerExternalURL string `json:"bannerExternalUrl,omitempty"`
		}{BannerExternalURL: "https://yt3.ggpht.com/banner/channel-banner-" + ns + ".jpg"}
		out.Items = append(out.Items, Channel{
			Kind: "youtube#channel",
			ETag: "mock-channel-etag-" + ns,
			ID:   id,
			Snippet: Snippet{
				Title:       fc.title,
				Description: fc.description,
				CustomURL:   fc.customURL,
				PublishedAt: "2015-03-01T10:00:00Z",
				Country:     "US",
				Thumbnails: Thumbnails{
					Default: &Thumbnail{URL: "https://yt3.ggpht.com/ytc/default-" + ns + ".jpg", Width: 88, Height: 88},
					Medium:  &Thumbnail{URL: "https://yt3.ggpht.com/ytc/medium-" + ns + ".jpg", Width: 240, Height: 240},
					High:    &Thumbnail{URL: "https://yt3.ggpht.com/ytc/high-" + ns + ".jpg", Width: 800, Height: 800},
				},
			},
			Statistics: &ChannelStatistics{
				ViewCount:       "15000000",
				SubscriberCount: fc.subscribers,
				VideoCount:      fc.videos,
			},
			BrandingSettings: bs,
		})
	}
	return out, nil
}

var fixturePopular = []struct {
	id, title, channelTitle string
	views                   int
	duration                string
}{
	{"dQw4w9WgXcQ", "Building a Modern Web Application with Next.js 15", "Web Dev Mastery", 1234567, "PT15M32S"},
	{"jNQXAC9IVRw", "Complete TypeScript Course for Beginners", "Code Academy", 850234, "PT45M18S"},
	{"9bZkp7q19f0", "React Server Components Explained", "Tech Insights", 430567, "PT12M45S"},
	{"oHg5SJYRHA0", "Tailwind CSS Tips and Tricks", "CSS Masters", 920123, "PT8M22S"},
	{"5qap5aO4i9A", "Advanced State Management in React", "React Patterns", 650789, "PT22M10S"},
}

func (f *Fixture) PopularVideos(_ context.Context, p PopularParams) (VideoListResponse, error) {
	if err := p.Validate(); err != nil {
		return VideoListResponse{}, err
	}
	now := f.now().UTC()
	out := VideoListResponse{
		Kind:     "youtube#videoListResponse",
		ETag:     "mock-popular-etag",
		PageInfo: PageInfo{TotalResults: len(fixturePopular), ResultsPerPage: 20},
	}
	for i, v := range fixturePopular {
		out.Items = append(out.Items, Video{
			Kind: "youtube#video",
			ETag: "mock-etag-" + strconv.Itoa(i),
			ID:   v.id,
			Snippet: Snippet{
				PublishedAt:  now.Add(-time.Duration(i) * 24 * time.Hour).Format(time.RFC3339),
				ChannelID:    fixtureChannelID,
				Title:        v.title,
				Description:  "Description for " + v.title,
				Thumbnails:   videoThumbs(v.id),
				ChannelTitle: v.channelTitle,
				CategoryID:   "28",
			},
			ContentDetails: &ContentDetails{Duration: v.duration, Dimension: "2d", Definition: "hd", Caption: "false"},
			Statistics: &VideoStatistics{
				ViewCount:    strconv.Itoa(v.views),
				LikeCount:    strconv.Itoa(v.views * 5 / 100),
				CommentCount: strconv.Itoa(v.views / 1000),
			},
		})
	}
	return out, nil
}

var fixtureRelated = []fixtureItem{
	{"related1", "UCrelatedChannel1", "Related Channel 1", "Related Video 1 - Similar Content", "This is a related video that shares similar topics.", "2024-01-20T10:00:00Z"},
	{"related2", "UCrelatedChannel2", "Related Channel 2", "Related Video 2 - You Might Like This", "Another video you might find interesting.", "2024-01-18T14:30:00Z"},
	{"related3", "UCrelatedChannel3", "Related Channel 3", "Related Video 3 - Recommended", "A recommended video based on what you're watching.", "2024-01-15T09:15:00Z"},
	{"related4", "UCrelatedChannel4", "Related Channel 4", "Related Video 4 - Popular Choice", "A popular video in this category.", "2024-01-12T11:00:00Z"},
	{"related5", "UCrelatedChannel5", "Related Channel 5", "Related Video 5 - More Like This", "Discover more content like this video.", "2024-01-08T16:45:00Z"},
}

func (f *Fixture) RelatedVideos(_ context.Context, p RelatedParams) (SearchListResponse, error) {
	if err := p.Validate(); err != nil {
		return SearchListResponse{}, err
	}
	out := SearchListResponse{
		Kind:     "youtube#searchListResponse",
		ETag:     "mock-etag",
		PageInfo: PageInfo{TotalResults: len(fixtureRelated), ResultsPerPage: 20},
	}
	for i, it := range fixtureRelated {
		out.Items = append(out.Items, it.searchResult(fmt.Sprintf("mock-related-%d", i+1)))
	}
	return out, nil
}

var fixtureUploads = []fixtureItem{
	{"channel-video-1", "", "Tech Academy", "Getting Started with Web Development", "Learn the fundamentals of web development in this comprehensive tutorial.", "2024-01-20T10:00:00Z"},
	{"channel-video-2", "", "Tech Academy", "Advanced JavaScript Patterns", "Master advanced JavaScript patterns and best practices for modern development.", "2024-01-18T14:30:00Z"},
	{"channel-video-3", "", "Tech Academy", "Building Scalable React Applications", "Learn how to build scalable React applications with modern architecture.", "2024-01-15T09:15:00Z"},
	{"channel-video-4", "", "Tech Academy", "TypeScript Best Practices", "Discover TypeScript best practices for enterprise applications.", "2024-01-12T11:00:00Z"},
	{"channel-video-5", "", "Tech Academy", "Node.js Performance Optimization", "Learn how to optimize Node.js applications for better performance.", "2024-01-10T15:30:00Z"},
	{"channel-video-6", "", "Tech Academy", "CSS Grid Layout Masterclass", "Master CSS Grid Layout with practical examples and projects.", "2024-01-08T09:00:00Z"},
}

// ChannelVideos pages through six uploads three at a time
func (f *Fixture) ChannelVideos(_ context.Context, p ChannelVideosParams) (SearchListResponse, error) {
	if err := p.Validate(); err != nil {
		return SearchListResponse{}, err
	}
	var page []fixtureItem
	next := ""
	switch p.PageToken {
	case "":
		page, next = fixtureUploads[:3], fixturePageTwo
	case fixturePageTwo:
		page = fixtureUploads[3:]
	}
	out := SearchListResponse{
		Kind:          "youtube#searchListResponse",
		ETag:          "mock-etag",
		NextPageToken: next,
		PageInfo:      PageInfo{TotalResults: len(fixtureUploads), ResultsPerPage: len(page)},
		Items:         []SearchResult{},
	}
	base := 0
	if p.PageToken == fixturePageTwo {
		base = 3
	}
	for i, it := range page {
		it.channelID = strings.TrimSpace(p.ChannelID)
		out.Items = append(out.Items, it.searchResult(fmt.Sprintf("mock-%d", base+i+1)))
	}
	return out, nil
}
