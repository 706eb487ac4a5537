// Package media holds the canonical shapes the client core renders
package media

// Video is a normalized video; ID, Title, ThumbnailURL, ChannelID and PublishedAt are always set
type Video struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	ThumbnailURL        string `json:"thumbnailUrl"`
	ChannelID           string `json:"channelId"`
	ChannelTitle        string `json:"channelTitle"`
	ChannelThumbnailURL string `json:"channelThumbnailUrl,omitempty"`
	PublishedAt         string `json:"publishedAt"`
	ViewCount           string `json:"viewCount,omitempty"`
	LikeCount           string `json:"likeCount,omitempty"`
	Duration            string `json:"duration,omitempty"`
}

// Key is the dedupe identity
func (v Video) Key() string { return v.ID }

// Channel is a normalized channel; counts are numeric strings defaulting to "0"
type Channel struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	CustomURL       string `json:"customUrl,omitempty"`
	SubscriberCount string `json:"subscriberCount"`
	VideoCount      string `json:"videoCount"`
	PublishedAt     string `json:"publishedAt"`
	BannerURL       string `json:"bannerUrl,omitempty"`
}

// Key is the dedupe identity
func (c Channel) Key() string { return c.ID }

// Keyed is anything with a stable identity within a result set
type Keyed interface {
	Key() string
}

// Page is one fetched page; an empty NextPageToken marks the last page
type Page[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}

// Dedupe keeps the first occurrence of every key, preserving order
func Dedupe[T Keyed](items []T) []T {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := it.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}
