package normalize

import (
	"strings"

	"videotube/internal/adapters/youtube"
	"videotube/internal/core/media"
)

// thumbnail preference, best first
func pickThumbnail(t youtube.Thumbnails) string {
	for _, th := range []*youtube.Thumbnail{t.High, t.Medium, t.Standard, t.Default, t.Maxres} {
		if th != nil && strings.TrimSpace(th.URL) != "" {
			return th.URL
		}
	}
	return ""
}

func fromSnippet(id string, s youtube.Snippet) (media.Video, bool) {
	v := media.Video{
		ID:           strings.TrimSpace(id),
		Title:        Line(s.Title),
		Description:  Text(s.Description),
		ThumbnailURL: pickThumbnail(s.Thumbnails),
		ChannelID:    strings.TrimSpace(s.ChannelID),
		ChannelTitle: Line(s.ChannelTitle),
		PublishedAt:  strings.TrimSpace(s.PublishedAt),
	}
	ok := v.ID != "" && v.Title != "" && v.ThumbnailURL != "" && v.ChannelID != "" && v.PublishedAt != ""
	return v, ok
}

// Video normalizes a full /videos record; false when a required field is missing
func Video(raw youtube.Video) (media.Video, bool) {
	v, ok := fromSnippet(raw.ID, raw.Snippet)
	if !ok {
		return media.Video{}, false
	}
	if st := raw.Statistics; st != nil {
		v.ViewCount = st.ViewCount
		v.LikeCount = st.LikeCount
	}
	if cd := raw.ContentDetails; cd != nil {
		v.Duration = cd.Duration
	}
	return v, true
}

// VideoStub normalizes a /search result; stubs carry no statistics or duration
func VideoStub(raw youtube.SearchResult) (media.Video, bool) {
	if raw.ID.VideoID == "" {
		return media.Video{}, false
	}
	return fromSnippet(raw.ID.VideoID, raw.Snippet)
}

// Videos normalizes a batch, dropping invalid records and repeated ids
func Videos(raws []youtube.Video) []media.Video {
	out := make([]media.Video, 0, len(raws))
	for _, r := range raws {
		if v, ok := Video(r); ok {
			out = append(out, v)
		}
	}
	return media.Dedupe(out)
}

// VideoIDs returns the distinct video ids of search results in result order
func VideoIDs(results []youtube.SearchResult) []string {
	return distinct(results, func(r youtube.SearchResult) string { return r.ID.VideoID })
}

// ChannelIDs returns the distinct channel ids of channel search results in result order
func ChannelIDs(results []youtube.SearchResult) []string {
	return distinct(results, func(r youtube.SearchResult) string { return r.ID.ChannelID })
}

// InOrder arranges items to follow ids; items whose id is not listed are dropped
func InOrder[T media.Keyed](items []T, ids []string) []T {
	byID := make(map[string]T, len(items))
	for _, it := range items {
		if _, dup := byID[it.Key()]; !dup {
			byID[it.Key()] = it
		}
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			out = append(out, it)
			delete(byID, id)
		}
	}
	return out
}

func distinct[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, it := range items {
		k := strings.TrimSpace(key(it))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
