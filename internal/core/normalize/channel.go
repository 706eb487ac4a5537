package normalize

import (
	"context"
	"strings"

	"videotube/internal/adapters/youtube"
	"videotube/internal/core/media"
	"videotube/internal/platform/logger"
	"videotube/internal/platform/monitor"
)

// maxLookupIDs is the Data API batch ceiling for channels.list
const maxLookupIDs = 50

// Channel normalizes a /channels record; false when id or title is missing
func Channel(raw youtube.Channel) (media.Channel, bool) {
	c := media.Channel{
		ID:              strings.TrimSpace(raw.ID),
		Title:           Line(raw.Snippet.Title),
		Description:     Text(raw.Snippet.Description),
		ThumbnailURL:    pickThumbnail(raw.Snippet.Thumbnails),
		CustomURL:       raw.Snippet.CustomURL,
		SubscriberCount: "0",
		VideoCount:      "0",
		PublishedAt:     raw.Snippet.PublishedAt,
		BannerURL:       raw.BannerURL(),
	}
	if c.ID == "" || c.Title == "" {
		return media.Channel{}, false
	}
	if st := raw.Statistics; st != nil {
		if st.SubscriberCount != "" {
			c.SubscriberCount = st.SubscriberCount
		}
		if st.VideoCount != "" {
			c.VideoCount = st.VideoCount
		}
	}
	return c, true
}

// Channels normalizes a batch, dropping invalid records and repeated ids
func Channels(raws []youtube.Channel) []media.Channel {
	out := make([]media.Channel, 0, len(raws))
	for _, r := range raws {
		if c, ok := Channel(r); ok {
			out = append(out, c)
		}
	}
	return media.Dedupe(out)
}

// ChannelLookup is the batched channel fetch used for enrichment; youtube.API satisfies it
type ChannelLookup interface {
	ChannelsByID(ctx context.Context, p youtube.ChannelsParams) (youtube.ChannelListResponse, error)
}

// EnrichChannelThumbnails attaches channel avatars with one batched lookup
// Lookup failure never fails the caller: the videos come back without avatars
func EnrichChannelThumbnails(ctx context.Context, lookup ChannelLookup, videos []media.Video) []media.Video {
	ids := distinct(videos, func(v media.Video) string { return v.ChannelID })
	if len(ids) == 0 || lookup == nil {
		return videos
	}
	if len(ids) > maxLookupIDs {
		ids = ids[:maxLookupIDs]
	}

	res, err := lookup.ChannelsByID(ctx, youtube.ChannelsParams{IDs: ids})
	if err != nil {
		if youtube.IsCanceled(err) || ctx.Err() != nil {
			return videos
		}
		logger.C(ctx).Warn().Err(err).Int("channels", len(ids)).Msg("channel thumbnail enrichment failed")
		monitor.Get().LogWarning(ctx, "channel thumbnail enrichment failed", monitor.Fields{
			"component": "normalize",
			"action":    "enrich_channel_thumbnails",
			"error":     err.Error(),
		})
		return videos
	}

	thumbs := make(map[string]string, len(res.Items))
	for _, ch := range res.Items {
		if u := pickThumbnail(ch.Snippet.Thumbnails); ch.ID != "" && u != "" {
			thumbs[ch.ID] = u
		}
	}
	out := make([]media.Video, len(videos))
	for i, v := range videos {
		if u, ok := thumbs[v.ChannelID]; ok {
			v.ChannelThumbnailURL = u
		}
		out[i] = v
	}
	return out
}
