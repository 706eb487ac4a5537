// Package catalog composes the upstream API and the normalizer into page
// fetchers for every list the client renders
package catalog

import (
	"context"
	"strings"
	"time"

	"videotube/internal/adapters/youtube"
	"videotube/internal/core/media"
	"videotube/internal/core/normalize"
	"videotube/internal/core/paginate"
	perr "videotube/internal/platform/errors"
)

// Kind names a list or lookup; it prefixes query keys
type Kind string

const (
	KindSearch        Kind = "search"
	KindChannelSearch Kind = "channel_search"
	KindChannelVideos Kind = "channel_videos"
	KindPopular       Kind = "popular"
	KindRelated       Kind = "related"
	KindVideo         Kind = "video"
	KindChannel       Kind = "channel"
)

// StaleFor is how long results of kind are served from cache
func StaleFor(k Kind) time.Duration {
	switch k {
	case KindVideo, KindRelated:
		return 10 * time.Minute
	default:
		return 5 * time.Minute
	}
}

// Catalog turns API calls into normalized, enriched pages
type Catalog struct {
	api youtube.API
}

// New wraps api
func New(api youtube.API) *Catalog { return &Catalog{api: api} }

// hydrate fetches full records for ids, keeps their order and attaches channel avatars
func (c *Catalog) hydrate(ctx context.Context, ids []string) ([]media.Video, error) {
	if len(ids) == 0 {
		return []media.Video{}, nil
	}
	res, err := c.api.VideosByID(ctx, youtube.VideosParams{IDs: ids})
	if err != nil {
		return nil, err
	}
	videos := normalize.InOrder(normalize.Videos(res.Items), ids)
	return normalize.EnrichChannelThumbnails(ctx, c.api, videos), nil
}

// hydrateSearch is the common tail of every search shaped list
func (c *Catalog) hydrateSearch(ctx context.Context, res youtube.SearchListResponse) (media.Page[media.Video], error) {
	videos, err := c.hydrate(ctx, normalize.VideoIDs(res.Items))
	if err != nil {
		return media.Page[media.Video]{}, err
	}
	return media.Page[media.Video]{Items: videos, NextPageToken: res.NextPageToken}, nil
}

// SearchVideos pages through a video search; stubs are always hydrated by id
func (c *Catalog) SearchVideos(p youtube.SearchParams) paginate.Fetcher[media.Video] {
	return func(ctx context.Context, cursor string) (media.Page[media.Video], error) {
		p.PageToken = cursor
		res, err := c.api.SearchVideos(ctx, p)
		if err != nil {
			return media.Page[media.Video]{}, err
		}
		return c.hydrateSearch(ctx, res)
	}
}

// ChannelVideos pages through a channel's uploads
func (c *Catalog) ChannelVideos(p youtube.ChannelVideosParams) paginate.Fetcher[media.Video] {
	return func(ctx context.Context, cursor string) (media.Page[media.Video], error) {
		p.PageToken = cursor
		res, err := c.api.ChannelVideos(ctx, p)
		if err != nil {
			return media.Page[media.Video]{}, err
		}
		return c.hydrateSearch(ctx, res)
	}
}

// Related pages through videos related to one video
func (c *Catalog) Related(p youtube.RelatedParams) paginate.Fetcher[media.Video] {
	return func(ctx context.Context, cursor string) (media.Page[media.Video], error) {
		p.PageToken = cursor
		res, err := c.api.RelatedVideos(ctx, p)
		if err != nil {
			return media.Page[media.Video]{}, err
		}
		return c.hydrateSearch(ctx, res)
	}
}

// Popular pages through the most popular chart; records are already full
func (c *Catalog) Popular(p youtube.PopularParams) paginate.Fetcher[media.Video] {
	return func(ctx context.Context, cursor string) (media.Page[media.Video], error) {
		p.PageToken = cursor
		res, err := c.api.PopularVideos(ctx, p)
		if err != nil {
			return media.Page[media.Video]{}, err
		}
		videos := normalize.EnrichChannelThumbnails(ctx, c.api, normalize.Videos(res.Items))
		return media.Page[media.Video]{Items: videos, NextPageToken: res.NextPageToken}, nil
	}
}

// SearchChannels pages through a channel search, hydrating channels by id
func (c *Catalog) SearchChannels(p youtube.SearchParams) paginate.Fetcher[media.Channel] {
	return func(ctx context.Context, cursor string) (media.Page[media.Channel], error) {
		p.PageToken = cursor
		res, err := c.api.SearchChannels(ctx, p)
		if err != nil {
			return media.Page[media.Channel]{}, err
		}
		ids := normalize.ChannelIDs(res.Items)
		if len(ids) == 0 {
			return media.Page[media.Channel]{Items: []media.Channel{}, NextPageToken: res.NextPageToken}, nil
		}
		chans, err := c.api.ChannelsByID(ctx, youtube.ChannelsParams{IDs: ids})
		if err != nil {
			return media.Page[media.Channel]{}, err
		}
		items := normalize.InOrder(normalize.Channels(chans.Items), ids)
		return media.Page[media.Channel]{Items: items, NextPageToken: res.NextPageToken}, nil
	}
}

// Video looks up one video; a missing video is a NotFound error
func (c *Catalog) Video(ctx context.Context, id string) (media.Video, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return media.Video{}, perr.FieldErrorf("id", "id is required")
	}
	videos, err := c.hydrate(ctx, []string{id})
	if err != nil {
		return media.Video{}, err
	}
	if len(videos) == 0 {
		return media.Video{}, perr.NotFoundf("video %s not found", id)
	}
	return videos[0], nil
}

// Channel looks up one channel; a missing channel is a NotFound error
func (c *Catalog) Channel(ctx context.Context, id string) (media.Channel, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return media.Channel{}, perr.FieldErrorf("id", "id is required")
	}
	res, err := c.api.ChannelsByID(ctx, youtube.ChannelsParams{IDs: []string{id}})
	if err != nil {
		return media.Channel{}, err
	}
	chans := normalize.Channels(res.Items)
	if len(chans) == 0 {
		return media.Channel{}, perr.NotFoundf("channel %s not found", id)
	}
	return chans[0], nil
}
