package gateway

import (
	"context"
	"net/url"
	"strings"

	"videotube/internal/adapters/youtube"
)

// SearchVideos calls GET /youtube/search
func (c *Client) SearchVideos(ctx context.Context, p youtube.SearchParams) (youtube.SearchListResponse, error) {
	var out youtube.SearchListResponse
	if err := p.Validate(); err != nil {
		return out, err
	}
	err := c.get(ctx, "/youtube/search", p.Values(), &out)
	return out, err
}

// SearchChannels calls GET /youtube/channels
func (c *Client) SearchChannels(ctx context.Context, p youtube.SearchParams) (youtube.SearchListResponse, error) {
	var out youtube.SearchListResponse
	if err := p.Validate(); err != nil {
		return out, err
	}
	err := c.get(ctx, "/youtube/channels", p.Values(), &out)
	return out, err
}

// VideosByID calls GET /youtube/videos?id=a,b
func (c *Client) VideosByID(ctx context.Context, p youtube.VideosParams) (youtube.VideoListResponse, error) {
	var out youtube.VideoListResponse
	if err := p.Validate(); err != nil {
		return out, err
	}
	err := c.get(ctx, "/youtube/videos", p.Values(), &out)
	return out, err
}

// ChannelsByID calls GET /youtube/channels/{a,b}
func (c *Client) ChannelsByID(ctx context.Context, p youtube.ChannelsParams) (youtube.ChannelListResponse, error) {
	var out youtube.ChannelListResponse
	if err := p.Validate(); err != nil {
		return out, err
	}
	err := c.get(ctx, "/youtube/channels/"+escapeIDs(p.IDs), nil, &out)
	return out, err
}

// PopularVideos calls GET /youtube/popular
func (c *Client) PopularVideos(ctx context.Context, p youtube.PopularParams) (youtube.VideoListResponse, error) {
	var out youtube.VideoListResponse
	if err := p.Validate(); err != nil {
		return out, err
	}
	err := c.get(ctx, "/youtube/popular", p.Values(), &out)
	return out, err
}

// RelatedVideos calls GET /youtube/related
func (c *Client) RelatedVideos(ctx context.Context, p youtube.RelatedParams) (youtube.SearchListResponse, error) {
	var out youtube.SearchListResponse
	if err := p.Validate(); err != nil {
		return out, err
	}
	err := c.get(ctx, "/youtube/related", p.Values(), &out)
	return out, err
}

// ChannelVideos calls GET /youtube/channels/{id}/videos
func (c *Client) ChannelVideos(ctx context.Context, p youtube.ChannelVideosParams) (youtube.SearchListResponse, error) {
	var out youtube.SearchListResponse
	if err := p.Validate(); err != nil {
		return out, err
	}
	path := "/youtube/channels/" + url.PathEscape(strings.TrimSpace(p.ChannelID)) + "/videos"
	err := c.get(ctx, path, p.Values(), &out)
	return out, err
}

// escapeIDs escapes each id but keeps the separating commas literal for the router
func escapeIDs(ids []string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = url.PathEscape(strings.TrimSpace(id))
	}
	return strings.Join(parts, ",")
}
