// Package youtube talks to the YouTube Data API v3 and provides a deterministic fixture backend
package youtube

import (
	"context"
	"time"

	"videotube/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// API is the upstream capability set the rest of the system consumes
// Every implementation validates params before any network call
type API interface {
	SearchVideos(ctx context.Context, p SearchParams) (SearchListResponse, error)
	SearchChannels(ctx context.Context, p SearchParams) (SearchListResponse, error)
	VideosByID(ctx context.Context, p VideosParams) (VideoListResponse, error)
	ChannelsByID(ctx context.Context, p ChannelsParams) (ChannelListResponse, error)
	PopularVideos(ctx context.Context, p PopularParams) (VideoListResponse, error)
	RelatedVideos(ctx context.Context, p RelatedParams) (SearchListResponse, error)
	ChannelVideos(ctx context.Context, p ChannelVideosParams) (SearchListResponse, error)
}

// Config selects and tunes the backend
type Config struct {
	Client   Options
	CacheTTL time.Duration
	Redis    redis.UniversalClient
}

// New returns the upstream client when an API key is configured, otherwise the fixture backend
// A positive CacheTTL wraps the upstream client with the response cache
func New(cfg Config) API {
	if cfg.Client.APIKey == "" {
		logger.Named("youtube").Warn().Msg("no YouTube API key configured, serving fixture data")
		return NewFixture()
	}
	var api API = NewClient(cfg.Client)
	if cfg.CacheTTL > 0 {
		api = NewCached(api, CacheOptions{TTL: cfg.CacheTTL, Redis: cfg.Redis})
	}
	return api
}
