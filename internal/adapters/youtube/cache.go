package youtube

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"videotube/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

const defaultMaxEntries = 1024

// CacheOptions tunes the response cache
type CacheOptions struct {
	TTL        time.Duration
	MaxEntries int
	// Redis is the optional shared L2; nil keeps the cache process local
	Redis redis.UniversalClient
}

// CacheStats are hit and miss counters since start
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// Cached wraps an API with a two tier response cache: L1 memory, L2 Redis
// Only successful responses are stored
type Cached struct {
	next API
	opts CacheOptions
	log  logger.Logger
	now  func() time.Time

	mu sync.Mutex
	l1 map[string]cacheEntry

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewCached wraps next with a response cache
func NewCached(next API, o CacheOptions) *Cached {
	if o.MaxEntries <= 0 {
		o.MaxEntries = defaultMaxEntries
	}
	return &Cached{
		next: next,
		opts: o,
		log:  *logger.Named("youtube-cache"),
		now:  time.Now,
		l1:   make(map[string]cacheEntry),
	}
}

// Stats returns the cache counters
func (c *Cached) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// cacheKey builds a deterministic key from the operation and its encoded params
func cacheKey(op string, parts ...string) string {
	sum := sha256.Sum256([]byte(op + "|" + strings.Join(parts, "|")))
	return fmt.Sprintf("yt:%x", sum[:12])
}

func (c *Cached) load(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	e, ok := c.l1[key]
	if ok && c.now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.data, true
	}
	if ok {
		delete(c.l1, key)
	}
	c.mu.Unlock()

	if c.opts.Redis == nil {
		return nil, false
	}
	data, err := c.opts.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug().Err(err).Str("key", key).Msg("cache L2 get failed")
		}
		return nil, false
	}
	c.storeL1(key, data)
	return data, true
}

func (c *Cached) storeL1(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.l1) >= c.opts.MaxEntries {
		c.evictLocked()
	}
	c.l1[key] = cacheEntry{data: data, expiresAt: c.now().Add(c.opts.TTL)}
}

// evictLocked drops expired entries, then the one closest to expiry
func (c *Cached) evictLocked() {
	now := c.now()
	for k, e := range c.l1 {
		if !now.Before(e.expiresAt) {
			delete(c.l1, k)
		}
	}
	for len(c.l1) >= c.opts.MaxEntries {
		var oldest string
		var at time.Time
		for k, e := range c.l1 {
			if oldest == "" || e.expiresAt.Before(at) {
				oldest, at = k, e.expiresAt
			}
		}
		delete(c.l1, oldest)
	}
}

func (c *Cached) store(ctx context.Context, key string, data []byte) {
	c.storeL1(key, data)
	if c.opts.Redis == nil {
		return
	}
	if err := c.opts.Redis.Set(ctx, key, data, c.opts.TTL).Err(); err != nil {
		c.log.Debug().Err(err).Str("key", key).Msg("cache L2 set failed")
	}
}

// through serves key from cache or calls fetch and stores the result
func through[T any](ctx context.Context, c *Cached, key string, fetch func() (T, error)) (T, error) {
	if data, ok := c.load(ctx, key); ok {
		var out T
		if err := json.Unmarshal(data, &out); err == nil {
			c.hits.Add(1)
			return out, nil
		}
	}
	c.misses.Add(1)
	out, err := fetch()
	if err != nil {
		return out, err
	}
	if data, err := json.Marshal(out); err == nil {
		c.store(ctx, key, data)
	}
	return out, nil
}

func (c *Cached) SearchVideos(ctx context.Context, p SearchParams) (SearchListResponse, error) {
	if err := p.Validate(); err != nil {
		return SearchListResponse{}, err
	}
	return through(ctx, c, cacheKey("search.video", p.Values().Encode()), func() (SearchListResponse, error) {
		return c.next.SearchVideos(ctx, p)
	})
}

func (c *Cached) SearchChannels(ctx context.Context, p SearchParams) (SearchListResponse, error) {
	if err := p.Validate(); err != nil {
		return SearchListResponse{}, err
	}
	return through(ctx, c, cacheKey("search.channel", p.Values().Encode()), func() (SearchListResponse, error) {
		return c.next.SearchChannels(ctx, p)
	})
}

func (c *Cached) VideosByID(ctx context.Context, p VideosParams) (VideoListResponse, error) {
	if err := p.Validate(); err != nil {
		return VideoListResponse{}, err
	}
	return through(ctx, c, cacheKey("videos", p.IDs...), func() (VideoListResponse, error) {
		return c.next.VideosByID(ctx, p)
	})
}

func (c *Cached) ChannelsByID(ctx context.Context, p ChannelsParams) (ChannelListResponse, error) {
	if err := p.Validate(); err != nil {
		return ChannelListResponse{}, err
	}
	return through(ctx, c, cacheKey("channels", p.IDs...), func() (ChannelListResponse, error) {
		return c.next.ChannelsByID(ctx, p)
	})
}

func (c *Cached) PopularVideos(ctx context.Context, p PopularParams) (VideoListResponse, error) {
	if err := p.Validate(); err != nil {
		return VideoListResponse{}, err
	}
	return through(ctx, c, cacheKey("popular", p.Values().Encode()), func() (VideoListResponse, error) {
		return c.next.PopularVideos(ctx, p)
	})
}

func (c *Cached) RelatedVideos(ctx context.Context, p RelatedParams) (SearchListResponse, error) {
	if err := p.Validate(); err != nil {
		return SearchListResponse{}, err
	}
	return through(ctx, c, cacheKey("related", p.Values().Encode()), func() (SearchListResponse, error) {
		return c.next.RelatedVideos(ctx, p)
	})
}

func (c *Cached) ChannelVideos(ctx context.Context, p ChannelVideosParams) (SearchListResponse, error) {
	if err := p.Validate(); err != nil {
		return SearchListResponse{}, err
	}
	key := cacheKey("channel.videos", p.ChannelID, p.Values().Encode())
	return through(ctx, c, key, func() (SearchListResponse, error) {
		return c.next.ChannelVideos(ctx, p)
	})
}
