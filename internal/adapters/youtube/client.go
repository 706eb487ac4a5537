package youtube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"videotube/internal/core/version"
	perr "videotube/internal/platform/errors"
	"videotube/internal/platform/logger"

	"golang.org/x/time/rate"
)

const (
	baseURLDefault = "https://www.googleapis.com/youtube/v3"
	defaultTimeout = 10 * time.Second
	defaultQPS     = 10
	defaultBurst   = 20
	maxBody        = 4 << 20

	partVideo   = "snippet,contentDetails,statistics"
	partChannel = "snippet,statistics,brandingSettings"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration

	// Client side quota guard; calls wait for a token rather than failing
	QPS   float64
	Burst int
}

// Client is a direct YouTube Data API v3 client
// It never retries; a failed call surfaces as a *GatewayError
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = version.UserAgent("videotube-api")
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.QPS <= 0 {
		o.QPS = defaultQPS
	}
	if o.Burst <= 0 {
		o.Burst = defaultBurst
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		limiter: rate.NewLimiter(rate.Limit(o.QPS), o.Burst),
		log:     *logger.Named("youtube"),
		now:     time.Now,
	}
}

// get issues GET {base}/{resource}?{q}&key=... and decodes a 2xx body into out
func (c *Client) get(ctx context.Context, resource string, q url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return perr.Wrap(err, perr.ErrorCodeTooManyRequests, "youtube client quota exhausted")
	}

	q.Set("key", c.opts.APIKey)
	u := c.opts.BaseURL + "/" + resource + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "youtube new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		if ctx.Err() == context.Canceled {
			return ctx.Err()
		}
		c.log.Warn().Err(err).Str("resource", resource).Dur("latency", lat).Msg("youtube transport error")
		return networkError(err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("resource", resource).Msg("youtube close body failed")
		}
	}()

	c.log.Debug().
		Str("resource", resource).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("youtube http response")

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		if ctx.Err() == context.Canceled {
			return ctx.Err()
		}
		return networkError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := messageOf(b)
		if msg == "" {
			msg = "YouTube API error"
		}
		c.log.Warn().Str("resource", resource).Int("status", resp.StatusCode).Str("message", msg).Msg("youtube api error")
		return newGatewayError(resp.StatusCode, msg, b)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "youtube response decode failed")
	}
	return nil
}

func searchValues(p SearchParams, kind string) url.Values {
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("q", strings.TrimSpace(p.Query))
	q.Set("type", kind)
	q.Set("order", orDefault(p.Order, DefaultOrder))
	setInt(q, "maxResults", orDefaultInt(p.MaxResults, DefaultMaxResults))
	setIf(q, "pageToken", p.PageToken)
	return q
}

// SearchVideos runs a video search
func (c *Client) SearchVideos(ctx context.Context, p SearchParams) (SearchListResponse, error) {
	var out SearchListResponse
	if err := p.Validate(); err != nil {
		return out, err
	}
	err := c.get(ctx, "search", searchValues(p, "video"), &out)
	return out, err
}

// SearchChannels runs a channel search
func (c *Client) SearchChannels(ctx context.Context, p SearchParams) (SearchListResponse, error) {
	var out SearchListResponse
	if err := p.Validate(); err != nil {
		return out, err
	}
	err := c.get(ctx, "search", searchValues(p, "channel"), &out)
	return out, err
}

// VideosByID fetches full video records in one batch
func (c *Client) VideosByID(ctx context.Context, p VideosParams) (VideoListResponse, error) {
	var out VideoListResponse
	if err := p.Validate(); err != nil {
		return out, err
	}
	q := url.Values{}
	q.Set("part", partVideo)
	q.Set("id", strings.Join(p.IDs, ","))
	err := c.get(ctx, "videos", q, &out)
	return out, err
}

// ChannelsByID fetches channel records in one batch
func (c *Client) ChannelsByID(ctx context.Context, p ChannelsParams) (ChannelListResponse, error) {
	var out ChannelListResponse
	if err := p.Validate(); err != nil {
		return out, err
	}
	q := url.Values{}
	q.Set("part", partChannel)
	q.Set("id", strings.Join(p.IDs, ","))
	err := c.get(ctx, "channels", q, &out)
	return out, err
}

// PopularVideos lists the most popular chart for a region
func (c *Client) PopularVideos(ctx context.Context, p PopularParams) (VideoListResponse, error) {
	var out VideoListResponse
	if err := p.Validate(); err != nil {
		return out, err
	}
	q := url.Values{}
	q.Set("part", partVideo)
	q.Set("chart", "mostPopular")
	q.Set("regionCode", orDefault(p.RegionCode, DefaultRegionCode))
	setInt(q, "maxResults", orDefaultInt(p.MaxResults, DefaultMaxResults))
	setIf(q, "pageToken", p.PageToken)
	err := c.get(ctx, "videos", q, &out)
	return out, err
}

// RelatedVideos approximates related content with the popular chart of the default category
// The Data API dropped relatedToVideoId, so the video id only scopes validation and caching
func (c *Client) RelatedVideos(ctx context.Context, p RelatedParams) (SearchListResponse, error) {
	if err := p.Validate(); err != nil {
		return SearchListResponse{}, err
	}
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("chart", "mostPopular")
	q.Set("videoCategoryId", "0")
	setInt(q, "maxResults", orDefaultInt(p.MaxResults, DefaultMaxResults))
	setIf(q, "pageToken", p.PageToken)
	var vids VideoListResponse
	if err := c.get(ctx, "videos", q, &vids); err != nil {
		return SearchListResponse{}, err
	}
	return VideosAsSearch(vids), nil
}

// ChannelVideos lists a channel's uploads, newest first by default
func (c *Client) ChannelVideos(ctx context.Context, p ChannelVideosParams) (SearchListResponse, error) {
	var out SearchListResponse
	if err := p.Validate(); err != nil {
		return out, err
	}
	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("channelId", strings.TrimSpace(p.ChannelID))
	q.Set("type", "video")
	q.Set("order", orDefault(p.Order, DefaultChannelOrder))
	setInt(q, "maxResults", orDefaultInt(p.MaxResults, DefaultMaxResults))
	setIf(q, "pageToken", p.PageToken)
	err := c.get(ctx, "search", q, &out)
	return out, err
}

// VideosAsSearch reshapes a video list into search-result form, keeping paging fields
func VideosAsSearch(in VideoListResponse) SearchListResponse {
	out := SearchListResponse{
		Kind:          "youtube#searchListResponse",
		ETag:          in.ETag,
		NextPageToken: in.NextPageToken,
		PrevPageToken: in.PrevPageToken,
		PageInfo:      in.PageInfo,
		Items:         make([]SearchResult, 0, len(in.Items)),
	}
	for _, v := range in.Items {
		out.Items = append(out.Items, SearchResult{
			Kind:    "youtube#searchResult",
			ETag:    v.ETag,
			ID:      ResourceID{Kind: "youtube#video", VideoID: v.ID},
			Snippet: v.Snippet,
		})
	}
	return out
}
