package catalog

import (
	"context"
	"net/url"
	"strings"

	"videotube/internal/adapters/youtube"
	"videotube/internal/core/media"
	"videotube/internal/core/paginate"
)

// Browser is the client facing entry point: one cached query per list and parameter set
type Browser struct {
	cat      *Catalog
	videos   *paginate.Orchestrator[media.Video]
	channels *paginate.Orchestrator[media.Channel]

	// search as you type: only the newest search may complete
	typing paginate.Latest
}

// NewBrowser builds a Browser over api
func NewBrowser(api youtube.API) *Browser {
	return &Browser{
		cat:      New(api),
		videos:   paginate.New[media.Video](paginate.DefaultStaleFor),
		channels: paginate.New[media.Channel](paginate.DefaultStaleFor),
	}
}

// Catalog exposes single lookups
func (b *Browser) Catalog() *Catalog { return b.cat }

func key(k Kind, v url.Values) string {
	v.Del("pageToken")
	return paginate.Key(string(k), v)
}

// SearchVideos opens the video search for p and loads its first page
// A newer search cancels this one; a cancelled search returns its context error
func (b *Browser) SearchVideos(ctx context.Context, p youtube.SearchParams) (*paginate.Query[media.Video], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	ctx, done := b.typing.Begin(ctx)
	defer done()
	return b.videos.Load(ctx, key(KindSearch, p.Values()), b.cat.SearchVideos(p), StaleFor(KindSearch))
}

// SearchChannels opens the channel search for p
func (b *Browser) SearchChannels(ctx context.Context, p youtube.SearchParams) (*paginate.Query[media.Channel], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return b.channels.Load(ctx, key(KindChannelSearch, p.Values()), b.cat.SearchChannels(p), StaleFor(KindChannelSearch))
}

// ChannelVideos opens a channel's uploads
func (b *Browser) ChannelVideos(ctx context.Context, p youtube.ChannelVideosParams) (*paginate.Query[media.Video], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	v := p.Values()
	v.Set("channelId", strings.TrimSpace(p.ChannelID))
	return b.videos.Load(ctx, key(KindChannelVideos, v), b.cat.ChannelVideos(p), StaleFor(KindChannelVideos))
}

// Popular opens the most popular chart
func (b *Browser) Popular(ctx context.Context, p youtube.PopularParams) (*paginate.Query[media.Video], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return b.videos.Load(ctx, key(KindPopular, p.Values()), b.cat.Popular(p), StaleFor(KindPopular))
}

// Related opens the related list of one video
func (b *Browser) Related(ctx context.Context, p youtube.RelatedParams) (*paginate.Query[media.Video], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return b.videos.Load(ctx, key(KindRelated, p.Values()), b.cat.Related(p), StaleFor(KindRelated))
}
