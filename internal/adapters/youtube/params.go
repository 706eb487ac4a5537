package youtube

import (
	"net/url"
	"strconv"
	"strings"

	"videotube/internal/platform/net/http/bind"
)

// Defaults applied by the upstream client when a param is left empty
const (
	DefaultMaxResults   = 20
	DefaultOrder        = "relevance"
	DefaultChannelOrder = "date"
	DefaultRegionCode   = "US"
)

// SearchParams drives video and channel search
type SearchParams struct {
	Query      string `query:"query" validate:"required"`
	Order      string `query:"order" validate:"omitempty,oneof=date rating relevance title videoCount viewCount"`
	MaxResults int    `query:"maxResults" validate:"omitempty,min=1,max=50"`
	PageToken  string `query:"pageToken"`
}

// Validate checks required fields before any network call
func (p SearchParams) Validate() error {
	p.Query = strings.TrimSpace(p.Query)
	return bind.Validate(p)
}

// Values serializes the params, omitting empty optionals
func (p SearchParams) Values() url.Values {
	v := url.Values{}
	v.Set("query", strings.TrimSpace(p.Query))
	setIf(v, "order", p.Order)
	setInt(v, "maxResults", p.MaxResults)
	setIf(v, "pageToken", p.PageToken)
	return v
}

// ChannelVideosParams lists a channel's uploads
type ChannelVideosParams struct {
	ChannelID  string `query:"channelId" validate:"required"`
	Order      string `query:"order" validate:"omitempty,oneof=date rating relevance title videoCount viewCount"`
	MaxResults int    `query:"maxResults" validate:"omitempty,min=1,max=50"`
	PageToken  string `query:"pageToken"`
}

// Validate checks required fields before any network call
func (p ChannelVideosParams) Validate() error {
	p.ChannelID = strings.TrimSpace(p.ChannelID)
	return bind.Validate(p)
}

// Values serializes the params without the channel id, which travels in the path
func (p ChannelVideosParams) Values() url.Values {
	v := url.Values{}
	setIf(v, "order", p.Order)
	setInt(v, "maxResults", p.MaxResults)
	setIf(v, "pageToken", p.PageToken)
	return v
}

// VideosParams fetches videos by id
type VideosParams struct {
	IDs []string `query:"id" validate:"required,min=1,max=50,dive,required"`
}

// Validate checks required fields before any network call
func (p VideosParams) Validate() error { return bind.Validate(p) }

// Values serializes the params
func (p VideosParams) Values() url.Values {
	v := url.Values{}
	v.Set("id", strings.Join(p.IDs, ","))
	return v
}

// ChannelsParams fetches channels by id
type ChannelsParams struct {
	IDs []string `query:"id" validate:"required,min=1,max=50,dive,required"`
}

// Validate checks required fields before any network call
func (p ChannelsParams) Validate() error { return bind.Validate(p) }

// Values serializes the params
func (p ChannelsParams) Values() url.Values {
	v := url.Values{}
	v.Set("id", strings.Join(p.IDs, ","))
	return v
}

// PopularParams lists the most popular chart
type PopularParams struct {
	RegionCode string `query:"regionCode" validate:"omitempty,len=2,alpha"`
	MaxResults int    `query:"maxResults" validate:"omitempty,min=1,max=50"`
	PageToken  string `query:"pageToken"`
}

// Validate checks params before any network call
func (p PopularParams) Validate() error { return bind.Validate(p) }

// Values serializes the params, omitting empty optionals
func (p PopularParams) Values() url.Values {
	v := url.Values{}
	setIf(v, "regionCode", p.RegionCode)
	setInt(v, "maxResults", p.MaxResults)
	setIf(v, "pageToken", p.PageToken)
	return v
}

// RelatedParams lists videos related to one video
type RelatedParams struct {
	VideoID    string `query:"videoId" validate:"required"`
	MaxResults int    `query:"maxResults" validate:"omitempty,min=1,max=50"`
	PageToken  string `query:"pageToken"`
}

// Validate checks required fields before any network call
func (p RelatedParams) Validate() error {
	p.VideoID = strings.TrimSpace(p.VideoID)
	return bind.Validate(p)
}

// Values serializes the params, omitting empty optionals
func (p RelatedParams) Values() url.Values {
	v := url.Values{}
	v.Set("videoId", strings.TrimSpace(p.VideoID))
	setInt(v, "maxResults", p.MaxResults)
	setIf(v, "pageToken", p.PageToken)
	return v
}

// SplitIDs turns "a, b,,c" into [a b c]
func SplitIDs(csv string) []string {
	var out []string
	for part := range strings.SplitSeq(csv, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func setIf(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

func setInt(v url.Values, key string, n int) {
	if n > 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orDefaultInt(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
