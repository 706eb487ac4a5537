package youtube

// Thumbnail is one rendition of an image
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Thumbnails holds the renditions the Data API returns, any may be absent
type Thumbnails struct {
	Default  *Thumbnail `json:"default,omitempty"`
	Medium   *Thumbnail `json:"medium,omitempty"`
	High     *Thumbnail `json:"high,omitempty"`
	Standard *Thumbnail `json:"standard,omitempty"`
	Maxres   *Thumbnail `json:"maxres,omitempty"`
}

// PageInfo is the paging summary attached to list responses
type PageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

// ListResponse is the envelope of every list endpoint
type ListResponse[T any] struct {
	Kind          string   `json:"kind,omitempty"`
	ETag          string   `json:"etag,omitempty"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
	PrevPageToken string   `json:"prevPageToken,omitempty"`
	PageInfo      PageInfo `json:"pageInfo"`
	Items         []T      `json:"items"`
}

// SearchListResponse is the /search response
type SearchListResponse = ListResponse[SearchResult]

// VideoListResponse is the /videos response
type VideoListResponse = ListResponse[Video]

// ChannelListResponse is the /channels response
type ChannelListResponse = ListResponse[Channel]

// Snippet is the shared descriptive block of videos, channels and search results
type Snippet struct {
	PublishedAt          string     `json:"publishedAt,omitempty"`
	ChannelID            string     `json:"channelId,omitempty"`
	Title                string     `json:"title,omitempty"`
	Description          string     `json:"description,omitempty"`
	Thumbnails           Thumbnails `json:"thumbnails"`
	ChannelTitle         string     `json:"channelTitle,omitempty"`
	Tags                 []string   `json:"tags,omitempty"`
	CategoryID           string     `json:"categoryId,omitempty"`
	CustomURL            string     `json:"customUrl,omitempty"`
	Country              string     `json:"country,omitempty"`
	LiveBroadcastContent string     `json:"liveBroadcastContent,omitempty"`
}

// ResourceID identifies the object a search result points at
type ResourceID struct {
	Kind      string `json:"kind"`
	VideoID   string `json:"videoId,omitempty"`
	ChannelID string `json:"channelId,omitempty"`
}

// SearchResult is one /search item
type SearchResult struct {
	Kind    string     `json:"kind,omitempty"`
	ETag    string     `json:"etag,omitempty"`
	ID      ResourceID `json:"id"`
	Snippet Snippet    `json:"snippet"`
}

// ContentDetails carries duration and format facts of a video
type ContentDetails struct {
	Duration   string `json:"duration,omitempty"`
	Dimension  string `json:"dimension,omitempty"`
	Definition string `json:"definition,omitempty"`
	Caption    string `json:"caption,omitempty"`
}

// VideoStatistics are numeric strings as the Data API sends them
type VideoStatistics struct {
	ViewCount    string `json:"viewCount,omitempty"`
	LikeCount    string `json:"likeCount,omitempty"`
	CommentCount string `json:"commentCount,omitempty"`
}

// Video is one /videos item
type Video struct {
	Kind           string           `json:"kind,omitempty"`
	ETag           string           `json:"etag,omitempty"`
	ID             string           `json:"id"`
	Snippet        Snippet          `json:"snippet"`
	ContentDetails *ContentDetails  `json:"contentDetails,omitempty"`
	Statistics     *VideoStatistics `json:"statistics,omitempty"`
}

// ChannelStatistics are numeric strings as the Data API sends them
type ChannelStatistics struct {
	ViewCount             string `json:"viewCount,omitempty"`
	SubscriberCount       string `json:"subscriberCount,omitempty"`
	HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
	VideoCount            string `json:"videoCount,omitempty"`
}

// BrandingSettings carries the channel banner and keywords
type BrandingSettings struct {
	Channel struct {
		Title       string `json:"title,omitempty"`
		Description string `json:"description,omitempty"`
		Keywords    string `json:"keywords,omitempty"`
	} `json:"channel"`
	Image *struct {
		BannerExternalURL string `json:"bannerExternalUrl,omitempty"`
	} `json:"image,omitempty"`
}

// Channel is one /channels item
type Channel struct {
	Kind             string             `json:"kind,omitempty"`
	ETag             string             `json:"etag,omitempty"`
	ID               string             `json:"id"`
	Snippet          Snippet            `json:"snippet"`
	Statistics       *ChannelStatistics `json:"statistics,omitempty"`
	BrandingSettings *BrandingSettings  `json:"brandingSettings,omitempty"`
}

// BannerURL returns the external banner url when the channel has one
func (c Channel) BannerURL() string {
	if c.BrandingSettings == nil || c.BrandingSettings.Image == nil {
		return ""
	}
	return c.BrandingSettings.Image.BannerExternalURL
}

// errorBody is the failure payload of the Data API and of our own gateway
type errorBody struct {
	Error *struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error"`
}
