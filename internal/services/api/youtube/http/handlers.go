// Package http exposes the YouTube proxy endpoints
package http

import (
	stdhttp "net/http"

	"videotube/internal/adapters/youtube"
	"videotube/internal/modkit/httpkit"
	perr "videotube/internal/platform/errors"
)

// Register mounts the proxy routes
func Register(r httpkit.Router, api youtube.API) {
	h := &handlers{api: api}

	httpkit.GetQuery(r, "/search", h.search)
	httpkit.GetQuery(r, "/channels", h.searchChannels)
	httpkit.Get(r, "/channels/{id}", h.channels)
	httpkit.GetQuery(r, "/channels/{id}/videos", h.channelVideos)
	httpkit.GetQuery(r, "/videos", h.videos)
	httpkit.GetQuery(r, "/popular", h.popular)
	httpkit.GetQuery(r, "/related", h.related)
}

type handlers struct{ api youtube.API }

// IDsQuery is a comma separated id list
type IDsQuery struct {
	ID string `query:"id" validate:"required,comma_ids" example:"dQw4w9WgXcQ,jNQXAC9IVRw"`
}

// PageQuery is the optional paging part of channel video listing
type PageQuery struct {
	Order      string `query:"order" validate:"omitempty,oneof=date rating relevance title videoCount viewCount" example:"date"`
	MaxResults int    `query:"maxResults" validate:"omitempty,min=1,max=50" example:"20"`
	PageToken  string `query:"pageToken"`
}

// swagger:route GET /youtube/search YouTube youtubeSearch
// @Summary Search videos
// @Tags YouTube
// @Produce json
// @Param query query string true "Search text"
// @Param maxResults query int false "1..50"
// @Param pageToken query string false "Cursor from a previous page"
// @Param order query string false "Sort order"
// @Success 200 {object} youtube.SearchListResponse
// @Router /youtube/search [get]
func (h *handlers) search(r *stdhttp.Request, in youtube.SearchParams) (any, error) {
	return h.api.SearchVideos(r.Context(), in)
}

// swagger:route GET /youtube/channels YouTube youtubeSearchChannels
// @Summary Search channels
// @Tags YouTube
// @Produce json
// @Param query query string true "Search text"
// @Success 200 {object} youtube.SearchListResponse
// @Router /youtube/channels [get]
func (h *handlers) searchChannels(r *stdhttp.Request, in youtube.SearchParams) (any, error) {
	return h.api.SearchChannels(r.Context(), in)
}

// swagger:route GET /youtube/channels/{id} YouTube youtubeChannels
// @Summary Channels by id
// @Tags YouTube
// @Produce json
// @Param id path string true "Comma separated channel ids"
// @Success 200 {object} youtube.ChannelListResponse
// @Failure 404 {object} httpkit.Envelope
// @Router /youtube/channels/{id} [get]
func (h *handlers) channels(r *stdhttp.Request) (any, error) {
	ids := youtube.SplitIDs(httpkit.Param(r, "id"))
	if len(ids) == 0 {
		return nil, perr.FieldErrorf("id", "Channel ID is required")
	}
	out, err := h.api.ChannelsByID(r.Context(), youtube.ChannelsParams{IDs: ids})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, perr.NotFoundf("Channel not found")
	}
	return out, nil
}

// swagger:route GET /youtube/channels/{id}/videos YouTube youtubeChannelVideos
// @Summary A channel's uploads
// @Tags YouTube
// @Produce json
// @Param id path string true "Channel id"
// @Success 200 {object} youtube.SearchListResponse
// @Router /youtube/channels/{id}/videos [get]
func (h *handlers) channelVideos(r *stdhttp.Request, in PageQuery) (any, error) {
	return h.api.ChannelVideos(r.Context(), youtube.ChannelVideosParams{
		ChannelID:  httpkit.Param(r, "id"),
		Order:      in.Order,
		MaxResults: in.MaxResults,
		PageToken:  in.PageToken,
	})
}

// swagger:route GET /youtube/videos YouTube youtubeVideos
// @Summary Videos by id
// @Tags YouTube
// @Produce json
// @Param id query string true "Comma separated video ids"
// @Success 200 {object} youtube.VideoListResponse
// @Router /youtube/videos [get]
func (h *handlers) videos(r *stdhttp.Request, in IDsQuery) (any, error) {
	return h.api.VideosByID(r.Context(), youtube.VideosParams{IDs: youtube.SplitIDs(in.ID)})
}

// swagger:route GET /youtube/popular YouTube youtubePopular
// @Summary Most popular chart
// @Tags YouTube
// @Produce json
// @Param regionCode query string false "ISO 3166 alpha-2"
// @Success 200 {object} youtube.VideoListResponse
// @Router /youtube/popular [get]
func (h *handlers) popular(r *stdhttp.Request, in youtube.PopularParams) (any, error) {
	return h.api.PopularVideos(r.Context(), in)
}

// swagger:route GET /youtube/related YouTube youtubeRelated
// @Summary Videos related to one video
// @Tags YouTube
// @Produce json
// @Param videoId query string true "Video id"
// @Success 200 {object} youtube.SearchListResponse
// @Router /youtube/related [get]
func (h *handlers) related(r *stdhttp.Request, in youtube.RelatedParams) (any, error) {
	return h.api.RelatedVideos(r.Context(), in)
}
