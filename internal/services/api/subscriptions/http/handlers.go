// Package http provides http transport for subscriptions
package http

import (
	stdhttp "net/http"

	"videotube/internal/modkit/httpkit"
	"videotube/internal/platform/logger"
	pnet "videotube/internal/platform/net"
	"videotube/internal/services/api/subscriptions/domain"
	svc "videotube/internal/services/api/subscriptions/service"
)

// Register mounts subscription endpoints; callers wrap r in httpkit.Protected
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.PostJSON(r, "/subscribe", h.subscribe)
	httpkit.PostJSON(r, "/unsubscribe", h.unsubscribe)
}

type handlers struct{ svc svc.Service }

// caller resolves the principal and tags the request logger with it
func caller(r *stdhttp.Request) (*stdhttp.Request, string, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return r, "", err
	}
	ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), uid)
	return r.WithContext(ctx), uid, nil
}

// swagger:route GET /subscriptions Subscriptions subscriptionsList
// @Summary The caller's subscribed channel ids
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.ListResult
// @Failure 401 {object} httpkit.Envelope
// @Router /subscriptions [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	r, uid, err := caller(r)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), uid)
}

// swagger:route POST /subscriptions/subscribe Subscriptions subscriptionsSubscribe
// @Summary Subscribe to a channel
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.ChannelInput true "Channel"
// @Success 200 {object} domain.MutationResult
// @Failure 400 {object} httpkit.Envelope
// @Failure 401 {object} httpkit.Envelope
// @Router /subscriptions/subscribe [post]
func (h *handlers) subscribe(r *stdhttp.Request, in domain.ChannelInput) (any, error) {
	r, uid, err := caller(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Subscribe(r.Context(), uid, in.ChannelID)
}

// swagger:route POST /subscriptions/unsubscribe Subscriptions subscriptionsUnsubscribe
// @Summary Unsubscribe from a channel
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.ChannelInput true "Channel"
// @Success 200 {object} domain.MutationResult
// @Failure 400 {object} httpkit.Envelope
// @Failure 401 {object} httpkit.Envelope
// @Router /subscriptions/unsubscribe [post]
func (h *handlers) unsubscribe(r *stdhttp.Request, in domain.ChannelInput) (any, error) {
	r, uid, err := caller(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Unsubscribe(r.Context(), uid, in.ChannelID)
}
