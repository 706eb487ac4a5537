// Package http accepts client error reports
package http

import (
	stdhttp "net/http"
	"time"

	"videotube/internal/modkit/httpkit"
	perr "videotube/internal/platform/errors"
	"videotube/internal/platform/monitor"
	"videotube/internal/platform/net/http/bind"
	"videotube/internal/services/api/telemetry/repo"

	"github.com/google/uuid"
)

// Accepted is returned for every stored report
type Accepted struct {
	ID string `json:"id" example:"0b6f3a52-2f5e-4b8e-9b53-3f0f2b1d2c11"`
}

// Register mounts the telemetry routes
func Register(r httpkit.Router, sink repo.Sink) {
	h := &handlers{sink: sink, now: time.Now}
	r.Post("/errors", httpkit.Handle(h.report))
}

type handlers struct {
	sink repo.Sink
	now  func() time.Time
}

// swagger:route POST /telemetry/errors Telemetry telemetryErrors
// @Summary Report a client side error
// @Tags Telemetry
// @Accept json
// @Produce json
// @Param payload body monitor.Report true "Report"
// @Success 202 {object} Accepted
// @Failure 400 {object} httpkit.Envelope
// @Router /telemetry/errors [post]
func (h *handlers) report(r *stdhttp.Request) httpkit.Response {
	in, err := bind.ParseJSON[monitor.Report](r, bind.JSONOptions{MaxBytes: 64 << 10, DisallowUnknown: true})
	if err != nil {
		return httpkit.Error(err)
	}
	now := h.now().UTC()
	if in.Timestamp.IsZero() {
		in.Timestamp = now
	}
	ev := repo.Event{ID: uuid.New(), Report: in, ReceivedAt: now}
	if err := h.sink.Store(r.Context(), ev); err != nil {
		return httpkit.Error(perr.Wrap(err, perr.ErrorCodeDB, "store report failed"))
	}
	return httpkit.Response{Status: stdhttp.StatusAccepted, Body: Accepted{ID: ev.ID.String()}}
}
