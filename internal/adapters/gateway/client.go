// Package gateway is the client side of the VideoTube backend: the proxied
// YouTube endpoints, the subscription API and the telemetry sink
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"videotube/internal/adapters/youtube"
	"videotube/internal/core/stores"
	"videotube/internal/core/version"
	perr "videotube/internal/platform/errors"
	"videotube/internal/platform/logger"
	"videotube/internal/platform/monitor"
)

const (
	baseURLDefault = "http://localhost:4000/api/v1"
	defaultTimeout = 15 * time.Second
	maxBody        = 4 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Token is sent as a bearer credential on every call when set
	Token string
}

// Client speaks the backend's envelope protocol
// It never retries; a failed call surfaces as a *youtube.GatewayError
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

var (
	_ youtube.API            = (*Client)(nil)
	_ stores.SubscriptionAPI = (*Client)(nil)
	_ monitor.Reporter       = (*Client)(nil)
)

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = version.UserAgent("videotube-cli")
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("gateway"),
		now:  time.Now,
	}
}

// envelope is the success half of the server response; errors are parsed by youtube.ErrorFromResponse
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// do sends one request and decodes the envelope's data into out (nil to discard)
func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	u := c.opts.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeJSON, "gateway encode request failed")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "gateway new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		if ctx.Err() == context.Canceled {
			return ctx.Err()
		}
		c.log.Warn().Err(err).Str("path", path).Dur("latency", lat).Msg("gateway transport error")
		return &youtube.GatewayError{
			Message: "Network request failed",
			Err:     perr.Wrap(err, perr.ErrorCodeUnavailable, "Network request failed"),
		}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("gateway close body failed")
		}
	}()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("gateway http response")

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		if ctx.Err() == context.Canceled {
			return ctx.Err()
		}
		return &youtube.GatewayError{
			Message: "Network request failed",
			Status:  resp.StatusCode,
			Err:     perr.Wrap(err, perr.ErrorCodeUnavailable, "Network request failed"),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return youtube.ErrorFromResponse(resp.StatusCode, b)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "gateway response decode failed")
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "gateway data decode failed")
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, q, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}
