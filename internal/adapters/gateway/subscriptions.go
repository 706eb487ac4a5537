package gateway

import (
	"context"
	"strings"

	"videotube/internal/core/stores"
	"videotube/internal/platform/monitor"
)

type subscriptionList struct {
	Subscriptions []string `json:"subscriptions"`
}

type mutationBody struct {
	ChannelID string `json:"channelId"`
}

type mutationResult struct {
	Success         bool   `json:"success"`
	ChannelID       string `json:"channelId"`
	SubscriberCount *int64 `json:"subscriberCount,omitempty"`
}

// ListSubscriptions calls GET /subscriptions
func (c *Client) ListSubscriptions(ctx context.Context) ([]string, error) {
	var out subscriptionList
	if err := c.get(ctx, "/subscriptions", nil, &out); err != nil {
		return nil, err
	}
	return out.Subscriptions, nil
}

// Subscribe calls POST /subscriptions/subscribe
func (c *Client) Subscribe(ctx context.Context, channelID string) (stores.Mutation, error) {
	return c.mutate(ctx, "/subscriptions/subscribe", channelID)
}

// Unsubscribe calls POST /subscriptions/unsubscribe
func (c *Client) Unsubscribe(ctx context.Context, channelID string) (stores.Mutation, error) {
	return c.mutate(ctx, "/subscriptions/unsubscribe", channelID)
}

func (c *Client) mutate(ctx context.Context, path, channelID string) (stores.Mutation, error) {
	id := strings.TrimSpace(channelID)
	var out mutationResult
	if err := c.post(ctx, path, mutationBody{ChannelID: id}, &out); err != nil {
		return stores.Mutation{}, err
	}
	if out.ChannelID == "" {
		out.ChannelID = id
	}
	return stores.Mutation{ChannelID: out.ChannelID, SubscriberCount: out.SubscriberCount}, nil
}

// Report calls POST /telemetry/errors
func (c *Client) Report(ctx context.Context, r monitor.Report) error {
	return c.post(ctx, "/telemetry/errors", r, nil)
}
