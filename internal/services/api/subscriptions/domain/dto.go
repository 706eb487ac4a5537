// Package domain holds DTOs and ports for the subscription API
package domain

import "context"

// ChannelInput is the body of subscribe and unsubscribe
// channelId is checked by the service so a blank id gets the same message as a missing one
type ChannelInput struct {
	ChannelID string `json:"channelId" validate:"max=64" example:"UCuAXFkgsw1L7xaCfnd5JJOw"`
}

// ListResult is the caller's subscription set
type ListResult struct {
	Subscriptions []string `json:"subscriptions"`
}

// MutationResult confirms a subscribe or unsubscribe
type MutationResult struct {
	Success   bool   `json:"success" example:"true"`
	ChannelID string `json:"channelId" example:"UCuAXFkgsw1L7xaCfnd5JJOw"`
}

// ServicePort defines the service contract for subscriptions
type ServicePort interface {
	List(ctx context.Context, userID string) (ListResult, error)
	Subscribe(ctx context.Context, userID, channelID string) (MutationResult, error)
	Unsubscribe(ctx context.Context, userID, channelID string) (MutationResult, error)
}
