// Package service contains subscription workflows
package service

import (
	"context"
	"strings"

	perr "videotube/internal/platform/errors"
	"videotube/internal/platform/logger"
	"videotube/internal/services/api/subscriptions/domain"
	"videotube/internal/services/api/subscriptions/repo"
)

// Service defines the service contract for subscriptions
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo
}

// New creates a new subscriptions service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("subscriptions.Service requires a non nil Repo")
	}
	return &Svc{Repo: r}
}

func channelID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", perr.FieldErrorf("channelId", "Channel ID is required")
	}
	return id, nil
}

// List returns the caller's subscriptions; never nil
func (s *Svc) List(ctx context.Context, userID string) (domain.ListResult, error) {
	ids, err := s.Repo.List(ctx, userID)
	if err != nil {
		return domain.ListResult{}, perr.FromPostgres(err, "list subscriptions failed")
	}
	if ids == nil {
		ids = []string{}
	}
	return domain.ListResult{Subscriptions: ids}, nil
}

// Subscribe adds channelID to the caller's set
func (s *Svc) Subscribe(ctx context.Context, userID, raw string) (domain.MutationResult, error) {
	id, err := channelID(raw)
	if err != nil {
		return domain.MutationResult{}, err
	}
	if err := s.Repo.Add(ctx, userID, id); err != nil {
		return domain.MutationResult{}, perr.FromPostgres(err, "subscribe failed")
	}
	logger.C(ctx).Info().Str("channel_id", id).Msg("subscribed")
	return domain.MutationResult{Success: true, ChannelID: id}, nil
}

// Unsubscribe removes channelID from the caller's set
func (s *Svc) Unsubscribe(ctx context.Context, userID, raw string) (domain.MutationResult, error) {
	id, err := channelID(raw)
	if err != nil {
		return domain.MutationResult{}, err
	}
	if err := s.Repo.Remove(ctx, userID, id); err != nil {
		return domain.MutationResult{}, perr.FromPostgres(err, "unsubscribe failed")
	}
	logger.C(ctx).Info().Str("channel_id", id).Msg("unsubscribed")
	return domain.MutationResult{Success: true, ChannelID: id}, nil
}
