package service

import (
	"context"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubscriptionService struct {
	subscriptions *repository.SubscriptionRepository
	log           *logger.Logger
}

func NewSubscriptionService(subscriptions *repository.SubscriptionRepository, log *logger.Logger) *SubscriptionService {
	return &SubscriptionService{subscriptions: subscriptions, log: log}
}

// Toggle flips the caller's subscription to a channel. Subscribing to
// one's own channel is not prevented; that rule is pending a product
// decision.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID primitive.ObjectID, channelIDRaw string) (*domain.ToggleResult, error) {
	channelID, err := parseObjectID(channelIDRaw, "channel id")
	if err != nil {
		return nil, err
	}

	subscribed, err := s.subscriptions.Toggle(ctx, subscriberID, channelID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to toggle subscription", err)
	}
	return &domain.ToggleResult{Toggled: subscribed}, nil
}

// Subscribers returns a channel's subscriber profiles plus an
// independently counted total; the two queries share no snapshot and may
// diverge under concurrent writes.
func (s *SubscriptionService) Subscribers(ctx context.Context, channelIDRaw string) (*domain.SubscriberList, error) {
	channelID, err := parseObjectID(channelIDRaw, "channel id")
	if err != nil {
		return nil, err
	}

	profiles, err := s.subscriptions.Subscribers(ctx, channelID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list subscribers", err)
	}
	total, err := s.subscriptions.CountSubscribers(ctx, channelID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to count subscribers", err)
	}

	return &domain.SubscriberList{Total: total, Subscribers: profiles}, nil
}

// SubscribedChannels returns the channels a user subscribes to, with the
// same independent-count caveat as Subscribers.
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberIDRaw string) (*domain.ChannelList, error) {
	subscriberID, err := parseObjectID(subscriberIDRaw, "subscriber id")
	if err != nil {
		return nil, err
	}

	profiles, err := s.subscriptions.Channels(ctx, subscriberID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list subscribed channels", err)
	}
	total, err := s.subscriptions.CountSubscribed(ctx, subscriberID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to count subscribed channels", err)
	}

	return &domain.ChannelList{Total: total, Channels: profiles}, nil
}
