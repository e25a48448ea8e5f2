package service

import (
	"context"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TweetService struct {
	tweets *repository.TweetRepository
	users  *repository.UserRepository
	log    *logger.Logger
}

func NewTweetService(tweets *repository.TweetRepository, users *repository.UserRepository, log *logger.Logger) *TweetService {
	return &TweetService{tweets: tweets, users: users, log: log}
}

// Create posts a tweet by the authenticated caller
func (s *TweetService) Create(ctx context.Context, ownerID primitive.ObjectID, content string) (*domain.Tweet, error) {
	if err := requireNonBlank(content, "content"); err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	if owner == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	tweet := &domain.Tweet{
		Content: content,
		Owner:   ownerID,
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		return nil, apperrors.NewInternalError("failed to create tweet", err)
	}
	return tweet, nil
}

// ListByUser returns a user's tweets, newest first
func (s *TweetService) ListByUser(ctx context.Context, userIDRaw string) ([]domain.Tweet, error) {
	userID, err := parseObjectID(userIDRaw, "user id")
	if err != nil {
		return nil, err
	}
	tweets, err := s.tweets.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list tweets", err)
	}
	return tweets, nil
}

// Update sets new tweet text; only the author may update
func (s *TweetService) Update(ctx context.Context, tweetIDRaw string, callerID primitive.ObjectID, content string) (*domain.Tweet, error) {
	tweetID, err := parseObjectID(tweetIDRaw, "tweet id")
	if err != nil {
		return nil, err
	}
	if err := requireNonBlank(content, "content"); err != nil {
		return nil, err
	}

	if err := s.authorizeTweetOwner(ctx, tweetID, callerID); err != nil {
		return nil, err
	}

	updated, err := s.tweets.UpdateContent(ctx, tweetID, content)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update tweet", err)
	}
	if updated == nil {
		return nil, apperrors.NewNotFoundError("tweet not found")
	}
	return updated, nil
}

// Delete removes a tweet; only the author may delete
func (s *TweetService) Delete(ctx context.Context, tweetIDRaw string, callerID primitive.ObjectID) error {
	tweetID, err := parseObjectID(tweetIDRaw, "tweet id")
	if err != nil {
		return err
	}

	if err := s.authorizeTweetOwner(ctx, tweetID, callerID); err != nil {
		return err
	}

	deleted, err := s.tweets.Delete(ctx, tweetID)
	if err != nil {
		return apperrors.NewInternalError("failed to delete tweet", err)
	}
	if !deleted {
		return apperrors.NewNotFoundError("tweet not found")
	}
	return nil
}

func (s *TweetService) authorizeTweetOwner(ctx context.Context, tweetID, callerID primitive.ObjectID) error {
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return apperrors.NewInternalError("failed to get tweet", err)
	}
	if tweet == nil {
		return apperrors.NewNotFoundError("tweet not found")
	}
	if tweet.Owner != callerID {
		return apperrors.NewAuthorizationError("only the tweet author can modify it")
	}
	return nil
}
