package service

import (
	"context"
	"encoding/json"
	"time"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
	apperrors "vidtube/pkg/errors"
	"vidtube/pkg/logger"
	"vidtube/pkg/redis"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DashboardService struct {
	dashboard *repository.DashboardRepository
	videos    *repository.VideoRepository
	cache     *redis.Client // may be nil
	log       *logger.Logger
}

func NewDashboardService(dashboard *repository.DashboardRepository, videos *repository.VideoRepository, cache *redis.Client, log *logger.Logger) *DashboardService {
	return &DashboardService{dashboard: dashboard, videos: videos, cache: cache, log: log}
}

// Stats returns aggregate channel figures for the authenticated owner,
// served from cache when a fresh copy exists.
func (s *DashboardService) Stats(ctx context.Context, channelID primitive.ObjectID) (*domain.ChannelStats, error) {
	if cached := s.cachedStats(ctx, channelID); cached != nil {
		return cached, nil
	}

	stats, err := s.dashboard.Stats(ctx, channelID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch channel stats", err)
	}
	if stats == nil {
		return nil, apperrors.NewNotFoundError("channel not found")
	}

	s.cacheStatsAsync(channelID, stats)
	return stats, nil
}

// Videos lists every video the channel has uploaded, published or not
func (s *DashboardService) Videos(ctx context.Context, channelID primitive.ObjectID) ([]domain.VideoWithLikes, error) {
	videos, err := s.dashboard.Videos(ctx, channelID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch channel videos", err)
	}
	return videos, nil
}

func (s *DashboardService) cachedStats(ctx context.Context, channelID primitive.ObjectID) *domain.ChannelStats {
	if s.cache == nil {
		return nil
	}
	key := s.cache.KeyBuilder.KeyChannelStats(channelID.Hex())
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !redis.IsCacheMiss(err) {
			s.log.WithError(err).Warn("Channel stats cache read failed")
		}
		return nil
	}
	var stats domain.ChannelStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		s.log.WithError(err).Warn("Channel stats cache corrupted, falling back to database")
		return nil
	}
	return &stats
}

func (s *DashboardService) cacheStatsAsync(channelID primitive.ObjectID, stats *domain.ChannelStats) {
	if s.cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		payload, err := json.Marshal(stats)
		if err != nil {
			return
		}
		key := s.cache.KeyBuilder.KeyChannelStats(channelID.Hex())
		if err := s.cache.Set(ctx, key, payload, redis.TTLChannelStats); err != nil {
			s.log.WithError(err).Warn("Failed to cache channel stats")
		}
	}()
}
