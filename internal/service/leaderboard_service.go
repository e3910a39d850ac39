package service

import (
	"context"
	"fmt"
	"time"

	"github.com/drovic/drovic-backend/internal/common"
	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/repository"
	"github.com/drovic/drovic-backend/pkg/cache"
)

// LeaderboardService serves ranked supporters and moderators
type LeaderboardService interface {
	Entries(ctx context.Context, period domain.Period) ([]*domain.LeaderboardEntry, error)
	Moderators(ctx context.Context) ([]*domain.Moderator, error)
}

type leaderboardService struct {
	repo  repository.LeaderboardRepository
	cache cache.Service
	ttl   time.Duration
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(repo repository.LeaderboardRepository, cacheSvc cache.Service, ttl time.Duration) LeaderboardService {
	if ttl <= 0 {
		ttl = cache.TTLList
	}
	return &leaderboardService{repo: repo, cache: cacheSvc, ttl: ttl}
}

// Entries returns both boards' entries for period, ordered by rank
func (s *leaderboardService) Entries(ctx context.Context, period domain.Period) ([]*domain.LeaderboardEntry, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("period %q: %w", period, common.ErrInvalidInput)
	}
	key := cache.Key(cache.PrefixLeaderboards, period)
	entries, _, err := cache.GetOrLoad(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]*domain.LeaderboardEntry, error) {
		return s.repo.ListByPeriod(ctx, period)
	})
	if err != nil {
		return nil, fmt.Errorf("list leaderboard %s: %w: %w", period, common.ErrLoadFailed, err)
	}
	return entries, nil
}

// Moderators returns moderators ordered by id
func (s *leaderboardService) Moderators(ctx context.Context) ([]*domain.Moderator, error) {
	mods, _, err := cache.GetOrLoad(ctx, s.cache, cache.Key(cache.PrefixModerators, "all"), s.ttl, s.repo.ListModerators)
	if err != nil {
		return nil, fmt.Errorf("list moderators: %w: %w", common.ErrLoadFailed, err)
	}
	return mods, nil
}
