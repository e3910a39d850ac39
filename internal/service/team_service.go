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

// TeamService serves the team roster
type TeamService interface {
	List(ctx context.Context) ([]*domain.TeamMember, error)
	Get(ctx context.Context, index int) (*domain.TeamMember, error)
}

type teamService struct {
	repo  repository.TeamRepository
	cache cache.Service
	ttl   time.Duration
}

// NewTeamService creates a new TeamService
func NewTeamService(repo repository.TeamRepository, cacheSvc cache.Service, ttl time.Duration) TeamService {
	if ttl <= 0 {
		ttl = cache.TTLList
	}
	return &teamService{repo: repo, cache: cacheSvc, ttl: ttl}
}

// List returns the roster in display order
func (s *teamService) List(ctx context.Context) ([]*domain.TeamMember, error) {
	members, _, err := cache.GetOrLoad(ctx, s.cache, cache.Key(cache.PrefixTeam, "all"), s.ttl, s.repo.List)
	if err != nil {
		return nil, fmt.Errorf("list team: %w: %w", common.ErrLoadFailed, err)
	}
	return members, nil
}

// Get returns the member at a zero-based roster position
func (s *teamService) Get(ctx context.Context, index int) (*domain.TeamMember, error) {
	members, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(members) {
		return nil, common.ErrNotFound
	}
	return members[index], nil
}
