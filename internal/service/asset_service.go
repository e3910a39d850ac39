package service

import (
	"context"
	"fmt"
	"time"

	"github.com/drovic/drovic-backend/internal/common"
	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/render"
	"github.com/drovic/drovic-backend/internal/repository"
	"github.com/drovic/drovic-backend/pkg/cache"
)

// AssetService serves the downloadable-assets library
type AssetService interface {
	List(ctx context.Context) ([]*domain.Asset, error)
	ListByCategory(ctx context.Context, category domain.AssetCategory) ([]*domain.Asset, error)
	Get(ctx context.Context, id int64) (*domain.Asset, error)
}

type assetService struct {
	repo  repository.AssetRepository
	cache cache.Service
	ttl   time.Duration
}

// NewAssetService creates a new AssetService. cacheSvc may be nil.
func NewAssetService(repo repository.AssetRepository, cacheSvc cache.Service, ttl time.Duration) AssetService {
	if ttl <= 0 {
		ttl = cache.TTLList
	}
	return &assetService{repo: repo, cache: cacheSvc, ttl: ttl}
}

// List returns every asset ordered by id ascending
func (s *assetService) List(ctx context.Context) ([]*domain.Asset, error) {
	assets, _, err := cache.GetOrLoad(ctx, s.cache, cache.Key(cache.PrefixAssets, "all"), s.ttl, s.repo.List)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w: %w", common.ErrLoadFailed, err)
	}
	return assets, nil
}

// ListByCategory filters the full list; the store is read once either way
func (s *assetService) ListByCategory(ctx context.Context, category domain.AssetCategory) ([]*domain.Asset, error) {
	assets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return render.FilterByCategory(assets, category), nil
}

// Get finds one asset by id
func (s *assetService) Get(ctx context.Context, id int64) (*domain.Asset, error) {
	assets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range assets {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, common.ErrNotFound
}
