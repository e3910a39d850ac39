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

// GalleryService serves the media gallery
type GalleryService interface {
	List(ctx context.Context) ([]*domain.GalleryItem, error)
	Get(ctx context.Context, id int64) (*domain.GalleryItem, error)
}

type galleryService struct {
	repo  repository.GalleryRepository
	cache cache.Service
	ttl   time.Duration
}

// NewGalleryService creates a new GalleryService
func NewGalleryService(repo repository.GalleryRepository, cacheSvc cache.Service, ttl time.Duration) GalleryService {
	if ttl <= 0 {
		ttl = cache.TTLList
	}
	return &galleryService{repo: repo, cache: cacheSvc, ttl: ttl}
}

// List returns gallery items newest first
func (s *galleryService) List(ctx context.Context) ([]*domain.GalleryItem, error) {
	items, _, err := cache.GetOrLoad(ctx, s.cache, cache.Key(cache.PrefixGallery, "all"), s.ttl, s.repo.List)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w: %w", common.ErrLoadFailed, err)
	}
	return items, nil
}

// Get finds one gallery item by id
func (s *galleryService) Get(ctx context.Context, id int64) (*domain.GalleryItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, common.ErrNotFound
}
