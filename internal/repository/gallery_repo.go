package repository

import (
	"context"

	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/rowstore"
)

// GalleryRepository reads gallery items
type GalleryRepository interface {
	List(ctx context.Context) ([]*domain.GalleryItem, error)
}

type galleryRepository struct {
	store rowstore.Store
}

// NewGalleryRepository creates a new GalleryRepository
func NewGalleryRepository(store rowstore.Store) GalleryRepository {
	return &galleryRepository{store: store}
}

// List returns every gallery item, newest (highest id) first
func (r *galleryRepository) List(ctx context.Context) ([]*domain.GalleryItem, error) {
	var items []*domain.GalleryItem
	q := rowstore.From(rowstore.TableGalleryItems).OrderBy("id", false)
	if err := r.store.Select(ctx, q, &items); err != nil {
		return nil, err
	}
	return items, nil
}
