package repository

import (
	"context"

	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/rowstore"
)

// AssetRepository reads the assets library
type AssetRepository interface {
	List(ctx context.Context) ([]*domain.Asset, error)
}

type assetRepository struct {
	store rowstore.Store
}

// NewAssetRepository creates a new AssetRepository
func NewAssetRepository(store rowstore.Store) AssetRepository {
	return &assetRepository{store: store}
}

// List returns every asset ordered by id ascending
func (r *assetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	var assets []*domain.Asset
	q := rowstore.From(rowstore.TableAssets).OrderBy("id", true)
	if err := r.store.Select(ctx, q, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}
