package repository

import (
	"context"

	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/rowstore"
)

// LeaderboardRepository reads ranked supporters and the moderator list
type LeaderboardRepository interface {
	ListByPeriod(ctx context.Context, period domain.Period) ([]*domain.LeaderboardEntry, error)
	ListModerators(ctx context.Context) ([]*domain.Moderator, error)
}

type leaderboardRepository struct {
	store rowstore.Store
}

// NewLeaderboardRepository creates a new LeaderboardRepository
func NewLeaderboardRepository(store rowstore.Store) LeaderboardRepository {
	return &leaderboardRepository{store: store}
}

// ListByPeriod filters on period in the store and orders by the store-supplied rank
func (r *leaderboardRepository) ListByPeriod(ctx context.Context, period domain.Period) ([]*domain.LeaderboardEntry, error) {
	var entries []*domain.LeaderboardEntry
	q := rowstore.From(rowstore.TableLeaderboards).
		Eq("period", string(period)).
		OrderBy("rank", true)
	if err := r.store.Select(ctx, q, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListModerators returns moderators ordered by id ascending
func (r *leaderboardRepository) ListModerators(ctx context.Context) ([]*domain.Moderator, error) {
	var mods []*domain.Moderator
	q := rowstore.From(rowstore.TableModerators).OrderBy("id", true)
	if err := r.store.Select(ctx, q, &mods); err != nil {
		return nil, err
	}
	return mods, nil
}
