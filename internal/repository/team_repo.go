package repository

import (
	"context"

	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/rowstore"
)

// TeamRepository reads the team roster
type TeamRepository interface {
	List(ctx context.Context) ([]*domain.TeamMember, error)
}

type teamRepository struct {
	store rowstore.Store
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(store rowstore.Store) TeamRepository {
	return &teamRepository{store: store}
}

func (r *teamRepository) List(ctx context.Context) ([]*domain.TeamMember, error) {
	var members []*domain.TeamMember
	q := rowstore.From(rowstore.TableTeamMembers).OrderBy("id", true)
	if err := r.store.Select(ctx, q, &members); err != nil {
		return nil, err
	}
	return members, nil
}
