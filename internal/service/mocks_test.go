package service

import (
	"context"

	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock repositories ---

type mockAssetRepo struct {
	mock.Mock
}

func (m *mockAssetRepo) List(ctx context.Context) ([]*domain.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Asset), args.Error(1)
}

type mockGalleryRepo struct {
	mock.Mock
}

func (m *mockGalleryRepo) List(ctx context.Context) ([]*domain.GalleryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GalleryItem), args.Error(1)
}

type mockLeaderboardRepo struct {
	mock.Mock
}

func (m *mockLeaderboardRepo) ListByPeriod(ctx context.Context, period domain.Period) ([]*domain.LeaderboardEntry, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LeaderboardEntry), args.Error(1)
}

func (m *mockLeaderboardRepo) ListModerators(ctx context.Context) ([]*domain.Moderator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Moderator), args.Error(1)
}

type mockTeamRepo struct {
	mock.Mock
}

func (m *mockTeamRepo) List(ctx context.Context) ([]*domain.TeamMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TeamMember), args.Error(1)
}
