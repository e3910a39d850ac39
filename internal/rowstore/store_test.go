package rowstore

import (
	"context"
	"testing"

	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.LeaderboardEntry{}, &domain.Asset{}))
	return db
}

func TestSelect_FilterAndOrder(t *testing.T) {
	db := setupDB(t)
	rows := []domain.LeaderboardEntry{
		{ID: 1, Username: "c", Category: domain.CategoryWatchtime, Period: domain.PeriodWeekly, Rank: 3},
		{ID: 2, Username: "a", Category: domain.CategoryWatchtime, Period: domain.PeriodWeekly, Rank: 1},
		{ID: 3, Username: "m", Category: domain.CategoryPowerful, Period: domain.PeriodMonthly, Rank: 1},
		{ID: 4, Username: "b", Category: domain.CategoryPowerful, Period: domain.PeriodWeekly, Rank: 2},
	}
	require.NoError(t, db.Create(&rows).Error)

	store := NewGormStore(db)
	var got []domain.LeaderboardEntry
	err := store.Select(context.Background(),
		From(TableLeaderboards).Eq("period", domain.PeriodWeekly).OrderBy("rank", true), &got)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].Username, got[1].Username, got[2].Username})
}

func TestSelect_Descending(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&[]domain.Asset{{ID: 1, Name: "one"}, {ID: 2, Name: "two"}}).Error)

	var got []domain.Asset
	err := NewGormStore(db).Select(context.Background(), From(TableAssets).OrderBy("id", false), &got)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestSelect_EmptyResultIsNotAnError(t *testing.T) {
	db := setupDB(t)

	var got []domain.Asset
	err := NewGormStore(db).Select(context.Background(), From(TableAssets), &got)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelect_RejectsUnknownTableAndColumn(t *testing.T) {
	store := NewGormStore(setupDB(t))
	var got []domain.Asset

	err := store.Select(context.Background(), From("users"), &got)
	assert.ErrorIs(t, err, ErrUnknownTable)

	err = store.Select(context.Background(), From(TableAssets).Eq("password", "x"), &got)
	assert.ErrorIs(t, err, ErrUnknownColumn)

	err = store.Select(context.Background(), From(TableAssets).OrderBy("1; DROP TABLE assets", true), &got)
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestSelect_CancelledContext(t *testing.T) {
	store := NewGormStore(setupDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var got []domain.Asset
	err := store.Select(ctx, From(TableAssets), &got)
	assert.Error(t, err)
}
