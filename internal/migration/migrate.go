package migration

import (
	"github.com/drovic/drovic-backend/internal/domain"
	"gorm.io/gorm"
)

// Models lists every table the Row Store serves
func Models() []interface{} {
	return []interface{}{
		&domain.Asset{},
		&domain.GalleryItem{},
		&domain.LeaderboardEntry{},
		&domain.Moderator{},
		&domain.TeamMember{},
	}
}

// Run executes AutoMigrate for all content tables.
// Existing tables are altered in place, never dropped.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
