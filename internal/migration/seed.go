package migration

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/drovic/drovic-backend/internal/domain"
	pkglogger "github.com/drovic/drovic-backend/pkg/logger"
	"gorm.io/gorm"
)

// SeedOptions controls the demo content inserted into empty tables
type SeedOptions struct {
	// Seed makes the generated leaderboard reproducible
	Seed uint64
	// BoardSize is the number of rows per category and period
	BoardSize int
}

// DefaultSeedOptions returns the options used by local environments
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{Seed: 42, BoardSize: 10}
}

// Seed inserts demo content into each table that is still empty
func Seed(db *gorm.DB, opts SeedOptions) error {
	if opts.BoardSize <= 0 {
		opts.BoardSize = DefaultSeedOptions().BoardSize
	}
	faker := gofakeit.New(opts.Seed)

	steps := []struct {
		model interface{}
		rows  func() interface{}
	}{
		{&domain.TeamMember{}, func() interface{} { rows := seedTeam(); return &rows }},
		{&domain.Asset{}, func() interface{} { rows := seedAssets(); return &rows }},
		{&domain.GalleryItem{}, func() interface{} { rows := seedGallery(); return &rows }},
		{&domain.LeaderboardEntry{}, func() interface{} { rows := seedLeaderboards(faker, opts.BoardSize); return &rows }},
		{&domain.Moderator{}, func() interface{} { rows := seedModerators(faker); return &rows }},
	}

	for _, step := range steps {
		var count int64
		if err := db.Model(step.model).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(step.rows()).Error; err != nil {
			return fmt.Errorf("seed %T: %w", step.model, err)
		}
	}
	pkglogger.Info("Seed complete")
	return nil
}

func seedTeam() []domain.TeamMember {
	return []domain.TeamMember{
		{ID: 1, Name: "Uqi", Role: "Team Leader", Trait: "Dark Jokes Specialist", TraitIcon: "skull",
			Bio:   "The captain who steers the ship into chaos. Known for humor that crosses the line but keeps the audience laughing.",
			Image: "/team/uqi.jpg", Color: domain.ColorPrimary, TikTok: "@uqi", Instagram: "@uqi"},
		{ID: 2, Name: "Gaga", Role: "Team Member", Trait: "Certified Gooner", TraitIcon: "zap",
			Bio:   "Focus and intensity personified. When he locks in, the game is over.",
			Image: "/team/ghassan.jpg", Color: domain.ColorSecondary, TikTok: "@ghassan", Instagram: "@ghassan"},
		{ID: 3, Name: "Syn", Role: "Team Member", Trait: "Resident Cry Baby", TraitIcon: "frown",
			Bio:   "Emotional damage is his middle name. The heart of the team.",
			Image: "/team/rangga.jpg", Color: domain.ColorWarning, TikTok: "@rangga", Instagram: "@rangga"},
		{ID: 4, Name: "Jay", Role: "Team Member", Trait: "King of Drama", TraitIcon: "party-popper",
			Bio:   "Lives for the plot twists. If there is no chaos, he creates it.",
			Image: "/team/ajay.jpg", Color: domain.ColorDanger, TikTok: "@ajay", Instagram: "@ajay"},
	}
}

func seedAssets() []domain.Asset {
	return []domain.Asset{
		{ID: 1, Name: "Laugh Pack", Category: string(domain.AssetCategoryStickers), Size: "2.4 MB", Format: "PNG", Downloads: 1250, ColorClass: "bg-primary", IconName: "smile"},
		{ID: 2, Name: "Hype Emotes", Category: string(domain.AssetCategoryEmotes), Size: "1.1 MB", Format: "PNG", Downloads: 980, ColorClass: "bg-secondary", IconName: "zap"},
		{ID: 3, Name: "Rage Quit", Category: string(domain.AssetCategoryGIFs), Size: "4.8 MB", Format: "GIF", Downloads: 640, ColorClass: "bg-danger", IconName: "file"},
		{ID: 4, Name: "Squad Wallpaper", Category: string(domain.AssetCategoryWallpapers), Size: "6.2 MB", Format: "JPG", Downloads: 2100, ColorClass: "bg-warning", IconName: "image"},
		{ID: 5, Name: "Cry Baby Pack", Category: string(domain.AssetCategoryStickers), Size: "1.9 MB", Format: "PNG", Downloads: 730, ColorClass: "bg-warning", IconName: "file"},
		{ID: 6, Name: "Drama Loop", Category: string(domain.AssetCategoryGIFs), Size: "3.3 MB", Format: "GIF", Downloads: 510, ColorClass: "bg-danger", IconName: "file"},
	}
}

func seedGallery() []domain.GalleryItem {
	strp := func(s string) *string { return &s }
	return []domain.GalleryItem{
		{ID: 1, Type: domain.GalleryKindPhoto, Title: "Squad Meetup", DateDisplay: "Jan 2025", ThumbnailClass: "bg-primary", URL: "/gallery/1", HeightClass: "h-64", Likes: strp("1.2K"), Tags: domain.StringList{"irl", "squad"}},
		{ID: 2, Type: domain.GalleryKindVideo, Title: "Horror Night Highlights", DateDisplay: "Feb 2025", ThumbnailClass: "bg-danger", URL: "/gallery/2", HeightClass: "h-80", Views: strp("45K"), Tags: domain.StringList{"horror"}},
		{ID: 3, Type: domain.GalleryKindClip, Title: "Rage Quit Moment", DateDisplay: "Mar 2025", ThumbnailClass: "bg-warning", URL: "/gallery/3", HeightClass: "h-48", Views: strp("12K")},
		{ID: 4, Type: domain.GalleryKindPhoto, Title: "Studio Setup", DateDisplay: "Apr 2025", ThumbnailClass: "bg-secondary", URL: "/gallery/4", HeightClass: "h-72", Likes: strp("860")},
		{ID: 5, Type: domain.GalleryKindVideo, Title: "Anniversary Stream", DateDisplay: "May 2025", ThumbnailClass: "bg-primary", URL: "/gallery/5", HeightClass: "h-64", Views: strp("88K"), Tags: domain.StringList{"anniversary", "live"}},
	}
}

func seedLeaderboards(faker *gofakeit.Faker, size int) []domain.LeaderboardEntry {
	var rows []domain.LeaderboardEntry
	var id int64
	for _, period := range []domain.Period{domain.PeriodWeekly, domain.PeriodMonthly} {
		for _, category := range []domain.LeaderboardCategory{domain.CategoryWatchtime, domain.CategoryPowerful} {
			for rank := 1; rank <= size; rank++ {
				id++
				username := faker.Gamertag()
				handle := "@" + faker.Username()
				rows = append(rows, domain.LeaderboardEntry{
					ID:       id,
					Username: username,
					Handle:   &handle,
					Category: category,
					Period:   period,
					Value:    leaderboardValue(faker, category, rank, size),
					Rank:     rank,
					IsLive:   rank <= 3 && faker.Bool(),
				})
			}
		}
	}
	return rows
}

// leaderboardValue keeps values monotonically decreasing with rank
func leaderboardValue(faker *gofakeit.Faker, category domain.LeaderboardCategory, rank, size int) string {
	base := (size - rank + 1) * 100
	v := base + faker.IntRange(0, 99)
	if category == domain.CategoryWatchtime {
		return fmt.Sprintf("%d hrs", v)
	}
	return fmt.Sprintf("%d gifts", v)
}

func seedModerators(faker *gofakeit.Faker) []domain.Moderator {
	roles := []string{"Head Mod", "Moderator", "Moderator"}
	rows := make([]domain.Moderator, 0, len(roles))
	for i, role := range roles {
		rows = append(rows, domain.Moderator{
			ID:       int64(i + 1),
			Username: faker.Gamertag(),
			Role:     role,
			Since:    fmt.Sprintf("%d", faker.IntRange(2021, 2024)),
		})
	}
	return rows
}
