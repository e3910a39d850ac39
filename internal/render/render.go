// Package render holds the stateless list transforms shared by every list page.
// All functions are pure: the same input always yields the same output, and
// no function reorders rows beyond what the Row Store returned.
package render

import (
	"fmt"

	"github.com/drovic/drovic-backend/internal/domain"
)

// FilterByCategory returns the visible assets for a filter tab.
// The "all" tab is the identity; any other tab keeps rows whose category equals it.
func FilterByCategory(assets []*domain.Asset, category domain.AssetCategory) []*domain.Asset {
	if category == domain.AssetCategoryAll || category == "" {
		return assets
	}
	visible := make([]*domain.Asset, 0, len(assets))
	for _, a := range assets {
		if a.Category == string(category) {
			visible = append(visible, a)
		}
	}
	return visible
}

// Columns splits items into n masonry columns: item i goes to column i mod n.
// Every item lands in exactly one column and relative order is kept.
func Columns[T any](items []T, n int) [][]T {
	if n < 1 {
		n = 1
	}
	cols := make([][]T, n)
	for i := range cols {
		cols[i] = make([]T, 0, len(items)/n+1)
	}
	for i, item := range items {
		cols[i%n] = append(cols[i%n], item)
	}
	return cols
}

// LeaderboardBoards is the leaderboard split into its two boards
type LeaderboardBoards struct {
	Watchtime []*domain.LeaderboardEntry `json:"watchtime"`
	Powerful  []*domain.LeaderboardEntry `json:"powerful"`
}

// SplitLeaderboard separates entries by category, keeping store order.
// Entries with an unknown category appear on neither board.
func SplitLeaderboard(entries []*domain.LeaderboardEntry) LeaderboardBoards {
	boards := LeaderboardBoards{
		Watchtime: []*domain.LeaderboardEntry{},
		Powerful:  []*domain.LeaderboardEntry{},
	}
	for _, e := range entries {
		switch e.Category {
		case domain.CategoryWatchtime:
			boards.Watchtime = append(boards.Watchtime, e)
		case domain.CategoryPowerful:
			boards.Powerful = append(boards.Powerful, e)
		}
	}
	return boards
}

var gradients = map[domain.ThemeColor]string{
	domain.ColorPrimary:   "from-blue-600 to-indigo-500",
	domain.ColorSecondary: "from-purple-600 to-fuchsia-500",
	domain.ColorWarning:   "from-amber-500 to-orange-500",
	domain.ColorDanger:    "from-red-600 to-rose-600",
}

// DefaultGradient is used for unknown color tokens
const DefaultGradient = "from-zinc-700 to-zinc-500"

// GradientFor maps a color token to its Tailwind gradient classes
func GradientFor(color domain.ThemeColor) string {
	if g, ok := gradients[color]; ok {
		return g
	}
	return DefaultGradient
}

var featureGradients = map[domain.ThemeColor]string{
	domain.ColorPrimary:   "from-blue-500/20 to-indigo-500/20",
	domain.ColorSecondary: "from-purple-500/20 to-pink-500/20",
	domain.ColorWarning:   "from-yellow-500/20 to-orange-500/20",
	domain.ColorDanger:    "from-red-500/20 to-rose-500/20",
}

// FeatureGradientFor is the translucent variant used on home page cards
func FeatureGradientFor(color domain.ThemeColor) string {
	if g, ok := featureGradients[color]; ok {
		return g
	}
	return "from-zinc-500/20 to-zinc-400/20"
}

var icons = map[string]bool{
	"sparkles": true,
	"smile":    true,
	"zap":      true,
	"image":    true,
	"file":     true,
	"download": true,
}

// DefaultIcon is used for unknown icon tokens
const DefaultIcon = "sparkles"

// IconFor returns token when it is a known asset icon, DefaultIcon otherwise
func IconFor(token string) string {
	if icons[token] {
		return token
	}
	return DefaultIcon
}

// RankBadge returns the badge shown next to a rank
func RankBadge(rank int) string {
	switch rank {
	case 1:
		return "crown"
	case 2:
		return "medal-silver"
	case 3:
		return "medal-bronze"
	default:
		return fmt.Sprintf("#%d", rank)
	}
}

// Page identifies a list page for its empty-state placeholder
type Page string

const (
	PageAssets       Page = "assets"
	PageGallery      Page = "gallery"
	PageLeaderboards Page = "leaderboards"
	PageTeam         Page = "team"
)

var placeholders = map[Page]string{
	PageAssets:       "No assets found",
	PageGallery:      "No gallery items yet",
	PageLeaderboards: "No data for this period",
	PageTeam:         "No team members yet",
}

// Placeholder is the explicit "nothing found" text for an empty list
func Placeholder(page Page) string {
	if p, ok := placeholders[page]; ok {
		return p
	}
	return "Nothing found"
}
