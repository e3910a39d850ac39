package render

import "github.com/drovic/drovic-backend/internal/domain"

// AssetCard is an asset with its display tokens resolved
type AssetCard struct {
	*domain.Asset
	Icon        string `json:"icon"`
	Downloading bool   `json:"downloading"`
}

// AssetCards resolves icons and the in-progress mark for each visible asset
func AssetCards(assets []*domain.Asset, inProgress func(id int64) bool) []AssetCard {
	cards := make([]AssetCard, len(assets))
	for i, a := range assets {
		cards[i] = AssetCard{
			Asset: a,
			Icon:  IconFor(a.IconName),
		}
		if inProgress != nil {
			cards[i].Downloading = inProgress(a.ID)
		}
	}
	return cards
}

// TeamCard is a team member with the gradient resolved
type TeamCard struct {
	*domain.TeamMember
	Gradient string `json:"gradient"`
}

// TeamCards resolves gradients for the roster
func TeamCards(members []*domain.TeamMember) []TeamCard {
	cards := make([]TeamCard, len(members))
	for i, m := range members {
		cards[i] = TeamCard{TeamMember: m, Gradient: GradientFor(m.Color)}
	}
	return cards
}

// RankedRow is a leaderboard entry with its badge
type RankedRow struct {
	*domain.LeaderboardEntry
	Badge string `json:"badge"`
}

// RankedRows attaches badges to entries
func RankedRows(entries []*domain.LeaderboardEntry) []RankedRow {
	rows := make([]RankedRow, len(entries))
	for i, e := range entries {
		rows[i] = RankedRow{LeaderboardEntry: e, Badge: RankBadge(e.Rank)}
	}
	return rows
}

// Features fills in gradients for home page feature cards that have none
func Features(features []domain.Feature) []domain.Feature {
	out := make([]domain.Feature, len(features))
	for i, f := range features {
		if f.Gradient == "" {
			f.Gradient = FeatureGradientFor(f.Color)
		}
		out[i] = f
	}
	return out
}

// SocialLinks marks every outbound link to open in a new browsing context
func SocialLinks(links []domain.SocialLink) []domain.SocialLink {
	out := make([]domain.SocialLink, len(links))
	for i, l := range links {
		l.Target = "_blank"
		out[i] = l
	}
	return out
}
