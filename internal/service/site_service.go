package service

import (
	"context"

	"github.com/drovic/drovic-backend/internal/config"
	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/render"
	pkglogger "github.com/drovic/drovic-backend/pkg/logger"
)

// homePreviewSize is the number of ranked rows previewed per board on the home page
const homePreviewSize = 3

// SiteService serves the static pages: home, moments and social links
type SiteService interface {
	Home(ctx context.Context) *domain.HomePage
	Moments() []domain.Moment
	Socials() []domain.SocialLink
}

type siteService struct {
	site        config.SiteConfig
	leaderboard LeaderboardService
}

// NewSiteService creates a new SiteService. leaderboard may be nil, in which
// case the home page has no ranked previews.
func NewSiteService(site config.SiteConfig, leaderboard LeaderboardService) SiteService {
	return &siteService{site: site, leaderboard: leaderboard}
}

// Home assembles the home page. A leaderboard failure only empties the previews.
func (s *siteService) Home(ctx context.Context) *domain.HomePage {
	page := &domain.HomePage{
		Stats:     s.site.Stats,
		Features:  render.Features(s.site.Features),
		Socials:   render.SocialLinks(s.site.Socials),
		Watchtime: []domain.RankedPreview{},
		Powerful:  []domain.RankedPreview{},
	}
	if page.Stats == nil {
		page.Stats = []domain.HomeStat{}
	}
	if s.leaderboard == nil {
		return page
	}

	entries, err := s.leaderboard.Entries(ctx, domain.PeriodWeekly)
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("home leaderboard previews unavailable")
		return page
	}
	boards := render.SplitLeaderboard(entries)
	page.Watchtime = previews(boards.Watchtime)
	page.Powerful = previews(boards.Powerful)
	return page
}

// Moments returns the moments wall in configured order
func (s *siteService) Moments() []domain.Moment {
	if s.site.Moments == nil {
		return []domain.Moment{}
	}
	return s.site.Moments
}

// Socials returns outbound links with their target set
func (s *siteService) Socials() []domain.SocialLink {
	return render.SocialLinks(s.site.Socials)
}

func previews(entries []*domain.LeaderboardEntry) []domain.RankedPreview {
	n := len(entries)
	if n > homePreviewSize {
		n = homePreviewSize
	}
	out := make([]domain.RankedPreview, n)
	for i := 0; i < n; i++ {
		e := entries[i]
		out[i] = domain.RankedPreview{
			Username:  e.Username,
			Value:     e.Value,
			Rank:      e.Rank,
			Badge:     render.RankBadge(e.Rank),
			AvatarURL: e.AvatarURL,
		}
	}
	return out
}
