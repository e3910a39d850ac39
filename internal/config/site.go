package config

import "github.com/drovic/drovic-backend/internal/domain"

// SiteConfig is the static content of the home and moments pages
type SiteConfig struct {
	Stats    []domain.HomeStat   `yaml:"stats"`
	Features []domain.Feature    `yaml:"features"`
	Socials  []domain.SocialLink `yaml:"socials"`
	Moments  []domain.Moment     `yaml:"moments"`
}

// DefaultSite returns the built-in site content
func DefaultSite() SiteConfig {
	return SiteConfig{
		Stats: []domain.HomeStat{
			{Icon: "clock", Label: "Watch Hours", Value: "500K+"},
			{Icon: "users", Label: "Community", Value: "10K+"},
			{Icon: "zap", Label: "Live Streaming", Value: "24/7"},
		},
		Features: []domain.Feature{
			{
				Icon:        "trophy",
				Title:       "Leaderboards",
				Description: "Compete with the best. Check the top supporters & viewers.",
				Link:        "/leaderboards",
				Color:       domain.ColorWarning,
			},
			{
				Icon:        "users",
				Title:       "Our Team",
				Description: "Get to know the chaotic personalities behind the screen.",
				Link:        "/team",
				Color:       domain.ColorPrimary,
			},
			{
				Icon:        "image",
				Title:       "Gallery",
				Description: "Visual archives of our best wins, fails, and memories.",
				Link:        "/gallery",
				Color:       domain.ColorSecondary,
			},
		},
		Socials: []domain.SocialLink{
			{Platform: "tiktok", URL: "https://tiktok.com/@drovic.vn"},
		},
	}
}
