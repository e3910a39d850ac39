package domain

// Moment is a highlight card on the moments wall
type Moment struct {
	ID          int64       `yaml:"id" json:"id"`
	Category    string      `yaml:"category" json:"category"`
	Title       string      `yaml:"title" json:"title"`
	Description string      `yaml:"description" json:"description"`
	Date        string      `yaml:"date" json:"date"`
	Icon        string      `yaml:"icon" json:"icon"`
	Color       string      `yaml:"color" json:"color"`
	Stat        *MomentStat `yaml:"stat" json:"stat,omitempty"`
}

// MomentStat is the single figure shown on a moment card
type MomentStat struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// HomeStat is one counter of the home hero section
type HomeStat struct {
	Icon  string `yaml:"icon" json:"icon"`
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// Feature links a home card to a section of the site
type Feature struct {
	Icon        string     `yaml:"icon" json:"icon"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Link        string     `yaml:"link" json:"link"`
	Color       ThemeColor `yaml:"color" json:"color"`
	Gradient    string     `yaml:"gradient,omitempty" json:"gradient"`
}

// SocialLink is an outbound link, always opened in a new browsing context
type SocialLink struct {
	Platform string `yaml:"platform" json:"platform"`
	URL      string `yaml:"url" json:"url"`
	Target   string `yaml:"-" json:"target"`
}

// RankedPreview is a top-3 row of the home page leaderboard previews
type RankedPreview struct {
	Username  string  `json:"username"`
	Value     string  `json:"value"`
	Rank      int     `json:"rank"`
	Badge     string  `json:"badge"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// HomePage is everything the home page renders
type HomePage struct {
	Stats     []HomeStat      `json:"stats"`
	Features  []Feature       `json:"features"`
	Socials   []SocialLink    `json:"socials"`
	Watchtime []RankedPreview `json:"top_watchtime"`
	Powerful  []RankedPreview `json:"top_powerful"`
}
