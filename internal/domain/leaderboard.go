package domain

// Period is the leaderboard time window
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Valid reports whether p is a known period
func (p Period) Valid() bool {
	return p == PeriodWeekly || p == PeriodMonthly
}

// LeaderboardCategory splits the leaderboard into its two boards
type LeaderboardCategory string

const (
	CategoryWatchtime LeaderboardCategory = "watchtime"
	CategoryPowerful  LeaderboardCategory = "powerful"
)

// LeaderboardEntry is one ranked supporter
// Table: leaderboards
type LeaderboardEntry struct {
	ID        int64               `gorm:"column:id;primaryKey" json:"id"`
	Username  string              `gorm:"column:username" json:"username"`
	Handle    *string             `gorm:"column:handle" json:"handle"`
	AvatarURL *string             `gorm:"column:avatar_url" json:"avatar_url"`
	Category  LeaderboardCategory `gorm:"column:category" json:"category"`
	Period    Period              `gorm:"column:period" json:"period"`
	Value     string              `gorm:"column:value" json:"value"`
	Rank      int                 `gorm:"column:rank" json:"rank"`
	IsLive    bool                `gorm:"column:is_live" json:"is_live"`
}

// TableName specifies the table name for LeaderboardEntry
func (LeaderboardEntry) TableName() string {
	return "leaderboards"
}

// Moderator is shown next to the leaderboard
// Table: moderators
type Moderator struct {
	ID        int64   `gorm:"column:id;primaryKey" json:"id"`
	Username  string  `gorm:"column:username" json:"username"`
	Role      string  `gorm:"column:role" json:"role"`
	Since     string  `gorm:"column:since" json:"since"`
	AvatarURL *string `gorm:"column:avatar_url" json:"avatar_url"`
}

// TableName specifies the table name for Moderator
func (Moderator) TableName() string {
	return "moderators"
}
