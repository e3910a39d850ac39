package domain

// ThemeColor is the accent color token of a team member
type ThemeColor string

const (
	ColorPrimary   ThemeColor = "primary"
	ColorSecondary ThemeColor = "secondary"
	ColorWarning   ThemeColor = "warning"
	ColorDanger    ThemeColor = "danger"
)

// TeamMember is one person of the roster
// Table: team_members
type TeamMember struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id"`
	Name      string     `gorm:"column:name" json:"name"`
	Role      string     `gorm:"column:role" json:"role"`
	Trait     string     `gorm:"column:trait" json:"trait"`
	TraitIcon string     `gorm:"column:trait_icon" json:"trait_icon"`
	Bio       string     `gorm:"column:bio;type:text" json:"bio"`
	Image     string     `gorm:"column:image" json:"image"`
	Color     ThemeColor `gorm:"column:color" json:"color"`
	TikTok    string     `gorm:"column:tiktok" json:"tiktok"`
	Instagram string     `gorm:"column:instagram" json:"instagram"`
}

// TableName specifies the table name for TeamMember
func (TeamMember) TableName() string {
	return "team_members"
}
