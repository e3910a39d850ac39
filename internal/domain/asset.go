package domain

// AssetCategory is a filter tab of the assets library
type AssetCategory string

const (
	AssetCategoryAll        AssetCategory = "all"
	AssetCategoryStickers   AssetCategory = "stickers"
	AssetCategoryEmotes     AssetCategory = "emotes"
	AssetCategoryGIFs       AssetCategory = "gifs"
	AssetCategoryWallpapers AssetCategory = "wallpapers"
)

// AssetCategories lists the filter tabs in display order
var AssetCategories = []AssetCategory{
	AssetCategoryAll,
	AssetCategoryStickers,
	AssetCategoryEmotes,
	AssetCategoryGIFs,
	AssetCategoryWallpapers,
}

// Valid reports whether c is one of the known filter tabs
func (c AssetCategory) Valid() bool {
	for _, known := range AssetCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Asset is a downloadable item of the assets library
// Table: assets
type Asset struct {
	ID         int64   `gorm:"column:id;primaryKey" json:"id"`
	Name       string  `gorm:"column:name" json:"name"`
	Category   string  `gorm:"column:category" json:"category"`
	Size       string  `gorm:"column:size" json:"size"`
	Format     string  `gorm:"column:format" json:"format"`
	Downloads  int64   `gorm:"column:downloads" json:"downloads"`
	ColorClass string  `gorm:"column:color_class" json:"color_class"`
	IconName   string  `gorm:"column:icon_name" json:"icon_name"`
	FileURL    *string `gorm:"column:file_url" json:"file_url,omitempty"`
}

// TableName specifies the table name for Asset
func (Asset) TableName() string {
	return "assets"
}
