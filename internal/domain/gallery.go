package domain

// GalleryKind is the media type of a gallery item
type GalleryKind string

const (
	GalleryKindPhoto GalleryKind = "photo"
	GalleryKindVideo GalleryKind = "video"
	GalleryKindClip  GalleryKind = "clip"
)

// GalleryItem is one tile of the media gallery
// Table: gallery_items
type GalleryItem struct {
	ID             int64       `gorm:"column:id;primaryKey" json:"id"`
	Type           GalleryKind `gorm:"column:type" json:"type"`
	Title          string      `gorm:"column:title" json:"title"`
	DateDisplay    string      `gorm:"column:date_display" json:"date_display"`
	ThumbnailClass string      `gorm:"column:thumbnail_class" json:"thumbnail_class"`
	ThumbnailURL   *string     `gorm:"column:thumbnail_url" json:"thumbnail_url,omitempty"`
	URL            string      `gorm:"column:url" json:"url"`
	HeightClass    string      `gorm:"column:height_class" json:"height_class"`
	Views          *string     `gorm:"column:views" json:"views,omitempty"`
	Likes          *string     `gorm:"column:likes" json:"likes,omitempty"`
	Tags           StringList  `gorm:"column:tags;type:text" json:"tags,omitempty"`
}

// TableName specifies the table name for GalleryItem
func (GalleryItem) TableName() string {
	return "gallery_items"
}

// SharePayload is what the browser hands to the native share sheet
type SharePayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}
