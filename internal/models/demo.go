package models

// Demo is a gallery entry, optionally illustrated by a stored image.
type Demo struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"index;not null" json:"slug"`
	Summary     string `gorm:"type:text" json:"summary"`
	Body        string `gorm:"type:text" json:"body"`
	ThumbnailID *uint  `json:"thumbnail_id,omitempty"`
	Thumbnail   *Image `gorm:"foreignKey:ThumbnailID" json:"thumbnail,omitempty"`
}

// Image holds raw uploaded bytes keyed by a unique filename.
type Image struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Filename string `gorm:"unique;not null;index" json:"filename"`
	Data     []byte `gorm:"type:bytes" json:"-"`
	AltText  string `json:"alt_text"`
	Demos    []Demo `gorm:"foreignKey:ThumbnailID" json:"-"`
}
