package domain

import "time"

// Testimonial is a customer quote shown on the home page.
type Testimonial struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating"`
	Image     string    `gorm:"size:1024" json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}

// GalleryItem is a single gallery photo, filterable by category.
type GalleryItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"size:200" json:"title"`
	Image     string    `gorm:"size:1024" json:"image"`
	Category  string    `gorm:"index;size:100" json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (GalleryItem) TableName() string {
	return "gallery_items"
}

// InstagramPost mirrors a feed post embedded on the site.
type InstagramPost struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Image     string    `gorm:"size:1024" json:"image"`
	Caption   string    `json:"caption"`
	Link      string    `gorm:"size:1024" json:"link"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (InstagramPost) TableName() string {
	return "instagram_posts"
}
