package domain

import "time"

// Treatment is a bookable spa service. Duration is in minutes.
type Treatment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug        string    `gorm:"uniqueIndex;size:200" json:"slug"`
	Title       string    `gorm:"size:200" json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Duration    int       `json:"duration"`
	Image       string    `gorm:"size:1024" json:"image"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Treatment) TableName() string {
	return "treatments"
}
