package domain

import "time"

// Product is a storefront catalog item.
type Product struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug          string    `gorm:"uniqueIndex;size:200" json:"slug"`
	Title         string    `gorm:"size:200" json:"title"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Image         string    `gorm:"size:1024" json:"image"`
	Category      string    `gorm:"index;size:100" json:"category"`
	Badge         string    `gorm:"size:50" json:"badge,omitempty"` // e.g. 'new', 'bestseller'
	Featured      bool      `json:"featured"`
	StockQuantity int       `json:"stockQuantity"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

// ProductReview is a customer review attached to a product.
type ProductReview struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"index" json:"productId"`
	Author    string    `gorm:"size:100" json:"author"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ProductReview) TableName() string {
	return "product_reviews"
}
