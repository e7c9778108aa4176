package models

import "time"

// Category groups products.
type Category struct {
	ID          uint      `gorm:"primaryKey"                json:"id"`
	Name        string    `gorm:"size:255;not null;index"   json:"name"`
	Description string    `gorm:"type:text;not null"        json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product is a catalogue entry owned by a user.
type Product struct {
	ID          uint      `gorm:"primaryKey"                json:"id"`
	Name        string    `gorm:"size:255;not null;index"   json:"name"`
	Price       float64   `gorm:"not null"                  json:"price"`
	Description string    `gorm:"type:text;not null"        json:"description"`
	Image       string    `gorm:"size:1024;not null"        json:"image"`
	Video       *string   `gorm:"size:1024"                 json:"video"`
	CategoryID  uint      `gorm:"not null;index"            json:"category_id"`
	UserID      uint      `gorm:"not null;index"            json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductWithCategory is a product joined with the name of its category.
type ProductWithCategory struct {
	Product
	CategoryName string `json:"category_name"`
}

// CategoryAverage is the average product price within one category.
type CategoryAverage struct {
	Category string  `json:"category"`
	AvgPrice float64 `json:"avg_price"`
}
