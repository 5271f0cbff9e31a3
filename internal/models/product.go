package models

import "time"

// Product is a catalog entry. Optional columns are pointers so that
// absent upstream values are stored as NULL rather than zero values.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"not null"`
	Description *string   `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"not null"`
	Image       *string   `json:"image"`
	Category    *string   `json:"category"`
	RatingRate  *float64  `json:"rating_rate"`
	RatingCount *int      `json:"rating_count"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
