package models

import "time"

// User is an identity record pulled from the random identity API.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"unique;not null"`
	Email     string    `json:"email" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"` // stored as received; seed data only
	IsAdmin   int       `json:"is_admin" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
