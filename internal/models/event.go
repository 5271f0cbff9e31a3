package models

import "time"

// SeedEvent records the outcome of a single seeding run.
type SeedEvent struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Source    string    `json:"source" gorm:"not null;index"`  // e.g., "users", "products"
	Trigger   string    `json:"trigger" gorm:"not null"`       // e.g., "bootstrap", "manual"
	Level     string    `json:"level" gorm:"not null"`         // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	Fetched   int       `json:"fetched"`
	Inserted  int       `json:"inserted"`
	Failed    int       `json:"failed"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}
