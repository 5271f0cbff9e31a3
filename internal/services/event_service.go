package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/isdelr/storefront-seed/internal/models"
	"gorm.io/gorm"
)

// EventServiceProvider defines the interface for the seed journal.
type EventServiceProvider interface {
	CreateEvent(ctx context.Context, event models.SeedEvent) error
	GetRecentEvents(ctx context.Context, limit int) ([]models.SeedEvent, error)
}

// EventService stores one row per seeding run.
type EventService struct {
	db *gorm.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// CreateEvent logs a new event to the database.
func (s *EventService) CreateEvent(ctx context.Context, event models.SeedEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	return s.db.WithContext(ctx).Create(&event).Error
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(ctx context.Context, limit int) ([]models.SeedEvent, error) {
	events := []models.SeedEvent{}
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("rowid DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
