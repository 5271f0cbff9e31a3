package services

import (
	"context"
	"fmt"

	"github.com/isdelr/storefront-seed/internal/database"
	"github.com/isdelr/storefront-seed/internal/models"
	"gorm.io/gorm"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, username, email, password string) (models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

// UserService provides persistence for seeded users.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CountUsers returns the number of stored users.
func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// CreateUser inserts a non-admin user. A username that already exists
// yields an error wrapping database.ErrUniqueViolation.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (models.User, error) {
	user := models.User{
		Username: username,
		Email:    email,
		Password: password,
		IsAdmin:  0,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("create user %q: %w", username, database.Translate(err))
	}
	return user, nil
}

// GetAllUsers retrieves every user in insertion order.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
