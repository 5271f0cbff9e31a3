package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/isdelr/storefront-seed/internal/database"
	"github.com/isdelr/storefront-seed/internal/models"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when no product matches the requested id.
var ErrProductNotFound = errors.New("product not found")

// ProductServiceProvider defines the interface for product services.
type ProductServiceProvider interface {
	CountProducts(ctx context.Context) (int64, error)
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uint) (models.Product, error)
	SearchProducts(ctx context.Context, term string) ([]models.Product, error)
}

// ProductService provides persistence for catalog products.
type ProductService struct {
	db *gorm.DB
}

// NewProductService creates a new ProductService.
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// CountProducts returns the number of stored products.
func (s *ProductService) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// CreateProduct inserts one product and returns it with its assigned id.
func (s *ProductService) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	product.ID = 0
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return models.Product{}, fmt.Errorf("create product %q: %w", product.Title, database.Translate(err))
	}
	return product, nil
}

// GetAllProducts retrieves every product in insertion order.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductByID retrieves a single product by its surrogate key.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
		}
		return models.Product{}, err
	}
	return product, nil
}

// SearchProducts returns products whose title, description or category
// contains term. The term is passed to LIKE unescaped, so % and _ act as
// wildcards. An empty term matches every product.
func (s *ProductService) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	pattern := "%" + term + "%"
	products := []models.Product{}
	err := s.db.WithContext(ctx).
		Where("title LIKE ?", pattern).
		Or("description LIKE ?", pattern).
		Or("category LIKE ?", pattern).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
