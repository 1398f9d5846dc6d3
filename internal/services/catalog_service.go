package services

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"novasphere/internal/models"
)

// CatalogService holds the product catalog. It is the base dataset every
// projection filters; changes are visible to projections immediately.
type CatalogService struct {
	mu       sync.RWMutex
	products []models.Product
	validate *validator.Validate
}

// NewCatalogService creates a catalog pre-populated with the given products.
func NewCatalogService(seed []models.Product) *CatalogService {
	products := make([]models.Product, len(seed))
	copy(products, seed)
	return &CatalogService{
		products: products,
		validate: validator.New(),
	}
}

// Products returns a copy of the current catalog.
func (s *CatalogService) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]models.Product, len(s.products))
	copy(products, s.products)
	return products
}

// AddProduct validates the fields, assigns a fresh unique id and appends the
// product to the catalog. The incoming id, if any, is ignored.
func (s *CatalogService) AddProduct(product models.Product) (models.Product, error) {
	product.ID = ""
	if err := s.validate.Struct(product); err != nil {
		return models.Product{}, fmt.Errorf("invalid product: %w", err)
	}
	product.ID = uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, product)
	return product, nil
}

// RemoveProduct deletes the product with the given id from the catalog.
// Unknown ids are a no-op. Cart lines referencing the product are untouched;
// cart and catalog are independent collections once an item has been added.
func (s *CatalogService) RemoveProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
}
