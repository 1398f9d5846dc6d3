package repositories

import (
	"sync"

	"novasphere/internal/models"
)

// MockStateRepository is an in-memory implementation of StateRepository.
type MockStateRepository struct {
	mu      sync.RWMutex
	session *models.User
	cart    []models.CartItem
	hasCart bool
}

// NewMockStateRepository creates a new instance of MockStateRepository.
func NewMockStateRepository() *MockStateRepository {
	return &MockStateRepository{}
}

// LoadSession returns the stored session, or nil.
func (r *MockStateRepository) LoadSession() (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.session == nil {
		return nil, nil
	}
	user := *r.session
	return &user, nil
}

// SaveSession stores the session.
func (r *MockStateRepository) SaveSession(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user == nil {
		r.session = nil
		return nil
	}
	copied := *user
	r.session = &copied
	return nil
}

// ClearSession removes the stored session.
func (r *MockStateRepository) ClearSession() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
	return nil
}

// LoadCart returns the stored cart snapshot, or nil when absent.
func (r *MockStateRepository) LoadCart() ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.hasCart {
		return nil, nil
	}
	items := make([]models.CartItem, len(r.cart))
	copy(items, r.cart)
	return items, nil
}

// SaveCart stores the cart snapshot.
func (r *MockStateRepository) SaveCart(items []models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cart = make([]models.CartItem, len(items))
	copy(r.cart, items)
	r.hasCart = true
	return nil
}
