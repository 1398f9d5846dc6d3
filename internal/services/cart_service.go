package services

import (
	"log"
	"sync"

	"novasphere/internal/models"
	"novasphere/internal/repositories"
)

// CartService holds the cart line items. Every mutation writes the new
// snapshot through to the cart slot. Totals are recomputed on demand and
// never cached.
type CartService struct {
	mu    sync.RWMutex
	items []models.CartItem
	repo  repositories.StateRepository
}

// NewCartService creates a CartService, restoring any persisted cart.
// An unreadable slot restores as an empty cart.
func NewCartService(repo repositories.StateRepository) *CartService {
	s := &CartService{repo: repo}
	items, err := repo.LoadCart()
	if err != nil {
		log.Printf("Failed to restore cart, starting empty: %v", err)
		return s
	}
	s.items = items
	return s
}

// AddItem merges by product id: an existing line gains one quantity, a new
// product starts a line at quantity 1.
func (s *CartService) AddItem(product models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity++
			s.persistLocked()
			return
		}
	}
	s.items = append(s.items, models.CartItem{Product: product, Quantity: 1})
	s.persistLocked()
}

// RemoveItem drops the whole line for the given product id, not a decrement.
// Unknown ids are a no-op.
func (s *CartService) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// Clear empties the cart.
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persistLocked()
}

// Items returns a copy of the current cart lines.
func (s *CartService) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Total is the sum of price times quantity over all lines, recomputed on
// every call.
func (s *CartService) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count is the sum of quantities, the cart badge number.
func (s *CartService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Lines is the number of distinct product lines in the cart.
func (s *CartService) Lines() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *CartService) persistLocked() {
	if err := s.repo.SaveCart(s.items); err != nil {
		log.Printf("Failed to persist cart: %v", err)
	}
}
