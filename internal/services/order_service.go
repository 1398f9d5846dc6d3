package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"novasphere/internal/models"
)

// OrderService keeps the append-only order ledger, newest first. Checkout is
// the sole write path; orders are immutable after creation.
type OrderService struct {
	mu     sync.RWMutex
	orders []models.Order
}

// NewOrderService creates an empty ledger.
func NewOrderService() *OrderService {
	return &OrderService{}
}

// Checkout freezes the given cart snapshot into a new PENDING order at the
// head of the ledger. It fails with models.ErrNotLoggedIn when user is nil
// and models.ErrEmptyCart when there is nothing to order; in both cases the
// ledger is unchanged. Clearing the cart is the caller's responsibility.
func (s *OrderService) Checkout(user *models.User, items []models.CartItem) (models.Order, error) {
	if user == nil {
		return models.Order{}, models.ErrNotLoggedIn
	}
	if len(items) == 0 {
		return models.Order{}, models.ErrEmptyCart
	}

	// Deep copy so later cart mutations cannot reach into the order.
	snapshot := make([]models.CartItem, len(items))
	copy(snapshot, items)

	var total float64
	for _, item := range snapshot {
		total += item.Price * float64(item.Quantity)
	}

	order := models.Order{
		ID:     "ord-" + uuid.New().String(),
		UserID: user.ID,
		Items:  snapshot,
		Total:  total,
		Status: models.OrderPending,
		Date:   time.Now().Format("Jan 2, 2006"),
	}

	s.mu.Lock()
	s.orders = append([]models.Order{order}, s.orders...)
	s.mu.Unlock()

	return order, nil
}

// Orders returns the full ledger, newest first.
func (s *OrderService) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]models.Order, len(s.orders))
	copy(orders, s.orders)
	return orders
}

// OrdersForUser returns the given user's orders, newest first.
func (s *OrderService) OrdersForUser(userID string) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var orders []models.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders
}
