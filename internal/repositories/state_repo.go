package repositories

import "novasphere/internal/models"

// StateRepository persists the two local state slots: the current session
// and the cart snapshot. An absent or unreadable slot loads as its default
// (nil user, empty cart); a load never blocks startup.
type StateRepository interface {
	LoadSession() (*models.User, error)
	SaveSession(user *models.User) error
	ClearSession() error
	LoadCart() ([]models.CartItem, error)
	SaveCart(items []models.CartItem) error
}
