package models

import "errors"

// OrderStatus is set once at order creation; there is no transition logic.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
)

var (
	// ErrNotLoggedIn is returned by checkout when no session is active.
	// Callers should redirect the user to login.
	ErrNotLoggedIn = errors.New("no active session")

	// ErrEmptyCart is returned by checkout when there is nothing to order.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnknownProduct is returned when a cart operation references a
	// product id that is not in the catalog.
	ErrUnknownProduct = errors.New("product not found")
)

// Order is an immutable record of a completed checkout. Items is a snapshot
// of the cart at checkout time, never a live reference; later cart or
// catalog changes do not touch it.
type Order struct {
	ID     string      `json:"id"`
	UserID string      `json:"user_id"`
	Items  []CartItem  `json:"items"`
	Total  float64     `json:"total"`
	Status OrderStatus `json:"status"`
	Date   string      `json:"date"`
}
