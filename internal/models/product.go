package models

// Category is one of the fixed storefront categories.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryApparel     Category = "Apparel"
	CategoryHome        Category = "Home"
	CategoryBooks       Category = "Books"
	CategoryAccessories Category = "Accessories"
)

// Product represents a product in the store catalog.
type Product struct {
	ID          string   `json:"id" validate:"omitempty"`
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Price       float64  `json:"price" validate:"gte=0"`
	Category    Category `json:"category" validate:"required,oneof=Electronics Apparel Home Books Accessories"`
	Image       string   `json:"image" validate:"omitempty,url"`
	Stock       int      `json:"stock" validate:"gte=0"`
}

// CartItem is a product line in the cart. At most one line exists per
// product id; repeat adds raise the quantity instead.
type CartItem struct {
	Product
	Quantity int `json:"quantity" validate:"gt=0"`
}
