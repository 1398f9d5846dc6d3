package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"novasphere/internal/models"
	"novasphere/internal/storefront"
)

// CartHandler handles HTTP requests for the cart, checkout and the order
// history.
type CartHandler struct {
	store *storefront.Storefront
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(store *storefront.Storefront) *CartHandler {
	return &CartHandler{store: store}
}

// RegisterRoutes registers the cart and order routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Post("/checkout", h.HandleCheckout)

	router.Get("/orders", h.HandleGetOrders)
}

// HandleGetCart returns the cart lines with the derived count and total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items": h.store.CartItems(),
		"count": h.store.CartCount(),
		"total": h.store.CartTotal(),
	})
}

// HandleAddItem adds one unit of a catalog product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"product_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		log.Printf("Error parsing cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if body.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}

	if err := h.store.AddToCart(body.ProductID); err != nil {
		if errors.Is(err, models.ErrUnknownProduct) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error adding to cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to cart",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"items": h.store.CartItems(),
		"count": h.store.CartCount(),
		"total": h.store.CartTotal(),
	})
}

// HandleRemoveItem drops a whole cart line. Removing an absent line is a
// no-op and still succeeds.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	h.store.RemoveFromCart(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCheckout turns the cart into an order. Without a session it answers
// 401 with a login redirect hint rather than an opaque failure.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	order, err := h.store.Checkout()
	if err != nil {
		if errors.Is(err, models.ErrNotLoggedIn) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message":  "Login required to check out",
				"redirect": "/login",
			})
		}
		if errors.Is(err, models.ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cart is empty",
			})
		}
		log.Printf("Error during checkout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not complete checkout",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders returns the current user's order history, newest first.
func (h *CartHandler) HandleGetOrders(c *fiber.Ctx) error {
	if h.store.CurrentUser() == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message":  "Login required to view orders",
			"redirect": "/login",
		})
	}
	orders := h.store.OrderHistory()
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(orders)
}
