package handlers

import (
	"github.com/gofiber/fiber/v2"

	"novasphere/internal/storefront"
)

// StateHandler exposes a single snapshot of every projection, so a rendering
// layer can re-read the whole view state after a change notification.
type StateHandler struct {
	store *storefront.Storefront
}

// NewStateHandler creates a new StateHandler.
func NewStateHandler(store *storefront.Storefront) *StateHandler {
	return &StateHandler{store: store}
}

// RegisterRoutes registers the state route with the Fiber app.
func (h *StateHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/state", h.HandleGetState)
}

// HandleGetState returns the derived view state in one payload.
func (h *StateHandler) HandleGetState(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"user":            h.store.CurrentUser(),
		"products":        h.store.FilteredProducts(),
		"recommendations": h.store.Recommendations(),
		"cart_items":      h.store.CartItems(),
		"cart_count":      h.store.CartCount(),
		"cart_total":      h.store.CartTotal(),
		"ai_busy":         h.store.AIBusy(),
	})
}
