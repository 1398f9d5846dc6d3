package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"novasphere/internal/models"
	"novasphere/internal/storefront"
)

// AuthHandler handles HTTP requests for the session store.
type AuthHandler struct {
	store *storefront.Storefront
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store *storefront.Storefront) *AuthHandler {
	return &AuthHandler{store: store}
}

// RegisterRoutes registers the session routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/session", h.HandleGetSession)
}

// HandleLogin starts a simulated session for the requested role. There are
// no credentials; the body names a role and nothing else.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var body struct {
		Role models.Role `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if body.Role != models.RoleUser && body.Role != models.RoleAdmin {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Role must be USER or ADMIN",
		})
	}

	user, token, err := h.store.Login(body.Role)
	if err != nil {
		log.Printf("Error logging in: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not start session",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// HandleLogout ends the current session. Logging out with no session is a
// no-op.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	h.store.Logout()
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// HandleGetSession returns the active user, or null when logged out.
func (h *AuthHandler) HandleGetSession(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"user": h.store.CurrentUser(),
	})
}
