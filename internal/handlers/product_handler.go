package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"novasphere/internal/middleware"
	"novasphere/internal/models"
	"novasphere/internal/services"
	"novasphere/internal/storefront"
)

// ProductHandler handles HTTP requests for the catalog, the product listing
// filters and the AI search.
type ProductHandler struct {
	store   *storefront.Storefront
	session *services.SessionService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(store *storefront.Storefront, session *services.SessionService) *ProductHandler {
	return &ProductHandler{store: store, session: session}
}

// RegisterRoutes registers the product routes with the Fiber app. Catalog
// mutations sit behind the admin gate.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/recommendations", h.HandleGetRecommendations)
	productRoutes.Put("/filter", h.HandleSetFilter)
	productRoutes.Post("/search", h.HandleSearch)

	adminGate := middleware.AdminRequired(h.session)
	productRoutes.Post("/", adminGate, h.HandleAddProduct)
	productRoutes.Delete("/:id", adminGate, h.HandleDeleteProduct)
}

// HandleGetProducts returns the product listing under the current category
// and search filters.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	return c.JSON(h.store.FilteredProducts())
}

// HandleGetRecommendations returns the products behind the last resolved
// recommendation fetch.
func (h *ProductHandler) HandleGetRecommendations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"products": h.store.Recommendations(),
		"ai_busy":  h.store.AIBusy(),
	})
}

// HandleSetFilter sets the category filter. "All" lifts the restriction.
func (h *ProductHandler) HandleSetFilter(c *fiber.Ctx) error {
	var body struct {
		Category string `json:"category"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	h.store.SetCategoryFilter(body.Category)
	return c.JSON(h.store.FilteredProducts())
}

// HandleSearch kicks off an AI search for the query. The result installs
// asynchronously; the listing endpoint reflects it once resolved. A blank
// query clears the restriction immediately.
func (h *ProductHandler) HandleSearch(c *fiber.Ctx) error {
	var body struct {
		Query string `json:"query"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	h.store.Search(body.Query)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Search started",
		"ai_busy": h.store.AIBusy(),
	})
}

// HandleAddProduct inserts a new catalog product. The id is generated; any
// id in the body is ignored.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	created, err := h.store.AddProduct(product)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorMessages := make(map[string]string)
			for _, e := range validationErrors {
				errorMessages[e.Field()] = e.Tag()
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  errorMessages,
			})
		}
		log.Printf("Error adding product: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not add product",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleDeleteProduct removes a catalog product. Unknown ids are a silent
// no-op, matching the store contract.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	h.store.RemoveProduct(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}
