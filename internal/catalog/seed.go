package catalog

import "novasphere/internal/models"

// Seed returns the initial product catalog the storefront boots with.
func Seed() []models.Product {
	return []models.Product{
		{
			ID:          "1",
			Name:        "Quantum X Pro Headphones",
			Description: "Noise-cancelling wireless headphones with 40-hour battery life.",
			Price:       299.99,
			Category:    models.CategoryElectronics,
			Image:       "https://picsum.photos/seed/headphones/400/400",
			Stock:       15,
		},
		{
			ID:          "2",
			Name:        "Nebula Smart Watch",
			Description: "Track your health, messages, and music with our sleekest design yet.",
			Price:       199.50,
			Category:    models.CategoryElectronics,
			Image:       "https://picsum.photos/seed/watch/400/400",
			Stock:       25,
		},
		{
			ID:          "3",
			Name:        "Minimalist Cotton Tee",
			Description: "Premium organic cotton t-shirt for everyday comfort.",
			Price:       35.00,
			Category:    models.CategoryApparel,
			Image:       "https://picsum.photos/seed/shirt/400/400",
			Stock:       100,
		},
		{
			ID:          "4",
			Name:        "Aero Backpack 2.0",
			Description: "Weatherproof, tech-ready backpack for the modern traveler.",
			Price:       89.00,
			Category:    models.CategoryAccessories,
			Image:       "https://picsum.photos/seed/bag/400/400",
			Stock:       40,
		},
		{
			ID:          "5",
			Name:        "Vintage Leather Journal",
			Description: "Handcrafted leather-bound notebook for your thoughts and sketches.",
			Price:       45.00,
			Category:    models.CategoryHome,
			Image:       "https://picsum.photos/seed/journal/400/400",
			Stock:       50,
		},
		{
			ID:          "6",
			Name:        "Zenith Mechanical Keyboard",
			Description: "Clicky, tactile, and RGB backlit for the ultimate typing experience.",
			Price:       149.00,
			Category:    models.CategoryElectronics,
			Image:       "https://picsum.photos/seed/keyboard/400/400",
			Stock:       12,
		},
	}
}
