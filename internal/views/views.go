// Package views derives display values from store state. Every function is
// pure; callers recompute on each read so derived values are never stale
// relative to their inputs.
package views

import "novasphere/internal/models"

// CategoryAll disables category filtering.
const CategoryAll = "All"

// FilteredProducts narrows the catalog by category, then by the id set a
// search produced. The filters compose by intersection. A nil searchIDs
// means no search restriction is active; an empty non-nil slice means the
// search matched nothing.
func FilteredProducts(catalog []models.Product, categoryFilter string, searchIDs []string) []models.Product {
	var idSet map[string]struct{}
	if searchIDs != nil {
		idSet = make(map[string]struct{}, len(searchIDs))
		for _, id := range searchIDs {
			idSet[id] = struct{}{}
		}
	}

	result := make([]models.Product, 0, len(catalog))
	for _, p := range catalog {
		if categoryFilter != "" && categoryFilter != CategoryAll && string(p.Category) != categoryFilter {
			continue
		}
		if idSet != nil {
			if _, ok := idSet[p.ID]; !ok {
				continue
			}
		}
		result = append(result, p)
	}
	return result
}

// CartItemCount is the badge count: the sum of quantities, not the number of
// distinct lines.
func CartItemCount(items []models.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// CartTotal is the sum of price times quantity over the cart lines.
func CartTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// RecommendedProducts resolves gateway id results against the catalog,
// keeping catalog order and dropping ids no longer present.
func RecommendedProducts(catalog []models.Product, ids []string) []models.Product {
	if len(ids) == 0 {
		return nil
	}
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	var result []models.Product
	for _, p := range catalog {
		if _, ok := idSet[p.ID]; ok {
			result = append(result, p)
		}
	}
	return result
}
