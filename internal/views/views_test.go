package views_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"novasphere/internal/catalog"
	"novasphere/internal/models"
	"novasphere/internal/views"
)

func productIDs(products []models.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestFilteredProducts_NoFilters(t *testing.T) {
	seed := catalog.Seed()

	result := views.FilteredProducts(seed, views.CategoryAll, nil)

	assert.Len(t, result, 6)
}

func TestFilteredProducts_CategoryOnly(t *testing.T) {
	seed := catalog.Seed()

	result := views.FilteredProducts(seed, "Electronics", nil)

	assert.Equal(t, []string{"1", "2", "6"}, productIDs(result))
}

func TestFilteredProducts_CategoryAndSearchIntersect(t *testing.T) {
	seed := catalog.Seed()

	result := views.FilteredProducts(seed, "Electronics", []string{"1", "3"})

	assert.Equal(t, []string{"1"}, productIDs(result),
		"search narrows the category restriction by intersection")
}

func TestFilteredProducts_SearchOnly(t *testing.T) {
	seed := catalog.Seed()

	result := views.FilteredProducts(seed, views.CategoryAll, []string{"3", "5"})

	assert.Equal(t, []string{"3", "5"}, productIDs(result))
}

func TestFilteredProducts_EmptySearchResultMatchesNothing(t *testing.T) {
	seed := catalog.Seed()

	// nil means no restriction; an empty non-nil slice means the search
	// matched nothing
	assert.Len(t, views.FilteredProducts(seed, views.CategoryAll, nil), 6)
	assert.Empty(t, views.FilteredProducts(seed, views.CategoryAll, []string{}))
}

func TestFilteredProducts_UnknownSearchIDsIgnored(t *testing.T) {
	seed := catalog.Seed()

	result := views.FilteredProducts(seed, views.CategoryAll, []string{"6", "999"})

	assert.Equal(t, []string{"6"}, productIDs(result))
}

func TestCartItemCount_SumsQuantities(t *testing.T) {
	seed := catalog.Seed()
	items := []models.CartItem{
		{Product: seed[0], Quantity: 2},
		{Product: seed[3], Quantity: 1},
	}

	assert.Equal(t, 3, views.CartItemCount(items), "badge counts units, not lines")
	assert.Zero(t, views.CartItemCount(nil))
}

func TestCartTotal_SumsPriceTimesQuantity(t *testing.T) {
	seed := catalog.Seed()
	items := []models.CartItem{
		{Product: seed[0], Quantity: 2}, // 299.99 x 2
		{Product: seed[4], Quantity: 1}, // 45.00
	}

	assert.InDelta(t, 644.98, views.CartTotal(items), 1e-9)
	assert.Zero(t, views.CartTotal(nil))
}

func TestRecommendedProducts_ResolvesAgainstCatalog(t *testing.T) {
	seed := catalog.Seed()

	result := views.RecommendedProducts(seed, []string{"6", "2", "deleted-id"})

	// catalog order wins, unknown ids drop out
	assert.Equal(t, []string{"2", "6"}, productIDs(result))
	assert.Empty(t, views.RecommendedProducts(seed, nil))
}
