package ai

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"novasphere/internal/catalog"
	"novasphere/internal/models"
)

type fakeGenerator struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeGenerator) generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func cartOf(products ...models.Product) []models.CartItem {
	items := make([]models.CartItem, len(products))
	for i, p := range products {
		items[i] = models.CartItem{Product: p, Quantity: 1}
	}
	return items
}

func TestGateway_RecommendEmptyCartSkipsCall(t *testing.T) {
	gen := &fakeGenerator{response: `["1"]`}
	gw := &Gateway{gen: gen}

	ids := gw.Recommend(context.Background(), nil, catalog.Seed())

	assert.Empty(t, ids)
	assert.Zero(t, gen.calls, "an empty cart must not reach the model")
}

func TestGateway_RecommendParsesIDs(t *testing.T) {
	gen := &fakeGenerator{response: `["2", "6"]`}
	gw := &Gateway{gen: gen}
	seed := catalog.Seed()

	ids := gw.Recommend(context.Background(), cartOf(seed[0]), seed)

	assert.Equal(t, []string{"2", "6"}, ids)
	assert.Equal(t, 1, gen.calls)
	// the prompt carries the cart names and the catalog listing
	assert.Contains(t, gen.prompts[0], "Quantum X Pro Headphones")
	assert.Contains(t, gen.prompts[0], "ID: 6, Name: Zenith Mechanical Keyboard, Category: Electronics")
	assert.Contains(t, gen.prompts[0], "JSON array")
}

func TestGateway_RecommendFailuresDegradeToEmpty(t *testing.T) {
	seed := catalog.Seed()
	cases := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"transport error", &fakeGenerator{err: fmt.Errorf("connection refused")}},
		{"non-JSON payload", &fakeGenerator{response: "I recommend the keyboard!"}},
		{"wrong JSON shape", &fakeGenerator{response: `{"ids": ["1"]}`}},
		{"truncated JSON", &fakeGenerator{response: `["1", "2"`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &Gateway{gen: tc.gen}
			ids := gw.Recommend(context.Background(), cartOf(seed[0]), seed)
			assert.NotNil(t, ids)
			assert.Empty(t, ids)
		})
	}
}

func TestGateway_SearchParsesIDs(t *testing.T) {
	gen := &fakeGenerator{response: `["1", "3"]`}
	gw := &Gateway{gen: gen}
	seed := catalog.Seed()

	ids := gw.Search(context.Background(), "something comfy", seed)

	assert.Equal(t, []string{"1", "3"}, ids)
	assert.Contains(t, gen.prompts[0], `"something comfy"`)
	// search prompts list descriptions, not categories
	assert.Contains(t, gen.prompts[0], "Desc: Premium organic cotton t-shirt for everyday comfort.")
}

func TestGateway_SearchFailuresDegradeToEmpty(t *testing.T) {
	seed := catalog.Seed()

	gw := &Gateway{gen: &fakeGenerator{err: fmt.Errorf("503 overloaded")}}
	assert.Empty(t, gw.Search(context.Background(), "anything", seed))

	gw = &Gateway{gen: &fakeGenerator{response: "not json"}}
	assert.Empty(t, gw.Search(context.Background(), "anything", seed))
}
