package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"novasphere/internal/models"
)

// generator is the minimal model surface the gateway needs. It exists so the
// failure policy can be exercised without network access.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

// Gateway translates cart contents and search queries into requests to the
// generative model and parses its responses into product id lists. It is the
// single untrusted boundary in the system: latency, malformed output and
// downtime all degrade to an empty result, never an error and never a
// change to local state.
type Gateway struct {
	gen generator
}

// NewGateway creates a Gemini-backed gateway. The model is constrained to
// answer with a JSON array of strings.
func NewGateway(ctx context.Context, apiKey, modelName string) (*Gateway, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
	return &Gateway{gen: &geminiGenerator{model: model}}, nil
}

type geminiGenerator struct {
	model *genai.GenerativeModel
}

func (g *geminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	res, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response")
	}
	text, ok := res.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part %T", res.Candidates[0].Content.Parts[0])
	}
	return string(text), nil
}

// Recommend asks the model for product ids to suggest alongside the current
// cart. An empty cart resolves to an empty list without a request. Any
// failure also resolves to an empty list; callers must treat "no
// recommendations" as a valid outcome.
func (g *Gateway) Recommend(ctx context.Context, cartItems []models.CartItem, catalog []models.Product) []string {
	if len(cartItems) == 0 {
		return []string{}
	}

	names := make([]string, len(cartItems))
	for i, item := range cartItems {
		names[i] = item.Name
	}
	var listing strings.Builder
	for _, p := range catalog {
		fmt.Fprintf(&listing, "ID: %s, Name: %s, Category: %s\n", p.ID, p.Name, p.Category)
	}

	prompt := fmt.Sprintf(`Based on these items in the user's cart: [%s], recommend 2 additional product IDs from this list:
%s
Return ONLY a JSON array of IDs.`, strings.Join(names, ", "), listing.String())

	return g.fetchIDs(ctx, "recommendation", prompt)
}

// Search asks the model which catalog products match the user's query. Any
// failure resolves to an empty list.
func (g *Gateway) Search(ctx context.Context, query string, catalog []models.Product) []string {
	var listing strings.Builder
	for _, p := range catalog {
		fmt.Fprintf(&listing, "ID: %s, Name: %s, Desc: %s\n", p.ID, p.Name, p.Description)
	}

	prompt := fmt.Sprintf(`User is searching for: %q. Based on this product catalog, return the IDs of the products that most closely match the user's intent:
%s
Return ONLY a JSON array of IDs.`, query, listing.String())

	return g.fetchIDs(ctx, "search", prompt)
}

func (g *Gateway) fetchIDs(ctx context.Context, op, prompt string) []string {
	raw, err := g.gen.generate(ctx, prompt)
	if err != nil {
		log.Printf("AI %s failed: %v", op, err)
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Printf("AI %s returned a malformed payload: %v", op, err)
		return []string{}
	}
	return ids
}
