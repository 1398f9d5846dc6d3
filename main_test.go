package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novasphere/internal/models"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	v := viper.New()
	v.Set("STATE_DB_PATH", t.TempDir()+"/state.db")
	v.Set("JWT_SECRET", "test-jwt-secret")
	// no GEMINI_API_KEY: the AI gateway runs in fail-soft mode

	app, _, bus, err := NewApp(v)
	require.NoError(t, err)
	t.Cleanup(bus.Close)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func login(t *testing.T, app *fiber.App, role models.Role) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", fiber.Map{"role": role}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	payload, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"status":"healthy"`)
}

func TestProductListingServesSeedCatalog(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/products", nil, "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	decode(t, resp, &products)
	assert.Len(t, products, 6)
	assert.Equal(t, "1", products[0].ID)
}

func TestCheckoutWithoutSessionIsRedirected(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", fiber.Map{"product_id": "1"}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/checkout", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "/login", body["redirect"])
}

func TestCartCheckoutOrderFlow(t *testing.T) {
	app := newTestApp(t)
	login(t, app, models.RoleUser) // the shopper surface needs no token; only admin routes do

	// two of product 1, one of product 3
	for _, id := range []string{"1", "1", "3"} {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", fiber.Map{"product_id": id}, "")
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, "/api/v1/cart", nil, "")
	var cart struct {
		Items []models.CartItem `json:"items"`
		Count int               `json:"count"`
		Total float64           `json:"total"`
	}
	decode(t, resp, &cart)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.Count)
	assert.InDelta(t, 634.98, cart.Total, 1e-6)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/checkout", nil, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decode(t, resp, &order)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.InDelta(t, 634.98, order.Total, 1e-6)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart", nil, "")
	decode(t, resp, &cart)
	assert.Empty(t, cart.Items, "checkout clears the cart")

	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	decode(t, resp, &orders)
	assert.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app := newTestApp(t)
	newProduct := fiber.Map{
		"name":     "Aurora Desk Lamp",
		"price":    59.99,
		"category": "Home",
		"stock":    30,
	}

	resp := doJSON(t, app, http.MethodPost, "/api/v1/products", newProduct, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	userToken := login(t, app, models.RoleUser)
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products", newProduct, userToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	adminToken := login(t, app, models.RoleAdmin)
	resp = doJSON(t, app, http.MethodPost, "/api/v1/products", newProduct, adminToken)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Product
	decode(t, resp, &created)
	assert.NotEmpty(t, created.ID)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products", nil, "")
	var products []models.Product
	decode(t, resp, &products)
	assert.Len(t, products, 7)

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/products/"+created.ID, nil, adminToken)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminProductValidation(t *testing.T) {
	app := newTestApp(t)
	adminToken := login(t, app, models.RoleAdmin)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/products", fiber.Map{
		"name":     "Cursed Lamp",
		"price":    -5,
		"category": "Home",
	}, adminToken)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSessionPersistsAcrossRestart(t *testing.T) {
	v := viper.New()
	dbPath := t.TempDir() + "/state.db"
	v.Set("STATE_DB_PATH", dbPath)
	v.Set("JWT_SECRET", "test-jwt-secret")

	app, _, bus, err := NewApp(v)
	require.NoError(t, err)

	_ = login(t, app, models.RoleUser)
	resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", fiber.Map{"product_id": "2"}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	bus.Close()

	// a second app over the same state file restores session and cart
	restarted, _, bus2, err := NewApp(v)
	require.NoError(t, err)
	t.Cleanup(bus2.Close)

	resp = doJSON(t, restarted, http.MethodGet, "/api/v1/auth/session", nil, "")
	var sessionBody struct {
		User *models.User `json:"user"`
	}
	decode(t, resp, &sessionBody)
	require.NotNil(t, sessionBody.User)
	assert.Equal(t, "jane_doe", sessionBody.User.Username)

	resp = doJSON(t, restarted, http.MethodGet, "/api/v1/cart", nil, "")
	var cart struct {
		Items []models.CartItem `json:"items"`
	}
	decode(t, resp, &cart)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "2", cart.Items[0].ID)
}

func TestStateSnapshotEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/state", nil, "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var state struct {
		Products  []models.Product `json:"products"`
		CartCount int              `json:"cart_count"`
		AIBusy    bool             `json:"ai_busy"`
	}
	decode(t, resp, &state)
	assert.Len(t, state.Products, 6)
	assert.Zero(t, state.CartCount)
	assert.False(t, state.AIBusy)
}
