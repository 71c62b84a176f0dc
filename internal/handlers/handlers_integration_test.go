package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"lapak/internal/handlers"
	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp wires the full storefront against in-memory SQLite. The database
// is shared within the process, so tests use distinct usernames.
func setupApp() (*fiber.App, error) {
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Record{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	recordStore := repositories.NewGORMRecordStore(db)
	orderRepo := repositories.NewMockOrderRepository() // mock keeps order state per test process

	source := repositories.NewLocalProductSource(productRepo)

	authService := services.NewAuthService(userRepo, jwtSecret)
	productService := services.NewProductService(productRepo)
	catalogService := services.NewCatalogService(source)
	cartService := services.NewCartService(recordStore)
	wishlistService := services.NewWishlistService(recordStore)
	ratingService := services.NewRatingService(recordStore)
	orderService := services.NewOrderService(orderRepo, productRepo, cartService, nil)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProfileRoutes(protectedRoutes)
	productHandler.RegisterManagementRoutes(protectedRoutes)
	cartHandler.RegisterRoutes(protectedRoutes)
	wishlistHandler.RegisterRoutes(protectedRoutes)
	ratingHandler.RegisterRoutes(protectedRoutes)
	orderHandler.RegisterRoutes(protectedRoutes)

	return app, nil
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// registerAndLogin creates a fresh user and returns their bearer token.
func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	body := map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var loginResp map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	require.NotEmpty(t, loginResp["token"])
	return loginResp["token"]
}

// doJSON issues a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// createProduct creates a listing through the management API and returns it.
func createProduct(t *testing.T, app *fiber.App, token string, fields map[string]interface{}) models.Product {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/v1/products", fields, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Product
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ID)
	return created
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)

	body := map[string]string{
		"username": "authflow",
		"email":    "authflow@example.com",
		"password": "password123",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", body, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Duplicate registration conflicts.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "authflow",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp map[string]string
	decodeBody(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp["token"])
}

func TestAuthProfileEndpoint(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)
	token := registerAndLogin(t, app, "profileuser")

	resp := doJSON(t, app, http.MethodGet, "/api/v1/auth/me", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	decodeBody(t, resp, &user)
	assert.Equal(t, "profileuser", user.Username)
	assert.Empty(t, user.Password)
}

func TestCatalogBrowseWithQueryParams(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)
	token := registerAndLogin(t, app, "catalogbrowser")

	createProduct(t, app, token, map[string]interface{}{
		"name": "Browse Mouse", "price": 30.0, "stock": 10, "category": "tecnologia",
	})
	createProduct(t, app, token, map[string]interface{}{
		"name": "Browse Keyboard", "price": 80.0, "stock": 10, "category": "tecnologia",
	})

	// Catalog browsing is public: no token on purpose.
	resp := doJSON(t, app, http.MethodGet, "/api/v1/catalog?q=browse&price_min=50&sort=price_desc", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listings []models.Product
	decodeBody(t, resp, &listings)
	require.Len(t, listings, 1)
	assert.Equal(t, "Browse Keyboard", listings[0].Name)
}

func TestCartFlow(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)
	token := registerAndLogin(t, app, "cartuser")

	product := createProduct(t, app, token, map[string]interface{}{
		"name": "Cart Lamp", "price": 45.5, "stock": 6,
	})

	// Add twice: quantities accumulate.
	addBody := map[string]interface{}{"product": product, "quantity": 1}
	resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", addBody, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", addBody, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var items []models.CartItem
	decodeBody(t, resp, &items)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	// Update the quantity; fractional values round, and the floor is one.
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/cart/items/"+string(product.ID),
		map[string]interface{}{"quantity": 3.4}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &items)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart/totals", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var totals models.CartTotals
	decodeBody(t, resp, &totals)
	assert.Equal(t, 3, totals.TotalItems)
	assert.InDelta(t, 136.5, totals.Subtotal, 0.001)

	// Remove undoes the add.
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/cart/items/"+string(product.ID), nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &items)
	assert.Empty(t, items)
}

func TestWishlistFlow(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)
	token := registerAndLogin(t, app, "wishlistuser")

	product := createProduct(t, app, token, map[string]interface{}{
		"name": "Wishlist Sofa", "price": 450.0, "stock": 2, "category": "hogar",
	})

	resp := doJSON(t, app, http.MethodPost, "/api/v1/wishlist/toggle", product, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/wishlist/contains/"+string(product.ID), nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var contains map[string]bool
	decodeBody(t, resp, &contains)
	assert.True(t, contains["wishlisted"])

	// Toggling again removes it.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/wishlist/toggle", product, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/wishlist/count", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var count map[string]int
	decodeBody(t, resp, &count)
	assert.Equal(t, 0, count["count"])
}

func TestRatingFlow(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)
	token := registerAndLogin(t, app, "ratinguser")

	resp := doJSON(t, app, http.MethodPost, "/api/v1/ratings/prod-9",
		map[string]int{"stars": 5}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/ratings/prod-9",
		map[string]int{"stars": 3}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var entry models.RatingEntry
	decodeBody(t, resp, &entry)
	assert.Equal(t, 4.0, entry.Average)
	assert.Equal(t, 2, entry.Count)

	// Unrated products report a zero entry, not a 404.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/ratings/never-rated", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &entry)
	assert.Equal(t, 0.0, entry.Average)
	assert.Equal(t, 0, entry.Count)
}

func TestCheckoutFromCart(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)
	token := registerAndLogin(t, app, "checkoutuser")

	product := createProduct(t, app, token, map[string]interface{}{
		"name": "Checkout Monitor", "price": 200.0, "stock": 4,
	})

	// Checking out an empty cart fails.
	resp := doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/items",
		map[string]interface{}{"product": product, "quantity": 2}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", nil, token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	decodeBody(t, resp, &order)
	require.Len(t, order.Items, 1)
	assert.Equal(t, product.ID, order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 400.0, order.TotalAmount, 0.001)

	// The cart is cleared after a successful checkout.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var items []models.CartItem
	decodeBody(t, resp, &items)
	assert.Empty(t, items)

	// The order shows up in the user's history.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	decodeBody(t, resp, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestProfilesDoNotShareCollections(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)
	tokenA := registerAndLogin(t, app, "isolation-a")
	tokenB := registerAndLogin(t, app, "isolation-b")

	product := createProduct(t, app, tokenA, map[string]interface{}{
		"name": "Shared Shelf", "price": 75.0, "stock": 3,
	})

	resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/items",
		map[string]interface{}{"product": product, "quantity": 1}, tokenA)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart", nil, tokenB)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var items []models.CartItem
	decodeBody(t, resp, &items)
	assert.Empty(t, items)
}

func TestOrderOwnershipReadsAsNotFound(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)
	tokenA := registerAndLogin(t, app, "owner-a")
	tokenB := registerAndLogin(t, app, "owner-b")

	product := createProduct(t, app, tokenA, map[string]interface{}{
		"name": "Private Order Item", "price": 10.0, "stock": 5,
	})

	resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/items",
		map[string]interface{}{"product": product, "quantity": 1}, tokenA)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", nil, tokenA)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, nil, tokenB)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, nil, tokenA)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestProductManagementLifecycle(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)
	token := registerAndLogin(t, app, "manager")

	created := createProduct(t, app, token, map[string]interface{}{
		"name":        "Smartphone",
		"description": "Latest model smartphone",
		"price":       799.99,
		"stock":       50,
	})
	assert.Equal(t, models.StatusActive, created.Status)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/products/"+string(created.ID), nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Product
	decodeBody(t, resp, &fetched)
	assert.Equal(t, created.ID, fetched.ID)

	resp = doJSON(t, app, http.MethodPut, "/api/v1/products/"+string(created.ID), map[string]interface{}{
		"name":        "Smartphone Pro",
		"description": "Latest model smartphone pro edition",
		"price":       899.99,
		"stock":       45,
	}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Product
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Smartphone Pro", updated.Name)

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/products/"+string(created.ID), nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/"+string(created.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app, err := setupApp()
	require.NoError(t, err)

	for _, path := range []string{"/api/v1/cart", "/api/v1/wishlist", "/api/v1/orders"} {
		resp := doJSON(t, app, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Unauthorized Product", "price": 100.0, "stock": 10,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
