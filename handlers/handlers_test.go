package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecorecycle_backend/internal/events"
	"ecorecycle_backend/internal/points"
	"ecorecycle_backend/internal/repository"
	"ecorecycle_backend/internal/service/catalog"
	"ecorecycle_backend/internal/service/collection"
	"ecorecycle_backend/internal/service/dashboard"
	"ecorecycle_backend/internal/service/order"
	"ecorecycle_backend/internal/testdb"
	"ecorecycle_backend/internal/ws"
	"ecorecycle_backend/middleware"
	"ecorecycle_backend/models"
	"ecorecycle_backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const missingID = "6f1c2a4e-8b7d-4c3e-9a10-2b3c4d5e6f70"

type testServer struct {
	app      *fiber.App
	jwt      *utils.JWTManager
	users    repository.UserRepository
	listings repository.ListingRepository
	orders   repository.OrderRepository
	products repository.ProductRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testdb.New(t)

	s := &testServer{
		jwt:      utils.NewJWTManager("test-secret", time.Hour),
		users:    repository.NewUserRepository(db),
		listings: repository.NewListingRepository(db),
		orders:   repository.NewOrderRepository(db),
		products: repository.NewProductRepository(db),
	}
	collections := repository.NewCollectionRepository(db)
	catalogService := catalog.NewService(s.products, s.listings, s.users)

	s.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	SetupRoutes(s.app, Handlers{
		Auth:          NewAuthHandler(s.users, s.jwt),
		User:          NewUserHandler(s.users),
		Order:         NewOrderHandler(order.NewService(s.orders, s.listings, points.NewDistributor(s.users), events.Nop)),
		Dashboard:     NewDashboardHandler(dashboard.NewService(s.users, collections, s.orders, s.listings, s.products)),
		Product:       NewProductHandler(catalogService),
		Collection:    NewCollectionHandler(collection.NewService(collections)),
		Cart:          NewCartHandler(),
		Upload:        NewUploadHandler(t.TempDir()),
		Notifications: NewNotificationHandler(ws.NewHub()),
	}, s.jwt.AuthMiddleware())
	middleware.SetupErrorHandler(s.app)
	return s
}

func (s *testServer) user(t *testing.T, email string, role models.Role) (models.User, string) {
	t.Helper()
	u := models.User{Name: email, Email: email, Password: "x", UserType: role}
	require.NoError(t, s.users.Create(context.Background(), &u))
	token, err := s.jwt.Generate(u.ID, role)
	require.NoError(t, err)
	return u, token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestHealthAndNotFound(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, raw := s.do(t, http.MethodGet, "/api/nothing", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not Found", decode(t, raw)["error"])
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	reg := RegisterRequest{Name: "Mina", Email: "Mina@Example.com", Password: "recycle-123", UserType: "BUSINESS"}
	status, raw := s.do(t, http.MethodPost, "/api/auth/register", "", reg)
	require.Equal(t, http.StatusCreated, status, string(raw))
	body := decode(t, raw)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "business", body["user"].(map[string]interface{})["userType"])
	assert.NotContains(t, string(raw), "password")

	status, _ = s.do(t, http.MethodPost, "/api/auth/register", "", reg)
	assert.Equal(t, http.StatusConflict, status)

	status, raw = s.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "mina@example.com", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", decode(t, raw)["error"])

	status, raw = s.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{Email: "mina@example.com", Password: "recycle-123"})
	require.Equal(t, http.StatusOK, status)
	token, _ := decode(t, raw)["token"].(string)
	require.NotEmpty(t, token)

	status, raw = s.do(t, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Mina", decode(t, raw)["user"].(map[string]interface{})["name"])
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	status, raw := s.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{Name: "x", Email: "not-an-email", Password: "short"})
	require.Equal(t, http.StatusBadRequest, status)
	body := decode(t, raw)
	assert.Equal(t, "Validation failed", body["error"])
	details := body["details"].([]interface{})
	fields := []string{}
	for _, d := range details {
		fields = append(fields, d.(map[string]interface{})["field"].(string))
	}
	assert.ElementsMatch(t, []string{"email", "password"}, fields)

	status, _ = s.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{Name: "x", Email: "a@b.co", Password: "long-enough", UserType: "admin"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/orders", "/api/dashboard", "/api/collections", "/api/me"} {
		status, raw := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.NotEmpty(t, decode(t, raw)["error"])
	}
}

func TestOrderLifecycle(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	owner, ownerToken := s.user(t, "owner@example.com", models.RoleCollector)
	_, rivalToken := s.user(t, "rival@example.com", models.RoleCollector)
	biz, bizToken := s.user(t, "biz@example.com", models.RoleBusiness)
	individual, _ := s.user(t, "ind@example.com", models.RoleIndividual)

	listing := models.Listing{UserID: owner.ID, Title: "HDPE flakes", WasteType: "plastic", Price: 40}
	require.NoError(t, s.listings.Create(ctx, &listing))

	status, raw := s.do(t, http.MethodPost, "/api/orders", bizToken, CreateOrderRequest{ListingID: "abc123", Quantity: 50})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid listing ID format", decode(t, raw)["error"])
	n, err := s.orders.CountByBuyer(ctx, biz.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	status, _ = s.do(t, http.MethodPost, "/api/orders", bizToken, CreateOrderRequest{ListingID: missingID})
	assert.Equal(t, http.StatusNotFound, status)

	status, raw = s.do(t, http.MethodPost, "/api/orders", bizToken, CreateOrderRequest{ProductID: listing.ID, Quantity: 50, TotalPrice: 2000})
	require.Equal(t, http.StatusCreated, status, string(raw))
	placed := decode(t, raw)
	assert.Equal(t, "Order placed successfully", placed["message"])
	created := placed["order"].(map[string]interface{})
	assert.Equal(t, "PENDING", created["status"])
	assert.Equal(t, biz.ID, created["buyerId"])
	orderID := created["id"].(string)

	credited, err := s.users.GetByID(ctx, individual.ID)
	require.NoError(t, err)
	assert.Equal(t, points.Calculate(50), credited.Points)

	status, raw = s.do(t, http.MethodPatch, "/api/orders/"+orderID, rivalToken, UpdateOrderRequest{Status: "ACCEPTED"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.NotEmpty(t, decode(t, raw)["error"])
	status, _ = s.do(t, http.MethodPatch, "/api/orders/"+orderID, rivalToken, UpdateOrderRequest{Status: "LOST"})
	assert.Equal(t, http.StatusForbidden, status)

	status, first := s.do(t, http.MethodGet, "/api/orders/"+orderID, bizToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "PENDING", decode(t, first)["order"].(map[string]interface{})["status"])
	_, second := s.do(t, http.MethodGet, "/api/orders/"+orderID, bizToken, nil)
	assert.JSONEq(t, string(first), string(second))

	status, _ = s.do(t, http.MethodPatch, "/api/orders/"+orderID, ownerToken, UpdateOrderRequest{Status: "LOST"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = s.do(t, http.MethodPatch, "/api/orders/"+orderID, ownerToken, UpdateOrderRequest{Status: "accepted"})
	require.Equal(t, http.StatusOK, status)
	accepted := decode(t, raw)
	assert.Equal(t, "Order status updated successfully", accepted["message"])
	assert.Equal(t, "ACCEPTED", accepted["order"].(map[string]interface{})["status"])

	status, _ = s.do(t, http.MethodGet, "/api/orders/"+missingID, bizToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, raw = s.do(t, http.MethodGet, "/api/orders", ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	list := decode(t, raw)
	assert.EqualValues(t, 1, list["totalCount"])

	status, raw = s.do(t, http.MethodGet, "/api/orders", rivalToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{}, decode(t, raw)["orders"])
}

func TestGetProduct(t *testing.T) {
	s := newTestServer(t)
	seller, _ := s.user(t, "seller@example.com", models.RoleCollector)

	p := models.Product{SellerID: seller.ID, Name: "Tyre planter", Price: 1500, Category: "home", InStock: true}
	require.NoError(t, s.products.Create(context.Background(), &p))

	status, _ := s.do(t, http.MethodGet, "/api/products/create", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = s.do(t, http.MethodGet, "/api/products/"+missingID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, raw := s.do(t, http.MethodGet, "/api/products/"+p.ID, "", nil)
	require.Equal(t, http.StatusOK, status)
	product := decode(t, raw)["product"].(map[string]interface{})
	assert.Equal(t, "Tyre planter", product["name"])
	seller2 := product["seller"].(map[string]interface{})
	assert.Equal(t, seller.ID, seller2["id"])
	assert.Equal(t, "collector", seller2["userType"])

	status, raw = s.do(t, http.MethodGet, "/api/products?category=home&sort=price-low&limit=5", "", nil)
	require.Equal(t, http.StatusOK, status)
	page := decode(t, raw)
	assert.Len(t, page["products"], 1)
	assert.EqualValues(t, 5, page["pagination"].(map[string]interface{})["perPage"])

	status, _ = s.do(t, http.MethodGet, "/api/products?sort=cheap", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCreateProductAndListing(t *testing.T) {
	s := newTestServer(t)
	_, collectorToken := s.user(t, "c@example.com", models.RoleCollector)
	_, individualToken := s.user(t, "i@example.com", models.RoleIndividual)

	input := catalog.ProductInput{Name: "Bottle lamp", Price: 800, Category: "home", Quantity: 3}
	status, _ := s.do(t, http.MethodPost, "/api/products", individualToken, input)
	assert.Equal(t, http.StatusForbidden, status)

	status, raw := s.do(t, http.MethodPost, "/api/products", collectorToken, input)
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.Equal(t, true, decode(t, raw)["product"].(map[string]interface{})["inStock"])

	status, _ = s.do(t, http.MethodPost, "/api/products", collectorToken, catalog.ProductInput{Name: "Free", Category: "home"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = s.do(t, http.MethodPost, "/api/listings", collectorToken, catalog.ListingInput{Title: "Aluminium cans", WasteType: "metal", Price: 90})
	require.Equal(t, http.StatusCreated, status, string(raw))
	listingID := decode(t, raw)["listing"].(map[string]interface{})["id"].(string)

	status, _ = s.do(t, http.MethodGet, "/api/listings/"+listingID, "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, raw = s.do(t, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode(t, raw)["categories"], 5)
}

func TestCollections(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user(t, "i@example.com", models.RoleIndividual)
	_, otherToken := s.user(t, "o@example.com", models.RoleIndividual)

	input := collection.ScheduleInput{Type: "one-time", Date: time.Now().Add(48 * time.Hour), Address: "4 Lake View", WasteType: "paper", Quantity: 3}
	status, raw := s.do(t, http.MethodPost, "/api/collections", token, input)
	require.Equal(t, http.StatusCreated, status, string(raw))
	id := decode(t, raw)["collection"].(map[string]interface{})["id"].(string)

	status, raw = s.do(t, http.MethodGet, "/api/collections?view=upcoming", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode(t, raw)["collections"], 1)

	status, _ = s.do(t, http.MethodGet, "/api/collections?view=soon", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPatch, "/api/collections/"+id, token, UpdateCollectionRequest{Status: "COMPLETED"})
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = s.do(t, http.MethodPatch, "/api/collections/"+id, otherToken, UpdateCollectionRequest{Status: "CANCELLED"})
	assert.Equal(t, http.StatusForbidden, status)

	status, raw = s.do(t, http.MethodPatch, "/api/collections/"+id, token, UpdateCollectionRequest{Status: "CANCELLED"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "CANCELLED", decode(t, raw)["collection"].(map[string]interface{})["status"])

	status, _ = s.do(t, http.MethodPatch, "/api/collections/"+id, token, UpdateCollectionRequest{Status: "CANCELLED"})
	assert.Equal(t, http.StatusConflict, status)
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user(t, "i@example.com", models.RoleIndividual)
	_, collectorToken := s.user(t, "c@example.com", models.RoleCollector)

	status, raw := s.do(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, status)
	body := decode(t, raw)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 0, body["points"])
	assert.Equal(t, []interface{}{}, body["recentActivity"])
	assert.NotContains(t, body, "totalRevenue")

	status, raw = s.do(t, http.MethodGet, "/api/dashboard", collectorToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, decode(t, raw), "totalRevenue")
}

func TestCartQuote(t *testing.T) {
	s := newTestServer(t)

	req := map[string]interface{}{
		"items": []map[string]interface{}{
			{"productId": "a", "name": "Bag", "price": 2000, "quantity": 1},
			{"productId": "b", "name": "Lamp", "price": 4000, "quantity": 1},
		},
	}
	status, raw := s.do(t, http.MethodPost, "/api/cart/quote", "", req)
	require.Equal(t, http.StatusOK, status, string(raw))
	summary := decode(t, raw)["summary"].(map[string]interface{})
	assert.EqualValues(t, 6000, summary["subtotal"])
	assert.EqualValues(t, 0, summary["shipping"])
	assert.EqualValues(t, 6000, summary["total"])

	bad := map[string]interface{}{"items": []map[string]interface{}{{"productId": "a", "price": -5}}}
	status, _ = s.do(t, http.MethodPost, "/api/cart/quote", "", bad)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUploadRequiresImage(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user(t, "c@example.com", models.RoleCollector)

	status, raw := s.do(t, http.MethodPost, "/api/uploads/image", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Image file is required", decode(t, raw)["error"])
}

func TestNotificationsRequireUpgrade(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user(t, "c@example.com", models.RoleCollector)

	status, _ := s.do(t, http.MethodGet, "/ws/notifications", token, nil)
	assert.Equal(t, http.StatusUpgradeRequired, status)
}
