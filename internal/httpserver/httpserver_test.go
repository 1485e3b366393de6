package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beggab/storechina/internal/models"
	"github.com/beggab/storechina/internal/repo"
	"github.com/beggab/storechina/internal/service"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return repo.New(db)
}

func doJSONRequest(t *testing.T, e *echo.Echo, method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestUpsertCustomerHandler(t *testing.T) {
	r := newTestRepo(t)
	h := &CustomerHTTP{Svc: &service.CustomerService{Repo: r}}
	e := echo.New()

	payload := map[string]any{
		"telegram_id": 42,
		"first_name":  "Ivan",
		"username":    "ivan_p",
	}
	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/v1/customers", payload)
	require.NoError(t, h.Upsert(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(42), resp.TelegramID)
	require.Equal(t, "Ivan", resp.FullName)
	require.NotZero(t, resp.ID)
}

func TestUpsertCustomerHandlerRejectsZeroID(t *testing.T) {
	h := &CustomerHTTP{Svc: &service.CustomerService{Repo: newTestRepo(t)}}
	e := echo.New()

	_, c := doJSONRequest(t, e, http.MethodPost, "/api/v1/customers", map[string]any{"first_name": "Ivan"})
	err := h.Upsert(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestAddToCartHandlerRejectsOversizedQuantity(t *testing.T) {
	h := &CartHTTP{Svc: &service.CartService{Repo: newTestRepo(t)}}
	e := echo.New()

	payload := map[string]any{
		"customer_id": 1,
		"product_id":  5,
		"quantity":    11,
	}
	_, c := doJSONRequest(t, e, http.MethodPost, "/api/v1/cart/items", payload)
	err := h.AddToCart(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestAddToCartHandlerMergesVariant(t *testing.T) {
	h := &CartHTTP{Svc: &service.CartService{Repo: newTestRepo(t)}}
	e := echo.New()

	payload := map[string]any{
		"customer_id": 1,
		"product_id":  5,
		"size":        "42",
		"quantity":    2,
	}
	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/v1/cart/items", payload)
	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, c = doJSONRequest(t, e, http.MethodPost, "/api/v1/cart/items", payload)
	require.NoError(t, h.AddToCart(c))

	var resp models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 4, resp.Quantity)
}

func TestPlaceOrderHandler(t *testing.T) {
	r := newTestRepo(t)
	h := &OrderHTTP{Svc: &service.OrderService{Repo: r}}
	e := echo.New()

	payload := map[string]any{
		"identity": map[string]any{"telegram_id": 42, "first_name": "Ivan"},
		"items": []map[string]any{
			{"name": "SmartWatch Pro", "price": 1250, "quantity": 1},
			{"name": "Portable Speaker", "price": 670, "quantity": 2},
		},
	}
	rec, c := doJSONRequest(t, e, http.MethodPost, "/api/v1/orders", payload)
	require.NoError(t, h.PlaceOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		OrderID uint `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.OrderID)

	order, err := r.OrderByID(c.Request().Context(), resp.OrderID)
	require.NoError(t, err)
	require.Equal(t, 2590.0, order.TotalAmountRUB)
	require.Len(t, order.Items, 2)
}

func TestGetOrderHandlerNotFound(t *testing.T) {
	h := &OrderHTTP{Svc: &service.OrderService{Repo: newTestRepo(t)}}
	e := echo.New()

	_, c := doJSONRequest(t, e, http.MethodGet, "/api/v1/orders/999", nil)
	c.SetParamNames("id")
	c.SetParamValues("999")

	err := h.GetOrder(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, he.Code)
}
