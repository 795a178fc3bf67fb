// internal/handlers/checkout_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shangabeauty/shop-backend/internal/cart"
	"github.com/shangabeauty/shop-backend/internal/models"
	"github.com/shangabeauty/shop-backend/internal/services"
)

type stubOrderStore struct {
	failWith error
}

func (s *stubOrderStore) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	order.ID = uuid.New()
	return order, nil
}

// checkoutFixture wires the checkout route against an in-memory cart store
// and a stubbed order store, with the session middleware replaced by a fixed
// session ID.
func checkoutFixture(t *testing.T, store *stubOrderStore, sessionID string) (*gin.Engine, cart.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	carts := cart.NewMemoryStore(time.Hour)
	checkoutService := services.NewCheckoutService(store, carts)
	handler := NewCheckoutHandler(checkoutService, nil)

	r := gin.New()
	r.POST("/checkout", func(c *gin.Context) {
		c.Set("cart_session_id", sessionID)
		c.Next()
	}, handler.Submit)

	return r, carts
}

func postCheckout(r *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	jsonData, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/checkout", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func deliveryBody() map[string]interface{} {
	return map[string]interface{}{
		"full_name": "Amina Hassan",
		"phone":     "+255 712 345 678",
		"address":   "12 Uhuru Street",
		"city":      "Dar es Salaam",
	}
}

func seedSessionCart(t *testing.T, carts cart.Store, sessionID string) {
	t.Helper()

	c := cart.Cart{}.Add(cart.Line{
		ProductID:   uuid.New(),
		ProductName: "Jasmine Soap",
		UnitPrice:   decimal.NewFromInt(500),
		Quantity:    2,
	})
	require.NoError(t, carts.Save(context.Background(), sessionID, c))
}

func TestSubmitEmptyCartReturnsValidationError(t *testing.T) {
	r, _ := checkoutFixture(t, &stubOrderStore{}, "session-1")

	w := postCheckout(r, deliveryBody())

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response["success"].(bool))

	apiError := response["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", apiError["code"])
}

func TestSubmitMissingDeliveryFields(t *testing.T) {
	r, carts := checkoutFixture(t, &stubOrderStore{}, "session-2")
	seedSessionCart(t, carts, "session-2")

	body := deliveryBody()
	delete(body, "city")

	w := postCheckout(r, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitSuccess(t *testing.T) {
	r, carts := checkoutFixture(t, &stubOrderStore{}, "session-3")
	seedSessionCart(t, carts, "session-3")

	w := postCheckout(r, deliveryBody())

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response["success"].(bool))

	data := response["data"].(map[string]interface{})
	order := data["order"].(map[string]interface{})
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, "Amina Hassan", order["customer_name"])

	// Cart is gone after a successful submission
	after, err := carts.Get(context.Background(), "session-3")
	require.NoError(t, err)
	assert.True(t, after.IsEmpty())
}

func TestSubmitOutOfStockReturnsConflict(t *testing.T) {
	store := &stubOrderStore{failWith: &services.OutOfStockError{
		Shortages: []services.StockShortage{
			{ProductID: uuid.New(), VariantID: uuid.New(), Requested: 3, Available: 1},
		},
	}}
	r, carts := checkoutFixture(t, store, "session-4")
	seedSessionCart(t, carts, "session-4")

	w := postCheckout(r, deliveryBody())

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	apiError := response["error"].(map[string]interface{})
	assert.Equal(t, "OUT_OF_STOCK", apiError["code"])

	// Cart survives so the customer can adjust quantities
	after, err := carts.Get(context.Background(), "session-4")
	require.NoError(t, err)
	assert.False(t, after.IsEmpty())
}

func TestSubmitPersistenceFailureKeepsCart(t *testing.T) {
	store := &stubOrderStore{failWith: errors.New("connection refused")}
	r, carts := checkoutFixture(t, store, "session-5")
	seedSessionCart(t, carts, "session-5")

	w := postCheckout(r, deliveryBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	after, err := carts.Get(context.Background(), "session-5")
	require.NoError(t, err)
	assert.False(t, after.IsEmpty())
}
