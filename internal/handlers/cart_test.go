// internal/handlers/cart_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
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
	"github.com/shangabeauty/shop-backend/internal/services"
)

// cartFixture wires the cart routes against an in-memory store. AddItem needs
// the live catalog and is covered elsewhere; these routes only touch the
// session store.
func cartFixture(t *testing.T, sessionID string) (*gin.Engine, cart.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	carts := cart.NewMemoryStore(time.Hour)
	cartService := services.NewCartService(nil, carts)
	handler := NewCartHandler(cartService)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("cart_session_id", sessionID)
		c.Next()
	})
	r.GET("/cart", handler.GetCart)
	r.DELETE("/cart", handler.ClearCart)
	r.PUT("/cart/items/:productId", handler.UpdateItem)
	r.DELETE("/cart/items/:productId", handler.RemoveItem)

	return r, carts
}

func cartData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response["success"].(bool))
	return response["data"].(map[string]interface{})
}

func TestGetCartStartsEmpty(t *testing.T) {
	r, _ := cartFixture(t, "fresh-session")

	req, _ := http.NewRequest("GET", "/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := cartData(t, w)
	assert.Equal(t, "0", data["subtotal"])
	assert.Empty(t, data["items"])
}

func TestUpdateItemQuantity(t *testing.T) {
	r, carts := cartFixture(t, "session-u")
	productID := uuid.New()

	c := cart.Cart{}.Add(cart.Line{
		ProductID:   productID,
		ProductName: "Rose Lotion",
		UnitPrice:   decimal.NewFromInt(750),
		Quantity:    1,
	})
	require.NoError(t, carts.Save(context.Background(), "session-u", c))

	body, _ := json.Marshal(map[string]interface{}{"quantity": 3})
	req, _ := http.NewRequest("PUT", "/cart/items/"+productID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := cartData(t, w)
	assert.Equal(t, "2250", data["subtotal"])
}

func TestRemoveItem(t *testing.T) {
	r, carts := cartFixture(t, "session-r")
	productID := uuid.New()

	c := cart.Cart{}.Add(cart.Line{
		ProductID: productID,
		UnitPrice: decimal.NewFromInt(500),
		Quantity:  2,
	})
	require.NoError(t, carts.Save(context.Background(), "session-r", c))

	req, _ := http.NewRequest("DELETE", "/cart/items/"+productID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := cartData(t, w)
	assert.Empty(t, data["items"])
}

func TestRemoveItemBadProductID(t *testing.T) {
	r, _ := cartFixture(t, "session-b")

	req, _ := http.NewRequest("DELETE", "/cart/items/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClearCart(t *testing.T) {
	r, carts := cartFixture(t, "session-c")

	c := cart.Cart{}.Add(cart.Line{
		ProductID: uuid.New(),
		UnitPrice: decimal.NewFromInt(500),
		Quantity:  2,
	})
	require.NoError(t, carts.Save(context.Background(), "session-c", c))

	req, _ := http.NewRequest("DELETE", "/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	after, err := carts.Get(context.Background(), "session-c")
	require.NoError(t, err)
	assert.True(t, after.IsEmpty())
}
