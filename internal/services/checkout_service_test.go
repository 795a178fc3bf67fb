// internal/services/checkout_service_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shangabeauty/shop-backend/internal/cart"
	"github.com/shangabeauty/shop-backend/internal/models"
)

// fakeCheckoutStore stands in for OrderService so checkout behavior can be
// exercised without a database.
type fakeCheckoutStore struct {
	calls    int
	failWith error
	created  *models.Order
}

func (f *fakeCheckoutStore) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	order.ID = uuid.New()
	f.created = order
	return order, nil
}

func validDelivery() *DeliveryInfo {
	return &DeliveryInfo{
		FullName: "Amina Hassan",
		Phone:    "+255 712 345 678",
		Address:  "12 Uhuru Street",
		City:     "Dar es Salaam",
	}
}

func seedCart(t *testing.T, carts cart.Store, sessionID string) cart.Cart {
	t.Helper()

	c := cart.Cart{}
	c = c.Add(cart.Line{
		ProductID:   uuid.New(),
		ProductName: "Jasmine Soap",
		UnitPrice:   decimal.NewFromInt(500),
		Quantity:    2,
	})
	c = c.Add(cart.Line{
		ProductID:   uuid.New(),
		ProductName: "Oud Perfume",
		UnitPrice:   decimal.NewFromInt(1200),
		Quantity:    1,
	})
	require.NoError(t, carts.Save(context.Background(), sessionID, c))
	return c
}

func TestSubmitEmptyCart(t *testing.T) {
	store := &fakeCheckoutStore{}
	carts := cart.NewMemoryStore(time.Hour)
	svc := NewCheckoutService(store, carts)

	_, err := svc.Submit(context.Background(), "empty-session", validDelivery())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, store.calls)
}

func TestSubmitInvalidDelivery(t *testing.T) {
	store := &fakeCheckoutStore{}
	carts := cart.NewMemoryStore(time.Hour)
	svc := NewCheckoutService(store, carts)
	seedCart(t, carts, "session-x")

	info := validDelivery()
	info.Phone = "not-a-phone"

	_, err := svc.Submit(context.Background(), "session-x", info)

	assert.Error(t, err)
	assert.Zero(t, store.calls)
}

func TestSubmitCreatesPendingOrderAndClearsCart(t *testing.T) {
	store := &fakeCheckoutStore{}
	carts := cart.NewMemoryStore(time.Hour)
	svc := NewCheckoutService(store, carts)
	seeded := seedCart(t, carts, "session-y")

	order, err := svc.Submit(context.Background(), "session-y", validDelivery())
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "Amina Hassan", order.CustomerName)
	assert.Len(t, order.Items.Products, 2)
	assert.True(t, order.TotalAmount.Equal(seeded.Subtotal()))
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(2200)))
	assert.Equal(t, "Dar es Salaam", order.Items.Delivery.City)
	assert.Same(t, order, store.created)

	after, err := carts.Get(context.Background(), "session-y")
	require.NoError(t, err)
	assert.True(t, after.IsEmpty())
}

func TestSubmitFailedPersistenceLeavesCartIntact(t *testing.T) {
	store := &fakeCheckoutStore{failWith: errors.New("connection refused")}
	carts := cart.NewMemoryStore(time.Hour)
	svc := NewCheckoutService(store, carts)
	seeded := seedCart(t, carts, "session-z")

	_, err := svc.Submit(context.Background(), "session-z", validDelivery())
	require.Error(t, err)

	after, getErr := carts.Get(context.Background(), "session-z")
	require.NoError(t, getErr)
	assert.Len(t, after.Lines, len(seeded.Lines))

	// Retrying after the store recovers succeeds with the same cart
	store.failWith = nil
	order, err := svc.Submit(context.Background(), "session-z", validDelivery())
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(seeded.Subtotal()))
	assert.Equal(t, 2, store.calls)
}

func TestSubmitPropagatesOutOfStock(t *testing.T) {
	shortage := StockShortage{
		ProductID: uuid.New(),
		VariantID: uuid.New(),
		Requested: 5,
		Available: 2,
	}
	store := &fakeCheckoutStore{failWith: &OutOfStockError{Shortages: []StockShortage{shortage}}}
	carts := cart.NewMemoryStore(time.Hour)
	svc := NewCheckoutService(store, carts)
	seedCart(t, carts, "session-w")

	_, err := svc.Submit(context.Background(), "session-w", validDelivery())

	var oos *OutOfStockError
	require.ErrorAs(t, err, &oos)
	assert.Equal(t, []StockShortage{shortage}, oos.Shortages)

	// Cart survives the rejection
	after, getErr := carts.Get(context.Background(), "session-w")
	require.NoError(t, getErr)
	assert.False(t, after.IsEmpty())
}
