// internal/models/order_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusDelivered, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		{OrderStatusCancelled, OrderStatusDelivered, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusDelivered.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderItemsRoundTrip(t *testing.T) {
	variantID := uuid.New()
	items := OrderItems{
		Products: []OrderLine{
			{
				ProductID:    uuid.New(),
				ProductName:  "Amber Perfume",
				UnitPrice:    decimal.NewFromInt(1200),
				Quantity:     2,
				VariantID:    &variantID,
				VariantLabel: "Scent: Amber",
			},
		},
		Delivery: DeliverySnapshot{
			Address: "12 Uhuru Street",
			City:    "Dar es Salaam",
			Notes:   "Call on arrival",
		},
	}

	value, err := items.Value()
	require.NoError(t, err)

	var decoded OrderItems
	require.NoError(t, decoded.Scan(value))

	require.Len(t, decoded.Products, 1)
	assert.Equal(t, "Amber Perfume", decoded.Products[0].ProductName)
	assert.Equal(t, variantID, *decoded.Products[0].VariantID)
	assert.True(t, decoded.Products[0].UnitPrice.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "Call on arrival", decoded.Delivery.Notes)
}

func TestOrderItemsSubtotal(t *testing.T) {
	items := OrderItems{
		Products: []OrderLine{
			{UnitPrice: decimal.NewFromInt(500), Quantity: 2},
			{UnitPrice: decimal.NewFromInt(1200), Quantity: 1},
		},
	}

	assert.True(t, items.Subtotal().Equal(decimal.NewFromInt(2200)))
}
