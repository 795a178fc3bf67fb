// internal/cart/memory_test.go
package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	c := Cart{}.Add(Line{
		ProductID:   uuid.New(),
		ProductName: "Rose Lotion",
		UnitPrice:   decimal.NewFromInt(750),
		Quantity:    2,
	})

	require.NoError(t, store.Save(ctx, "session-a", c))

	loaded, err := store.Get(ctx, "session-a")
	require.NoError(t, err)
	assert.Len(t, loaded.Lines, 1)
	assert.Equal(t, "Rose Lotion", loaded.Lines[0].ProductName)
}

func TestMemoryStoreUnknownSessionIsEmpty(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	loaded, err := store.Get(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	c := Cart{}.Add(Line{
		ProductID: uuid.New(),
		UnitPrice: decimal.NewFromInt(100),
		Quantity:  1,
	})
	require.NoError(t, store.Save(ctx, "session-b", c))
	require.NoError(t, store.Clear(ctx, "session-b"))

	loaded, err := store.Get(ctx, "session-b")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestMemoryStoreExpiredSessionIsEmpty(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	c := Cart{}.Add(Line{
		ProductID: uuid.New(),
		UnitPrice: decimal.NewFromInt(100),
		Quantity:  1,
	})
	require.NoError(t, store.Save(ctx, "session-c", c))

	// Age the entry past its TTL
	store.mtx.Lock()
	store.entries["session-c"].lastSeen = time.Now().Add(-2 * time.Hour)
	store.mtx.Unlock()

	loaded, err := store.Get(ctx, "session-c")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestMemoryStoreSessionsAreIsolated(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	a := Cart{}.Add(Line{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(100), Quantity: 1})
	require.NoError(t, store.Save(ctx, "session-a", a))

	b, err := store.Get(ctx, "session-b")
	require.NoError(t, err)
	assert.True(t, b.IsEmpty())
}
