// internal/cart/store.go
package cart

import (
	"context"
	"time"
)

// Store keeps one cart per browsing session. Carts are local to the session
// lifetime: they expire with the session TTL and are dropped on a successful
// checkout. There is no cross-device sync.
type Store interface {
	Get(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, c Cart) error
	Clear(ctx context.Context, sessionID string) error
}

// DefaultTTL is how long an idle session keeps its cart.
const DefaultTTL = 24 * time.Hour
