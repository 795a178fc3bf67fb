// internal/services/checkout_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shangabeauty/shop-backend/internal/cart"
	"github.com/shangabeauty/shop-backend/internal/models"
	"github.com/shangabeauty/shop-backend/internal/utils"
)

// CheckoutStore persists a finished checkout. The production implementation
// is OrderService, which reserves variant stock and inserts the order in one
// transaction.
type CheckoutStore interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
}

// ErrEmptyCart fails a submission before any persistence call is made.
var ErrEmptyCart = errors.New("cart is empty")

// StockShortage reports one cart line that could not be fulfilled.
type StockShortage struct {
	ProductID uuid.UUID `json:"product_id"`
	VariantID uuid.UUID `json:"variant_id"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

type OutOfStockError struct {
	Shortages []StockShortage
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%d cart line(s) exceed available stock", len(e.Shortages))
}

type DeliveryInfo struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"required,phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	Notes    string `json:"notes"`
}

func (d *DeliveryInfo) normalize() {
	d.FullName = strings.TrimSpace(d.FullName)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.TrimSpace(d.Email)
	d.Address = strings.TrimSpace(d.Address)
	d.City = strings.TrimSpace(d.City)
	d.Notes = strings.TrimSpace(d.Notes)
}

// CheckoutService converts a session's cart into one immutable order.
// Submission is at-least-once: a failed persistence leaves the cart exactly
// as it was, so re-invoking Submit with the same inputs retries cleanly.
type CheckoutService struct {
	store CheckoutStore
	carts cart.Store
}

func NewCheckoutService(store CheckoutStore, carts cart.Store) *CheckoutService {
	return &CheckoutService{
		store: store,
		carts: carts,
	}
}

// Submit validates the delivery details and cart, persists one pending order
// with the full line and delivery snapshot embedded, and clears the cart
// only after the order is durably stored.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, info *DeliveryInfo) (*models.Order, error) {
	info.normalize()
	if err := utils.ValidateStruct(info); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		CustomerName:  info.FullName,
		CustomerPhone: info.Phone,
		CustomerEmail: info.Email,
		Items: models.OrderItems{
			Products: toOrderLines(c.Lines),
			Delivery: models.DeliverySnapshot{
				Address: info.Address,
				City:    info.City,
				Notes:   info.Notes,
			},
		},
		TotalAmount: c.Subtotal(),
		Status:      models.OrderStatusPending,
	}

	created, err := s.store.CreateOrder(ctx, order)
	if err != nil {
		// Cart stays untouched so the customer can resubmit.
		return nil, err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		logrus.WithError(err).WithField("order_id", created.ID).
			Warn("Order created but cart could not be cleared")
	}

	return created, nil
}

func toOrderLines(lines []cart.Line) []models.OrderLine {
	out := make([]models.OrderLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, models.OrderLine{
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			ProductImg:   l.ProductImg,
			UnitPrice:    l.UnitPrice,
			Quantity:     l.Quantity,
			VariantID:    l.VariantID,
			VariantLabel: l.VariantLabel,
		})
	}
	return out
}
