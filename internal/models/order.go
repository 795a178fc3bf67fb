// internal/models/order.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is an immutable, self-contained record of one successful checkout.
// Line items and delivery details are embedded as a JSONB snapshot so that
// later catalog edits or deletions cannot alter past orders. Only Status is
// mutable after creation.
type Order struct {
	BaseModel
	CustomerName  string          `json:"customer_name" gorm:"size:255;not null"`
	CustomerPhone string          `json:"customer_phone" gorm:"size:32;not null"`
	CustomerEmail string          `json:"customer_email" gorm:"size:255"`
	Items         OrderItems      `json:"items" gorm:"type:jsonb;not null"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	Status        OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
}

// OrderItems is the embedded checkout snapshot: the cart lines as they were
// at submission time plus the delivery details.
type OrderItems struct {
	Products []OrderLine      `json:"products"`
	Delivery DeliverySnapshot `json:"delivery"`
}

// OrderLine is a denormalized copy of one cart line. It holds values, not
// references: unit price is the retail price at add-to-cart time.
type OrderLine struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImg   string          `json:"product_img,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	VariantID    *uuid.UUID      `json:"variant_id,omitempty"`
	VariantLabel string          `json:"variant_label,omitempty"`
}

type DeliverySnapshot struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Notes   string `json:"notes,omitempty"`
}

func (i OrderItems) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*i = OrderItems{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("order items: expected []byte from database")
	}

	return json.Unmarshal(bytes, i)
}

// Subtotal folds unit price times quantity over the snapshot lines.
func (i OrderItems) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range i.Products {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
