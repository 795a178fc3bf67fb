// internal/cart/cart.go
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is a denormalized snapshot taken at add-to-cart time. Price and stock
// changes after adding do not touch it; the checkout pipeline re-validates
// against the live catalog.
type Line struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImg   string          `json:"product_img,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	VariantID    *uuid.UUID      `json:"variant_id,omitempty"`
	VariantLabel string          `json:"variant_label,omitempty"`
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// sameSelection is the merge key: same product and same variant choice.
func (l Line) sameSelection(productID uuid.UUID, variantID *uuid.UUID) bool {
	if l.ProductID != productID {
		return false
	}
	if l.VariantID == nil || variantID == nil {
		return l.VariantID == nil && variantID == nil
	}
	return *l.VariantID == *variantID
}

// Cart is an ordered sequence of lines scoped to one browsing session. All
// operations are pure: they return a new Cart and leave the receiver alone,
// so a failed checkout can never half-mutate a session's cart.
type Cart struct {
	Lines []Line `json:"lines"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Subtotal folds unit price times quantity over the lines.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Total())
	}
	return total
}

// Add merges the given line into the cart. A line with the same product and
// variant selection has its quantity increased; otherwise the line is
// appended. Non-positive quantities are rejected as a no-op.
func (c Cart) Add(line Line) Cart {
	if line.Quantity <= 0 {
		return c
	}

	next := c.clone()
	for i, existing := range next.Lines {
		if existing.sameSelection(line.ProductID, line.VariantID) {
			next.Lines[i].Quantity += line.Quantity
			return next
		}
	}

	next.Lines = append(next.Lines, line)
	return next
}

// UpdateQuantity sets the quantity of a matching line. A quantity of zero or
// less removes the line.
func (c Cart) UpdateQuantity(productID uuid.UUID, variantID *uuid.UUID, quantity int) Cart {
	if quantity <= 0 {
		return c.Remove(productID, variantID)
	}

	next := c.clone()
	for i, existing := range next.Lines {
		if existing.sameSelection(productID, variantID) {
			next.Lines[i].Quantity = quantity
			break
		}
	}
	return next
}

// Remove drops a matching line unconditionally. Removing an absent line is a
// no-op.
func (c Cart) Remove(productID uuid.UUID, variantID *uuid.UUID) Cart {
	next := Cart{}
	for _, existing := range c.Lines {
		if existing.sameSelection(productID, variantID) {
			continue
		}
		next.Lines = append(next.Lines, existing)
	}
	return next
}

func (c Cart) clone() Cart {
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}
