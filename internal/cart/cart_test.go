// internal/cart/cart_test.go
package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(productID uuid.UUID, variantID *uuid.UUID, price int64, qty int) Line {
	return Line{
		ProductID:   productID,
		ProductName: "Product",
		UnitPrice:   decimal.NewFromInt(price),
		Quantity:    qty,
		VariantID:   variantID,
	}
}

func TestAddMergesSameSelection(t *testing.T) {
	productID := uuid.New()
	variantID := uuid.New()

	c := Cart{}
	c = c.Add(line(productID, &variantID, 500, 2))
	c = c.Add(line(productID, &variantID, 500, 3))

	assert.Len(t, c.Lines, 1)
	assert.Equal(t, 5, c.Lines[0].Quantity)
}

func TestAddKeepsDifferentVariantsApart(t *testing.T) {
	productID := uuid.New()
	red := uuid.New()
	blue := uuid.New()

	c := Cart{}
	c = c.Add(line(productID, &red, 500, 1))
	c = c.Add(line(productID, &blue, 500, 1))
	c = c.Add(line(productID, nil, 500, 1))

	assert.Len(t, c.Lines, 3)
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	productID := uuid.New()

	c := Cart{}
	c = c.Add(line(productID, nil, 500, 0))
	c = c.Add(line(productID, nil, 500, -2))

	assert.True(t, c.IsEmpty())
}

func TestSubtotal(t *testing.T) {
	soap := uuid.New()
	perfume := uuid.New()

	c := Cart{}
	c = c.Add(line(soap, nil, 500, 2))
	c = c.Add(line(perfume, nil, 1200, 1))

	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(2200)))

	c = c.UpdateQuantity(soap, nil, 0)
	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(1200)))
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	productID := uuid.New()

	c := Cart{}
	c = c.Add(line(productID, nil, 500, 2))
	c = c.UpdateQuantity(productID, nil, 7)

	assert.Equal(t, 7, c.Lines[0].Quantity)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	productID := uuid.New()

	c := Cart{}
	c = c.Add(line(productID, nil, 500, 2))
	c = c.UpdateQuantity(productID, nil, 0)

	assert.True(t, c.IsEmpty())
}

func TestRemoveAbsentLineIsNoop(t *testing.T) {
	productID := uuid.New()

	c := Cart{}
	c = c.Add(line(productID, nil, 500, 2))
	c = c.Remove(uuid.New(), nil)

	assert.Len(t, c.Lines, 1)
}

func TestOperationsDoNotMutateReceiver(t *testing.T) {
	productID := uuid.New()

	original := Cart{}.Add(line(productID, nil, 500, 2))

	_ = original.Add(line(uuid.New(), nil, 100, 1))
	_ = original.UpdateQuantity(productID, nil, 9)
	_ = original.Remove(productID, nil)

	assert.Len(t, original.Lines, 1)
	assert.Equal(t, 2, original.Lines[0].Quantity)
}

func TestLineTotal(t *testing.T) {
	l := line(uuid.New(), nil, 350, 3)
	assert.True(t, l.Total().Equal(decimal.NewFromInt(1050)))
}
