// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Title          string              `json:"title" gorm:"size:255;not null"`
	Description    string              `json:"description" gorm:"type:text"`
	PriceRetail    decimal.Decimal     `json:"price_retail" gorm:"type:decimal(12,2);not null"`
	PriceWholesale decimal.NullDecimal `json:"price_wholesale" gorm:"type:decimal(12,2)"`
	CostPrice      decimal.NullDecimal `json:"cost_price" gorm:"type:decimal(12,2)"`
	Category       ProductCategory     `json:"category" gorm:"type:varchar(20);index"`
	Images         pq.StringArray      `json:"images" gorm:"type:text[]"`
	IsActive       bool                `json:"is_active" gorm:"default:true;index"`

	// Relationships
	Variants []Variant `json:"variants" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// A Variant is exclusively owned by its product and carries the stock for
// one (axis, value) combination, e.g. Color=Red or Size=100ml.
type Variant struct {
	BaseModel
	ProductID uuid.UUID   `json:"product_id" gorm:"type:uuid;not null;index"`
	Name      VariantAxis `json:"name" gorm:"type:varchar(20);not null"`
	Value     string      `json:"value" gorm:"size:100;not null"`
	Stock     int         `json:"stock" gorm:"not null;default:0;check:chk_variant_stock,stock >= 0"`
}

// TotalStock sums stock across the product's variants. A product without
// variants has no tracked stock.
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

func (p *Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// Label renders the variant for cart and order snapshots, e.g. "Color: Red".
func (v *Variant) Label() string {
	return string(v.Name) + ": " + v.Value
}
