// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Enums
type UserType string

const (
	UserTypeAdmin UserType = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type ProductCategory string

const (
	CategoryBeauty   ProductCategory = "Beauty"
	CategoryJewelry  ProductCategory = "Jewelry"
	CategoryPerfumes ProductCategory = "Perfumes"
	CategoryLotions  ProductCategory = "Lotions"
	CategoryRings    ProductCategory = "Rings"
)

func ProductCategories() []ProductCategory {
	return []ProductCategory{
		CategoryBeauty,
		CategoryJewelry,
		CategoryPerfumes,
		CategoryLotions,
		CategoryRings,
	}
}

func (c ProductCategory) Valid() bool {
	for _, known := range ProductCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// VariantAxis is the dimension a variant is defined over. Unknown axis names
// are rejected at the boundary instead of stored as free text.
type VariantAxis string

const (
	AxisColor    VariantAxis = "Color"
	AxisSize     VariantAxis = "Size"
	AxisScent    VariantAxis = "Scent"
	AxisMaterial VariantAxis = "Material"
)

func VariantAxes() []VariantAxis {
	return []VariantAxis{AxisColor, AxisSize, AxisScent, AxisMaterial}
}

func (a VariantAxis) Valid() bool {
	for _, known := range VariantAxes() {
		if a == known {
			return true
		}
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo enforces the order lifecycle: pending -> confirmed ->
// delivered, with cancellation allowed while the order is still open.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusDelivered || next == OrderStatusCancelled
	default:
		return false
	}
}
