// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shangabeauty/shop-backend/internal/models"
	"github.com/shangabeauty/shop-backend/internal/utils"
)

// CatalogService is the source of truth for products, prices and per-variant
// stock. All writes go through here; carts only ever hold copies.
type CatalogService struct {
	db *gorm.DB
}

type VariantForm struct {
	Name  string `json:"name" validate:"required,variant_axis"`
	Value string `json:"value" validate:"required,max=100"`
	Stock int    `json:"stock" validate:"min=0"`
}

type ProductForm struct {
	ID             *uuid.UUID          `json:"id,omitempty"`
	Title          string              `json:"title" validate:"required,max=255"`
	Description    string              `json:"description"`
	PriceRetail    decimal.Decimal     `json:"price_retail"`
	PriceWholesale decimal.NullDecimal `json:"price_wholesale"`
	CostPrice      decimal.NullDecimal `json:"cost_price"`
	Category       string              `json:"category" validate:"required,product_category"`
	Images         []string            `json:"images,omitempty"`
	IsActive       *bool               `json:"is_active,omitempty"`
	Variants       []VariantForm       `json:"variants" validate:"dive"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// validate runs struct validation plus the money checks the validator tags
// cannot express: all price fields must be non-negative.
func (f *ProductForm) validate() error {
	f.Title = strings.TrimSpace(f.Title)

	if err := utils.ValidateStruct(f); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if f.PriceRetail.IsNegative() {
		return errors.New("validation failed: retail price must not be negative")
	}
	if f.PriceWholesale.Valid && f.PriceWholesale.Decimal.IsNegative() {
		return errors.New("validation failed: wholesale price must not be negative")
	}
	if f.CostPrice.Valid && f.CostPrice.Decimal.IsNegative() {
		return errors.New("validation failed: cost price must not be negative")
	}

	return nil
}

// ListActiveProducts returns the storefront catalog: active products with
// embedded variants, newest first.
func (s *CatalogService) ListActiveProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("is_active = ?", true).
		Preload("Variants").
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, nil
}

func (s *CatalogService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Variants").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}

// SearchProducts is the admin listing: no is_active filter, optional
// category/status/text filters, paginated.
func (s *CatalogService) SearchProducts(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Variants")

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Status == "active" {
		query = query.Where("is_active = ?", true)
	} else if params.Status == "inactive" {
		query = query.Where("is_active = ?", false)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "title", "price_retail", "category"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// UpsertProduct creates the product when the form carries no id, otherwise
// updates only the submitted fields. Variants travel separately through
// ReplaceVariants.
func (s *CatalogService) UpsertProduct(form *ProductForm) (*models.Product, error) {
	if err := form.validate(); err != nil {
		return nil, err
	}

	if form.ID == nil {
		product := &models.Product{
			Title:          form.Title,
			Description:    form.Description,
			PriceRetail:    form.PriceRetail,
			PriceWholesale: form.PriceWholesale,
			CostPrice:      form.CostPrice,
			Category:       models.ProductCategory(form.Category),
			Images:         pq.StringArray(form.Images),
			IsActive:       true,
		}
		if form.IsActive != nil {
			product.IsActive = *form.IsActive
		}

		if err := s.db.Create(product).Error; err != nil {
			return nil, fmt.Errorf("failed to create product: %w", err)
		}
		return product, nil
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", *form.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"title":           form.Title,
		"description":     form.Description,
		"price_retail":    form.PriceRetail,
		"price_wholesale": form.PriceWholesale,
		"cost_price":      form.CostPrice,
		"category":        form.Category,
	}
	if form.Images != nil {
		updates["images"] = pq.StringArray(form.Images)
	}
	if form.IsActive != nil {
		updates["is_active"] = *form.IsActive
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if err := s.db.Preload("Variants").First(&product, "id = ?", product.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}
	return &product, nil
}

// ReplaceVariants atomically swaps a product's variant set: delete all, then
// insert the submitted list. Duplicate (name, value) pairs collapse
// last-write-wins before the insert.
func (s *CatalogService) ReplaceVariants(productID uuid.UUID, forms []VariantForm) ([]models.Variant, error) {
	for i := range forms {
		forms[i].Value = strings.TrimSpace(forms[i].Value)
		if err := utils.ValidateStruct(&forms[i]); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
	}

	var variants []models.Variant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("product not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Where("product_id = ?", productID).Delete(&models.Variant{}).Error; err != nil {
			return fmt.Errorf("failed to delete variants: %w", err)
		}

		for _, form := range dedupeVariants(forms) {
			variants = append(variants, models.Variant{
				ProductID: productID,
				Name:      models.VariantAxis(form.Name),
				Value:     form.Value,
				Stock:     form.Stock,
			})
		}

		if len(variants) == 0 {
			return nil
		}

		if err := tx.Create(&variants).Error; err != nil {
			return fmt.Errorf("failed to insert variants: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return variants, nil
}

// DeleteProduct removes the product and cascades to its variants.
func (s *CatalogService) DeleteProduct(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("product not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.Variant{}).Error; err != nil {
			return fmt.Errorf("failed to delete variants: %w", err)
		}

		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

// GetVariant resolves a variant within its owning product, used when a
// customer picks a variant while adding to cart.
func (s *CatalogService) GetVariant(productID, variantID uuid.UUID) (*models.Variant, error) {
	var variant models.Variant
	if err := s.db.First(&variant, "id = ? AND product_id = ?", variantID, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("variant not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &variant, nil
}

// dedupeVariants keeps the last occurrence of each (name, value) pair,
// preserving the order of first appearance.
func dedupeVariants(forms []VariantForm) []VariantForm {
	type key struct{ name, value string }

	index := make(map[key]int)
	var out []VariantForm
	for _, form := range forms {
		k := key{form.Name, form.Value}
		if at, seen := index[k]; seen {
			out[at] = form
			continue
		}
		index[k] = len(out)
		out = append(out, form)
	}
	return out
}
