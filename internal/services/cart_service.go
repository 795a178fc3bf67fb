// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shangabeauty/shop-backend/internal/cart"
	"github.com/shangabeauty/shop-backend/internal/models"
	"github.com/shangabeauty/shop-backend/internal/utils"
)

// CartService binds the pure cart transformations to the session store and
// the live catalog. Adding an item copies the product's price and imagery by
// value; the cart deliberately never checks stock (the optimistic cart
// policy — overselling is caught at checkout).
type CartService struct {
	catalog *CatalogService
	carts   cart.Store
}

type AddItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity" validate:"required,min=1"`
}

type UpdateItemRequest struct {
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity"`
}

func NewCartService(catalog *CatalogService, carts cart.Store) *CartService {
	return &CartService{
		catalog: catalog,
		carts:   carts,
	}
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) (cart.Cart, error) {
	return s.carts.Get(ctx, sessionID)
}

// AddItem snapshots the product at its current retail price and merges it
// into the session's cart.
func (s *CartService) AddItem(ctx context.Context, sessionID string, req *AddItemRequest) (cart.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return cart.Cart{}, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.catalog.GetProduct(req.ProductID)
	if err != nil {
		return cart.Cart{}, err
	}

	if !product.IsActive {
		return cart.Cart{}, errors.New("product is not available")
	}

	line := cart.Line{
		ProductID:   product.ID,
		ProductName: product.Title,
		ProductImg:  product.FirstImage(),
		UnitPrice:   product.PriceRetail,
		Quantity:    req.Quantity,
	}

	if req.VariantID != nil {
		variant := findVariant(product.Variants, *req.VariantID)
		if variant == nil {
			return cart.Cart{}, errors.New("variant not found")
		}
		line.VariantID = req.VariantID
		line.VariantLabel = variant.Label()
	}

	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}

	next := c.Add(line)
	if err := s.carts.Save(ctx, sessionID, next); err != nil {
		return cart.Cart{}, fmt.Errorf("failed to save cart: %w", err)
	}

	return next, nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, req *UpdateItemRequest) (cart.Cart, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}

	next := c.UpdateQuantity(productID, req.VariantID, req.Quantity)
	if err := s.carts.Save(ctx, sessionID, next); err != nil {
		return cart.Cart{}, fmt.Errorf("failed to save cart: %w", err)
	}

	return next, nil
}

// RemoveItem drops a line; removing an absent line is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID, variantID *uuid.UUID) (cart.Cart, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return cart.Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}

	next := c.Remove(productID, variantID)
	if err := s.carts.Save(ctx, sessionID, next); err != nil {
		return cart.Cart{}, fmt.Errorf("failed to save cart: %w", err)
	}

	return next, nil
}

// ClearCart empties the session's cart.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	return s.carts.Clear(ctx, sessionID)
}

func findVariant(variants []models.Variant, id uuid.UUID) *models.Variant {
	for i := range variants {
		if variants[i].ID == id {
			return &variants[i]
		}
	}
	return nil
}
