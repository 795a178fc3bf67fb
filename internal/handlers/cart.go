// internal/handlers/cart.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shangabeauty/shop-backend/internal/cart"
	"github.com/shangabeauty/shop-backend/internal/services"
	"github.com/shangabeauty/shop-backend/internal/utils"
)

// CartHandler exposes the anonymous session cart. The session ID comes from
// the CartSession middleware cookie; there is no customer login.
type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func cartResponse(c *gin.Context, current cart.Cart) {
	utils.SuccessResponse(c, gin.H{
		"items":    current.Lines,
		"subtotal": current.Subtotal(),
	})
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.InternalErrorResponse(c, "Cart session missing")
		return
	}

	current, err := h.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	cartResponse(c, current)
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.InternalErrorResponse(c, "Cart session missing")
		return
	}

	if err := h.cartService.ClearCart(c.Request.Context(), sessionID); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	cartResponse(c, cart.Cart{})
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.InternalErrorResponse(c, "Cart session missing")
		return
	}

	var req services.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	current, err := h.cartService.AddItem(c.Request.Context(), sessionID, &req)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Product")
			return
		}
		if strings.Contains(err.Error(), "not available") {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	cartResponse(c, current)
}

// PUT /cart/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.InternalErrorResponse(c, "Cart session missing")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req services.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	current, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, productID, &req)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	cartResponse(c, current)
}

// DELETE /cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.InternalErrorResponse(c, "Cart session missing")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var variantID *uuid.UUID
	if variantStr := c.Query("variant_id"); variantStr != "" {
		parsed, err := uuid.Parse(variantStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid variant ID", nil)
			return
		}
		variantID = &parsed
	}

	current, err := h.cartService.RemoveItem(c.Request.Context(), sessionID, productID, variantID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	cartResponse(c, current)
}
