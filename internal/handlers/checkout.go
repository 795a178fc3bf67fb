// internal/handlers/checkout.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shangabeauty/shop-backend/internal/services"
	"github.com/shangabeauty/shop-backend/internal/utils"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	orderService    *services.OrderService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService, orderService *services.OrderService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

// POST /checkout
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.InternalErrorResponse(c, "Cart session missing")
		return
	}

	var info services.DeliveryInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	order, err := h.checkoutService.Submit(c.Request.Context(), sessionID, &info)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		if errors.Is(err, services.ErrEmptyCart) {
			utils.ValidationErrorResponse(c, []utils.ValidationError{
				{Field: "cart", Tag: "required", Message: "Cart is empty"},
			})
			return
		}
		var oos *services.OutOfStockError
		if errors.As(err, &oos) {
			utils.OutOfStockResponse(c, gin.H{
				"shortages": oos.Shortages,
			})
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GET /orders/:id
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.orderService.GetOrder(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Order")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}
