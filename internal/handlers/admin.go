// internal/handlers/admin.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shangabeauty/shop-backend/internal/models"
	"github.com/shangabeauty/shop-backend/internal/services"
	"github.com/shangabeauty/shop-backend/internal/utils"
)

// AdminHandler is the back-office surface: full catalog CRUD including
// inactive products, variant/stock editing, order management and the
// dashboard.
type AdminHandler struct {
	catalogService      *services.CatalogService
	orderService        *services.OrderService
	notificationService *services.NotificationService
	storageService      *services.StorageService
}

func NewAdminHandler(
	catalogService *services.CatalogService,
	orderService *services.OrderService,
	notificationService *services.NotificationService,
	storageService *services.StorageService,
) *AdminHandler {
	return &AdminHandler{
		catalogService:      catalogService,
		orderService:        orderService,
		notificationService: notificationService,
		storageService:      storageService,
	}
}

// GET /admin/products
func (h *AdminHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products, total, err := h.catalogService.SearchProducts(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /admin/products/:id
func (h *AdminHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Product")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var form services.ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}
	form.ID = nil

	product, err := h.saveProduct(c, &form)
	if err != nil {
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Product created",
		"product": product,
	})
}

// PUT /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var form services.ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}
	form.ID = &id

	product, err := h.saveProduct(c, &form)
	if err != nil {
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Product updated",
		"product": product,
	})
}

// saveProduct runs the shared upsert path and writes the error response
// itself; callers only render the success payload.
func (h *AdminHandler) saveProduct(c *gin.Context, form *services.ProductForm) (*models.Product, error) {
	product, err := h.catalogService.UpsertProduct(form)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return nil, err
		}
		if strings.Contains(err.Error(), "validation failed") {
			utils.BadRequestResponse(c, err.Error(), nil)
			return nil, err
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Product")
			return nil, err
		}
		utils.InternalErrorResponse(c, err.Error())
		return nil, err
	}

	if form.Variants != nil {
		variants, err := h.catalogService.ReplaceVariants(product.ID, form.Variants)
		if err != nil {
			if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
				utils.ValidationErrorResponse(c, validationErrors)
				return nil, err
			}
			utils.InternalErrorResponse(c, err.Error())
			return nil, err
		}
		product.Variants = variants
	}

	return product, nil
}

// PUT /admin/products/:id/variants
func (h *AdminHandler) ReplaceVariants(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req struct {
		Variants []services.VariantForm `json:"variants"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	variants, err := h.catalogService.ReplaceVariants(id, req.Variants)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Product")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Variants updated",
		"variants": variants,
	})
}

// DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	if err := h.catalogService.DeleteProduct(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Product")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Product deleted",
	})
}

// POST /admin/products/upload-images
func (h *AdminHandler) UploadProductImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "File upload failed", err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No images uploaded", nil)
		return
	}

	var uploadedImages []map[string]interface{}
	var failed []gin.H
	options := h.storageService.ProductImageOptions()

	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			failed = append(failed, gin.H{"filename": fileHeader.Filename, "reason": err.Error()})
			continue
		}

		if err := h.storageService.ValidateImage(file); err != nil {
			file.Close()
			failed = append(failed, gin.H{"filename": fileHeader.Filename, "reason": err.Error()})
			continue
		}

		result, err := h.storageService.UploadFile(file, fileHeader, options)
		file.Close()

		if err != nil {
			failed = append(failed, gin.H{"filename": fileHeader.Filename, "reason": err.Error()})
			continue
		}

		uploadedImages = append(uploadedImages, map[string]interface{}{
			"url":       result.URL,
			"key":       result.Key,
			"size":      result.Size,
			"mime_type": result.MimeType,
		})
	}

	if len(uploadedImages) == 0 {
		utils.BadRequestResponse(c, "All image uploads failed", failed)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"images": uploadedImages,
		"failed": failed,
	})
}

// GET /admin/orders
func (h *AdminHandler) GetOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.ListOrders(params)
	if err != nil {
		if strings.Contains(err.Error(), "unknown order status") {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /admin/orders/:id
func (h *AdminHandler) GetOrder(c *gin.Context) {
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

// PUT /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	next := models.OrderStatus(req.Status)
	if !next.Valid() {
		utils.BadRequestResponse(c, "Unknown order status: "+req.Status, nil)
		return
	}

	order, err := h.orderService.UpdateStatus(id, next)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Order")
			return
		}
		if strings.Contains(err.Error(), "cannot change order status") {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Order status updated",
		"order":   order,
	})
}

// GET /admin/dashboard/stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.orderService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// GET /admin/orders/recent
func (h *AdminHandler) GetRecentOrders(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 5
	}

	orders, err := h.orderService.RecentOrders(limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"orders": orders,
	})
}

// GET /admin/notifications
func (h *AdminHandler) GetNotifications(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	notifications, total, err := h.notificationService.ListNotifications(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(notifications, total, params)
	utils.PaginatedResponse(c, result)
}

// PUT /admin/notifications/:id/read
func (h *AdminHandler) MarkNotificationRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid notification ID", nil)
		return
	}

	if err := h.notificationService.MarkRead(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Notification")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Notification marked as read",
	})
}
