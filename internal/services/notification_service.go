// internal/services/notification_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shangabeauty/shop-backend/internal/models"
	"github.com/shangabeauty/shop-backend/internal/utils"
)

// NotificationService writes the rows the admin dashboard bell feeds on.
// Failures here are logged and swallowed; a missed notification must never
// fail an order.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) NotifyOrderCreated(order *models.Order) {
	orderID := order.ID
	notification := &models.AdminNotification{
		Type:  "order_created",
		Title: "New order received",
		Message: fmt.Sprintf("%s placed an order for %d item(s), total %s",
			order.CustomerName, len(order.Items.Products), order.TotalAmount.StringFixed(2)),
		RelatedResourceID: &orderID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		logrus.WithError(err).Error("Failed to create order notification")
	}
}

func (s *NotificationService) NotifyLowStock(variant models.Variant) {
	variantID := variant.ID
	notification := &models.AdminNotification{
		Type:  "low_stock",
		Title: "Variant stock running low",
		Message: fmt.Sprintf("%s is down to %d unit(s)",
			variant.Label(), variant.Stock),
		RelatedResourceID: &variantID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		logrus.WithError(err).Error("Failed to create low stock notification")
	}
}

func (s *NotificationService) ListNotifications(params utils.PaginationParams) ([]models.AdminNotification, int64, error) {
	query := s.db.Model(&models.AdminNotification{})

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at"})
	query = utils.ApplyPagination(query, params)

	var notifications []models.AdminNotification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	return notifications, total, nil
}

func (s *NotificationService) MarkRead(id uuid.UUID) error {
	now := time.Now()
	res := s.db.Model(&models.AdminNotification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": "read", "read_at": &now})
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.New("notification not found")
	}
	return nil
}
