// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shangabeauty/shop-backend/internal/models"
	"github.com/shangabeauty/shop-backend/internal/utils"
)

// LowStockThreshold is the remaining-stock level at which a variant shows up
// in admin notifications.
const LowStockThreshold = 3

type OrderService struct {
	db                  *gorm.DB
	notificationService *NotificationService
}

type DashboardStats struct {
	TotalProducts int64 `json:"total_products"`
	TotalOrders   int64 `json:"total_orders"`
	PendingOrders int64 `json:"pending_orders"`
}

func NewOrderService(db *gorm.DB, notificationService *NotificationService) *OrderService {
	return &OrderService{
		db:                  db,
		notificationService: notificationService,
	}
}

// CreateOrder reserves variant stock and inserts the order atomically. Each
// line that names a variant decrements that variant's stock with a floor of
// zero; any shortfall aborts the whole transaction and reports every short
// line, so a retried checkout sees consistent stock. Lines without a variant
// selection carry no tracked stock and are not reserved.
func (s *OrderService) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	var lowStock []models.Variant

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var shortages []StockShortage

		for _, line := range order.Items.Products {
			if line.VariantID == nil {
				continue
			}

			var variant models.Variant
			if err := tx.Set("gorm:query_option", "FOR UPDATE").
				First(&variant, "id = ?", *line.VariantID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					shortages = append(shortages, StockShortage{
						ProductID: line.ProductID,
						VariantID: *line.VariantID,
						Requested: line.Quantity,
						Available: 0,
					})
					continue
				}
				return fmt.Errorf("database error: %w", err)
			}

			if variant.Stock < line.Quantity {
				shortages = append(shortages, StockShortage{
					ProductID: line.ProductID,
					VariantID: variant.ID,
					Requested: line.Quantity,
					Available: variant.Stock,
				})
				continue
			}

			res := tx.Model(&models.Variant{}).
				Where("id = ? AND stock >= ?", variant.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to reserve stock: %w", res.Error)
			}
			if res.RowsAffected != 1 {
				shortages = append(shortages, StockShortage{
					ProductID: line.ProductID,
					VariantID: variant.ID,
					Requested: line.Quantity,
					Available: variant.Stock,
				})
				continue
			}

			if variant.Stock-line.Quantity <= LowStockThreshold {
				variant.Stock -= line.Quantity
				lowStock = append(lowStock, variant)
			}
		}

		if len(shortages) > 0 {
			return &OutOfStockError{Shortages: shortages}
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		go s.notificationService.NotifyOrderCreated(order)
		for _, v := range lowStock {
			go s.notificationService.NotifyLowStock(v)
		}
	}

	return order, nil
}

func (s *OrderService) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// ListOrders is the admin order monitor: newest first, optional status
// filter, paginated.
func (s *OrderService) ListOrders(params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{})

	if params.Status != "" {
		status := models.OrderStatus(params.Status)
		if !status.Valid() {
			return nil, 0, errors.New("unknown order status")
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "total_amount", "status", "customer_name"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

func (s *OrderService) RecentOrders(limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order along its lifecycle. Only the status column is
// ever written; items and total stay frozen. Cancelling an open order
// restocks the variant quantities the checkout reserved.
func (s *OrderService) UpdateStatus(id uuid.UUID, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, errors.New("unknown order status")
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("order not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("cannot change order status from %s to %s", order.Status, next)
		}

		if next == models.OrderStatusCancelled {
			if err := s.restockLines(tx, order.Items.Products); err != nil {
				return err
			}
		}

		if err := tx.Model(&order).UpdateColumn("status", next).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		order.Status = next
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) restockLines(tx *gorm.DB, lines []models.OrderLine) error {
	for _, line := range lines {
		if line.VariantID == nil {
			continue
		}

		// The variant may have been deleted since the order was placed;
		// nothing to restock then.
		res := tx.Model(&models.Variant{}).
			Where("id = ?", *line.VariantID).
			UpdateColumn("stock", gorm.Expr("stock + ?", line.Quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to restock variant: %w", res.Error)
		}
	}
	return nil
}

// GetDashboardStats backs the admin landing page counters.
func (s *OrderService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	s.db.Model(&models.Product{}).Count(&stats.TotalProducts)
	s.db.Model(&models.Order{}).Count(&stats.TotalOrders)
	s.db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&stats.PendingOrders)

	return stats, nil
}
