package repo

import (
	"context"
	"time"

	"github.com/beggab/storechina/internal/logging"
	"github.com/beggab/storechina/internal/models"
	"gorm.io/gorm"
)

const defaultDeliveryAddress = "not specified"

// OrderSummary is the recent-orders projection joined with the customer.
type OrderSummary struct {
	OrderID         uint      `json:"order_id"`
	TotalAmountRUB  float64   `json:"total_amount_rub"`
	OrderDate       time.Time `json:"order_date"`
	Status          string    `json:"status"`
	FullName        string    `json:"full_name"`
	Phone           string    `json:"phone"`
	DeliveryAddress string    `json:"delivery_address"`
}

// SaveOrderWithItems persists an order and its lines in one transaction:
// the customer is upserted, the latest exchange rate (or the fallback) is
// snapshotted onto the header, and the header plus every item become
// visible together or not at all. The order's Items must already carry
// their snapshot prices and subtotals.
func (r *GormRepo) SaveOrderWithItems(ctx context.Context, telegramID int64, patch CustomerPatch, order *models.Order) (uint, error) {
	l := logging.FromContext(ctx)

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := registerOrUpdateTx(ctx, tx, telegramID, patch)
		if err != nil {
			return err
		}

		rate, ok, err := latestRateTx(tx)
		if err != nil {
			return err
		}
		if !ok {
			rate = FallbackExchangeRate
			l.Warn("exchange rate series is empty, using fallback",
				"fallback_rate", FallbackExchangeRate)
		}

		order.CustomerID = customer.ID
		order.ExchangeRateUsed = rate
		order.Status = models.OrderStatusPending
		order.PaymentStatus = models.PaymentStatusUnpaid
		if order.DeliveryAddress == "" {
			if patch.Address != nil && *patch.Address != "" {
				order.DeliveryAddress = *patch.Address
			} else {
				order.DeliveryAddress = defaultDeliveryAddress
			}
		}
		if order.OrderDate.IsZero() {
			order.OrderDate = time.Now().UTC()
		}

		return tx.Create(order).Error
	})
	if err != nil {
		return 0, err
	}

	l.Info("order saved", "order_id", order.ID, "telegram_id", telegramID,
		"total_rub", order.TotalAmountRUB, "items", len(order.Items))
	return order.ID, nil
}

// RecentOrders returns the newest orders joined with customer contact data.
// The limit is clamped to [1,100].
func (r *GormRepo) RecentOrders(ctx context.Context, limit int) ([]OrderSummary, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	var rows []OrderSummary
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("orders.id_order AS order_id, orders.total_amount_rub, orders.order_date, orders.status, " +
			"customers.full_name, customers.phone, orders.delivery_address").
		Joins("JOIN customers ON orders.id_customer = customers.id_customer").
		Order("orders.order_date DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) OrderByID(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").Where("id_order = ?", orderID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id_order = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListOrders(ctx context.Context, customerID uint, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id_customer = ?", customerID).
		Order("order_date DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
