package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/beggab/storechina/internal/logging"
	"github.com/beggab/storechina/internal/models"
	"github.com/beggab/storechina/internal/repo"
	"gorm.io/gorm"
)

// CartLine is one position of an externally supplied cart snapshot. Name
// and UnitPrice are snapshots: the stored order never recomputes them from
// the live catalog.
type CartLine struct {
	ProductID *uint
	Name      string
	UnitPrice float64
	Quantity  int
	Size      string
	Color     string
}

type OrderService struct {
	Repo *repo.GormRepo
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PlaceOrder turns a cart snapshot plus an identity into a persisted order.
// The write is all-or-nothing; on failure no header or item rows remain.
func (s *OrderService) PlaceOrder(ctx context.Context, id Identity, lines []CartLine) (uint, error) {
	if id.TelegramID == 0 {
		return 0, fmt.Errorf("%w: telegram id required", ErrCustomerResolution)
	}
	if len(lines) == 0 {
		return 0, fmt.Errorf("%w: order needs at least one item", ErrValidation)
	}

	var total float64
	items := make([]models.OrderItem, 0, len(lines))
	for i, line := range lines {
		if line.Name == "" {
			return 0, fmt.Errorf("%w: item %d has no name", ErrValidation, i)
		}
		if line.UnitPrice <= 0 {
			return 0, fmt.Errorf("%w: item %d price must be positive", ErrValidation, i)
		}
		qty := line.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 1 {
			return 0, fmt.Errorf("%w: item %d quantity must be positive", ErrValidation, i)
		}

		subtotal := line.UnitPrice * float64(qty)
		items = append(items, models.OrderItem{
			ProductID:       line.ProductID,
			ProductName:     line.Name,
			ProductPriceRUB: line.UnitPrice,
			Size:            line.Size,
			Color:           line.Color,
			Quantity:        qty,
			Subtotal:        subtotal,
		})
		total += subtotal
	}

	order := models.Order{
		TotalAmountRUB: round2(total),
		OrderDate:      time.Now().UTC(),
		Items:          items,
	}
	if id.Address != nil {
		order.DeliveryAddress = *id.Address
	}

	orderID, err := s.Repo.SaveOrderWithItems(ctx, id.TelegramID, id.patch(), &order)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOrderPersistence, err)
	}

	// advisory metric, never fails the order
	if err := s.Repo.RecordAnalytics(ctx, "orders_placed", strconv.FormatUint(uint64(orderID), 10)); err != nil {
		logging.FromContext(ctx).Warn("analytics tick failed", "error", err)
	}

	return orderID, nil
}

// Checkout builds the snapshot from the stored cart, places the order and
// clears the cart. The cart stays intact when placement fails.
func (s *OrderService) Checkout(ctx context.Context, id Identity) (uint, error) {
	if id.TelegramID == 0 {
		return 0, fmt.Errorf("%w: telegram id required", ErrCustomerResolution)
	}

	customer, err := s.Repo.CustomerByTelegramID(ctx, id.TelegramID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: customer %d", ErrNotFound, id.TelegramID)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	cartItems, err := s.Repo.CartItems(ctx, customer.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: load cart: %v", ErrPersistence, err)
	}
	if len(cartItems) == 0 {
		return 0, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	lines := make([]CartLine, 0, len(cartItems))
	for _, ci := range cartItems {
		product, err := s.Repo.ProductByID(ctx, ci.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: product %d", ErrNotFound, ci.ProductID)
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		productID := product.ID
		lines = append(lines, CartLine{
			ProductID: &productID,
			Name:      product.Name,
			UnitPrice: product.PriceRUB,
			Quantity:  ci.Quantity,
			Size:      ci.Size,
			Color:     ci.Color,
		})
	}

	orderID, err := s.PlaceOrder(ctx, id, lines)
	if err != nil {
		return 0, err
	}

	if err := s.Repo.ClearCart(ctx, customer.ID); err != nil {
		logging.FromContext(ctx).Warn("cart clear after checkout failed",
			"order_id", orderID, "error", err)
	}
	if session, err := s.Repo.ActiveSession(ctx, id.TelegramID); err == nil {
		if err := s.Repo.CompleteSession(ctx, session.ID); err != nil {
			logging.FromContext(ctx).Warn("session completion failed",
				"session_id", session.ID, "error", err)
		}
	}
	return orderID, nil
}

// History lists a customer's past orders, newest first.
func (s *OrderService) History(ctx context.Context, telegramID int64, limit, offset int) ([]models.Order, error) {
	customer, err := s.Repo.CustomerByTelegramID(ctx, telegramID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: customer %d", ErrNotFound, telegramID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	orders, err := s.Repo.ListOrders(ctx, customer.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %v", ErrPersistence, err)
	}
	return orders, nil
}

func (s *OrderService) ByID(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.Repo.OrderByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return order, nil
}

// UpdateStatus is the admin path for lifecycle transitions.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}
	err := s.Repo.UpdateOrderStatus(ctx, orderID, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	if err != nil {
		return fmt.Errorf("%w: update order status: %v", ErrPersistence, err)
	}
	return nil
}
