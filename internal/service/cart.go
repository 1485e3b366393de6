package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/beggab/storechina/internal/models"
	"github.com/beggab/storechina/internal/repo"
	"gorm.io/gorm"
)

type CartService struct {
	Repo *repo.GormRepo
}

// MergeItem adds qty of a (product, size, color) variant to a cart. A zero
// qty means one. The merged quantity must stay within [1,10]; excess is an
// error, never a silent truncation.
func (s *CartService) MergeItem(ctx context.Context, customerID, productID uint, size, color string, qty int) (*models.CartItem, error) {
	if customerID == 0 {
		return nil, fmt.Errorf("%w: customer id required", ErrValidation)
	}
	if productID == 0 {
		return nil, fmt.Errorf("%w: product id required", ErrValidation)
	}
	if qty == 0 {
		qty = 1
	}
	if qty < 1 || qty > repo.MaxCartQuantity {
		return nil, fmt.Errorf("%w: quantity %d outside [1,%d]", ErrInvalidQuantity, qty, repo.MaxCartQuantity)
	}

	item := models.CartItem{
		CustomerID: customerID,
		ProductID:  productID,
		Size:       size,
		Color:      color,
		Quantity:   qty,
	}
	err := s.Repo.MergeCartItem(ctx, &item)
	switch {
	case errors.Is(err, repo.ErrQuantityRange):
		return nil, fmt.Errorf("%w: merged quantity would exceed %d", ErrInvalidQuantity, repo.MaxCartQuantity)
	case err != nil:
		return nil, fmt.Errorf("%w: merge cart item: %v", ErrPersistence, err)
	}
	return &item, nil
}

func (s *CartService) Items(ctx context.Context, customerID uint) ([]models.CartItem, error) {
	items, err := s.Repo.CartItems(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: load cart: %v", ErrPersistence, err)
	}
	return items, nil
}

func (s *CartService) RemoveItem(ctx context.Context, customerID, cartItemID uint, qty int) (bool, error) {
	if qty < 1 {
		qty = 1
	}
	deleted, err := s.Repo.RemoveCartItem(ctx, customerID, cartItemID, qty)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("%w: cart item %d", ErrNotFound, cartItemID)
	}
	if err != nil {
		return false, fmt.Errorf("%w: remove cart item: %v", ErrPersistence, err)
	}
	return deleted, nil
}

func (s *CartService) Clear(ctx context.Context, customerID uint) error {
	if err := s.Repo.ClearCart(ctx, customerID); err != nil {
		return fmt.Errorf("%w: clear cart: %v", ErrPersistence, err)
	}
	return nil
}
