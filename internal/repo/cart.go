package repo

import (
	"context"
	"errors"

	"github.com/beggab/storechina/internal/models"
	"gorm.io/gorm"
)

// MaxCartQuantity is the per-variant cap enforced by the schema CHECK.
const MaxCartQuantity = 10

// MergeCartItem adds a variant to a cart. The (customer, product, size,
// color) key is the uniqueness boundary: an existing row has its quantity
// incremented, otherwise a new row is created. A concurrent insert of the
// same variant surfaces as a duplicate-key error and is retried as an
// update. Returns ErrQuantityRange when the merged quantity would exceed
// MaxCartQuantity.
func (r *GormRepo) MergeCartItem(ctx context.Context, item *models.CartItem) error {
	db := r.DB.WithContext(ctx)

	for attempt := 0; attempt < 2; attempt++ {
		err := db.Transaction(func(tx *gorm.DB) error {
			variant := tx.Model(&models.CartItem{}).
				Where("id_customer = ? AND id_product = ? AND size = ? AND color = ?",
					item.CustomerID, item.ProductID, item.Size, item.Color)

			res := variant.
				Where("quantity + ? <= ?", item.Quantity, MaxCartQuantity).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				return tx.Where("id_customer = ? AND id_product = ? AND size = ? AND color = ?",
					item.CustomerID, item.ProductID, item.Size, item.Color).First(item).Error
			}

			var existing models.CartItem
			err := tx.Where("id_customer = ? AND id_product = ? AND size = ? AND color = ?",
				item.CustomerID, item.ProductID, item.Size, item.Color).First(&existing).Error
			if err == nil {
				// row exists, so the conditional update was blocked by the cap
				return ErrQuantityRange
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return tx.Create(item).Error
		})
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		// lost the insert race; the next attempt lands on the update path
	}
	return gorm.ErrDuplicatedKey
}

func (r *GormRepo) CartItems(ctx context.Context, customerID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("id_customer = ?", customerID).Order("added_at").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveCartItem decrements a variant by qty and deletes the row once the
// quantity would drop below one.
func (r *GormRepo) RemoveCartItem(ctx context.Context, customerID, cartItemID uint, qty int) (deleted bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		if err := tx.Where("id_cart = ? AND id_customer = ?", cartItemID, customerID).First(&item).Error; err != nil {
			return err
		}
		if item.Quantity > qty {
			return tx.Model(&item).UpdateColumn("quantity", gorm.Expr("quantity - ?", qty)).Error
		}
		deleted = true
		return tx.Delete(&item).Error
	})
	return deleted, err
}

func (r *GormRepo) ClearCart(ctx context.Context, customerID uint) error {
	return r.DB.WithContext(ctx).Where("id_customer = ?", customerID).Delete(&models.CartItem{}).Error
}
