package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/beggab/storechina/internal/logging"
	"github.com/beggab/storechina/internal/models"
	"gorm.io/gorm"
)

// DefaultFirstName is used when an identity carries no usable name at all.
const DefaultFirstName = "Client"

// CustomerPatch carries profile fields for the upsert. A nil field means
// "leave the stored value untouched".
type CustomerPatch struct {
	FirstName *string
	LastName  *string
	Username  *string
	Phone     *string
	Address   *string
	City      *string
	Email     *string
}

func (p CustomerPatch) fullName() (string, bool) {
	if p.FirstName == nil && p.LastName == nil {
		return "", false
	}
	first := DefaultFirstName
	if p.FirstName != nil {
		first = *p.FirstName
	}
	last := ""
	if p.LastName != nil {
		last = *p.LastName
	}
	return strings.TrimSpace(first + " " + last), true
}

// RegisterOrUpdateCustomer upserts a customer by telegram id. Repeated calls
// with identical input leave the row unchanged apart from updated_at.
func (r *GormRepo) RegisterOrUpdateCustomer(ctx context.Context, telegramID int64, patch CustomerPatch) (*models.Customer, error) {
	var customer *models.Customer
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		customer, err = registerOrUpdateTx(ctx, tx, telegramID, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func registerOrUpdateTx(ctx context.Context, tx *gorm.DB, telegramID int64, patch CustomerPatch) (*models.Customer, error) {
	l := logging.FromContext(ctx)

	var customer models.Customer
	err := tx.Where("telegram_id = ?", telegramID).First(&customer).Error
	switch {
	case err == nil:
		updates := map[string]any{}
		if name, ok := patch.fullName(); ok {
			updates["full_name"] = name
		}
		if patch.Username != nil {
			updates["username"] = *patch.Username
		}
		if patch.Phone != nil {
			updates["phone"] = *patch.Phone
		}
		if patch.Address != nil {
			updates["delivery_address"] = *patch.Address
		}
		if patch.City != nil {
			updates["city"] = *patch.City
		}
		if patch.Email != nil {
			updates["email"] = *patch.Email
		}
		if len(updates) > 0 {
			if err := tx.Model(&customer).Updates(updates).Error; err != nil {
				return nil, err
			}
		}
		l.Info("customer updated", "telegram_id", telegramID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		name, ok := patch.fullName()
		if !ok {
			name = DefaultFirstName
		}
		customer = models.Customer{
			TelegramID: telegramID,
			FullName:   name,
		}
		if patch.Username != nil {
			customer.Username = *patch.Username
		}
		if patch.Phone != nil {
			customer.Phone = *patch.Phone
		}
		if patch.Address != nil {
			customer.DeliveryAddress = *patch.Address
		}
		if patch.City != nil {
			customer.City = *patch.City
		}
		if patch.Email != nil {
			customer.Email = *patch.Email
		}
		if err := tx.Create(&customer).Error; err != nil {
			return nil, err
		}
		l.Info("customer registered", "telegram_id", telegramID)
	default:
		return nil, err
	}

	if err := tx.Where("telegram_id = ?", telegramID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormRepo) CustomerByTelegramID(ctx context.Context, telegramID int64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// DeleteCustomer removes a customer and everything it owns, in dependency
// order: sessions, cart, order items, orders, then the customer row.
func (r *GormRepo) DeleteCustomer(ctx context.Context, telegramID int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Where("telegram_id = ?", telegramID).First(&customer).Error; err != nil {
			return err
		}

		if err := tx.Where("telegram_id = ?", telegramID).Delete(&models.UserSession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id_customer = ?", customer.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id_order IN (?)",
			tx.Model(&models.Order{}).Select("id_order").Where("id_customer = ?", customer.ID),
		).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id_customer = ?", customer.ID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&customer).Error
	})
}
