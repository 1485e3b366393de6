package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/beggab/storechina/internal/models"
	"github.com/beggab/storechina/internal/repo"
	"gorm.io/gorm"
)

// Identity is what the chat layer knows about a user. Optional fields are
// pointers so that an absent value never clobbers a stored one.
type Identity struct {
	TelegramID int64
	FirstName  *string
	LastName   *string
	Username   *string
	Phone      *string
	Address    *string
	City       *string
	Email      *string
}

func (id Identity) patch() repo.CustomerPatch {
	return repo.CustomerPatch{
		FirstName: id.FirstName,
		LastName:  id.LastName,
		Username:  id.Username,
		Phone:     id.Phone,
		Address:   id.Address,
		City:      id.City,
		Email:     id.Email,
	}
}

type CustomerService struct {
	Repo *repo.GormRepo
}

// RegisterOrUpdate upserts a customer. Idempotent: calling it twice with
// the same identity leaves exactly one row with the same field values.
func (s *CustomerService) RegisterOrUpdate(ctx context.Context, id Identity) (*models.Customer, error) {
	if id.TelegramID == 0 {
		return nil, fmt.Errorf("%w: telegram id required", ErrCustomerResolution)
	}

	customer, err := s.Repo.RegisterOrUpdateCustomer(ctx, id.TelegramID, id.patch())
	if err != nil {
		return nil, fmt.Errorf("%w: register customer %d: %v", ErrPersistence, id.TelegramID, err)
	}
	return customer, nil
}

func (s *CustomerService) ByTelegramID(ctx context.Context, telegramID int64) (*models.Customer, error) {
	customer, err := s.Repo.CustomerByTelegramID(ctx, telegramID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: customer %d", ErrNotFound, telegramID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return customer, nil
}

// Delete is the explicit administrative cascade. It is not reachable from
// the customer-facing surface.
func (s *CustomerService) Delete(ctx context.Context, telegramID int64) error {
	err := s.Repo.DeleteCustomer(ctx, telegramID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: customer %d", ErrNotFound, telegramID)
	}
	if err != nil {
		return fmt.Errorf("%w: delete customer %d: %v", ErrPersistence, telegramID, err)
	}
	return nil
}
