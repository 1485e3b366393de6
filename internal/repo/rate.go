package repo

import (
	"context"
	"errors"

	"github.com/beggab/storechina/internal/models"
	"gorm.io/gorm"
)

// FallbackExchangeRate is recorded on an order when the exchange_rates
// series is empty. Using it is always logged, never silent.
const FallbackExchangeRate = 12.5

func (r *GormRepo) RecordRate(ctx context.Context, rate float64, source string) error {
	if source == "" {
		source = "manual"
	}
	row := models.ExchangeRate{RateRUB: rate, Source: source}
	return r.DB.WithContext(ctx).Create(&row).Error
}

// LatestRate returns the most recently recorded rate. ok is false when the
// series is empty.
func (r *GormRepo) LatestRate(ctx context.Context) (rate float64, ok bool, err error) {
	return latestRateTx(r.DB.WithContext(ctx))
}

func latestRateTx(tx *gorm.DB) (float64, bool, error) {
	var row models.ExchangeRate
	err := tx.Order("recorded_at DESC, id_rate DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return row.RateRUB, true, nil
}
