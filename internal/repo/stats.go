package repo

import (
	"context"

	"github.com/beggab/storechina/internal/models"
)

type Stats struct {
	Customers int64 `json:"customers"`
	Orders    int64 `json:"orders"`
}

func (r *GormRepo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	if err := r.DB.WithContext(ctx).Model(&models.Customer{}).Count(&s.Customers).Error; err != nil {
		return Stats{}, err
	}
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&s.Orders).Error; err != nil {
		return Stats{}, err
	}
	return s, nil
}

// RecordAnalytics appends a metric sample. Callers treat failures as
// advisory and never fail their own operation over one.
func (r *GormRepo) RecordAnalytics(ctx context.Context, key, value string) error {
	entry := models.AnalyticsEntry{Key: key, Value: value}
	return r.DB.WithContext(ctx).Create(&entry).Error
}
