package repo

import (
	"context"

	"github.com/beggab/storechina/internal/models"
	"gorm.io/gorm/clause"
)

// UpsertProducts ingests catalog entries keyed by their upstream item id.
// Existing rows get refreshed pricing and metadata, not a duplicate row.
func (r *GormRepo) UpsertProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "taobao_item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "price_rub", "original_price_yuan",
			"image_url", "rating", "sales", "store", "last_updated",
		}),
	}).Create(&products).Error
}

func (r *GormRepo) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id_product = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ProductByItemID(ctx context.Context, itemID string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("taobao_item_id = ?", itemID).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ProductsByItemIDs(ctx context.Context, itemIDs []string) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.WithContext(ctx).Where("taobao_item_id IN ?", itemIDs).Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.WithContext(ctx).Order("id_product").Limit(limit).Offset(offset).Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
