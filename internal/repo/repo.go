package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrQuantityRange = errors.New("cart quantity out of range")
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
