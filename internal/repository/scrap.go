package repository

import (
	"context"

	"gorm.io/gorm"

	"gold-pos/internal/models"
)

type ScrapRepository struct {
	db *gorm.DB
}

func NewScrapRepository(db *gorm.DB) *ScrapRepository {
	return &ScrapRepository{db: db}
}

func (r *ScrapRepository) List(ctx context.Context) ([]models.ScrapGold, error) {
	var scraps []models.ScrapGold
	err := conn(ctx, r.db).Order("date DESC").Order("id").Find(&scraps).Error
	return scraps, err
}

func (r *ScrapRepository) Create(ctx context.Context, s *models.ScrapGold) error {
	return conn(ctx, r.db).Create(s).Error
}
