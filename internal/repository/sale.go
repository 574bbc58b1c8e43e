package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"gold-pos/internal/models"
)

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// List returns every sale, newest first.
func (r *SaleRepository) List(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	err := conn(ctx, r.db).Order("date DESC").Order("id").Find(&sales).Error
	return sales, err
}

func (r *SaleRepository) Get(ctx context.Context, id string) (*models.Sale, error) {
	var s models.Sale
	if err := conn(ctx, r.db).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

// FindLatestByCode returns the most recent sale of a product code, matched trimmed and case-insensitively.
func (r *SaleRepository) FindLatestByCode(ctx context.Context, code string) (*models.Sale, error) {
	var s models.Sale
	err := conn(ctx, r.db).
		Where("LOWER(TRIM(productCode)) = ?", strings.ToLower(strings.TrimSpace(code))).
		Order("date DESC").
		First(&s).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *SaleRepository) ListByCustomer(ctx context.Context, customerName string) ([]models.Sale, error) {
	var sales []models.Sale
	err := conn(ctx, r.db).Where("customerName = ?", customerName).Order("date DESC").Find(&sales).Error
	return sales, err
}

// ListCompleted returns completed sales in [from, to), optionally narrowed to one supplier.
func (r *SaleRepository) ListCompleted(ctx context.Context, from, to time.Time, supplier string) ([]models.Sale, error) {
	q := conn(ctx, r.db).
		Where("status = ?", models.SaleStatusCompleted).
		Where("date >= ? AND date < ?", models.ISOTimestamp(from), models.ISOTimestamp(to))
	if supplier != "" {
		q = q.Where("supplier = ?", supplier)
	}

	var sales []models.Sale
	err := q.Order("date DESC").Find(&sales).Error
	return sales, err
}

func (r *SaleRepository) Create(ctx context.Context, s *models.Sale) error {
	return conn(ctx, r.db).Create(s).Error
}

// UpdateStatus touches only status and returnNote.
func (r *SaleRepository) UpdateStatus(ctx context.Context, id string, status models.SaleStatus, note string) error {
	return conn(ctx, r.db).Model(&models.Sale{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "returnNote": note}).Error
}
