package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gold-pos/internal/models"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns every product, newest purchase first.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := conn(ctx, r.db).Order("purchaseDate DESC").Order("id").Find(&products).Error
	return products, err
}

func (r *ProductRepository) ListInStockByType(ctx context.Context, productType string) ([]models.Product, error) {
	var products []models.Product
	err := conn(ctx, r.db).
		Where("stockCount = ? AND type = ?", 1, productType).
		Order("purchaseDate DESC").Order("id").
		Find(&products).Error
	return products, err
}

func (r *ProductRepository) Get(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := conn(ctx, r.db).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// GetForUpdate reads the product and holds its row lock until the surrounding transaction ends,
// so two checkouts of the same item serialise and the second sees stockCount 0.
func (r *ProductRepository) GetForUpdate(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// FindInStockByCode matches codes trimmed and case-insensitively, skipping the excluded ids.
func (r *ProductRepository) FindInStockByCode(ctx context.Context, code string, excludeIDs []string) (*models.Product, error) {
	q := conn(ctx, r.db).
		Where("stockCount = ?", 1).
		Where("LOWER(TRIM(code)) = ?", strings.ToLower(strings.TrimSpace(code)))
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}

	var p models.Product
	if err := q.Order("purchaseDate DESC").First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return conn(ctx, r.db).Create(p).Error
}

// Update writes every column of p, zero values included.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	return conn(ctx, r.db).Model(&models.Product{}).
		Where("id = ?", p.ID).
		Select("*").Omit("id").
		Updates(p).Error
}

// Save inserts p or overwrites the row with the same id.
func (r *ProductRepository) Save(ctx context.Context, p *models.Product) error {
	return conn(ctx, r.db).Save(p).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return conn(ctx, r.db).Delete(&models.Product{}, "id = ?", id).Error
}
