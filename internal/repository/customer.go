package repository

import (
	"context"

	"gorm.io/gorm"

	"gold-pos/internal/models"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := conn(ctx, r.db).Order("fullName").Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) Get(ctx context.Context, id string) (*models.Customer, error) {
	var c models.Customer
	if err := conn(ctx, r.db).First(&c, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return conn(ctx, r.db).Create(c).Error
}

func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	return conn(ctx, r.db).Model(&models.Customer{}).
		Where("id = ?", c.ID).
		Select("*").Omit("id").
		Updates(c).Error
}

// AddCashDebt increments the debt in SQL so concurrent checkouts do not overwrite each other.
func (r *CustomerRepository) AddCashDebt(ctx context.Context, id string, amount float64) error {
	res := conn(ctx, r.db).Model(&models.Customer{}).
		Where("id = ?", id).
		Update("cashDebt", gorm.Expr("cashDebt + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	return conn(ctx, r.db).Delete(&models.Customer{}, "id = ?", id).Error
}
