package services

import (
	"context"
	"time"

	"gold-pos/internal/models"
	"gold-pos/internal/repository"
)

//go:generate mockgen -source=interfaces.go -destination=repository_mock.go -package=services

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	ListInStockByType(ctx context.Context, productType string) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	GetForUpdate(ctx context.Context, id string) (*models.Product, error)
	FindInStockByCode(ctx context.Context, code string, excludeIDs []string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Save(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
}

type SaleStore interface {
	List(ctx context.Context) ([]models.Sale, error)
	Get(ctx context.Context, id string) (*models.Sale, error)
	FindLatestByCode(ctx context.Context, code string) (*models.Sale, error)
	ListByCustomer(ctx context.Context, customerName string) ([]models.Sale, error)
	ListCompleted(ctx context.Context, from, to time.Time, supplier string) ([]models.Sale, error)
	Create(ctx context.Context, s *models.Sale) error
	UpdateStatus(ctx context.Context, id string, status models.SaleStatus, note string) error
}

type CustomerStore interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id string) (*models.Customer, error)
	Create(ctx context.Context, c *models.Customer) error
	Update(ctx context.Context, c *models.Customer) error
	AddCashDebt(ctx context.Context, id string, amount float64) error
	Delete(ctx context.Context, id string) error
}

type ScrapStore interface {
	List(ctx context.Context) ([]models.ScrapGold, error)
	Create(ctx context.Context, s *models.ScrapGold) error
}

type SettingsStore interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Save(ctx context.Context, s *models.AppSettings) error
}

// SettingsCache returns nil, nil on a miss.
type SettingsCache interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Set(ctx context.Context, s *models.AppSettings) error
	Invalidate(ctx context.Context) error
}

type ReportStore interface {
	SalesByStatus(ctx context.Context, from, to time.Time) ([]repository.StatusTotals, error)
	Debts(ctx context.Context) (repository.DebtTotals, error)
	Scraps(ctx context.Context, from, to time.Time) (repository.ScrapTotals, error)
	InStock(ctx context.Context) ([]models.Product, error)
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TokenIssuer interface {
	Issue(role string) (string, time.Time, error)
}
