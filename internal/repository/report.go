package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gold-pos/internal/models"
)

// StatusTotals aggregates the sales of one status inside a time window.
type StatusTotals struct {
	Status   models.SaleStatus
	Count    int64
	Gross    float64
	Discount float64
	Net      float64
}

type DebtTotals struct {
	Cash float64
	Gold float64
}

type ScrapTotals struct {
	Count  int64
	Paid   float64
	Weight float64
}

// ReportRepository runs the aggregate queries behind the reports screen.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// SalesByStatus groups sales in [from, to) by status. A zero from means no lower bound.
func (r *ReportRepository) SalesByStatus(ctx context.Context, from, to time.Time) ([]StatusTotals, error) {
	q := conn(ctx, r.db).Model(&models.Sale{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(price), 0) AS gross, " +
			"COALESCE(SUM(discount), 0) AS discount, COALESCE(SUM(total), 0) AS net")
	if !from.IsZero() {
		q = q.Where("date >= ?", models.ISOTimestamp(from))
	}
	if !to.IsZero() {
		q = q.Where("date < ?", models.ISOTimestamp(to))
	}

	var rows []StatusTotals
	err := q.Group("status").Scan(&rows).Error
	return rows, err
}

func (r *ReportRepository) Debts(ctx context.Context) (DebtTotals, error) {
	var totals DebtTotals
	err := conn(ctx, r.db).Model(&models.Customer{}).
		Select("COALESCE(SUM(cashDebt), 0) AS cash, COALESCE(SUM(goldDebt), 0) AS gold").
		Scan(&totals).Error
	return totals, err
}

// Scraps sums buy-back payments. Weight lives in the JSON items column so it is added up here.
func (r *ReportRepository) Scraps(ctx context.Context, from, to time.Time) (ScrapTotals, error) {
	q := conn(ctx, r.db).Model(&models.ScrapGold{}).Select("id, totalPrice, items")
	if !from.IsZero() {
		q = q.Where("date >= ?", models.ISOTimestamp(from))
	}
	if !to.IsZero() {
		q = q.Where("date < ?", models.ISOTimestamp(to))
	}

	var scraps []models.ScrapGold
	if err := q.Find(&scraps).Error; err != nil {
		return ScrapTotals{}, err
	}

	var totals ScrapTotals
	for i := range scraps {
		totals.Count++
		totals.Paid += scraps[i].TotalPrice
		totals.Weight += scraps[i].TotalWeight()
	}
	return totals, nil
}

// InStock returns every product on the shelf, grouped later by category.
func (r *ReportRepository) InStock(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := conn(ctx, r.db).Where("stockCount = ?", 1).Order("type").Order("code").Find(&products).Error
	return products, err
}
