package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gold-pos/internal/models"
)

type RepositoryTestSuite struct {
	suite.Suite
	db  *gorm.DB
	ctx context.Context
	day time.Time
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(db.AutoMigrate(
		&models.Product{}, &models.Customer{}, &models.Sale{}, &models.ScrapGold{}, &models.SettingsRecord{},
	))

	s.db = db
	s.ctx = context.Background()
	s.day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func (s *RepositoryTestSuite) product(id, code string, stock int, purchased string) *models.Product {
	p := &models.Product{
		ID: id, Code: code, Name: "Ring " + code, Carat: 585, Type: "Üzük", Supplier: "Atelye X",
		Weight: 3.5, Price: 1400, StockCount: stock, PurchaseDate: purchased,
	}
	s.Require().NoError(NewProductRepository(s.db).Create(s.ctx, p))
	return p
}

func (s *RepositoryTestSuite) sale(id, code, customer, supplier string, status models.SaleStatus, at time.Time, total float64) {
	sale := &models.Sale{
		ID:              id,
		ProductSnapshot: models.ProductSnapshot{ProductID: "p-" + code, ProductCode: code, Supplier: supplier},
		CustomerName:    customer,
		Price:           total,
		Total:           total,
		Date:            at,
		Status:          status,
	}
	s.Require().NoError(NewSaleRepository(s.db).Create(s.ctx, sale))
}

func (s *RepositoryTestSuite) TestProductListNewestFirst() {
	s.product("a", "U001", 1, "2025-01-01")
	s.product("b", "U002", 1, "2025-02-01")
	s.product("c", "U003", 0, "2024-12-01")

	products, err := NewProductRepository(s.db).List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(products, 3)
	s.Equal("b", products[0].ID)
	s.Equal("c", products[2].ID)
}

func (s *RepositoryTestSuite) TestProductFindInStockByCode() {
	repo := NewProductRepository(s.db)
	s.product("a", " u001 ", 1, "2025-01-01")
	s.product("sold", "U002", 0, "2025-01-01")

	found, err := repo.FindInStockByCode(s.ctx, "U001", nil)
	s.Require().NoError(err)
	s.Equal("a", found.ID)

	_, err = repo.FindInStockByCode(s.ctx, "u001", []string{"a"})
	s.ErrorIs(err, ErrNotFound)

	_, err = repo.FindInStockByCode(s.ctx, "U002", nil)
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestProductUpdateWritesZeroValues() {
	repo := NewProductRepository(s.db)
	p := s.product("a", "U001", 1, "2025-01-01")

	p.StockCount = 0
	p.PrependLog(s.day, "sold")
	s.Require().NoError(repo.Update(s.ctx, p))

	got, err := repo.Get(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal(0, got.StockCount)
	s.Require().Len(got.Logs, 1)
	s.Equal("sold", got.Logs[0].Action)
}

func (s *RepositoryTestSuite) TestProductGetMissing() {
	_, err := NewProductRepository(s.db).Get(s.ctx, "nope")
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestSaleQueries() {
	repo := NewSaleRepository(s.db)
	s.sale("T1-1", "U001", "Aysel", "Atelye X", models.SaleStatusCompleted, s.day.Add(9*time.Hour), 1000)
	s.sale("T2-1", "u001", "Aysel", "Tədərükçü A", models.SaleStatusCompleted, s.day.Add(11*time.Hour), 2000)
	s.sale("T3-1", "S010", "Elvin", "Atelye X", models.SaleStatusReturned, s.day.Add(12*time.Hour), 500)
	s.sale("T4-1", "S011", "Elvin", "Atelye X", models.SaleStatusCompleted, s.day.AddDate(0, 0, 1), 700)

	latest, err := repo.FindLatestByCode(s.ctx, " U001")
	s.Require().NoError(err)
	s.Equal("T2-1", latest.ID)

	byCustomer, err := repo.ListByCustomer(s.ctx, "Elvin")
	s.Require().NoError(err)
	s.Len(byCustomer, 2)

	completed, err := repo.ListCompleted(s.ctx, s.day, s.day.AddDate(0, 0, 1), "Atelye X")
	s.Require().NoError(err)
	s.Require().Len(completed, 1)
	s.Equal("T1-1", completed[0].ID)

	all, err := repo.List(s.ctx)
	s.Require().NoError(err)
	s.Equal("T4-1", all[0].ID)
}

func (s *RepositoryTestSuite) TestSaleUpdateStatusKeepsTotals() {
	repo := NewSaleRepository(s.db)
	s.sale("T1-1", "U001", "Aysel", "Atelye X", models.SaleStatusCompleted, s.day, 1000)

	s.Require().NoError(repo.UpdateStatus(s.ctx, "T1-1", models.SaleStatusReturned, "Returned with original code"))

	got, err := repo.Get(s.ctx, "T1-1")
	s.Require().NoError(err)
	s.Equal(models.SaleStatusReturned, got.Status)
	s.Equal("Returned with original code", got.ReturnNote)
	s.Equal(1000.0, got.Total)
}

func (s *RepositoryTestSuite) TestCustomerAddCashDebt() {
	repo := NewCustomerRepository(s.db)
	s.Require().NoError(repo.Create(s.ctx, &models.Customer{ID: "c1", FullName: "Aysel", Phone: "050", CashDebt: 100}))

	s.Require().NoError(repo.AddCashDebt(s.ctx, "c1", 250))
	s.ErrorIs(repo.AddCashDebt(s.ctx, "missing", 10), ErrNotFound)

	got, err := repo.Get(s.ctx, "c1")
	s.Require().NoError(err)
	s.Equal(350.0, got.CashDebt)
}

func (s *RepositoryTestSuite) TestSettingsUpsert() {
	repo := NewSettingsRepository(s.db)

	_, err := repo.Get(s.ctx)
	s.ErrorIs(err, ErrNotFound)

	settings := models.DefaultSettings()
	s.Require().NoError(repo.Save(s.ctx, &settings))

	settings.ShopName = "QIZIL EV"
	s.Require().NoError(repo.Save(s.ctx, &settings))

	got, err := repo.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal("QIZIL EV", got.ShopName)
	s.Len(got.LabelConfig.Elements, 8)

	var rows int64
	s.Require().NoError(s.db.Model(&models.SettingsRecord{}).Count(&rows).Error)
	s.Equal(int64(1), rows)
}

func (s *RepositoryTestSuite) TestTransactionRollsBack() {
	products := NewProductRepository(s.db)
	boom := errors.New("boom")

	err := NewTransactor(s.db).WithinTransaction(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(products.Create(ctx, &models.Product{ID: "tx", Code: "TX1", PurchaseDate: "2025-01-01"}))
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = products.Get(s.ctx, "tx")
	s.ErrorIs(err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestReportAggregates() {
	reports := NewReportRepository(s.db)
	s.sale("T1-1", "U001", "Aysel", "Atelye X", models.SaleStatusCompleted, s.day.Add(time.Hour), 1000)
	s.sale("T1-2", "U002", "Aysel", "Atelye X", models.SaleStatusCompleted, s.day.Add(time.Hour), 500)
	s.sale("T2-1", "U003", "Elvin", "Atelye X", models.SaleStatusReturned, s.day.Add(2*time.Hour), 300)

	customers := NewCustomerRepository(s.db)
	s.Require().NoError(customers.Create(s.ctx, &models.Customer{ID: "c1", FullName: "A", Phone: "1", CashDebt: 200, GoldDebt: 1.5}))
	s.Require().NoError(customers.Create(s.ctx, &models.Customer{ID: "c2", FullName: "B", Phone: "2", CashDebt: 50}))

	s.Require().NoError(NewScrapRepository(s.db).Create(s.ctx, &models.ScrapGold{
		ID: "sc1", Items: []models.ScrapItem{{Weight: 2}, {Weight: 1.5}}, TotalPrice: 1400, Date: s.day,
	}))

	rows, err := reports.SalesByStatus(s.ctx, s.day, s.day.AddDate(0, 0, 1))
	s.Require().NoError(err)
	byStatus := map[models.SaleStatus]StatusTotals{}
	for _, r := range rows {
		byStatus[r.Status] = r
	}
	s.Equal(int64(2), byStatus[models.SaleStatusCompleted].Count)
	s.Equal(1500.0, byStatus[models.SaleStatusCompleted].Net)
	s.Equal(int64(1), byStatus[models.SaleStatusReturned].Count)

	debts, err := reports.Debts(s.ctx)
	s.Require().NoError(err)
	s.Equal(250.0, debts.Cash)
	s.Equal(1.5, debts.Gold)

	scraps, err := reports.Scraps(s.ctx, time.Time{}, time.Time{})
	s.Require().NoError(err)
	s.Equal(int64(1), scraps.Count)
	s.Equal(1400.0, scraps.Paid)
	s.InDelta(3.5, scraps.Weight, 1e-9)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
