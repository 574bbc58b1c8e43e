package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gold-pos/internal/models"
)

type salesMocks struct {
	sales     *MockSaleStore
	products  *MockProductStore
	customers *MockCustomerStore
}

func newSales(t *testing.T) (*SalesService, salesMocks) {
	ctrl := gomock.NewController(t)
	m := salesMocks{
		sales:     NewMockSaleStore(ctrl),
		products:  NewMockProductStore(ctrl),
		customers: NewMockCustomerStore(ctrl),
	}
	svc := NewSalesService(inlineTx(ctrl), m.sales, m.products, m.customers)
	svc.now = func() time.Time { return fixedNow }
	svc.newID = sequence("cust-1")
	svc.newToken = sequence("ABC123")
	return svc, m
}

func stocked(id, code string, price float64) *models.Product {
	return &models.Product{ID: id, Code: code, Name: "Item " + code, Type: "Üzük", Weight: 5, Price: price, StockCount: 1}
}

func TestSalesService_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("cash sale discounts the first line", func(t *testing.T) {
		svc, m := newSales(t)
		m.products.EXPECT().GetForUpdate(gomock.Any(), "p1").Return(stocked("p1", "U001", 3000), nil)
		m.products.EXPECT().GetForUpdate(gomock.Any(), "p2").Return(stocked("p2", "S002", 1000), nil)

		var created []models.Sale
		m.sales.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s *models.Sale) error {
				created = append(created, *s)
				return nil
			}).Times(2)
		var updated []models.Product
		m.products.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *models.Product) error {
				updated = append(updated, *p)
				return nil
			}).Times(2)

		receipt, err := svc.Checkout(ctx, CheckoutParams{ProductIDs: []string{"p1", "p2"}, Discount: 500})
		require.NoError(t, err)

		assert.Equal(t, "ABC123", receipt.TransactionID)
		assert.Equal(t, 4000.0, receipt.Subtotal)
		assert.Equal(t, 3500.0, receipt.Total)
		assert.Nil(t, receipt.Customer)

		require.Len(t, created, 2)
		assert.Equal(t, "ABC123-1", created[0].ID)
		assert.Equal(t, 500.0, created[0].Discount)
		assert.Equal(t, 2500.0, created[0].Total)
		assert.Equal(t, "ABC123-2", created[1].ID)
		assert.Equal(t, 0.0, created[1].Discount)
		assert.Equal(t, 1000.0, created[1].Total)
		assert.Equal(t, AnonymousCustomer, created[0].CustomerName)
		assert.Equal(t, "U001", created[0].ProductCode)

		for _, p := range updated {
			assert.Equal(t, 0, p.StockCount)
		}
	})

	t.Run("credit adds the unpaid part to the customer", func(t *testing.T) {
		svc, m := newSales(t)
		m.customers.EXPECT().Get(gomock.Any(), "c1").Return(&models.Customer{ID: "c1", FullName: "Aysel", CashDebt: 100}, nil)
		m.products.EXPECT().GetForUpdate(gomock.Any(), "p1").Return(stocked("p1", "U001", 4000), nil)
		m.sales.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s *models.Sale) error {
				assert.Equal(t, "Aysel", s.CustomerName)
				return nil
			})
		m.products.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		m.customers.EXPECT().AddCashDebt(gomock.Any(), "c1", 2500.0).Return(nil)

		receipt, err := svc.Checkout(ctx, CheckoutParams{
			ProductIDs: []string{"p1"}, CustomerID: "c1", Credit: true, DownPayment: 1000, Discount: 500,
		})
		require.NoError(t, err)
		assert.Equal(t, 2500.0, receipt.DebtAdded)
		assert.Equal(t, 2600.0, receipt.Customer.CashDebt)
	})

	t.Run("quick-created customer", func(t *testing.T) {
		svc, m := newSales(t)
		m.customers.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *models.Customer) error {
				assert.Equal(t, "cust-1", c.ID)
				assert.Equal(t, "Elvin", c.FullName)
				return nil
			})
		m.products.EXPECT().GetForUpdate(gomock.Any(), "p1").Return(stocked("p1", "U001", 1000), nil)
		m.sales.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.products.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		receipt, err := svc.Checkout(ctx, CheckoutParams{
			ProductIDs:  []string{"p1"},
			NewCustomer: &NewCustomerParams{FullName: " Elvin ", Phone: "050 000 00 00"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Elvin", receipt.Sales[0].CustomerName)
	})

	t.Run("credit without customer", func(t *testing.T) {
		svc, _ := newSales(t)
		_, err := svc.Checkout(ctx, CheckoutParams{ProductIDs: []string{"p1"}, Credit: true})
		assert.ErrorIs(t, err, ErrCustomerRequired)
	})

	t.Run("empty cart", func(t *testing.T) {
		svc, _ := newSales(t)
		_, err := svc.Checkout(ctx, CheckoutParams{})
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("sold product", func(t *testing.T) {
		svc, m := newSales(t)
		p := stocked("p1", "U001", 1000)
		p.StockCount = 0
		m.products.EXPECT().GetForUpdate(gomock.Any(), "p1").Return(p, nil)

		_, err := svc.Checkout(ctx, CheckoutParams{ProductIDs: []string{"p1"}})
		assert.ErrorIs(t, err, ErrNotInStock)
	})

	t.Run("discount above total", func(t *testing.T) {
		svc, m := newSales(t)
		m.products.EXPECT().GetForUpdate(gomock.Any(), "p1").Return(stocked("p1", "U001", 1000), nil)

		_, err := svc.Checkout(ctx, CheckoutParams{ProductIDs: []string{"p1"}, Discount: 1500})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func soldSale(status models.SaleStatus) *models.Sale {
	return &models.Sale{
		ID:              "ABC123-1",
		ProductSnapshot: models.ProductSnapshot{ProductID: "p1", ProductCode: "U001", ProductName: "Ring", Weight: 10},
		Price:           4000,
		Total:           3500,
		Date:            fixedNow,
		Status:          status,
	}
}

func TestSalesService_Return(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		params     ReturnParams
		wantStatus models.SaleStatus
		wantCode   string
		wantNote   string
	}{
		{
			name:       "refund keeping the code",
			params:     ReturnParams{Mode: ReturnModeRefund},
			wantStatus: models.SaleStatusReturned,
			wantCode:   "U001",
			wantNote:   noteReturnedSame,
		},
		{
			name:       "refund with a new code",
			params:     ReturnParams{Mode: ReturnModeRefund, NewCode: " U777 "},
			wantStatus: models.SaleStatusReturned,
			wantCode:   "U777",
			wantNote:   "Bu kod geri qaytarıldı və yeni kodu budur: U777",
		},
		{
			name:       "exchange ignores a new code",
			params:     ReturnParams{Mode: ReturnModeExchange, NewCode: "U777"},
			wantStatus: models.SaleStatusExchanged,
			wantCode:   "U001",
			wantNote:   noteExchanged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newSales(t)
			m.sales.EXPECT().Get(gomock.Any(), "ABC123-1").Return(soldSale(models.SaleStatusCompleted), nil)
			m.products.EXPECT().Get(gomock.Any(), "p1").Return(&models.Product{
				ID: "p1", Code: "U001", Logs: []models.ProductLog{{Action: logAddedToStock}},
			}, nil)
			m.products.EXPECT().FindInStockByCode(gomock.Any(), tt.wantCode, []string{"p1"}).Return(nil, ErrNotFound)
			m.products.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			m.sales.EXPECT().UpdateStatus(gomock.Any(), "ABC123-1", tt.wantStatus, tt.wantNote).Return(nil)

			got, err := svc.Return(ctx, "ABC123-1", tt.params)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got.Sale.Status)
			assert.Equal(t, tt.wantNote, got.Sale.ReturnNote)
			assert.Equal(t, 1, got.Product.StockCount)
			assert.Equal(t, tt.wantCode, got.Product.Code)
			require.Len(t, got.Product.Logs, 2)
			assert.Contains(t, got.Product.Logs[0].Action, tt.wantNote)
		})
	}

	t.Run("deleted product is rebuilt from the snapshot", func(t *testing.T) {
		svc, m := newSales(t)
		m.sales.EXPECT().Get(gomock.Any(), "ABC123-1").Return(soldSale(models.SaleStatusCompleted), nil)
		m.products.EXPECT().Get(gomock.Any(), "p1").Return(nil, ErrNotFound)
		m.products.EXPECT().FindInStockByCode(gomock.Any(), "U001", []string{"p1"}).Return(nil, ErrNotFound)
		m.products.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		m.sales.EXPECT().UpdateStatus(gomock.Any(), "ABC123-1", models.SaleStatusReturned, noteReturnedSame).Return(nil)

		got, err := svc.Return(ctx, "ABC123-1", ReturnParams{Mode: ReturnModeRefund})
		require.NoError(t, err)
		assert.Equal(t, "Ring", got.Product.Name)
		assert.Equal(t, 10.0, got.Product.Weight)
		assert.Equal(t, 4000.0, got.Product.Price)
	})

	t.Run("new code taken by another item", func(t *testing.T) {
		svc, m := newSales(t)
		m.sales.EXPECT().Get(gomock.Any(), "ABC123-1").Return(soldSale(models.SaleStatusCompleted), nil)
		m.products.EXPECT().Get(gomock.Any(), "p1").Return(&models.Product{ID: "p1", Code: "U001"}, nil)
		m.products.EXPECT().FindInStockByCode(gomock.Any(), "U777", []string{"p1"}).Return(&models.Product{ID: "p2"}, nil)

		_, err := svc.Return(ctx, "ABC123-1", ReturnParams{Mode: ReturnModeRefund, NewCode: "U777"})
		assert.ErrorIs(t, err, ErrDuplicateCode)
	})

	t.Run("already returned", func(t *testing.T) {
		svc, m := newSales(t)
		m.sales.EXPECT().Get(gomock.Any(), "ABC123-1").Return(soldSale(models.SaleStatusReturned), nil)

		_, err := svc.Return(ctx, "ABC123-1", ReturnParams{Mode: ReturnModeRefund})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown mode", func(t *testing.T) {
		svc, m := newSales(t)
		m.sales.EXPECT().Get(gomock.Any(), "ABC123-1").Return(soldSale(models.SaleStatusCompleted), nil)

		_, err := svc.Return(ctx, "ABC123-1", ReturnParams{Mode: "gift"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestSalesService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("completed to returned", func(t *testing.T) {
		svc, m := newSales(t)
		m.sales.EXPECT().Get(gomock.Any(), "ABC123-1").Return(soldSale(models.SaleStatusCompleted), nil)
		m.sales.EXPECT().UpdateStatus(gomock.Any(), "ABC123-1", models.SaleStatusReturned, "note").Return(nil)

		assert.NoError(t, svc.UpdateStatus(ctx, "ABC123-1", models.SaleStatusReturned, "note"))
	})

	t.Run("returned back to completed", func(t *testing.T) {
		svc, m := newSales(t)
		m.sales.EXPECT().Get(gomock.Any(), "ABC123-1").Return(soldSale(models.SaleStatusReturned), nil)

		err := svc.UpdateStatus(ctx, "ABC123-1", models.SaleStatusCompleted, "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}
