package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gold-pos/internal/models"
)

type inventoryMocks struct {
	products *MockProductStore
	sales    *MockSaleStore
	settings *MockSettingsStore
}

func newInventory(t *testing.T) (*InventoryService, inventoryMocks) {
	ctrl := gomock.NewController(t)
	m := inventoryMocks{
		products: NewMockProductStore(ctrl),
		sales:    NewMockSaleStore(ctrl),
		settings: NewMockSettingsStore(ctrl),
	}
	svc := NewInventoryService(inlineTx(ctrl), m.products, m.sales, NewSettingsService(m.settings, nil))
	svc.now = func() time.Time { return fixedNow }
	svc.newID = sequence("prod-1")
	return svc, m
}

func TestInventoryService_Lookup(t *testing.T) {
	ctx := context.Background()
	ring := &models.Product{ID: "p1", Code: "U001", StockCount: 1}
	sold := &models.Sale{ID: "ABC123-1", ProductSnapshot: models.ProductSnapshot{ProductCode: "U001"}}

	tests := []struct {
		name      string
		code      string
		setup     func(m inventoryMocks)
		want      *LookupResult
		wantErrIs error
	}{
		{
			name: "in stock",
			code: "u001",
			setup: func(m inventoryMocks) {
				m.products.EXPECT().FindInStockByCode(gomock.Any(), "u001", []string{"p9"}).Return(ring, nil)
			},
			want: &LookupResult{Product: ring},
		},
		{
			name: "already sold",
			code: "U001",
			setup: func(m inventoryMocks) {
				m.products.EXPECT().FindInStockByCode(gomock.Any(), "U001", []string{"p9"}).Return(nil, ErrNotFound)
				m.sales.EXPECT().FindLatestByCode(gomock.Any(), "U001").Return(sold, nil)
			},
			want: &LookupResult{Sale: sold, AlreadySold: true},
		},
		{
			name: "unknown code",
			code: "X1",
			setup: func(m inventoryMocks) {
				m.products.EXPECT().FindInStockByCode(gomock.Any(), "X1", []string{"p9"}).Return(nil, ErrNotFound)
				m.sales.EXPECT().FindLatestByCode(gomock.Any(), "X1").Return(nil, ErrNotFound)
			},
			wantErrIs: ErrNotFound,
		},
		{
			name:      "blank code",
			code:      "  ",
			wantErrIs: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newInventory(t)
			if tt.setup != nil {
				tt.setup(m)
			}

			got, err := svc.Lookup(ctx, tt.code, []string{"p9"})
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInventoryService_CheckCode(t *testing.T) {
	ctx := context.Background()

	t.Run("stock wins over sales", func(t *testing.T) {
		svc, m := newInventory(t)
		m.products.EXPECT().FindInStockByCode(gomock.Any(), "U001", nil).Return(&models.Product{ID: "p1"}, nil)

		got, err := svc.CheckCode(ctx, " U001 ")
		require.NoError(t, err)
		assert.True(t, got.Duplicate)
		assert.Equal(t, DuplicateSourceStock, got.Source)
		assert.Nil(t, got.Sale)
	})

	t.Run("sales history", func(t *testing.T) {
		svc, m := newInventory(t)
		m.products.EXPECT().FindInStockByCode(gomock.Any(), "U001", nil).Return(nil, ErrNotFound)
		m.sales.EXPECT().FindLatestByCode(gomock.Any(), "U001").Return(&models.Sale{ID: "T-1", CustomerName: "Aysel"}, nil)

		got, err := svc.CheckCode(ctx, "U001")
		require.NoError(t, err)
		assert.Equal(t, DuplicateSourceSales, got.Source)
		assert.Equal(t, "Aysel", got.Sale.CustomerName)
	})

	t.Run("free", func(t *testing.T) {
		svc, m := newInventory(t)
		m.products.EXPECT().FindInStockByCode(gomock.Any(), "U001", nil).Return(nil, ErrNotFound)
		m.sales.EXPECT().FindLatestByCode(gomock.Any(), "U001").Return(nil, ErrNotFound)

		got, err := svc.CheckCode(ctx, "U001")
		require.NoError(t, err)
		assert.False(t, got.Duplicate)
	})

	t.Run("store error", func(t *testing.T) {
		svc, m := newInventory(t)
		m.products.EXPECT().FindInStockByCode(gomock.Any(), "U001", nil).Return(nil, errors.New("db down"))

		_, err := svc.CheckCode(ctx, "U001")
		assert.ErrorContains(t, err, "db down")
	})
}

func TestInventoryService_Intake(t *testing.T) {
	ctx := context.Background()

	t.Run("prefix and price from settings", func(t *testing.T) {
		svc, m := newInventory(t)
		m.settings.EXPECT().Get(gomock.Any()).Return(nil, ErrNotFound)
		m.products.EXPECT().FindInStockByCode(gomock.Any(), "U001", nil).Return(nil, ErrNotFound)
		m.sales.EXPECT().FindLatestByCode(gomock.Any(), "U001").Return(nil, ErrNotFound)
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		got, err := svc.Intake(ctx, IntakeParams{Code: "001", Name: "Ring", Type: "Üzük", Weight: 10, Carat: 750})
		require.NoError(t, err)
		assert.Equal(t, "prod-1", got.ID)
		assert.Equal(t, "U001", got.Code)
		assert.Equal(t, 4000.0, got.Price)
		assert.Equal(t, 1, got.StockCount)
		assert.Equal(t, 0.0, got.SupplierPrice)
		assert.Equal(t, "2025-03-10", got.PurchaseDate)
		require.Len(t, got.Logs, 1)
		assert.Equal(t, logAddedToStock, got.Logs[0].Action)
	})

	t.Run("explicit price and existing prefix", func(t *testing.T) {
		svc, m := newInventory(t)
		price := 999.0
		m.settings.EXPECT().Get(gomock.Any()).Return(nil, ErrNotFound)
		m.products.EXPECT().FindInStockByCode(gomock.Any(), "ST12", nil).Return(nil, ErrNotFound)
		m.sales.EXPECT().FindLatestByCode(gomock.Any(), "ST12").Return(nil, ErrNotFound)
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		got, err := svc.Intake(ctx, IntakeParams{Code: "ST12", Name: "Watch", Type: "Saat", Weight: 30, Price: &price})
		require.NoError(t, err)
		assert.Equal(t, "ST12", got.Code)
		assert.Equal(t, 999.0, got.Price)
		assert.Equal(t, DefaultCarat, got.Carat)
	})

	t.Run("duplicate in stock", func(t *testing.T) {
		svc, m := newInventory(t)
		m.settings.EXPECT().Get(gomock.Any()).Return(nil, ErrNotFound)
		m.products.EXPECT().FindInStockByCode(gomock.Any(), "U001", nil).Return(&models.Product{ID: "p1", Code: "u001"}, nil)

		_, err := svc.Intake(ctx, IntakeParams{Code: "U001", Name: "Ring", Type: "Üzük"})
		require.ErrorIs(t, err, ErrDuplicateCode)

		var dup *DuplicateCodeError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "p1", dup.Check.Product.ID)
	})

	t.Run("missing name", func(t *testing.T) {
		svc, _ := newInventory(t)
		_, err := svc.Intake(ctx, IntakeParams{Code: "U1", Type: "Üzük"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestInventoryService_Reprice(t *testing.T) {
	ctx := context.Background()

	t.Run("reprices and renders labels", func(t *testing.T) {
		svc, m := newInventory(t)
		m.products.EXPECT().ListInStockByType(gomock.Any(), "Üzük").Return([]models.Product{
			{ID: "a", Code: "U1", Weight: 3.27, StockCount: 1},
			{ID: "b", Code: "U2", Weight: 10, StockCount: 1},
		}, nil)
		var saved []float64
		m.products.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *models.Product) error {
				saved = append(saved, p.Price)
				return nil
			}).Times(2)
		m.settings.EXPECT().Get(gomock.Any()).Return(nil, ErrNotFound)

		got, err := svc.Reprice(ctx, "Üzük", 123)
		require.NoError(t, err)
		assert.Equal(t, []float64{400, 1230}, saved)
		assert.Equal(t, 400.0, got.Products[0].Price)
		require.Len(t, got.Labels, 2)
		assert.Equal(t, "a", got.Labels[0].ProductID)
	})

	t.Run("non positive rate", func(t *testing.T) {
		svc, _ := newInventory(t)
		_, err := svc.Reprice(ctx, "Üzük", 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestInventoryService_Label(t *testing.T) {
	svc, m := newInventory(t)
	m.products.EXPECT().Get(gomock.Any(), "p1").Return(&models.Product{ID: "p1", Code: "U001", Price: 5500}, nil)
	m.settings.EXPECT().Get(gomock.Any()).Return(nil, ErrNotFound)

	got, err := svc.Label(context.Background(), "p1")
	require.NoError(t, err)

	texts := map[models.LabelField]string{}
	for _, el := range got.Elements {
		texts[el.Field] = el.Text
	}
	assert.Equal(t, "5,500", texts[models.LabelFieldPrice])
	assert.Equal(t, "AZN", texts[models.LabelFieldCurrency])
	assert.Equal(t, "NEKO GOLD", texts[models.LabelFieldShopName])
}
