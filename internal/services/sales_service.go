package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gold-pos/internal/models"
	"gold-pos/internal/pricing"
)

const AnonymousCustomer = "Anonim Müştəri"

const (
	noteExchanged     = "Bu mal başqa mal ilə dəyişdirilmişdir"
	noteReturnedSame  = "Bu kod geri qaytarıldı öz kodu ilə"
	noteReturnedNewFn = "Bu kod geri qaytarıldı və yeni kodu budur: %s"

	actionReturn   = "GERİ QAYTARMA"
	actionExchange = "DƏYİŞİLMƏ"
)

type ReturnMode string

const (
	ReturnModeRefund   ReturnMode = "refund"
	ReturnModeExchange ReturnMode = "exchange"
)

// NewCustomerParams is the inline quick-create form of the checkout screen.
type NewCustomerParams struct {
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address"`
}

type CheckoutParams struct {
	ProductIDs  []string           `json:"productIds" binding:"required,min=1,unique,dive,required"`
	Discount    float64            `json:"discount" binding:"gte=0"`
	CustomerID  string             `json:"customerId"`
	NewCustomer *NewCustomerParams `json:"newCustomer"`
	Credit      bool               `json:"credit"`
	DownPayment float64            `json:"downPayment" binding:"gte=0"`
}

// Receipt is everything the receipt printer needs after a checkout.
type Receipt struct {
	TransactionID string           `json:"transactionId"`
	Sales         []models.Sale    `json:"sales"`
	Customer      *models.Customer `json:"customer,omitempty"`
	Date          time.Time        `json:"date"`
	Subtotal      float64          `json:"subtotal"`
	Discount      float64          `json:"discount"`
	Total         float64          `json:"total"`
	Credit        bool             `json:"credit"`
	DownPayment   float64          `json:"downPayment"`
	DebtAdded     float64          `json:"debtAdded"`
}

type ReturnParams struct {
	Mode    ReturnMode `json:"mode" binding:"required,oneof=refund exchange"`
	NewCode string     `json:"newCode"`
}

type ReturnResult struct {
	Sale    models.Sale    `json:"sale"`
	Product models.Product `json:"product"`
}

type SalesService struct {
	tx        Transactor
	sales     SaleStore
	products  ProductStore
	customers CustomerStore
	now       func() time.Time
	newID     func() string
	newToken  func() string
	log       *logrus.Entry
}

func NewSalesService(tx Transactor, sales SaleStore, products ProductStore, customers CustomerStore) *SalesService {
	return &SalesService{
		tx:        tx,
		sales:     sales,
		products:  products,
		customers: customers,
		now:       time.Now,
		newID:     uuid.NewString,
		newToken:  transactionToken,
		log:       logrus.WithField("component", "sales"),
	}
}

// transactionToken is the six character prefix shared by the lines of one checkout.
func transactionToken() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}

func (s *SalesService) List(ctx context.Context) ([]models.Sale, error) {
	return s.sales.List(ctx)
}

func (s *SalesService) Create(ctx context.Context, sale *models.Sale) error {
	if sale.ID == "" {
		sale.ID = s.newToken() + "-1"
	}
	if sale.Status == "" {
		sale.Status = models.SaleStatusCompleted
	}
	return s.sales.Create(ctx, sale)
}

// UpdateStatus changes only the status and note of a sale.
func (s *SalesService) UpdateStatus(ctx context.Context, id string, status models.SaleStatus, note string) error {
	current, err := s.sales.Get(ctx, id)
	if err != nil {
		return err
	}
	if !current.Status.CanTransition(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}
	return s.sales.UpdateStatus(ctx, id, status, note)
}

// Checkout sells every product of the cart in one transaction. The discount is taken off
// the first line only. On credit the unpaid part is added to the customer's cash debt.
func (s *SalesService) Checkout(ctx context.Context, params CheckoutParams) (*Receipt, error) {
	if len(params.ProductIDs) == 0 {
		return nil, ErrEmptyCart
	}
	if params.Credit && params.CustomerID == "" && params.NewCustomer == nil {
		return nil, ErrCustomerRequired
	}
	if params.Discount < 0 || params.DownPayment < 0 {
		return nil, invalid("discount and down payment cannot be negative")
	}

	receipt := &Receipt{
		TransactionID: s.newToken(),
		Date:          s.now().UTC(),
		Discount:      params.Discount,
		Credit:        params.Credit,
		DownPayment:   params.DownPayment,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.resolveCustomer(ctx, params)
		if err != nil {
			return err
		}
		receipt.Customer = customer

		products := make([]*models.Product, 0, len(params.ProductIDs))
		prices := make([]float64, 0, len(params.ProductIDs))
		for _, id := range params.ProductIDs {
			p, err := s.products.GetForUpdate(ctx, id)
			if err != nil {
				return fmt.Errorf("product %s: %w", id, err)
			}
			if !p.InStock() {
				return fmt.Errorf("%w: %s", ErrNotInStock, p.Code)
			}
			products = append(products, p)
			prices = append(prices, p.Price)
		}

		receipt.Subtotal = pricing.Sum(prices...)
		if params.Discount > receipt.Subtotal {
			return invalid("discount exceeds the cart total")
		}
		receipt.Total = pricing.Sub(receipt.Subtotal, params.Discount)

		customerName := AnonymousCustomer
		if customer != nil && customer.FullName != "" {
			customerName = customer.FullName
		}

		for i, p := range products {
			sale := models.Sale{
				ID:              fmt.Sprintf("%s-%d", receipt.TransactionID, i+1),
				ProductSnapshot: models.SnapshotOf(*p),
				CustomerName:    customerName,
				Price:           p.Price,
				Total:           p.Price,
				Date:            receipt.Date,
				Status:          models.SaleStatusCompleted,
			}
			if i == 0 {
				sale.Discount = params.Discount
				sale.Total = pricing.Sub(p.Price, params.Discount)
			}
			if err := s.sales.Create(ctx, &sale); err != nil {
				return fmt.Errorf("create sale %s: %w", sale.ID, err)
			}

			p.StockCount = 0
			p.PrependLog(receipt.Date, "Satıldı: "+sale.ID)
			if err := s.products.Update(ctx, p); err != nil {
				return fmt.Errorf("update product %s: %w", p.Code, err)
			}
			receipt.Sales = append(receipt.Sales, sale)
		}

		if !params.Credit {
			return nil
		}
		if params.DownPayment > receipt.Total {
			return invalid("down payment exceeds the total")
		}
		receipt.DebtAdded = pricing.Sub(receipt.Total, params.DownPayment)
		if receipt.DebtAdded == 0 {
			return nil
		}
		if err := s.customers.AddCashDebt(ctx, customer.ID, receipt.DebtAdded); err != nil {
			return fmt.Errorf("add debt: %w", err)
		}
		customer.CashDebt = pricing.Sum(customer.CashDebt, receipt.DebtAdded)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"transaction": receipt.TransactionID,
		"lines":       len(receipt.Sales),
		"total":       receipt.Total,
		"credit":      receipt.Credit,
	}).Info("checkout completed")
	return receipt, nil
}

func (s *SalesService) resolveCustomer(ctx context.Context, params CheckoutParams) (*models.Customer, error) {
	if params.NewCustomer != nil {
		nc := params.NewCustomer
		if strings.TrimSpace(nc.FullName) == "" || strings.TrimSpace(nc.Phone) == "" {
			return nil, invalid("customer name and phone are required")
		}
		c := &models.Customer{
			ID:       s.newID(),
			FullName: strings.TrimSpace(nc.FullName),
			Phone:    strings.TrimSpace(nc.Phone),
			Address:  nc.Address,
		}
		if err := s.customers.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("create customer: %w", err)
		}
		return c, nil
	}
	if params.CustomerID == "" {
		return nil, nil
	}
	c, err := s.customers.Get(ctx, params.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w", params.CustomerID, err)
	}
	return c, nil
}

// Return puts a sold item back on the shelf. A refund may give it a new code; an exchange
// keeps the code. Only completed sales can be returned.
func (s *SalesService) Return(ctx context.Context, saleID string, params ReturnParams) (*ReturnResult, error) {
	var result ReturnResult

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.sales.Get(ctx, saleID)
		if err != nil {
			return err
		}
		if sale.Status != models.SaleStatusCompleted {
			return fmt.Errorf("%w: sale %s is %s", ErrInvalidTransition, sale.ID, sale.Status)
		}

		code := sale.ProductCode
		var status models.SaleStatus
		var note, action string
		switch params.Mode {
		case ReturnModeExchange:
			status, note, action = models.SaleStatusExchanged, noteExchanged, actionExchange
		case ReturnModeRefund:
			status, note, action = models.SaleStatusReturned, noteReturnedSame, actionReturn
			if newCode := strings.TrimSpace(params.NewCode); newCode != "" && newCode != code {
				code = newCode
				note = fmt.Sprintf(noteReturnedNewFn, code)
			}
		default:
			return invalid("unknown return mode %q", params.Mode)
		}

		product, err := s.products.Get(ctx, sale.ProductID)
		if errors.Is(err, ErrNotFound) {
			product = s.restoreProduct(sale)
		} else if err != nil {
			return err
		}

		if clash, err := s.products.FindInStockByCode(ctx, code, []string{product.ID}); err == nil {
			return &DuplicateCodeError{Check: DuplicateCheck{
				Code: code, Duplicate: true, Source: DuplicateSourceStock, Product: clash,
			}}
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		product.StockCount = 1
		product.Code = code
		product.PrependLog(s.now().UTC(), fmt.Sprintf("%s prosesi ilə geri qayıtdı. %s", action, note))
		if err := s.products.Save(ctx, product); err != nil {
			return fmt.Errorf("restock %s: %w", code, err)
		}
		if err := s.sales.UpdateStatus(ctx, sale.ID, status, note); err != nil {
			return fmt.Errorf("update sale %s: %w", sale.ID, err)
		}

		sale.Status, sale.ReturnNote = status, note
		result = ReturnResult{Sale: *sale, Product: *product}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// restoreProduct rebuilds a deleted product row from the sale snapshot.
func (s *SalesService) restoreProduct(sale *models.Sale) *models.Product {
	snap := sale.ProductSnapshot
	p := &models.Product{
		ID:           snap.ProductID,
		Code:         snap.ProductCode,
		Name:         snap.ProductName,
		Carat:        snap.Carat,
		Type:         snap.Type,
		Supplier:     snap.Supplier,
		Brilliant:    snap.Brilliant,
		Weight:       snap.Weight,
		Price:        sale.Price,
		ImageURL:     snap.ImageURL,
		PurchaseDate: sale.Date.Format("2006-01-02"),
	}
	if p.ID == "" {
		p.ID = s.newID()
	}
	return p
}
