package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gold-pos/internal/label"
	"gold-pos/internal/models"
	"gold-pos/internal/pricing"
)

const (
	DefaultCarat = 583

	logAddedToStock = "Sistemə əlavə edildi"
)

// codePrefixes maps a category to the prefix its product codes start with.
var codePrefixes = map[string]string{
	"Üzük":      "U",
	"Sırğa":     "S",
	"Saat":      "ST",
	"Sep":       "SP",
	"Boyunbağı": "B",
	"Qolbaq":    "Q",
	"Dəst":      "D",
	"Zəncir":    "Z",
	"Set":       "SET",
	"Külçə":     "K",
}

// CodePrefix returns the code prefix of a category, or "" when it has none.
func CodePrefix(productType string) string {
	return codePrefixes[productType]
}

type DuplicateSource string

const (
	DuplicateSourceStock DuplicateSource = "stock"
	DuplicateSourceSales DuplicateSource = "sales"
)

// DuplicateCheck reports where a product code is already used. In-stock products win over
// sales history.
type DuplicateCheck struct {
	Code      string          `json:"code"`
	Duplicate bool            `json:"duplicate"`
	Source    DuplicateSource `json:"source,omitempty"`
	Product   *models.Product `json:"product,omitempty"`
	Sale      *models.Sale    `json:"sale,omitempty"`
}

// LookupResult is the checkout search answer: either a sellable product or the sale
// that already took it.
type LookupResult struct {
	Product     *models.Product `json:"product,omitempty"`
	Sale        *models.Sale    `json:"sale,omitempty"`
	AlreadySold bool            `json:"alreadySold"`
}

type IntakeParams struct {
	Code         string   `json:"code" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Carat        int      `json:"carat" binding:"omitempty,gt=0"`
	Type         string   `json:"type" binding:"required"`
	Supplier     string   `json:"supplier"`
	Brilliant    string   `json:"brilliant"`
	Weight       float64  `json:"weight" binding:"gte=0"`
	Price        *float64 `json:"price" binding:"omitempty,gte=0"`
	ImageURL     string   `json:"imageUrl"`
	PurchaseDate string   `json:"purchaseDate" binding:"omitempty,datetime=2006-01-02"`
}

type RepriceResult struct {
	Products []models.Product `json:"products"`
	Labels   []label.Label    `json:"labels"`
}

type InventoryService struct {
	tx       Transactor
	products ProductStore
	sales    SaleStore
	settings *SettingsService
	now      func() time.Time
	newID    func() string
}

func NewInventoryService(tx Transactor, products ProductStore, sales SaleStore, settings *SettingsService) *InventoryService {
	return &InventoryService{
		tx:       tx,
		products: products,
		sales:    sales,
		settings: settings,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *InventoryService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

func (s *InventoryService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

// Create stores a product as given. Only a missing id is filled in.
func (s *InventoryService) Create(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = s.newID()
	}
	return s.products.Create(ctx, p)
}

func (s *InventoryService) Update(ctx context.Context, p *models.Product) error {
	return s.products.Update(ctx, p)
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// Lookup finds a sellable product by code, skipping products already in the cart.
// If none is on the shelf it falls back to the latest sale of that code.
func (s *InventoryService) Lookup(ctx context.Context, code string, cartIDs []string) (*LookupResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, invalid("code is required")
	}

	p, err := s.products.FindInStockByCode(ctx, code, cartIDs)
	if err == nil {
		return &LookupResult{Product: p}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	sale, err := s.sales.FindLatestByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("no active product with code %q: %w", code, ErrNotFound)
		}
		return nil, err
	}
	return &LookupResult{Sale: sale, AlreadySold: true}, nil
}

// CheckCode runs the duplicate-code guard used before stock intake.
func (s *InventoryService) CheckCode(ctx context.Context, code string) (*DuplicateCheck, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, invalid("code is required")
	}
	check := &DuplicateCheck{Code: code}

	p, err := s.products.FindInStockByCode(ctx, code, nil)
	switch {
	case err == nil:
		check.Duplicate, check.Source, check.Product = true, DuplicateSourceStock, p
		return check, nil
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	sale, err := s.sales.FindLatestByCode(ctx, code)
	switch {
	case err == nil:
		check.Duplicate, check.Source, check.Sale = true, DuplicateSourceSales, sale
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}
	return check, nil
}

// Intake adds a new item to stock. The category prefix is put in front of the code when
// missing and the price is derived from the per-gram rate unless one is given.
func (s *InventoryService) Intake(ctx context.Context, params IntakeParams) (*models.Product, error) {
	code := strings.TrimSpace(params.Code)
	name := strings.TrimSpace(params.Name)
	if code == "" || name == "" {
		return nil, invalid("code and name are required")
	}
	if prefix := CodePrefix(params.Type); prefix != "" && !strings.HasPrefix(code, prefix) {
		code = prefix + code
	}

	settings, err := s.settings.Effective(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p := &models.Product{
		ID:           s.newID(),
		Code:         code,
		Name:         name,
		Carat:        params.Carat,
		Type:         params.Type,
		Supplier:     params.Supplier,
		Brilliant:    params.Brilliant,
		Weight:       params.Weight,
		StockCount:   1,
		ImageURL:     params.ImageURL,
		PurchaseDate: params.PurchaseDate,
		Logs:         []models.ProductLog{{Date: now, Action: logAddedToStock}},
	}
	if p.Carat == 0 {
		p.Carat = DefaultCarat
	}
	if p.PurchaseDate == "" {
		p.PurchaseDate = now.Format("2006-01-02")
	}
	if params.Price != nil {
		p.Price = *params.Price
	} else {
		p.Price = pricing.ItemPrice(p.Weight, settings.PricePerGram)
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		check, err := s.CheckCode(ctx, code)
		if err != nil {
			return err
		}
		if check.Duplicate {
			return &DuplicateCodeError{Check: *check}
		}
		return s.products.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Reprice sets a new price on every in-stock item of a category and returns the labels
// to reprint.
func (s *InventoryService) Reprice(ctx context.Context, productType string, pricePerGram float64) (*RepriceResult, error) {
	if productType == "" {
		return nil, invalid("type is required")
	}
	if pricePerGram <= 0 {
		return nil, invalid("pricePerGram must be positive")
	}

	var products []models.Product
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		products, err = s.products.ListInStockByType(ctx, productType)
		if err != nil {
			return err
		}
		for i := range products {
			products[i].Price = pricing.ItemPrice(products[i].Weight, pricePerGram)
			if err := s.products.Update(ctx, &products[i]); err != nil {
				return fmt.Errorf("reprice %s: %w", products[i].Code, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Effective(ctx)
	if err != nil {
		return nil, err
	}
	return &RepriceResult{Products: products, Labels: label.RenderAll(settings, products)}, nil
}

// Label renders the printable label of one product.
func (s *InventoryService) Label(ctx context.Context, id string) (*label.Label, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Effective(ctx)
	if err != nil {
		return nil, err
	}
	l := label.Render(settings, *p)
	return &l, nil
}
