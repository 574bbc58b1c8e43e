package services

import (
	"context"

	"github.com/google/uuid"

	"gold-pos/internal/models"
	"gold-pos/internal/pricing"
)

// CustomerHistory lists a customer's purchases. Returned sales do not count towards Spent.
type CustomerHistory struct {
	Customer models.Customer `json:"customer"`
	Sales    []models.Sale   `json:"sales"`
	Spent    float64         `json:"spent"`
}

type CustomerService struct {
	customers CustomerStore
	sales     SaleStore
	newID     func() string
}

func NewCustomerService(customers CustomerStore, sales SaleStore) *CustomerService {
	return &CustomerService{customers: customers, sales: sales, newID: uuid.NewString}
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.customers.List(ctx)
}

func (s *CustomerService) Create(ctx context.Context, c *models.Customer) error {
	if c.ID == "" {
		c.ID = s.newID()
	}
	return s.customers.Create(ctx, c)
}

func (s *CustomerService) Update(ctx context.Context, c *models.Customer) error {
	return s.customers.Update(ctx, c)
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	return s.customers.Delete(ctx, id)
}

// History matches sales by customer name, the only link a sale keeps.
func (s *CustomerService) History(ctx context.Context, id string) (*CustomerHistory, error) {
	c, err := s.customers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.ListByCustomer(ctx, c.FullName)
	if err != nil {
		return nil, err
	}

	totals := make([]float64, 0, len(sales))
	for _, sale := range sales {
		if sale.Status != models.SaleStatusReturned {
			totals = append(totals, sale.Total)
		}
	}
	return &CustomerHistory{Customer: *c, Sales: sales, Spent: pricing.Sum(totals...)}, nil
}
