package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gold-pos/internal/models"
	"gold-pos/internal/pricing"
	"gold-pos/internal/repository"
)

const uncategorized = "Digər"

// ZReport is the end-of-day summary of one business day.
type ZReport struct {
	Date           string  `json:"date"`
	SalesCount     int64   `json:"salesCount"`
	Gross          float64 `json:"gross"`
	Discounts      float64 `json:"discounts"`
	Revenue        float64 `json:"revenue"`
	ReturnedCount  int64   `json:"returnedCount"`
	ReturnedTotal  float64 `json:"returnedTotal"`
	ExchangedCount int64   `json:"exchangedCount"`
	ScrapCount     int64   `json:"scrapCount"`
	ScrapPaid      float64 `json:"scrapPaid"`
	ScrapWeight    float64 `json:"scrapWeight"`
}

type Summary struct {
	DailyRevenue     float64 `json:"dailyRevenue"`
	DailySalesCount  int64   `json:"dailySalesCount"`
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalReceivables float64 `json:"totalReceivables"`
	TotalGoldDebt    float64 `json:"totalGoldDebt"`
	TotalScrapPaid   float64 `json:"totalScrapPaid"`
	TotalScrapWeight float64 `json:"totalScrapWeight"`
	Today            ZReport `json:"today"`
}

type ValuationItem struct {
	ID     string  `json:"id"`
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Carat  int     `json:"carat"`
	Weight float64 `json:"weight"`
	Price  float64 `json:"price"`
}

// CategoryGroup is one category of the stock valuation.
type CategoryGroup struct {
	CategoryName string          `json:"categoryName"`
	Items        []ValuationItem `json:"items"`
	Count        int             `json:"count"`
	Weight       float64         `json:"weight"`
	Subtotal     float64         `json:"subtotal"`
}

type Valuation struct {
	Categories  []CategoryGroup `json:"categories"`
	ItemCount   int             `json:"itemCount"`
	TotalWeight float64         `json:"totalWeight"`
	GrandTotal  float64         `json:"grandTotal"`
}

// SoldReport is the supplier re-order list for one day.
type SoldReport struct {
	Date        string        `json:"date"`
	Supplier    string        `json:"supplier,omitempty"`
	Sales       []models.Sale `json:"sales"`
	Count       int           `json:"count"`
	TotalWeight float64       `json:"totalWeight"`
}

type ReportService struct {
	reports ReportStore
	sales   SaleStore
	loc     *time.Location
	now     func() time.Time
}

// NewReportService uses loc to decide where a business day starts.
func NewReportService(reports ReportStore, sales SaleStore, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{reports: reports, sales: sales, loc: loc, now: time.Now}
}

func (s *ReportService) dayBounds(day time.Time) (time.Time, time.Time) {
	d := day.In(s.loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.loc)
	return start, start.AddDate(0, 0, 1)
}

// ZReport totals one day. Returned sales are reported apart and left out of the revenue.
func (s *ReportService) ZReport(ctx context.Context, day time.Time) (*ZReport, error) {
	from, to := s.dayBounds(day)

	rows, err := s.reports.SalesByStatus(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}
	scraps, err := s.reports.Scraps(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("scrap totals: %w", err)
	}

	z := &ZReport{
		Date:        from.Format("2006-01-02"),
		ScrapCount:  scraps.Count,
		ScrapPaid:   scraps.Paid,
		ScrapWeight: scraps.Weight,
	}
	for _, r := range rows {
		switch r.Status {
		case models.SaleStatusReturned:
			z.ReturnedCount += r.Count
			z.ReturnedTotal = pricing.Sum(z.ReturnedTotal, r.Net)
			continue
		case models.SaleStatusExchanged:
			z.ExchangedCount += r.Count
		}
		z.SalesCount += r.Count
		z.Gross = pricing.Sum(z.Gross, r.Gross)
		z.Discounts = pricing.Sum(z.Discounts, r.Discount)
		z.Revenue = pricing.Sum(z.Revenue, r.Net)
	}
	return z, nil
}

func (s *ReportService) Summary(ctx context.Context) (*Summary, error) {
	today, err := s.ZReport(ctx, s.now())
	if err != nil {
		return nil, err
	}

	all, err := s.reports.SalesByStatus(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}
	debts, err := s.reports.Debts(ctx)
	if err != nil {
		return nil, fmt.Errorf("debt totals: %w", err)
	}
	scraps, err := s.reports.Scraps(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("scrap totals: %w", err)
	}

	return &Summary{
		DailyRevenue:     today.Revenue,
		DailySalesCount:  today.SalesCount,
		TotalRevenue:     revenue(all),
		TotalReceivables: debts.Cash,
		TotalGoldDebt:    debts.Gold,
		TotalScrapPaid:   scraps.Paid,
		TotalScrapWeight: scraps.Weight,
		Today:            *today,
	}, nil
}

func revenue(rows []repository.StatusTotals) float64 {
	var total float64
	for _, r := range rows {
		if r.Status != models.SaleStatusReturned {
			total = pricing.Sum(total, r.Net)
		}
	}
	return total
}

// Valuation groups the in-stock items by category at their shelf price.
func (s *ReportService) Valuation(ctx context.Context) (*Valuation, error) {
	products, err := s.reports.InStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch inventory: %w", err)
	}

	groups := make(map[string]*CategoryGroup)
	out := &Valuation{Categories: []CategoryGroup{}}
	for _, p := range products {
		name := p.Type
		if name == "" {
			name = uncategorized
		}
		g, ok := groups[name]
		if !ok {
			g = &CategoryGroup{CategoryName: name, Items: []ValuationItem{}}
			groups[name] = g
		}

		g.Items = append(g.Items, ValuationItem{
			ID: p.ID, Code: p.Code, Name: p.Name, Carat: p.Carat, Weight: p.Weight, Price: p.Price,
		})
		g.Count++
		g.Weight = pricing.Sum(g.Weight, p.Weight)
		g.Subtotal = pricing.Sum(g.Subtotal, p.Price)

		out.ItemCount++
		out.TotalWeight = pricing.Sum(out.TotalWeight, p.Weight)
		out.GrandTotal = pricing.Sum(out.GrandTotal, p.Price)
	}

	for _, g := range groups {
		out.Categories = append(out.Categories, *g)
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		return out.Categories[i].CategoryName < out.Categories[j].CategoryName
	})
	return out, nil
}

// Sold lists completed sales of one day (YYYY-MM-DD, today when empty), optionally for
// a single supplier.
func (s *ReportService) Sold(ctx context.Context, date, supplier string) (*SoldReport, error) {
	day := s.now()
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, s.loc)
		if err != nil {
			return nil, invalid("date must be YYYY-MM-DD")
		}
		day = parsed
	}
	from, to := s.dayBounds(day)

	sales, err := s.sales.ListCompleted(ctx, from, to, supplier)
	if err != nil {
		return nil, err
	}
	if sales == nil {
		sales = []models.Sale{}
	}

	weights := make([]float64, len(sales))
	for i, sale := range sales {
		weights[i] = sale.Weight
	}
	return &SoldReport{
		Date:        from.Format("2006-01-02"),
		Supplier:    supplier,
		Sales:       sales,
		Count:       len(sales),
		TotalWeight: pricing.Sum(weights...),
	}, nil
}
