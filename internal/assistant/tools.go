package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"

	"gold-pos/internal/services"
)

type Inventory interface {
	Lookup(ctx context.Context, code string, cartIDs []string) (*services.LookupResult, error)
}

type Reports interface {
	Summary(ctx context.Context) (*services.Summary, error)
	ZReport(ctx context.Context, day time.Time) (*services.ZReport, error)
	Valuation(ctx context.Context) (*services.Valuation, error)
}

const (
	toolFindProduct    = "find_product"
	toolStockValuation = "stock_valuation"
	toolSalesSummary   = "sales_summary"
	toolDailyReport    = "daily_report"
)

// Tools runs the functions the model is allowed to call. Every tool is read-only.
type Tools struct {
	inventory Inventory
	reports   Reports
	loc       *time.Location
}

func NewTools(inventory Inventory, reports Reports, loc *time.Location) *Tools {
	if loc == nil {
		loc = time.Local
	}
	return &Tools{inventory: inventory, reports: reports, loc: loc}
}

func (t *Tools) Declarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        toolFindProduct,
			Description: "Find a product by its code. Tells whether it is on the shelf or already sold, with weight, carat and price.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"code": {Type: genai.TypeString, Description: "Product code, e.g. U001"},
				},
				Required: []string{"code"},
			},
		},
		{
			Name:        toolStockValuation,
			Description: "Value of everything currently in stock, grouped by category, with item counts and total weight in grams.",
		},
		{
			Name:        toolSalesSummary,
			Description: "Today's revenue and sales count, all-time revenue, outstanding customer debts and scrap gold totals.",
		},
		{
			Name:        toolDailyReport,
			Description: "End-of-day (Z) report for one day: sales, discounts, returns, exchanges and scrap gold bought.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": {Type: genai.TypeString, Description: "Day in YYYY-MM-DD format"},
				},
				Required: []string{"date"},
			},
		},
	}
}

// Call executes one function call. Failures are reported to the model as an "error" field
// so it can explain them to the user.
func (t *Tools) Call(ctx context.Context, name string, args map[string]any) map[string]any {
	result, err := t.call(ctx, name, args)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return result
}

func (t *Tools) call(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	switch name {
	case toolFindProduct:
		return t.findProduct(ctx, stringArg(args, "code"))
	case toolStockValuation:
		return t.stockValuation(ctx)
	case toolSalesSummary:
		summary, err := t.reports.Summary(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"summary": summary}, nil
	case toolDailyReport:
		day, err := time.ParseInLocation("2006-01-02", stringArg(args, "date"), t.loc)
		if err != nil {
			return nil, fmt.Errorf("date must be in YYYY-MM-DD format")
		}
		report, err := t.reports.ZReport(ctx, day)
		if err != nil {
			return nil, err
		}
		return map[string]any{"report": report}, nil
	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}

func (t *Tools) findProduct(ctx context.Context, code string) (map[string]any, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("code is required")
	}

	res, err := t.inventory.Lookup(ctx, code, nil)
	if errors.Is(err, services.ErrNotFound) {
		return map[string]any{"found": false, "code": code}, nil
	}
	if err != nil {
		return nil, err
	}

	if res.AlreadySold {
		return map[string]any{
			"found":        true,
			"in_stock":     false,
			"sold_on":      res.Sale.Date.In(t.loc).Format("2006-01-02"),
			"customer":     res.Sale.CustomerName,
			"sold_for":     res.Sale.Total,
			"sale_status":  res.Sale.Status,
			"product_name": res.Sale.ProductName,
		}, nil
	}

	p := res.Product
	return map[string]any{
		"found":    true,
		"in_stock": true,
		"code":     p.Code,
		"name":     p.Name,
		"type":     p.Type,
		"carat":    p.Carat,
		"weight":   p.Weight,
		"price":    p.Price,
		"supplier": p.Supplier,
	}, nil
}

// stockValuation drops the per-item rows; the totals are what the model needs.
func (t *Tools) stockValuation(ctx context.Context) (map[string]any, error) {
	v, err := t.reports.Valuation(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]map[string]any, 0, len(v.Categories))
	for _, c := range v.Categories {
		categories = append(categories, map[string]any{
			"category": c.CategoryName,
			"count":    c.Count,
			"weight":   c.Weight,
			"subtotal": c.Subtotal,
		})
	}
	return map[string]any{
		"categories":   categories,
		"item_count":   v.ItemCount,
		"total_weight": v.TotalWeight,
		"grand_total":  v.GrandTotal,
	}, nil
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}
