// Package label turns a label layout and a product into the text boxes a printer draws.
package label

import (
	"strconv"

	"gold-pos/internal/models"
	"gold-pos/internal/pricing"
)

// Element is a positioned piece of text, ready to print.
type Element struct {
	ID       string            `json:"id"`
	Field    models.LabelField `json:"field"`
	Text     string            `json:"text"`
	X        float64           `json:"x"`
	Y        float64           `json:"y"`
	FontSize float64           `json:"fontSize"`
	Bold     bool              `json:"bold"`
}

// Label is one rendered sticker. Width and Height are millimetres.
type Label struct {
	ProductID  string    `json:"productId"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	FontWeight string    `json:"fontWeight"`
	Elements   []Element `json:"elements"`
}

// FieldText maps a label field to the product value it shows.
func FieldText(field models.LabelField, shopName string, p models.Product) string {
	switch field {
	case models.LabelFieldShopName:
		return shopName
	case models.LabelFieldCode:
		return p.Code
	case models.LabelFieldWeight:
		return strconv.FormatFloat(p.Weight, 'f', -1, 64)
	case models.LabelFieldPrice:
		return pricing.FormatAmount(p.Price)
	case models.LabelFieldCarat:
		return strconv.Itoa(p.Carat)
	case models.LabelFieldSupplier:
		return p.Supplier
	case models.LabelFieldBrilliant:
		return p.Brilliant
	case models.LabelFieldCurrency:
		return pricing.Currency
	default:
		return ""
	}
}

// alwaysShown fields render even when their text is empty.
func alwaysShown(field models.LabelField) bool {
	return field == models.LabelFieldShopName || field == models.LabelFieldCurrency
}

// Render lays out a product using the shop settings. Hidden elements are skipped,
// and so are empty ones unless they are the shop name or the currency.
func Render(settings models.AppSettings, p models.Product) Label {
	cfg := settings.LabelConfig
	out := Label{
		ProductID:  p.ID,
		Width:      cfg.Width,
		Height:     cfg.Height,
		FontWeight: settings.LabelFontWeight,
		Elements:   make([]Element, 0, len(cfg.Elements)),
	}

	for _, el := range cfg.Elements {
		if !el.Visible {
			continue
		}
		text := FieldText(el.Field, settings.ShopName, p)
		if text == "" && !alwaysShown(el.Field) {
			continue
		}
		out.Elements = append(out.Elements, Element{
			ID:       el.ID,
			Field:    el.Field,
			Text:     text,
			X:        el.X,
			Y:        el.Y,
			FontSize: el.FontSize,
			Bold:     el.Bold,
		})
	}

	return out
}

// RenderAll renders one label per product, in order.
func RenderAll(settings models.AppSettings, products []models.Product) []Label {
	labels := make([]Label, len(products))
	for i, p := range products {
		labels[i] = Render(settings, p)
	}
	return labels
}
