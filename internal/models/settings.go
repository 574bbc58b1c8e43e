package models

import "gorm.io/datatypes"

// SettingsVersion is the shape version written by this build.
// Bump it together with a step in Migrate.
const SettingsVersion = 2

type LabelField string

const (
	LabelFieldShopName  LabelField = "shopName"
	LabelFieldCode      LabelField = "code"
	LabelFieldWeight    LabelField = "weight"
	LabelFieldPrice     LabelField = "price"
	LabelFieldCarat     LabelField = "carat"
	LabelFieldSupplier  LabelField = "supplier"
	LabelFieldBrilliant LabelField = "brilliant"
	LabelFieldCurrency  LabelField = "currency"
)

// LabelElement is one positioned text box. X and Y are percentages of the label size.
type LabelElement struct {
	ID       string     `json:"id"`
	Field    LabelField `json:"field"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	FontSize float64    `json:"fontSize"`
	Visible  bool       `json:"visible"`
	Bold     bool       `json:"bold"`
}

// LabelConfig sizes are millimetres.
type LabelConfig struct {
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	Elements []LabelElement `json:"elements"`
}

// AppSettings is the singleton shop configuration.
// DeleteCode and AdminPassword are stored as entered.
type AppSettings struct {
	Version            int         `json:"version"`
	DeleteCode         string      `json:"deleteCode"`
	AdminPassword      string      `json:"adminPassword"`
	PrinterName        string      `json:"printerName"`
	ShopName           string      `json:"shopName"`
	ProductTypes       []string    `json:"productTypes"`
	Suppliers          []string    `json:"suppliers"`
	Carats             []int       `json:"carats"`
	PricePerGram       float64     `json:"pricePerGram"`
	LabelConfig        LabelConfig `json:"labelConfig"`
	SilentPrinting     bool        `json:"silentPrinting"`
	ReceiptPrinterPath string      `json:"receiptPrinterPath"`
	LabelPrinterPath   string      `json:"labelPrinterPath"`
	ReceiptFontWeight  string      `json:"receiptFontWeight"`
	LabelFontWeight    string      `json:"labelFontWeight"`
}

func DefaultLabelConfig() LabelConfig {
	return LabelConfig{
		Width:  80,
		Height: 25,
		Elements: []LabelElement{
			{ID: "1", Field: LabelFieldShopName, X: 5, Y: 5, FontSize: 10, Visible: true, Bold: true},
			{ID: "2", Field: LabelFieldCode, X: 5, Y: 35, FontSize: 24, Visible: true, Bold: true},
			{ID: "3", Field: LabelFieldWeight, X: 25, Y: 75, FontSize: 12, Visible: true, Bold: true},
			{ID: "4", Field: LabelFieldSupplier, X: 55, Y: 5, FontSize: 10, Visible: true, Bold: true},
			{ID: "5", Field: LabelFieldCarat, X: 75, Y: 5, FontSize: 10, Visible: true, Bold: true},
			{ID: "6", Field: LabelFieldBrilliant, X: 55, Y: 25, FontSize: 8, Visible: true, Bold: true},
			{ID: "7", Field: LabelFieldPrice, X: 45, Y: 55, FontSize: 24, Visible: true, Bold: true},
			{ID: "8", Field: LabelFieldCurrency, X: 85, Y: 75, FontSize: 10, Visible: true, Bold: true},
		},
	}
}

// DefaultSettings is what a fresh shop starts with before anything is saved.
func DefaultSettings() AppSettings {
	return AppSettings{
		Version:       SettingsVersion,
		DeleteCode:    "1234",
		AdminPassword: "admin",
		PrinterName:   "Epson POS-80",
		ShopName:      "NEKO GOLD",
		ProductTypes: []string{
			"Üzük", "Sırğa", "Boyunbağı", "Qolbaq", "Dəst", "Zəncir", "Set", "Saat", "Sep", "Külçə", "Digər",
		},
		Suppliers:         []string{"Tədərükçü A", "Tədərükçü B", "Atelye X"},
		Carats:            []int{14, 18, 22, 24},
		PricePerGram:      400,
		LabelConfig:       DefaultLabelConfig(),
		ReceiptFontWeight: "600",
		LabelFontWeight:   "600",
	}
}

// Migrate upgrades a stored document to SettingsVersion and reports whether anything changed.
//
// Version 0 documents predate versioning and may miss any field.
// Version 1 documents lack printerName and font weights.
func (s *AppSettings) Migrate() bool {
	if s.Version >= SettingsVersion {
		return false
	}
	def := DefaultSettings()

	if s.Version < 1 {
		if s.ShopName == "" {
			s.ShopName = def.ShopName
		}
		if len(s.ProductTypes) == 0 {
			s.ProductTypes = def.ProductTypes
		}
		if len(s.Suppliers) == 0 {
			s.Suppliers = def.Suppliers
		}
		if len(s.Carats) == 0 {
			s.Carats = def.Carats
		}
		if s.PricePerGram == 0 {
			s.PricePerGram = def.PricePerGram
		}
		if s.LabelConfig.Width == 0 || s.LabelConfig.Height == 0 {
			s.LabelConfig.Width, s.LabelConfig.Height = def.LabelConfig.Width, def.LabelConfig.Height
		}
		if len(s.LabelConfig.Elements) == 0 {
			s.LabelConfig.Elements = def.LabelConfig.Elements
		}
	}

	if s.Version < 2 {
		if s.PrinterName == "" {
			s.PrinterName = def.PrinterName
		}
		if s.ReceiptFontWeight == "" {
			s.ReceiptFontWeight = def.ReceiptFontWeight
		}
		if s.LabelFontWeight == "" {
			s.LabelFontWeight = def.LabelFontWeight
		}
	}

	s.Version = SettingsVersion
	return true
}

// SettingsRecord is the single settings row. ID is always 1.
type SettingsRecord struct {
	ID     uint                            `gorm:"column:id;primaryKey;autoIncrement:false;type:int"`
	Config datatypes.JSONType[AppSettings] `gorm:"column:config;type:json;not null"`
}

func (SettingsRecord) TableName() string { return "settings" }
