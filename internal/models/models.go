package models

import (
	"time"
)

// ProductLog is one entry of a product's history. Logs are kept newest first.
type ProductLog struct {
	Date   time.Time `json:"date"`
	Action string    `json:"action"`
}

// Product - a single physical item in the shop. StockCount is 1 while on the shelf, 0 once sold.
type Product struct {
	ID            string       `gorm:"column:id;primaryKey;type:varchar(255)" json:"id"`
	Code          string       `gorm:"column:code;type:varchar(255);index;not null" json:"code"`
	Name          string       `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Carat         int          `gorm:"column:carat;type:int;not null" json:"carat"`
	Type          string       `gorm:"column:type;type:varchar(255);index;not null" json:"type"`
	Supplier      string       `gorm:"column:supplier;type:varchar(255);not null" json:"supplier"`
	Brilliant     string       `gorm:"column:brilliant;type:text" json:"brilliant,omitempty"`
	Weight        float64      `gorm:"column:weight;type:double;not null" json:"weight"`
	SupplierPrice float64      `gorm:"column:supplierPrice;type:double;not null" json:"supplierPrice"`
	Price         float64      `gorm:"column:price;type:double;not null" json:"price"`
	StockCount    int          `gorm:"column:stockCount;type:int;not null;index" json:"stockCount"`
	ImageURL      string       `gorm:"column:imageUrl;type:longtext" json:"imageUrl,omitempty"`
	PurchaseDate  string       `gorm:"column:purchaseDate;type:varchar(255);index;not null" json:"purchaseDate"`
	Logs          []ProductLog `gorm:"column:logs;type:json;serializer:json" json:"logs"`
}

func (p *Product) InStock() bool {
	return p.StockCount == 1
}

// PrependLog records an action at the front of the history.
func (p *Product) PrependLog(at time.Time, action string) {
	p.Logs = append([]ProductLog{{Date: at, Action: action}}, p.Logs...)
}

type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusReturned  SaleStatus = "returned"
	SaleStatusExchanged SaleStatus = "exchanged"
)

// CanTransition reports whether a sale may move from s to next.
// Only completed sales move, and only to returned or exchanged.
func (s SaleStatus) CanTransition(next SaleStatus) bool {
	if s == next {
		return true
	}
	return s == SaleStatusCompleted && (next == SaleStatusReturned || next == SaleStatusExchanged)
}

// ProductSnapshot is the copy of a product taken at sale time.
// It is never refreshed from the live product row.
type ProductSnapshot struct {
	ProductID   string  `gorm:"column:productId;type:varchar(255);index" json:"productId"`
	ProductName string  `gorm:"column:productName;type:varchar(255)" json:"productName"`
	ProductCode string  `gorm:"column:productCode;type:varchar(255);index" json:"productCode"`
	Type        string  `gorm:"column:type;type:varchar(255)" json:"type"`
	Weight      float64 `gorm:"column:weight;type:double" json:"weight"`
	Carat       int     `gorm:"column:carat;type:int" json:"carat"`
	Supplier    string  `gorm:"column:supplier;type:varchar(255)" json:"supplier"`
	Brilliant   string  `gorm:"column:brilliant;type:text" json:"brilliant,omitempty"`
	ImageURL    string  `gorm:"column:imageUrl;type:longtext" json:"imageUrl,omitempty"`
}

func SnapshotOf(p Product) ProductSnapshot {
	return ProductSnapshot{
		ProductID:   p.ID,
		ProductName: p.Name,
		ProductCode: p.Code,
		Type:        p.Type,
		Weight:      p.Weight,
		Carat:       p.Carat,
		Supplier:    p.Supplier,
		Brilliant:   p.Brilliant,
		ImageURL:    p.ImageURL,
	}
}

// Sale - one line of a checkout. Lines of the same checkout share the ID prefix.
type Sale struct {
	ID string `gorm:"column:id;primaryKey;type:varchar(255)" json:"id"`
	ProductSnapshot
	CustomerName string     `gorm:"column:customerName;type:varchar(255)" json:"customerName"`
	Price        float64    `gorm:"column:price;type:double" json:"price"`
	Discount     float64    `gorm:"column:discount;type:double" json:"discount"`
	Total        float64    `gorm:"column:total;type:double" json:"total"`
	Date         time.Time  `gorm:"column:date;type:varchar(255);index;serializer:isotime" json:"date"`
	Status       SaleStatus `gorm:"column:status;type:varchar(50);index" json:"status"`
	ReturnNote   string     `gorm:"column:returnNote;type:text" json:"returnNote,omitempty"`
}

// Customer - debts are plain counters, cash in currency and gold in grams.
type Customer struct {
	ID       string  `gorm:"column:id;primaryKey;type:varchar(255)" json:"id"`
	FullName string  `gorm:"column:fullName;type:varchar(255);not null" json:"fullName"`
	Phone    string  `gorm:"column:phone;type:varchar(255);not null" json:"phone"`
	Title    string  `gorm:"column:title;type:varchar(255)" json:"title,omitempty"`
	Address  string  `gorm:"column:address;type:text" json:"address,omitempty"`
	CashDebt float64 `gorm:"column:cashDebt;type:double;default:0" json:"cashDebt"`
	GoldDebt float64 `gorm:"column:goldDebt;type:double;default:0" json:"goldDebt"`
}

type ScrapPhone struct {
	Number string `json:"number"`
	Owner  string `json:"owner"`
}

type ScrapItem struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Carat  int     `json:"carat"`
	Image  string  `json:"image,omitempty"`
}

// ScrapGold - a buy-back intake. Written once, never updated.
type ScrapGold struct {
	ID           string       `gorm:"column:id;primaryKey;type:varchar(255)" json:"id"`
	CustomerName string       `gorm:"column:customerName;type:varchar(255)" json:"customerName"`
	IDCardFin    string       `gorm:"column:idCardFin;type:varchar(255)" json:"idCardFin"`
	Phones       []ScrapPhone `gorm:"column:phones;type:json;serializer:json" json:"phones"`
	Items        []ScrapItem  `gorm:"column:items;type:json;serializer:json" json:"items"`
	PricePerGram float64      `gorm:"column:pricePerGram;type:double" json:"pricePerGram"`
	TotalPrice   float64      `gorm:"column:totalPrice;type:double" json:"totalPrice"`
	PersonImage  string       `gorm:"column:personImage;type:longtext" json:"personImage,omitempty"`
	IDCardImage  string       `gorm:"column:idCardImage;type:longtext" json:"idCardImage,omitempty"`
	IsMelted     bool         `gorm:"column:isMelted;type:boolean" json:"isMelted"`
	Date         time.Time    `gorm:"column:date;type:varchar(255);index;serializer:isotime" json:"date"`
}

func (s *ScrapGold) TotalWeight() float64 {
	var total float64
	for _, item := range s.Items {
		total += item.Weight
	}
	return total
}

func (ScrapGold) TableName() string { return "scraps" }
