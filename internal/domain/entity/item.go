package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ItemType bien o servicio.
type ItemType string

const (
	ItemTypeGoods   ItemType = "GOODS"
	ItemTypeService ItemType = "SERVICE"
)

// ItemTypes todos los tipos válidos, en orden estable (estadísticas).
var ItemTypes = []ItemType{ItemTypeGoods, ItemTypeService}

// Valid indica si el tipo es uno de los conocidos.
func (t ItemType) Valid() bool {
	return t == ItemTypeGoods || t == ItemTypeService
}

// ParseItemType interpreta el tipo sin distinguir mayúsculas. ok=false si no es válido.
func ParseItemType(s string) (ItemType, bool) {
	t := ItemType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Item representa un artículo del catálogo (bien o servicio).
// Name y SKU son únicos en todo el catálogo, activos e inactivos incluidos.
// Los campos numéricos opcionales usan NullDecimal: ausente no equivale a cero.
type Item struct {
	ID   string
	Name string
	Type ItemType
	Unit string

	Sellable         bool
	SellingPrice     decimal.NullDecimal
	SalesAccount     string
	SalesDescription string

	Purchasable         bool
	CostPrice           decimal.NullDecimal
	PurchaseAccount     string
	PurchaseDescription string
	PreferredVendor     string

	StockQuantity decimal.NullDecimal // solo tiene sentido para GOODS
	ReorderLevel  decimal.NullDecimal

	SKU     string // opcional; "" = sin SKU
	Barcode string

	TaxRate decimal.NullDecimal
	HSNCode string

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	UpdatedBy string
}

// IsLowStock solo para GOODS: stock <= nivel de reorden. Cantidades ausentes no cuentan.
func (i *Item) IsLowStock() bool {
	if i.Type != ItemTypeGoods || !i.StockQuantity.Valid || !i.ReorderLevel.Valid {
		return false
	}
	return i.StockQuantity.Decimal.LessThanOrEqual(i.ReorderLevel.Decimal)
}
