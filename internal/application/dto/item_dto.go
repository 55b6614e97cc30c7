package dto

import (
	"time"

	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemRequest body para POST y PUT /api/items.
// Sellable/Purchasable ausentes: true en creación, sin cambio en actualización.
type ItemRequest struct {
	Name                string              `json:"name"`
	Type                string              `json:"type"`
	Unit                string              `json:"unit"`
	Sellable            *bool               `json:"sellable"`
	SellingPrice        decimal.NullDecimal `json:"selling_price"`
	SalesAccount        string              `json:"sales_account"`
	SalesDescription    string              `json:"sales_description"`
	Purchasable         *bool               `json:"purchasable"`
	CostPrice           decimal.NullDecimal `json:"cost_price"`
	PurchaseAccount     string              `json:"purchase_account"`
	PurchaseDescription string              `json:"purchase_description"`
	PreferredVendor     string              `json:"preferred_vendor"`
	StockQuantity       decimal.NullDecimal `json:"stock_quantity"`
	ReorderLevel        decimal.NullDecimal `json:"reorder_level"`
	SKU                 string              `json:"sku"`
	Barcode             string              `json:"barcode"`
	TaxRate             decimal.NullDecimal `json:"tax_rate"`
	HSNCode             string              `json:"hsn_code"`
}

// ItemResponse artículo en respuestas.
type ItemResponse struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	Type                string              `json:"type"`
	Unit                string              `json:"unit,omitempty"`
	Sellable            bool                `json:"sellable"`
	SellingPrice        decimal.NullDecimal `json:"selling_price"`
	SalesAccount        string              `json:"sales_account,omitempty"`
	SalesDescription    string              `json:"sales_description,omitempty"`
	Purchasable         bool                `json:"purchasable"`
	CostPrice           decimal.NullDecimal `json:"cost_price"`
	PurchaseAccount     string              `json:"purchase_account,omitempty"`
	PurchaseDescription string              `json:"purchase_description,omitempty"`
	PreferredVendor     string              `json:"preferred_vendor,omitempty"`
	StockQuantity       decimal.NullDecimal `json:"stock_quantity"`
	ReorderLevel        decimal.NullDecimal `json:"reorder_level"`
	LowStock            bool                `json:"low_stock"`
	SKU                 string              `json:"sku,omitempty"`
	Barcode             string              `json:"barcode,omitempty"`
	TaxRate             decimal.NullDecimal `json:"tax_rate"`
	HSNCode             string              `json:"hsn_code,omitempty"`
	Active              bool                `json:"active"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
	CreatedBy           string              `json:"created_by,omitempty"`
	UpdatedBy           string              `json:"updated_by,omitempty"`
}

// ItemStatisticsResponse respuesta de GET /api/items/statistics.
type ItemStatisticsResponse struct {
	TotalItems    int64 `json:"total_items"`
	GoodsCount    int64 `json:"goods_count"`
	ServicesCount int64 `json:"services_count"`
	LowStockCount int64 `json:"low_stock_count"`
}

// NewItemResponse proyecta un Item almacenado.
func NewItemResponse(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:                  i.ID,
		Name:                i.Name,
		Type:                string(i.Type),
		Unit:                i.Unit,
		Sellable:            i.Sellable,
		SellingPrice:        i.SellingPrice,
		SalesAccount:        i.SalesAccount,
		SalesDescription:    i.SalesDescription,
		Purchasable:         i.Purchasable,
		CostPrice:           i.CostPrice,
		PurchaseAccount:     i.PurchaseAccount,
		PurchaseDescription: i.PurchaseDescription,
		PreferredVendor:     i.PreferredVendor,
		StockQuantity:       i.StockQuantity,
		ReorderLevel:        i.ReorderLevel,
		LowStock:            i.IsLowStock(),
		SKU:                 i.SKU,
		Barcode:             i.Barcode,
		TaxRate:             i.TaxRate,
		HSNCode:             i.HSNCode,
		Active:              i.Active,
		CreatedAt:           i.CreatedAt,
		UpdatedAt:           i.UpdatedAt,
		CreatedBy:           i.CreatedBy,
		UpdatedBy:           i.UpdatedBy,
	}
}
