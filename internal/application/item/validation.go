package item

import (
	"context"
	"strings"

	"github.com/jhoicas/maestros-api/internal/application/lifecycle"
	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ValidateItem reglas puras, en orden: nombre y tipo requeridos, tipo conocido,
// montos, cantidades y tasa no negativos y dentro del rango almacenable. Devuelve la primera violación.
func ValidateItem(it *entity.Item) error {
	if strings.TrimSpace(it.Name) == "" {
		return domain.NewValidationError("name", "el nombre del artículo es requerido")
	}
	if it.Type == "" {
		return domain.NewValidationError("type", "el tipo de artículo es requerido")
	}
	if !it.Type.Valid() {
		return domain.NewValidationError("type", "tipo de artículo inválido: "+string(it.Type))
	}
	checks := []struct {
		field string
		value decimal.NullDecimal
		limit decimal.Decimal
		msg   string
	}{
		{"selling_price", it.SellingPrice, lifecycle.MaxAmount, "el precio de venta debe ser positivo o cero"},
		{"cost_price", it.CostPrice, lifecycle.MaxAmount, "el precio de costo debe ser positivo o cero"},
		{"stock_quantity", it.StockQuantity, lifecycle.MaxAmount, "la cantidad en stock debe ser positiva o cero"},
		{"reorder_level", it.ReorderLevel, lifecycle.MaxAmount, "el nivel de reorden debe ser positivo o cero"},
		{"tax_rate", it.TaxRate, lifecycle.MaxTaxRate, "la tasa de impuesto debe ser positiva o cero"},
	}
	for _, c := range checks {
		if !c.value.Valid {
			continue
		}
		if c.value.Decimal.IsNegative() {
			return domain.NewValidationError(c.field, c.msg)
		}
		if !lifecycle.WithinBound(c.value.Decimal, c.limit) {
			return domain.NewValidationError(c.field, "valor fuera de rango, debe ser menor que "+c.limit.String())
		}
	}
	return nil
}

// validate reglas puras y sondas de unicidad globales (activos e inactivos):
// nombre siempre, SKU solo si viene informado.
func validate(ctx context.Context, repo repository.ItemRepository, it *entity.Item, excludeID string) error {
	if err := ValidateItem(it); err != nil {
		return err
	}
	taken, err := repo.ExistsName(ctx, it.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.NewConflictError("name", it.Name, "ya existe un artículo con ese nombre")
	}
	if it.SKU == "" {
		return nil
	}
	taken, err = repo.ExistsSKU(ctx, it.SKU, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.NewConflictError("sku", it.SKU, "ya existe un artículo con ese SKU")
	}
	return nil
}
