package customer

import (
	"context"
	"strings"

	"github.com/jhoicas/maestros-api/internal/application/lifecycle"
	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
)

// ValidateCustomer reglas puras, en orden: display name y tipo requeridos, tipo conocido,
// saldos dentro del rango almacenable. Devuelve la primera violación.
func ValidateCustomer(c *entity.Customer) error {
	if strings.TrimSpace(c.DisplayName) == "" {
		return domain.NewValidationError("display_name", "el display name es requerido")
	}
	if c.CustomerType == "" {
		return domain.NewValidationError("customer_type", "el tipo de cliente es requerido")
	}
	if !c.CustomerType.Valid() {
		return domain.NewValidationError("customer_type", "tipo de cliente inválido: "+string(c.CustomerType))
	}
	if c.OpeningBalance.Valid && !lifecycle.WithinBound(c.OpeningBalance.Decimal, lifecycle.MaxAmount) {
		return domain.NewValidationError("opening_balance", "saldo inicial fuera de rango")
	}
	if !lifecycle.WithinBound(c.ReceivablesBalance, lifecycle.MaxAmount) {
		return domain.NewValidationError("receivables_balance", "saldo por cobrar fuera de rango")
	}
	return nil
}

// validate aplica las reglas puras y luego la sonda de unicidad contra el store.
// El display name solo es único entre clientes activos; excludeID excluye al propio registro.
func validate(ctx context.Context, repo repository.CustomerRepository, c *entity.Customer, excludeID string) error {
	if err := ValidateCustomer(c); err != nil {
		return err
	}
	taken, err := repo.ExistsActiveDisplayName(ctx, c.DisplayName, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.NewConflictError("display_name", c.DisplayName, "ya existe un cliente activo con ese display name")
	}
	return nil
}
