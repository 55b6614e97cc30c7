package repository

import (
	"context"

	"github.com/jhoicas/maestros-api/internal/domain/entity"
)

// Campos ordenables de Customer (nombres de la API).
const (
	CustomerSortID                 = "id"
	CustomerSortDisplayName        = "displayName"
	CustomerSortCompanyName        = "companyName"
	CustomerSortEmail              = "email"
	CustomerSortCustomerType       = "customerType"
	CustomerSortReceivablesBalance = "receivablesBalance"
	CustomerSortCreatedAt          = "createdAt"
	CustomerSortUpdatedAt          = "updatedAt"
)

// CustomerSortFields lista blanca de SortBy para clientes.
var CustomerSortFields = map[string]bool{
	CustomerSortID:                 true,
	CustomerSortDisplayName:        true,
	CustomerSortCompanyName:        true,
	CustomerSortEmail:              true,
	CustomerSortCustomerType:       true,
	CustomerSortReceivablesBalance: true,
	CustomerSortCreatedAt:          true,
	CustomerSortUpdatedAt:          true,
}

// CustomerRepository define el puerto de persistencia para Customer (DIP).
// GetByID devuelve (nil, nil) si el id no existe. Update y Delete devuelven
// domain.ErrNotFound si no afectan ninguna fila. Los fallos del driver llegan como *domain.StoreError.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)

	ListActive(ctx context.Context, page PageRequest) (Page[*entity.Customer], error)
	ListAllActive(ctx context.Context, limit int) ([]*entity.Customer, error)
	ListActiveByType(ctx context.Context, customerType entity.CustomerType, page PageRequest) (Page[*entity.Customer], error)
	// SearchActive coincidencia por subcadena, sin distinguir mayúsculas, en display name, email o empresa.
	SearchActive(ctx context.Context, term string, page PageRequest) (Page[*entity.Customer], error)
	ListWithOutstandingBalance(ctx context.Context, limit int) ([]*entity.Customer, error)

	// ExistsActiveDisplayName indica si otro cliente activo (id != excludeID) usa el display name.
	ExistsActiveDisplayName(ctx context.Context, displayName, excludeID string) (bool, error)

	CountActive(ctx context.Context) (int64, error)
	CountActiveByType(ctx context.Context, customerType entity.CustomerType) (int64, error)
	CountWithOutstandingBalance(ctx context.Context) (int64, error)
}
