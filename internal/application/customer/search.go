package customer

import (
	"context"

	"github.com/jhoicas/maestros-api/internal/application/lifecycle"
	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
)

// List clientes activos, paginados y ordenados. SortBy desconocido es un ValidationError.
func (uc *UseCase) List(ctx context.Context, q lifecycle.PageQuery) (repository.Page[*entity.Customer], error) {
	page, err := lifecycle.NormalizePage(q, repository.CustomerSortFields, repository.CustomerSortDisplayName)
	if err != nil {
		return repository.Page[*entity.Customer]{}, err
	}
	return uc.repo.ListActive(ctx, page)
}

// ListAll todos los clientes activos sin paginar, acotado por maxUnpaginated.
// Pensado para listas de referencia pequeñas (selects del frontend).
func (uc *UseCase) ListAll(ctx context.Context) ([]*entity.Customer, error) {
	list, err := uc.repo.ListAllActive(ctx, uc.maxUnpaginated)
	if err != nil {
		return nil, err
	}
	uc.warnIfTruncated("list_all", len(list))
	return list, nil
}

// Search subcadena sin distinguir mayúsculas en display name, email o empresa, solo activos.
// El término se usa tal cual llega: vacío coincide con todo y los espacios cuentan.
func (uc *UseCase) Search(ctx context.Context, term string, q lifecycle.PageQuery) (repository.Page[*entity.Customer], error) {
	page, err := lifecycle.NormalizePage(q, repository.CustomerSortFields, repository.CustomerSortDisplayName)
	if err != nil {
		return repository.Page[*entity.Customer]{}, err
	}
	return uc.repo.SearchActive(ctx, term, page)
}

// GetByType clientes activos del tipo indicado, paginados.
func (uc *UseCase) GetByType(ctx context.Context, customerType string, q lifecycle.PageQuery) (repository.Page[*entity.Customer], error) {
	t, ok := entity.ParseCustomerType(customerType)
	if !ok {
		return repository.Page[*entity.Customer]{}, domain.NewValidationError("customer_type", "tipo de cliente inválido: "+customerType)
	}
	page, err := lifecycle.NormalizePage(q, repository.CustomerSortFields, repository.CustomerSortDisplayName)
	if err != nil {
		return repository.Page[*entity.Customer]{}, err
	}
	return uc.repo.ListActiveByType(ctx, t, page)
}

// GetOutstanding clientes activos con saldo por cobrar > 0 (un saldo de 0 no cuenta).
func (uc *UseCase) GetOutstanding(ctx context.Context) ([]*entity.Customer, error) {
	list, err := uc.repo.ListWithOutstandingBalance(ctx, uc.maxUnpaginated)
	if err != nil {
		return nil, err
	}
	uc.warnIfTruncated("outstanding", len(list))
	return list, nil
}

func (uc *UseCase) warnIfTruncated(op string, n int) {
	if n >= uc.maxUnpaginated {
		uc.log.Warn().Str("entity", entityName).Str("op", op).Int("limit", uc.maxUnpaginated).
			Msg("listado sin paginar alcanzó el tope; use el endpoint paginado")
	}
}
