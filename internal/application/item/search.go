package item

import (
	"context"

	"github.com/jhoicas/maestros-api/internal/application/lifecycle"
	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
)

// List artículos activos, paginados y ordenados. SortBy desconocido es un ValidationError.
func (uc *UseCase) List(ctx context.Context, q lifecycle.PageQuery) (repository.Page[*entity.Item], error) {
	page, err := lifecycle.NormalizePage(q, repository.ItemSortFields, repository.ItemSortName)
	if err != nil {
		return repository.Page[*entity.Item]{}, err
	}
	return uc.repo.ListActive(ctx, page)
}

// ListAll artículos activos sin paginar, acotado por maxUnpaginated.
func (uc *UseCase) ListAll(ctx context.Context) ([]*entity.Item, error) {
	return uc.bounded(ctx, "list_all", uc.repo.ListAllActive)
}

// Search subcadena sin distinguir mayúsculas en nombre o SKU, solo activos.
func (uc *UseCase) Search(ctx context.Context, term string, q lifecycle.PageQuery) (repository.Page[*entity.Item], error) {
	page, err := lifecycle.NormalizePage(q, repository.ItemSortFields, repository.ItemSortName)
	if err != nil {
		return repository.Page[*entity.Item]{}, err
	}
	return uc.repo.SearchActive(ctx, term, page)
}

// GetByType artículos activos del tipo indicado, paginados.
func (uc *UseCase) GetByType(ctx context.Context, itemType string, q lifecycle.PageQuery) (repository.Page[*entity.Item], error) {
	t, ok := entity.ParseItemType(itemType)
	if !ok {
		return repository.Page[*entity.Item]{}, domain.NewValidationError("type", "tipo de artículo inválido: "+itemType)
	}
	page, err := lifecycle.NormalizePage(q, repository.ItemSortFields, repository.ItemSortName)
	if err != nil {
		return repository.Page[*entity.Item]{}, err
	}
	return uc.repo.ListActiveByType(ctx, t, page)
}

// GetSellable artículos activos vendibles (órdenes de venta).
func (uc *UseCase) GetSellable(ctx context.Context) ([]*entity.Item, error) {
	return uc.bounded(ctx, "sellable", uc.repo.ListSellable)
}

// GetPurchasable artículos activos comprables (órdenes de compra).
func (uc *UseCase) GetPurchasable(ctx context.Context) ([]*entity.Item, error) {
	return uc.bounded(ctx, "purchasable", uc.repo.ListPurchasable)
}

// GetLowStock bienes activos con stock <= nivel de reorden. Los servicios nunca aparecen.
func (uc *UseCase) GetLowStock(ctx context.Context) ([]*entity.Item, error) {
	return uc.bounded(ctx, "low_stock", uc.repo.ListLowStock)
}

func (uc *UseCase) bounded(
	ctx context.Context,
	op string,
	fn func(ctx context.Context, limit int) ([]*entity.Item, error),
) ([]*entity.Item, error) {
	list, err := fn(ctx, uc.maxUnpaginated)
	if err != nil {
		return nil, err
	}
	if len(list) >= uc.maxUnpaginated {
		uc.log.Warn().Str("entity", entityName).Str("op", op).Int("limit", uc.maxUnpaginated).
			Msg("listado sin paginar alcanzó el tope; use el endpoint paginado")
	}
	return list, nil
}
