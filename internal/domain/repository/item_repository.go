package repository

//go:generate mockgen -source=item_repository.go -destination=mocks/item_repository_mock.go -package=mocks ItemRepository

import (
	"context"

	"github.com/jhoicas/maestros-api/internal/domain/entity"
)

// Campos ordenables de Item (nombres de la API).
const (
	ItemSortID            = "id"
	ItemSortName          = "name"
	ItemSortSKU           = "sku"
	ItemSortType          = "type"
	ItemSortSellingPrice  = "sellingPrice"
	ItemSortCostPrice     = "costPrice"
	ItemSortStockQuantity = "stockQuantity"
	ItemSortCreatedAt     = "createdAt"
	ItemSortUpdatedAt     = "updatedAt"
)

// ItemSortFields lista blanca de SortBy para artículos.
var ItemSortFields = map[string]bool{
	ItemSortID:            true,
	ItemSortName:          true,
	ItemSortSKU:           true,
	ItemSortType:          true,
	ItemSortSellingPrice:  true,
	ItemSortCostPrice:     true,
	ItemSortStockQuantity: true,
	ItemSortCreatedAt:     true,
	ItemSortUpdatedAt:     true,
}

// ItemRepository define el puerto de persistencia para Item (DIP).
// Mismas convenciones que CustomerRepository.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)

	ListActive(ctx context.Context, page PageRequest) (Page[*entity.Item], error)
	ListAllActive(ctx context.Context, limit int) ([]*entity.Item, error)
	ListActiveByType(ctx context.Context, itemType entity.ItemType, page PageRequest) (Page[*entity.Item], error)
	// SearchActive coincidencia por subcadena, sin distinguir mayúsculas, en nombre o SKU.
	SearchActive(ctx context.Context, term string, page PageRequest) (Page[*entity.Item], error)
	ListSellable(ctx context.Context, limit int) ([]*entity.Item, error)
	ListPurchasable(ctx context.Context, limit int) ([]*entity.Item, error)
	ListLowStock(ctx context.Context, limit int) ([]*entity.Item, error)

	// ExistsName / ExistsSKU consideran todos los artículos (activos o no) salvo excludeID.
	ExistsName(ctx context.Context, name, excludeID string) (bool, error)
	ExistsSKU(ctx context.Context, sku, excludeID string) (bool, error)

	CountActive(ctx context.Context) (int64, error)
	CountActiveByType(ctx context.Context, itemType entity.ItemType) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
}
