package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

var itemCols = []string{
	"id", "name", "item_type", "unit",
	"sellable", "selling_price", "sales_account", "sales_description",
	"purchasable", "cost_price", "purchase_account", "purchase_description", "preferred_vendor",
	"stock_quantity", "reorder_level", "sku", "barcode", "tax_rate", "hsn_code",
	"active", "created_at", "updated_at", "created_by", "updated_by",
}

var itemColumns = strings.Join(itemCols, ", ")

var itemSortColumns = map[string]string{
	repository.ItemSortID:            "id",
	repository.ItemSortName:          "name",
	repository.ItemSortSKU:           "sku",
	repository.ItemSortType:          "item_type",
	repository.ItemSortSellingPrice:  "selling_price",
	repository.ItemSortCostPrice:     "cost_price",
	repository.ItemSortStockQuantity: "stock_quantity",
	repository.ItemSortCreatedAt:     "created_at",
	repository.ItemSortUpdatedAt:     "updated_at",
}

const (
	defaultItemOrder = "ORDER BY name ASC, id ASC"
	lowStockWhere    = "active AND item_type = 'GOODS' AND stock_quantity IS NOT NULL AND reorder_level IS NOT NULL AND stock_quantity <= reorder_level"
)

// Constraints únicos de la tabla items (ver schema.sql).
const (
	itemNameConstraint = "uq_items_name"
	itemSKUConstraint  = "uq_items_sku"
)

// ItemRepo implementación de ItemRepository (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func itemArgs(it *entity.Item) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":                   it.ID,
		"name":                 it.Name,
		"item_type":            string(it.Type),
		"unit":                 it.Unit,
		"sellable":             it.Sellable,
		"selling_price":        it.SellingPrice,
		"sales_account":        it.SalesAccount,
		"sales_description":    it.SalesDescription,
		"purchasable":          it.Purchasable,
		"cost_price":           it.CostPrice,
		"purchase_account":     it.PurchaseAccount,
		"purchase_description": it.PurchaseDescription,
		"preferred_vendor":     it.PreferredVendor,
		"stock_quantity":       it.StockQuantity,
		"reorder_level":        it.ReorderLevel,
		"sku":                  nullIfEmpty(it.SKU),
		"barcode":              it.Barcode,
		"tax_rate":             it.TaxRate,
		"hsn_code":             it.HSNCode,
		"active":               it.Active,
		"created_at":           it.CreatedAt,
		"updated_at":           it.UpdatedAt,
		"created_by":           it.CreatedBy,
		"updated_by":           it.UpdatedBy,
	}
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var itype string
	var sku *string
	err := row.Scan(
		&it.ID, &it.Name, &itype, &it.Unit,
		&it.Sellable, &it.SellingPrice, &it.SalesAccount, &it.SalesDescription,
		&it.Purchasable, &it.CostPrice, &it.PurchaseAccount, &it.PurchaseDescription, &it.PreferredVendor,
		&it.StockQuantity, &it.ReorderLevel, &sku, &it.Barcode, &it.TaxRate, &it.HSNCode,
		&it.Active, &it.CreatedAt, &it.UpdatedAt, &it.CreatedBy, &it.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	it.Type = entity.ItemType(itype)
	if sku != nil {
		it.SKU = *sku
	}
	it.CreatedAt = it.CreatedAt.UTC()
	it.UpdatedAt = it.UpdatedAt.UTC()
	return &it, nil
}

// mapItemWriteErr traduce las violaciones de unicidad a ConflictError.
func mapItemWriteErr(op string, it *entity.Item, err error) error {
	if isUniqueViolation(err) {
		switch constraintName(err) {
		case itemNameConstraint:
			return domain.NewConflictError("name", it.Name, "ya existe un artículo con ese nombre")
		case itemSKUConstraint:
			return domain.NewConflictError("sku", it.SKU, "ya existe un artículo con ese SKU")
		}
	}
	return domain.NewStoreError(op, err)
}

// Create persiste un nuevo artículo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	if _, err := r.q.Exec(ctx, insertSQL("items", itemCols), itemArgs(item)); err != nil {
		return mapItemWriteErr("item.create", item, err)
	}
	return nil
}

// Update sobrescribe el registro completo salvo id y datos de creación.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	tag, err := r.q.Exec(ctx, updateSQL("items", itemCols, "id", "created_at", "created_by"), itemArgs(item))
	if err != nil {
		return mapItemWriteErr("item.update", item, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un artículo por ID.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return domain.NewStoreError("item.delete", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) getOne(ctx context.Context, op, where string, arg any) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, "SELECT "+itemColumns+" FROM items WHERE "+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStoreError(op, err)
	}
	return it, nil
}

// GetByID obtiene un artículo por ID, activo o no.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, "item.get", "id = $1", id)
}

// GetBySKU obtiene un artículo por SKU exacto, activo o no.
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	return r.getOne(ctx, "item.get_by_sku", "sku = $1", sku)
}

func (r *ItemRepo) page(ctx context.Context, op, where string, args pgx.NamedArgs, req repository.PageRequest) (repository.Page[*entity.Item], error) {
	order := orderBy(itemSortColumns, req, "name")
	return page(ctx, r.q, op, "items", itemColumns, where, args, order, req, scanItem)
}

func (r *ItemRepo) list(ctx context.Context, op, where string, limit int) ([]*entity.Item, error) {
	sql := "SELECT " + itemColumns + " FROM items WHERE " + where + " " + defaultItemOrder + " LIMIT @limit"
	return collect(ctx, r.q, op, sql, pgx.NamedArgs{"limit": limit}, scanItem)
}

func (r *ItemRepo) ListActive(ctx context.Context, req repository.PageRequest) (repository.Page[*entity.Item], error) {
	return r.page(ctx, "item.list", "active", pgx.NamedArgs{}, req)
}

func (r *ItemRepo) ListAllActive(ctx context.Context, limit int) ([]*entity.Item, error) {
	return r.list(ctx, "item.list_all", "active", limit)
}

func (r *ItemRepo) ListActiveByType(ctx context.Context, t entity.ItemType, req repository.PageRequest) (repository.Page[*entity.Item], error) {
	return r.page(ctx, "item.list_by_type", "active AND item_type = @type", pgx.NamedArgs{"type": string(t)}, req)
}

// SearchActive ILIKE sobre nombre y SKU.
func (r *ItemRepo) SearchActive(ctx context.Context, term string, req repository.PageRequest) (repository.Page[*entity.Item], error) {
	return r.page(ctx, "item.search", "active AND (name ILIKE @term OR sku ILIKE @term)",
		pgx.NamedArgs{"term": likePattern(term)}, req)
}

func (r *ItemRepo) ListSellable(ctx context.Context, limit int) ([]*entity.Item, error) {
	return r.list(ctx, "item.sellable", "active AND sellable", limit)
}

func (r *ItemRepo) ListPurchasable(ctx context.Context, limit int) ([]*entity.Item, error) {
	return r.list(ctx, "item.purchasable", "active AND purchasable", limit)
}

func (r *ItemRepo) ListLowStock(ctx context.Context, limit int) ([]*entity.Item, error) {
	return r.list(ctx, "item.low_stock", lowStockWhere, limit)
}

func (r *ItemRepo) ExistsName(ctx context.Context, name, excludeID string) (bool, error) {
	return exists(ctx, r.q, "item.exists_name",
		`SELECT EXISTS (SELECT 1 FROM items WHERE name = @name AND id <> @exclude)`,
		pgx.NamedArgs{"name": name, "exclude": excludeID})
}

func (r *ItemRepo) ExistsSKU(ctx context.Context, sku, excludeID string) (bool, error) {
	return exists(ctx, r.q, "item.exists_sku",
		`SELECT EXISTS (SELECT 1 FROM items WHERE sku = @sku AND id <> @exclude)`,
		pgx.NamedArgs{"sku": sku, "exclude": excludeID})
}

func (r *ItemRepo) CountActive(ctx context.Context) (int64, error) {
	return count(ctx, r.q, "item.count", `SELECT COUNT(*) FROM items WHERE active`, pgx.NamedArgs{})
}

func (r *ItemRepo) CountActiveByType(ctx context.Context, t entity.ItemType) (int64, error) {
	return count(ctx, r.q, "item.count_by_type",
		`SELECT COUNT(*) FROM items WHERE active AND item_type = @type`, pgx.NamedArgs{"type": string(t)})
}

func (r *ItemRepo) CountLowStock(ctx context.Context) (int64, error) {
	return count(ctx, r.q, "item.count_low_stock", "SELECT COUNT(*) FROM items WHERE "+lowStockWhere, pgx.NamedArgs{})
}
