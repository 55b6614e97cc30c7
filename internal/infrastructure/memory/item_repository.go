package memory

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
)

// ItemRepository implementación en memoria de repository.ItemRepository.
// Replica las restricciones únicas de la tabla items (name, sku).
type ItemRepository struct {
	s *Store
}

var _ repository.ItemRepository = (*ItemRepository)(nil)

func cloneItem(it *entity.Item) *entity.Item {
	out := *it
	return &out
}

// checkUnique debe llamarse con s.mu tomado.
func (r *ItemRepository) checkUnique(it *entity.Item) error {
	for _, other := range r.s.items {
		if other.ID == it.ID {
			continue
		}
		if other.Name == it.Name {
			return domain.NewConflictError("name", it.Name, "ya existe un artículo con ese nombre")
		}
		if it.SKU != "" && other.SKU == it.SKU {
			return domain.NewConflictError("sku", it.SKU, "ya existe un artículo con ese SKU")
		}
	}
	return nil
}

func (r *ItemRepository) Create(ctx context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[it.ID]; ok {
		return domain.NewStoreError("item.create", errors.New("id duplicado: "+it.ID))
	}
	if err := r.checkUnique(it); err != nil {
		return err
	}
	r.s.items[it.ID] = cloneItem(it)
	return nil
}

func (r *ItemRepository) Update(ctx context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[it.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.checkUnique(it); err != nil {
		return err
	}
	r.s.items[it.ID] = cloneItem(it)
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return cloneItem(it), nil
}

func (r *ItemRepository) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	if sku == "" {
		return nil, nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, it := range r.s.items {
		if it.SKU == sku {
			return cloneItem(it), nil
		}
	}
	return nil, nil
}

func (r *ItemRepository) filter(keep func(*entity.Item) bool) []*entity.Item {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Item, 0, len(r.s.items))
	for _, it := range r.s.items {
		if it.Active && (keep == nil || keep(it)) {
			out = append(out, cloneItem(it))
		}
	}
	return out
}

func (r *ItemRepository) count(keep func(*entity.Item) bool) int64 {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, it := range r.s.items {
		if it.Active && (keep == nil || keep(it)) {
			n++
		}
	}
	return n
}

func (r *ItemRepository) page(keep func(*entity.Item) bool, req repository.PageRequest) repository.Page[*entity.Item] {
	list := r.filter(keep)
	sortItems(list, req)
	return paginate(list, req)
}

func (r *ItemRepository) sortedList(keep func(*entity.Item) bool, limit int) []*entity.Item {
	list := r.filter(keep)
	sortItems(list, repository.PageRequest{SortBy: repository.ItemSortName, SortDir: repository.SortAsc})
	return limitList(list, limit)
}

func (r *ItemRepository) ListActive(ctx context.Context, req repository.PageRequest) (repository.Page[*entity.Item], error) {
	return r.page(nil, req), nil
}

func (r *ItemRepository) ListAllActive(ctx context.Context, limit int) ([]*entity.Item, error) {
	return r.sortedList(nil, limit), nil
}

func (r *ItemRepository) ListActiveByType(ctx context.Context, t entity.ItemType, req repository.PageRequest) (repository.Page[*entity.Item], error) {
	return r.page(func(it *entity.Item) bool { return it.Type == t }, req), nil
}

func (r *ItemRepository) SearchActive(ctx context.Context, term string, req repository.PageRequest) (repository.Page[*entity.Item], error) {
	lower := strings.ToLower(term)
	return r.page(func(it *entity.Item) bool {
		return containsFold(it.Name, lower) || (it.SKU != "" && containsFold(it.SKU, lower))
	}, req), nil
}

func (r *ItemRepository) ListSellable(ctx context.Context, limit int) ([]*entity.Item, error) {
	return r.sortedList(func(it *entity.Item) bool { return it.Sellable }, limit), nil
}

func (r *ItemRepository) ListPurchasable(ctx context.Context, limit int) ([]*entity.Item, error) {
	return r.sortedList(func(it *entity.Item) bool { return it.Purchasable }, limit), nil
}

func (r *ItemRepository) ListLowStock(ctx context.Context, limit int) ([]*entity.Item, error) {
	return r.sortedList((*entity.Item).IsLowStock, limit), nil
}

func (r *ItemRepository) ExistsName(ctx context.Context, name, excludeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, it := range r.s.items {
		if it.ID != excludeID && it.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *ItemRepository) ExistsSKU(ctx context.Context, sku, excludeID string) (bool, error) {
	if sku == "" {
		return false, nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, it := range r.s.items {
		if it.ID != excludeID && it.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (r *ItemRepository) CountActive(ctx context.Context) (int64, error) {
	return r.count(nil), nil
}

func (r *ItemRepository) CountActiveByType(ctx context.Context, t entity.ItemType) (int64, error) {
	return r.count(func(it *entity.Item) bool { return it.Type == t }), nil
}

func (r *ItemRepository) CountLowStock(ctx context.Context) (int64, error) {
	return r.count((*entity.Item).IsLowStock), nil
}
