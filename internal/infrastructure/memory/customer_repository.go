package memory

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
)

// CustomerRepository implementación en memoria de repository.CustomerRepository.
type CustomerRepository struct {
	s *Store
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func cloneCustomer(c *entity.Customer) *entity.Customer {
	out := *c
	if c.LastContactAt != nil {
		t := *c.LastContactAt
		out.LastContactAt = &t
	}
	return &out
}

func (r *CustomerRepository) Create(ctx context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; ok {
		return domain.NewStoreError("customer.create", errors.New("id duplicado: "+c.ID))
	}
	r.s.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.customers, id)
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return cloneCustomer(c), nil
}

// filter copia los clientes activos que cumplen keep.
func (r *CustomerRepository) filter(keep func(*entity.Customer) bool) []*entity.Customer {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		if c.Active && (keep == nil || keep(c)) {
			out = append(out, cloneCustomer(c))
		}
	}
	return out
}

func (r *CustomerRepository) count(keep func(*entity.Customer) bool) int64 {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, c := range r.s.customers {
		if c.Active && (keep == nil || keep(c)) {
			n++
		}
	}
	return n
}

func (r *CustomerRepository) page(keep func(*entity.Customer) bool, req repository.PageRequest) repository.Page[*entity.Customer] {
	list := r.filter(keep)
	sortCustomers(list, req)
	return paginate(list, req)
}

func byDisplayName() repository.PageRequest {
	return repository.PageRequest{SortBy: repository.CustomerSortDisplayName, SortDir: repository.SortAsc}
}

func (r *CustomerRepository) ListActive(ctx context.Context, req repository.PageRequest) (repository.Page[*entity.Customer], error) {
	return r.page(nil, req), nil
}

func (r *CustomerRepository) ListAllActive(ctx context.Context, limit int) ([]*entity.Customer, error) {
	list := r.filter(nil)
	sortCustomers(list, byDisplayName())
	return limitList(list, limit), nil
}

func (r *CustomerRepository) ListActiveByType(ctx context.Context, t entity.CustomerType, req repository.PageRequest) (repository.Page[*entity.Customer], error) {
	return r.page(func(c *entity.Customer) bool { return c.CustomerType == t }, req), nil
}

func (r *CustomerRepository) SearchActive(ctx context.Context, term string, req repository.PageRequest) (repository.Page[*entity.Customer], error) {
	lower := strings.ToLower(term)
	return r.page(func(c *entity.Customer) bool {
		return containsFold(c.DisplayName, lower) || containsFold(c.Email, lower) || containsFold(c.CompanyName, lower)
	}, req), nil
}

func (r *CustomerRepository) ListWithOutstandingBalance(ctx context.Context, limit int) ([]*entity.Customer, error) {
	list := r.filter((*entity.Customer).HasOutstandingBalance)
	sortCustomers(list, byDisplayName())
	return limitList(list, limit), nil
}

func (r *CustomerRepository) ExistsActiveDisplayName(ctx context.Context, displayName, excludeID string) (bool, error) {
	return r.count(func(c *entity.Customer) bool {
		return c.ID != excludeID && c.DisplayName == displayName
	}) > 0, nil
}

func (r *CustomerRepository) CountActive(ctx context.Context) (int64, error) {
	return r.count(nil), nil
}

func (r *CustomerRepository) CountActiveByType(ctx context.Context, t entity.CustomerType) (int64, error) {
	return r.count(func(c *entity.Customer) bool { return c.CustomerType == t }), nil
}

func (r *CustomerRepository) CountWithOutstandingBalance(ctx context.Context) (int64, error) {
	return r.count((*entity.Customer).HasOutstandingBalance), nil
}
