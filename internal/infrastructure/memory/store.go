// Package memory implementa los puertos de repositorio en memoria.
// Se usa con STORE_DRIVER=memory y como doble de pruebas de los casos de uso.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
)

// Store contenedor único de datos. Las lecturas copian las entidades: quien las
// modifica no altera el estado guardado hasta llamar a Update.
type Store struct {
	mu        sync.RWMutex
	customers map[string]*entity.Customer
	items     map[string]*entity.Item
	users     map[string]*entity.User

	// txMu serializa las unidades de trabajo (validar y escribir).
	txMu sync.Mutex

	customerRepo *CustomerRepository
	itemRepo     *ItemRepository
	userRepo     *UserRepository
}

// NewStore crea un store vacío.
func NewStore() *Store {
	s := &Store{
		customers: make(map[string]*entity.Customer),
		items:     make(map[string]*entity.Item),
		users:     make(map[string]*entity.User),
	}
	s.customerRepo = &CustomerRepository{s: s}
	s.itemRepo = &ItemRepository{s: s}
	s.userRepo = &UserRepository{s: s}
	return s
}

// Customers repositorio de clientes.
func (s *Store) Customers() *CustomerRepository { return s.customerRepo }

// Items repositorio de artículos.
func (s *Store) Items() *ItemRepository { return s.itemRepo }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepository { return s.userRepo }

// RunCustomers ejecuta fn en exclusión mutua con otras unidades de trabajo.
func (s *Store) RunCustomers(ctx context.Context, fn func(repository.CustomerRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s.customerRepo)
}

// RunItems ejecuta fn en exclusión mutua con otras unidades de trabajo.
func (s *Store) RunItems(ctx context.Context, fn func(repository.ItemRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s.itemRepo)
}

func paginate[T any](all []T, req repository.PageRequest) repository.Page[T] {
	total := int64(len(all))
	start := req.Offset()
	if start < 0 || start > len(all) {
		start = len(all)
	}
	end := start + req.Size
	if end > len(all) {
		end = len(all)
	}
	content := make([]T, end-start)
	copy(content, all[start:end])
	return repository.NewPage(content, req, total)
}

func limitList[T any](all []T, limit int) []T {
	if limit > 0 && len(all) > limit {
		return all[:limit]
	}
	return all
}
