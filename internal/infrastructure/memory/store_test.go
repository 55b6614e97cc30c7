package memory_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
	"github.com/jhoicas/maestros-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(id, name string) *entity.Item {
	return &entity.Item{ID: id, Name: name, Type: entity.ItemTypeGoods, Active: true}
}

func ids(list []*entity.Item) []string {
	out := make([]string, 0, len(list))
	for _, it := range list {
		out = append(out, it.ID)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento de copias
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomers_LecturasDevuelvenCopias(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Customers()
	contact := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &entity.Customer{ID: "c-1", DisplayName: "Acme", CustomerType: entity.CustomerTypeBusiness, Active: true, LastContactAt: &contact}
	require.NoError(t, repo.Create(ctx, c))

	// Mutar el original tras guardar no altera el store.
	c.DisplayName = "Cambiado"

	got, err := repo.GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.DisplayName)

	got.DisplayName = "Otra"
	*got.LastContactAt = contact.Add(time.Hour)

	again, err := repo.GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", again.DisplayName)
	assert.Equal(t, contact, *again.LastContactAt)
}

func TestCustomers_GetByIDInexistenteEsNil(t *testing.T) {
	got, err := memory.NewStore().Customers().GetByID(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCustomers_UpdateYDeleteInexistentes(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Customers()
	assert.True(t, errors.Is(repo.Update(ctx, &entity.Customer{ID: "nope"}), domain.ErrNotFound))
	assert.True(t, errors.Is(repo.Delete(ctx, "nope"), domain.ErrNotFound))
}

func TestCustomers_ExistsActiveDisplayName(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Customers()
	require.NoError(t, repo.Create(ctx, &entity.Customer{ID: "c-1", DisplayName: "Acme", Active: true}))
	require.NoError(t, repo.Create(ctx, &entity.Customer{ID: "c-2", DisplayName: "Globex", Active: false}))

	taken, err := repo.ExistsActiveDisplayName(ctx, "Acme", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ExistsActiveDisplayName(ctx, "Acme", "c-1")
	require.NoError(t, err)
	assert.False(t, taken, "se excluye el propio registro")

	taken, err = repo.ExistsActiveDisplayName(ctx, "Globex", "")
	require.NoError(t, err)
	assert.False(t, taken, "los inactivos no reservan el nombre")
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_NulosAlFinalEnAscYAlPrincipioEnDesc(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Items()

	a := newItem("a", "A")
	a.StockQuantity = decimal.NewNullDecimal(decimal.NewFromInt(5))
	b := newItem("b", "B")
	c := newItem("c", "C")
	c.StockQuantity = decimal.NewNullDecimal(decimal.NewFromInt(1))
	for _, it := range []*entity.Item{a, b, c} {
		require.NoError(t, repo.Create(ctx, it))
	}

	asc, err := repo.ListActive(ctx, repository.PageRequest{Size: 10, SortBy: repository.ItemSortStockQuantity, SortDir: repository.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids(asc.Content))

	desc, err := repo.ListActive(ctx, repository.PageRequest{Size: 10, SortBy: repository.ItemSortStockQuantity, SortDir: repository.SortDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, ids(desc.Content))
}

func TestItems_OffsetDesbordadoDevuelvePaginaVacia(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Items()
	require.NoError(t, repo.Create(ctx, newItem("a", "A")))

	req := repository.PageRequest{Page: math.MaxInt / 50, Size: 100, SortBy: repository.ItemSortName, SortDir: repository.SortAsc}
	require.Less(t, req.Offset(), 0)

	page, err := repo.ListActive(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, int64(1), page.TotalElements)
}

func TestItems_EmpateSeResuelvePorIDAscendente(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Items()
	for _, id := range []string{"z", "m", "a"} {
		it := newItem(id, "Nombre "+id)
		it.Type = entity.ItemTypeService
		require.NoError(t, repo.Create(ctx, it))
	}
	for _, dir := range []repository.SortDirection{repository.SortAsc, repository.SortDesc} {
		page, err := repo.ListActive(ctx, repository.PageRequest{Size: 10, SortBy: repository.ItemSortType, SortDir: dir})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "m", "z"}, ids(page.Content), "dir=%s", dir)
	}
}

func TestItems_SKUVacioOrdenaComoNulo(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Items()
	withSKU := newItem("a", "A")
	withSKU.SKU = "X-1"
	require.NoError(t, repo.Create(ctx, newItem("b", "B")))
	require.NoError(t, repo.Create(ctx, withSKU))

	page, err := repo.ListActive(ctx, repository.PageRequest{Size: 10, SortBy: repository.ItemSortSKU, SortDir: repository.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(page.Content))
}

// ──────────────────────────────────────────────────────────────────────────────
// Unicidad y tx
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_RestriccionesDeUnicidad(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Items()
	first := newItem("a", "Widget")
	first.SKU = "W-1"
	first.Active = false
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, newItem("b", "Widget"))
	var cErr *domain.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "name", cErr.Field)

	other := newItem("c", "Gadget")
	other.SKU = "W-1"
	require.ErrorAs(t, repo.Create(ctx, other), &cErr)
	assert.Equal(t, "sku", cErr.Field)

	// Dos artículos sin SKU conviven.
	require.NoError(t, repo.Create(ctx, newItem("d", "Sin SKU 1")))
	require.NoError(t, repo.Create(ctx, newItem("e", "Sin SKU 2")))

	got, err := repo.GetBySKU(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestItems_IDDuplicadoEsErrorDeStore(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Items()
	require.NoError(t, repo.Create(ctx, newItem("a", "Widget")))
	assert.True(t, errors.Is(repo.Create(ctx, newItem("a", "Otro")), domain.ErrStore))
}

func TestRun_ContextoCanceladoNoEjecuta(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.RunItems(ctx, func(repository.ItemRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRun_SerializaUnidadesDeTrabajo(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	// Sonda y escritura en la misma unidad: solo uno de N intentos concurrentes gana.
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.RunCustomers(ctx, func(repo repository.CustomerRepository) error {
				taken, err := repo.ExistsActiveDisplayName(ctx, "Acme", "")
				if err != nil || taken {
					return err
				}
				mu.Lock()
				created++
				mu.Unlock()
				return repo.Create(ctx, &entity.Customer{ID: string(rune('a' + i)), DisplayName: "Acme", Active: true})
			})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, created)

	n, err := s.Customers().CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_EmailUnicoSinDistinguirMayusculas(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Users()
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u-1", Email: "admin@maestros.test"}))

	err := repo.Create(ctx, &entity.User{ID: "u-2", Email: "ADMIN@maestros.test"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := repo.FindByEmail(ctx, "Admin@Maestros.test")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1", u.ID)

	missing, err := repo.FindByEmail(ctx, "otro@maestros.test")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
