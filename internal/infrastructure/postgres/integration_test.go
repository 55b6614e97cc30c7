//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/maestros-api/internal/application/customer"
	"github.com/jhoicas/maestros-api/internal/application/dto"
	"github.com/jhoicas/maestros-api/internal/application/item"
	"github.com/jhoicas/maestros-api/internal/application/lifecycle"
	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
	"github.com/jhoicas/maestros-api/internal/infrastructure/postgres"
	"github.com/jhoicas/maestros-api/pkg/config"
	"github.com/jhoicas/maestros-api/pkg/testutil/containers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios PostgreSQL contra un contenedor real
// ──────────────────────────────────────────────────────────────────────────────

type PostgresSuite struct {
	suite.Suite
	pool      *pgxpool.Pool
	customers *customer.UseCase
	items     *item.UseCase
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	pg := containers.NewPostgresContainer(s.T())
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: pg.DSN, MaxConns: 5, QueryTimeoutSeconds: 10})
	s.Require().NoError(err)
	s.pool = pool
	s.Require().NoError(postgres.Migrate(ctx, pool))
	s.Require().NoError(postgres.Migrate(ctx, pool), "el esquema es idempotente")

	tx := postgres.NewTxRunner(pool)
	clock := lifecycle.NewStepClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), time.Second)
	s.customers = customer.NewUseCase(postgres.NewCustomerRepository(pool), customer.WithTxRunner(tx), customer.WithClock(clock))
	s.items = item.NewUseCase(postgres.NewItemRepository(pool), item.WithTxRunner(tx), item.WithClock(clock))
}

func (s *PostgresSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE customers, items, users")
	s.Require().NoError(err)
}

func num(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func (s *PostgresSuite) TestCustomer_CicloDeVida() {
	ctx := domain.WithActor(context.Background(), "user-1")
	in := dto.CustomerRequest{
		CustomerType:   "BUSINESS",
		DisplayName:    "Acme Corp",
		Email:          "ventas@acme.test",
		OpeningBalance: num("1234.56789"),
		BillingAddress: dto.AddressDTO{City: "Bogotá", Country: "CO"},
	}
	c, err := s.customers.Create(ctx, in)
	s.Require().NoError(err)

	got, err := s.customers.GetByID(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Acme Corp", got.DisplayName)
	s.Equal("Bogotá", got.Billing.City)
	s.Equal("1234.5679", got.OpeningBalance.Decimal.StringFixed(4))
	s.True(got.ReceivablesBalance.Equal(decimal.RequireFromString("1234.5679")))
	s.Equal(c.CreatedAt, got.CreatedAt)
	s.Equal("user-1", got.CreatedBy)

	_, err = s.customers.Create(ctx, in)
	s.ErrorIs(err, domain.ErrConflict)

	s.Require().NoError(s.customers.Delete(ctx, c.ID))
	second, err := s.customers.Create(ctx, in)
	s.Require().NoError(err, "un inactivo no reserva el display name")

	// Restaurar no vuelve a validar unicidad: quedan dos activos con el mismo nombre.
	restored, err := s.customers.Restore(ctx, c.ID)
	s.Require().NoError(err)
	s.True(restored.Active)
	n, err := postgres.NewCustomerRepository(s.pool).CountActive(ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	s.Require().NoError(s.customers.PermanentlyDelete(ctx, second.ID))
	_, err = s.customers.GetByID(ctx, second.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	s.ErrorIs(s.customers.PermanentlyDelete(ctx, second.ID), domain.ErrNotFound)
}

func (s *PostgresSuite) TestCustomer_BusquedaYOutstanding() {
	ctx := context.Background()
	for _, in := range []dto.CustomerRequest{
		{CustomerType: "BUSINESS", DisplayName: "Acme Corp", ReceivablesBalance: num("10")},
		{CustomerType: "INDIVIDUAL", DisplayName: "Ana", Email: "ana@ACME.test"},
		{CustomerType: "INDIVIDUAL", DisplayName: "Luis_100%", ReceivablesBalance: num("0")},
	} {
		_, err := s.customers.Create(ctx, in)
		s.Require().NoError(err)
	}

	page, err := s.customers.Search(ctx, "acme", lifecycle.PageQuery{})
	s.Require().NoError(err)
	s.Equal(int64(2), page.TotalElements)

	// Los comodines de LIKE se buscan literalmente.
	page, err = s.customers.Search(ctx, "_100%", lifecycle.PageQuery{})
	s.Require().NoError(err)
	s.Equal(int64(1), page.TotalElements)

	out, err := s.customers.GetOutstanding(ctx)
	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Equal("Acme Corp", out[0].DisplayName)

	stats, err := s.customers.GetStatistics(ctx)
	s.Require().NoError(err)
	s.Equal(dto.CustomerStatisticsResponse{TotalCustomers: 3, BusinessCount: 1, IndividualCount: 2, WithOutstandingBalance: 1}, *stats)
}

func (s *PostgresSuite) TestItem_RestriccionesYStockBajo() {
	ctx := context.Background()
	widget, err := s.items.Create(ctx, dto.ItemRequest{
		Name: "Widget", Type: "GOODS", SKU: "W-001",
		StockQuantity: num("5"), ReorderLevel: num("10"), TaxRate: num("19"),
	})
	s.Require().NoError(err)

	_, err = s.items.Create(ctx, dto.ItemRequest{Name: "Gadget", Type: "GOODS"})
	s.Require().NoError(err)
	_, err = s.items.Create(ctx, dto.ItemRequest{Name: "Montaje", Type: "SERVICE"})
	s.Require().NoError(err, "dos artículos sin SKU conviven")

	s.Require().NoError(s.items.Delete(ctx, widget.ID))
	_, err = s.items.Create(ctx, dto.ItemRequest{Name: "Otro", Type: "GOODS", SKU: "W-001"})
	var cErr *domain.ConflictError
	s.Require().True(errors.As(err, &cErr))
	s.Equal("sku", cErr.Field)

	_, err = s.items.Restore(ctx, widget.ID)
	s.Require().NoError(err)

	low, err := s.items.GetLowStock(ctx)
	s.Require().NoError(err)
	s.Require().Len(low, 1)
	s.Equal("Widget", low[0].Name)

	_, err = s.items.Update(ctx, widget.ID, dto.ItemRequest{
		Name: "Widget", Type: "GOODS", SKU: "W-001", StockQuantity: num("15"), ReorderLevel: num("10"),
	})
	s.Require().NoError(err)
	low, err = s.items.GetLowStock(ctx)
	s.Require().NoError(err)
	s.Empty(low)

	stats, err := s.items.GetStatistics(ctx)
	s.Require().NoError(err)
	s.Equal(dto.ItemStatisticsResponse{TotalItems: 3, GoodsCount: 2, ServicesCount: 1, LowStockCount: 0}, *stats)
}

func (s *PostgresSuite) TestItem_ConstraintDeNombreMapeaAConflicto() {
	ctx := context.Background()
	repo := postgres.NewItemRepository(s.pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	first := &entity.Item{ID: "it-1", Name: "Widget", Type: entity.ItemTypeGoods, Active: true, CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(repo.Create(ctx, first))

	dup := *first
	dup.ID = "it-2"
	err := repo.Create(ctx, &dup)
	var cErr *domain.ConflictError
	s.Require().True(errors.As(err, &cErr))
	s.Equal("name", cErr.Field)
}

func (s *PostgresSuite) TestItem_OrdenConNulos() {
	ctx := context.Background()
	for _, in := range []dto.ItemRequest{
		{Name: "Barato", Type: "GOODS", SellingPrice: num("1")},
		{Name: "Caro", Type: "GOODS", SellingPrice: num("100")},
		{Name: "Sin Precio", Type: "GOODS"},
	} {
		_, err := s.items.Create(ctx, in)
		s.Require().NoError(err)
	}
	names := func(p repository.Page[*entity.Item]) []string {
		out := []string{}
		for _, it := range p.Content {
			out = append(out, it.Name)
		}
		return out
	}

	asc, err := s.items.List(ctx, lifecycle.PageQuery{SortBy: "sellingPrice"})
	s.Require().NoError(err)
	s.Equal([]string{"Barato", "Caro", "Sin Precio"}, names(asc))

	desc, err := s.items.List(ctx, lifecycle.PageQuery{SortBy: "sellingPrice", SortDir: "desc"})
	s.Require().NoError(err)
	s.Equal([]string{"Sin Precio", "Caro", "Barato"}, names(desc))
}

func (s *PostgresSuite) TestTxRunner_RollbackEnError() {
	ctx := context.Background()
	tx := postgres.NewTxRunner(s.pool)
	boom := errors.New("boom")
	now := time.Now().UTC().Truncate(time.Microsecond)

	err := tx.RunCustomers(ctx, func(repo repository.CustomerRepository) error {
		if err := repo.Create(ctx, &entity.Customer{
			ID: "c-rollback", CustomerType: entity.CustomerTypeBusiness, DisplayName: "Temporal",
			Status: entity.DefaultCustomerStatus, Active: true, CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	got, err := postgres.NewCustomerRepository(s.pool).GetByID(ctx, "c-rollback")
	s.Require().NoError(err)
	s.Nil(got)
}
