package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/maestros-api/internal/application/customer"
	"github.com/jhoicas/maestros-api/internal/application/item"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
	"github.com/jhoicas/maestros-api/internal/infrastructure/memory"
	"github.com/jhoicas/maestros-api/internal/infrastructure/postgres"
	"github.com/jhoicas/maestros-api/pkg/config"
	"github.com/jhoicas/maestros-api/pkg/logger"
)

// stores repositorios y runners según STORE_DRIVER.
type stores struct {
	customers  repository.CustomerRepository
	items      repository.ItemRepository
	users      repository.UserRepository
	customerTx customer.TxRunner
	itemTx     item.TxRunner
	close      func()
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		m := memory.NewStore()
		return &stores{
			customers:  m.Customers(),
			items:      m.Items(),
			users:      m.Users(),
			customerTx: m,
			itemTx:     m,
			close:      func() {},
		}, nil

	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		tx := postgres.NewTxRunner(pool)
		return &stores{
			customers:  postgres.NewCustomerRepository(pool),
			items:      postgres.NewItemRepository(pool),
			users:      postgres.NewUserRepository(pool),
			customerTx: tx,
			itemTx:     tx,
			close:      pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("STORE_DRIVER no soportado: %s", cfg.App.StoreDriver)
}
