package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/maestros-api/internal/application/customer"
	"github.com/jhoicas/maestros-api/internal/application/item"
	"github.com/jhoicas/maestros-api/internal/domain"
	"github.com/jhoicas/maestros-api/internal/domain/repository"
)

// Ensure TxRunner implements customer.TxRunner and item.TxRunner.
var _ customer.TxRunner = (*TxRunner)(nil)
var _ item.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCustomers ejecuta fn con un CustomerRepository atado a la tx y hace Commit o Rollback.
func (r *TxRunner) RunCustomers(ctx context.Context, fn func(repository.CustomerRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewCustomerRepository(tx))
	})
}

// RunItems ejecuta fn con un ItemRepository atado a la tx y hace Commit o Rollback.
func (r *TxRunner) RunItems(ctx context.Context, fn func(repository.ItemRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewItemRepository(tx))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.NewStoreError("tx.begin", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.NewStoreError("tx.commit", err)
	}
	return nil
}
