package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ferreteria-api/internal/application/billing"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and billing.BillingTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Un contexto cancelado aborta la transacción vía el Rollback diferido.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// RunBilling igual que Run. Facturación se apoya en bloqueos de fila (FOR UPDATE sobre productos,
// UPDATE ... RETURNING sobre la serie), no en un nivel de aislamiento mayor: así las ventas
// concurrentes se encolan en lugar de fallar por serialización.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	return r.run(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (r *TxRunner) run(ctx context.Context, opts pgx.TxOptions, fn func(repos repository.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, opts)
	if err != nil {
		return dbErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(txRepos(tx)); err != nil {
		return dbErr("transaction", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return dbErr("commit transaction", err)
	}
	return nil
}

// txRepos arma los repositorios que comparten la transacción.
func txRepos(q Querier) repository.TxRepos {
	return repository.TxRepos{
		Products:  NewProductRepository(q),
		Customers: NewCustomerRepository(q),
		Invoices:  NewInvoiceRepository(q),
		Quotes:    NewQuoteRepository(q),
		Series:    NewSeriesRepository(q),
		Movements: NewStockMovementRepository(q),
	}
}
