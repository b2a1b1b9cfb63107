package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ferreteria-api/internal/application/auth"
	"github.com/jhoicas/ferreteria-api/internal/application/billing"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/ferreteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/ferreteria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ferreteria-api/pkg/config"
	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

// defaultBranchID sucursal que se crea al arrancar en memoria.
const defaultBranchID = "00000000-0000-0000-0000-000000000001"

type txRunner interface {
	inventory.TxRunner
	billing.BillingTxRunner
}

// storage reúne los repositorios del backend elegido por DB_DRIVER.
type storage struct {
	tx           txRunner
	products     repository.ProductRepository
	movements    repository.StockMovementRepository
	customers    repository.CustomerRepository
	users        repository.UserRepository
	branches     repository.BranchRepository
	invoices     repository.InvoiceRepository
	quotes       repository.QuoteRepository
	paymentTypes repository.PaymentTypeRepository
	reports      repository.ReportRepository

	health func(ctx context.Context) error
	close  func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.DB.Driver {
	case "memory":
		return openMemory(cfg, log)
	case "", "postgres":
		return openPostgres(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("DB_DRIVER desconocido: %q", cfg.DB.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*storage, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("migración aplicada")
	}

	return &storage{
		tx:           postgres.NewTxRunner(pool),
		products:     postgres.NewProductRepository(pool),
		movements:    postgres.NewStockMovementRepository(pool),
		customers:    postgres.NewCustomerRepository(pool),
		users:        postgres.NewUserRepository(pool),
		branches:     postgres.NewBranchRepository(pool),
		invoices:     postgres.NewInvoiceRepository(pool),
		quotes:       postgres.NewQuoteRepository(pool),
		paymentTypes: postgres.NewPaymentTypeRepository(pool),
		reports:      postgres.NewReportRepository(pool),
		health:       pool.Ping,
		close:        pool.Close,
	}, nil
}

func openMemory(cfg *config.Config, log *logger.Logger) (*storage, error) {
	store := memory.NewStore()
	now := time.Now()
	store.SeedBranch(entity.Branch{
		ID:            defaultBranchID,
		Code:          "CEN",
		Name:          "Central",
		InvoiceSeries: cfg.Billing.DefaultSeries,
		Status:        "Activa",
		CreatedAt:     now,
		UpdatedAt:     now,
	})

	if cfg.App.SeedAdminPassword != "" {
		hash, err := auth.HashPassword(cfg.App.SeedAdminPassword)
		if err != nil {
			return nil, err
		}
		store.SeedUser(entity.User{
			ID:           "00000000-0000-0000-0000-0000000000a1",
			Username:     "admin",
			Email:        "admin@ferreteria.local",
			PasswordHash: hash,
			Name:         "Administrador",
			Role:         entity.RoleManager,
			BranchID:     defaultBranchID,
			Status:       entity.UserStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")

	return &storage{
		tx:           store,
		products:     store.Products(),
		movements:    store.Movements(),
		customers:    store.Customers(),
		users:        store.Users(),
		branches:     store.Branches(),
		invoices:     store.Invoices(),
		quotes:       store.Quotes(),
		paymentTypes: store.PaymentTypes(),
		reports:      store.Reports(),
		health:       func(context.Context) error { return nil },
		close:        func() {},
	}, nil
}
