package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

var cashier = access.Principal{UserID: "u-caja", Role: entity.RoleCashier, BranchID: "B1"}

func seedProduct(t *testing.T, store *memory.Store, id, stock, minStock string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
		ID: id, Code: id, Name: "Producto " + id, Price: decimal.NewFromInt(10),
		Stock: decimal.RequireFromString(stock), MinStock: decimal.RequireFromString(minStock),
		Status: entity.ProductStatusActive, CreatedAt: now, UpdatedAt: now,
	}))
}

func newStock(store *memory.Store) *inventory.StockUseCase {
	return inventory.NewStockUseCase(store, store.Products(), store.Movements(), logger.Nop())
}

func TestAdjustStock_IncreaseAndDecrease(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "P001", "10", "5")
	uc := newStock(store)
	ctx := context.Background()

	out, err := uc.AdjustStock(ctx, cashier, "P001", dto.AdjustStockRequest{Quantity: decimal.NewFromInt(5), Direction: "suma"})
	require.NoError(t, err)
	assert.True(t, out.PreviousStock.Equal(decimal.NewFromInt(10)))
	assert.True(t, out.NewStock.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, "increase", out.Direction)

	out, err = uc.AdjustStock(ctx, cashier, "P001", dto.AdjustStockRequest{Quantity: decimal.RequireFromString("2.5"), Direction: "decrease"})
	require.NoError(t, err)
	assert.True(t, out.NewStock.Equal(decimal.RequireFromString("12.5")))

	movs, err := uc.ListMovements(ctx, cashier, "P001", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs, 2)
}

func TestAdjustStock_DecreaseBelowZero(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "P001", "3", "5")
	uc := newStock(store)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, cashier, "P001", dto.AdjustStockRequest{Quantity: decimal.NewFromInt(4), Direction: "resta"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, err := store.Products().GetByID(ctx, "P001")
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(3)))
	movs, err := store.Movements().ListByProduct(ctx, "P001", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestAdjustStock_ZeroIsNoop(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "P001", "3", "5")
	out, err := newStock(store).AdjustStock(context.Background(), cashier, "P001",
		dto.AdjustStockRequest{Quantity: decimal.Zero, Direction: "increase"})
	require.NoError(t, err)
	assert.True(t, out.NewStock.Equal(decimal.NewFromInt(3)))
}

func TestAdjustStock_Rejections(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "P001", "3", "5")
	uc := newStock(store)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, cashier, "P001", dto.AdjustStockRequest{Quantity: decimal.NewFromInt(1), Direction: "sideways"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AdjustStock(ctx, cashier, "P999", dto.AdjustStockRequest{Quantity: decimal.NewFromInt(1), Direction: "increase"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	dataEntry := access.Principal{UserID: "u-dig", Role: entity.RoleDataEntry}
	_, err = uc.AdjustStock(ctx, dataEntry, "P001", dto.AdjustStockRequest{Quantity: decimal.NewFromInt(1), Direction: "increase"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLowStock_SortedByDeficit(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "A", "4", "10")
	seedProduct(t, store, "B", "0", "10")
	seedProduct(t, store, "C", "50", "10")
	manager := access.Principal{UserID: "u-ger", Role: entity.RoleManager}

	items, err := inventory.NewReplenishmentUseCase(store.Products()).LowStock(context.Background(), manager, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "B", items[0].Code)
	assert.True(t, items[0].Deficit.Equal(decimal.NewFromInt(10)))
	assert.True(t, items[0].SuggestedOrderQty.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, "A", items[1].Code)
	assert.True(t, items[1].SuggestedOrderQty.Equal(decimal.NewFromInt(11)))
}

func TestAdjustStock_RejectsQuantityFinerThanStorage(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "P001", "10", "5")
	uc := newStock(store)
	ctx := context.Background()

	_, err := uc.AdjustStock(ctx, cashier, "P001", dto.AdjustStockRequest{
		Quantity: decimal.RequireFromString("1.0005"), Direction: "decrease",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := store.Products().GetByID(ctx, "P001")
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(10)))
	movs, err := uc.ListMovements(ctx, cashier, "P001", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, movs)
}
