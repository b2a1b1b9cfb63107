package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/application/usecase"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

var (
	dataEntry = access.Principal{UserID: "u-dig", Role: entity.RoleDataEntry, BranchID: "B1"}
	manager   = access.Principal{UserID: "u-ger", Role: entity.RoleManager, BranchID: "B1"}
	cashier   = access.Principal{UserID: "u-caja", Role: entity.RoleCashier, BranchID: "B1"}
)

func newProductUseCase() (*usecase.ProductUseCase, *memory.Store) {
	store := memory.NewStore()
	stock := inventory.NewStockUseCase(store, store.Products(), store.Movements(), logger.Nop())
	return usecase.NewProductUseCase(store, store.Products(), stock), store
}

func paintRequest() dto.CreateProductRequest {
	years := 5
	return dto.CreateProductRequest{
		Code:  "pin-001",
		Name:  "Esmalte sintético rojo 1/4",
		Price: decimal.RequireFromString("45.90"),
		Stock: decimal.NewFromInt(12),
		Brand: "Sur",
		Paint: &dto.PaintAttributesDTO{DurabilityYears: &years, ColorID: "ROJO"},
	}
}

func TestProductCreate_InitialStockIsAMovement(t *testing.T) {
	uc, store := newProductUseCase()
	ctx := context.Background()

	out, err := uc.Create(ctx, dataEntry, paintRequest())
	require.NoError(t, err)
	assert.Equal(t, "PIN-001", out.Code)
	assert.Equal(t, entity.ProductStatusActive, out.Status)
	assert.True(t, out.Stock.Equal(decimal.NewFromInt(12)))
	assert.True(t, out.MinStock.Equal(decimal.NewFromInt(entity.DefaultMinStock)))
	require.NotNil(t, out.Paint)
	assert.Equal(t, "ROJO", out.Paint.ColorID)

	movs, err := store.Movements().ListByProduct(ctx, out.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementReasonManual, movs[0].Reason)
	assert.True(t, movs[0].StockBefore.IsZero())

	_, err = uc.Create(ctx, dataEntry, paintRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_Validation(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()

	req := paintRequest()
	req.Price = decimal.Zero
	_, err := uc.Create(ctx, dataEntry, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = paintRequest()
	req.DiscountPercent = decimal.NewFromInt(101)
	_, err = uc.Create(ctx, dataEntry, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, cashier, paintRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProductUpdate_KeepsStock(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dataEntry, paintRequest())
	require.NoError(t, err)

	price := decimal.RequireFromString("49.90")
	name := "Esmalte sintético rojo cuarto"
	out, err := uc.Update(ctx, dataEntry, created.ID, dto.UpdateProductRequest{Price: &price, Name: &name})
	require.NoError(t, err)
	assert.True(t, out.Price.Equal(price))
	assert.Equal(t, name, out.Name)

	got, err := uc.GetByID(ctx, cashier, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.Equal(decimal.NewFromInt(12)))

	_, err = uc.Update(ctx, dataEntry, "nope", dto.UpdateProductRequest{Price: &price})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductDelete_Discontinues(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dataEntry, paintRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, dataEntry, created.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, manager, created.ID))

	got, err := uc.GetByID(ctx, manager, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusDiscontinued, got.Status)

	list, err := uc.List(ctx, cashier, dto.ProductListRequest{Status: entity.ProductStatusActive})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = uc.List(ctx, cashier, dto.ProductListRequest{Search: "esmalte"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestProduct_RejectsValuesFinerThanStorage(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()

	req := paintRequest()
	req.Price = decimal.RequireFromString("45.905")
	_, err := uc.Create(ctx, dataEntry, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = paintRequest()
	req.DiscountPercent = decimal.RequireFromString("12.345")
	_, err = uc.Create(ctx, dataEntry, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = paintRequest()
	req.Stock = decimal.RequireFromString("1.0005")
	_, err = uc.Create(ctx, dataEntry, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	created, err := uc.Create(ctx, dataEntry, paintRequest())
	require.NoError(t, err)
	minStock := decimal.RequireFromString("2.0001")
	_, err = uc.Update(ctx, dataEntry, created.ID, dto.UpdateProductRequest{MinStock: &minStock})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
