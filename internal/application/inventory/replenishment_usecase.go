package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// ReplenishmentUseCase lista de productos bajo stock mínimo con la cantidad sugerida de pedido.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// idealFactor stock ideal = mínimo × 1.5.
var idealFactor = decimal.NewFromFloat(1.5)

// LowStock devuelve los productos activos con stock <= mínimo, primero los de mayor déficit.
func (uc *ReplenishmentUseCase) LowStock(ctx context.Context, p access.Principal, limit int) ([]dto.LowStockItem, error) {
	if err := access.Authorize(p, access.ProductRead); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	products, err := uc.productRepo.ListLowStock(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItem, 0, len(products))
	for _, pr := range products {
		suggested := pr.MinStock.Mul(idealFactor).Sub(pr.Stock).Ceil()
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		items = append(items, dto.LowStockItem{
			ProductID:         pr.ID,
			Code:              pr.Code,
			Name:              pr.Name,
			Stock:             pr.Stock,
			MinStock:          pr.MinStock,
			Deficit:           pr.MinStock.Sub(pr.Stock),
			SuggestedOrderQty: suggested,
		})
	}
	// Mayor déficit primero; empate por código para un orden estable.
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Deficit.Equal(items[j].Deficit) {
			return items[i].Deficit.GreaterThan(items[j].Deficit)
		}
		return items[i].Code < items[j].Code
	})
	return items, nil
}
