package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para PATCH /api/products/:id/stock.
// Direction: increase | decrease (se aceptan también suma | resta).
type AdjustStockRequest struct {
	Quantity  decimal.Decimal `json:"quantity"`
	Direction string          `json:"direction" validate:"required"`
	Note      string          `json:"note,omitempty" validate:"max=200"`
}

// StockAdjustmentResponse resultado del ajuste.
type StockAdjustmentResponse struct {
	ProductID     string          `json:"product_id"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	Direction     string          `json:"direction"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// StockMovementResponse movimiento del historial.
type StockMovementResponse struct {
	ID          string          `json:"id"`
	Direction   string          `json:"direction"`
	Quantity    decimal.Decimal `json:"quantity"`
	StockBefore decimal.Decimal `json:"stock_before"`
	StockAfter  decimal.Decimal `json:"stock_after"`
	Reason      string          `json:"reason"`
	ReferenceID string          `json:"reference_id,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LowStockItem producto bajo stock mínimo. SuggestedOrderQty lleva el stock a 1.5 × mínimo.
type LowStockItem struct {
	ProductID         string          `json:"product_id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Stock             decimal.Decimal `json:"stock"`
	MinStock          decimal.Decimal `json:"min_stock"`
	Deficit           decimal.Decimal `json:"deficit"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"`
}
