package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de movimiento de stock.
const (
	MovementReasonSale   = "VENTA"
	MovementReasonVoid   = "ANULACION"
	MovementReasonManual = "AJUSTE"
)

// StockMovement registra cada cambio de existencia de un producto.
// Quantity es siempre positiva; Direction indica si entra o sale.
type StockMovement struct {
	ID          string
	ProductID   string
	Direction   string // increase | decrease
	Quantity    decimal.Decimal
	StockBefore decimal.Decimal
	StockAfter  decimal.Decimal
	Reason      string
	ReferenceID string // ID de la factura en ventas y anulaciones
	CreatedBy   string
	CreatedAt   time.Time
}
