package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TenderTotal total cobrado por tipo de pago.
type TenderTotal struct {
	PaymentTypeID string
	Count         int
	Amount        decimal.Decimal
}

// SalesSummaryResult resultado crudo del resumen de ventas; el use case lo convierte en DTO.
type SalesSummaryResult struct {
	InvoiceCount  int             // facturas no anuladas
	VoidedCount   int
	GrossTotal    decimal.Decimal // suma de total de facturas no anuladas
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	ByTender      []TenderTotal
}

// ReportRepository consultas de solo lectura para reportes.
type ReportRepository interface {
	// SalesSummary resume las facturas de la sucursal (todas si branchID vacío) emitidas en [from, to).
	SalesSummary(ctx context.Context, branchID string, from, to time.Time) (*SalesSummaryResult, error)
}
