package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura.
//
//	Borrador → Activa → Pagada → Anulada
//	           Activa → Anulada
//	           Activa → Vencida (solo por el barrido periódico)
const (
	InvoiceStatusDraft   = "Borrador"
	InvoiceStatusActive  = "Activa"
	InvoiceStatusPaid    = "Pagada"
	InvoiceStatusVoided  = "Anulada"
	InvoiceStatusExpired = "Vencida"
)

// Invoice representa la cabecera de una factura.
// Number = Series + "-" + Correlative con ceros a la izquierda; el par (Series, Correlative) es único.
type Invoice struct {
	ID            string
	Number        string
	Series        string
	Correlative   int64
	CustomerID    string
	EmployeeID    string
	BranchID      string
	QuoteID       string // vacío si no proviene de cotización
	IssuedAt      time.Time
	DueDate       *time.Time
	Subtotal      decimal.Decimal // suma de precio × cantidad antes de descuento
	DiscountTotal decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Notes         string
	Status        string
	VoidReason    string
	VoidedBy      string
	VoidedAt      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanVoid indica si la factura admite anulación en su estado actual.
func (i *Invoice) CanVoid() bool {
	return i.Status == InvoiceStatusActive || i.Status == InvoiceStatusPaid
}
