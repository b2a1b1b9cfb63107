package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la cotización.
const (
	QuoteStatusDraft     = "Borrador"
	QuoteStatusSent      = "Enviada"
	QuoteStatusAccepted  = "Aceptada"
	QuoteStatusRejected  = "Rechazada"
	QuoteStatusConverted = "Convertida"
	QuoteStatusExpired   = "Vencida"
)

// DefaultQuoteValidityDays vigencia por defecto de una cotización.
const DefaultQuoteValidityDays = 15

// Quote representa una propuesta de precios. No reserva stock.
type Quote struct {
	ID            string
	Number        string
	CustomerID    string
	EmployeeID    string
	BranchID      string
	IssuedAt      time.Time
	ValidityDays  int
	ValidUntil    time.Time
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Notes         string
	PaymentTerms  string
	DeliveryTime  string
	Status        string
	InvoiceID     string // factura generada al convertir
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// QuoteDetail línea de una cotización; mismo cálculo que InvoiceDetail.
type QuoteDetail struct {
	ID              string
	QuoteID         string
	ProductID       string
	LineNumber      int
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	Subtotal        decimal.Decimal
}

// IsExpiredAt indica si la vigencia terminó en el instante dado.
func (q *Quote) IsExpiredAt(now time.Time) bool {
	return now.After(q.ValidUntil)
}
