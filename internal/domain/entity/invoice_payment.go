package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de tarjeta.
const (
	CardTypeCredit = "Crédito"
	CardTypeDebit  = "Débito"
)

// InvoicePayment representa un medio de pago aplicado a una factura.
// Una factura puede combinar efectivo, cheque y tarjeta.
type InvoicePayment struct {
	ID            string
	InvoiceID     string
	PaymentTypeID string
	Amount        decimal.Decimal

	// Cheque
	CheckNumber string
	CheckBank   string
	CheckDate   *time.Time

	// Tarjeta
	AuthorizationNumber string
	CardLastDigits      string
	CardType            string
	CardBank            string

	Reference string
	PaidAt    time.Time
}
