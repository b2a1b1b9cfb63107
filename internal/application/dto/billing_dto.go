package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineRequest línea de factura o cotización.
// UnitPrice y DiscountPercent son opcionales: si faltan se toman del catálogo.
type LineRequest struct {
	ProductID       string           `json:"product_id" validate:"required"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
}

// PaymentRequest medio de pago. Cheque exige número y banco; tarjeta autorización y últimos 4 dígitos.
type PaymentRequest struct {
	PaymentTypeID       string          `json:"payment_type_id" validate:"required,oneof=EFECTIVO CHEQUE TARJETA"`
	Amount              decimal.Decimal `json:"amount"`
	CheckNumber         string          `json:"check_number,omitempty" validate:"max=50"`
	CheckBank           string          `json:"check_bank,omitempty" validate:"max=100"`
	CheckDate           *time.Time      `json:"check_date,omitempty"`
	AuthorizationNumber string          `json:"authorization_number,omitempty" validate:"max=50"`
	CardLastDigits      string          `json:"card_last_digits,omitempty"`
	CardType            string          `json:"card_type,omitempty" validate:"omitempty,oneof=Crédito Débito"`
	CardBank            string          `json:"card_bank,omitempty" validate:"max=100"`
	Reference           string          `json:"reference,omitempty" validate:"max=100"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// BranchID vacío = sucursal del usuario. Series vacía = serie de la sucursal.
type CreateInvoiceRequest struct {
	CustomerID string           `json:"customer_id" validate:"required"`
	BranchID   string           `json:"branch_id,omitempty"`
	Series     string           `json:"series,omitempty" validate:"max=10"`
	DueDate    *time.Time       `json:"due_date,omitempty"`
	Notes      string           `json:"notes,omitempty" validate:"max=500"`
	Lines      []LineRequest    `json:"lines" validate:"required,min=1,dive"`
	Payments   []PaymentRequest `json:"payments" validate:"required,min=1,dive"`
}

// VoidInvoiceRequest body para POST /api/invoices/:id/void.
type VoidInvoiceRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// InvoiceListRequest filtros de GET /api/invoices.
type InvoiceListRequest struct {
	PageRequest
	BranchID   string `query:"branch_id"`
	CustomerID string `query:"customer_id"`
	Status     string `query:"status"`
	From       string `query:"from"` // YYYY-MM-DD
	To         string `query:"to"`
}

// InvoiceResponse factura con detalle y pagos.
type InvoiceResponse struct {
	ID            string                   `json:"id"`
	Number        string                   `json:"number"`
	Series        string                   `json:"series"`
	Correlative   int64                    `json:"correlative"`
	CustomerID    string                   `json:"customer_id"`
	CustomerName  string                   `json:"customer_name,omitempty"`
	EmployeeID    string                   `json:"employee_id"`
	BranchID      string                   `json:"branch_id"`
	QuoteID       string                   `json:"quote_id,omitempty"`
	IssuedAt      time.Time                `json:"issued_at"`
	DueDate       *time.Time               `json:"due_date,omitempty"`
	Subtotal      decimal.Decimal          `json:"subtotal"`
	DiscountTotal decimal.Decimal          `json:"discount_total"`
	Tax           decimal.Decimal          `json:"tax"`
	Total         decimal.Decimal          `json:"total"`
	Notes         string                   `json:"notes,omitempty"`
	Status        string                   `json:"status"`
	VoidReason    string                   `json:"void_reason,omitempty"`
	VoidedBy      string                   `json:"voided_by,omitempty"`
	VoidedAt      *time.Time               `json:"voided_at,omitempty"`
	Details       []InvoiceDetailResponse  `json:"details,omitempty"`
	Payments      []InvoicePaymentResponse `json:"payments,omitempty"`
}

// InvoiceDetailResponse línea de detalle en la respuesta.
type InvoiceDetailResponse struct {
	LineNumber      int             `json:"line_number"`
	ProductID       string          `json:"product_id"`
	ProductCode     string          `json:"product_code,omitempty"`
	ProductName     string          `json:"product_name,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// InvoicePaymentResponse pago aplicado.
type InvoicePaymentResponse struct {
	PaymentTypeID       string          `json:"payment_type_id"`
	Amount              decimal.Decimal `json:"amount"`
	CheckNumber         string          `json:"check_number,omitempty"`
	CheckBank           string          `json:"check_bank,omitempty"`
	CheckDate           *time.Time      `json:"check_date,omitempty"`
	AuthorizationNumber string          `json:"authorization_number,omitempty"`
	CardLastDigits      string          `json:"card_last_digits,omitempty"`
	CardType            string          `json:"card_type,omitempty"`
	CardBank            string          `json:"card_bank,omitempty"`
	Reference           string          `json:"reference,omitempty"`
}

// PaymentTypeResponse tipo de pago del catálogo.
type PaymentTypeResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	RequiresReference bool   `json:"requires_reference"`
}
