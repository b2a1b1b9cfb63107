package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateQuoteRequest body para POST /api/quotes.
type CreateQuoteRequest struct {
	CustomerID   string        `json:"customer_id" validate:"required"`
	BranchID     string        `json:"branch_id,omitempty"`
	ValidityDays int           `json:"validity_days,omitempty" validate:"omitempty,min=1,max=365"`
	Notes        string        `json:"notes,omitempty" validate:"max=500"`
	PaymentTerms string        `json:"payment_terms,omitempty" validate:"max=200"`
	DeliveryTime string        `json:"delivery_time,omitempty" validate:"max=100"`
	Lines        []LineRequest `json:"lines" validate:"required,min=1,dive"`
}

// RecalculateQuoteRequest body para PUT /api/quotes/:id/lines.
type RecalculateQuoteRequest struct {
	Lines []LineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ChangeQuoteStatusRequest body para PATCH /api/quotes/:id/status.
type ChangeQuoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Enviada Aceptada Rechazada"`
}

// ConvertQuoteRequest body para POST /api/quotes/:id/convert.
type ConvertQuoteRequest struct {
	Series   string           `json:"series,omitempty" validate:"max=10"`
	Payments []PaymentRequest `json:"payments" validate:"required,min=1,dive"`
}

// QuoteListRequest filtros de GET /api/quotes.
type QuoteListRequest struct {
	PageRequest
	BranchID   string `query:"branch_id"`
	CustomerID string `query:"customer_id"`
	Status     string `query:"status"`
}

// QuoteResponse cotización con líneas.
type QuoteResponse struct {
	ID            string                  `json:"id"`
	Number        string                  `json:"number"`
	CustomerID    string                  `json:"customer_id"`
	CustomerName  string                  `json:"customer_name,omitempty"`
	EmployeeID    string                  `json:"employee_id"`
	BranchID      string                  `json:"branch_id"`
	IssuedAt      time.Time               `json:"issued_at"`
	ValidityDays  int                     `json:"validity_days"`
	ValidUntil    time.Time               `json:"valid_until"`
	Subtotal      decimal.Decimal         `json:"subtotal"`
	DiscountTotal decimal.Decimal         `json:"discount_total"`
	Tax           decimal.Decimal         `json:"tax"`
	Total         decimal.Decimal         `json:"total"`
	Notes         string                  `json:"notes,omitempty"`
	PaymentTerms  string                  `json:"payment_terms,omitempty"`
	DeliveryTime  string                  `json:"delivery_time,omitempty"`
	Status        string                  `json:"status"`
	InvoiceID     string                  `json:"invoice_id,omitempty"`
	Details       []InvoiceDetailResponse `json:"details,omitempty"`
}
