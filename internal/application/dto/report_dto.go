package dto

import "github.com/shopspring/decimal"

// SalesReportRequest query de GET /api/reports/sales.
type SalesReportRequest struct {
	BranchID string `query:"branch_id"`
	From     string `query:"from" validate:"required,datetime=2006-01-02"`
	To       string `query:"to" validate:"required,datetime=2006-01-02"`
}

// TenderTotalDTO cobrado por tipo de pago.
type TenderTotalDTO struct {
	PaymentTypeID string          `json:"payment_type_id"`
	Count         int             `json:"count"`
	Amount        decimal.Decimal `json:"amount"`
}

// SalesReportResponse resumen de ventas.
type SalesReportResponse struct {
	BranchID      string           `json:"branch_id,omitempty"`
	From          string           `json:"from"`
	To            string           `json:"to"`
	InvoiceCount  int              `json:"invoice_count"`
	VoidedCount   int              `json:"voided_count"`
	GrossTotal    decimal.Decimal  `json:"gross_total"`
	DiscountTotal decimal.Decimal  `json:"discount_total"`
	TaxTotal      decimal.Decimal  `json:"tax_total"`
	AverageTicket decimal.Decimal  `json:"average_ticket"`
	ByTender      []TenderTotalDTO `json:"by_tender"`
}
