package entity

import "github.com/shopspring/decimal"

// InvoiceDetail representa una línea de detalle de una factura.
// UnitPrice es la foto del precio al momento de la venta; nunca se relee del catálogo.
type InvoiceDetail struct {
	ID              string
	InvoiceID       string
	ProductID       string
	LineNumber      int // 1..N, orden de impresión
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	Subtotal        decimal.Decimal // precio × cantidad − descuento
}
