package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye repos de inventario y facturación.
// Dentro de fn solo deben usarse los repos recibidos.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(repos repository.TxRepos) error) error
}

// StockApplier integra facturación con inventario.
// ApplyInTx mueve el stock de un producto ya bloqueado usando los repositorios del caller (misma transacción).
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback.
type StockApplier interface {
	ApplyInTx(
		ctx context.Context,
		repos repository.TxRepos,
		product *entity.Product,
		quantity decimal.Decimal,
		dir inventory.Direction,
		reason, referenceID, userID string,
	) (*entity.StockMovement, error)
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}

// InvoiceDocument datos completos para imprimir una factura.
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Customer *entity.Customer
	Branch   *entity.Branch
	Lines    []InvoiceLineForPDF
	Payments []*entity.InvoicePayment
}

// InvoiceLineForPDF línea de detalle enriquecida con datos del producto.
type InvoiceLineForPDF struct {
	entity.InvoiceDetail
	ProductCode string
	ProductName string
}
