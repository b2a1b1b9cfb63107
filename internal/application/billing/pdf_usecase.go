package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	branchRepo   repository.BranchRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		branchRepo:   branchRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF arma el documento completo de la factura y lo imprime.
// Las facturas anuladas también se imprimen (el PDF muestra la marca de anulación).
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, p access.Principal, invoiceID string) (pdfBytes []byte, filename string, err error) {
	if err := access.Authorize(p, access.InvoiceRead); err != nil {
		return nil, "", err
	}

	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrInvoiceNotFound
	}

	// ── 2. Cliente y sucursal ─────────────────────────────────────────────────
	customer, err := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		customer = &entity.Customer{ID: inv.CustomerID, Name: "Cliente " + inv.CustomerID}
	}
	branch, err := uc.branchRepo.GetByID(ctx, inv.BranchID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener sucursal: %w", err)
	}

	// ── 3. Detalles enriquecidos con código y nombre de producto ─────────────
	rawDetails, err := uc.invoiceRepo.GetDetails(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener detalles: %w", err)
	}
	ids := make([]string, 0, len(rawDetails))
	for _, d := range rawDetails {
		ids = append(ids, d.ProductID)
	}
	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener productos: %w", err)
	}
	lines := make([]InvoiceLineForPDF, 0, len(rawDetails))
	for _, d := range rawDetails {
		line := InvoiceLineForPDF{InvoiceDetail: *d, ProductName: "Producto " + d.ProductID}
		if pr, ok := products[d.ProductID]; ok {
			line.ProductCode = pr.Code
			line.ProductName = pr.Name
		}
		lines = append(lines, line)
	}

	// ── 4. Pagos ──────────────────────────────────────────────────────────────
	payments, err := uc.invoiceRepo.GetPayments(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pagos: %w", err)
	}

	// ── 5. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, InvoiceDocument{
		Invoice:  inv,
		Customer: customer,
		Branch:   branch,
		Lines:    lines,
		Payments: payments,
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", inv.Number), nil
}
