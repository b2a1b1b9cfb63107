package billing

import (
	"context"
	"strings"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	dbilling "github.com/jhoicas/ferreteria-api/internal/domain/billing"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// VoidInvoice anula una factura Activa o Pagada: repone el stock de cada línea, registra motivo,
// empleado y fecha, y descuenta el total del acumulado del cliente. Detalles y pagos se conservan.
func (uc *InvoiceUseCase) VoidInvoice(ctx context.Context, p access.Principal, invoiceID string, in dto.VoidInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := access.Authorize(p, access.InvoiceVoid); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.Wrap(domain.ErrInvalidInput, "el motivo de anulación es obligatorio")
	}

	var agg *invoiceAggregate
	err := uc.txRunner.RunBilling(ctx, func(repos repository.TxRepos) error {
		inv, err := repos.Invoices.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrInvoiceNotFound
		}
		if err := dbilling.CheckInvoiceTransition(inv.Status, entity.InvoiceStatusVoided); err != nil {
			return err
		}

		details, err := repos.Invoices.GetDetails(ctx, inv.ID)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(details))
		for _, d := range details {
			ids = append(ids, d.ProductID)
		}
		products, err := repos.Products.LockByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, d := range details {
			pr, ok := products[d.ProductID]
			if !ok {
				return domain.Wrap(domain.ErrProductNotFound, "%s", d.ProductID)
			}
			if _, err := uc.stock.ApplyInTx(ctx, repos, pr, d.Quantity,
				inventory.Increase, entity.MovementReasonVoid, inv.ID, p.UserID); err != nil {
				return err
			}
		}

		now := uc.now()
		inv.Status = entity.InvoiceStatusVoided
		inv.VoidReason = reason
		inv.VoidedBy = p.UserID
		inv.VoidedAt = &now
		inv.UpdatedAt = now
		if err := repos.Invoices.UpdateStatus(ctx, inv); err != nil {
			return err
		}
		if err := repos.Customers.AddPurchase(ctx, inv.CustomerID, inv.Total.Neg(), nil); err != nil {
			return err
		}

		payments, err := repos.Invoices.GetPayments(ctx, inv.ID)
		if err != nil {
			return err
		}
		customer, err := repos.Customers.GetByID(ctx, inv.CustomerID)
		if err != nil {
			return err
		}
		agg = &invoiceAggregate{Invoice: inv, Details: details, Payments: payments, Customer: customer, Products: products}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Warn().
		Str("invoice_id", agg.Invoice.ID).
		Str("number", agg.Invoice.Number).
		Str("reason", reason).
		Str("user_id", p.UserID).
		Msg("factura anulada")

	return toInvoiceResponse(agg), nil
}
