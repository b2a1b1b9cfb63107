package billing

import (
	"context"
	"time"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// GetInvoice devuelve la factura con detalle (en orden de línea) y pagos.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, p access.Principal, id string) (*dto.InvoiceResponse, error) {
	if err := access.Authorize(p, access.InvoiceRead); err != nil {
		return nil, err
	}
	agg, err := uc.loadAggregate(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(agg), nil
}

func (uc *InvoiceUseCase) loadAggregate(ctx context.Context, id string) (*invoiceAggregate, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	details, err := uc.invoiceRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.invoiceRepo.GetPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ProductID)
	}
	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &invoiceAggregate{Invoice: inv, Details: details, Payments: payments, Customer: customer, Products: products}, nil
}

// ListInvoices listado paginado (sin detalle). Fechas en formato YYYY-MM-DD; To es inclusivo.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, p access.Principal, in dto.InvoiceListRequest) (*dto.ListResponse[dto.InvoiceResponse], error) {
	if err := access.Authorize(p, access.InvoiceRead); err != nil {
		return nil, err
	}
	in.DefaultPage()
	from, to, err := parseDateRange(in.From, in.To)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.invoiceRepo.List(ctx, repository.InvoiceFilter{
		BranchID:   in.BranchID,
		CustomerID: in.CustomerID,
		Status:     in.Status,
		From:       from,
		To:         to,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(&invoiceAggregate{Invoice: inv}))
	}
	return &dto.ListResponse[dto.InvoiceResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// ExpireOverdueInvoices pasa a Vencida las facturas Activas cuyo vencimiento ya pasó. Lo invoca el barrido periódico.
func (uc *InvoiceUseCase) ExpireOverdueInvoices(ctx context.Context, now time.Time) (int64, error) {
	return uc.invoiceRepo.ExpireOverdue(ctx, now)
}

// parseDateRange convierte YYYY-MM-DD a [from, to+1día). Vacío = sin límite.
func parseDateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		t, err := time.ParseInLocation(dateLayout, fromStr, time.Local)
		if err != nil {
			return nil, nil, domain.Wrap(domain.ErrInvalidInput, "fecha desde inválida %q", fromStr)
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.ParseInLocation(dateLayout, toStr, time.Local)
		if err != nil {
			return nil, nil, domain.Wrap(domain.ErrInvalidInput, "fecha hasta inválida %q", toStr)
		}
		t = t.AddDate(0, 0, 1)
		to = &t
	}
	if from != nil && to != nil && !from.Before(*to) {
		return nil, nil, domain.Wrap(domain.ErrInvalidInput, "rango de fechas inválido")
	}
	return from, to, nil
}

func toInvoiceResponse(agg *invoiceAggregate) *dto.InvoiceResponse {
	inv := agg.Invoice
	out := &dto.InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		Series:        inv.Series,
		Correlative:   inv.Correlative,
		CustomerID:    inv.CustomerID,
		EmployeeID:    inv.EmployeeID,
		BranchID:      inv.BranchID,
		QuoteID:       inv.QuoteID,
		IssuedAt:      inv.IssuedAt,
		DueDate:       inv.DueDate,
		Subtotal:      inv.Subtotal,
		DiscountTotal: inv.DiscountTotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Notes:         inv.Notes,
		Status:        inv.Status,
		VoidReason:    inv.VoidReason,
		VoidedBy:      inv.VoidedBy,
		VoidedAt:      inv.VoidedAt,
	}
	if agg.Customer != nil {
		out.CustomerName = agg.Customer.Name
	}
	for _, d := range agg.Details {
		out.Details = append(out.Details, toDetailResponse(d.LineNumber, d.ProductID, d.Quantity, d.UnitPrice,
			d.DiscountPercent, d.DiscountAmount, d.Subtotal, agg.Products))
	}
	for _, pay := range agg.Payments {
		out.Payments = append(out.Payments, toPaymentResponse(pay))
	}
	return out
}

func toPaymentResponse(p *entity.InvoicePayment) dto.InvoicePaymentResponse {
	return dto.InvoicePaymentResponse{
		PaymentTypeID:       p.PaymentTypeID,
		Amount:              p.Amount,
		CheckNumber:         p.CheckNumber,
		CheckBank:           p.CheckBank,
		CheckDate:           p.CheckDate,
		AuthorizationNumber: p.AuthorizationNumber,
		CardLastDigits:      p.CardLastDigits,
		CardType:            p.CardType,
		CardBank:            p.CardBank,
		Reference:           p.Reference,
	}
}
