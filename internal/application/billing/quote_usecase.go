package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	dbilling "github.com/jhoicas/ferreteria-api/internal/domain/billing"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/pricing"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

// QuoteUseCase cotizaciones: misma valorización que la factura, sin tocar stock.
// La conversión a factura reutiliza el ledger dentro de la misma transacción.
type QuoteUseCase struct {
	txRunner     BillingTxRunner
	invoices     *InvoiceUseCase
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	branchRepo   repository.BranchRepository
	quoteRepo    repository.QuoteRepository
	validityDays int
	log          *logger.Logger
	now          func() time.Time
}

// NewQuoteUseCase construye el caso de uso. validityDays <= 0 usa la vigencia por defecto (15 días).
func NewQuoteUseCase(
	txRunner BillingTxRunner,
	invoices *InvoiceUseCase,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	branchRepo repository.BranchRepository,
	quoteRepo repository.QuoteRepository,
	validityDays int,
	log *logger.Logger,
) *QuoteUseCase {
	if validityDays <= 0 {
		validityDays = entity.DefaultQuoteValidityDays
	}
	return &QuoteUseCase{
		txRunner:     txRunner,
		invoices:     invoices,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		quoteRepo:    quoteRepo,
		validityDays: validityDays,
		log:          log.Named("quotes"),
		now:          time.Now,
	}
}

type quoteAggregate struct {
	Quote    *entity.Quote
	Details  []*entity.QuoteDetail
	Customer *entity.Customer
	Products map[string]*entity.Product
}

// CreateQuote crea una cotización en Borrador con vigencia validUntil = emisión + días.
func (uc *QuoteUseCase) CreateQuote(ctx context.Context, p access.Principal, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := access.Authorize(p, access.QuoteCreate); err != nil {
		return nil, err
	}
	lines, err := toLineInputs(in.Lines)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.CustomerID) == "" {
		return nil, domain.Wrap(domain.ErrInvalidInput, "cliente requerido")
	}
	branchID := in.BranchID
	if branchID == "" {
		branchID = p.BranchID
	}
	if err := access.AuthorizeBranch(p, branchID); err != nil {
		return nil, err
	}
	branch, err := uc.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrBranchNotFound
	}
	validity := in.ValidityDays
	if validity <= 0 {
		validity = uc.validityDays
	}

	var agg *quoteAggregate
	err = uc.txRunner.RunBilling(ctx, func(repos repository.TxRepos) error {
		customer, err := activeCustomer(ctx, repos, in.CustomerID)
		if err != nil {
			return err
		}
		products, err := activeProducts(ctx, repos, lines)
		if err != nil {
			return err
		}
		priced, totals, err := priceLines(lines, products, uc.invoices.cfg.TaxPolicy)
		if err != nil {
			return err
		}
		correlative, err := repos.Series.Next(ctx, entity.QuoteSeries, "")
		if err != nil {
			return err
		}
		now := uc.now()
		q := &entity.Quote{
			ID:           uuid.New().String(),
			Number:       dbilling.FormatNumber(entity.QuoteSeries, correlative, uc.invoices.cfg.NumberWidth),
			CustomerID:   customer.ID,
			EmployeeID:   p.UserID,
			BranchID:     branchID,
			IssuedAt:     now,
			ValidityDays: validity,
			ValidUntil:   now.AddDate(0, 0, validity),
			Notes:        strings.TrimSpace(in.Notes),
			PaymentTerms: strings.TrimSpace(in.PaymentTerms),
			DeliveryTime: strings.TrimSpace(in.DeliveryTime),
			Status:       entity.QuoteStatusDraft,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		applyTotals(q, totals)
		if err := repos.Quotes.Create(ctx, q); err != nil {
			return err
		}
		details := toQuoteDetails(q.ID, priced)
		if err := repos.Quotes.ReplaceDetails(ctx, q.ID, details); err != nil {
			return err
		}
		agg = &quoteAggregate{Quote: q, Details: details, Customer: customer, Products: products}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("quote_id", agg.Quote.ID).Str("number", agg.Quote.Number).
		Str("total", agg.Quote.Total.StringFixed(2)).Msg("cotización creada")
	return toQuoteResponse(agg), nil
}

// Recalculate reemplaza las líneas y recalcula totales. Solo en Borrador.
func (uc *QuoteUseCase) Recalculate(ctx context.Context, p access.Principal, quoteID string, in dto.RecalculateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := access.Authorize(p, access.QuoteUpdate); err != nil {
		return nil, err
	}
	lines, err := toLineInputs(in.Lines)
	if err != nil {
		return nil, err
	}
	var agg *quoteAggregate
	err = uc.txRunner.RunBilling(ctx, func(repos repository.TxRepos) error {
		q, err := repos.Quotes.GetForUpdate(ctx, quoteID)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrQuoteNotFound
		}
		if q.Status != entity.QuoteStatusDraft {
			return domain.Wrap(domain.ErrInvalidTransition, "solo se recalculan cotizaciones en %s (actual: %s)",
				entity.QuoteStatusDraft, q.Status)
		}
		products, err := activeProducts(ctx, repos, lines)
		if err != nil {
			return err
		}
		priced, totals, err := priceLines(lines, products, uc.invoices.cfg.TaxPolicy)
		if err != nil {
			return err
		}
		applyTotals(q, totals)
		q.UpdatedAt = uc.now()
		details := toQuoteDetails(q.ID, priced)
		if err := repos.Quotes.ReplaceDetails(ctx, q.ID, details); err != nil {
			return err
		}
		if err := repos.Quotes.Update(ctx, q); err != nil {
			return err
		}
		customer, err := repos.Customers.GetByID(ctx, q.CustomerID)
		if err != nil {
			return err
		}
		agg = &quoteAggregate{Quote: q, Details: details, Customer: customer, Products: products}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(agg), nil
}

// ChangeStatus aplica una transición pedida por el usuario: Enviada, Aceptada o Rechazada.
func (uc *QuoteUseCase) ChangeStatus(ctx context.Context, p access.Principal, quoteID string, in dto.ChangeQuoteStatusRequest) (*dto.QuoteResponse, error) {
	if err := access.Authorize(p, access.QuoteUpdate); err != nil {
		return nil, err
	}
	if !dbilling.IsQuoteUserStatus(in.Status) {
		return nil, domain.Wrap(domain.ErrInvalidInput, "estado no permitido %q", in.Status)
	}
	err := uc.txRunner.RunBilling(ctx, func(repos repository.TxRepos) error {
		q, err := repos.Quotes.GetForUpdate(ctx, quoteID)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrQuoteNotFound
		}
		if err := dbilling.CheckQuoteTransition(q.Status, in.Status); err != nil {
			return err
		}
		q.Status = in.Status
		q.UpdatedAt = uc.now()
		return repos.Quotes.Update(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetQuote(ctx, p, quoteID)
}

// ConvertToInvoice genera la factura de una cotización Aceptada y vigente, con los precios y descuentos
// cotizados. La cotización queda Convertida y vinculada; una segunda llamada falla con ErrAlreadyConverted.
func (uc *QuoteUseCase) ConvertToInvoice(ctx context.Context, p access.Principal, quoteID string, in dto.ConvertQuoteRequest) (*dto.InvoiceResponse, error) {
	if err := access.Authorize(p, access.QuoteConvert); err != nil {
		return nil, err
	}
	now := uc.now()
	payments, err := buildPayments(in.Payments, now)
	if err != nil {
		return nil, err
	}

	// Lectura previa fuera de la tx para resolver sucursal y serie; el estado se revalida bajo bloqueo.
	pre, err := uc.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if pre == nil {
		return nil, domain.ErrQuoteNotFound
	}
	if err := checkConvertible(pre, now); err != nil {
		return nil, err
	}
	branchID, series, err := uc.invoices.resolveBranchSeries(ctx, p, pre.BranchID, in.Series)
	if err != nil {
		return nil, err
	}

	var agg *invoiceAggregate
	err = uc.txRunner.RunBilling(ctx, func(repos repository.TxRepos) error {
		q, err := repos.Quotes.GetForUpdate(ctx, quoteID)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrQuoteNotFound
		}
		if err := checkConvertible(q, uc.now()); err != nil {
			return err
		}
		qDetails, err := repos.Quotes.GetDetails(ctx, q.ID)
		if err != nil {
			return err
		}
		lines := make([]lineInput, 0, len(qDetails))
		for _, d := range qDetails {
			price, pct := d.UnitPrice, d.DiscountPercent
			lines = append(lines, lineInput{
				ProductID:       d.ProductID,
				Quantity:        d.Quantity,
				UnitPrice:       &price,
				DiscountPercent: &pct,
			})
		}
		agg, err = uc.invoices.createInTx(ctx, repos, p, invoiceInput{
			CustomerID: q.CustomerID,
			BranchID:   branchID,
			Series:     series,
			QuoteID:    q.ID,
			Notes:      q.Notes,
			Lines:      lines,
			Payments:   payments,
		})
		if err != nil {
			return err
		}
		if err := dbilling.CheckQuoteTransition(q.Status, entity.QuoteStatusConverted); err != nil {
			return err
		}
		q.Status = entity.QuoteStatusConverted
		q.InvoiceID = agg.Invoice.ID
		q.UpdatedAt = uc.now()
		return repos.Quotes.Update(ctx, q)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("quote_id", quoteID).
		Str("invoice_id", agg.Invoice.ID).
		Str("number", agg.Invoice.Number).
		Msg("cotización convertida")
	return toInvoiceResponse(agg), nil
}

func checkConvertible(q *entity.Quote, now time.Time) error {
	if q.Status == entity.QuoteStatusConverted || q.InvoiceID != "" {
		return domain.ErrAlreadyConverted
	}
	if q.Status != entity.QuoteStatusAccepted {
		return domain.Wrap(domain.ErrQuoteNotConvertible, "estado %s", q.Status)
	}
	if q.IsExpiredAt(now) {
		return domain.Wrap(domain.ErrQuoteNotConvertible, "vigente hasta %s", q.ValidUntil.Format(dateLayout))
	}
	return nil
}

// GetQuote devuelve la cotización con sus líneas.
func (uc *QuoteUseCase) GetQuote(ctx context.Context, p access.Principal, id string) (*dto.QuoteResponse, error) {
	if err := access.Authorize(p, access.QuoteRead); err != nil {
		return nil, err
	}
	q, err := uc.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrQuoteNotFound
	}
	details, err := uc.quoteRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, q.CustomerID)
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
	return toQuoteResponse(&quoteAggregate{Quote: q, Details: details, Customer: customer, Products: products}), nil
}

// ListQuotes listado paginado sin líneas.
func (uc *QuoteUseCase) ListQuotes(ctx context.Context, p access.Principal, in dto.QuoteListRequest) (*dto.ListResponse[dto.QuoteResponse], error) {
	if err := access.Authorize(p, access.QuoteRead); err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, total, err := uc.quoteRepo.List(ctx, repository.QuoteFilter{
		BranchID:   in.BranchID,
		CustomerID: in.CustomerID,
		Status:     in.Status,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		items = append(items, *toQuoteResponse(&quoteAggregate{Quote: q}))
	}
	return &dto.ListResponse[dto.QuoteResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// ExpireOverdueQuotes pasa a Vencida las cotizaciones no convertidas con vigencia vencida.
func (uc *QuoteUseCase) ExpireOverdueQuotes(ctx context.Context, now time.Time) (int64, error) {
	return uc.quoteRepo.ExpireOverdue(ctx, now)
}

func activeCustomer(ctx context.Context, repos repository.TxRepos, id string) (*entity.Customer, error) {
	c, err := repos.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.Wrap(domain.ErrCustomerNotFound, "%s", id)
	}
	if !c.CanBuy() {
		return nil, domain.Wrap(domain.ErrCustomerInactive, "%s está %s", c.Code, c.Status)
	}
	return c, nil
}

// activeProducts carga (sin bloquear) los productos de las líneas y exige que existan y estén activos.
func activeProducts(ctx context.Context, repos repository.TxRepos, lines []lineInput) (map[string]*entity.Product, error) {
	products, err := repos.Products.GetByIDs(ctx, uniqueProductIDs(lines))
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		pr, ok := products[l.ProductID]
		if !ok {
			return nil, domain.Wrap(domain.ErrProductNotFound, "%s", l.ProductID)
		}
		if !pr.IsActive() {
			return nil, domain.Wrap(domain.ErrProductInactive, "%s", pr.Code)
		}
	}
	return products, nil
}

func applyTotals(q *entity.Quote, t pricing.Totals) {
	q.Subtotal = t.Subtotal
	q.DiscountTotal = t.DiscountTotal
	q.Tax = t.Tax
	q.Total = t.Total
}

func toQuoteDetails(quoteID string, priced []pricing.PricedLine) []*entity.QuoteDetail {
	out := make([]*entity.QuoteDetail, 0, len(priced))
	for _, pl := range priced {
		out = append(out, &entity.QuoteDetail{
			ID:              uuid.New().String(),
			QuoteID:         quoteID,
			ProductID:       pl.ProductID,
			LineNumber:      pl.LineNumber,
			Quantity:        pl.Quantity,
			UnitPrice:       pl.UnitPrice,
			DiscountPercent: pl.DiscountPercent,
			DiscountAmount:  pl.DiscountAmount,
			Subtotal:        pl.Subtotal,
		})
	}
	return out
}

func toQuoteResponse(agg *quoteAggregate) *dto.QuoteResponse {
	q := agg.Quote
	out := &dto.QuoteResponse{
		ID:            q.ID,
		Number:        q.Number,
		CustomerID:    q.CustomerID,
		EmployeeID:    q.EmployeeID,
		BranchID:      q.BranchID,
		IssuedAt:      q.IssuedAt,
		ValidityDays:  q.ValidityDays,
		ValidUntil:    q.ValidUntil,
		Subtotal:      q.Subtotal,
		DiscountTotal: q.DiscountTotal,
		Tax:           q.Tax,
		Total:         q.Total,
		Notes:         q.Notes,
		PaymentTerms:  q.PaymentTerms,
		DeliveryTime:  q.DeliveryTime,
		Status:        q.Status,
		InvoiceID:     q.InvoiceID,
	}
	if agg.Customer != nil {
		out.CustomerName = agg.Customer.Name
	}
	for _, d := range agg.Details {
		out.Details = append(out.Details, toDetailResponse(d.LineNumber, d.ProductID, d.Quantity, d.UnitPrice,
			d.DiscountPercent, d.DiscountAmount, d.Subtotal, agg.Products))
	}
	return out
}
