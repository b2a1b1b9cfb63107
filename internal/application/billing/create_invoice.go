package billing

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	dbilling "github.com/jhoicas/ferreteria-api/internal/domain/billing"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain/pricing"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

// LedgerConfig parámetros de numeración e impuestos.
type LedgerConfig struct {
	DefaultSeries string
	NumberWidth   int
	TaxPolicy     pricing.TaxPolicy // nil = sin impuesto
}

// InvoiceUseCase crea, anula y consulta facturas. Cada operación de escritura es una sola transacción:
// stock, numeración, cabecera, detalles y pagos se aplican juntos o no se aplica nada.
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	stock        StockApplier
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	branchRepo   repository.BranchRepository
	invoiceRepo  repository.InvoiceRepository
	cfg          LedgerConfig
	log          *logger.Logger
	now          func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	stock StockApplier,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	branchRepo repository.BranchRepository,
	invoiceRepo repository.InvoiceRepository,
	cfg LedgerConfig,
	log *logger.Logger,
) *InvoiceUseCase {
	if cfg.TaxPolicy == nil {
		cfg.TaxPolicy = pricing.NoTax{}
	}
	if cfg.NumberWidth <= 0 {
		cfg.NumberWidth = dbilling.DefaultNumberWidth
	}
	if cfg.DefaultSeries == "" {
		cfg.DefaultSeries = "A"
	}
	return &InvoiceUseCase{
		txRunner:     txRunner,
		stock:        stock,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		invoiceRepo:  invoiceRepo,
		cfg:          cfg,
		log:          log.Named("billing"),
		now:          time.Now,
	}
}

// lineInput línea ya normalizada; UnitPrice/DiscountPercent nil = tomar del catálogo.
type lineInput struct {
	ProductID       string
	Quantity        decimal.Decimal
	UnitPrice       *decimal.Decimal
	DiscountPercent *decimal.Decimal
}

// invoiceInput entrada validada de forma (sin tocar la DB) lista para createInTx.
type invoiceInput struct {
	CustomerID string
	BranchID   string
	Series     string
	QuoteID    string
	DueDate    *time.Time
	Notes      string
	Lines      []lineInput
	Payments   []*entity.InvoicePayment
}

// invoiceAggregate factura persistida con todo lo necesario para responder.
type invoiceAggregate struct {
	Invoice  *entity.Invoice
	Details  []*entity.InvoiceDetail
	Payments []*entity.InvoicePayment
	Customer *entity.Customer
	Products map[string]*entity.Product
}

// CreateInvoice valida, valoriza, numera y persiste la factura descontando stock, todo en una transacción.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, p access.Principal, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := access.Authorize(p, access.InvoiceCreate); err != nil {
		return nil, err
	}
	lines, err := toLineInputs(in.Lines)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	payments, err := buildPayments(in.Payments, now)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.CustomerID) == "" {
		return nil, domain.Wrap(domain.ErrInvalidInput, "cliente requerido")
	}
	branchID, series, err := uc.resolveBranchSeries(ctx, p, in.BranchID, in.Series)
	if err != nil {
		return nil, err
	}

	input := invoiceInput{
		CustomerID: in.CustomerID,
		BranchID:   branchID,
		Series:     series,
		DueDate:    in.DueDate,
		Notes:      strings.TrimSpace(in.Notes),
		Lines:      lines,
		Payments:   payments,
	}

	var agg *invoiceAggregate
	err = uc.txRunner.RunBilling(ctx, func(repos repository.TxRepos) error {
		var err error
		agg, err = uc.createInTx(ctx, repos, p, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", agg.Invoice.ID).
		Str("number", agg.Invoice.Number).
		Str("branch_id", agg.Invoice.BranchID).
		Str("total", agg.Invoice.Total.StringFixed(2)).
		Int("lines", len(agg.Details)).
		Str("user_id", p.UserID).
		Msg("factura creada")

	return toInvoiceResponse(agg), nil
}

// resolveBranchSeries sucursal: la pedida o la del usuario; serie: la pedida, la de la sucursal o la por defecto.
// Se lee fuera de la transacción.
func (uc *InvoiceUseCase) resolveBranchSeries(ctx context.Context, p access.Principal, branchID, series string) (string, string, error) {
	if branchID == "" {
		branchID = p.BranchID
	}
	if branchID == "" {
		return "", "", domain.Wrap(domain.ErrInvalidInput, "sucursal requerida")
	}
	if err := access.AuthorizeBranch(p, branchID); err != nil {
		return "", "", err
	}
	branch, err := uc.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return "", "", err
	}
	if branch == nil {
		return "", "", domain.ErrBranchNotFound
	}
	if series == "" {
		series = branch.InvoiceSeries
	}
	if series == "" {
		series = uc.cfg.DefaultSeries
	}
	series, err = dbilling.NormalizeSeries(series)
	if err != nil {
		return "", "", err
	}
	return branchID, series, nil
}

// createInTx es el núcleo del ledger. Todas las validaciones contra datos ocurren antes de la primera
// escritura; las filas de producto quedan bloqueadas (FOR UPDATE, en orden de ID) hasta el commit.
// ConvertToInvoice la reutiliza dentro de su propia transacción.
func (uc *InvoiceUseCase) createInTx(ctx context.Context, repos repository.TxRepos, p access.Principal, in invoiceInput) (*invoiceAggregate, error) {
	now := uc.now()

	// 1) Cliente
	customer, err := activeCustomer(ctx, repos, in.CustomerID)
	if err != nil {
		return nil, err
	}

	// 2) Productos bloqueados, activos y con stock suficiente (agregado por producto)
	ids := uniqueProductIDs(in.Lines)
	products, err := repos.Products.LockByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	need := make(map[string]decimal.Decimal, len(ids))
	for _, l := range in.Lines {
		pr, ok := products[l.ProductID]
		if !ok {
			return nil, domain.Wrap(domain.ErrProductNotFound, "%s", l.ProductID)
		}
		if !pr.IsActive() {
			return nil, domain.Wrap(domain.ErrProductInactive, "%s", pr.Code)
		}
		need[l.ProductID] = need[l.ProductID].Add(l.Quantity)
	}
	for _, id := range ids {
		pr := products[id]
		if pr.Stock.LessThan(need[id]) {
			return nil, domain.Wrap(domain.ErrInsufficientStock, "producto %s: disponible %s, solicitado %s, faltan %s",
				pr.Code, pr.Stock.String(), need[id].String(), need[id].Sub(pr.Stock).String())
		}
	}

	// 3) Valorización y totales
	priced, totals, err := priceLines(in.Lines, products, uc.cfg.TaxPolicy)
	if err != nil {
		return nil, err
	}

	// 4) Conciliación de pagos
	if err := reconcile(in.Payments, totals.Total); err != nil {
		return nil, err
	}

	// 5) Numeración: incremento bloqueante de la fila de la serie
	correlative, err := repos.Series.Next(ctx, in.Series, in.BranchID)
	if err != nil {
		return nil, err
	}

	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		Number:        dbilling.FormatNumber(in.Series, correlative, uc.cfg.NumberWidth),
		Series:        in.Series,
		Correlative:   correlative,
		CustomerID:    customer.ID,
		EmployeeID:    p.UserID,
		BranchID:      in.BranchID,
		QuoteID:       in.QuoteID,
		IssuedAt:      now,
		DueDate:       in.DueDate,
		Subtotal:      totals.Subtotal,
		DiscountTotal: totals.DiscountTotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Notes:         in.Notes,
		Status:        entity.InvoiceStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	details := make([]*entity.InvoiceDetail, 0, len(priced))
	for _, pl := range priced {
		details = append(details, &entity.InvoiceDetail{
			ID:              uuid.New().String(),
			InvoiceID:       inv.ID,
			ProductID:       pl.ProductID,
			LineNumber:      pl.LineNumber,
			Quantity:        pl.Quantity,
			UnitPrice:       pl.UnitPrice,
			DiscountPercent: pl.DiscountPercent,
			DiscountAmount:  pl.DiscountAmount,
			Subtotal:        pl.Subtotal,
		})
	}
	for _, pay := range in.Payments {
		pay.InvoiceID = inv.ID
	}

	// 6) Persistencia
	if err := repos.Invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	if err := repos.Invoices.CreateDetails(ctx, details); err != nil {
		return nil, err
	}
	if err := repos.Invoices.CreatePayments(ctx, in.Payments); err != nil {
		return nil, err
	}

	// 7) Salida de stock por línea, referenciando la factura
	for _, d := range details {
		if _, err := uc.stock.ApplyInTx(ctx, repos, products[d.ProductID], d.Quantity,
			inventory.Decrease, entity.MovementReasonSale, inv.ID, p.UserID); err != nil {
			return nil, err
		}
	}

	// 8) Pagos conciliados: Activa → Pagada
	if err := dbilling.CheckInvoiceTransition(inv.Status, entity.InvoiceStatusPaid); err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatusPaid
	if err := repos.Invoices.UpdateStatus(ctx, inv); err != nil {
		return nil, err
	}

	// 9) Acumulado del cliente
	if err := repos.Customers.AddPurchase(ctx, customer.ID, inv.Total, &now); err != nil {
		return nil, err
	}

	return &invoiceAggregate{
		Invoice:  inv,
		Details:  details,
		Payments: in.Payments,
		Customer: customer,
		Products: products,
	}, nil
}

// priceLines resuelve precio y descuento (override o catálogo) y valoriza.
func priceLines(lines []lineInput, products map[string]*entity.Product, policy pricing.TaxPolicy) ([]pricing.PricedLine, pricing.Totals, error) {
	in := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		pr := products[l.ProductID]
		price := pr.Price
		if l.UnitPrice != nil {
			price = *l.UnitPrice
		}
		discount := pr.DiscountPercent
		if l.DiscountPercent != nil {
			discount = *l.DiscountPercent
		}
		in = append(in, pricing.Line{
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			UnitPrice:       price,
			DiscountPercent: discount,
		})
	}
	return pricing.Compute(in, policy)
}

// toLineInputs validación de forma de las líneas (sin DB).
func toLineInputs(reqs []dto.LineRequest) ([]lineInput, error) {
	if len(reqs) == 0 {
		return nil, domain.Wrap(domain.ErrInvalidInput, "se requiere al menos una línea")
	}
	out := make([]lineInput, 0, len(reqs))
	for i, r := range reqs {
		id := strings.TrimSpace(r.ProductID)
		if id == "" {
			return nil, domain.Wrap(domain.ErrInvalidInput, "línea %d: producto requerido", i+1)
		}
		if !r.Quantity.IsPositive() {
			return nil, domain.Wrap(domain.ErrInvalidInput, "línea %d: la cantidad debe ser mayor a cero", i+1)
		}
		price, discount := decimal.Zero, decimal.Zero
		if r.UnitPrice != nil {
			price = *r.UnitPrice
		}
		if r.DiscountPercent != nil {
			discount = *r.DiscountPercent
		}
		if err := pricing.CheckScales(i+1, r.Quantity, price, discount); err != nil {
			return nil, err
		}
		out = append(out, lineInput{
			ProductID:       id,
			Quantity:        r.Quantity,
			UnitPrice:       r.UnitPrice,
			DiscountPercent: r.DiscountPercent,
		})
	}
	return out, nil
}

func uniqueProductIDs(lines []lineInput) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	sort.Strings(ids)
	return ids
}
