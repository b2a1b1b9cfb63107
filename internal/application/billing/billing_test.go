package billing_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/application/billing"
	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	appinv "github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/ferreteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	cashier   = access.Principal{UserID: "u-caja", Role: entity.RoleCashier, BranchID: "B1"}
	dataEntry = access.Principal{UserID: "u-dig", Role: entity.RoleDataEntry, BranchID: "B1"}
	manager   = access.Principal{UserID: "u-ger", Role: entity.RoleManager, BranchID: "B1"}
)

type fixture struct {
	store    *memory.Store
	invoices *billing.InvoiceUseCase
	quotes   *billing.QuoteUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	store.SeedBranch(entity.Branch{ID: "B1", Code: "CEN", Name: "Central", InvoiceSeries: "A", Status: "Activa"})
	store.SeedBranch(entity.Branch{ID: "B2", Code: "NOR", Name: "Norte", InvoiceSeries: "B", Status: "Activa"})

	now := time.Now()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "P001", Code: "P001", Name: "Pintura látex blanco galón", Price: dec("100.00"),
		Stock: dec("10"), MinStock: dec("5"), Status: entity.ProductStatusActive, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "P002", Code: "P002", Name: "Brocha 2 pulgadas", Price: dec("25.50"),
		Stock: dec("40"), MinStock: dec("10"), Status: entity.ProductStatusInactive, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{
		ID: "C1", Code: "CLI-001", Name: "Ferretería El Martillo", Email: "compras@martillo.gt",
		Status: entity.CustomerStatusActive, CreatedAt: now, UpdatedAt: now,
	}))

	log := logger.Nop()
	stock := appinv.NewStockUseCase(store, store.Products(), store.Movements(), log)
	invoices := billing.NewInvoiceUseCase(store, stock, store.Products(), store.Customers(), store.Branches(),
		store.Invoices(), billing.LedgerConfig{DefaultSeries: "A", NumberWidth: 8}, log)
	quotes := billing.NewQuoteUseCase(store, invoices, store.Products(), store.Customers(), store.Branches(),
		store.Quotes(), 15, log)
	return &fixture{store: store, invoices: invoices, quotes: quotes}
}

func (f *fixture) stockOf(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func cash(amount string) []dto.PaymentRequest {
	return []dto.PaymentRequest{{PaymentTypeID: entity.PaymentTypeCash, Amount: dec(amount)}}
}

func buyP001(qty, paid string) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CustomerID: "C1",
		Lines:      []dto.LineRequest{{ProductID: "P001", Quantity: dec(qty)}},
		Payments:   cash(paid),
	}
}

func TestCreateInvoice_SingleLineCash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv, err := f.invoices.CreateInvoice(ctx, cashier, buyP001("3", "300.00"))
	require.NoError(t, err)

	assert.Equal(t, "A-00000001", inv.Number)
	assert.Equal(t, int64(1), inv.Correlative)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	assert.Equal(t, "B1", inv.BranchID)
	assert.Equal(t, "u-caja", inv.EmployeeID)
	assert.True(t, inv.Total.Equal(dec("300.00")))
	require.Len(t, inv.Details, 1)
	assert.Equal(t, 1, inv.Details[0].LineNumber)
	assert.Equal(t, "P001", inv.Details[0].ProductCode)
	assert.True(t, inv.Details[0].Subtotal.Equal(dec("300.00")))
	require.Len(t, inv.Payments, 1)

	assert.True(t, f.stockOf(t, "P001").Equal(dec("7")))

	movs, err := f.store.Movements().ListByProduct(ctx, "P001", 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementReasonSale, movs[0].Reason)
	assert.Equal(t, inv.ID, movs[0].ReferenceID)
	assert.True(t, movs[0].StockBefore.Equal(dec("10")))
	assert.True(t, movs[0].StockAfter.Equal(dec("7")))

	cu, err := f.store.Customers().GetByID(ctx, "C1")
	require.NoError(t, err)
	assert.True(t, cu.TotalPurchases.Equal(dec("300.00")))
	assert.NotNil(t, cu.LastPurchaseAt)
}

func TestCreateInvoice_MixedPayments(t *testing.T) {
	f := newFixture(t)
	req := buyP001("3", "100.00")
	req.Payments = append(req.Payments, dto.PaymentRequest{
		PaymentTypeID: entity.PaymentTypeCard, Amount: dec("200.00"),
		AuthorizationNumber: "AUT-7781", CardLastDigits: "4321", CardType: entity.CardTypeDebit,
	})

	inv, err := f.invoices.CreateInvoice(context.Background(), cashier, req)
	require.NoError(t, err)
	assert.Len(t, inv.Payments, 2)
	assert.True(t, inv.Total.Equal(dec("300.00")))
}

func TestCreateInvoice_CardWithoutReference(t *testing.T) {
	f := newFixture(t)
	req := buyP001("3", "0")
	req.Payments = []dto.PaymentRequest{{PaymentTypeID: entity.PaymentTypeCard, Amount: dec("300.00")}}

	_, err := f.invoices.CreateInvoice(context.Background(), cashier, req)
	assert.ErrorIs(t, err, domain.ErrMissingPaymentReference)
	assert.True(t, f.stockOf(t, "P001").Equal(dec("10")))
}

func TestCreateInvoice_PaymentMismatchLeavesStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.invoices.CreateInvoice(ctx, cashier, buyP001("3", "299.99"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPaymentMismatch)
	assert.Contains(t, err.Error(), "0.01")

	assert.True(t, f.stockOf(t, "P001").Equal(dec("10")))
	list, total, err := f.store.Invoices().List(ctx, repository.InvoiceFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)
}

func TestCreateInvoice_InsufficientStockLeavesState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.invoices.CreateInvoice(ctx, cashier, dto.CreateInvoiceRequest{
		CustomerID: "C1",
		// dos líneas del mismo producto: el stock se valida sobre la suma
		Lines: []dto.LineRequest{
			{ProductID: "P001", Quantity: dec("6")},
			{ProductID: "P001", Quantity: dec("5")},
		},
		Payments: cash("1100.00"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.stockOf(t, "P001").Equal(dec("10")))

	movs, err := f.store.Movements().ListByProduct(ctx, "P001", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)

	// la numeración no quedó consumida
	inv, err := f.invoices.CreateInvoice(ctx, cashier, buyP001("1", "100.00"))
	require.NoError(t, err)
	assert.Equal(t, "A-00000001", inv.Number)
}

func TestCreateInvoice_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.invoices.CreateInvoice(ctx, cashier, dto.CreateInvoiceRequest{
		CustomerID: "C1",
		Lines:      []dto.LineRequest{{ProductID: "P002", Quantity: dec("1")}},
		Payments:   cash("25.50"),
	})
	assert.ErrorIs(t, err, domain.ErrProductInactive)

	_, err = f.invoices.CreateInvoice(ctx, cashier, dto.CreateInvoiceRequest{
		CustomerID: "C1",
		Lines:      []dto.LineRequest{{ProductID: "NOPE", Quantity: dec("1")}},
		Payments:   cash("1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	req := buyP001("1", "100.00")
	req.CustomerID = "C404"
	_, err = f.invoices.CreateInvoice(ctx, cashier, req)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	req = buyP001("1", "100.00")
	req.BranchID = "B2"
	_, err = f.invoices.CreateInvoice(ctx, cashier, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.invoices.CreateInvoice(ctx, dataEntry, buyP001("1", "100.00"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.True(t, f.stockOf(t, "P001").Equal(dec("10")))
}

func TestCreateInvoice_ExplicitSeriesAndBranch(t *testing.T) {
	f := newFixture(t)
	req := buyP001("1", "100.00")
	req.BranchID = "B2"

	inv, err := f.invoices.CreateInvoice(context.Background(), manager, req)
	require.NoError(t, err)
	assert.Equal(t, "B-00000001", inv.Number)

	req.Series = "a"
	inv, err = f.invoices.CreateInvoice(context.Background(), manager, req)
	require.NoError(t, err)
	assert.Equal(t, "A-00000001", inv.Number)
}

func TestCreateInvoice_QuoteSeriesIsReserved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := buyP001("1", "100.00")
	req.Series = "cot"

	_, err := f.invoices.CreateInvoice(ctx, cashier, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, f.stockOf(t, "P001").Equal(dec("10")))

	q, err := f.quotes.CreateQuote(ctx, dataEntry, dto.CreateQuoteRequest{
		CustomerID: "C1",
		Lines:      []dto.LineRequest{{ProductID: "P001", Quantity: dec("1")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "COT-00000001", q.Number)
}

func TestCreateInvoice_ParallelCorrelativesAreDistinct(t *testing.T) {
	f := newFixture(t)
	const n = 10

	var wg sync.WaitGroup
	numbers := make(chan int64, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inv, err := f.invoices.CreateInvoice(context.Background(), cashier, buyP001("1", "100.00"))
			if err != nil {
				errs <- err
				return
			}
			numbers <- inv.Correlative
		}()
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		t.Fatalf("creación concurrente falló: %v", err)
	}
	seen := map[int64]bool{}
	for c := range numbers {
		assert.False(t, seen[c], "correlativo repetido %d", c)
		seen[c] = true
	}
	assert.Len(t, seen, n)
	for c := int64(1); c <= n; c++ {
		assert.True(t, seen[c], "falta el correlativo %d", c)
	}
	assert.True(t, f.stockOf(t, "P001").IsZero())

	_, err := f.invoices.CreateInvoice(context.Background(), cashier, buyP001("1", "100.00"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestVoidInvoice_RestoresStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv, err := f.invoices.CreateInvoice(ctx, cashier, buyP001("3", "300.00"))
	require.NoError(t, err)
	require.True(t, f.stockOf(t, "P001").Equal(dec("7")))

	_, err = f.invoices.VoidInvoice(ctx, cashier, inv.ID, dto.VoidInvoiceRequest{Reason: "error de cobro"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.invoices.VoidInvoice(ctx, manager, inv.ID, dto.VoidInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	voided, err := f.invoices.VoidInvoice(ctx, manager, inv.ID, dto.VoidInvoiceRequest{Reason: "cliente devolvió la mercadería"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusVoided, voided.Status)
	assert.Equal(t, "cliente devolvió la mercadería", voided.VoidReason)
	assert.Equal(t, "u-ger", voided.VoidedBy)
	assert.NotNil(t, voided.VoidedAt)
	assert.Len(t, voided.Details, 1)
	assert.True(t, f.stockOf(t, "P001").Equal(dec("10")))

	cu, err := f.store.Customers().GetByID(ctx, "C1")
	require.NoError(t, err)
	assert.True(t, cu.TotalPurchases.IsZero())

	_, err = f.invoices.VoidInvoice(ctx, manager, inv.ID, dto.VoidInvoiceRequest{Reason: "otra vez"})
	assert.ErrorIs(t, err, domain.ErrAlreadyVoided)
	assert.True(t, f.stockOf(t, "P001").Equal(dec("10")))

	movs, err := f.store.Movements().ListByProduct(ctx, "P001", 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 2)

	_, err = f.invoices.VoidInvoice(ctx, manager, "no-existe", dto.VoidInvoiceRequest{Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestListInvoices_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.invoices.CreateInvoice(ctx, cashier, buyP001("1", "100.00"))
		require.NoError(t, err)
	}

	out, err := f.invoices.ListInvoices(ctx, cashier, dto.InvoiceListRequest{
		PageRequest: dto.PageRequest{Limit: 2},
		BranchID:    "B1",
	})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 3, out.Page.Total)

	out, err = f.invoices.ListInvoices(ctx, cashier, dto.InvoiceListRequest{Status: entity.InvoiceStatusVoided})
	require.NoError(t, err)
	assert.Empty(t, out.Items)

	_, err = f.invoices.ListInvoices(ctx, cashier, dto.InvoiceListRequest{From: "2026-13-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func createAcceptedQuote(t *testing.T, f *fixture, qty string) *dto.QuoteResponse {
	t.Helper()
	ctx := context.Background()
	pct := dec("10")
	q, err := f.quotes.CreateQuote(ctx, dataEntry, dto.CreateQuoteRequest{
		CustomerID: "C1",
		Lines:      []dto.LineRequest{{ProductID: "P001", Quantity: dec(qty), DiscountPercent: &pct}},
	})
	require.NoError(t, err)
	_, err = f.quotes.ChangeStatus(ctx, dataEntry, q.ID, dto.ChangeQuoteStatusRequest{Status: entity.QuoteStatusAccepted})
	require.NoError(t, err)
	return q
}

func TestQuote_CreateDoesNotTouchStock(t *testing.T) {
	f := newFixture(t)
	pct := dec("10")
	q, err := f.quotes.CreateQuote(context.Background(), dataEntry, dto.CreateQuoteRequest{
		CustomerID: "C1",
		Lines:      []dto.LineRequest{{ProductID: "P001", Quantity: dec("20"), DiscountPercent: &pct}},
	})
	require.NoError(t, err)
	assert.Equal(t, "COT-00000001", q.Number)
	assert.Equal(t, entity.QuoteStatusDraft, q.Status)
	assert.Equal(t, 15, q.ValidityDays)
	assert.True(t, q.Subtotal.Equal(dec("2000.00")))
	assert.True(t, q.DiscountTotal.Equal(dec("200.00")))
	assert.True(t, q.Total.Equal(dec("1800.00")))
	// cotizar más que el stock está permitido
	assert.True(t, f.stockOf(t, "P001").Equal(dec("10")))
}

func TestQuote_RecalculateOnlyInDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q, err := f.quotes.CreateQuote(ctx, dataEntry, dto.CreateQuoteRequest{
		CustomerID: "C1",
		Lines:      []dto.LineRequest{{ProductID: "P001", Quantity: dec("1")}},
	})
	require.NoError(t, err)

	re, err := f.quotes.Recalculate(ctx, dataEntry, q.ID, dto.RecalculateQuoteRequest{
		Lines: []dto.LineRequest{{ProductID: "P001", Quantity: dec("2")}},
	})
	require.NoError(t, err)
	assert.True(t, re.Total.Equal(dec("200.00")))

	_, err = f.quotes.ChangeStatus(ctx, dataEntry, q.ID, dto.ChangeQuoteStatusRequest{Status: entity.QuoteStatusSent})
	require.NoError(t, err)
	_, err = f.quotes.Recalculate(ctx, dataEntry, q.ID, dto.RecalculateQuoteRequest{
		Lines: []dto.LineRequest{{ProductID: "P001", Quantity: dec("3")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestQuote_ConvertOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := createAcceptedQuote(t, f, "2")

	inv, err := f.quotes.ConvertToInvoice(ctx, cashier, q.ID, dto.ConvertQuoteRequest{Payments: cash("180.00")})
	require.NoError(t, err)
	assert.Equal(t, q.ID, inv.QuoteID)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.Total.Equal(dec("180.00")))
	assert.True(t, f.stockOf(t, "P001").Equal(dec("8")))

	got, err := f.quotes.GetQuote(ctx, cashier, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusConverted, got.Status)
	assert.Equal(t, inv.ID, got.InvoiceID)

	_, err = f.quotes.ConvertToInvoice(ctx, cashier, q.ID, dto.ConvertQuoteRequest{Payments: cash("180.00")})
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
	assert.True(t, f.stockOf(t, "P001").Equal(dec("8")))
}

func TestQuote_ConvertFailureKeepsQuoteAccepted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := createAcceptedQuote(t, f, "2")

	_, err := f.quotes.ConvertToInvoice(ctx, cashier, q.ID, dto.ConvertQuoteRequest{Payments: cash("200.00")})
	assert.ErrorIs(t, err, domain.ErrPaymentMismatch)

	got, err := f.quotes.GetQuote(ctx, cashier, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusAccepted, got.Status)
	assert.Empty(t, got.InvoiceID)
	assert.True(t, f.stockOf(t, "P001").Equal(dec("10")))
}

func TestQuote_ConvertRequiresAccepted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q, err := f.quotes.CreateQuote(ctx, dataEntry, dto.CreateQuoteRequest{
		CustomerID: "C1",
		Lines:      []dto.LineRequest{{ProductID: "P001", Quantity: dec("1")}},
	})
	require.NoError(t, err)

	_, err = f.quotes.ConvertToInvoice(ctx, cashier, q.ID, dto.ConvertQuoteRequest{Payments: cash("100.00")})
	assert.ErrorIs(t, err, domain.ErrQuoteNotConvertible)

	_, err = f.quotes.ChangeStatus(ctx, dataEntry, q.ID, dto.ChangeQuoteStatusRequest{Status: entity.QuoteStatusRejected})
	require.NoError(t, err)
	_, err = f.quotes.ChangeStatus(ctx, dataEntry, q.ID, dto.ChangeQuoteStatusRequest{Status: entity.QuoteStatusAccepted})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestQuote_ConvertAfterValidityFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q := createAcceptedQuote(t, f, "2")

	later := q.ValidUntil.Add(24 * time.Hour)
	billing.SetQuoteClock(f.quotes, func() time.Time { return later })

	_, err := f.quotes.ConvertToInvoice(ctx, cashier, q.ID, dto.ConvertQuoteRequest{Payments: cash("180.00")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrQuoteNotConvertible)
	assert.Equal(t, "QUOTE_NOT_CONVERTIBLE", domain.AsError(err).Code)

	assert.True(t, f.stockOf(t, "P001").Equal(dec("10")))
	got, err := f.quotes.GetQuote(ctx, dataEntry, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusAccepted, got.Status)
	assert.Empty(t, got.InvoiceID)

	// no se emitió factura: el primer correlativo sigue libre
	inv, err := f.invoices.CreateInvoice(ctx, cashier, buyP001("1", "100.00"))
	require.NoError(t, err)
	assert.Equal(t, "A-00000001", inv.Number)
}

func TestCreateInvoice_RejectsValuesFinerThanStorage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	price, pct := dec("33.335"), dec("12.345")

	cases := map[string]dto.LineRequest{
		"cantidad":  {ProductID: "P001", Quantity: dec("1.0005")},
		"precio":    {ProductID: "P001", Quantity: dec("1"), UnitPrice: &price},
		"descuento": {ProductID: "P001", Quantity: dec("1"), DiscountPercent: &pct},
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.invoices.CreateInvoice(ctx, cashier, dto.CreateInvoiceRequest{
				CustomerID: "C1",
				Lines:      []dto.LineRequest{line},
				Payments:   cash("29.23"),
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			_, err = f.quotes.CreateQuote(ctx, dataEntry, dto.CreateQuoteRequest{
				CustomerID: "C1",
				Lines:      []dto.LineRequest{line},
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.True(t, f.stockOf(t, "P001").Equal(dec("10")))

	movs, err := f.store.Movements().ListByProduct(ctx, "P001", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestExpiry_SweepsOverdueQuotesAndInvoices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	createAcceptedQuote(t, f, "1")

	due := time.Now().Add(-time.Hour)
	req := buyP001("1", "100.00")
	req.DueDate = &due
	_, err := f.invoices.CreateInvoice(ctx, cashier, req)
	require.NoError(t, err)

	// las facturas pagadas no vencen
	n, err := f.invoices.ExpireOverdueInvoices(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = f.quotes.ExpireOverdueQuotes(ctx, time.Now().AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	res, err := billing.NewExpiryUseCase(f.invoices, f.quotes, logger.Nop()).Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Quotes)
}
