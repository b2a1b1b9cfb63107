package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository     = (*InvoiceRepo)(nil)
	_ repository.SeriesRepository      = (*SeriesRepo)(nil)
	_ repository.PaymentTypeRepository = (*PaymentTypeRepo)(nil)
)

const invoiceColumns = `id, number, series, correlative, customer_id, employee_id, branch_id, quote_id,
	issued_at, due_date, subtotal, discount_total, tax, total, notes, status, void_reason, voided_by,
	voided_at, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func scanInvoice(row rowScanner) (*entity.Invoice, error) {
	var (
		inv     entity.Invoice
		quoteID *string
	)
	err := row.Scan(&inv.ID, &inv.Number, &inv.Series, &inv.Correlative, &inv.CustomerID, &inv.EmployeeID,
		&inv.BranchID, &quoteID, &inv.IssuedAt, &inv.DueDate, &inv.Subtotal, &inv.DiscountTotal, &inv.Tax,
		&inv.Total, &inv.Notes, &inv.Status, &inv.VoidReason, &inv.VoidedBy, &inv.VoidedAt,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	inv.QuoteID = strOrEmpty(quoteID)
	return &inv, nil
}

// Create inserta la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Number, inv.Series, inv.Correlative, inv.CustomerID, inv.EmployeeID, inv.BranchID,
		nullIfEmpty(inv.QuoteID), inv.IssuedAt, inv.DueDate, inv.Subtotal, inv.DiscountTotal, inv.Tax,
		inv.Total, inv.Notes, inv.Status, inv.VoidReason, inv.VoidedBy, inv.VoidedAt,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Wrap(domain.ErrDuplicateNumber, "%s", inv.Number)
		}
		return dbErr("insert invoice", err)
	}
	return nil
}

// CreateDetails inserta las líneas en un solo viaje (pgx.Batch).
func (r *InvoiceRepo) CreateDetails(ctx context.Context, details []*entity.InvoiceDetail) error {
	if len(details) == 0 {
		return nil
	}
	query := `
		INSERT INTO invoice_details (id, invoice_id, product_id, line_number, quantity, unit_price,
			discount_percent, discount_amount, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	batch := &pgx.Batch{}
	for _, d := range details {
		batch.Queue(query, d.ID, d.InvoiceID, d.ProductID, d.LineNumber, d.Quantity, d.UnitPrice,
			d.DiscountPercent, d.DiscountAmount, d.Subtotal)
	}
	return sendBatch(ctx, r.q, batch, len(details), "insert invoice details")
}

// CreatePayments inserta los pagos en un solo viaje (pgx.Batch).
func (r *InvoiceRepo) CreatePayments(ctx context.Context, payments []*entity.InvoicePayment) error {
	if len(payments) == 0 {
		return nil
	}
	query := `
		INSERT INTO invoice_payments (id, invoice_id, payment_type_id, amount, check_number, check_bank,
			check_date, authorization_number, card_last_digits, card_type, card_bank, reference, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	batch := &pgx.Batch{}
	for _, p := range payments {
		batch.Queue(query, p.ID, p.InvoiceID, p.PaymentTypeID, p.Amount, p.CheckNumber, p.CheckBank,
			p.CheckDate, p.AuthorizationNumber, p.CardLastDigits, p.CardType, p.CardBank, p.Reference, p.PaidAt)
	}
	return sendBatch(ctx, r.q, batch, len(payments), "insert invoice payments")
}

// sendBatch envía el lote y revisa cada resultado; el primer error aborta.
func sendBatch(ctx context.Context, q Querier, batch *pgx.Batch, n int, op string) error {
	br := q.SendBatch(ctx, batch)
	for i := 0; i < n; i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return dbErr(op, err)
		}
	}
	return dbErr(op, br.Close())
}

// GetByID obtiene la cabecera de una factura.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id)
}

func (r *InvoiceRepo) getOne(ctx context.Context, query, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get invoice", err)
	}
	return inv, nil
}

// GetDetails líneas de la factura en orden de impresión.
func (r *InvoiceRepo) GetDetails(ctx context.Context, invoiceID string) ([]*entity.InvoiceDetail, error) {
	query := `
		SELECT id, invoice_id, product_id, line_number, quantity, unit_price, discount_percent, discount_amount, subtotal
		FROM invoice_details WHERE invoice_id = $1 ORDER BY line_number`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, dbErr("get invoice details", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceDetail
	for rows.Next() {
		var d entity.InvoiceDetail
		if err := rows.Scan(&d.ID, &d.InvoiceID, &d.ProductID, &d.LineNumber, &d.Quantity, &d.UnitPrice,
			&d.DiscountPercent, &d.DiscountAmount, &d.Subtotal); err != nil {
			return nil, dbErr("scan invoice detail", err)
		}
		list = append(list, &d)
	}
	return list, dbErr("get invoice details", rows.Err())
}

// GetPayments pagos registrados de la factura.
func (r *InvoiceRepo) GetPayments(ctx context.Context, invoiceID string) ([]*entity.InvoicePayment, error) {
	query := `
		SELECT id, invoice_id, payment_type_id, amount, check_number, check_bank, check_date,
			authorization_number, card_last_digits, card_type, card_bank, reference, paid_at
		FROM invoice_payments WHERE invoice_id = $1 ORDER BY paid_at, id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, dbErr("get invoice payments", err)
	}
	defer rows.Close()
	var list []*entity.InvoicePayment
	for rows.Next() {
		var p entity.InvoicePayment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.PaymentTypeID, &p.Amount, &p.CheckNumber, &p.CheckBank,
			&p.CheckDate, &p.AuthorizationNumber, &p.CardLastDigits, &p.CardType, &p.CardBank,
			&p.Reference, &p.PaidAt); err != nil {
			return nil, dbErr("scan invoice payment", err)
		}
		list = append(list, &p)
	}
	return list, dbErr("get invoice payments", rows.Err())
}

// UpdateStatus persiste estado y datos de anulación.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET status = $2, void_reason = $3, voided_by = $4, voided_at = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, inv.ID, inv.Status, inv.VoidReason, inv.VoidedBy, inv.VoidedAt, inv.UpdatedAt)
	if err != nil {
		return dbErr("update invoice status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// List facturas filtradas, más recientes primero, con el total sin paginar.
func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	var w where
	if f.BranchID != "" {
		w.add("branch_id = ?", f.BranchID)
	}
	if f.CustomerID != "" {
		w.add("customer_id = ?", f.CustomerID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.From != nil {
		w.add("issued_at >= ?", *f.From)
	}
	if f.To != nil {
		w.add("issued_at < ?", *f.To)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM invoices`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbErr("count invoices", err)
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices` + w.sql() + ` ORDER BY issued_at DESC, id` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, dbErr("list invoices", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, dbErr("scan invoice", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dbErr("list invoices", err)
	}
	return list, total, nil
}

// ExpireOverdue pasa a Vencida las facturas Activas con vencimiento anterior a now.
func (r *InvoiceRepo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE invoices SET status = $1, updated_at = $2 WHERE status = $3 AND due_date IS NOT NULL AND due_date < $2`,
		entity.InvoiceStatusExpired, now, entity.InvoiceStatusActive)
	if err != nil {
		return 0, dbErr("expire invoices", err)
	}
	return cmd.RowsAffected(), nil
}

// SeriesRepo contador de correlativos por serie.
type SeriesRepo struct {
	q Querier
}

// NewSeriesRepository construye el adaptador. Debe usarse con una tx para que el bloqueo dure hasta el commit.
func NewSeriesRepository(q Querier) *SeriesRepo {
	return &SeriesRepo{q: q}
}

// Next crea la serie si no existe y la incrementa; el UPDATE deja la fila bloqueada para
// que dos ventas de la misma serie se encolen y nunca compartan correlativo.
func (r *SeriesRepo) Next(ctx context.Context, series, branchID string) (int64, error) {
	if _, err := r.q.Exec(ctx,
		`INSERT INTO invoice_series (series, branch_id) VALUES ($1, $2) ON CONFLICT (series) DO NOTHING`,
		series, branchID); err != nil {
		return 0, dbErr("create series", err)
	}
	var next int64
	err := r.q.QueryRow(ctx,
		`UPDATE invoice_series SET last_correlative = last_correlative + 1, updated_at = now()
		 WHERE series = $1 RETURNING last_correlative`, series).Scan(&next)
	if err != nil {
		return 0, dbErr("next correlative", err)
	}
	return next, nil
}

// PaymentTypeRepo catálogo de tipos de pago.
type PaymentTypeRepo struct {
	q Querier
}

// NewPaymentTypeRepository construye el adaptador.
func NewPaymentTypeRepository(q Querier) *PaymentTypeRepo {
	return &PaymentTypeRepo{q: q}
}

// List tipos de pago activos ordenados por nombre.
func (r *PaymentTypeRepo) List(ctx context.Context) ([]*entity.PaymentType, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, description, requires_reference, active FROM payment_types WHERE active ORDER BY name`)
	if err != nil {
		return nil, dbErr("list payment types", err)
	}
	defer rows.Close()
	var list []*entity.PaymentType
	for rows.Next() {
		var pt entity.PaymentType
		if err := rows.Scan(&pt.ID, &pt.Name, &pt.Description, &pt.RequiresReference, &pt.Active); err != nil {
			return nil, dbErr("scan payment type", err)
		}
		list = append(list, &pt)
	}
	return list, dbErr("list payment types", rows.Err())
}
