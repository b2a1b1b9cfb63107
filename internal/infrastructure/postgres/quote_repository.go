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

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

const quoteColumns = `id, number, customer_id, employee_id, branch_id, issued_at, validity_days, valid_until,
	subtotal, discount_total, tax, total, notes, payment_terms, delivery_time, status, invoice_id,
	created_at, updated_at`

// QuoteRepo implementación de QuoteRepository (usable con pool o tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador.
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

func scanQuote(row rowScanner) (*entity.Quote, error) {
	var (
		qt        entity.Quote
		invoiceID *string
	)
	err := row.Scan(&qt.ID, &qt.Number, &qt.CustomerID, &qt.EmployeeID, &qt.BranchID, &qt.IssuedAt,
		&qt.ValidityDays, &qt.ValidUntil, &qt.Subtotal, &qt.DiscountTotal, &qt.Tax, &qt.Total, &qt.Notes,
		&qt.PaymentTerms, &qt.DeliveryTime, &qt.Status, &invoiceID, &qt.CreatedAt, &qt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	qt.InvoiceID = strOrEmpty(invoiceID)
	return &qt, nil
}

// Create inserta la cabecera; número repetido devuelve ErrDuplicateNumber.
func (r *QuoteRepo) Create(ctx context.Context, qt *entity.Quote) error {
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		qt.ID, qt.Number, qt.CustomerID, qt.EmployeeID, qt.BranchID, qt.IssuedAt, qt.ValidityDays,
		qt.ValidUntil, qt.Subtotal, qt.DiscountTotal, qt.Tax, qt.Total, qt.Notes, qt.PaymentTerms,
		qt.DeliveryTime, qt.Status, nullIfEmpty(qt.InvoiceID), qt.CreatedAt, qt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Wrap(domain.ErrDuplicateNumber, "%s", qt.Number)
		}
		return dbErr("insert quote", err)
	}
	return nil
}

// ReplaceDetails borra las líneas actuales e inserta las nuevas en un mismo lote.
func (r *QuoteRepo) ReplaceDetails(ctx context.Context, quoteID string, details []*entity.QuoteDetail) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM quote_details WHERE quote_id = $1`, quoteID)
	query := `
		INSERT INTO quote_details (id, quote_id, product_id, line_number, quantity, unit_price,
			discount_percent, discount_amount, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, d := range details {
		batch.Queue(query, d.ID, quoteID, d.ProductID, d.LineNumber, d.Quantity, d.UnitPrice,
			d.DiscountPercent, d.DiscountAmount, d.Subtotal)
	}
	return sendBatch(ctx, r.q, batch, len(details)+1, "replace quote details")
}

// Update persiste totales, estado, vigencia y factura vinculada.
func (r *QuoteRepo) Update(ctx context.Context, qt *entity.Quote) error {
	query := `
		UPDATE quotes SET validity_days = $2, valid_until = $3, subtotal = $4, discount_total = $5, tax = $6,
			total = $7, notes = $8, payment_terms = $9, delivery_time = $10, status = $11, invoice_id = $12,
			updated_at = $13
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		qt.ID, qt.ValidityDays, qt.ValidUntil, qt.Subtotal, qt.DiscountTotal, qt.Tax, qt.Total, qt.Notes,
		qt.PaymentTerms, qt.DeliveryTime, qt.Status, nullIfEmpty(qt.InvoiceID), qt.UpdatedAt,
	)
	if err != nil {
		return dbErr("update quote", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}

// GetByID obtiene una cotización.
func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	return r.getOne(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila: una segunda conversión concurrente espera y luego ve Convertida.
func (r *QuoteRepo) GetForUpdate(ctx context.Context, id string) (*entity.Quote, error) {
	return r.getOne(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1 FOR UPDATE`, id)
}

func (r *QuoteRepo) getOne(ctx context.Context, query, id string) (*entity.Quote, error) {
	qt, err := scanQuote(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get quote", err)
	}
	return qt, nil
}

// GetDetails líneas de la cotización en orden.
func (r *QuoteRepo) GetDetails(ctx context.Context, quoteID string) ([]*entity.QuoteDetail, error) {
	query := `
		SELECT id, quote_id, product_id, line_number, quantity, unit_price, discount_percent, discount_amount, subtotal
		FROM quote_details WHERE quote_id = $1 ORDER BY line_number`
	rows, err := r.q.Query(ctx, query, quoteID)
	if err != nil {
		return nil, dbErr("get quote details", err)
	}
	defer rows.Close()
	var list []*entity.QuoteDetail
	for rows.Next() {
		var d entity.QuoteDetail
		if err := rows.Scan(&d.ID, &d.QuoteID, &d.ProductID, &d.LineNumber, &d.Quantity, &d.UnitPrice,
			&d.DiscountPercent, &d.DiscountAmount, &d.Subtotal); err != nil {
			return nil, dbErr("scan quote detail", err)
		}
		list = append(list, &d)
	}
	return list, dbErr("get quote details", rows.Err())
}

// List cotizaciones filtradas, más recientes primero.
func (r *QuoteRepo) List(ctx context.Context, f repository.QuoteFilter) ([]*entity.Quote, int, error) {
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
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM quotes`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, dbErr("count quotes", err)
	}
	query := `SELECT ` + quoteColumns + ` FROM quotes` + w.sql() + ` ORDER BY issued_at DESC, id` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, dbErr("list quotes", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		qt, err := scanQuote(rows)
		if err != nil {
			return nil, 0, dbErr("scan quote", err)
		}
		list = append(list, qt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dbErr("list quotes", err)
	}
	return list, total, nil
}

// ExpireOverdue vence las cotizaciones abiertas (Borrador, Enviada, Aceptada) cuya vigencia terminó.
func (r *QuoteRepo) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE quotes SET status = $1, updated_at = $2 WHERE status = ANY($3) AND valid_until < $2`,
		entity.QuoteStatusExpired, now,
		[]string{entity.QuoteStatusDraft, entity.QuoteStatusSent, entity.QuoteStatusAccepted})
	if err != nil {
		return 0, dbErr("expire quotes", err)
	}
	return cmd.RowsAffected(), nil
}
