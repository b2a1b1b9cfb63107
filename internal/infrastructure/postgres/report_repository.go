package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reportes. Con el pool, los totales y el desglose por medio de pago
// corren en conexiones distintas a la vez.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesSummary excluye borradores; las anuladas solo se cuentan aparte.
// Si una de las dos consultas falla, la otra se cancela.
func (r *ReportRepo) SalesSummary(ctx context.Context, branchID string, from, to time.Time) (*repository.SalesSummaryResult, error) {
	var res repository.SalesSummaryResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := r.q.QueryRow(gctx, `
			SELECT
				count(*) FILTER (WHERE status <> $4),
				count(*) FILTER (WHERE status = $4),
				COALESCE(sum(total) FILTER (WHERE status <> $4), 0),
				COALESCE(sum(discount_total) FILTER (WHERE status <> $4), 0),
				COALESCE(sum(tax) FILTER (WHERE status <> $4), 0)
			FROM invoices
			WHERE issued_at >= $1 AND issued_at < $2 AND status <> $3
				AND ($5 = '' OR branch_id = $5)`,
			from, to, entity.InvoiceStatusDraft, entity.InvoiceStatusVoided, branchID,
		).Scan(&res.InvoiceCount, &res.VoidedCount, &res.GrossTotal, &res.DiscountTotal, &res.TaxTotal)
		return dbErr("sales summary", err)
	})

	var tenders []repository.TenderTotal
	g.Go(func() error {
		rows, err := r.q.Query(gctx, `
			SELECT p.payment_type_id, count(*), COALESCE(sum(p.amount), 0)
			FROM invoice_payments p
			JOIN invoices i ON i.id = p.invoice_id
			WHERE i.issued_at >= $1 AND i.issued_at < $2 AND i.status NOT IN ($3, $4)
				AND ($5 = '' OR i.branch_id = $5)
			GROUP BY p.payment_type_id
			ORDER BY p.payment_type_id`,
			from, to, entity.InvoiceStatusDraft, entity.InvoiceStatusVoided, branchID)
		if err != nil {
			return dbErr("sales by tender", err)
		}
		tenders, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.TenderTotal, error) {
			var (
				t      repository.TenderTotal
				amount decimal.Decimal
			)
			err := row.Scan(&t.PaymentTypeID, &t.Count, &amount)
			t.Amount = amount
			return t, err
		})
		return dbErr("sales by tender", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	res.ByTender = tenders
	return &res, nil
}
