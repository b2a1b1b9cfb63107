package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// InvoiceRepository implementa repository.InvoiceRepository.
type InvoiceRepository struct{ c conn }

var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)

func (r *InvoiceRepository) Create(ctx context.Context, inv *entity.Invoice) error {
	return r.c.read(ctx, func(st *state) error {
		for _, other := range st.invoices {
			if other.Series == inv.Series && other.Correlative == inv.Correlative {
				return domain.Wrap(domain.ErrDuplicateNumber, "%s", inv.Number)
			}
		}
		if _, ok := st.invoices[inv.ID]; ok {
			return domain.Wrap(domain.ErrDuplicate, "factura %s", inv.ID)
		}
		st.invoices[inv.ID] = *inv
		return nil
	})
}

func (r *InvoiceRepository) CreateDetails(ctx context.Context, details []*entity.InvoiceDetail) error {
	return r.c.read(ctx, func(st *state) error {
		for _, d := range details {
			if _, ok := st.invoices[d.InvoiceID]; !ok {
				return domain.ErrInvoiceNotFound
			}
			st.invoiceDetails[d.InvoiceID] = append(st.invoiceDetails[d.InvoiceID], *d)
		}
		return nil
	})
}

func (r *InvoiceRepository) CreatePayments(ctx context.Context, payments []*entity.InvoicePayment) error {
	return r.c.read(ctx, func(st *state) error {
		for _, p := range payments {
			if _, ok := st.invoices[p.InvoiceID]; !ok {
				return domain.ErrInvoiceNotFound
			}
			st.payments[p.InvoiceID] = append(st.payments[p.InvoiceID], *p)
		}
		return nil
	})
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.c.read(ctx, func(st *state) error {
		if inv, ok := st.invoices[id]; ok {
			out = &inv
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepository) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *InvoiceRepository) GetDetails(ctx context.Context, invoiceID string) ([]*entity.InvoiceDetail, error) {
	var out []*entity.InvoiceDetail
	err := r.c.read(ctx, func(st *state) error {
		list := append([]entity.InvoiceDetail(nil), st.invoiceDetails[invoiceID]...)
		sort.Slice(list, func(i, j int) bool { return list[i].LineNumber < list[j].LineNumber })
		for _, d := range list {
			d := d
			out = append(out, &d)
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepository) GetPayments(ctx context.Context, invoiceID string) ([]*entity.InvoicePayment, error) {
	var out []*entity.InvoicePayment
	err := r.c.read(ctx, func(st *state) error {
		for _, p := range st.payments[invoiceID] {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, inv *entity.Invoice) error {
	return r.c.read(ctx, func(st *state) error {
		cur, ok := st.invoices[inv.ID]
		if !ok {
			return domain.ErrInvoiceNotFound
		}
		cur.Status = inv.Status
		cur.VoidReason = inv.VoidReason
		cur.VoidedBy = inv.VoidedBy
		cur.VoidedAt = inv.VoidedAt
		cur.UpdatedAt = inv.UpdatedAt
		st.invoices[inv.ID] = cur
		return nil
	})
}

func (r *InvoiceRepository) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	var (
		out   []*entity.Invoice
		total int
	)
	err := r.c.read(ctx, func(st *state) error {
		var all []entity.Invoice
		for _, inv := range st.invoices {
			if f.BranchID != "" && inv.BranchID != f.BranchID {
				continue
			}
			if f.CustomerID != "" && inv.CustomerID != f.CustomerID {
				continue
			}
			if f.Status != "" && inv.Status != f.Status {
				continue
			}
			if f.From != nil && inv.IssuedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && !inv.IssuedAt.Before(*f.To) {
				continue
			}
			all = append(all, inv)
		}
		sort.Slice(all, func(i, j int) bool {
			if !all[i].IssuedAt.Equal(all[j].IssuedAt) {
				return all[i].IssuedAt.After(all[j].IssuedAt)
			}
			return all[i].Number > all[j].Number
		})
		total = len(all)
		for _, inv := range page(all, f.Limit, f.Offset) {
			inv := inv
			out = append(out, &inv)
		}
		return nil
	})
	return out, total, err
}

func (r *InvoiceRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.c.read(ctx, func(st *state) error {
		for id, inv := range st.invoices {
			if inv.Status == entity.InvoiceStatusActive && inv.DueDate != nil && inv.DueDate.Before(now) {
				inv.Status = entity.InvoiceStatusExpired
				inv.UpdatedAt = now
				st.invoices[id] = inv
				n++
			}
		}
		return nil
	})
	return n, err
}

// SeriesRepository implementa repository.SeriesRepository.
type SeriesRepository struct{ c conn }

var _ repository.SeriesRepository = (*SeriesRepository)(nil)

func (r *SeriesRepository) Next(ctx context.Context, series, branchID string) (int64, error) {
	var next int64
	err := r.c.read(ctx, func(st *state) error {
		// el contador es por serie; la sucursal solo indica quién la creó
		st.series[series]++
		next = st.series[series]
		return nil
	})
	return next, err
}

// ReportRepository implementa repository.ReportRepository.
type ReportRepository struct{ c conn }

var _ repository.ReportRepository = (*ReportRepository)(nil)

func (r *ReportRepository) SalesSummary(ctx context.Context, branchID string, from, to time.Time) (*repository.SalesSummaryResult, error) {
	res := &repository.SalesSummaryResult{}
	err := r.c.read(ctx, func(st *state) error {
		tenders := map[string]*repository.TenderTotal{}
		for id, inv := range st.invoices {
			if branchID != "" && inv.BranchID != branchID {
				continue
			}
			if inv.IssuedAt.Before(from) || !inv.IssuedAt.Before(to) || inv.Status == entity.InvoiceStatusDraft {
				continue
			}
			if inv.Status == entity.InvoiceStatusVoided {
				res.VoidedCount++
				continue
			}
			res.InvoiceCount++
			res.GrossTotal = res.GrossTotal.Add(inv.Total)
			res.DiscountTotal = res.DiscountTotal.Add(inv.DiscountTotal)
			res.TaxTotal = res.TaxTotal.Add(inv.Tax)
			for _, p := range st.payments[id] {
				t, ok := tenders[p.PaymentTypeID]
				if !ok {
					t = &repository.TenderTotal{PaymentTypeID: p.PaymentTypeID, Amount: decimal.Zero}
					tenders[p.PaymentTypeID] = t
				}
				t.Count++
				t.Amount = t.Amount.Add(p.Amount)
			}
		}
		for _, t := range tenders {
			res.ByTender = append(res.ByTender, *t)
		}
		sort.Slice(res.ByTender, func(i, j int) bool { return res.ByTender[i].PaymentTypeID < res.ByTender[j].PaymentTypeID })
		return nil
	})
	return res, err
}
