package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// QuoteRepository implementa repository.QuoteRepository.
type QuoteRepository struct{ c conn }

var _ repository.QuoteRepository = (*QuoteRepository)(nil)

func (r *QuoteRepository) Create(ctx context.Context, q *entity.Quote) error {
	return r.c.read(ctx, func(st *state) error {
		for _, other := range st.quotes {
			if other.ID == q.ID || other.Number == q.Number {
				return domain.Wrap(domain.ErrDuplicateNumber, "%s", q.Number)
			}
		}
		st.quotes[q.ID] = *q
		return nil
	})
}

func (r *QuoteRepository) ReplaceDetails(ctx context.Context, quoteID string, details []*entity.QuoteDetail) error {
	return r.c.read(ctx, func(st *state) error {
		if _, ok := st.quotes[quoteID]; !ok {
			return domain.ErrQuoteNotFound
		}
		list := make([]entity.QuoteDetail, 0, len(details))
		for _, d := range details {
			list = append(list, *d)
		}
		st.quoteDetails[quoteID] = list
		return nil
	})
}

func (r *QuoteRepository) Update(ctx context.Context, q *entity.Quote) error {
	return r.c.read(ctx, func(st *state) error {
		if _, ok := st.quotes[q.ID]; !ok {
			return domain.ErrQuoteNotFound
		}
		st.quotes[q.ID] = *q
		return nil
	})
}

func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	var out *entity.Quote
	err := r.c.read(ctx, func(st *state) error {
		if q, ok := st.quotes[id]; ok {
			out = &q
		}
		return nil
	})
	return out, err
}

func (r *QuoteRepository) GetForUpdate(ctx context.Context, id string) (*entity.Quote, error) {
	return r.GetByID(ctx, id)
}

func (r *QuoteRepository) GetDetails(ctx context.Context, quoteID string) ([]*entity.QuoteDetail, error) {
	var out []*entity.QuoteDetail
	err := r.c.read(ctx, func(st *state) error {
		list := append([]entity.QuoteDetail(nil), st.quoteDetails[quoteID]...)
		sort.Slice(list, func(i, j int) bool { return list[i].LineNumber < list[j].LineNumber })
		for _, d := range list {
			d := d
			out = append(out, &d)
		}
		return nil
	})
	return out, err
}

func (r *QuoteRepository) List(ctx context.Context, f repository.QuoteFilter) ([]*entity.Quote, int, error) {
	var (
		out   []*entity.Quote
		total int
	)
	err := r.c.read(ctx, func(st *state) error {
		var all []entity.Quote
		for _, q := range st.quotes {
			if f.BranchID != "" && q.BranchID != f.BranchID {
				continue
			}
			if f.CustomerID != "" && q.CustomerID != f.CustomerID {
				continue
			}
			if f.Status != "" && q.Status != f.Status {
				continue
			}
			all = append(all, q)
		}
		sort.Slice(all, func(i, j int) bool {
			if !all[i].IssuedAt.Equal(all[j].IssuedAt) {
				return all[i].IssuedAt.After(all[j].IssuedAt)
			}
			return all[i].Number > all[j].Number
		})
		total = len(all)
		for _, q := range page(all, f.Limit, f.Offset) {
			q := q
			out = append(out, &q)
		}
		return nil
	})
	return out, total, err
}

func (r *QuoteRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.c.read(ctx, func(st *state) error {
		for id, q := range st.quotes {
			switch q.Status {
			case entity.QuoteStatusDraft, entity.QuoteStatusSent, entity.QuoteStatusAccepted:
			default:
				continue
			}
			if q.IsExpiredAt(now) {
				q.Status = entity.QuoteStatusExpired
				q.UpdatedAt = now
				st.quotes[id] = q
				n++
			}
		}
		return nil
	})
	return n, err
}
