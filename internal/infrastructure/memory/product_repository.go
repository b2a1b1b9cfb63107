package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// ProductRepository implementa repository.ProductRepository.
type ProductRepository struct{ c conn }

var _ repository.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.c.read(ctx, func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.Wrap(domain.ErrDuplicate, "producto %s", p.ID)
		}
		for _, other := range st.products {
			if strings.EqualFold(other.Code, p.Code) {
				return domain.Wrap(domain.ErrDuplicate, "código %s", p.Code)
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.c.read(ctx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.c.read(ctx, func(st *state) error {
		for _, p := range st.products {
			if strings.EqualFold(p.Code, code) {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	err := r.c.read(ctx, func(st *state) error {
		for _, id := range ids {
			if p, ok := st.products[id]; ok {
				out[id] = &p
			}
		}
		return nil
	})
	return out, err
}

// LockByIDs en memoria equivale a GetByIDs: el mutex de la transacción ya excluye a los demás.
func (r *ProductRepository) LockByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	return r.GetByIDs(ctx, ids)
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	return r.c.read(ctx, func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrProductNotFound
		}
		next := *p
		next.Stock = cur.Stock
		st.products[p.ID] = next
		return nil
	})
}

func (r *ProductRepository) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	return r.c.read(ctx, func(st *state) error {
		cur, ok := st.products[id]
		if !ok {
			return domain.ErrProductNotFound
		}
		if stock.IsNegative() {
			return domain.Wrap(domain.ErrInsufficientStock, "stock negativo para %s", cur.Code)
		}
		cur.Stock = stock
		st.products[id] = cur
		return nil
	})
}

func (r *ProductRepository) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.c.read(ctx, func(st *state) error {
		search := strings.ToLower(f.Search)
		var all []entity.Product
		for _, p := range st.products {
			if f.CategoryID != "" && p.CategoryID != f.CategoryID {
				continue
			}
			if f.Status != "" && p.Status != f.Status {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(p.Code), search) &&
				!strings.Contains(strings.ToLower(p.Name), search) {
				continue
			}
			all = append(all, p)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
		for _, p := range page(all, f.Limit, f.Offset) {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) ListLowStock(ctx context.Context, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.c.read(ctx, func(st *state) error {
		var low []entity.Product
		for _, p := range st.products {
			if p.IsActive() && p.Stock.LessThanOrEqual(p.MinStock) {
				low = append(low, p)
			}
		}
		sort.Slice(low, func(i, j int) bool {
			di := low[i].MinStock.Sub(low[i].Stock)
			dj := low[j].MinStock.Sub(low[j].Stock)
			if !di.Equal(dj) {
				return di.GreaterThan(dj)
			}
			return low[i].Code < low[j].Code
		})
		for _, p := range page(low, limit, 0) {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

// StockMovementRepository implementa repository.StockMovementRepository.
type StockMovementRepository struct{ c conn }

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

func (r *StockMovementRepository) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.c.read(ctx, func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *StockMovementRepository) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.c.read(ctx, func(st *state) error {
		var list []entity.StockMovement
		// más recientes primero; a igual fecha, el último insertado primero
		for i := len(st.movements) - 1; i >= 0; i-- {
			if st.movements[i].ProductID == productID {
				list = append(list, st.movements[i])
			}
		}
		sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
		for _, m := range page(list, limit, offset) {
			m := m
			out = append(out, &m)
		}
		return nil
	})
	return out, err
}
