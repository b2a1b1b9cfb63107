package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// CustomerRepository implementa repository.CustomerRepository.
type CustomerRepository struct{ c conn }

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

func (r *CustomerRepository) Create(ctx context.Context, cu *entity.Customer) error {
	return r.c.read(ctx, func(st *state) error {
		for _, other := range st.customers {
			if other.ID == cu.ID || strings.EqualFold(other.Email, cu.Email) ||
				(cu.Code != "" && other.Code == cu.Code) {
				return domain.Wrap(domain.ErrDuplicate, "cliente %s", cu.Email)
			}
		}
		st.customers[cu.ID] = *cu
		return nil
	})
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.c.read(ctx, func(st *state) error {
		if cu, ok := st.customers[id]; ok {
			out = &cu
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepository) List(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.c.read(ctx, func(st *state) error {
		q := strings.ToLower(search)
		var all []entity.Customer
		for _, cu := range st.customers {
			if q == "" || strings.Contains(strings.ToLower(cu.Name), q) ||
				strings.Contains(strings.ToLower(cu.Email), q) ||
				strings.Contains(strings.ToLower(cu.Code), q) || strings.Contains(cu.NIT, q) {
				all = append(all, cu)
			}
		}
		sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
		for _, cu := range page(all, limit, offset) {
			cu := cu
			out = append(out, &cu)
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepository) Update(ctx context.Context, cu *entity.Customer) error {
	return r.c.read(ctx, func(st *state) error {
		cur, ok := st.customers[cu.ID]
		if !ok {
			return domain.ErrCustomerNotFound
		}
		for id, other := range st.customers {
			if id != cu.ID && strings.EqualFold(other.Email, cu.Email) {
				return domain.Wrap(domain.ErrDuplicate, "email %s", cu.Email)
			}
		}
		next := *cu
		// el acumulado solo cambia con AddPurchase
		next.TotalPurchases = cur.TotalPurchases
		next.LastPurchaseAt = cur.LastPurchaseAt
		st.customers[cu.ID] = next
		return nil
	})
}

func (r *CustomerRepository) AddPurchase(ctx context.Context, id string, delta decimal.Decimal, at *time.Time) error {
	return r.c.read(ctx, func(st *state) error {
		cu, ok := st.customers[id]
		if !ok {
			return domain.ErrCustomerNotFound
		}
		cu.TotalPurchases = cu.TotalPurchases.Add(delta)
		if at != nil {
			t := *at
			cu.LastPurchaseAt = &t
		}
		st.customers[id] = cu
		return nil
	})
}

// UserRepository implementa repository.UserRepository.
type UserRepository struct{ c conn }

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	return r.c.read(ctx, func(st *state) error {
		for _, other := range st.users {
			if strings.EqualFold(other.Username, u.Username) || strings.EqualFold(other.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.c.read(ctx, func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*entity.User, error) {
	var out *entity.User
	err := r.c.read(ctx, func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Username, login) || strings.EqualFold(u.Email, login) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

// BranchRepository implementa repository.BranchRepository.
type BranchRepository struct{ c conn }

var _ repository.BranchRepository = (*BranchRepository)(nil)

func (r *BranchRepository) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	var out *entity.Branch
	err := r.c.read(ctx, func(st *state) error {
		if b, ok := st.branches[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BranchRepository) List(ctx context.Context) ([]*entity.Branch, error) {
	var out []*entity.Branch
	err := r.c.read(ctx, func(st *state) error {
		all := make([]entity.Branch, 0, len(st.branches))
		for _, b := range st.branches {
			all = append(all, b)
		}
		sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
		for _, b := range all {
			b := b
			out = append(out, &b)
		}
		return nil
	})
	return out, err
}

// PaymentTypeRepository implementa repository.PaymentTypeRepository.
type PaymentTypeRepository struct{ c conn }

var _ repository.PaymentTypeRepository = (*PaymentTypeRepository)(nil)

func (r *PaymentTypeRepository) List(ctx context.Context) ([]*entity.PaymentType, error) {
	var out []*entity.PaymentType
	err := r.c.read(ctx, func(st *state) error {
		for _, pt := range st.paymentTypes {
			pt := pt
			out = append(out, &pt)
		}
		return nil
	})
	return out, err
}
