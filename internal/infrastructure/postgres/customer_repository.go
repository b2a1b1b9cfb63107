package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, code, name, email, phone, address, nit, type, accepts_promotions,
	total_purchases, last_purchase_at, status, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row rowScanner) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Email, &c.Phone, &c.Address, &c.NIT, &c.Type,
		&c.AcceptsPromotions, &c.TotalPurchases, &c.LastPurchaseAt, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente. Código o email repetido devuelve ErrDuplicate.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Code, c.Name, c.Email, c.Phone, c.Address, c.NIT, c.Type, c.AcceptsPromotions,
		c.TotalPurchases, c.LastPurchaseAt, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Wrap(domain.ErrDuplicate, "cliente %s / %s", c.Code, c.Email)
		}
		return dbErr("insert customer", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get customer", err)
	}
	return c, nil
}

// List busca por nombre, email, código o NIT.
func (r *CustomerRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, error) {
	var w where
	if search != "" {
		w.add("(name ILIKE ? OR email ILIKE ? OR code ILIKE ? OR nit ILIKE ?)", "%"+search+"%")
	}
	query := `SELECT ` + customerColumns + ` FROM customers` + w.sql() + ` ORDER BY name, id` + w.page(limit, offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, dbErr("list customers", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, dbErr("scan customer", err)
		}
		list = append(list, c)
	}
	return list, dbErr("list customers", rows.Err())
}

// Update actualiza datos de contacto y estado; el acumulado de compras no se toca.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, email = $3, phone = $4, address = $5, nit = $6, type = $7,
			accepts_promotions = $8, status = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.NIT, c.Type, c.AcceptsPromotions, c.Status, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Wrap(domain.ErrDuplicate, "email %s", c.Email)
		}
		return dbErr("update customer", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// AddPurchase suma delta al acumulado en la misma sentencia (sin leer-modificar-escribir).
func (r *CustomerRepo) AddPurchase(ctx context.Context, id string, delta decimal.Decimal, at *time.Time) error {
	query := `
		UPDATE customers SET total_purchases = total_purchases + $2,
			last_purchase_at = COALESCE($3, last_purchase_at), updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, delta, at)
	if err != nil {
		return dbErr("update customer purchases", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
