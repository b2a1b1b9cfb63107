package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, description, category_id, unit_id, price, discount_percent, stock, min_stock,
	brand, paint_durability_years, paint_coverage_m2, paint_color_id, status, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p        entity.Product
		years    *int
		coverage *decimal.Decimal
		color    string
	)
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.CategoryID, &p.UnitID, &p.Price,
		&p.DiscountPercent, &p.Stock, &p.MinStock, &p.Brand, &years, &coverage, &color,
		&p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if years != nil || coverage != nil || color != "" {
		p.Paint = &entity.PaintAttributes{DurabilityYears: years, CoverageM2: coverage, ColorID: color}
	}
	return &p, nil
}

func paintArgs(p *entity.Product) (years *int, coverage *decimal.Decimal, color string) {
	if p.Paint == nil {
		return nil, nil, ""
	}
	return p.Paint.DurabilityYears, p.Paint.CoverageM2, p.Paint.ColorID
}

// Create persiste un nuevo producto con su stock inicial (el use case lo deja en 0 y registra el movimiento).
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	years, coverage, color := paintArgs(p)
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Name, p.Description, p.CategoryID, p.UnitID, p.Price, p.DiscountPercent,
		p.Stock, p.MinStock, p.Brand, years, coverage, color, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Wrap(domain.ErrDuplicate, "código %s", p.Code)
		}
		return dbErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get product", err)
	}
	return p, nil
}

// GetByCode obtiene un producto por código (sin distinguir mayúsculas).
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE upper(code) = upper($1)`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get product by code", err)
	}
	return p, nil
}

// GetByIDs carga varios productos en una sola consulta.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	return r.byIDs(ctx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, ids, "get products")
}

// LockByIDs bloquea las filas en orden de ID: dos ventas con los mismos productos no se interbloquean.
func (r *ProductRepo) LockByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	return r.byIDs(ctx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids, "lock products")
}

func (r *ProductRepo) byIDs(ctx context.Context, query string, ids []string, op string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, dbErr(op, err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, dbErr(op, err)
		}
		out[p.ID] = p
	}
	return out, dbErr(op, rows.Err())
}

// Update actualiza un producto existente. No permite modificar Stock ni código (se manejan aparte).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	years, coverage, color := paintArgs(p)
	query := `
		UPDATE products SET name = $2, description = $3, category_id = $4, unit_id = $5, price = $6,
			discount_percent = $7, min_stock = $8, brand = $9, paint_durability_years = $10,
			paint_coverage_m2 = $11, paint_color_id = $12, status = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.CategoryID, p.UnitID, p.Price, p.DiscountPercent, p.MinStock,
		p.Brand, years, coverage, color, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return dbErr("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpdateStock fija la existencia (usado por el motor de inventario, siempre con la fila bloqueada).
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return dbErr("update product stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List lista productos con filtros y paginación, ordenados por código.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var w where
	if f.Search != "" {
		w.add("(code ILIKE ? OR name ILIKE ?)", "%"+f.Search+"%")
	}
	if f.CategoryID != "" {
		w.add("category_id = ?", f.CategoryID)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	query := `SELECT ` + productColumns + ` FROM products` + w.sql() + ` ORDER BY code` + w.page(f.Limit, f.Offset)
	return r.list(ctx, query, w.args, "list products")
}

// ListLowStock productos activos en o bajo el mínimo, mayor déficit primero.
func (r *ProductRepo) ListLowStock(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE status = $1 AND stock <= min_stock
		ORDER BY (min_stock - stock) DESC, code
		LIMIT $2`
	return r.list(ctx, query, []any{entity.ProductStatusActive, limit}, "list low stock")
}

func (r *ProductRepo) list(ctx context.Context, query string, args []any, op string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, dbErr(op, err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, dbErr(op, err)
		}
		list = append(list, p)
	}
	return list, dbErr(op, rows.Err())
}
