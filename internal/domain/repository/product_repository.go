package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search     string // código o nombre (ILIKE)
	CategoryID string
	Status     string
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetByCode devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetByIDs devuelve los productos encontrados indexados por ID (los faltantes no aparecen).
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	// LockByIDs igual que GetByIDs pero bloquea las filas (SELECT FOR UPDATE) en orden de ID.
	// Solo tiene sentido dentro de una transacción.
	LockByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	// Update no modifica Stock: el stock solo cambia vía UpdateStock con un movimiento asociado.
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// ListLowStock productos activos con stock <= stock mínimo, de mayor a menor déficit.
	ListLowStock(ctx context.Context, limit int) ([]*entity.Product, error)
}
