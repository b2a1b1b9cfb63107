package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// AddPurchase suma delta (negativo al anular) al acumulado de compras.
	// at, si no es nil, actualiza la fecha de última compra.
	AddPurchase(ctx context.Context, id string, delta decimal.Decimal, at *time.Time) error
}
