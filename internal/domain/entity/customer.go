package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cliente.
const (
	CustomerStatusActive   = "Activo"
	CustomerStatusInactive = "Inactivo"
	CustomerStatusBlocked  = "Bloqueado"
)

// Tipos de cliente.
const (
	CustomerTypeIndividual = "Individual"
	CustomerTypeCompany    = "Empresa"
)

// Customer representa un cliente registrado (email obligatorio para promociones).
type Customer struct {
	ID                string
	Code              string
	Name              string
	Email             string
	Phone             string
	Address           string
	NIT               string
	Type              string
	AcceptsPromotions bool
	TotalPurchases    decimal.Decimal // acumulado de facturas no anuladas
	LastPurchaseAt    *time.Time
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CanBuy indica si se le puede facturar o cotizar.
func (c *Customer) CanBuy() bool {
	return c.Status == CustomerStatusActive
}
