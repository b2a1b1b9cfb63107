package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto. Un producto nunca se borra físicamente: "eliminar" lo deja en Descontinuado.
const (
	ProductStatusActive       = "Activo"
	ProductStatusInactive     = "Inactivo"
	ProductStatusDiscontinued = "Descontinuado"
)

// DefaultMinStock es el stock mínimo cuando el alta no indica uno.
const DefaultMinStock = 10

// Product representa un artículo del catálogo de la tienda.
// Stock se modifica únicamente vía movimientos (ventas, anulaciones, ajustes).
type Product struct {
	ID              string
	Code            string // código único
	Name            string
	Description     string
	CategoryID      string
	UnitID          string
	Price           decimal.Decimal // precio de venta
	DiscountPercent decimal.Decimal // 0..100
	Stock           decimal.Decimal // existencia actual, nunca negativa
	MinStock        decimal.Decimal
	Brand           string
	Paint           *PaintAttributes // solo pinturas y barnices
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PaintAttributes campos propios de pinturas y barnices.
type PaintAttributes struct {
	DurabilityYears *int
	CoverageM2      *decimal.Decimal
	ColorID         string
}

// IsActive indica si el producto puede venderse o cotizarse.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
