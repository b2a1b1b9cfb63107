package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaintAttributesDTO atributos de pinturas y barnices.
type PaintAttributesDTO struct {
	DurabilityYears *int             `json:"durability_years,omitempty" validate:"omitempty,min=0,max=50"`
	CoverageM2      *decimal.Decimal `json:"coverage_m2,omitempty"`
	ColorID         string           `json:"color_id,omitempty"`
}

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Code            string              `json:"code" validate:"required,max=20"`
	Name            string              `json:"name" validate:"required,max=150"`
	Description     string              `json:"description,omitempty" validate:"max=1000"`
	CategoryID      string              `json:"category_id,omitempty"`
	UnitID          string              `json:"unit_id,omitempty"`
	Price           decimal.Decimal     `json:"price"`
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
	Stock           decimal.Decimal     `json:"stock"`
	MinStock        *decimal.Decimal    `json:"min_stock,omitempty"`
	Brand           string              `json:"brand,omitempty" validate:"max=100"`
	Paint           *PaintAttributesDTO `json:"paint,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no se modifican.
type UpdateProductRequest struct {
	Name            *string             `json:"name,omitempty" validate:"omitempty,max=150"`
	Description     *string             `json:"description,omitempty" validate:"omitempty,max=1000"`
	CategoryID      *string             `json:"category_id,omitempty"`
	UnitID          *string             `json:"unit_id,omitempty"`
	Price           *decimal.Decimal    `json:"price,omitempty"`
	DiscountPercent *decimal.Decimal    `json:"discount_percent,omitempty"`
	MinStock        *decimal.Decimal    `json:"min_stock,omitempty"`
	Brand           *string             `json:"brand,omitempty" validate:"omitempty,max=100"`
	Paint           *PaintAttributesDTO `json:"paint,omitempty"`
	Status          *string             `json:"status,omitempty" validate:"omitempty,oneof=Activo Inactivo Descontinuado"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	PageRequest
	Search     string `query:"search"`
	CategoryID string `query:"category_id"`
	Status     string `query:"status"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID              string              `json:"id"`
	Code            string              `json:"code"`
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	CategoryID      string              `json:"category_id,omitempty"`
	UnitID          string              `json:"unit_id,omitempty"`
	Price           decimal.Decimal     `json:"price"`
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
	Stock           decimal.Decimal     `json:"stock"`
	MinStock        decimal.Decimal     `json:"min_stock"`
	Brand           string              `json:"brand,omitempty"`
	Paint           *PaintAttributesDTO `json:"paint,omitempty"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
