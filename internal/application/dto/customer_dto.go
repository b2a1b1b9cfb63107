package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Code              string `json:"code" validate:"required,max=20"`
	Name              string `json:"name" validate:"required,max=150"`
	Email             string `json:"email" validate:"required,email,max=100"`
	Phone             string `json:"phone,omitempty" validate:"max=20"`
	Address           string `json:"address,omitempty" validate:"max=500"`
	NIT               string `json:"nit,omitempty" validate:"max=20"`
	Type              string `json:"type,omitempty" validate:"omitempty,oneof=Individual Empresa"`
	AcceptsPromotions bool   `json:"accepts_promotions"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id. Campos nil no se modifican.
type UpdateCustomerRequest struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,max=150"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Phone             *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address           *string `json:"address,omitempty" validate:"omitempty,max=500"`
	NIT               *string `json:"nit,omitempty" validate:"omitempty,max=20"`
	Type              *string `json:"type,omitempty" validate:"omitempty,oneof=Individual Empresa"`
	AcceptsPromotions *bool   `json:"accepts_promotions,omitempty"`
	Status            *string `json:"status,omitempty" validate:"omitempty,oneof=Activo Inactivo Bloqueado"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID                string          `json:"id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone,omitempty"`
	Address           string          `json:"address,omitempty"`
	NIT               string          `json:"nit,omitempty"`
	Type              string          `json:"type"`
	AcceptsPromotions bool            `json:"accepts_promotions"`
	TotalPurchases    decimal.Decimal `json:"total_purchases"`
	LastPurchaseAt    *time.Time      `json:"last_purchase_at,omitempty"`
	Status            string          `json:"status"`
}
