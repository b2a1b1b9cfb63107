package entity

import "time"

// Branch representa una sucursal. InvoiceSeries es la serie por defecto de sus facturas.
type Branch struct {
	ID            string
	Code          string
	Name          string
	Address       string
	City          string
	InvoiceSeries string
	Status        string // Activa, Inactiva, Mantenimiento
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
