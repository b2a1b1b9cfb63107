package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

// InvoiceFilter filtros del listado de facturas. Campos vacíos no filtran.
type InvoiceFilter struct {
	BranchID   string
	CustomerID string
	Status     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// InvoiceRepository define el puerto de persistencia para Invoice, sus detalles y pagos.
type InvoiceRepository interface {
	// Create inserta la cabecera. Una colisión de (serie, correlativo) devuelve ErrDuplicateNumber.
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateDetails(ctx context.Context, details []*entity.InvoiceDetail) error
	CreatePayments(ctx context.Context, payments []*entity.InvoicePayment) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetForUpdate bloquea la fila de la factura hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	GetDetails(ctx context.Context, invoiceID string) ([]*entity.InvoiceDetail, error)
	GetPayments(ctx context.Context, invoiceID string) ([]*entity.InvoicePayment, error)
	// UpdateStatus persiste estado y campos de anulación.
	UpdateStatus(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, int, error)
	// ExpireOverdue pasa a Vencida las facturas Activas con vencimiento anterior a now.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// SeriesRepository asigna correlativos por serie.
type SeriesRepository interface {
	// Next incrementa y devuelve el correlativo de la serie, creándola si no existe.
	// El contador es único por serie; branchID queda como sucursal dueña al crearla.
	// Dentro de una transacción la fila queda bloqueada hasta Commit/Rollback.
	Next(ctx context.Context, series, branchID string) (int64, error)
}

// PaymentTypeRepository catálogo de tipos de pago.
type PaymentTypeRepository interface {
	List(ctx context.Context) ([]*entity.PaymentType, error)
}
