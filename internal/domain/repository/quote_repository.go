package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

// QuoteFilter filtros del listado de cotizaciones.
type QuoteFilter struct {
	BranchID   string
	CustomerID string
	Status     string
	Limit      int
	Offset     int
}

// QuoteRepository define el puerto de persistencia para Quote y sus líneas.
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	// ReplaceDetails borra las líneas actuales e inserta las nuevas.
	ReplaceDetails(ctx context.Context, quoteID string, details []*entity.QuoteDetail) error
	// Update persiste totales, estado, vigencia y factura vinculada.
	Update(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Quote, error)
	GetDetails(ctx context.Context, quoteID string) ([]*entity.QuoteDetail, error)
	List(ctx context.Context, filter QuoteFilter) ([]*entity.Quote, int, error)
	// ExpireOverdue pasa a Vencida las cotizaciones no convertidas con vigencia anterior a now.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}
