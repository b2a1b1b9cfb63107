// Package analytics contiene los reportes de negocio (solo lectura).
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// maxReportDays limita el rango de un reporte.
const maxReportDays = 366

// SalesUseCase resumen de ventas por sucursal y rango de fechas.
//
// Fuente de datos: ReportRepository (consultas read-only).
type SalesUseCase struct {
	reportRepo repository.ReportRepository
	loc        *time.Location
}

// NewSalesUseCase construye el caso de uso. loc es la zona horaria de las tiendas (nil = UTC).
func NewSalesUseCase(reportRepo repository.ReportRepository, loc *time.Location) *SalesUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &SalesUseCase{reportRepo: reportRepo, loc: loc}
}

// SalesReport resume las facturas emitidas entre From y To (ambos inclusive).
func (uc *SalesUseCase) SalesReport(ctx context.Context, p access.Principal, in dto.SalesReportRequest) (*dto.SalesReportResponse, error) {
	if err := access.Authorize(p, access.ReportRead); err != nil {
		return nil, err
	}

	// ── Rango de fechas ────────────────────────────────────────────────────────
	from, err := time.ParseInLocation(dateLayout, in.From, uc.loc)
	if err != nil {
		return nil, domain.Wrap(domain.ErrInvalidInput, "from: formato esperado AAAA-MM-DD")
	}
	to, err := time.ParseInLocation(dateLayout, in.To, uc.loc)
	if err != nil {
		return nil, domain.Wrap(domain.ErrInvalidInput, "to: formato esperado AAAA-MM-DD")
	}
	if to.Before(from) {
		return nil, domain.Wrap(domain.ErrInvalidInput, "el rango de fechas está invertido")
	}
	end := to.AddDate(0, 0, 1)
	if end.Sub(from) > maxReportDays*24*time.Hour {
		return nil, domain.Wrap(domain.ErrInvalidInput, "el rango no puede superar %d días", maxReportDays)
	}

	sum, err := uc.reportRepo.SalesSummary(ctx, in.BranchID, from, end)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	avg := decimal.Zero
	if sum.InvoiceCount > 0 {
		avg = sum.GrossTotal.Div(decimal.NewFromInt(int64(sum.InvoiceCount))).Round(2)
	}
	tenders := make([]dto.TenderTotalDTO, 0, len(sum.ByTender))
	for _, t := range sum.ByTender {
		tenders = append(tenders, dto.TenderTotalDTO{
			PaymentTypeID: t.PaymentTypeID,
			Count:         t.Count,
			Amount:        t.Amount.Round(2),
		})
	}
	return &dto.SalesReportResponse{
		BranchID:      in.BranchID,
		From:          in.From,
		To:            in.To,
		InvoiceCount:  sum.InvoiceCount,
		VoidedCount:   sum.VoidedCount,
		GrossTotal:    sum.GrossTotal.Round(2),
		DiscountTotal: sum.DiscountTotal.Round(2),
		TaxTotal:      sum.TaxTotal.Round(2),
		AverageTicket: avg,
		ByTender:      tenders,
	}, nil
}
