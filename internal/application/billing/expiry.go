package billing

import (
	"context"
	"time"

	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

// ExpiryResult cantidades marcadas como vencidas en un barrido.
type ExpiryResult struct {
	Invoices int64
	Quotes   int64
}

// ExpiryUseCase barrido de vencimientos: facturas Activas con vencimiento pasado y cotizaciones
// no convertidas fuera de vigencia pasan a Vencida.
type ExpiryUseCase struct {
	invoices *InvoiceUseCase
	quotes   *QuoteUseCase
	log      *logger.Logger
	now      func() time.Time
}

// NewExpiryUseCase construye el barrido.
func NewExpiryUseCase(invoices *InvoiceUseCase, quotes *QuoteUseCase, log *logger.Logger) *ExpiryUseCase {
	return &ExpiryUseCase{invoices: invoices, quotes: quotes, log: log.Named("expiry"), now: time.Now}
}

// Run ejecuta un barrido. Un error en facturas no impide intentar las cotizaciones.
func (uc *ExpiryUseCase) Run(ctx context.Context) (ExpiryResult, error) {
	now := uc.now()
	var res ExpiryResult

	inv, invErr := uc.invoices.ExpireOverdueInvoices(ctx, now)
	if invErr != nil {
		uc.log.Error().Err(invErr).Msg("vencimiento de facturas")
	}
	res.Invoices = inv

	q, qErr := uc.quotes.ExpireOverdueQuotes(ctx, now)
	if qErr != nil {
		uc.log.Error().Err(qErr).Msg("vencimiento de cotizaciones")
	}
	res.Quotes = q

	uc.log.Info().Int64("invoices", res.Invoices).Int64("quotes", res.Quotes).Msg("barrido de vencimientos")
	if invErr != nil {
		return res, invErr
	}
	return res, qErr
}
