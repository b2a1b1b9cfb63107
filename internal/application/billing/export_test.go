package billing

import "time"

// SetQuoteClock fija el reloj del caso de uso de cotizaciones.
func SetQuoteClock(uc *QuoteUseCase, now func() time.Time) { uc.now = now }
