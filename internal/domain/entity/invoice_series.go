package entity

import "time"

// QuoteSeries serie reservada para numerar cotizaciones.
const QuoteSeries = "COT"

// InvoiceSeries guarda el último correlativo asignado de una serie.
// El incremento se hace bajo bloqueo de fila; un rollback puede dejar huecos pero nunca duplicados.
type InvoiceSeries struct {
	Series          string
	BranchID        string // vacío para series globales (ej. cotizaciones)
	LastCorrelative int64
	UpdatedAt       time.Time
}
