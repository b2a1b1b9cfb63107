package billing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

// DefaultNumberWidth ancho del correlativo cuando la configuración no indica otro.
const DefaultNumberWidth = 8

var seriesPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

// NormalizeSeries pasa a mayúsculas y valida una serie de factura (alfanumérica, 1 a 10 caracteres).
// La serie de cotizaciones está reservada: compartirla mezclaría los dos correlativos.
func NormalizeSeries(series string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(series))
	if !seriesPattern.MatchString(s) {
		return "", domain.Wrap(domain.ErrInvalidInput, "serie inválida %q", series)
	}
	if s == entity.QuoteSeries {
		return "", domain.Wrap(domain.ErrInvalidInput, "la serie %s está reservada para cotizaciones", s)
	}
	return s, nil
}

// FormatNumber arma el número visible: SERIE-00000042.
func FormatNumber(series string, correlative int64, width int) string {
	if width <= 0 {
		width = DefaultNumberWidth
	}
	return fmt.Sprintf("%s-%0*d", series, width, correlative)
}
