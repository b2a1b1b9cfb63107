package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/pricing"
)

// Direction sentido de un movimiento de stock.
type Direction int

const (
	Increase Direction = iota + 1
	Decrease
)

func (d Direction) String() string {
	switch d {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	}
	return "unknown"
}

// ParseDirection acepta increase|decrease y los alias heredados suma|resta (sin distinguir mayúsculas).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "increase", "suma":
		return Increase, nil
	case "decrease", "resta":
		return Decrease, nil
	}
	return 0, domain.Wrap(domain.ErrInvalidInput, "dirección de stock inválida %q", s)
}

// Apply devuelve el stock resultante de mover qty en la dirección d.
// qty negativa es inválida; qty cero devuelve el stock sin cambios; una salida que deje stock negativo
// falla con ErrInsufficientStock indicando el faltante.
func Apply(current, qty decimal.Decimal, d Direction) (decimal.Decimal, error) {
	if qty.IsNegative() {
		return current, domain.Wrap(domain.ErrInvalidInput, "la cantidad no puede ser negativa")
	}
	if !pricing.FitsScale(qty, pricing.QuantityPlaces) {
		return current, domain.Wrap(domain.ErrInvalidInput, "la cantidad admite hasta %d decimales", pricing.QuantityPlaces)
	}
	switch d {
	case Increase:
		return current.Add(qty), nil
	case Decrease:
		if current.LessThan(qty) {
			return current, domain.Wrap(domain.ErrInsufficientStock, "disponible %s, solicitado %s, faltan %s",
				current.String(), qty.String(), qty.Sub(current).String())
		}
		return current.Sub(qty), nil
	}
	return current, domain.Wrap(domain.ErrInvalidInput, "dirección de stock inválida")
}
