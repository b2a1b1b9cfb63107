package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-api/internal/domain"
)

// Escalas de las columnas NUMERIC: montos en centavos, cantidades con fracción de galón, porcentajes con 2 decimales.
// Un valor con más decimales se rechaza; la base lo redondearía en silencio.
const (
	MoneyPlaces    int32 = 2
	QuantityPlaces int32 = 3
	PercentPlaces  int32 = 2
)

var hundred = decimal.NewFromInt(100)

// Line es una línea a valorizar: producto, cantidad, precio unitario ya resuelto y % de descuento.
type Line struct {
	ProductID       string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
}

// PricedLine resultado de valorizar una línea.
type PricedLine struct {
	LineNumber      int
	ProductID       string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	Gross           decimal.Decimal // round(precio × cantidad, 2)
	DiscountAmount  decimal.Decimal
	Subtotal        decimal.Decimal
}

// Totals totales de cabecera.
// Se cumple: Σ Subtotal de líneas + DiscountTotal == Subtotal  y  Subtotal − DiscountTotal + Tax == Total.
type Totals struct {
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
}

// TaxPolicy calcula el impuesto sobre la base gravable (subtotal − descuentos).
type TaxPolicy interface {
	Tax(base decimal.Decimal) decimal.Decimal
}

// NoTax política por defecto: impuesto cero.
type NoTax struct{}

func (NoTax) Tax(decimal.Decimal) decimal.Decimal { return decimal.Zero }

// FlatRate aplica un porcentaje fijo (ej. 12 = 12%).
type FlatRate struct {
	Percent decimal.Decimal
}

func (f FlatRate) Tax(base decimal.Decimal) decimal.Decimal {
	return base.Mul(f.Percent).Div(hundred).Round(MoneyPlaces)
}

// PolicyFromRate devuelve NoTax si rate es cero, FlatRate en otro caso.
func PolicyFromRate(rate decimal.Decimal) TaxPolicy {
	if rate.IsZero() {
		return NoTax{}
	}
	return FlatRate{Percent: rate}
}

// PriceLine valoriza una línea: descuento = round(precio × cant × %/100, 2); subtotal = round(precio × cant − descuento, 2).
func PriceLine(number int, l Line) (PricedLine, error) {
	if !l.Quantity.IsPositive() {
		return PricedLine{}, domain.Wrap(domain.ErrInvalidInput, "línea %d: la cantidad debe ser mayor a cero", number)
	}
	if !l.UnitPrice.IsPositive() {
		return PricedLine{}, domain.Wrap(domain.ErrInvalidInput, "línea %d: el precio debe ser mayor a cero", number)
	}
	if l.DiscountPercent.IsNegative() || l.DiscountPercent.GreaterThan(hundred) {
		return PricedLine{}, domain.Wrap(domain.ErrInvalidInput, "línea %d: el descuento debe estar entre 0 y 100", number)
	}
	if err := CheckScales(number, l.Quantity, l.UnitPrice, l.DiscountPercent); err != nil {
		return PricedLine{}, err
	}
	raw := l.UnitPrice.Mul(l.Quantity)
	gross := raw.Round(MoneyPlaces)
	discount := raw.Mul(l.DiscountPercent).Div(hundred).Round(MoneyPlaces)
	// discount está en centavos: gross − discount == round(raw − discount, 2) y nunca es negativo.
	return PricedLine{
		LineNumber:      number,
		ProductID:       l.ProductID,
		Quantity:        l.Quantity,
		UnitPrice:       l.UnitPrice,
		DiscountPercent: l.DiscountPercent,
		Gross:           gross,
		DiscountAmount:  discount,
		Subtotal:        gross.Sub(discount),
	}, nil
}

// Compute valoriza las líneas en orden (números 1..N) y calcula los totales con la política de impuesto.
func Compute(lines []Line, policy TaxPolicy) ([]PricedLine, Totals, error) {
	if len(lines) == 0 {
		return nil, Totals{}, domain.Wrap(domain.ErrInvalidInput, "se requiere al menos una línea")
	}
	if policy == nil {
		policy = NoTax{}
	}
	priced := make([]PricedLine, 0, len(lines))
	var t Totals
	for i, l := range lines {
		pl, err := PriceLine(i+1, l)
		if err != nil {
			return nil, Totals{}, err
		}
		priced = append(priced, pl)
		t.Subtotal = t.Subtotal.Add(pl.Gross)
		t.DiscountTotal = t.DiscountTotal.Add(pl.DiscountAmount)
	}
	t.Tax = policy.Tax(t.Subtotal.Sub(t.DiscountTotal)).Round(MoneyPlaces)
	t.Total = t.Subtotal.Sub(t.DiscountTotal).Add(t.Tax)
	return priced, t, nil
}

// Round2 redondea un monto a centavos.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// FitsScale indica si d no tiene más de places decimales.
func FitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Round(places))
}

// CheckScales valida cantidad, precio y % de descuento de una línea contra la escala con que se guardan.
func CheckScales(number int, qty, price, discountPercent decimal.Decimal) error {
	if !FitsScale(qty, QuantityPlaces) {
		return domain.Wrap(domain.ErrInvalidInput, "línea %d: la cantidad admite hasta %d decimales", number, QuantityPlaces)
	}
	if !FitsScale(price, MoneyPlaces) {
		return domain.Wrap(domain.ErrInvalidInput, "línea %d: el precio admite hasta %d decimales", number, MoneyPlaces)
	}
	if !FitsScale(discountPercent, PercentPlaces) {
		return domain.Wrap(domain.ErrInvalidInput, "línea %d: el descuento admite hasta %d decimales", number, PercentPlaces)
	}
	return nil
}
