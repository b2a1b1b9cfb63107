package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompute_SingleLineNoDiscount(t *testing.T) {
	lines, totals, err := Compute([]Line{
		{ProductID: "P001", Quantity: d("3"), UnitPrice: d("100.00")},
	}, nil)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].LineNumber)
	assert.True(t, lines[0].Subtotal.Equal(d("300.00")))
	assert.True(t, totals.Subtotal.Equal(d("300.00")))
	assert.True(t, totals.DiscountTotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.Equal(d("300.00")))
}

func TestCompute_DiscountRounding(t *testing.T) {
	// 33.33 × 1.5 = 49.995; 7% = 3.49965 → 3.50; subtotal 49.995 − 3.50 = 46.495 → 46.50
	lines, totals, err := Compute([]Line{
		{ProductID: "a", Quantity: d("1.5"), UnitPrice: d("33.33"), DiscountPercent: d("7")},
	}, NoTax{})
	require.NoError(t, err)
	assert.True(t, lines[0].DiscountAmount.Equal(d("3.50")), lines[0].DiscountAmount.String())
	assert.True(t, lines[0].Subtotal.Equal(d("46.50")), lines[0].Subtotal.String())
	assert.True(t, totals.Subtotal.Equal(d("50.00")), totals.Subtotal.String())
	assert.True(t, totals.Total.Equal(d("46.50")))
}

func TestCompute_TotalsIdentities(t *testing.T) {
	in := []Line{
		{ProductID: "a", Quantity: d("2.25"), UnitPrice: d("19.99"), DiscountPercent: d("12.5")},
		{ProductID: "b", Quantity: d("7"), UnitPrice: d("3.33"), DiscountPercent: d("0")},
		{ProductID: "c", Quantity: d("0.333"), UnitPrice: d("145.10"), DiscountPercent: d("100")},
		{ProductID: "a", Quantity: d("1"), UnitPrice: d("0.01"), DiscountPercent: d("50")},
	}
	lines, totals, err := Compute(in, FlatRate{Percent: d("12")})
	require.NoError(t, err)

	sumLines := decimal.Zero
	for i, l := range lines {
		assert.Equal(t, i+1, l.LineNumber)
		sumLines = sumLines.Add(l.Subtotal)
	}
	assert.True(t, sumLines.Add(totals.DiscountTotal).Equal(totals.Subtotal),
		"Σ líneas + descuento = %s, subtotal = %s", sumLines.Add(totals.DiscountTotal), totals.Subtotal)
	assert.True(t, totals.Subtotal.Sub(totals.DiscountTotal).Add(totals.Tax).Equal(totals.Total))
	assert.True(t, totals.Tax.Equal(totals.Tax.Round(2)))
}

func TestCompute_FlatRateTax(t *testing.T) {
	_, totals, err := Compute([]Line{{ProductID: "a", Quantity: d("1"), UnitPrice: d("10.05")}}, FlatRate{Percent: d("12")})
	require.NoError(t, err)
	// 10.05 × 12% = 1.206 → 1.21
	assert.True(t, totals.Tax.Equal(d("1.21")))
	assert.True(t, totals.Total.Equal(d("11.26")))
}

func TestCompute_Rejects(t *testing.T) {
	cases := map[string]Line{
		"cantidad cero":      {Quantity: d("0"), UnitPrice: d("1")},
		"cantidad negativa":  {Quantity: d("-1"), UnitPrice: d("1")},
		"precio cero":        {Quantity: d("1"), UnitPrice: d("0")},
		"descuento negativo": {Quantity: d("1"), UnitPrice: d("1"), DiscountPercent: d("-1")},
		"descuento mayor":    {Quantity: d("1"), UnitPrice: d("1"), DiscountPercent: d("100.01")},
	}
	for name, l := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Compute([]Line{l}, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}

	_, _, err := Compute(nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPolicyFromRate(t *testing.T) {
	assert.IsType(t, NoTax{}, PolicyFromRate(decimal.Zero))
	assert.IsType(t, FlatRate{}, PolicyFromRate(d("12")))
}

func TestCompute_RejectsValuesFinerThanStorage(t *testing.T) {
	cases := map[string]Line{
		"cantidad con 4 decimales":  {Quantity: d("1.0005"), UnitPrice: d("10")},
		"precio con 3 decimales":    {Quantity: d("1"), UnitPrice: d("33.335")},
		"descuento con 3 decimales": {Quantity: d("1"), UnitPrice: d("10"), DiscountPercent: d("12.345")},
	}
	for name, l := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Compute([]Line{l}, nil)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, _, err := Compute([]Line{{Quantity: d("1.125"), UnitPrice: d("33.34"), DiscountPercent: d("12.35")}}, nil)
	assert.NoError(t, err)
}

func TestFitsScale(t *testing.T) {
	assert.True(t, FitsScale(d("1.230"), QuantityPlaces))
	assert.True(t, FitsScale(d("10"), MoneyPlaces))
	assert.False(t, FitsScale(d("0.001"), MoneyPlaces))
}
