package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/domain"
)

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"increase": Increase, "DECREASE": Decrease, "suma": Increase, " resta ": Decrease,
	} {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply(t *testing.T) {
	ten := decimal.NewFromInt(10)

	got, err := Apply(ten, decimal.NewFromInt(3), Decrease)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(7)))

	got, err = Apply(ten, decimal.RequireFromString("0.5"), Increase)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("10.5")))

	got, err = Apply(ten, decimal.Zero, Decrease)
	require.NoError(t, err)
	assert.True(t, got.Equal(ten))

	_, err = Apply(ten, decimal.NewFromInt(11), Decrease)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "faltan 1")

	_, err = Apply(ten, decimal.NewFromInt(-1), Increase)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = Apply(ten, decimal.NewFromInt(1), Direction(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	got, err = Apply(ten, decimal.RequireFromString("0.0005"), Increase)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, got.Equal(ten))
}
