package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("secreto", "u1", "b1", "cajero", "ferreteria-api", 5)
	require.NoError(t, err)

	claims, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "b1", claims.BranchID)
	assert.Equal(t, "cajero", claims.Role)
	assert.Equal(t, "ferreteria-api", claims.Issuer)
}

func TestParse_Rejects(t *testing.T) {
	token, err := Generate("secreto", "u1", "b1", "cajero", "x", 5)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err, "firma incorrecta")

	expired, err := Generate("secreto", "u1", "b1", "cajero", "x", -1)
	require.NoError(t, err)
	_, err = Parse("secreto", expired)
	assert.Error(t, err, "vencido")

	_, err = Parse("", token)
	assert.Error(t, err)

	_, err = Generate("", "u1", "b1", "cajero", "x", 5)
	assert.Error(t, err)
}
