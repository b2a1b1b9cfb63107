package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/application/auth"
	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/ferreteria-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := auth.HashPassword("caja123")
	require.NoError(t, err)
	store := memory.NewStore()
	store.SeedUser(entity.User{
		ID: "u1", Username: "cajero1", Email: "cajero1@ferreteria.gt", PasswordHash: hash,
		Name: "Cajero Uno", Role: entity.RoleCashier, BranchID: "B1", Status: entity.UserStatusActive,
	})
	store.SeedUser(entity.User{
		ID: "u2", Username: "baja", Email: "baja@ferreteria.gt", PasswordHash: hash,
		Role: entity.RoleCashier, BranchID: "B1", Status: entity.UserStatusInactive,
	})
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "ferreteria-api"})
}

func TestLogin_IssuesTokenWithClaims(t *testing.T) {
	uc := newAuth(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Login: "CAJERO1@ferreteria.gt", Password: "caja123"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), out.ExpiresIn)
	assert.Equal(t, "cajero1", out.User.Username)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "B1", claims.BranchID)
	assert.Equal(t, entity.RoleCashier, claims.Role)
}

func TestLogin_Failures(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Login: "cajero1", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Login: "nadie", Password: "caja123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Login: "baja", Password: "caja123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Login(ctx, dto.LoginRequest{Login: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
