package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ferreteria-api/internal/domain"
)

func TestDBErr_Mapping(t *testing.T) {
	assert.Nil(t, dbErr("op", nil))

	assert.ErrorIs(t, dbErr("op", context.DeadlineExceeded), domain.ErrStorageUnavailable)
	assert.ErrorIs(t, dbErr("op", fmt.Errorf("x: %w", context.Canceled)), domain.ErrStorageUnavailable)
	assert.ErrorIs(t, dbErr("op", &pgconn.PgError{Code: "40P01"}), domain.ErrStorageUnavailable)
	assert.ErrorIs(t, dbErr("op", &pgconn.PgError{Code: "40001"}), domain.ErrStorageUnavailable)

	// los errores de dominio pasan intactos
	assert.Equal(t, domain.ErrProductNotFound, dbErr("op", domain.ErrProductNotFound))

	other := errors.New("syntax")
	err := dbErr("insert product", other)
	assert.ErrorIs(t, err, other)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505")))
}

func TestWhereBuilder(t *testing.T) {
	var w where
	w.add("branch_id = ?", "B1")
	w.add("(code ILIKE ? OR name ILIKE ?)", "%x%")
	assert.Equal(t, " WHERE branch_id = $1 AND (code ILIKE $2 OR name ILIKE $2)", w.sql())
	assert.Equal(t, " LIMIT $3 OFFSET $4", w.page(20, 0))
	assert.Len(t, w.args, 4)

	var empty where
	assert.Empty(t, empty.sql())
}
