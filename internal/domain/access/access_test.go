package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ferreteria-api/internal/domain"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
)

func TestAuthorize_RoleMatrix(t *testing.T) {
	manager := Principal{UserID: "u1", Role: entity.RoleManager, BranchID: "b1"}
	entry := Principal{UserID: "u2", Role: entity.RoleDataEntry, BranchID: "b1"}
	cashier := Principal{UserID: "u3", Role: entity.RoleCashier, BranchID: "b1"}

	for _, c := range allCapabilities {
		assert.NoError(t, Authorize(manager, c), c)
	}

	assert.NoError(t, Authorize(entry, ProductCreate))
	assert.NoError(t, Authorize(entry, CustomerUpdate))
	assert.ErrorIs(t, Authorize(entry, InvoiceCreate), domain.ErrForbidden)
	assert.ErrorIs(t, Authorize(entry, InvoiceVoid), domain.ErrForbidden)
	assert.ErrorIs(t, Authorize(entry, ProductDelete), domain.ErrForbidden)

	assert.NoError(t, Authorize(cashier, InvoiceCreate))
	assert.NoError(t, Authorize(cashier, StockAdjust))
	assert.NoError(t, Authorize(cashier, QuoteConvert))
	assert.ErrorIs(t, Authorize(cashier, InvoiceVoid), domain.ErrForbidden)
	assert.ErrorIs(t, Authorize(cashier, ProductCreate), domain.ErrForbidden)
	assert.ErrorIs(t, Authorize(cashier, ReportRead), domain.ErrForbidden)
}

func TestAuthorize_UnknownRoleAndAnonymous(t *testing.T) {
	assert.ErrorIs(t, Authorize(Principal{UserID: "x", Role: "admin"}, InvoiceRead), domain.ErrForbidden)
	assert.ErrorIs(t, Authorize(Principal{Role: entity.RoleManager}, InvoiceRead), domain.ErrUnauthorized)
	assert.False(t, ValidRole("admin"))
	assert.True(t, ValidRole(entity.RoleCashier))
}

func TestAuthorizeBranch(t *testing.T) {
	assert.NoError(t, AuthorizeBranch(Principal{Role: entity.RoleManager, BranchID: "b1"}, "b2"))
	assert.NoError(t, AuthorizeBranch(Principal{Role: entity.RoleCashier, BranchID: "b1"}, "b1"))
	assert.ErrorIs(t, AuthorizeBranch(Principal{Role: entity.RoleCashier, BranchID: "b1"}, "b2"), domain.ErrForbidden)
}
