package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/domain/access"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	apphttp "github.com/jhoicas/ferreteria-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/ferreteria-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testBranchID  = "B1"
	testIssuer    = "ferreteria-api-test"
	testExpMin    = 60
)

// buildGuardedApp app mínima: JWT + capacidad + handler que devuelve el principal.
func buildGuardedApp(capability access.Capability) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireCapability(capability),
		func(c *fiber.Ctx) error {
			p := apphttp.GetPrincipal(c)
			return c.JSON(fiber.Map{"user_id": p.UserID, "role": p.Role, "branch_id": p.BranchID})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testBranchID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doGet(t *testing.T, app *fiber.App, authHeader string) (*http.Response, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp, env
}

func TestRequireCapability_ManagerCanVoid(t *testing.T) {
	app := buildGuardedApp(access.InvoiceVoid)
	resp, _ := doGet(t, app, tokenForRole(t, entity.RoleManager))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireCapability_CashierCannotVoid(t *testing.T) {
	app := buildGuardedApp(access.InvoiceVoid)
	resp, env := doGet(t, app, tokenForRole(t, entity.RoleCashier))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "FORBIDDEN", env.Error)
}

func TestRequireCapability_DataEntryCannotSell(t *testing.T) {
	app := buildGuardedApp(access.InvoiceCreate)
	resp, _ := doGet(t, app, tokenForRole(t, entity.RoleDataEntry))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	app := buildGuardedApp(access.ProductRead)

	cases := map[string]struct {
		header string
		code   string
	}{
		"sin header":    {"", "MISSING_TOKEN"},
		"sin Bearer":    {"Token abc", "INVALID_TOKEN"},
		"token basura":  {"Bearer token.invalido.aqui", "INVALID_TOKEN"},
		"rol vacío":     {tokenForRole(t, ""), "MISSING_ROLE"},
		"rol inventado": {tokenForRole(t, "bodeguero"), "MISSING_ROLE"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp, env := doGet(t, app, tc.header)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, tc.code, env.Error)
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	app := buildGuardedApp(access.ProductRead)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testBranchID, entity.RoleManager, testIssuer, -1)
	require.NoError(t, err)
	resp, env := doGet(t, app, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", env.Error)
}

func TestAuthMiddleware_ExtractsPrincipal(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		p := apphttp.GetPrincipal(c)
		return c.JSON(fiber.Map{"user_id": p.UserID, "role": p.Role, "branch_id": p.BranchID})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleCashier))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testBranchID, body["branch_id"])
	assert.Equal(t, entity.RoleCashier, body["role"])
}
