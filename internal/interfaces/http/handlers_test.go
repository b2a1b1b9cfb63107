package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-api/internal/application/analytics"
	"github.com/jhoicas/ferreteria-api/internal/application/auth"
	"github.com/jhoicas/ferreteria-api/internal/application/billing"
	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
	"github.com/jhoicas/ferreteria-api/internal/application/usecase"
	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/ferreteria-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/ferreteria-api/internal/interfaces/http"
	"github.com/jhoicas/ferreteria-api/pkg/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	app   *fiber.App
	store *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	store.SeedBranch(entity.Branch{ID: "B1", Code: "CEN", Name: "Central", InvoiceSeries: "A", Status: "Activa"})

	hash, err := auth.HashPassword("secreto123")
	require.NoError(t, err)
	store.SeedUser(entity.User{
		ID: "u-caja", Username: "caja1", Email: "caja1@ferreteria.gt", PasswordHash: hash,
		Role: entity.RoleCashier, BranchID: "B1", Status: entity.UserStatusActive,
	})

	now := time.Now()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "P001", Code: "P001", Name: "Pintura látex blanco galón", Price: decimal.RequireFromString("100.00"),
		Stock: decimal.NewFromInt(10), MinStock: decimal.NewFromInt(5), Status: entity.ProductStatusActive,
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{
		ID: "C1", Code: "CLI-001", Name: "Juan Pérez", Email: "juan@example.com",
		Status: entity.CustomerStatusActive, CreatedAt: now, UpdatedAt: now,
	}))

	log := logger.Nop()
	stock := inventory.NewStockUseCase(store, store.Products(), store.Movements(), log)
	invoices := billing.NewInvoiceUseCase(store, stock, store.Products(), store.Customers(), store.Branches(),
		store.Invoices(), billing.LedgerConfig{DefaultSeries: "A", NumberWidth: 8}, log)
	quotes := billing.NewQuoteUseCase(store, invoices, store.Products(), store.Customers(), store.Branches(),
		store.Quotes(), 15, log)

	app := apphttp.NewApp(apphttp.AppConfig{Name: "test"}, log)
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		ProductUC:     usecase.NewProductUseCase(store, store.Products(), stock),
		Stock:         stock,
		Replenishment: inventory.NewReplenishmentUseCase(store.Products()),
		CustomerUC:    billing.NewCustomerUseCase(store.Customers()),
		Invoices:      invoices,
		Quotes:        quotes,
		InvoicePDF: billing.NewPDFUseCase(store.Invoices(), store.Customers(), store.Products(), store.Branches(),
			infrapdf.NewMarotoPDFGenerator(infrapdf.Issuer{Name: "Ferretería"})),
		PaymentTypes: billing.NewPaymentTypeUseCase(store.PaymentTypes()),
		Sales:        analytics.NewSalesUseCase(store.Reports(), time.UTC),
		JWTSecret:    testJWTSecret,
	})
	return &testServer{app: app, store: store}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var env envelope
	if resp.Header.Get("Content-Type") != "application/pdf" {
		_ = json.NewDecoder(resp.Body).Decode(&env)
	}
	return resp, env
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	resp, env := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Login: "caja1", Password: "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return "Bearer " + out.Token
}

func saleBody(qty, paid string) map[string]any {
	return map[string]any{
		"customer_id": "C1",
		"lines":       []map[string]any{{"product_id": "P001", "quantity": qty}},
		"payments":    []map[string]any{{"payment_type_id": "EFECTIVO", "amount": paid}},
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t)
	resp, env := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Login: "caja1", Password: "otra"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", env.Error)
}

func TestCreateInvoice_Created(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	resp, env := s.do(t, http.MethodPost, "/api/invoices", token, saleBody("3", "300.00"))
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	assert.True(t, env.Success)

	var inv dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(env.Data, &inv))
	assert.Equal(t, "A-00000001", inv.Number)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(300)))

	resp, env = s.do(t, http.MethodGet, "/api/invoices/"+inv.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	pdf, _ := s.do(t, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", token, nil)
	assert.Equal(t, http.StatusOK, pdf.StatusCode)
	assert.Equal(t, "application/pdf", pdf.Header.Get("Content-Type"))
}

func TestCreateInvoice_ErrorMapping(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	resp, env := s.do(t, http.MethodPost, "/api/invoices", token, saleBody("11", "1100.00"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", env.Error)

	resp, env = s.do(t, http.MethodPost, "/api/invoices", token, saleBody("3", "299.99"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "PAYMENT_MISMATCH", env.Error)

	resp, env = s.do(t, http.MethodPost, "/api/invoices", token, map[string]any{"customer_id": "C1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", env.Error)

	resp, env = s.do(t, http.MethodGet, "/api/invoices/no-existe", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "INVOICE_NOT_FOUND", env.Error)

	// el cajero no anula
	resp, env = s.do(t, http.MethodPost, "/api/invoices/x/void", token, map[string]any{"reason": "error"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", env.Error)

	p, err := s.store.Products().GetByID(context.Background(), "P001")
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(10)))
}

func TestPaymentTypes(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	resp, env := s.do(t, http.MethodGet, "/api/payment-types", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.PaymentTypeResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 3)
}

func TestAdjustStockAndLowStock(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	resp, env := s.do(t, http.MethodPatch, "/api/products/P001/stock", token,
		map[string]any{"quantity": "6", "direction": "decrease"})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)

	resp, env = s.do(t, http.MethodGet, "/api/products/low-stock", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []dto.LowStockItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "P001", items[0].ProductID)

	resp, env = s.do(t, http.MethodGet, "/api/products/P001/movements", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var movs []dto.StockMovementResponse
	require.NoError(t, json.Unmarshal(env.Data, &movs))
	assert.Len(t, movs, 1)
}

func TestSalesReport_ForbiddenForCashier(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)
	resp, _ := s.do(t, http.MethodGet, "/api/reports/sales?from=2026-01-01&to=2026-01-31", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
