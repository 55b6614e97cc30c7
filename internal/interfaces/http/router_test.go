package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/maestros-api/internal/application/auth"
	"github.com/jhoicas/maestros-api/internal/application/customer"
	"github.com/jhoicas/maestros-api/internal/application/dto"
	"github.com/jhoicas/maestros-api/internal/application/item"
	"github.com/jhoicas/maestros-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/maestros-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// API completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminEmail    = "admin@maestros.test"
	adminPassword = "admin-password"
)

type testAPI struct {
	app      *fiber.App
	admin    string
	employee string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	}, nil)
	require.NoError(t, authUC.EnsureAdmin(context.Background(), adminEmail, adminPassword))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC: customer.NewUseCase(store.Customers(), customer.WithTxRunner(store)),
		ItemUC:     item.NewUseCase(store.Items(), item.WithTxRunner(store)),
		AuthUC:     authUC,
		JWTSecret:  testJWTSecret,
		JWTIssuer:  testIssuer,
	})
	return &testAPI{
		app:      app,
		admin:    tokenForRole(t, "admin"),
		employee: tokenForRole(t, "employee"),
	}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (a *testAPI) createCustomer(t *testing.T, body map[string]any) dto.CustomerResponse {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/api/customers", a.employee, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.CustomerResponse](t, resp)
}

func (a *testAPI) createItem(t *testing.T, body map[string]any) dto.ItemResponse {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/api/items", a.employee, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ItemResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Customers
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomers_SinToken_401(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodGet, "/api/customers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCustomers_Create201YAuditoria(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCustomer(t, map[string]any{
		"customer_type":   "BUSINESS",
		"display_name":    "Acme Corp",
		"opening_balance": 150.5,
	})

	assert.NotEmpty(t, c.ID)
	assert.True(t, c.Active)
	assert.Equal(t, "ACTIVE", c.Status)
	assert.Equal(t, testUserID, c.CreatedBy)
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
	assert.Equal(t, "150.5", c.ReceivablesBalance.String())
}

func TestCustomers_CuerpoInvalido_400(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodPost, "/api/customers", api.employee, "{no es json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCustomers_Validacion_400ConCampo(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodPost, "/api/customers", api.employee, map[string]any{"customer_type": "BUSINESS"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "display_name", body.Field)
}

func TestCustomers_Duplicado_409(t *testing.T) {
	api := newTestAPI(t)
	in := map[string]any{"customer_type": "BUSINESS", "display_name": "Acme Corp"}
	api.createCustomer(t, in)

	resp := api.do(t, http.MethodPost, "/api/customers", api.employee, in)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE", body.Code)
	assert.Equal(t, "display_name", body.Field)
}

func TestCustomers_Inexistente_404(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodGet, "/api/customers/no-existe", api.employee, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCustomers_CicloDeVidaCompleto(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCustomer(t, map[string]any{"customer_type": "INDIVIDUAL", "display_name": "Ana"})
	path := "/api/customers/" + c.ID

	resp := api.do(t, http.MethodDelete, path, api.employee, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	got := decode[dto.CustomerResponse](t, api.do(t, http.MethodGet, path, api.employee, nil))
	assert.False(t, got.Active)

	// restore y purga son solo para admin
	resp = api.do(t, http.MethodPut, path+"/restore", api.employee, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = api.do(t, http.MethodPut, path+"/restore", api.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	restored := decode[dto.CustomerResponse](t, resp)
	assert.True(t, restored.Active)
	assert.True(t, restored.UpdatedAt.After(c.UpdatedAt))

	resp = api.do(t, http.MethodDelete, path+"/permanent", api.employee, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = api.do(t, http.MethodDelete, path+"/permanent", api.admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = api.do(t, http.MethodGet, path, api.employee, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCustomers_Update(t *testing.T) {
	api := newTestAPI(t)
	c := api.createCustomer(t, map[string]any{"customer_type": "BUSINESS", "display_name": "Acme"})

	resp := api.do(t, http.MethodPut, "/api/customers/"+c.ID, api.admin, map[string]any{
		"customer_type": "BUSINESS",
		"display_name":  "Acme Corp",
		"email":         "ventas@acme.test",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.CustomerResponse](t, resp)
	assert.Equal(t, "Acme Corp", updated.DisplayName)
	assert.Equal(t, "ventas@acme.test", updated.Email)
}

func TestCustomers_ListadoPaginado(t *testing.T) {
	api := newTestAPI(t)
	for _, n := range []string{"Charlie", "Alfa", "Bravo"} {
		api.createCustomer(t, map[string]any{"customer_type": "BUSINESS", "display_name": n})
	}

	resp := api.do(t, http.MethodGet, "/api/customers?page=0&size=2&sortBy=displayName&sortDir=desc", api.employee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[dto.PageResponse[dto.CustomerResponse]](t, resp)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Charlie", page.Content[0].DisplayName)
	assert.Equal(t, "Bravo", page.Content[1].DisplayName)

	resp = api.do(t, http.MethodGet, "/api/customers?sortBy=password", api.employee, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "sortBy", decode[dto.ErrorResponse](t, resp).Field)
}

func TestCustomers_RutasDeConsulta(t *testing.T) {
	api := newTestAPI(t)
	api.createCustomer(t, map[string]any{"customer_type": "BUSINESS", "display_name": "Acme Corp", "receivables_balance": 10})
	api.createCustomer(t, map[string]any{"customer_type": "INDIVIDUAL", "display_name": "Ana"})

	search := decode[dto.PageResponse[dto.CustomerResponse]](t, api.do(t, http.MethodGet, "/api/customers/search?q=acme", api.employee, nil))
	require.Len(t, search.Content, 1)
	assert.Equal(t, "Acme Corp", search.Content[0].DisplayName)

	byType := decode[dto.PageResponse[dto.CustomerResponse]](t, api.do(t, http.MethodGet, "/api/customers/type/INDIVIDUAL", api.employee, nil))
	require.Len(t, byType.Content, 1)
	assert.Equal(t, "Ana", byType.Content[0].DisplayName)

	resp := api.do(t, http.MethodGet, "/api/customers/type/GOVERNMENT", api.employee, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	all := decode[[]dto.CustomerResponse](t, api.do(t, http.MethodGet, "/api/customers/all", api.employee, nil))
	assert.Len(t, all, 2)

	outstanding := decode[[]dto.CustomerResponse](t, api.do(t, http.MethodGet, "/api/customers/outstanding", api.employee, nil))
	require.Len(t, outstanding, 1)
	assert.Equal(t, "Acme Corp", outstanding[0].DisplayName)

	stats := decode[dto.CustomerStatisticsResponse](t, api.do(t, http.MethodGet, "/api/customers/statistics", api.employee, nil))
	assert.Equal(t, dto.CustomerStatisticsResponse{
		TotalCustomers:         2,
		BusinessCount:          1,
		IndividualCount:        1,
		WithOutstandingBalance: 1,
	}, stats)
}

// ──────────────────────────────────────────────────────────────────────────────
// Items
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_CreateYConsultas(t *testing.T) {
	api := newTestAPI(t)
	widget := api.createItem(t, map[string]any{
		"name": "Widget", "type": "GOODS", "sku": "W-001",
		"stock_quantity": 5, "reorder_level": 10,
	})
	assert.True(t, widget.Sellable)
	assert.True(t, widget.LowStock)

	api.createItem(t, map[string]any{"name": "Montaje", "type": "SERVICE", "sellable": false})

	bySKU := decode[dto.ItemResponse](t, api.do(t, http.MethodGet, "/api/items/sku/W-001", api.employee, nil))
	assert.Equal(t, widget.ID, bySKU.ID)

	resp := api.do(t, http.MethodGet, "/api/items/sku/NOPE", api.employee, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	low := decode[[]dto.ItemResponse](t, api.do(t, http.MethodGet, "/api/items/low-stock", api.employee, nil))
	require.Len(t, low, 1)
	assert.Equal(t, "Widget", low[0].Name)

	sellable := decode[[]dto.ItemResponse](t, api.do(t, http.MethodGet, "/api/items/sellable", api.employee, nil))
	require.Len(t, sellable, 1)
	assert.Equal(t, "Widget", sellable[0].Name)

	purchasable := decode[[]dto.ItemResponse](t, api.do(t, http.MethodGet, "/api/items/purchasable", api.employee, nil))
	assert.Len(t, purchasable, 2)

	stats := decode[dto.ItemStatisticsResponse](t, api.do(t, http.MethodGet, "/api/items/statistics", api.employee, nil))
	assert.Equal(t, dto.ItemStatisticsResponse{TotalItems: 2, GoodsCount: 1, ServicesCount: 1, LowStockCount: 1}, stats)
}

func TestItems_SKUDuplicado_409(t *testing.T) {
	api := newTestAPI(t)
	api.createItem(t, map[string]any{"name": "Widget", "type": "GOODS", "sku": "W-001"})

	resp := api.do(t, http.MethodPost, "/api/items", api.employee, map[string]any{"name": "Gadget", "type": "GOODS", "sku": "W-001"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE", body.Code)
	assert.Equal(t, "sku", body.Field)
}

func TestItems_PrecioNegativo_400(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodPost, "/api/items", api.employee, map[string]any{"name": "Widget", "type": "GOODS", "selling_price": -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "selling_price", decode[dto.ErrorResponse](t, resp).Field)
}

func TestItems_ValoresFueraDeRango_400(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodPost, "/api/items", api.employee, map[string]any{"name": "Widget", "type": "GOODS", "tax_rate": 1000})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "tax_rate", body.Field)

	resp = api.do(t, http.MethodPost, "/api/customers", api.employee, map[string]any{
		"display_name": "Acme Corp", "customer_type": "BUSINESS", "opening_balance": "1000000000000000",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "opening_balance", decode[dto.ErrorResponse](t, resp).Field)
}

func TestItems_PaginaEnorme_PaginaVacia(t *testing.T) {
	api := newTestAPI(t)
	api.createItem(t, map[string]any{"name": "Widget", "type": "GOODS"})

	resp := api.do(t, http.MethodGet, "/api/items?page=184467440737095516&size=100", api.employee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[dto.PageResponse[dto.ItemResponse]](t, resp)
	assert.Empty(t, page.Content)
	assert.Equal(t, int64(1), page.TotalElements)
}

func TestItems_RestoreSoloAdmin(t *testing.T) {
	api := newTestAPI(t)
	it := api.createItem(t, map[string]any{"name": "Widget", "type": "GOODS"})
	path := "/api/items/" + it.ID

	assert.Equal(t, http.StatusNoContent, api.do(t, http.MethodDelete, path, api.employee, nil).StatusCode)
	assert.Equal(t, http.StatusForbidden, api.do(t, http.MethodPut, path+"/restore", api.employee, nil).StatusCode)

	resp := api.do(t, http.MethodPut, path+"/restore", api.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.ItemResponse](t, resp).Active)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_LoginYValidate(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "admin", login.Role)

	valid := decode[dto.ValidateResponse](t, api.do(t, http.MethodGet, "/api/auth/validate", "Bearer "+login.Token, nil))
	assert.True(t, valid.Valid)

	invalid := decode[dto.ValidateResponse](t, api.do(t, http.MethodGet, "/api/auth/validate", "Bearer basura", nil))
	assert.False(t, invalid.Valid)
}

func TestAuth_LoginCredencialesInvalidas_401(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@maestros.test", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuth_Register(t *testing.T) {
	api := newTestAPI(t)
	in := dto.RegisterRequest{Email: "empleado@maestros.test", Password: "password-123", Name: "Empleado"}

	resp := api.do(t, http.MethodPost, "/api/auth/register", api.employee, in)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/auth/register", api.admin, in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "employee", user.Role)

	resp = api.do(t, http.MethodPost, "/api/auth/register", api.admin, in)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", decode[dto.ErrorResponse](t, resp).Code)

	// El usuario nuevo puede iniciar sesión.
	resp = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: in.Email, Password: in.Password})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
