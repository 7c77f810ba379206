package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-admin/internal/application/auth"
	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/application/forecasting"
	"github.com/jhoicas/retail-admin/internal/application/inventory"
	"github.com/jhoicas/retail-admin/internal/application/orders"
	"github.com/jhoicas/retail-admin/internal/application/usecase"
	"github.com/jhoicas/retail-admin/internal/application/vision"
	"github.com/jhoicas/retail-admin/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/retail-admin/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/retail-admin/pkg/jwt"
)

const (
	adminEmail    = "admin@retail.test"
	adminPassword = "admin12345"
)

type apiHarness struct {
	t   *testing.T
	app *fiber.App
}

// newHarness levanta la API completa sobre el almacén en memoria sembrado.
func newHarness(t *testing.T, modules []string, csrf bool) *apiHarness {
	t.Helper()
	db := memory.NewDB()
	require.NoError(t, memory.Seed(db, memory.SeedOptions{AdminEmail: adminEmail, AdminPassword: adminPassword}))

	txRunner := memory.NewTxRunner(db)
	storeRepo := memory.NewStoreRepository(db)
	productRepo := memory.NewProductRepository(db)
	levelRepo := memory.NewInventoryLevelRepository(db)
	txnRepo := memory.NewInventoryTransactionRepository(db)
	movementRepo := memory.NewStockMovementRepository(db)
	customerRepo := memory.NewCustomerRepository(db)
	orderRepo := memory.NewOrderRepository(db)
	userRepo := memory.NewUserRepository(db)

	inventoryUC := inventory.NewUseCase(txRunner, levelRepo, txnRepo, storeRepo)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(userRepo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		UserUC:        usecase.NewUserUseCase(userRepo),
		ProductUC:     usecase.NewProductUseCase(productRepo),
		AlertUC:       usecase.NewAlertUseCase(memory.NewAlertRepository(db)),
		ModuleService: usecase.NewModuleService(modules),
		InventoryUC:   inventoryUC,
		MovementUC:    inventory.NewMovementUseCase(txRunner, movementRepo, levelRepo, storeRepo, productRepo),
		OrderUC:       orders.NewOrderUseCase(txRunner, inventoryUC, orderRepo, customerRepo, productRepo, storeRepo),
		CustomerUC:    orders.NewCustomerUseCase(customerRepo),
		ForecastUC:    forecasting.NewUseCase(memory.NewForecastRepository(db), productRepo, inventory.NewReplenishmentUseCase(levelRepo)),
		VisionUC:      vision.NewUseCase(memory.NewVisionRepository(db), storeRepo),
		JWTSecret:     testJWTSecret,
		CSRF:          csrf,
	})
	return &apiHarness{t: t, app: app}
}

func (h *apiHarness) do(method, path, token string, body interface{}) (int, []byte) {
	h.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return resp.StatusCode, out
}

func (h *apiHarness) login() string {
	h.t.Helper()
	status, body := h.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.Equal(h.t, http.StatusOK, status, string(body))
	var out dto.LoginResponse
	require.NoError(h.t, json.Unmarshal(body, &out))
	return "Bearer " + out.Token
}

func (h *apiHarness) levels(token, query string) []dto.LevelResponse {
	h.t.Helper()
	status, body := h.do(http.MethodGet, "/api/v1/inventory/levels/"+query, token, nil)
	require.Equal(h.t, http.StatusOK, status, string(body))
	var out dto.LevelListResponse
	require.NoError(h.t, json.Unmarshal(body, &out))
	return out.Items
}

func (h *apiHarness) stores(token string) []dto.StoreResponse {
	h.t.Helper()
	status, body := h.do(http.MethodGet, "/api/v1/inventory/stores/", token, nil)
	require.Equal(h.t, http.StatusOK, status)
	var out dto.StoreListResponse
	require.NoError(h.t, json.Unmarshal(body, &out))
	return out.Items
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e.Code
}

func TestRouter_LoginCredencialesInvalidas(t *testing.T) {
	h := newHarness(t, nil, false)
	status, body := h.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, body))

	status, body = h.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "no-es-email"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}

func TestRouter_RutaProtegidaSinToken(t *testing.T) {
	h := newHarness(t, nil, false)
	status, _ := h.do(http.MethodGet, "/api/v1/inventory/levels/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRouter_FiltraNivelesPorTiendaYEstado(t *testing.T) {
	h := newHarness(t, nil, false)
	token := h.login()
	stores := h.stores(token)
	require.Len(t, stores, 3)

	all := h.levels(token, "")
	assert.Len(t, all, 12)

	byStore := h.levels(token, fmt.Sprintf("?store_id=%d", stores[0].ID))
	assert.Len(t, byStore, 4)
	for _, l := range byStore {
		assert.Equal(t, stores[0].ID, l.StoreID)
	}

	for _, l := range h.levels(token, "?status=out_of_stock") {
		assert.Equal(t, int64(0), l.Quantity)
	}

	status, body := h.do(http.MethodGet, "/api/v1/inventory/levels/?status=RARO", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}

func TestRouter_AjusteRegistraTransaccion(t *testing.T) {
	h := newHarness(t, nil, false)
	token := h.login()
	level := h.levels(token, "")[0]

	status, body := h.do(http.MethodPatch, fmt.Sprintf("/api/v1/inventory/levels/%d/", level.ID), token,
		dto.AdjustLevelRequest{Quantity: -2, AdjustmentReason: "damaged", Notes: "caja rota"})
	require.Equal(t, http.StatusOK, status, string(body))
	var adjusted dto.LevelResponse
	require.NoError(t, json.Unmarshal(body, &adjusted))
	assert.Equal(t, level.Quantity-2, adjusted.Quantity)

	status, body = h.do(http.MethodGet, fmt.Sprintf("/api/v1/inventory/transactions/?level_id=%d", level.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	var txns dto.TransactionListResponse
	require.NoError(t, json.Unmarshal(body, &txns))
	require.Len(t, txns.Items, 1)
	assert.Equal(t, "DAMAGE", txns.Items[0].Type)
	assert.Equal(t, int64(-2), txns.Items[0].QuantityChange)
	assert.NotEmpty(t, txns.Items[0].PerformedBy)
}

func TestRouter_AjusteNegativoYMotivoInvalido(t *testing.T) {
	h := newHarness(t, nil, false)
	token := h.login()
	level := h.levels(token, "")[0]
	path := fmt.Sprintf("/api/v1/inventory/levels/%d/", level.ID)

	status, body := h.do(http.MethodPatch, path, token, dto.AdjustLevelRequest{Quantity: -(level.Quantity + 1), AdjustmentReason: "loss"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "NEGATIVE_STOCK", errorCode(t, body))

	status, _ = h.do(http.MethodPatch, path, token, dto.AdjustLevelRequest{Quantity: 1, AdjustmentReason: "regalo"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = h.do(http.MethodPatch, "/api/v1/inventory/levels/99999/", token, dto.AdjustLevelRequest{Quantity: 1, AdjustmentReason: "correction"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))

	// sin cambios en el nivel
	after := h.levels(token, fmt.Sprintf("?product_id=%d&store_id=%d", level.ProductID, level.StoreID))
	require.Len(t, after, 1)
	assert.Equal(t, level.Quantity, after[0].Quantity)
}

func TestRouter_TrasladoCompleto(t *testing.T) {
	h := newHarness(t, nil, false)
	token := h.login()
	stores := h.stores(token)
	src := h.levels(token, fmt.Sprintf("?store_id=%d", stores[0].ID))
	var from dto.LevelResponse
	for _, l := range src {
		if l.Quantity >= 10 {
			from = l
			break
		}
	}
	require.NotZero(t, from.ID)
	var toStore int64
	for _, s := range stores {
		if s.ID != from.StoreID {
			toStore = s.ID
			break
		}
	}

	status, body := h.do(http.MethodPost, "/api/v1/inventory/movements/", token, dto.CreateMovementRequest{
		FromStoreID: from.StoreID, ToStoreID: from.StoreID, ProductID: from.ProductID, Quantity: 1, MovementType: "transfer",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "SAME_STORE", errorCode(t, body))

	status, body = h.do(http.MethodPost, "/api/v1/inventory/movements/", token, dto.CreateMovementRequest{
		FromStoreID: from.StoreID, ToStoreID: toStore, ProductID: from.ProductID, Quantity: from.Quantity + 1, MovementType: "transfer",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, body))

	status, body = h.do(http.MethodPost, "/api/v1/inventory/movements/", token, dto.CreateMovementRequest{
		FromStoreID: from.StoreID, ToStoreID: toStore, ProductID: from.ProductID, Quantity: 5, MovementType: "transfer",
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var mv dto.MovementResponse
	require.NoError(t, json.Unmarshal(body, &mv))
	assert.Equal(t, "PENDING", mv.Status)

	clerk, err := pkgjwt.Generate(testJWTSecret, 99, 0, "clerk", testIssuer, testExpMin)
	require.NoError(t, err)
	status, body = h.do(http.MethodPost, fmt.Sprintf("/api/v1/inventory/movements/%d/approve/", mv.ID), "Bearer "+clerk, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))

	status, body = h.do(http.MethodPost, fmt.Sprintf("/api/v1/inventory/movements/%d/approve/", mv.ID), token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	require.NoError(t, json.Unmarshal(body, &mv))
	assert.Equal(t, "RECEIVED", mv.Status)

	after := h.levels(token, fmt.Sprintf("?product_id=%d&store_id=%d", from.ProductID, from.StoreID))
	require.Len(t, after, 1)
	assert.Equal(t, from.Quantity-5, after[0].Quantity)

	// un traslado recibido no se puede cancelar
	status, body = h.do(http.MethodPost, fmt.Sprintf("/api/v1/inventory/movements/%d/cancel/", mv.ID), token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, body))
}

func TestRouter_OrdenCreaYConfirma(t *testing.T) {
	h := newHarness(t, nil, false)
	token := h.login()

	status, body := h.do(http.MethodGet, "/api/v1/orders/customers/", token, nil)
	require.Equal(t, http.StatusOK, status)
	var customers dto.CustomerListResponse
	require.NoError(t, json.Unmarshal(body, &customers))
	require.NotEmpty(t, customers.Items)

	var level dto.LevelResponse
	for _, l := range h.levels(token, "") {
		if l.Quantity >= 3 {
			level = l
			break
		}
	}
	require.NotZero(t, level.ID)

	status, body = h.do(http.MethodPost, "/api/v1/orders/orders/", token, dto.CreateOrderRequest{
		CustomerID: customers.Items[0].ID,
		StoreID:    level.StoreID,
		LineItems:  []dto.OrderLineRequest{{ProductID: level.ProductID, Quantity: 3}},
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var order dto.OrderResponse
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, "pending", order.Status)
	require.Len(t, order.LineItems, 1)

	status, body = h.do(http.MethodPost, fmt.Sprintf("/api/v1/orders/orders/%d/confirm/", order.ID), token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, "confirmed", order.Status)

	after := h.levels(token, fmt.Sprintf("?product_id=%d&store_id=%d", level.ProductID, level.StoreID))
	require.Len(t, after, 1)
	assert.Equal(t, level.Quantity-3, after[0].Quantity)

	status, body = h.do(http.MethodPatch, fmt.Sprintf("/api/v1/orders/orders/%d/", order.ID), token, map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, body))
}

func TestRouter_ModuloDeshabilitado(t *testing.T) {
	h := newHarness(t, []string{"forecasting"}, false)
	token := h.login()

	status, _ := h.do(http.MethodGet, "/api/v1/forecasting/recommendations/", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body := h.do(http.MethodGet, "/api/v1/vision/detection-models/", token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "MODULE_DISABLED", errorCode(t, body))
}

func TestRouter_CorridaDeModeloCreaPendientes(t *testing.T) {
	h := newHarness(t, []string{"forecasting", "vision"}, false)
	token := h.login()

	status, body := h.do(http.MethodGet, "/api/v1/forecasting/models/", token, nil)
	require.Equal(t, http.StatusOK, status)
	var models []dto.ForecastModelResponse
	require.NoError(t, json.Unmarshal(body, &models))
	var active int64
	for _, m := range models {
		if m.IsActive {
			active = m.ID
		}
	}
	require.NotZero(t, active)

	level := h.levels(token, "")[0]
	status, body = h.do(http.MethodPost, fmt.Sprintf("/api/v1/forecasting/models/%d/run/", active), token,
		dto.RunModelRequest{ProductIDs: []int64{level.ProductID}, ForecastDays: 14})
	require.Equal(t, http.StatusAccepted, status, string(body))
	var run dto.RunModelResponse
	require.NoError(t, json.Unmarshal(body, &run))
	require.Len(t, run.Requests, 1)
	assert.Equal(t, "pending", run.Requests[0].Status)
}

func TestRouter_CSRFExigeTokenSinBearer(t *testing.T) {
	h := newHarness(t, nil, true)
	login, _ := json.Marshal(dto.LoginRequest{Email: adminEmail, Password: adminPassword})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(login))
	req.Header.Set("Content-Type", "application/json")
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = h.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/auth/csrf", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	var csrfToken string
	for _, ck := range resp.Cookies() {
		if ck.Name == apphttp.CSRFCookieName {
			csrfToken = ck.Value
		}
	}
	require.NotEmpty(t, csrfToken)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(login))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apphttp.CSRFHeaderName, csrfToken)
	req.AddCookie(&http.Cookie{Name: apphttp.CSRFCookieName, Value: csrfToken})
	resp, err = h.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// con Bearer no se exige el token
	token := h.loginWithCSRF(csrfToken)
	status, _ := h.do(http.MethodPost, "/api/v1/orders/customers/", token, dto.CreateCustomerRequest{Code: "CUS-900", Name: "Kiosco"})
	assert.Equal(t, http.StatusCreated, status)
}

func (h *apiHarness) loginWithCSRF(csrfToken string) string {
	h.t.Helper()
	login, _ := json.Marshal(dto.LoginRequest{Email: adminEmail, Password: adminPassword})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(login))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apphttp.CSRFHeaderName, csrfToken)
	req.AddCookie(&http.Cookie{Name: apphttp.CSRFCookieName, Value: csrfToken})
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	require.Equal(h.t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(h.t, json.NewDecoder(resp.Body).Decode(&out))
	return "Bearer " + out.Token
}
