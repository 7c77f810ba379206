package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-admin/internal/admin/storage"
	"github.com/jhoicas/retail-admin/internal/admin/table"
	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/interfaces/cli"
	"github.com/jhoicas/retail-admin/pkg/config"
)

type request struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

type fakeServer struct {
	mu          sync.Mutex
	requests    []request
	rejectMoves bool
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, request{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization"), Body: string(raw)})
	reject := f.rejectMoves
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	path := r.URL.Path
	switch {
	case path == "/api/v1/auth/csrf":
		w.WriteHeader(http.StatusNoContent)
	case path == "/api/v1/auth/login":
		_ = json.NewEncoder(w).Encode(dto.LoginResponse{Token: "tok-1", User: dto.UserResponse{ID: 1, Name: "Admin", Role: "admin"}})
	case r.Method == http.MethodGet && path == "/api/v1/inventory/levels/":
		_ = json.NewEncoder(w).Encode(dto.LevelListResponse{Items: []dto.LevelResponse{
			{ID: 42, ProductID: 7, StoreID: 1, Quantity: 20, Available: 20, ProductSKU: "SKU-7", ProductName: "Café", Status: "in_stock", ReorderPoint: 5},
			{ID: 43, ProductID: 7, StoreID: 2, Quantity: 3, Available: 3, ProductSKU: "SKU-7", ProductName: "Café", Status: "low_stock", ReorderPoint: 5},
			{ID: 44, ProductID: 8, StoreID: 1, Quantity: 0, Available: 0, ProductSKU: "SKU-8", ProductName: "Té", Status: "out_of_stock", ReorderPoint: 2},
		}})
	case r.Method == http.MethodPatch && strings.HasPrefix(path, "/api/v1/inventory/levels/"):
		id, _ := strconv.ParseInt(strings.Trim(strings.TrimPrefix(path, "/api/v1/inventory/levels/"), "/"), 10, 64)
		_ = json.NewEncoder(w).Encode(dto.LevelResponse{ID: id, Quantity: 15, Status: "in_stock"})
	case r.Method == http.MethodPost && path == "/api/v1/inventory/movements/":
		if reject {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.MovementResponse{ID: 9, TransferID: "TRF-9", Status: "PENDING"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeServer) of(method string) []request {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []request
	for _, r := range f.requests {
		if r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

type harness struct {
	server *fakeServer
	store  storage.Storage
	url    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	f := &fakeServer{}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return &harness{server: f, store: storage.NewMemory(), url: srv.URL}
}

// run ejecuta retailctl con la entrada dada y devuelve stdout y stderr.
func (h *harness) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := cli.Execute(context.Background(), cli.Deps{
		Config:  config.ClientConfig{BaseURL: h.url},
		Storage: h.store,
		In:      strings.NewReader(stdin),
		Out:     &out,
		ErrOut:  &errOut,
	}, args)
	return out.String(), errOut.String(), err
}

func TestLogin_GuardaTokenYLoUsa(t *testing.T) {
	h := newHarness(t)
	_, stderr, err := h.run(t, "", "login", "--email", "admin@retail.test", "--password", "secreto123")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Sesión iniciada como Admin")

	_, _, err = h.run(t, "", "levels")
	require.NoError(t, err)
	gets := h.server.of(http.MethodGet)
	last := gets[len(gets)-1]
	assert.Equal(t, "/api/v1/inventory/levels/", last.Path)
	assert.Equal(t, "Bearer tok-1", last.Auth)
}

func TestLevels_OrdenYExportCSV(t *testing.T) {
	h := newHarness(t)
	out, _, err := h.run(t, "", "levels", "--sort", "quantity", "--desc", "--export", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], `"ID","SKU","Producto"`))
	assert.True(t, strings.HasPrefix(lines[1], `"42"`))
	assert.True(t, strings.HasPrefix(lines[2], `"43"`))
	assert.True(t, strings.HasPrefix(lines[3], `"44"`))
}

func TestLevels_ColumnaDeOrdenDesconocida(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "levels", "--sort", "precio")
	assert.ErrorIs(t, err, table.ErrUnknownColumn)
}

func TestLevels_FiltrosGuardadosSeAplicanLuego(t *testing.T) {
	h := newHarness(t)
	out, _, err := h.run(t, "", "levels", "--filter", "status=low_stock", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "43")
	assert.NotContains(t, out, "44")

	out, _, err = h.run(t, "", "levels", "--search", "café")
	require.NoError(t, err)
	assert.Contains(t, out, "low_stock")
	assert.NotContains(t, out, "in_stock")

	prefsOut, _, err := h.run(t, "", "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, prefsOut, `"low_stock"`)
}

func TestLevels_ExportXLSXAArchivo(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "niveles.xlsx")
	_, _, err := h.run(t, "", "levels", "--export", "xlsx", "-o", path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")), "xlsx es un zip")
}

func TestAdjust_EnviaUnPATCH(t *testing.T) {
	h := newHarness(t)
	out, stderr, err := h.run(t, "", "adjust", "--level", "42", "--delta", "-5", "--reason", "damaged")
	require.NoError(t, err)

	patches := h.server.of(http.MethodPatch)
	require.Len(t, patches, 1)
	assert.Equal(t, "/api/v1/inventory/levels/42/", patches[0].Path)
	assert.JSONEq(t, `{"quantity": -5, "adjustment_reason": "damaged"}`, patches[0].Body)
	assert.Contains(t, out, "15")
	assert.Contains(t, stderr, "[success]")
}

func TestAdjust_FormularioInvalidoNoEnvia(t *testing.T) {
	h := newHarness(t)
	_, stderr, err := h.run(t, "", "adjust", "--level", "42", "--delta", "0", "--reason", "robo")
	require.Error(t, err)
	assert.Empty(t, h.server.of(http.MethodPatch))
	assert.Equal(t, 1, strings.Count(stderr, "[error]"))
	assert.NotContains(t, stderr, "borrador guardado")
}

func TestTransfer_BorradorSeRetomaTrasFallo(t *testing.T) {
	h := newHarness(t)
	h.server.rejectMoves = true
	_, stderr, err := h.run(t, "", "transfer", "--from", "1", "--to", "2", "--product", "7", "--quantity", "50")
	require.Error(t, err)
	assert.Contains(t, stderr, "borrador guardado")

	h.server.mu.Lock()
	h.server.rejectMoves = false
	h.server.mu.Unlock()

	out, _, err := h.run(t, "", "transfer", "--resume", "--quantity", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "TRF-9")

	posts := h.server.of(http.MethodPost)
	require.Len(t, posts, 2)
	assert.JSONEq(t, `{"from_store_id":1,"to_store_id":2,"product_id":7,"quantity":10,"movement_type":"transfer"}`, posts[1].Body)

	_, stderr, err = h.run(t, "", "transfer", "--resume")
	require.Error(t, err, "el borrador se descartó tras el envío exitoso")
	assert.Contains(t, stderr, "No hay borrador guardado")
}

func TestBulk_ConfirmacionNegativaNoEnvia(t *testing.T) {
	h := newHarness(t)
	_, stderr, err := h.run(t, "n\n", "bulk", "adjust", "--ids", "42,43", "--delta", "-1", "--reason", "damaged")
	require.NoError(t, err)
	assert.Contains(t, stderr, "¿Ajustar 2 niveles en -1 (damaged)?")
	assert.Contains(t, stderr, "Acción cancelada")
	assert.Empty(t, h.server.of(http.MethodPatch))
}

func TestBulk_ConfirmadoAjustaCadaSeleccionado(t *testing.T) {
	h := newHarness(t)
	_, stderr, err := h.run(t, "s\n", "bulk", "adjust", "--all", "--status", "in_stock", "--delta", "2", "--reason", "correction")
	require.NoError(t, err)
	assert.Contains(t, stderr, "3 elementos procesados", "el servidor falso ignora el filtro de estado")
	assert.Len(t, h.server.of(http.MethodPatch), 3)
}

func TestBulk_SinAccionListaDisponibles(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "bulk", "--ids", "42", "--yes")
	require.ErrorIs(t, err, table.ErrNoAction)
	assert.Contains(t, err.Error(), "export_as_csv")
}

func TestBulk_ExportaSeleccion(t *testing.T) {
	h := newHarness(t)
	out, _, err := h.run(t, "", "bulk", "export_as_csv", "--ids", "44", "-y")
	require.NoError(t, err)
	assert.Contains(t, out, `"44","SKU-8","Té"`)
	assert.NotContains(t, out, `"42"`)
}

func TestImportCount_AjustaDiferencias(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "conteo.csv")
	require.NoError(t, os.WriteFile(path, []byte("product_id,store_id,counted\n7,1,18\n7,2,3\n"), 0o600))

	out, _, err := h.run(t, "", "import-count", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ajustados: 1  sin cambios: 1  fallidos: 0")

	patches := h.server.of(http.MethodPatch)
	require.Len(t, patches, 1)
	assert.Equal(t, "/api/v1/inventory/levels/42/", patches[0].Path)
	assert.JSONEq(t, `{"quantity": -2, "adjustment_reason": "physical_count", "notes": "conteo físico, línea 2"}`, patches[0].Body)
}

func TestPrefs_TemaValidado(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "prefs", "set", "theme", "dark")
	require.NoError(t, err)
	_, _, err = h.run(t, "", "prefs", "set", "theme", "sepia")
	require.Error(t, err)

	out, _, err := h.run(t, "", "prefs", "show")
	require.NoError(t, err)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "dark", got["theme"])

	_, _, err = h.run(t, "", "prefs", "set", "colores", "x")
	assert.Error(t, err)
}
