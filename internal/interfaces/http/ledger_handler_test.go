package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/contable-pro/internal/application/expenses"
	appledger "github.com/tu-usuario/contable-pro/internal/application/ledger"
	"github.com/tu-usuario/contable-pro/internal/infrastructure/excel"
	apphttp "github.com/tu-usuario/contable-pro/internal/interfaces/http"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp construye la aplicación completa con el router real sobre un
// libro temporal: los tests atraviesan handler, servicio y adaptador Excel.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	store := excel.NewStore(filepath.Join(t.TempDir(), "libro.xlsx"), "", log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:   appledger.NewService(store, log, appledger.Options{}),
		Expenses: expenses.NewService(store, log, false, 0),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_FacturaCreada(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/ledgers/proveedores/movements",
		`{"proveedor":"Acme","detalle":"Factura","fecha":"2024-01-10","obs":"compra","total":"$1.500"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "F-001", body["id_factura"])
	assert.Equal(t, "Activa", body["estado"])
	assert.Equal(t, "1500", body["total"])
}

func TestRecordMovement_AbonoSinFacturaActiva_Retorna422(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/ledgers/proveedores/movements",
		`{"proveedor":"Beta","detalle":"Abono","fecha":"2024-01-10","total":"100"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "SIN_FACTURA_ACTIVA", body["code"])
}

func TestRecordMovement_MontoInvalido_Retorna400(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/ledgers/proveedores/movements",
		`{"proveedor":"Acme","detalle":"Factura","fecha":"2024-01-10","total":"sin monto"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecordMovement_LibroDesconocido_Retorna404(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/ledgers/inventario/movements",
		`{"proveedor":"Acme","detalle":"Factura","fecha":"2024-01-10","total":"100"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListMovements_FiltroYPaginacion(t *testing.T) {
	app := buildTestApp(t)

	for _, cuerpo := range []string{
		`{"proveedor":"Acme","detalle":"Factura","fecha":"2024-01-10","total":"100"}`,
		`{"proveedor":"Acme","detalle":"Abono","fecha":"2024-01-15","total":"50"}`,
		`{"proveedor":"Beta","detalle":"Factura","fecha":"2024-01-20","total":"300"}`,
	} {
		resp := doJSON(t, app, http.MethodPost, "/api/ledgers/proveedores/movements", cuerpo)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, "/api/ledgers/proveedores/movements?proveedor=acme", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Len(t, body["items"], 2)

	// Paginación: limit 1 devuelve una fila y el total completo
	resp = doJSON(t, app, http.MethodGet, "/api/ledgers/proveedores/movements?limit=1", "")
	body = decodeBody(t, resp)
	assert.Len(t, body["items"], 1)
	page := body["page"].(map[string]interface{})
	assert.Equal(t, float64(3), page["total"])
}

func TestEditMovement_Inexistente_Retorna404(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/ledgers/proveedores/movements/42",
		`{"proveedor":"Acme","detalle":"Factura","fecha":"2024-01-10","total":"100"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen y saldo activo
// ──────────────────────────────────────────────────────────────────────────────

func TestSummary_ReflejaMovimientos(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/ledgers/clientes/movements",
		`{"proveedor":"Acme","detalle":"Factura","fecha":"2024-01-10","total":"1000"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, app, http.MethodPost, "/api/ledgers/clientes/movements",
		`{"proveedor":"Acme","detalle":"Abono","fecha":"2024-01-15","total":"400"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/ledgers/clientes/summary", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	fila := items[0].(map[string]interface{})
	assert.Equal(t, "Acme", fila["proveedor"])
	assert.Equal(t, "1000", fila["total_facturas"])
	assert.Equal(t, "400", fila["total_abonos"])
	assert.Equal(t, "600", fila["saldo"])
}

func TestRecalculate_Retorna204(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/ledgers/proveedores/summary/recalculate", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestActiveBalance(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/ledgers/proveedores/movements",
		`{"proveedor":"Acme","detalle":"Factura","fecha":"2024-01-10","total":"1500"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/ledgers/proveedores/entities/Acme/balance", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "F-001", body["id_factura"])
	assert.Equal(t, "1500", body["saldo"])

	// Sin factura activa → 422
	resp = doJSON(t, app, http.MethodGet, "/api/ledgers/proveedores/entities/Beta/balance", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "SIN_FACTURA_ACTIVA", body["code"])
}

func TestAddEntity_DuplicadoRetorna409(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/ledgers/proveedores/entities", `{"nombre":"Acme"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Acme", body["proveedor"])
	assert.Equal(t, "0", body["saldo"])

	resp = doJSON(t, app, http.MethodPost, "/api/ledgers/proveedores/entities", `{"nombre":"acme"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "DUPLICATE", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Gastos
// ──────────────────────────────────────────────────────────────────────────────

func TestExpenses_CicloCompleto(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/expenses/",
		`{"fecha":"2024-03-01","categoria":"Combustible","placa":"ABC-123","conductor":"Luis","precio":"$80.000"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "80000", body["precio"])

	resp = doJSON(t, app, http.MethodPut, "/api/expenses/1",
		`{"fecha":"2024-03-01","categoria":"Combustible","placa":"XYZ-789","conductor":"Luis","precio":"95000"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "XYZ-789", body["placa"])

	resp = doJSON(t, app, http.MethodGet, "/api/expenses/?placa=xyz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Len(t, body["items"], 1)

	resp = doJSON(t, app, http.MethodGet, "/api/expenses/summary", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "95000", body["total_general"])

	resp = doJSON(t, app, http.MethodDelete, "/api/expenses/1", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/expenses/1", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodGet, "/health", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
