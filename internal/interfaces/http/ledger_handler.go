package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	appledger "github.com/tu-usuario/contable-pro/internal/application/ledger"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	domledger "github.com/tu-usuario/contable-pro/internal/domain/ledger"
)

// LedgerHandler maneja las peticiones HTTP de los libros de proveedores y
// clientes. La clase del libro viene en la ruta (:class).
type LedgerHandler struct {
	svc *appledger.Service
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(svc *appledger.Service) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

func parseClass(c *fiber.Ctx) (entity.LedgerClass, bool) {
	class, ok := entity.ParseLedgerClass(c.Params("class"))
	if !ok {
		_ = c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "libro desconocido: se espera proveedores o clientes",
		})
	}
	return class, ok
}

func movementResponse(m entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		Fecha:     m.Fecha.Format(domledger.FormatoFecha),
		Proveedor: m.Proveedor,
		Detalle:   string(m.Detalle),
		Obs:       m.Obs,
		Total:     m.Total.String(),
		IDFactura: m.IDFactura,
		Estado:    string(m.Estado),
	}
}

// Record registra un movimiento (factura o abono).
// POST /api/ledgers/:class/movements
func (h *LedgerHandler) Record(c *fiber.Ctx) error {
	class, ok := parseClass(c)
	if !ok {
		return nil
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.svc.Record(c.Context(), class, in)
	if err != nil && (mov == nil || !errors.Is(err, domain.ErrResumenDesactualizado)) {
		return respondError(c, err)
	}
	// El movimiento se guardó aunque el recálculo haya fallado: la respuesta es
	// 201 con la advertencia de resumen desactualizado.
	out := movementResponse(*mov)
	out.ResumenDesactualizado = err != nil
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Edit reescribe un movimiento existente en sitio.
// PUT /api/ledgers/:class/movements/:id
func (h *LedgerHandler) Edit(c *fiber.Ctx) error {
	class, ok := parseClass(c)
	if !ok {
		return nil
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.EditMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.svc.Edit(c.Context(), class, id, in)
	if err != nil && (mov == nil || !errors.Is(err, domain.ErrResumenDesactualizado)) {
		return respondError(c, err)
	}
	out := movementResponse(*mov)
	out.ResumenDesactualizado = err != nil
	return c.JSON(out)
}

// List lista movimientos con filtros y paginación.
// GET /api/ledgers/:class/movements
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	class, ok := parseClass(c)
	if !ok {
		return nil
	}
	var filtros dto.MovementFilterRequest
	if err := c.QueryParser(&filtros); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	filter, err := appledger.ParseMovementFilter(filtros)
	if err != nil {
		return respondError(c, err)
	}
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()

	movs, err := h.svc.ListMovements(c.Context(), class, filter)
	if err != nil {
		return respondError(c, err)
	}

	total := len(movs)
	desde := page.Offset
	if desde > total {
		desde = total
	}
	hasta := desde + page.Limit
	if hasta > total {
		hasta = total
	}
	items := make([]dto.MovementResponse, 0, hasta-desde)
	for _, m := range movs[desde:hasta] {
		items = append(items, movementResponse(m))
	}
	return c.JSON(fiber.Map{
		"items": items,
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// Summary lista el resumen del libro, opcionalmente filtrado por proveedor.
// GET /api/ledgers/:class/summary?proveedor=
func (h *LedgerHandler) Summary(c *fiber.Ctx) error {
	class, ok := parseClass(c)
	if !ok {
		return nil
	}
	resumen, err := h.svc.ListSummary(c.Context(), class, c.Query("proveedor"))
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.SummaryResponse, 0, len(resumen))
	for _, r := range resumen {
		items = append(items, dto.SummaryResponse{
			ID:            r.ID,
			Proveedor:     r.Proveedor,
			TotalFacturas: r.TotalFacturas.String(),
			TotalAbonos:   r.TotalAbonos.String(),
			Saldo:         r.Saldo.String(),
		})
	}
	return c.JSON(fiber.Map{"items": items})
}

// Recalculate fuerza la reconstrucción del resumen del libro.
// POST /api/ledgers/:class/summary/recalculate
func (h *LedgerHandler) Recalculate(c *fiber.Ctx) error {
	class, ok := parseClass(c)
	if !ok {
		return nil
	}
	if err := h.svc.Recalculate(c.Context(), class); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ActiveBalance devuelve la factura activa de un proveedor y su saldo.
// GET /api/ledgers/:class/entities/:nombre/balance
func (h *LedgerHandler) ActiveBalance(c *fiber.Ctx) error {
	class, ok := parseClass(c)
	if !ok {
		return nil
	}
	nombre := c.Params("nombre")
	saldo, err := h.svc.SaldoFacturaActiva(c.Context(), class, nombre)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ActiveBalanceResponse{
		Proveedor: saldo.Proveedor,
		IDFactura: saldo.IDFactura,
		Saldo:     saldo.Saldo.String(),
	})
}

// AddEntity da de alta un proveedor/cliente nuevo con resumen en cero.
// POST /api/ledgers/:class/entities
func (h *LedgerHandler) AddEntity(c *fiber.Ctx) error {
	class, ok := parseClass(c)
	if !ok {
		return nil
	}
	var in dto.AddProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fila, err := h.svc.AddProveedor(c.Context(), class, in.Nombre)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SummaryResponse{
		ID:            fila.ID,
		Proveedor:     fila.Proveedor,
		TotalFacturas: fila.TotalFacturas.String(),
		TotalAbonos:   fila.TotalAbonos.String(),
		Saldo:         fila.Saldo.String(),
	})
}

// Dashboard totales mensuales de facturas y abonos.
// GET /api/ledgers/:class/dashboard
func (h *LedgerHandler) Dashboard(c *fiber.Ctx) error {
	class, ok := parseClass(c)
	if !ok {
		return nil
	}
	var in dto.DashboardRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	resp, err := h.svc.Dashboard(c.Context(), class, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
