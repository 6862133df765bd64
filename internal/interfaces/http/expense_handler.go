package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/application/expenses"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	domledger "github.com/tu-usuario/contable-pro/internal/domain/ledger"
)

// ExpenseHandler maneja las peticiones HTTP del libro de gastos.
type ExpenseHandler struct {
	svc *expenses.Service
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(svc *expenses.Service) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

func expenseResponse(g entity.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:        g.ID,
		Fecha:     g.Fecha.Format(domledger.FormatoFecha),
		Categoria: g.Categoria,
		Placa:     g.Placa,
		Conductor: g.Conductor,
		Precio:    g.Precio.String(),
	}
}

// Add registra un gasto.
// POST /api/expenses
func (h *ExpenseHandler) Add(c *fiber.Ctx) error {
	var in dto.ExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	gasto, err := h.svc.Add(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(expenseResponse(*gasto))
}

// Edit reescribe un gasto existente.
// PUT /api/expenses/:id
func (h *ExpenseHandler) Edit(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.ExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	gasto, err := h.svc.Edit(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(expenseResponse(*gasto))
}

// Delete elimina un gasto.
// DELETE /api/expenses/:id
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.svc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List lista gastos con filtros.
// GET /api/expenses
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	var filtros dto.ExpenseFilterRequest
	if err := c.QueryParser(&filtros); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	filter, err := expenses.ParseFilter(filtros)
	if err != nil {
		return respondError(c, err)
	}
	gastos, err := h.svc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.ExpenseResponse, 0, len(gastos))
	for _, g := range gastos {
		items = append(items, expenseResponse(g))
	}
	return c.JSON(fiber.Map{"items": items})
}

// Summary resumen de gastos por categoría y mes.
// GET /api/expenses/summary
func (h *ExpenseHandler) Summary(c *fiber.Ctx) error {
	var filtros dto.ExpenseFilterRequest
	if err := c.QueryParser(&filtros); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	filter, err := expenses.ParseFilter(filtros)
	if err != nil {
		return respondError(c, err)
	}
	resumen, err := h.svc.Resumen(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resumen)
}
