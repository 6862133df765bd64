package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/contable-pro/internal/application/expenses"
	appledger "github.com/tu-usuario/contable-pro/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger   *appledger.Service
	Expenses *expenses.Service
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Libros de proveedores y clientes (:class ∈ proveedores | clientes)
	ledgers := api.Group("/ledgers/:class")
	ledgerHandler := NewLedgerHandler(deps.Ledger)
	ledgers.Post("/movements", ledgerHandler.Record)
	ledgers.Get("/movements", ledgerHandler.List)
	ledgers.Put("/movements/:id", ledgerHandler.Edit)
	ledgers.Get("/summary", ledgerHandler.Summary)
	ledgers.Post("/summary/recalculate", ledgerHandler.Recalculate)
	ledgers.Get("/entities/:nombre/balance", ledgerHandler.ActiveBalance)
	ledgers.Post("/entities", ledgerHandler.AddEntity)
	ledgers.Get("/dashboard", ledgerHandler.Dashboard)

	// Libro de gastos
	gastos := api.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.Expenses)
	gastos.Post("/", expenseHandler.Add)
	gastos.Get("/", expenseHandler.List)
	gastos.Get("/summary", expenseHandler.Summary)
	gastos.Put("/:id", expenseHandler.Edit)
	gastos.Delete("/:id", expenseHandler.Delete)
}
