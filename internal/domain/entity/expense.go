package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense una fila del libro de gastos. No participa de la conciliación
// factura/abono: es un registro categorizado con fecha y monto.
type Expense struct {
	ID        int
	Fecha     time.Time
	Categoria string
	Placa     string
	Conductor string
	Precio    decimal.Decimal
}
