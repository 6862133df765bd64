package dto

// ExpenseRequest alta o edición de un gasto.
type ExpenseRequest struct {
	Fecha     string `json:"fecha"` // YYYY-MM-DD
	Categoria string `json:"categoria"`
	Placa     string `json:"placa"`
	Conductor string `json:"conductor"`
	Precio    string `json:"precio"`
}

// ExpenseResponse una fila del libro de gastos.
type ExpenseResponse struct {
	ID        int    `json:"id"`
	Fecha     string `json:"fecha"`
	Categoria string `json:"categoria"`
	Placa     string `json:"placa"`
	Conductor string `json:"conductor"`
	Precio    string `json:"precio"`
}

// ExpenseFilterRequest filtros del listado de gastos. Fecha exacta tiene
// prioridad sobre el rango.
type ExpenseFilterRequest struct {
	Categoria   string `query:"categoria"`
	Placa       string `query:"placa"`
	Fecha       string `query:"fecha"`
	FechaInicio string `query:"fecha_inicio"`
	FechaFin    string `query:"fecha_fin"`
}

// ExpenseCategoryTotal total y participación de una categoría.
type ExpenseCategoryTotal struct {
	Categoria  string  `json:"categoria"`
	Total      string  `json:"total"`
	Porcentaje float64 `json:"porcentaje"`
}

// ExpenseMonthTotal total de gastos de un mes calendario.
type ExpenseMonthTotal struct {
	Mes   string `json:"mes"` // YYYY-MM
	Total string `json:"total"`
}

// ExpenseSummaryResponse resumen de gastos por categoría y por mes.
type ExpenseSummaryResponse struct {
	PorCategoria []ExpenseCategoryTotal `json:"por_categoria"`
	PorMes       []ExpenseMonthTotal    `json:"por_mes"`
	TotalGeneral string                 `json:"total_general"`
}
