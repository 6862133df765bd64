package dto

// RecordMovementRequest alta de un movimiento (factura o abono).
// Total llega crudo tal como lo escribió el usuario ("$1.500", "1500", ...).
type RecordMovementRequest struct {
	Proveedor string `json:"proveedor"`
	Detalle   string `json:"detalle"` // "Factura" | "Abono" (sin distinguir mayúsculas)
	Fecha     string `json:"fecha"`   // YYYY-MM-DD
	Obs       string `json:"obs"`
	Total     string `json:"total"`
}

// EditMovementRequest edición en sitio de un movimiento existente. No pasa por
// la lógica de arrastre: IdFactura y Estado originales se conservan.
type EditMovementRequest struct {
	Proveedor string `json:"proveedor"`
	Detalle   string `json:"detalle"`
	Fecha     string `json:"fecha"`
	Obs       string `json:"obs"`
	Total     string `json:"total"`
}

// MovementResponse una fila del libro en respuestas JSON.
type MovementResponse struct {
	ID        int    `json:"id"`
	Fecha     string `json:"fecha"`
	Proveedor string `json:"proveedor"`
	Detalle   string `json:"detalle"`
	Obs       string `json:"obs"`
	Total     string `json:"total"`
	IDFactura string `json:"id_factura"`
	Estado    string `json:"estado"`
	// ResumenDesactualizado: el movimiento quedó guardado pero el recálculo del
	// resumen falló; reintentar vía POST .../summary/recalculate.
	ResumenDesactualizado bool `json:"resumen_desactualizado,omitempty"`
}

// MovementFilterRequest filtros de listado. Fecha exacta tiene prioridad
// sobre el rango si se envían ambas.
type MovementFilterRequest struct {
	Proveedor   string `query:"proveedor"`
	IDFactura   string `query:"id_factura"`
	Estado      string `query:"estado"`
	Fecha       string `query:"fecha"`
	FechaInicio string `query:"fecha_inicio"`
	FechaFin    string `query:"fecha_fin"`
}

// SummaryResponse una fila del resumen por proveedor. El id es un consecutivo
// de presentación que cambia en cada recálculo.
type SummaryResponse struct {
	ID            int    `json:"id"`
	Proveedor     string `json:"proveedor"`
	TotalFacturas string `json:"total_facturas"`
	TotalAbonos   string `json:"total_abonos"`
	Saldo         string `json:"saldo"`
}

// ActiveBalanceResponse saldo pendiente de la factura activa de un proveedor.
type ActiveBalanceResponse struct {
	Proveedor string `json:"proveedor"`
	IDFactura string `json:"id_factura"`
	Saldo     string `json:"saldo"`
}

// AddProveedorRequest alta de un proveedor/cliente nuevo (fila de resumen en cero).
type AddProveedorRequest struct {
	Nombre string `json:"nombre"`
}

// DashboardRequest filtros del tablero de totales mensuales.
type DashboardRequest struct {
	Proveedor   string `query:"proveedor"`
	IDFactura   string `query:"id_factura"`
	FechaInicio string `query:"fecha_inicio"`
	FechaFin    string `query:"fecha_fin"`
}

// DashboardMonth totales de un mes calendario.
type DashboardMonth struct {
	Mes      string `json:"mes"` // YYYY-MM
	Facturas string `json:"facturas"`
	Abonos   string `json:"abonos"`
}

// DashboardResponse totales mensuales y acumulados del libro.
type DashboardResponse struct {
	Meses          []DashboardMonth `json:"meses"`
	TotalFacturado string           `json:"total_facturado"`
	TotalAbonado   string           `json:"total_abonado"`
}
