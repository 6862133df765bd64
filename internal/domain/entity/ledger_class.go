package entity

// LedgerClass variante cerrada que identifica un libro de movimientos
// (proveedores o clientes) y el par de hojas que lo respaldan. El motor no
// conoce nada de presentación: solo nombres de hojas.
type LedgerClass struct {
	// Key identificador estable en URLs y logs: "proveedores" | "clientes".
	Key string
	// SheetMovimientos hoja con las filas de movimientos.
	SheetMovimientos string
	// SheetResumen hoja con el resumen materializado.
	SheetResumen string
}

// Los nombres de hoja provienen del libro de la aplicación original.
var (
	LedgerProveedores = LedgerClass{
		Key:              "proveedores",
		SheetMovimientos: "Proveedores",
		SheetResumen:     "Resumen",
	}
	LedgerClientes = LedgerClass{
		Key:              "clientes",
		SheetMovimientos: "ProveedoresCliente",
		SheetResumen:     "ResumenCliente",
	}
)

// SheetGastos hoja del libro de gastos (sin resumen materializado).
const SheetGastos = "Gastos"

// ParseLedgerClass resuelve la clase por su Key.
func ParseLedgerClass(key string) (LedgerClass, bool) {
	switch key {
	case LedgerProveedores.Key:
		return LedgerProveedores, true
	case LedgerClientes.Key:
		return LedgerClientes, true
	}
	return LedgerClass{}, false
}
