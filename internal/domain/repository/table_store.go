package repository

import "context"

// TableStore define el puerto de persistencia tabular del motor. Cada hoja es
// una tabla lógica sin índices; la única primitiva de mutación es reemplazar
// todas las filas de una hoja.
type TableStore interface {
	// Load devuelve todas las filas de datos de la hoja (sin el encabezado) y
	// la versión vigente de la hoja. Hoja o archivo inexistente no es error:
	// devuelve cero filas. Un fallo de lectura se degrada a cero filas (se
	// registra en el log) para no tumbar las operaciones de consulta.
	Load(ctx context.Context, sheet string) (rows [][]string, version int64, err error)

	// Save reemplaza todas las filas de la hoja, escribiendo el libro
	// principal y su copia espejo. version debe ser la devuelta por el Load
	// del que se derivaron las filas; si otra escritura se adelantó devuelve
	// domain.ErrConflict y no toca el libro. Un fallo de escritura del libro
	// principal siempre es error (nunca se descarta una escritura en
	// silencio).
	Save(ctx context.Context, sheet string, headers []string, rows [][]string, version int64) error
}
