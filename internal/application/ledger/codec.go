package ledger

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	domledger "github.com/tu-usuario/contable-pro/internal/domain/ledger"
)

// Encabezados de las hojas, en el orden de columnas del libro original.
var (
	encabezadosMovimientos = []string{"Id", "Fecha", "Proveedor", "Detalle", "Obs", "Total", "IdFactura", "Estado"}
	encabezadosResumen     = []string{"Id", "Proveedor", "Total Facturas", "Total Abonos", "Saldo"}
)

// Formatos de fecha aceptados al leer celdas. El primero es el que escribe
// este módulo; el resto cubre libros escritos a mano o por Excel.
var formatosFechaCelda = []string{
	domledger.FormatoFecha,
	"2006-01-02 15:04:05",
	"1/2/06 15:04",
	"01-02-06",
	"02/01/2006",
}

func parseFechaCelda(s string) (time.Time, bool) {
	for _, layout := range formatosFechaCelda {
		if t, err := time.Parse(layout, s); err == nil {
			return domledger.SoloFecha(t), true
		}
	}
	return time.Time{}, false
}

// decodeMovimientos convierte filas crudas en movimientos. Filas cortas se
// completan con celdas vacías y filas sin id numérico se descartan, igual que
// hacía la aplicación original con su libro heredado.
func decodeMovimientos(rows [][]string) []entity.Movement {
	movs := make([]entity.Movement, 0, len(rows))
	for _, row := range rows {
		for len(row) < len(encabezadosMovimientos) {
			row = append(row, "")
		}
		id, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		fecha, _ := parseFechaCelda(row[1])
		total, err := decimal.NewFromString(row[5])
		if err != nil {
			total = decimal.Zero
		}
		detalle, _ := entity.ParseDetalle(row[3])
		estado, ok := entity.ParseEstado(row[7])
		if !ok {
			estado = entity.EstadoActiva
		}
		movs = append(movs, entity.Movement{
			ID:        id,
			Fecha:     fecha,
			Proveedor: row[2],
			Detalle:   detalle,
			Obs:       row[4],
			Total:     total,
			IDFactura: row[6],
			Estado:    estado,
		})
	}
	return movs
}

func encodeMovimientos(movs []entity.Movement) [][]string {
	rows := make([][]string, 0, len(movs))
	for _, m := range movs {
		rows = append(rows, []string{
			strconv.Itoa(m.ID),
			m.Fecha.Format(domledger.FormatoFecha),
			m.Proveedor,
			string(m.Detalle),
			m.Obs,
			m.Total.String(),
			m.IDFactura,
			string(m.Estado),
		})
	}
	return rows
}

func decodeResumen(rows [][]string) []entity.Summary {
	out := make([]entity.Summary, 0, len(rows))
	for _, row := range rows {
		for len(row) < len(encabezadosResumen) {
			row = append(row, "")
		}
		id, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		out = append(out, entity.Summary{
			ID:            id,
			Proveedor:     row[1],
			TotalFacturas: decimalOCero(row[2]),
			TotalAbonos:   decimalOCero(row[3]),
			Saldo:         decimalOCero(row[4]),
		})
	}
	return out
}

func encodeResumen(resumen []entity.Summary) [][]string {
	rows := make([][]string, 0, len(resumen))
	for _, r := range resumen {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.Proveedor,
			r.TotalFacturas.String(),
			r.TotalAbonos.String(),
			r.Saldo.String(),
		})
	}
	return rows
}

func decimalOCero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
