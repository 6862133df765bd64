// Package ledger contiene los servicios de dominio puros de la conciliación:
// saldo de factura, factura activa, desactivación y asignación de ids. Operan
// sobre conjuntos de movimientos en memoria; la persistencia es del llamador.
package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// SaldoFactura calcula el saldo pendiente de una factura: suma facturas y
// resta abonos de los movimientos que comparten ese IDFactura. Una factura
// totalmente pagada queda en 0; un sobrepago la deja negativa.
func SaldoFactura(idFactura string, movs []entity.Movement) decimal.Decimal {
	saldo := decimal.Zero
	for _, m := range movs {
		if m.IDFactura != idFactura {
			continue
		}
		switch {
		case m.EsFactura():
			saldo = saldo.Add(m.Total)
		case m.EsAbono():
			saldo = saldo.Sub(m.Total)
		}
	}
	return saldo
}

// FacturaActiva devuelve la única factura con estado Activa del proveedor, o
// nil si no hay ninguna. Más de una factura activa para el mismo proveedor es
// un estado corrupto y se reporta como error en lugar de resolverse en
// silencio.
func FacturaActiva(movs []entity.Movement, proveedor string) (*entity.Movement, error) {
	var activa *entity.Movement
	for i := range movs {
		m := &movs[i]
		if !m.EsFactura() || m.Estado != entity.EstadoActiva || !m.MismoProveedor(proveedor) {
			continue
		}
		if activa != nil {
			return nil, fmt.Errorf("%w: proveedor %q (%s y %s)",
				domain.ErrLedgerCorrupto, proveedor, activa.IDFactura, m.IDFactura)
		}
		activa = m
	}
	return activa, nil
}

// ActivosDe filtra los movimientos con estado Activa del proveedor.
func ActivosDe(movs []entity.Movement, proveedor string) []entity.Movement {
	var out []entity.Movement
	for _, m := range movs {
		if m.Estado == entity.EstadoActiva && m.MismoProveedor(proveedor) {
			out = append(out, m)
		}
	}
	return out
}

// Desactivar marca Inactiva toda fila del proveedor que pertenezca a la
// factura indicada (la factura y sus abonos salen juntos del resumen activo).
// Filas ya inactivas no se tocan. Muta y devuelve el mismo slice.
func Desactivar(movs []entity.Movement, proveedor, idFactura string) []entity.Movement {
	for i := range movs {
		if movs[i].MismoProveedor(proveedor) && movs[i].IDFactura == idFactura &&
			movs[i].Estado == entity.EstadoActiva {
			movs[i].Estado = entity.EstadoInactiva
		}
	}
	return movs
}

// NuevoIDFactura genera el siguiente consecutivo F-NNN del proveedor. Recorre
// todo el historial (activas e inactivas) para no reutilizar números aunque
// la factura mayor ya esté cerrada.
func NuevoIDFactura(movs []entity.Movement, proveedor string) string {
	max := 0
	for _, m := range movs {
		if !m.MismoProveedor(proveedor) {
			continue
		}
		n, ok := numeroFactura(m.IDFactura)
		if ok && n > max {
			max = n
		}
	}
	return fmt.Sprintf("F-%03d", max+1)
}

func numeroFactura(id string) (int, bool) {
	if !strings.HasPrefix(id, "F-") {
		return 0, false
	}
	n, err := strconv.Atoi(id[2:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// SiguienteID asigna el próximo id de fila: max(ids del libro) + 1, global por
// hoja (no por proveedor).
func SiguienteID(movs []entity.Movement) int {
	max := 0
	for _, m := range movs {
		if m.ID > max {
			max = m.ID
		}
	}
	return max + 1
}
