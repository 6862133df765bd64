package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// Recalculate reconstruye el resumen del libro desde cero: solo cuentan las
// filas con estado Activa, agrupadas por proveedor en orden de primera
// aparición, con ids consecutivos 1..n reasignados. Es una función pura de
// los movimientos, idempotente y segura de reintentar; llamadas concurrentes
// para el mismo libro se funden en un único cómputo.
func (s *Service) Recalculate(ctx context.Context, class entity.LedgerClass) error {
	_, err, _ := s.recalc.Do(class.Key, func() (interface{}, error) {
		return nil, s.recalcular(ctx, class)
	})
	return err
}

// recalcularTrasGuardar recalcula después de persistir una escritura. Descarta
// cualquier pasada en vuelo antes de computar: una pasada que cargó los
// movimientos antes de esta escritura produciría un resumen sin el movimiento
// recién guardado, y unirse a ella reportaría éxito sobre un resumen viciado.
func (s *Service) recalcularTrasGuardar(ctx context.Context, class entity.LedgerClass) error {
	s.recalc.Forget(class.Key)
	return s.Recalculate(ctx, class)
}

func (s *Service) recalcular(ctx context.Context, class entity.LedgerClass) error {
	l := s.candadosDe(class)
	l.resumen.Lock()
	defer l.resumen.Unlock()

	opCtx, cancel := s.conTimeout(ctx)
	defer cancel()

	movs, _, err := s.cargarMovimientos(opCtx, class)
	if err != nil {
		return err
	}

	resumen := ResumirActivos(movs)

	_, version, err := s.store.Load(opCtx, class.SheetResumen)
	if err != nil {
		return err
	}
	return s.store.Save(opCtx, class.SheetResumen, encabezadosResumen, encodeResumen(resumen), version)
}

// ResumirActivos agrega los movimientos activos por proveedor: total de
// facturas, total de abonos y saldo = facturas - abonos. Proveedores sin
// movimientos activos no aparecen (su fila solo existe si se dio de alta
// explícitamente y no ha registrado movimientos todavía).
func ResumirActivos(movs []entity.Movement) []entity.Summary {
	type acumulado struct {
		facturas decimal.Decimal
		abonos   decimal.Decimal
	}
	totales := make(map[string]*acumulado)
	var orden []string

	for _, m := range movs {
		if m.Estado != entity.EstadoActiva {
			continue
		}
		acc, visto := totales[m.Proveedor]
		if !visto {
			acc = &acumulado{facturas: decimal.Zero, abonos: decimal.Zero}
			totales[m.Proveedor] = acc
			orden = append(orden, m.Proveedor)
		}
		switch {
		case m.EsFactura():
			acc.facturas = acc.facturas.Add(m.Total)
		case m.EsAbono():
			acc.abonos = acc.abonos.Add(m.Total)
		}
	}

	resumen := make([]entity.Summary, 0, len(orden))
	for i, proveedor := range orden {
		acc := totales[proveedor]
		resumen = append(resumen, entity.Summary{
			ID:            i + 1,
			Proveedor:     proveedor,
			TotalFacturas: acc.facturas,
			TotalAbonos:   acc.abonos,
			Saldo:         acc.facturas.Sub(acc.abonos),
		})
	}
	return resumen
}
