package ledger

import (
	"context"
	"fmt"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	domledger "github.com/tu-usuario/contable-pro/internal/domain/ledger"
)

// Edit reescribe en sitio fecha, proveedor, detalle, obs y total de un
// movimiento existente, conservando id, IdFactura y Estado. A diferencia de
// Record no pasa por la transición de factura activa ni por el arrastre de
// saldo: es una corrección puntual seguida de recálculo completo.
func (s *Service) Edit(ctx context.Context, class entity.LedgerClass, id int, in dto.EditMovementRequest) (*entity.Movement, error) {
	if in.Proveedor == "" {
		return nil, fmt.Errorf("%w: proveedor requerido", domain.ErrInvalidInput)
	}
	detalle, ok := entity.ParseDetalle(in.Detalle)
	if !ok {
		return nil, fmt.Errorf("%w: detalle %q (se espera Factura o Abono)", domain.ErrInvalidInput, in.Detalle)
	}
	fecha, err := domledger.NormalizarFecha(in.Fecha)
	if err != nil {
		return nil, err
	}
	total, err := domledger.NormalizarTotal(in.Total, s.opts.AmountLenient)
	if err != nil {
		return nil, err
	}

	l := s.candadosDe(class)
	l.movimientos.Lock()
	defer l.movimientos.Unlock()

	opCtx, cancel := s.conTimeout(ctx)
	defer cancel()

	movs, version, err := s.cargarMovimientos(opCtx, class)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range movs {
		if movs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: movimiento %d", domain.ErrNotFound, id)
	}

	movs[idx].Fecha = domledger.SoloFecha(fecha)
	movs[idx].Proveedor = in.Proveedor
	movs[idx].Detalle = detalle
	movs[idx].Obs = in.Obs
	movs[idx].Total = total
	// IDFactura y Estado quedan como estaban.

	if err := s.guardarMovimientos(opCtx, class, movs, version); err != nil {
		return nil, err
	}

	editado := movs[idx]
	if err := s.recalcularTrasGuardar(ctx, class); err != nil {
		s.log.Error().Err(err).Str("libro", class.Key).
			Msg("movimiento editado pero el recálculo del resumen falló")
		return &editado, fmt.Errorf("%w: %v", domain.ErrResumenDesactualizado, err)
	}
	return &editado, nil
}
