package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	domledger "github.com/tu-usuario/contable-pro/internal/domain/ledger"
)

// Record registra un movimiento nuevo aplicando la máquina de estados del
// libro: una factura nueva sustituye a la activa y arrastra su saldo; un
// abono solo puede aplicarse contra una factura activa. La validación ocurre
// antes de cualquier escritura y el guardado es todo-o-nada: si la hoja no se
// puede reescribir, la mutación en memoria se descarta.
func (s *Service) Record(ctx context.Context, class entity.LedgerClass, in dto.RecordMovementRequest) (*entity.Movement, error) {
	proveedor := in.Proveedor
	if proveedor == "" {
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

	var nuevo entity.Movement
	switch detalle {
	case entity.DetalleFactura:
		nuevo, movs, err = s.prepararFactura(movs, proveedor, in.Obs, total)
	case entity.DetalleAbono:
		nuevo, movs, err = s.prepararAbono(movs, proveedor, in.Obs, total)
	}
	if err != nil {
		return nil, err
	}
	nuevo.Fecha = domledger.SoloFecha(fecha)
	movs = append(movs, nuevo)

	if err := s.guardarMovimientos(opCtx, class, movs, version); err != nil {
		return nil, err
	}

	// El resumen es una vista materializada recomputable: si el recálculo
	// falla el movimiento ya quedó persistido y se devuelve junto con
	// ErrResumenDesactualizado para que el llamador sepa que debe reintentar
	// vía Recalculate.
	if err := s.recalcularTrasGuardar(ctx, class); err != nil {
		s.log.Error().Err(err).Str("libro", class.Key).
			Msg("movimiento guardado pero el recálculo del resumen falló")
		return &nuevo, fmt.Errorf("%w: %v", domain.ErrResumenDesactualizado, err)
	}

	return &nuevo, nil
}

// prepararFactura resuelve la transición de factura activa: calcula el saldo
// de la anterior sobre sus filas activas, la desactiva siempre (la nueva la
// sustituye) y arrastra el saldo no cero hacia el total de la nueva, dejando
// la aritmética anotada en Obs.
func (s *Service) prepararFactura(movs []entity.Movement, proveedor, obs string, total decimal.Decimal) (entity.Movement, []entity.Movement, error) {
	activa, err := domledger.FacturaActiva(movs, proveedor)
	if err != nil {
		return entity.Movement{}, nil, err
	}

	saldoAnterior := decimal.Zero
	if activa != nil {
		activos := domledger.ActivosDe(movs, proveedor)
		saldoAnterior = domledger.SaldoFactura(activa.IDFactura, activos)
		movs = domledger.Desactivar(movs, proveedor, activa.IDFactura)
	}

	if !saldoAnterior.IsZero() {
		mensaje := fmt.Sprintf("Total %s : %s", obs, total.String())
		nuevoTotal := total.Add(saldoAnterior)
		obs = fmt.Sprintf("%s + saldo anterior %s = total %s", mensaje, saldoAnterior.String(), nuevoTotal.String())
		if nuevoTotal.IsNegative() {
			return entity.Movement{}, nil, fmt.Errorf("%w: saldo arrastrado %s", domain.ErrSaldoInsuficiente, saldoAnterior.String())
		}
		total = nuevoTotal
	}

	nuevo := entity.Movement{
		ID:        domledger.SiguienteID(movs),
		Proveedor: proveedor,
		Detalle:   entity.DetalleFactura,
		Obs:       obs,
		Total:     total,
		IDFactura: domledger.NuevoIDFactura(movs, proveedor),
		Estado:    entity.EstadoActiva,
	}
	return nuevo, movs, nil
}

// prepararAbono exige una factura activa y referencia su IdFactura.
func (s *Service) prepararAbono(movs []entity.Movement, proveedor, obs string, total decimal.Decimal) (entity.Movement, []entity.Movement, error) {
	activa, err := domledger.FacturaActiva(movs, proveedor)
	if err != nil {
		return entity.Movement{}, nil, err
	}
	if activa == nil {
		return entity.Movement{}, nil, fmt.Errorf("%w: proveedor %q", domain.ErrSinFacturaActiva, proveedor)
	}

	nuevo := entity.Movement{
		ID:        domledger.SiguienteID(movs),
		Proveedor: proveedor,
		Detalle:   entity.DetalleAbono,
		Obs:       obs,
		Total:     total,
		IDFactura: activa.IDFactura,
		Estado:    entity.EstadoActiva,
	}
	return nuevo, movs, nil
}
