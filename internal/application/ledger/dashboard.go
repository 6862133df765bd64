package ledger

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
)

// Dashboard agrega facturas y abonos por mes calendario sobre todo el
// historial del libro (activas e inactivas: el tablero muestra evolución, no
// deuda vigente). Lectura pura, sin candados.
func (s *Service) Dashboard(ctx context.Context, class entity.LedgerClass, in dto.DashboardRequest) (*dto.DashboardResponse, error) {
	filtro, err := ParseMovementFilter(dto.MovementFilterRequest{
		Proveedor:   in.Proveedor,
		IDFactura:   in.IDFactura,
		FechaInicio: in.FechaInicio,
		FechaFin:    in.FechaFin,
	})
	if err != nil {
		return nil, err
	}

	opCtx, cancel := s.conTimeout(ctx)
	defer cancel()

	movs, _, err := s.cargarMovimientos(opCtx, class)
	if err != nil {
		return nil, err
	}

	facturasPorMes := make(map[string]decimal.Decimal)
	abonosPorMes := make(map[string]decimal.Decimal)
	totalFacturado := decimal.Zero
	totalAbonado := decimal.Zero

	for _, m := range movs {
		if !filtro.cumple(m) {
			continue
		}
		mes := m.Fecha.Format("2006-01")
		switch {
		case m.EsFactura():
			facturasPorMes[mes] = facturasPorMes[mes].Add(m.Total)
			totalFacturado = totalFacturado.Add(m.Total)
		case m.EsAbono():
			abonosPorMes[mes] = abonosPorMes[mes].Add(m.Total)
			totalAbonado = totalAbonado.Add(m.Total)
		}
	}

	meses := make([]string, 0, len(facturasPorMes))
	visto := make(map[string]bool)
	for mes := range facturasPorMes {
		visto[mes] = true
		meses = append(meses, mes)
	}
	for mes := range abonosPorMes {
		if !visto[mes] {
			meses = append(meses, mes)
		}
	}
	sort.Strings(meses)

	resp := &dto.DashboardResponse{
		Meses:          make([]dto.DashboardMonth, 0, len(meses)),
		TotalFacturado: totalFacturado.String(),
		TotalAbonado:   totalAbonado.String(),
	}
	for _, mes := range meses {
		resp.Meses = append(resp.Meses, dto.DashboardMonth{
			Mes:      mes,
			Facturas: facturasPorMes[mes].String(),
			Abonos:   abonosPorMes[mes].String(),
		})
	}
	return resp, nil
}
