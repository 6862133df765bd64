package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	domledger "github.com/tu-usuario/contable-pro/internal/domain/ledger"
)

// MovementFilter criterios de filtrado ya normalizados.
type MovementFilter struct {
	Proveedor   string
	IDFactura   string
	Estado      string
	Fecha       *time.Time
	FechaInicio *time.Time
	FechaFin    *time.Time
}

// ParseMovementFilter valida y normaliza los filtros crudos del request.
func ParseMovementFilter(in dto.MovementFilterRequest) (MovementFilter, error) {
	f := MovementFilter{
		Proveedor: strings.TrimSpace(in.Proveedor),
		IDFactura: strings.TrimSpace(in.IDFactura),
		Estado:    strings.TrimSpace(in.Estado),
	}
	parse := func(s string) (*time.Time, error) {
		if s == "" {
			return nil, nil
		}
		t, err := domledger.NormalizarFecha(s)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	var err error
	if f.Fecha, err = parse(in.Fecha); err != nil {
		return MovementFilter{}, err
	}
	if f.FechaInicio, err = parse(in.FechaInicio); err != nil {
		return MovementFilter{}, err
	}
	if f.FechaFin, err = parse(in.FechaFin); err != nil {
		return MovementFilter{}, err
	}
	return f, nil
}

func (f MovementFilter) cumple(m entity.Movement) bool {
	if f.Proveedor != "" && !m.MismoProveedor(f.Proveedor) {
		return false
	}
	if f.IDFactura != "" && !strings.EqualFold(m.IDFactura, f.IDFactura) {
		return false
	}
	if f.Estado != "" && !strings.EqualFold(string(m.Estado), f.Estado) {
		return false
	}
	// La fecha exacta tiene prioridad sobre el rango.
	if f.Fecha != nil {
		return m.Fecha.Equal(*f.Fecha)
	}
	if f.FechaInicio != nil && m.Fecha.Before(*f.FechaInicio) {
		return false
	}
	if f.FechaFin != nil && m.Fecha.After(*f.FechaFin) {
		return false
	}
	return true
}

// ListMovements devuelve los movimientos que cumplen el filtro, ordenados por
// fecha descendente (el más reciente primero).
func (s *Service) ListMovements(ctx context.Context, class entity.LedgerClass, filter MovementFilter) ([]entity.Movement, error) {
	opCtx, cancel := s.conTimeout(ctx)
	defer cancel()

	movs, _, err := s.cargarMovimientos(opCtx, class)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Movement, 0, len(movs))
	for _, m := range movs {
		if filter.cumple(m) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, nil
}

// ListSummary devuelve el resumen del libro, opcionalmente filtrado por
// proveedor (comparación sin distinguir mayúsculas).
func (s *Service) ListSummary(ctx context.Context, class entity.LedgerClass, proveedor string) ([]entity.Summary, error) {
	opCtx, cancel := s.conTimeout(ctx)
	defer cancel()

	rows, _, err := s.store.Load(opCtx, class.SheetResumen)
	if err != nil {
		return nil, err
	}
	resumen := decodeResumen(rows)
	if proveedor == "" {
		return resumen, nil
	}
	out := make([]entity.Summary, 0, 1)
	for _, r := range resumen {
		if strings.EqualFold(strings.TrimSpace(r.Proveedor), strings.TrimSpace(proveedor)) {
			out = append(out, r)
		}
	}
	return out, nil
}

// SaldoActivo saldo pendiente de la factura activa de un proveedor.
type SaldoActivo struct {
	Proveedor string
	IDFactura string
	Saldo     decimal.Decimal
}

// SaldoFacturaActiva localiza la factura activa del proveedor y calcula su
// saldo sobre las filas activas. Sin factura activa devuelve
// domain.ErrSinFacturaActiva.
func (s *Service) SaldoFacturaActiva(ctx context.Context, class entity.LedgerClass, proveedor string) (*SaldoActivo, error) {
	opCtx, cancel := s.conTimeout(ctx)
	defer cancel()

	movs, _, err := s.cargarMovimientos(opCtx, class)
	if err != nil {
		return nil, err
	}
	activa, err := domledger.FacturaActiva(movs, proveedor)
	if err != nil {
		return nil, err
	}
	if activa == nil {
		return nil, fmt.Errorf("%w: proveedor %q", domain.ErrSinFacturaActiva, proveedor)
	}
	saldo := domledger.SaldoFactura(activa.IDFactura, domledger.ActivosDe(movs, proveedor))
	return &SaldoActivo{Proveedor: activa.Proveedor, IDFactura: activa.IDFactura, Saldo: saldo}, nil
}

// AddProveedor da de alta un proveedor/cliente nuevo con una fila de resumen
// en cero (bootstrap). El nombre se compara sin distinguir mayúsculas y se
// guarda tal cual se recibió.
func (s *Service) AddProveedor(ctx context.Context, class entity.LedgerClass, nombre string) (*entity.Summary, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}

	l := s.candadosDe(class)
	l.resumen.Lock()
	defer l.resumen.Unlock()

	opCtx, cancel := s.conTimeout(ctx)
	defer cancel()

	rows, version, err := s.store.Load(opCtx, class.SheetResumen)
	if err != nil {
		return nil, err
	}
	resumen := decodeResumen(rows)

	maxID := 0
	for _, r := range resumen {
		if strings.EqualFold(strings.TrimSpace(r.Proveedor), nombre) {
			return nil, fmt.Errorf("%w: proveedor %q", domain.ErrDuplicate, nombre)
		}
		if r.ID > maxID {
			maxID = r.ID
		}
	}

	fila := entity.Summary{
		ID:            maxID + 1,
		Proveedor:     nombre,
		TotalFacturas: decimal.Zero,
		TotalAbonos:   decimal.Zero,
		Saldo:         decimal.Zero,
	}
	resumen = append(resumen, fila)

	if err := s.store.Save(opCtx, class.SheetResumen, encabezadosResumen, encodeResumen(resumen), version); err != nil {
		return nil, err
	}
	return &fila, nil
}
