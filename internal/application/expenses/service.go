// Package expenses implementa el libro de gastos: registros categorizados con
// fecha y monto, sin dualidad factura/abono ni conciliación. Reusa el mismo
// patrón de almacenamiento leer-todo/reescribir-todo del motor de libros.
package expenses

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/contable-pro/internal/application/dto"
	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	domledger "github.com/tu-usuario/contable-pro/internal/domain/ledger"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

var encabezadosGastos = []string{"Id", "Fecha", "Categoria", "Placa", "Conductor", "Precio"}

// Service operaciones del libro de gastos. Escritor único dentro del proceso.
type Service struct {
	store   repository.TableStore
	log     *logger.Logger
	lenient bool
	timeout time.Duration

	mu sync.Mutex
}

// NewService construye el servicio de gastos.
func NewService(store repository.TableStore, log *logger.Logger, lenient bool, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{store: store, log: log, lenient: lenient, timeout: timeout}
}

// Add registra un gasto nuevo con id max+1.
func (s *Service) Add(ctx context.Context, in dto.ExpenseRequest) (*entity.Expense, error) {
	gasto, err := s.validar(in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	gastos, version, err := s.cargar(opCtx)
	if err != nil {
		return nil, err
	}

	maxID := 0
	for _, g := range gastos {
		if g.ID > maxID {
			maxID = g.ID
		}
	}
	gasto.ID = maxID + 1
	gastos = append(gastos, *gasto)

	if err := s.guardar(opCtx, gastos, version); err != nil {
		return nil, err
	}
	s.log.Debug().Int("id", gasto.ID).Str("categoria", gasto.Categoria).Msg("gasto registrado")
	return gasto, nil
}

// Edit reescribe un gasto en sitio conservando su id.
func (s *Service) Edit(ctx context.Context, id int, in dto.ExpenseRequest) (*entity.Expense, error) {
	gasto, err := s.validar(in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	gastos, version, err := s.cargar(opCtx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range gastos {
		if gastos[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: gasto %d", domain.ErrNotFound, id)
	}
	gasto.ID = id
	gastos[idx] = *gasto

	if err := s.guardar(opCtx, gastos, version); err != nil {
		return nil, err
	}
	return gasto, nil
}

// Delete elimina un gasto por id.
func (s *Service) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	gastos, version, err := s.cargar(opCtx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range gastos {
		if gastos[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: gasto %d", domain.ErrNotFound, id)
	}
	gastos = append(gastos[:idx], gastos[idx+1:]...)

	return s.guardar(opCtx, gastos, version)
}

// Filter criterios de listado de gastos.
type Filter struct {
	Categoria   string
	Placa       string
	Fecha       *time.Time
	FechaInicio *time.Time
	FechaFin    *time.Time
}

// ParseFilter valida y normaliza los filtros crudos del request.
func ParseFilter(in dto.ExpenseFilterRequest) (Filter, error) {
	f := Filter{
		Categoria: strings.TrimSpace(in.Categoria),
		Placa:     strings.TrimSpace(in.Placa),
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
		return Filter{}, err
	}
	if f.FechaInicio, err = parse(in.FechaInicio); err != nil {
		return Filter{}, err
	}
	if f.FechaFin, err = parse(in.FechaFin); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func (f Filter) cumple(g entity.Expense) bool {
	if f.Categoria != "" && !strings.EqualFold(g.Categoria, f.Categoria) {
		return false
	}
	// La placa filtra por subcadena, como el buscador original.
	if f.Placa != "" && !strings.Contains(strings.ToLower(g.Placa), strings.ToLower(f.Placa)) {
		return false
	}
	if f.Fecha != nil {
		return g.Fecha.Equal(*f.Fecha)
	}
	if f.FechaInicio != nil && g.Fecha.Before(*f.FechaInicio) {
		return false
	}
	if f.FechaFin != nil && g.Fecha.After(*f.FechaFin) {
		return false
	}
	return true
}

// List devuelve los gastos que cumplen el filtro, ordenados por fecha
// ascendente.
func (s *Service) List(ctx context.Context, filter Filter) ([]entity.Expense, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	gastos, _, err := s.cargar(opCtx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Expense, 0, len(gastos))
	for _, g := range gastos {
		if filter.cumple(g) {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Fecha.Before(out[j].Fecha) })
	return out, nil
}

// Resumen totales por categoría (con participación porcentual) y por mes.
func (s *Service) Resumen(ctx context.Context, filter Filter) (*dto.ExpenseSummaryResponse, error) {
	gastos, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	porCategoria := make(map[string]decimal.Decimal)
	porMes := make(map[string]decimal.Decimal)
	var categorias, meses []string
	total := decimal.Zero

	for _, g := range gastos {
		if _, visto := porCategoria[g.Categoria]; !visto {
			categorias = append(categorias, g.Categoria)
		}
		porCategoria[g.Categoria] = porCategoria[g.Categoria].Add(g.Precio)

		mes := g.Fecha.Format("2006-01")
		if _, visto := porMes[mes]; !visto {
			meses = append(meses, mes)
		}
		porMes[mes] = porMes[mes].Add(g.Precio)

		total = total.Add(g.Precio)
	}
	sort.Strings(meses)

	resp := &dto.ExpenseSummaryResponse{TotalGeneral: total.String()}
	for _, cat := range categorias {
		porcentaje := 0.0
		if !total.IsZero() {
			porcentaje, _ = porCategoria[cat].Div(total).Mul(decimal.NewFromInt(100)).Float64()
		}
		resp.PorCategoria = append(resp.PorCategoria, dto.ExpenseCategoryTotal{
			Categoria:  cat,
			Total:      porCategoria[cat].String(),
			Porcentaje: porcentaje,
		})
	}
	for _, mes := range meses {
		resp.PorMes = append(resp.PorMes, dto.ExpenseMonthTotal{Mes: mes, Total: porMes[mes].String()})
	}
	return resp, nil
}

func (s *Service) validar(in dto.ExpenseRequest) (*entity.Expense, error) {
	if strings.TrimSpace(in.Categoria) == "" {
		return nil, fmt.Errorf("%w: categoría requerida", domain.ErrInvalidInput)
	}
	fecha, err := domledger.NormalizarFecha(in.Fecha)
	if err != nil {
		return nil, err
	}
	precio, err := domledger.NormalizarTotal(in.Precio, s.lenient)
	if err != nil {
		return nil, err
	}
	return &entity.Expense{
		Fecha:     domledger.SoloFecha(fecha),
		Categoria: strings.TrimSpace(in.Categoria),
		Placa:     strings.TrimSpace(in.Placa),
		Conductor: strings.TrimSpace(in.Conductor),
		Precio:    precio,
	}, nil
}

func (s *Service) cargar(ctx context.Context) ([]entity.Expense, int64, error) {
	rows, version, err := s.store.Load(ctx, entity.SheetGastos)
	if err != nil {
		return nil, 0, err
	}
	gastos := make([]entity.Expense, 0, len(rows))
	for _, row := range rows {
		for len(row) < len(encabezadosGastos) {
			row = append(row, "")
		}
		id, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		fecha, _ := domledger.NormalizarFecha(row[1])
		precio, err := decimal.NewFromString(row[5])
		if err != nil {
			precio = decimal.Zero
		}
		gastos = append(gastos, entity.Expense{
			ID:        id,
			Fecha:     fecha,
			Categoria: row[2],
			Placa:     row[3],
			Conductor: row[4],
			Precio:    precio,
		})
	}
	return gastos, version, nil
}

func (s *Service) guardar(ctx context.Context, gastos []entity.Expense, version int64) error {
	rows := make([][]string, 0, len(gastos))
	for _, g := range gastos {
		rows = append(rows, []string{
			strconv.Itoa(g.ID),
			g.Fecha.Format(domledger.FormatoFecha),
			g.Categoria,
			g.Placa,
			g.Conductor,
			g.Precio.String(),
		})
	}
	return s.store.Save(ctx, entity.SheetGastos, encabezadosGastos, rows, version)
}
