// Package ledger implementa el motor de conciliación: registro y edición de
// movimientos, seguimiento de la factura activa y recálculo del resumen.
// Toda operación relee el libro completo; no hay estado compartido entre
// peticiones más allá de los candados de escritura.
package ledger

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

// Options configuración del motor.
type Options struct {
	// AmountLenient replica la tolerancia de la aplicación original: montos
	// sin dígitos se convierten a cero en lugar de rechazarse.
	AmountLenient bool
	// StoreTimeout acota cada operación contra el almacenamiento.
	StoreTimeout time.Duration
}

// candados de escritura de un libro: uno para la hoja de movimientos y otro
// para la de resumen. El orden de adquisición es siempre movimientos → resumen.
type candados struct {
	movimientos sync.Mutex
	resumen     sync.Mutex
}

// Service motor de conciliación, genérico sobre la clase de libro
// (proveedores | clientes). Escritor único por libro dentro del proceso; el
// sello de versión del TableStore cubre el caso de un segundo proceso.
type Service struct {
	store repository.TableStore
	log   *logger.Logger
	opts  Options

	locks  map[string]*candados
	recalc singleflight.Group
}

// NewService construye el motor.
func NewService(store repository.TableStore, log *logger.Logger, opts Options) *Service {
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = 5 * time.Second
	}
	return &Service{
		store: store,
		log:   log,
		opts:  opts,
		locks: map[string]*candados{
			entity.LedgerProveedores.Key: {},
			entity.LedgerClientes.Key:    {},
		},
	}
}

func (s *Service) candadosDe(class entity.LedgerClass) *candados {
	return s.locks[class.Key]
}

func (s *Service) conTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.StoreTimeout)
}

// cargarMovimientos lee y decodifica la hoja de movimientos del libro.
func (s *Service) cargarMovimientos(ctx context.Context, class entity.LedgerClass) ([]entity.Movement, int64, error) {
	rows, version, err := s.store.Load(ctx, class.SheetMovimientos)
	if err != nil {
		return nil, 0, err
	}
	return decodeMovimientos(rows), version, nil
}

// guardarMovimientos reescribe la hoja de movimientos completa.
func (s *Service) guardarMovimientos(ctx context.Context, class entity.LedgerClass, movs []entity.Movement, version int64) error {
	return s.store.Save(ctx, class.SheetMovimientos, encabezadosMovimientos, encodeMovimientos(movs), version)
}
