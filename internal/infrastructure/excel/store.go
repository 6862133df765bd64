// Package excel implementa el puerto repository.TableStore sobre un libro
// xlsx local (más una copia espejo opcional). No hay actualización parcial:
// cada Save reescribe la hoja completa, igual que la aplicación original.
package excel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/repository"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

var _ repository.TableStore = (*Store)(nil)

// Store adaptador de almacenamiento sobre un libro Excel.
type Store struct {
	path       string
	mirrorPath string
	log        *logger.Logger

	mu sync.Mutex
	// versions sello optimista por hoja dentro del proceso. Protege el patrón
	// leer-transformar-guardar cuando dos llamadores comparten el adaptador.
	versions map[string]int64
}

// NewStore construye el adaptador. mirrorPath vacío desactiva el espejo.
func NewStore(path, mirrorPath string, log *logger.Logger) *Store {
	return &Store{
		path:       path,
		mirrorPath: mirrorPath,
		log:        log,
		versions:   make(map[string]int64),
	}
}

// Load devuelve las filas de datos de la hoja (encabezado excluido) y la
// versión vigente. Libro u hoja inexistentes devuelven cero filas sin error;
// un fallo real de lectura se registra y también degrada a cero filas.
func (s *Store) Load(ctx context.Context, sheet string) ([][]string, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrAlmacenamiento, err)
	}
	version := s.versions[sheet]

	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil, version, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		s.log.Error().Err(err).Str("archivo", s.path).Str("hoja", sheet).
			Msg("no se pudo abrir el libro, se devuelven cero filas")
		return nil, version, nil
	}
	defer func() { _ = f.Close() }()

	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, version, nil
	}

	all, err := f.GetRows(sheet)
	if err != nil {
		s.log.Error().Err(err).Str("hoja", sheet).
			Msg("no se pudo leer la hoja, se devuelven cero filas")
		return nil, version, nil
	}
	if len(all) <= 1 {
		return nil, version, nil
	}
	return all[1:], version, nil
}

// Save reemplaza todas las filas de la hoja y escribe libro principal y
// espejo. Devuelve domain.ErrConflict si version ya no es la vigente.
func (s *Store) Save(ctx context.Context, sheet string, headers []string, rows [][]string, version int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAlmacenamiento, err)
	}
	if current := s.versions[sheet]; current != version {
		return fmt.Errorf("%w: hoja %s versión %d, se esperaba %d",
			domain.ErrConflict, sheet, current, version)
	}

	f, err := s.openOrCreate()
	if err != nil {
		return fmt.Errorf("%w: abrir libro: %v", domain.ErrAlmacenamiento, err)
	}
	defer func() { _ = f.Close() }()

	if err := s.rewriteSheet(f, sheet, headers, rows); err != nil {
		return fmt.Errorf("%w: reescribir hoja %s: %v", domain.ErrAlmacenamiento, sheet, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAlmacenamiento, err)
	}
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("%w: guardar %s: %v", domain.ErrAlmacenamiento, s.path, err)
	}

	// El espejo es una segunda copia de respaldo: su fallo no revierte la
	// escritura principal, solo queda registrado.
	if s.mirrorPath != "" {
		if err := os.MkdirAll(filepath.Dir(s.mirrorPath), 0o755); err != nil {
			s.log.Warn().Err(err).Str("espejo", s.mirrorPath).Msg("no se pudo preparar el directorio del espejo")
		} else if err := f.SaveAs(s.mirrorPath); err != nil {
			s.log.Warn().Err(err).Str("espejo", s.mirrorPath).Msg("no se pudo escribir la copia espejo")
		}
	}

	s.versions[sheet] = version + 1
	return nil
}

func (s *Store) openOrCreate() (*excelize.File, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return excelize.NewFile(), nil
	}
	return excelize.OpenFile(s.path)
}

// rewriteSheet deja la hoja solo con encabezado + filas nuevas. Las filas
// anteriores se eliminan de abajo hacia arriba para no arrastrar sobrantes de
// un conjunto previo más largo.
func (s *Store) rewriteSheet(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	if idx, _ := f.GetSheetIndex(sheet); idx >= 0 {
		existing, err := f.GetRows(sheet)
		if err != nil {
			return err
		}
		for i := len(existing); i >= 1; i-- {
			if err := f.RemoveRow(sheet, i); err != nil {
				return err
			}
		}
	} else {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		// La hoja por defecto de un libro recién creado no forma parte del modelo;
		// eliminarla es seguro porque la hoja destino ya existe.
		if idx, _ := f.GetSheetIndex("Sheet1"); idx >= 0 && sheet != "Sheet1" {
			_ = f.DeleteSheet("Sheet1")
		}
	}

	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
