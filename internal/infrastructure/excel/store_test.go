package excel_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/infrastructure/excel"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

var encabezados = []string{"Id", "Nombre", "Valor"}

func TestStore_LibroInexistenteDevuelveCeroFilas(t *testing.T) {
	store := excel.NewStore(filepath.Join(t.TempDir(), "no-existe.xlsx"), "", testLogger())

	rows, version, err := store.Load(context.Background(), "Hoja")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, int64(0), version)
}

func TestStore_GuardarYLeer(t *testing.T) {
	store := excel.NewStore(filepath.Join(t.TempDir(), "libro.xlsx"), "", testLogger())
	ctx := context.Background()

	datos := [][]string{
		{"1", "Acme", "1500"},
		{"2", "Beta", "900"},
	}
	require.NoError(t, store.Save(ctx, "Hoja", encabezados, datos, 0))

	rows, version, err := store.Load(ctx, "Hoja")
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	require.Len(t, rows, 2, "el encabezado no cuenta como fila de datos")
	assert.Equal(t, "Acme", rows[0][1])
	assert.Equal(t, "900", rows[1][2])
}

func TestStore_SobrescrituraNoArrastraFilasViejas(t *testing.T) {
	store := excel.NewStore(filepath.Join(t.TempDir(), "libro.xlsx"), "", testLogger())
	ctx := context.Background()

	largo := [][]string{{"1", "a", "1"}, {"2", "b", "2"}, {"3", "c", "3"}}
	require.NoError(t, store.Save(ctx, "Hoja", encabezados, largo, 0))

	corto := [][]string{{"9", "z", "9"}}
	require.NoError(t, store.Save(ctx, "Hoja", encabezados, corto, 1))

	rows, _, err := store.Load(ctx, "Hoja")
	require.NoError(t, err)
	require.Len(t, rows, 1, "las filas del conjunto anterior más largo deben desaparecer")
	assert.Equal(t, "9", rows[0][0])
}

func TestStore_HojasIndependientesEnElMismoLibro(t *testing.T) {
	store := excel.NewStore(filepath.Join(t.TempDir(), "libro.xlsx"), "", testLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "Proveedores", encabezados, [][]string{{"1", "a", "1"}}, 0))
	require.NoError(t, store.Save(ctx, "Resumen", encabezados, [][]string{{"1", "b", "2"}, {"2", "c", "3"}}, 0))

	provs, _, err := store.Load(ctx, "Proveedores")
	require.NoError(t, err)
	assert.Len(t, provs, 1)

	resumen, _, err := store.Load(ctx, "Resumen")
	require.NoError(t, err)
	assert.Len(t, resumen, 2)
}

func TestStore_VersionDesactualizadaEsConflicto(t *testing.T) {
	store := excel.NewStore(filepath.Join(t.TempDir(), "libro.xlsx"), "", testLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "Hoja", encabezados, [][]string{{"1", "a", "1"}}, 0))

	// Segundo escritor con la versión vieja: pierde, no pisa.
	err := store.Save(ctx, "Hoja", encabezados, [][]string{{"2", "b", "2"}}, 0)
	require.ErrorIs(t, err, domain.ErrConflict)

	rows, _, err := store.Load(ctx, "Hoja")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0][0], "la escritura conflictiva no debe aplicarse")
}

func TestStore_EscribeCopiaEspejo(t *testing.T) {
	dir := t.TempDir()
	espejo := filepath.Join(dir, "espejo", "copia.xlsx")
	store := excel.NewStore(filepath.Join(dir, "libro.xlsx"), espejo, testLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "Hoja", encabezados, [][]string{{"1", "a", "1"}}, 0))

	_, err := os.Stat(espejo)
	require.NoError(t, err, "la copia espejo debe existir tras el guardado")

	// El espejo es legible como libro independiente.
	mirror := excel.NewStore(espejo, "", testLogger())
	rows, _, err := mirror.Load(ctx, "Hoja")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestStore_FalloDelEspejoNoRevierteLaEscritura(t *testing.T) {
	dir := t.TempDir()
	// Un archivo regular en medio de la ruta del espejo hace fallar la creación
	// del directorio, sin depender de permisos.
	bloqueo := filepath.Join(dir, "bloqueo")
	require.NoError(t, os.WriteFile(bloqueo, []byte("x"), 0o644))
	espejo := filepath.Join(bloqueo, "espejo", "copia.xlsx")

	principal := filepath.Join(dir, "libro.xlsx")
	store := excel.NewStore(principal, espejo, testLogger())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "Hoja", encabezados, [][]string{{"1", "a", "1"}}, 0),
		"el fallo del espejo no debe fallar la operación")

	// El libro principal quedó escrito y la versión avanzó.
	rows, version, err := store.Load(ctx, "Hoja")
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	require.Len(t, rows, 1)

	_, err = os.Stat(espejo)
	assert.Error(t, err, "el espejo no debe existir")
}

func TestStore_ContextoCanceladoNoEscribe(t *testing.T) {
	store := excel.NewStore(filepath.Join(t.TempDir(), "libro.xlsx"), "", testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Save(ctx, "Hoja", encabezados, [][]string{{"1", "a", "1"}}, 0)
	require.ErrorIs(t, err, domain.ErrAlmacenamiento)

	rows, _, err := store.Load(context.Background(), "Hoja")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
