package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/contable-pro/internal/domain"
	"github.com/tu-usuario/contable-pro/internal/domain/ledger"
)

func TestNormalizarTotal_DescartaNoDigitos(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"$1.500", "1500"},
		{"1500", "1500"},
		{"$ 2.500.000", "2500000"},
		{"1,234", "1234"},
		{"COP 900", "900"},
		{"0", "0"},
	}
	for _, c := range casos {
		got, err := ledger.NormalizarTotal(c.entrada, false)
		require.NoError(t, err, "entrada %q", c.entrada)
		assert.Equal(t, c.esperado, got.String(), "entrada %q", c.entrada)
	}
}

func TestNormalizarTotal_EstrictoRechazaSinDigitos(t *testing.T) {
	for _, entrada := range []string{"", "abc", "$", "N/A"} {
		_, err := ledger.NormalizarTotal(entrada, false)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada %q", entrada)
	}
}

func TestNormalizarTotal_LaxoConvierteACero(t *testing.T) {
	// Comportamiento histórico de la aplicación original: entrada no numérica
	// se convierte a cero en lugar de rechazarse.
	for _, entrada := range []string{"", "abc", "$"} {
		got, err := ledger.NormalizarTotal(entrada, true)
		require.NoError(t, err, "entrada %q", entrada)
		assert.True(t, got.IsZero(), "entrada %q", entrada)
	}
}

func TestNormalizarFecha(t *testing.T) {
	f, err := ledger.NormalizarFecha("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, f.Year())
	assert.Equal(t, 15, f.Day())

	_, err = ledger.NormalizarFecha("15/03/2024")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
