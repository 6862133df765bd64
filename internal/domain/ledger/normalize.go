package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/contable-pro/internal/domain"
)

// FormatoFecha formato de fecha del libro (solo fecha, sin hora).
const FormatoFecha = "2006-01-02"

// NormalizarTotal convierte la entrada cruda del usuario en un monto entero:
// descarta todo carácter que no sea dígito ("$1.500" -> 1500). En modo
// estricto una entrada sin dígitos se rechaza; en modo laxo se convierte a
// cero, como hacía la aplicación original.
func NormalizarTotal(raw string, lenient bool) (decimal.Decimal, error) {
	var digitos []rune
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digitos = append(digitos, r)
		}
	}
	if len(digitos) == 0 {
		if lenient {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("%w: monto %q no contiene dígitos", domain.ErrInvalidInput, raw)
	}
	d, err := decimal.NewFromString(string(digitos))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: monto %q: %v", domain.ErrInvalidInput, raw, err)
	}
	return d, nil
}

// NormalizarFecha interpreta una fecha "YYYY-MM-DD" y la trunca a día.
func NormalizarFecha(s string) (time.Time, error) {
	t, err := time.Parse(FormatoFecha, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (se espera %s)", domain.ErrInvalidInput, s, FormatoFecha)
	}
	return t, nil
}

// SoloFecha descarta el componente horario de t.
func SoloFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
