package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Detalle tipo de movimiento del libro.
type Detalle string

// Estado ciclo de vida de una factura. Se replica en cada fila del grupo de la
// factura (la factura y sus abonos) por conveniencia de filtrado.
type Estado string

const (
	DetalleFactura Detalle = "Factura"
	DetalleAbono   Detalle = "Abono"

	EstadoActiva   Estado = "Activa"
	EstadoInactiva Estado = "Inactiva"
)

// ParseDetalle interpreta el detalle sin distinguir mayúsculas ("factura" == "Factura").
func ParseDetalle(s string) (Detalle, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "factura":
		return DetalleFactura, true
	case "abono":
		return DetalleAbono, true
	}
	return "", false
}

// ParseEstado interpreta el estado sin distinguir mayúsculas.
func ParseEstado(s string) (Estado, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "activa":
		return EstadoActiva, true
	case "inactiva":
		return EstadoInactiva, true
	}
	return "", false
}

// Movement una fila del libro de movimientos de un proveedor o cliente.
// Total es entero en la unidad de moneda (sin centavos).
type Movement struct {
	ID        int
	Fecha     time.Time // solo fecha, sin componente horario
	Proveedor string
	Detalle   Detalle
	Obs       string
	Total     decimal.Decimal
	IDFactura string // formato F-NNN; comparte valor entre la factura y sus abonos
	Estado    Estado
}

// EsFactura indica si el movimiento establece una deuda.
func (m Movement) EsFactura() bool { return m.Detalle == DetalleFactura }

// EsAbono indica si el movimiento reduce el saldo de una factura.
func (m Movement) EsAbono() bool { return m.Detalle == DetalleAbono }

// MismoProveedor compara el nombre sin distinguir mayúsculas ni espacios extremos.
func (m Movement) MismoProveedor(nombre string) bool {
	return strings.EqualFold(strings.TrimSpace(m.Proveedor), strings.TrimSpace(nombre))
}
