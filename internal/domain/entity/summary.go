package entity

import "github.com/shopspring/decimal"

// Summary fila derivada del resumen por proveedor/cliente.
// El ID es un consecutivo de presentación: se reasigna en cada recálculo y no
// debe usarse como referencia estable; la clave real es Proveedor.
type Summary struct {
	ID            int
	Proveedor     string
	TotalFacturas decimal.Decimal
	TotalAbonos   decimal.Decimal
	Saldo         decimal.Decimal
}
