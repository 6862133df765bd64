package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto de escritura, reintentar la operación")
	ErrSinFacturaActiva  = errors.New("no existe una factura activa para aplicar el abono")
	ErrSaldoInsuficiente = errors.New("no se puede guardar la factura por debajo del saldo arrastrado")
	ErrLedgerCorrupto    = errors.New("más de una factura activa para el mismo proveedor")
	ErrAlmacenamiento    = errors.New("fallo de lectura/escritura del almacenamiento")

	// ErrResumenDesactualizado: el movimiento quedó persistido pero el recálculo
	// del resumen falló; el resumen puede reconstruirse reintentando el recálculo.
	ErrResumenDesactualizado = errors.New("movimiento guardado, resumen desactualizado")
)
