package entity

import "time"

// MovementKind tipo de entrada del libro de movimientos.
type MovementKind string

// Tipos de movimiento.
const (
	MovementCreation   MovementKind = "creation"    // alta de producto
	MovementUpdate     MovementKind = "update"      // cambio sin efecto en cantidad
	MovementDeletion   MovementKind = "deletion"    // baja de producto
	MovementStockIn    MovementKind = "stock_in"    // entrada
	MovementStockOut   MovementKind = "stock_out"   // salida
	MovementAdjustment MovementKind = "adjustment"  // edición manual de la cantidad
	MovementBulkImport MovementKind = "bulk_import" // resumen de una importación
)

// Valid indica si el tipo pertenece al conjunto cerrado de tipos.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementCreation, MovementUpdate, MovementDeletion, MovementStockIn,
		MovementStockOut, MovementAdjustment, MovementBulkImport:
		return true
	}
	return false
}

// Movement es una entrada inmutable del libro de movimientos.
// ProductID vacío equivale a NULL: el producto fue eliminado o la entrada no tiene producto.
type Movement struct {
	ID             string
	ProductID      string
	ProductName    string // copia del nombre al momento del evento
	Kind           MovementKind
	QuantityDelta  int64 // magnitud, siempre >= 0
	QuantityBefore int64
	QuantityAfter  int64
	Note           string
	CreatedBy      string
	OccurredAt     time.Time
}

// SignedDelta devuelve el efecto del movimiento sobre la cantidad del producto.
func (m *Movement) SignedDelta() int64 {
	if m.QuantityAfter < m.QuantityBefore {
		return -m.QuantityDelta
	}
	return m.QuantityDelta
}
