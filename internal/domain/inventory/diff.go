package inventory

import (
	"time"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// ChangeKind resultado de comparar una fila importada con el producto existente.
type ChangeKind int

const (
	ChangeInsert       ChangeKind = iota // no existe producto con ese código
	ChangeNone                           // nada difiere
	ChangeMetadata                       // difieren nombre, precio o categoría
	ChangeQuantityUp                     // la cantidad sube (con o sin otros cambios)
	ChangeQuantityDown                   // la cantidad baja (con o sin otros cambios)
)

// Change describe qué cambia y cuánto.
type Change struct {
	Kind   ChangeKind
	Fields []string // campos que difieren, en orden fijo
	Delta  int64    // |nueva - anterior| para cambios de cantidad
}

// MovementKind devuelve el tipo de movimiento que explica el cambio.
func (c Change) MovementKind() entity.MovementKind {
	switch c.Kind {
	case ChangeInsert, ChangeQuantityUp:
		return entity.MovementStockIn
	case ChangeQuantityDown:
		return entity.MovementStockOut
	default:
		return entity.MovementUpdate
	}
}

// Diff compara campo a campo. existing nil significa inserción.
func Diff(existing *entity.Product, c Candidate) Change {
	if existing == nil {
		return Change{Kind: ChangeInsert, Delta: c.Quantity}
	}
	var fields []string
	if existing.Name != c.Name {
		fields = append(fields, "name")
	}
	if !existing.Price.Equal(c.Price) {
		fields = append(fields, "price")
	}
	if existing.Category != c.Category {
		fields = append(fields, "category")
	}
	switch {
	case c.Quantity > existing.Quantity:
		return Change{Kind: ChangeQuantityUp, Fields: append(fields, "quantity"), Delta: c.Quantity - existing.Quantity}
	case c.Quantity < existing.Quantity:
		return Change{Kind: ChangeQuantityDown, Fields: append(fields, "quantity"), Delta: existing.Quantity - c.Quantity}
	case len(fields) > 0:
		return Change{Kind: ChangeMetadata, Fields: fields}
	}
	return Change{Kind: ChangeNone}
}

// Matches indica si el candidato describe exactamente al producto.
func Matches(p *entity.Product, c Candidate) bool {
	return Diff(p, c).Kind == ChangeNone
}

// NewProduct construye el producto a insertar a partir del candidato.
func NewProduct(id string, c Candidate, now time.Time) *entity.Product {
	return &entity.Product{
		ID:        id,
		Code:      c.Code,
		Name:      c.Name,
		Quantity:  c.Quantity,
		Price:     c.Price,
		Category:  c.Category,
		AddedAt:   now,
		UpdatedAt: now,
	}
}

// Apply copia los valores del candidato sobre el producto existente.
func Apply(p *entity.Product, c Candidate, now time.Time) {
	p.Name = c.Name
	p.Quantity = c.Quantity
	p.Price = c.Price
	p.Category = c.Category
	p.UpdatedAt = now
}
