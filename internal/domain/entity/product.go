package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/domain"
)

// DefaultCategory se asigna cuando un producto llega sin categoría.
const DefaultCategory = "Geral"

// Product representa un producto del inventario identificado por su código de negocio.
// Quantity nunca es negativa; se modifica vía movimientos, ediciones o importaciones.
type Product struct {
	ID        string
	Code      string // único entre todos los productos
	Name      string
	Quantity  int64
	Price     decimal.Decimal
	Category  string
	AddedAt   time.Time
	UpdatedAt time.Time
}

// Normalize recorta los campos de texto y aplica la categoría por defecto.
func (p *Product) Normalize() {
	p.Code = strings.TrimSpace(p.Code)
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" {
		p.Category = DefaultCategory
	}
}

// Validate verifica las reglas del producto antes de persistirlo.
func (p *Product) Validate() error {
	if p.Name == "" {
		return domain.NewValidationError("name", "el nombre es obligatorio")
	}
	if p.Code == "" {
		return domain.NewValidationError("code", "el código es obligatorio")
	}
	if p.Quantity < 0 {
		return domain.NewValidationError("quantity", "la cantidad no puede ser negativa")
	}
	if p.Price.IsNegative() {
		return domain.NewValidationError("price", "el precio no puede ser negativo")
	}
	return nil
}

// StockValue devuelve precio * cantidad.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Quantity))
}

// Clone devuelve una copia independiente del producto.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
