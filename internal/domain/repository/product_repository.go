package repository

import (
	"context"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// Orden de los listados de productos.
const (
	ProductOrderRecent   = "recent"   // data de alta descendente (dashboard)
	ProductOrderCategory = "category" // categoría, nombre ascendente (informes)
)

// ProductFilter criterios de listado. Los campos vacíos no filtran.
type ProductFilter struct {
	Code     string // subcadena del código
	Category string // subcadena de la categoría
	Search   string // subcadena del nombre
	OrderBy  string
	Limit    int // 0 = sin límite
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) si el producto no existe.
// No conoce el libro de movimientos: quien muta un producto registra el movimiento.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate y GetByCodeForUpdate bloquean la fila dentro de la transacción en curso.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
