package repository

import (
	"context"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// MovementFilter criterios de listado del libro. Siempre del más reciente al más antiguo.
type MovementFilter struct {
	Limit     int
	ProductID string
	Kind      entity.MovementKind
}

// MovementRepository define el puerto de persistencia del libro de movimientos (append-only).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	// Delete es una acción administrativa; la conciliación nunca la usa.
	Delete(ctx context.Context, id string) error
}
