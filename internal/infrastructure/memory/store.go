// Package memory implementa los puertos de persistencia en memoria. Sirve como
// doble de pruebas y como backend del modo dry-run del CLI: misma semántica que
// Postgres (códigos únicos, ON DELETE SET NULL en el libro, rollback por tx).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
)

type state struct {
	products  map[string]*entity.Product
	movements []*entity.Movement // orden de inserción
}

// Store almacén en memoria. Las transacciones se serializan con un mutex y se
// deshacen con un registro de operaciones inversas de lo que tocaron.
type Store struct {
	mu   sync.Mutex
	st   *state
	undo []func() // nil fuera de una transacción
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: &state{products: make(map[string]*entity.Product)}}
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.undo = make([]func(), 0, 4)
	defer func() { s.undo = nil }()
	if err := fn(&productRepo{s: s}, &movementRepo{s: s}); err != nil {
		for i := len(s.undo) - 1; i >= 0; i-- {
			s.undo[i]()
		}
		return err
	}
	return nil
}

// record anota la operación inversa de un cambio hecho dentro de Run.
func (s *Store) record(fn func()) {
	if s.undo != nil {
		s.undo = append(s.undo, fn)
	}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() repository.ProductRepository { return lockedProducts{s: s} }

// Movements repositorio del libro fuera de transacción.
func (s *Store) Movements() repository.MovementRepository { return lockedMovements{s: s} }

// Reports consultas del panel.
func (s *Store) Reports() repository.ReportRepository { return reportRepo{s: s} }

// Seed inserta productos sin registrar movimientos (fixtures de pruebas y copia del
// catálogo para la simulación del CLI).
func (s *Store) Seed(products ...*entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.st.products[p.ID] = p.Clone()
	}
}

func (s *Store) locked(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}
