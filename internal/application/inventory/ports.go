package inventory

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/inventario-panel/internal/domain/inventory"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Cada movimiento y cada fila importada se aplican con su entrada del libro en una sola tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}

// SourceRow fila externa con su número de línea en el origen (1 = primera fila de datos
// tras la cabecera en CSV/XLSX; índice + 1 en filas JSON).
type SourceRow struct {
	Line   int
	Values inventory.RawRow
}

// RowSource origen de filas para la conciliación. Next devuelve io.EOF al terminar.
// Un *RowReadError se registra como error de fila y la lectura continúa; cualquier
// otro error corta la importación.
type RowSource interface {
	Next() (SourceRow, error)
}

// RowReadError fila ilegible en el origen (p. ej. comillas mal cerradas en CSV).
type RowReadError struct {
	Line int
	Err  error
}

func (e *RowReadError) Error() string {
	return fmt.Sprintf("fila %d: %v", e.Line, e.Err)
}

func (e *RowReadError) Unwrap() error { return e.Err }

// SliceSource RowSource sobre filas ya en memoria (JSON, tests).
type SliceSource struct {
	rows []SourceRow
	pos  int
}

// NewSliceSource numera las filas desde 1.
func NewSliceSource(rows []inventory.RawRow) *SliceSource {
	out := make([]SourceRow, len(rows))
	for i, r := range rows {
		out[i] = SourceRow{Line: i + 1, Values: r}
	}
	return &SliceSource{rows: out}
}

// Next implementa RowSource.
func (s *SliceSource) Next() (SourceRow, error) {
	if s.pos >= len(s.rows) {
		return SourceRow{}, io.EOF
	}
	r := s.rows[s.pos]
	s.pos++
	return r, nil
}
