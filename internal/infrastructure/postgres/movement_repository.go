package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, product_name, kind, quantity_delta, quantity_before, quantity_after, note, created_by, occurred_at`

// MovementRepo implementación del libro de movimientos sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta una entrada del libro. Asigna ID si viene vacío.
// Si el producto ya no existe la entrada se guarda igual, con product_id NULL y el nombre copiado.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	var productID *string
	if isUUID(m.ProductID) {
		productID = &m.ProductID
	}
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, (SELECT id FROM products WHERE id = $2::uuid), $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING product_id::text`
	var stored *string
	err := r.q.QueryRow(ctx, query,
		m.ID, productID, m.ProductName, string(m.Kind),
		m.QuantityDelta, m.QuantityBefore, m.QuantityAfter, m.Note, m.CreatedBy, m.OccurredAt,
	).Scan(&stored)
	if err != nil {
		return persistenceError("insert movement", err)
	}
	m.ProductID = ""
	if stored != nil {
		m.ProductID = *stored
	}
	return nil
}

// GetByID obtiene una entrada del libro; (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	if !isUUID(id) {
		return nil, nil
	}
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM inventory_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistenceError("get movement", err)
	}
	return m, nil
}

// List del más reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var (
		where []string
		args  []any
	)
	if f.ProductID != "" {
		if !isUUID(f.ProductID) {
			return []*entity.Movement{}, nil
		}
		args = append(args, f.ProductID)
		where = append(where, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if f.Kind != "" {
		args = append(args, string(f.Kind))
		where = append(where, fmt.Sprintf("kind = $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + movementColumns + ` FROM inventory_movements`)
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY occurred_at DESC, seq DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, persistenceError("list movements", err)
	}
	defer rows.Close()

	out := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, persistenceError("scan movement", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list movements", err)
	}
	return out, nil
}

// Delete borra una entrada del libro (acción administrativa).
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_movements WHERE id = $1`, id)
	if err != nil {
		return persistenceError("delete movement", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m         entity.Movement
		productID *string
		kind      string
	)
	if err := row.Scan(&m.ID, &productID, &m.ProductName, &kind, &m.QuantityDelta,
		&m.QuantityBefore, &m.QuantityAfter, &m.Note, &m.CreatedBy, &m.OccurredAt); err != nil {
		return nil, err
	}
	if productID != nil {
		m.ProductID = *productID
	}
	m.Kind = entity.MovementKind(kind)
	return &m, nil
}
