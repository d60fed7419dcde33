package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
)

type movementRepo struct {
	s *Store
}

func (r *movementRepo) Create(_ context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	// Producto ya eliminado: la entrada queda sin producto, igual que ON DELETE SET NULL.
	if _, ok := r.s.st.products[m.ProductID]; !ok {
		m.ProductID = ""
	}
	cp := *m
	n := len(r.s.st.movements)
	r.s.st.movements = append(r.s.st.movements, &cp)
	r.s.record(func() { r.s.st.movements = r.s.st.movements[:n] })
	return nil
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, m := range r.s.st.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

// List del más reciente al más antiguo; a igual fecha, el último insertado primero.
func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	type indexed struct {
		seq int
		m   *entity.Movement
	}
	var rows []indexed
	for i, m := range r.s.st.movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Kind != "" && m.Kind != f.Kind {
			continue
		}
		rows = append(rows, indexed{seq: i, m: m})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].m.OccurredAt.Equal(rows[j].m.OccurredAt) {
			return rows[i].m.OccurredAt.After(rows[j].m.OccurredAt)
		}
		return rows[i].seq > rows[j].seq
	})
	if f.Limit > 0 && f.Limit < len(rows) {
		rows = rows[:f.Limit]
	}
	out := make([]*entity.Movement, 0, len(rows))
	for _, row := range rows {
		cp := *row.m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *movementRepo) Delete(_ context.Context, id string) error {
	for i, m := range r.s.st.movements {
		if m.ID == id {
			prev := r.s.st.movements
			r.s.st.movements = append(prev[:i:i], prev[i+1:]...)
			r.s.record(func() { r.s.st.movements = prev })
			return nil
		}
	}
	return domain.ErrNotFound
}

type lockedMovements struct {
	s *Store
}

func (l lockedMovements) repo() *movementRepo { return &movementRepo{s: l.s} }

func (l lockedMovements) Create(ctx context.Context, m *entity.Movement) (err error) {
	l.s.locked(func() { err = l.repo().Create(ctx, m) })
	return err
}

func (l lockedMovements) GetByID(ctx context.Context, id string) (m *entity.Movement, err error) {
	l.s.locked(func() { m, err = l.repo().GetByID(ctx, id) })
	return m, err
}

func (l lockedMovements) List(ctx context.Context, f repository.MovementFilter) (list []*entity.Movement, err error) {
	l.s.locked(func() { list, err = l.repo().List(ctx, f) })
	return list, err
}

func (l lockedMovements) Delete(ctx context.Context, id string) (err error) {
	l.s.locked(func() { err = l.repo().Delete(ctx, id) })
	return err
}
