package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
)

// productRepo opera sobre el estado sin bloquear; lo usa Run con el mutex ya tomado.
type productRepo struct {
	s *Store
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	if r.findByCode(p.Code) != nil {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.st.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	id := p.ID
	r.s.st.products[id] = p.Clone()
	r.s.record(func() { delete(r.s.st.products, id) })
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if p, ok := r.s.st.products[id]; ok {
		return p.Clone(), nil
	}
	return nil, nil
}

func (r *productRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	if p := r.findByCode(code); p != nil {
		return p.Clone(), nil
	}
	return nil, nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	return r.GetByCode(ctx, code)
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	prev, ok := r.s.st.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	if other := r.findByCode(p.Code); other != nil && other.ID != p.ID {
		return domain.ErrDuplicate
	}
	r.s.st.products[p.ID] = p.Clone()
	r.s.record(func() { r.s.st.products[prev.ID] = prev })
	return nil
}

// Delete borra el producto y deja sin product_id sus entradas del libro.
func (r *productRepo) Delete(_ context.Context, id string) error {
	prev, ok := r.s.st.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	delete(r.s.st.products, id)
	var orphaned []*entity.Movement
	for _, m := range r.s.st.movements {
		if m.ProductID == id {
			m.ProductID = ""
			orphaned = append(orphaned, m)
		}
	}
	r.s.record(func() {
		r.s.st.products[id] = prev
		for _, m := range orphaned {
			m.ProductID = id
		}
	})
	return nil
}

func (r *productRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.s.st.products))
	for _, p := range r.s.st.products {
		if !containsFold(p.Code, f.Code) || !containsFold(p.Category, f.Category) || !containsFold(p.Name, f.Search) {
			continue
		}
		out = append(out, p.Clone())
	}

	switch f.OrderBy {
	case repository.ProductOrderCategory:
		sort.Slice(out, func(i, j int) bool {
			if out[i].Category != out[j].Category {
				return out[i].Category < out[j].Category
			}
			if out[i].Name != out[j].Name {
				return out[i].Name < out[j].Name
			}
			return out[i].ID < out[j].ID
		})
	default:
		sort.Slice(out, func(i, j int) bool {
			if !out[i].AddedAt.Equal(out[j].AddedAt) {
				return out[i].AddedAt.After(out[j].AddedAt)
			}
			return out[i].ID < out[j].ID
		})
	}

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []*entity.Product{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *productRepo) findByCode(code string) *entity.Product {
	for _, p := range r.s.st.products {
		if p.Code == code {
			return p
		}
	}
	return nil
}

func containsFold(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// lockedProducts toma el mutex en cada llamada.
type lockedProducts struct {
	s *Store
}

func (l lockedProducts) repo() *productRepo { return &productRepo{s: l.s} }

func (l lockedProducts) Create(ctx context.Context, p *entity.Product) (err error) {
	l.s.locked(func() { err = l.repo().Create(ctx, p) })
	return err
}

func (l lockedProducts) GetByID(ctx context.Context, id string) (p *entity.Product, err error) {
	l.s.locked(func() { p, err = l.repo().GetByID(ctx, id) })
	return p, err
}

func (l lockedProducts) GetByCode(ctx context.Context, code string) (p *entity.Product, err error) {
	l.s.locked(func() { p, err = l.repo().GetByCode(ctx, code) })
	return p, err
}

func (l lockedProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return l.GetByID(ctx, id)
}

func (l lockedProducts) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	return l.GetByCode(ctx, code)
}

func (l lockedProducts) Update(ctx context.Context, p *entity.Product) (err error) {
	l.s.locked(func() { err = l.repo().Update(ctx, p) })
	return err
}

func (l lockedProducts) Delete(ctx context.Context, id string) (err error) {
	l.s.locked(func() { err = l.repo().Delete(ctx, id) })
	return err
}

func (l lockedProducts) List(ctx context.Context, f repository.ProductFilter) (list []*entity.Product, err error) {
	l.s.locked(func() { list, err = l.repo().List(ctx, f) })
	return list, err
}
