package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/domain/repository"
)

type reportRepo struct {
	s *Store
}

func (r reportRepo) GetTotals(_ context.Context) (totals repository.StockTotals, err error) {
	r.s.locked(func() {
		totals.TotalValue = decimal.Zero
		for _, p := range r.s.st.products {
			totals.ProductCount++
			totals.TotalQuantity += p.Quantity
			totals.TotalValue = totals.TotalValue.Add(p.StockValue())
		}
	})
	return totals, nil
}

func (r reportRepo) GetCategoryTotals(_ context.Context) ([]repository.CategoryTotals, error) {
	byCat := map[string]*repository.CategoryTotals{}
	r.s.locked(func() {
		for _, p := range r.s.st.products {
			if p.Category == "" {
				continue
			}
			t, ok := byCat[p.Category]
			if !ok {
				t = &repository.CategoryTotals{Category: p.Category, Value: decimal.Zero}
				byCat[p.Category] = t
			}
			t.Quantity += p.Quantity
			t.Value = t.Value.Add(p.StockValue())
		}
	})
	out := make([]repository.CategoryTotals, 0, len(byCat))
	for _, t := range byCat {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r reportRepo) ListCategories(_ context.Context) ([]string, error) {
	set := map[string]struct{}{}
	r.s.locked(func() {
		for _, p := range r.s.st.products {
			if p.Category != "" {
				set[p.Category] = struct{}{}
			}
		}
	})
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}
