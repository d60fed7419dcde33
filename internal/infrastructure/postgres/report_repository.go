package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para el panel.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetTotals cantidad de productos, unidades y valor total en stock.
func (r *ReportRepo) GetTotals(ctx context.Context) (repository.StockTotals, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(quantity), 0)::BIGINT, COALESCE(SUM(price * quantity), 0)
		FROM products`
	var t repository.StockTotals
	var count int64
	if err := r.q.QueryRow(ctx, query).Scan(&count, &t.TotalQuantity, &t.TotalValue); err != nil {
		return repository.StockTotals{}, persistenceError("stock totals", err)
	}
	t.ProductCount = int(count)
	return t, nil
}

// GetCategoryTotals unidades y valor por categoría, ignorando categorías vacías.
func (r *ReportRepo) GetCategoryTotals(ctx context.Context) ([]repository.CategoryTotals, error) {
	query := `
		SELECT category, COALESCE(SUM(quantity), 0)::BIGINT, COALESCE(SUM(price * quantity), 0)
		FROM products
		WHERE category <> ''
		GROUP BY category
		ORDER BY category`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, persistenceError("category totals", err)
	}
	defer rows.Close()

	out := make([]repository.CategoryTotals, 0)
	for rows.Next() {
		var (
			c     repository.CategoryTotals
			value decimal.Decimal
		)
		if err := rows.Scan(&c.Category, &c.Quantity, &value); err != nil {
			return nil, persistenceError("scan category totals", err)
		}
		c.Value = value
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("category totals", err)
	}
	return out, nil
}

// ListCategories categorías distintas en orden alfabético.
func (r *ReportRepo) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, persistenceError("list categories", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, persistenceError("scan category", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("list categories", err)
	}
	return out, nil
}
