package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockTotals totales del panel principal.
type StockTotals struct {
	ProductCount  int
	TotalQuantity int64
	TotalValue    decimal.Decimal // suma de precio * cantidad
}

// CategoryTotals agregados de una categoría (datos de los gráficos).
type CategoryTotals struct {
	Category string
	Quantity int64
	Value    decimal.Decimal
}

// ReportRepository consultas de solo lectura para el panel y los informes.
type ReportRepository interface {
	GetTotals(ctx context.Context) (StockTotals, error)
	// GetCategoryTotals ignora productos con categoría vacía.
	GetCategoryTotals(ctx context.Context) ([]CategoryTotals, error)
	// ListCategories devuelve las categorías distintas, en orden alfabético.
	ListCategories(ctx context.Context) ([]string, error)
}
