package dto

import "github.com/shopspring/decimal"

// DashboardResponse totales del panel principal.
type DashboardResponse struct {
	ProductCount  int             `json:"product_count"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	TotalValueFmt string          `json:"total_value_fmt"`
}

// CategoryTotalsResponse agregados por categoría para los gráficos.
type CategoryTotalsResponse struct {
	Category string          `json:"category"`
	Quantity int64           `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// ProductReportResponse informe filtrado de productos.
type ProductReportResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Categories []string          `json:"categories"` // opciones del filtro
	TotalValue decimal.Decimal   `json:"total_value"`
}
