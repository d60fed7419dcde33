package report

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
)

// StockReportMeta datos de cabecera del informe impreso.
type StockReportMeta struct {
	Title       string
	GeneratedAt time.Time
	Filters     string // descripción legible de los filtros aplicados
}

// StockReportPDFGenerator genera el PDF del informe de stock.
// La implementación vive en infrastructure/pdf.
type StockReportPDFGenerator interface {
	GenerateStockReportPDF(ctx context.Context, meta StockReportMeta, report *dto.ProductReportResponse, money *MoneyFormatter) ([]byte, error)
}
