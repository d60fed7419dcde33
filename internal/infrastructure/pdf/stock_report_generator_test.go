package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/report"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/pdf"
)

func TestGenerateStockReportPDF(t *testing.T) {
	rep := &dto.ProductReportResponse{
		Items: []dto.ProductResponse{
			{Code: "E-01", Name: "Cabo", Quantity: 5, Price: decimal.NewFromInt(4), Category: "Eletro", StockValue: decimal.NewFromInt(20)},
			{Code: "F-01", Name: "Parafuso", Quantity: 100, Price: decimal.RequireFromString("0.25"), Category: "Ferragens", StockValue: decimal.NewFromInt(25)},
		},
		Total:      2,
		TotalValue: decimal.NewFromInt(45),
	}
	meta := report.StockReportMeta{Title: "Informe de stock", GeneratedAt: time.Now(), Filters: "todos los productos"}

	out, err := pdf.NewMarotoStockReportGenerator("inventario-panel").
		GenerateStockReportPDF(context.Background(), meta, rep, report.NewMoneyFormatter("BRL"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "cabecera PDF")
}

func TestGenerateStockReportPDF_SinProductos(t *testing.T) {
	out, err := pdf.NewMarotoStockReportGenerator("x").GenerateStockReportPDF(context.Background(),
		report.StockReportMeta{Title: "Vacío", GeneratedAt: time.Now()},
		&dto.ProductReportResponse{TotalValue: decimal.Zero},
		report.NewMoneyFormatter("BRL"))
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
