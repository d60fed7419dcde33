package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
)

// ReportFilter filtros del informe de productos (subcadenas, vacío = todos).
type ReportFilter struct {
	Code     string
	Category string
	Search   string
}

func (f ReportFilter) describe() string {
	var parts []string
	if f.Code != "" {
		parts = append(parts, "código: "+f.Code)
	}
	if f.Category != "" {
		parts = append(parts, "categoría: "+f.Category)
	}
	if f.Search != "" {
		parts = append(parts, "nombre: "+f.Search)
	}
	if len(parts) == 0 {
		return "todos los productos"
	}
	return strings.Join(parts, " | ")
}

// UseCase consultas de solo lectura del panel: totales, gráficos e informes.
type UseCase struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
	generator   StockReportPDFGenerator
	money       *MoneyFormatter
}

// NewUseCase construye el caso de uso. generator puede ser nil si no se exporta PDF.
func NewUseCase(
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
	generator StockReportPDFGenerator,
	money *MoneyFormatter,
) *UseCase {
	if money == nil {
		money = NewMoneyFormatter(DefaultCurrency)
	}
	return &UseCase{reportRepo: reportRepo, productRepo: productRepo, generator: generator, money: money}
}

// Money formateador de la moneda configurada.
func (uc *UseCase) Money() *MoneyFormatter { return uc.money }

// Dashboard totales del panel principal.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	totals, err := uc.reportRepo.GetTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: totales: %w", err)
	}
	return &dto.DashboardResponse{
		ProductCount:  totals.ProductCount,
		TotalQuantity: totals.TotalQuantity,
		TotalValue:    totals.TotalValue,
		TotalValueFmt: uc.money.Format(totals.TotalValue),
	}, nil
}

// CategoryTotals agregados por categoría para los gráficos.
func (uc *UseCase) CategoryTotals(ctx context.Context) ([]dto.CategoryTotalsResponse, error) {
	rows, err := uc.reportRepo.GetCategoryTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: categorías: %w", err)
	}
	out := make([]dto.CategoryTotalsResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategoryTotalsResponse{Category: r.Category, Quantity: r.Quantity, Value: r.Value})
	}
	return out, nil
}

// Products informe filtrado, ordenado por categoría y nombre, con las categorías
// disponibles para el filtro. Ambas consultas son independientes y van en paralelo.
func (uc *UseCase) Products(ctx context.Context, filter ReportFilter) (*dto.ProductReportResponse, error) {
	type listResult struct {
		rows []*entity.Product
		err  error
	}
	type catResult struct {
		rows []string
		err  error
	}
	listChan := make(chan listResult, 1)
	catChan := make(chan catResult, 1)

	go func() {
		rows, err := uc.productRepo.List(ctx, repository.ProductFilter{
			Code:     filter.Code,
			Category: filter.Category,
			Search:   filter.Search,
			OrderBy:  repository.ProductOrderCategory,
		})
		listChan <- listResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.ListCategories(ctx)
		catChan <- catResult{rows, err}
	}()

	listRes := <-listChan
	catRes := <-catChan
	if listRes.err != nil {
		return nil, fmt.Errorf("report: productos: %w", listRes.err)
	}
	if catRes.err != nil {
		return nil, fmt.Errorf("report: categorías: %w", catRes.err)
	}

	resp := &dto.ProductReportResponse{
		Items:      make([]dto.ProductResponse, 0, len(listRes.rows)),
		Categories: catRes.rows,
		TotalValue: decimal.Zero,
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	for _, p := range listRes.rows {
		item := dto.NewProductResponse(p)
		resp.Items = append(resp.Items, *item)
		resp.TotalValue = resp.TotalValue.Add(item.StockValue)
	}
	resp.Total = len(resp.Items)
	return resp, nil
}

// ProductsPDF genera el informe filtrado en PDF. Devuelve los bytes y el nombre de archivo.
func (uc *UseCase) ProductsPDF(ctx context.Context, filter ReportFilter) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("report: generador PDF no configurado")
	}
	rep, err := uc.Products(ctx, filter)
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	meta := StockReportMeta{
		Title:       "Informe de stock",
		GeneratedAt: now,
		Filters:     filter.describe(),
	}
	pdfBytes, err := uc.generator.GenerateStockReportPDF(ctx, meta, rep, uc.money)
	if err != nil {
		return nil, "", fmt.Errorf("report: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("informe-stock-%s.pdf", now.Format("20060102-1504")), nil
}
