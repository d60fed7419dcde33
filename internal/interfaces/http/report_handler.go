package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-panel/internal/application/report"
)

// ReportHandler endpoints de solo lectura del panel: totales, gráficos e informes (protegido).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Totales del inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Valor y cantidad por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryTotalsResponse
// @Router       /api/reports/categories [get]
func (h *ReportHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.CategoryTotals(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Products godoc
// @Summary      Informe de productos filtrado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        code      query  string  false  "Subcadena del código"
// @Param        category  query  string  false  "Subcadena de la categoría"
// @Param        search    query  string  false  "Subcadena del nombre"
// @Success      200       {object}  dto.ProductReportResponse
// @Router       /api/reports/products [get]
func (h *ReportHandler) Products(c *fiber.Ctx) error {
	out, err := h.uc.Products(c.Context(), reportFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProductsPDF godoc
// @Summary      Informe de productos en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        code      query  string  false  "Subcadena del código"
// @Param        category  query  string  false  "Subcadena de la categoría"
// @Param        search    query  string  false  "Subcadena del nombre"
// @Success      200       {file}  binary
// @Router       /api/reports/products.pdf [get]
func (h *ReportHandler) ProductsPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.ProductsPDF(c.Context(), reportFilter(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

func reportFilter(c *fiber.Ctx) report.ReportFilter {
	return report.ReportFilter{
		Code:     c.Query("code"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
}
