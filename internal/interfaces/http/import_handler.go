package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/inventory"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/sheet"
)

// ImportHandler recibe planillas y filas JSON y las concilia con el catálogo (protegido).
type ImportHandler struct {
	uc           *inventory.ReconcileUseCase
	maxFileBytes int
}

// NewImportHandler construye el handler. maxFileBytes <= 0 deja el límite al servidor.
func NewImportHandler(uc *inventory.ReconcileUseCase, maxFileBytes int) *ImportHandler {
	return &ImportHandler{uc: uc, maxFileBytes: maxFileBytes}
}

// ImportFile godoc
// @Summary      Importar planilla
// @Description  Concilia un .csv o .xlsx con el catálogo. Cada fila se aplica por separado;
//
//	los errores de fila vienen en el resumen y no detienen la importación.
//
// @Tags         imports
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true   "Planilla .csv o .xlsx"
// @Param        source  formData  string  false  "Etiqueta del origen (por defecto el nombre del archivo)"
// @Success      200     {object}  dto.ImportSummary
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      413     {object}  dto.ErrorResponse
// @Router       /api/imports/file [post]
func (h *ImportHandler) ImportFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "campo file requerido")
	}
	if h.maxFileBytes > 0 && fh.Size > int64(h.maxFileBytes) {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("el archivo supera %d MB", h.maxFileBytes/(1024*1024)),
		})
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "INVALID_FILE", "no se pudo leer el archivo")
	}
	defer f.Close()

	src, err := sheet.Open(fh.Filename, f)
	if err != nil {
		return respondError(c, err)
	}
	defer src.Close()

	source := strings.TrimSpace(c.FormValue("source"))
	if source == "" {
		source = fh.Filename
	}
	return h.reconcile(c, src, source)
}

// ImportRows godoc
// @Summary      Importar filas JSON
// @Description  Sincronización desde una hoja remota: mismas reglas que la planilla.
// @Tags         imports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportRowsRequest  true  "source y rows (columna -> valor)"
// @Success      200   {object}  dto.ImportSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/imports/rows [post]
func (h *ImportHandler) ImportRows(c *fiber.Ctx) error {
	var in dto.ImportRowsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	return h.reconcile(c, sheet.FromMaps(in.Rows), in.Source)
}

func (h *ImportHandler) reconcile(c *fiber.Ctx, src inventory.RowSource, source string) error {
	summary, err := h.uc.Reconcile(c.Context(), src, inventory.ReconcileInput{
		Source: source,
		Actor:  GetActor(c),
	})
	if err != nil && summary == nil {
		return respondError(c, err)
	}
	// Interrumpida: las filas ya aplicadas quedan aplicadas y el resumen lo indica.
	return c.JSON(summary)
}
