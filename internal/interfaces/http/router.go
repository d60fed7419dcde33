package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-panel/internal/application/inventory"
	"github.com/jhoicas/inventario-panel/internal/application/report"
	"github.com/jhoicas/inventario-panel/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	Movements      *inventory.MovementUseCase
	Ledger         *inventory.LedgerUseCase
	Reconcile      *inventory.ReconcileUseCase
	Reports        *report.UseCase
	MaxImportBytes int
	JWTSecret      string
}

// Router registra las rutas de la API. Todas requieren Bearer Token: el username del
// token queda como autor de los movimientos.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Post("/delete", productHandler.DeleteMany)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Inventory movements
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Movements, deps.Ledger)
	invGroup.Post("/movements", inventoryHandler.ApplyMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Delete("/movements/:id", RequireRole("admin"), inventoryHandler.DeleteMovement)

	// Imports
	imports := api.Group("/imports")
	importHandler := NewImportHandler(deps.Reconcile, deps.MaxImportBytes)
	imports.Post("/file", importHandler.ImportFile)
	imports.Post("/rows", importHandler.ImportRows)

	// Reports
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/categories", reportHandler.Categories)
	reports.Get("/products", reportHandler.Products)
	reports.Get("/products.pdf", reportHandler.ProductsPDF)
}
