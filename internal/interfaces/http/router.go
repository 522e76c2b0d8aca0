package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tiendita/internal/application/ledger"
	"github.com/jhoicas/tiendita/internal/application/photo"
	"github.com/jhoicas/tiendita/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger  *ledger.Ledger
	Reports *report.UseCase
	Photos  *photo.Service
	Log     zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log))

	// Items
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.Ledger)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Post("/:id/stock", itemHandler.AdjustStock)

	// Sales
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.Ledger)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Delete)
	api.Get("/stats", saleHandler.Stats)

	// Reports
	if deps.Reports != nil {
		reports := api.Group("/reports")
		reportHandler := NewReportHandler(deps.Reports)
		reports.Get("/summary", reportHandler.Summary)
		reports.Get("/summary.pdf", reportHandler.SummaryPDF)
		reports.Get("/replenishment", reportHandler.Replenishment)
	}

	// Backup
	backupHandler := NewBackupHandler(deps.Ledger)
	api.Get("/backup", backupHandler.Export)
	api.Post("/backup", backupHandler.Import)

	// Photos
	if deps.Photos != nil {
		photos := api.Group("/photos")
		photoHandler := NewPhotoHandler(deps.Photos)
		photos.Post("/", photoHandler.Upload)
		photos.Get("/:ref", photoHandler.Get)
	}
}
