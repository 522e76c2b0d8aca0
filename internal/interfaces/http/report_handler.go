package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tiendita/internal/application/dto"
	"github.com/jhoicas/tiendita/internal/application/report"
)

// ReportHandler expone el resumen de ventas e inventario.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de ventas e inventario
// @Description  Una fila por artículo ordenada por ingresos, más los totales. Valores redondeados a dos decimales.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(dto.NewSummaryResponse(h.uc.Summary()))
}

// SummaryPDF godoc
// @Summary      Resumen en PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/summary.pdf [get]
func (h *ReportHandler) SummaryPDF(c *fiber.Ctx) error {
	doc, filename, err := h.uc.PDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(doc)
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Artículos con stock en o bajo el punto de reorden, con la cantidad sugerida para llegar a 1.5x ese punto.
// @Tags         reports
// @Produce      json
// @Param        reorderPoint  query  number  false  "Punto de reorden"  default(5)
// @Success      200  {array}   dto.ReplenishmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/replenishment [get]
func (h *ReportHandler) Replenishment(c *fiber.Ctx) error {
	point := decimal.Zero
	if raw := c.Query("reorderPoint"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return validation(c, "reorderPoint debe ser numérico")
		}
		point = d
	}
	return c.JSON(dto.NewReplenishmentResponse(h.uc.Replenishment(point)))
}
