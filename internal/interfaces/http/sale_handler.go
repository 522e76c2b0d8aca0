package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tiendita/internal/application/dto"
	"github.com/jhoicas/tiendita/internal/application/ledger"
)

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct {
	ledger *ledger.Ledger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(l *ledger.Ledger) *SaleHandler {
	return &SaleHandler{ledger: l}
}

// List godoc
// @Summary      Listar ventas
// @Description  Más recientes primero. No incluye ventas cuyo artículo fue eliminado.
// @Tags         sales
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return validation(c, "limit y offset deben ser enteros")
	}
	return c.JSON(dto.NewSaleListResponse(h.ledger.Sales(), p))
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta el stock. price opcional reemplaza el precio de catálogo.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ItemID == "" {
		return validation(c, "itemId es requerido")
	}
	sale, err := h.ledger.RecordSale(ledger.SaleInput{
		ItemID:        in.ItemID,
		Qty:           in.Qty,
		OverridePrice: in.Price,
		Note:          in.Note,
		Photo:         in.Photo,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSaleResponse(sale))
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.ledger.Sale(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSaleResponse(sale))
}

// Update godoc
// @Summary      Editar venta
// @Description  Ajusta el stock por la diferencia de cantidad. Sin price se toma el precio de catálogo actual.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleRequest  true  "Campos a editar"
// @Success      200   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	sale, err := h.ledger.UpdateSale(c.Params("id"), ledger.SalePatch{
		Qty:   in.Qty,
		Price: in.Price,
		Note:  in.Note,
		Photo: in.Photo,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSaleResponse(sale))
}

// Delete godoc
// @Summary      Eliminar venta
// @Description  Devuelve la cantidad vendida al stock del artículo.
// @Tags         sales
// @Param        id  path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.ledger.DeleteSale(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats godoc
// @Summary      Estadísticas por artículo
// @Description  Unidades, kg e ingresos vendidos, indexados por id de artículo.
// @Tags         sales
// @Produce      json
// @Success      200  {object}  map[string]dto.ItemStatsResponse
// @Router       /api/stats [get]
func (h *SaleHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(dto.NewStatsResponse(h.ledger.Stats()))
}
