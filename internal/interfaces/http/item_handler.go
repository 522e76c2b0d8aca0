package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tiendita/internal/application/dto"
	"github.com/jhoicas/tiendita/internal/application/ledger"
	"github.com/jhoicas/tiendita/internal/domain/entity"
)

// ItemHandler maneja las peticiones HTTP del catálogo de artículos.
type ItemHandler struct {
	ledger *ledger.Ledger
}

// NewItemHandler construye el handler.
func NewItemHandler(l *ledger.Ledger) *ItemHandler {
	return &ItemHandler{ledger: l}
}

// List godoc
// @Summary      Listar o buscar artículos
// @Description  Más recientes primero. Con q filtra por nombre o SKU sin distinguir mayúsculas ni tildes.
// @Tags         items
// @Produce      json
// @Param        q    query  string  false  "Texto a buscar"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		return c.JSON(dto.NewItemListResponse(h.ledger.Search(q)))
	}
	return c.JSON(dto.NewItemListResponse(h.ledger.Items()))
}

// Create godoc
// @Summary      Crear artículo
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if strings.TrimSpace(in.Name) == "" {
		return validation(c, "name es requerido")
	}
	mode, ok := entity.ParseTrackMode(in.TrackBy)
	if !ok {
		return validation(c, "trackBy debe ser unit o weight")
	}
	item := h.ledger.CreateItem(ledger.ItemInput{
		Name:      in.Name,
		SKU:       in.SKU,
		Photo:     in.Photo,
		TrackBy:   mode,
		Price:     in.Price,
		Stock:     in.Stock,
		UnitLabel: in.UnitLabel,
	})
	return c.Status(fiber.StatusCreated).JSON(dto.NewItemResponse(item))
}

// GetByID godoc
// @Summary      Obtener artículo con sus estadísticas
// @Tags         items
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.ledger.Item(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ItemDetailResponse{
		ItemResponse: dto.NewItemResponse(item),
		Stats:        dto.NewItemStatsResponse(h.ledger.Stats()[item.ID]),
	})
}

// Update godoc
// @Summary      Actualizar artículo
// @Description  Solo se aplican los campos presentes. trackBy no puede cambiar.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del artículo"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return validation(c, "name no puede quedar vacío")
	}
	patch := ledger.ItemPatch{
		Name:      in.Name,
		SKU:       in.SKU,
		Photo:     in.Photo,
		UnitLabel: in.UnitLabel,
		Price:     in.Price,
		Stock:     in.Stock,
	}
	if in.TrackBy != nil && *in.TrackBy != "" {
		mode, ok := entity.ParseTrackMode(*in.TrackBy)
		if !ok {
			return validation(c, "trackBy debe ser unit o weight")
		}
		patch.TrackBy = &mode
	}
	item, err := h.ledger.UpdateItem(c.Params("id"), patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}

// Delete godoc
// @Summary      Eliminar artículo
// @Description  Con cascade=true también elimina sus ventas; si no, quedan huérfanas y se ocultan.
// @Tags         items
// @Param        id       path   string  true   "ID del artículo"
// @Param        cascade  query  bool    false  "Eliminar también las ventas"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.ledger.DeleteItem(c.Params("id"), c.QueryBool("cascade", false)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AdjustStock godoc
// @Summary      Ajustar stock
// @Description  Suma el delta del modo del artículo; el resultado nunca baja de cero.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del artículo"
// @Param        body  body  dto.AdjustStockRequest  true  "Delta"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/stock [post]
func (h *ItemHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.ledger.AdjustStock(c.Params("id"), in.DeltaUnits, in.DeltaWeight)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewItemResponse(item))
}
