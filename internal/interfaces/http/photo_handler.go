package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tiendita/internal/application/dto"
	"github.com/jhoicas/tiendita/internal/application/photo"
)

// PhotoHandler sube y descarga fotos de artículos y ventas.
type PhotoHandler struct {
	svc *photo.Service
}

// NewPhotoHandler construye el handler.
func NewPhotoHandler(svc *photo.Service) *PhotoHandler {
	return &PhotoHandler{svc: svc}
}

// Upload godoc
// @Summary      Subir foto
// @Description  Acepta multipart (campo file) o el cuerpo crudo de la imagen. Se guarda como JPEG reducido.
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  false  "Imagen"
// @Success      201   {object}  dto.PhotoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/photos [post]
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	raw := c.Body()
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return invalidBody(c)
		}
		defer f.Close()
		if raw, err = io.ReadAll(f); err != nil {
			return invalidBody(c)
		}
	}
	if len(raw) == 0 {
		return validation(c, "imagen requerida")
	}
	ref, err := h.svc.Store(c.Context(), raw)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PhotoResponse{Ref: ref})
}

// Get godoc
// @Summary      Descargar foto
// @Tags         photos
// @Produce      image/jpeg
// @Param        ref  path  string  true  "Referencia (photo:<id>) o id"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/photos/{ref} [get]
func (h *PhotoHandler) Get(c *fiber.Ctx) error {
	data, err := h.svc.Load(c.Context(), c.Params("ref"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/jpeg")
	c.Set(fiber.HeaderCacheControl, "private, max-age=86400")
	return c.Send(data)
}
