package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tiendita/internal/application/backup"
	"github.com/jhoicas/tiendita/internal/application/dto"
	"github.com/jhoicas/tiendita/internal/application/ledger"
)

// BackupHandler exporta e importa el respaldo completo.
type BackupHandler struct {
	ledger *ledger.Ledger
}

// NewBackupHandler construye el handler.
func NewBackupHandler(l *ledger.Ledger) *BackupHandler {
	return &BackupHandler{ledger: l}
}

// Export godoc
// @Summary      Exportar respaldo
// @Description  Sobre versionado {version, exportedAt, items, sales} con todas las ventas.
// @Tags         backup
// @Produce      json
// @Success      200  {object}  object
// @Router       /api/backup [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	b := h.ledger.Export()
	var buf bytes.Buffer
	if err := backup.Encode(&buf, b); err != nil {
		return writeError(c, err)
	}
	filename := "tiendita-backup-" + b.ExportedAt.Format("2006-01-02") + ".json"
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// Import godoc
// @Summary      Importar respaldo
// @Description  Reemplaza artículos y ventas. Si items o sales faltan o no son arreglos se rechaza sin cambios.
// @Tags         backup
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.ImportBackupResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/backup [post]
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	b, err := backup.Decode(bytes.NewReader(c.Body()))
	if err != nil {
		return writeError(c, err)
	}
	if err := h.ledger.Import(b); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ImportBackupResponse{Items: len(b.Items), Sales: len(b.Sales)})
}
