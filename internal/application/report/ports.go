package report

import (
	"context"

	"github.com/jhoicas/tiendita/internal/domain/entity"
)

// Source entrega artículos y ventas en una sola lectura (implementado por ledger.Ledger).
type Source interface {
	Snapshot() entity.Snapshot
}

// SummaryPDFGenerator dibuja el resumen como documento PDF.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, title string, s *Summary) ([]byte, error)
}
