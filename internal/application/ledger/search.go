package ledger

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/tiendita/internal/domain/entity"
)

// Search filtra el catálogo por nombre o SKU sin distinguir mayúsculas ni tildes
// ("cafe" encuentra "Café"). Una consulta vacía devuelve todo el catálogo.
func (l *Ledger) Search(query string) []entity.Item {
	items := l.Items()
	q := fold(query)
	if q == "" {
		return items
	}
	out := make([]entity.Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(fold(it.Name), q) || strings.Contains(fold(it.SKU), q) {
			out = append(out, it)
		}
	}
	return out
}

// fold quita diacríticos y aplica case folding. Los transformers de x/text guardan
// estado, por eso se crean en cada llamada.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}
