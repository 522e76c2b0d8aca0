// Package ledger implementa el libro de inventario de la tienda: catálogo de artículos,
// ventas y la conciliación de stock entre ambos.
//
// Toda mutación calcula su efecto completo antes de aplicarlo y lo aplica dentro de una
// única sección crítica, de modo que ningún lector observa un estado intermedio
// (por ejemplo, venta registrada con el stock aún sin descontar). Una operación
// rechazada no modifica nada ni notifica al observador.
package ledger

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tiendita/internal/domain"
	"github.com/jhoicas/tiendita/internal/domain/entity"
	"github.com/jhoicas/tiendita/internal/domain/repository"
	"github.com/jhoicas/tiendita/pkg/money"
)

// Observer recibe una copia del estado después de cada mutación exitosa.
type Observer interface {
	Notify(snap entity.Snapshot)
}

// ObserverFunc adapta una función a Observer.
type ObserverFunc func(snap entity.Snapshot)

// Notify implementa Observer.
func (f ObserverFunc) Notify(snap entity.Snapshot) { f(snap) }

// Ledger es dueño de las colecciones de artículos y ventas.
// Ambas se mantienen en orden de más reciente a más antiguo.
type Ledger struct {
	mu    sync.RWMutex
	items []*entity.Item
	sales []*entity.Sale

	now      func() time.Time
	newID    func() string
	observer Observer
	log      zerolog.Logger
}

// Option configura el Ledger.
type Option func(*Ledger)

// WithClock reemplaza el reloj (útil en tests).
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator reemplaza el generador de IDs.
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) { l.newID = gen }
}

// WithObserver inyecta el efecto de persistencia.
func WithObserver(o Observer) Option {
	return func(l *Ledger) { l.observer = o }
}

// WithLogger inyecta el logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// New construye un ledger vacío.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ItemInput datos para crear un artículo. Price y Stock se interpretan según TrackBy.
type ItemInput struct {
	Name      string
	SKU       string
	Photo     string
	TrackBy   entity.TrackMode
	Price     float64
	Stock     float64
	UnitLabel string
}

// ItemPatch campos opcionales a fusionar en un artículo existente.
type ItemPatch struct {
	Name      *string
	SKU       *string
	Photo     *string
	UnitLabel *string
	TrackBy   *entity.TrackMode
	Price     *float64
	Stock     *float64
}

// SaleInput datos para registrar una venta. OverridePrice reemplaza el precio de catálogo si es finito.
type SaleInput struct {
	ItemID        string
	Qty           float64
	OverridePrice *float64
	Note          string
	Photo         string
}

// SalePatch cambios sobre una venta existente.
// Si Price se omite (o no es finito) se toma el precio ACTUAL del catálogo, no la foto original.
type SalePatch struct {
	Qty   *float64
	Price *float64
	Note  *string
	Photo *string
}

// Load reemplaza el estado con lo guardado en el almacén. Una clave ausente o con
// formato inválido se toma como colección vacía, de forma independiente para cada clave.
func (l *Ledger) Load(ctx context.Context, store repository.KeyValueStore) {
	var items []entity.Item
	if err := store.Get(ctx, repository.KeyItems, &items); err != nil {
		l.logLoadFallback(repository.KeyItems, err)
		items = nil
	}
	var sales []entity.Sale
	if err := store.Get(ctx, repository.KeySales, &sales); err != nil {
		l.logLoadFallback(repository.KeySales, err)
		sales = nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = itemPointers(items)
	l.sales = salePointers(sales)
	l.log.Info().Int("items", len(l.items)).Int("sales", len(l.sales)).Msg("estado cargado")
}

func (l *Ledger) logLoadFallback(key string, err error) {
	if errors.Is(err, repository.ErrKeyNotFound) {
		return
	}
	l.log.Warn().Err(err).Str("key", key).Msg("colección ilegible, se usa vacía")
}

// CreateItem normaliza la entrada y agrega el artículo al inicio del catálogo.
// No falla: stock y precio negativos o no finitos se llevan a cero. La validación de
// nombre vacío corresponde a la capa de presentación.
func (l *Ledger) CreateItem(in ItemInput) *entity.Item {
	mode, ok := entity.ParseTrackMode(string(in.TrackBy))
	if !ok {
		mode = entity.TrackByUnit
	}
	label := strings.TrimSpace(in.UnitLabel)
	if label == "" {
		label = mode.DefaultUnitLabel()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	item := &entity.Item{
		ID:        l.newID(),
		Name:      strings.TrimSpace(in.Name),
		SKU:       strings.TrimSpace(in.SKU),
		Photo:     in.Photo,
		TrackBy:   mode,
		Price:     money.ClampFloat(in.Price),
		Stock:     money.ClampFloat(in.Stock),
		UnitLabel: label,
		CreatedAt: now,
		UpdatedAt: now,
	}
	l.items = append([]*entity.Item{item}, l.items...)
	l.commit()

	l.log.Info().Str("item_id", item.ID).Str("track_by", string(mode)).Msg("artículo creado")
	out := *item
	return &out
}

// UpdateItem fusiona los campos presentes del patch. El modo de seguimiento no se puede
// cambiar: un patch que lo intente se rechaza con ErrInvalidInput.
func (l *Ledger) UpdateItem(id string, in ItemPatch) (*entity.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item := l.findItem(id)
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.TrackBy != nil && *in.TrackBy != item.TrackBy {
		l.log.Debug().Str("item_id", id).Msg("cambio de trackBy rechazado")
		return nil, domain.ErrInvalidInput
	}

	next := *item
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			next.Name = name
		}
	}
	if in.SKU != nil {
		next.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Photo != nil {
		next.Photo = *in.Photo
	}
	if in.UnitLabel != nil {
		next.UnitLabel = strings.TrimSpace(*in.UnitLabel)
		if next.UnitLabel == "" {
			next.UnitLabel = next.TrackBy.DefaultUnitLabel()
		}
	}
	if in.Price != nil {
		next.Price = money.ClampFloat(*in.Price)
	}
	if in.Stock != nil {
		next.Stock = money.ClampFloat(*in.Stock)
	}
	next.UpdatedAt = l.now()

	*item = next
	l.commit()
	out := next
	return &out, nil
}

// DeleteItem elimina el artículo y, si cascadeSales es true, todas sus ventas.
// Sin cascada las ventas quedan huérfanas: se ocultan en Sales() y no cuentan en estadísticas.
func (l *Ledger) DeleteItem(id string, cascadeSales bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.itemIndex(id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	items := make([]*entity.Item, 0, len(l.items)-1)
	items = append(items, l.items[:idx]...)
	items = append(items, l.items[idx+1:]...)

	sales := l.sales
	removed := 0
	if cascadeSales {
		sales = make([]*entity.Sale, 0, len(l.sales))
		for _, s := range l.sales {
			if s.ItemID == id {
				removed++
				continue
			}
			sales = append(sales, s)
		}
	}

	l.items = items
	l.sales = sales
	l.commit()

	l.log.Info().Str("item_id", id).Bool("cascade", cascadeSales).Int("sales_removed", removed).Msg("artículo eliminado")
	return nil
}

// AdjustStock suma el delta del modo del artículo (deltaUnits o deltaWeight) y
// recorta el resultado en cero. Un delta no finito se ignora.
func (l *Ledger) AdjustStock(id string, deltaUnits, deltaWeight float64) (*entity.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item := l.findItem(id)
	if item == nil {
		return nil, domain.ErrNotFound
	}
	raw := deltaUnits
	if item.TrackBy == entity.TrackByWeight {
		raw = deltaWeight
	}
	delta, ok := money.FromFloat(raw)
	if !ok {
		delta = decimal.Zero
	}

	item.Stock = entity.NonNegative(item.Stock.Add(delta))
	item.UpdatedAt = l.now()
	l.commit()

	out := *item
	return &out, nil
}

// RecordSale registra una venta y descuenta el stock en una sola unidad atómica.
//
// Rechazos (sin cambios de estado):
//   - domain.ErrNotFound          el artículo no existe.
//   - domain.ErrEmptyQuantity     la cantidad, recortada en cero, es cero.
//   - domain.ErrInsufficientStock el stock disponible es menor que la cantidad.
func (l *Ledger) RecordSale(in SaleInput) (*entity.Sale, error) {
	qty := money.ClampFloat(in.Qty)

	l.mu.Lock()
	defer l.mu.Unlock()

	item := l.findItem(in.ItemID)
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if qty.IsZero() {
		l.log.Debug().Str("item_id", item.ID).Msg("venta rechazada: cantidad cero")
		return nil, domain.ErrEmptyQuantity
	}
	if item.Stock.LessThan(qty) {
		l.log.Debug().Str("item_id", item.ID).Str("stock", item.Stock.String()).Str("qty", qty.String()).Msg("venta rechazada: stock insuficiente")
		return nil, domain.ErrInsufficientStock
	}

	price := item.Price
	if in.OverridePrice != nil {
		if p, ok := money.FromFloat(*in.OverridePrice); ok {
			price = entity.NonNegative(p)
		}
	}
	now := l.now()
	sale := &entity.Sale{
		ID:        l.newID(),
		ItemID:    item.ID,
		TrackBy:   item.TrackBy,
		Qty:       qty,
		Price:     price,
		Total:     qty.Mul(price),
		Note:      strings.TrimSpace(in.Note),
		Photo:     in.Photo,
		Timestamp: now,
	}

	item.Stock = item.Stock.Sub(qty)
	item.UpdatedAt = now
	l.sales = append([]*entity.Sale{sale}, l.sales...)
	l.commit()

	l.log.Info().Str("sale_id", sale.ID).Str("item_id", item.ID).Str("qty", qty.String()).Str("total", sale.Total.String()).Msg("venta registrada")
	out := *sale
	return &out, nil
}

// UpdateSale edita una venta conciliando el stock con delta = nueva cantidad - cantidad anterior.
// Si el delta es positivo y supera el stock disponible se rechaza con ErrInsufficientStock y la
// venta conserva sus valores. El precio se toma del patch si es finito; si no, del precio
// actual del catálogo. Total se recalcula como cantidad * precio.
func (l *Ledger) UpdateSale(id string, in SalePatch) (*entity.Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sale := l.findSale(id)
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	item := l.findItem(sale.ItemID)
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.TrackBy != sale.TrackBy {
		return nil, domain.ErrInvalidInput
	}

	newQty := sale.Qty
	if in.Qty != nil {
		newQty = money.ClampFloat(*in.Qty)
	}
	delta := newQty.Sub(sale.Qty)
	if delta.IsPositive() && item.Stock.LessThan(delta) {
		l.log.Debug().Str("sale_id", id).Str("delta", delta.String()).Msg("edición rechazada: stock insuficiente")
		return nil, domain.ErrInsufficientStock
	}

	price := item.Price
	if in.Price != nil {
		if p, ok := money.FromFloat(*in.Price); ok {
			price = entity.NonNegative(p)
		}
	}

	next := *sale
	next.Qty = newQty
	next.Price = price
	next.Total = newQty.Mul(price)
	if in.Note != nil {
		next.Note = strings.TrimSpace(*in.Note)
	}
	if in.Photo != nil {
		next.Photo = *in.Photo
	}

	item.Stock = entity.NonNegative(item.Stock.Sub(delta))
	item.UpdatedAt = l.now()
	*sale = next
	l.commit()

	l.log.Info().Str("sale_id", id).Str("delta", delta.String()).Msg("venta editada")
	out := next
	return &out, nil
}

// DeleteSale elimina la venta y devuelve su cantidad al stock del artículo (si aún existe).
func (l *Ledger) DeleteSale(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.saleIndex(id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	sale := l.sales[idx]
	if item := l.findItem(sale.ItemID); item != nil && item.TrackBy == sale.TrackBy {
		item.Stock = item.Stock.Add(entity.NonNegative(sale.Qty))
		item.UpdatedAt = l.now()
	}
	sales := make([]*entity.Sale, 0, len(l.sales)-1)
	sales = append(sales, l.sales[:idx]...)
	sales = append(sales, l.sales[idx+1:]...)
	l.sales = sales
	l.commit()

	l.log.Info().Str("sale_id", id).Str("item_id", sale.ItemID).Msg("venta eliminada")
	return nil
}

// Items devuelve una copia del catálogo (más reciente primero).
func (l *Ledger) Items() []entity.Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copyItems(l.items)
}

// Item devuelve una copia del artículo o ErrNotFound.
func (l *Ledger) Item(id string) (*entity.Item, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	item := l.findItem(id)
	if item == nil {
		return nil, domain.ErrNotFound
	}
	out := *item
	return &out, nil
}

// Sales devuelve las ventas visibles: las que referencian un artículo existente.
func (l *Ledger) Sales() []entity.Sale {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]entity.Sale, 0, len(l.sales))
	for _, s := range l.sales {
		if l.findItem(s.ItemID) != nil {
			out = append(out, *s)
		}
	}
	return out
}

// AllSales devuelve todas las ventas, incluidas las huérfanas.
func (l *Ledger) AllSales() []entity.Sale {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copySales(l.sales)
}

// Sale devuelve una copia de la venta o ErrNotFound.
func (l *Ledger) Sale(id string) (*entity.Sale, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	sale := l.findSale(id)
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	out := *sale
	return &out, nil
}

// Stats calcula las estadísticas sobre el estado actual.
func (l *Ledger) Stats() map[string]entity.ItemStats {
	snap := l.Snapshot()
	return ComputeStats(snap.Items, snap.Sales)
}

// Snapshot copia consistente de ambas colecciones.
func (l *Ledger) Snapshot() entity.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshotLocked()
}

// commit notifica al observador; se llama con el lock de escritura tomado para que
// los snapshots lleguen en el mismo orden que las mutaciones.
func (l *Ledger) commit() {
	if l.observer == nil {
		return
	}
	l.observer.Notify(l.snapshotLocked())
}

func (l *Ledger) snapshotLocked() entity.Snapshot {
	return entity.Snapshot{Items: copyItems(l.items), Sales: copySales(l.sales)}
}

func (l *Ledger) findItem(id string) *entity.Item {
	if idx := l.itemIndex(id); idx >= 0 {
		return l.items[idx]
	}
	return nil
}

func (l *Ledger) itemIndex(id string) int {
	for i, it := range l.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) findSale(id string) *entity.Sale {
	if idx := l.saleIndex(id); idx >= 0 {
		return l.sales[idx]
	}
	return nil
}

func (l *Ledger) saleIndex(id string) int {
	for i, s := range l.sales {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func copyItems(src []*entity.Item) []entity.Item {
	out := make([]entity.Item, len(src))
	for i, it := range src {
		out[i] = *it
	}
	return out
}

func copySales(src []*entity.Sale) []entity.Sale {
	out := make([]entity.Sale, len(src))
	for i, s := range src {
		out[i] = *s
	}
	return out
}

func itemPointers(src []entity.Item) []*entity.Item {
	out := make([]*entity.Item, len(src))
	for i := range src {
		it := src[i]
		out[i] = &it
	}
	return out
}

func salePointers(src []entity.Sale) []*entity.Sale {
	out := make([]*entity.Sale, len(src))
	for i := range src {
		s := src[i]
		out[i] = &s
	}
	return out
}
