// Package persist refleja el estado del ledger en el almacén local.
package persist

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tiendita/internal/domain/entity"
	"github.com/jhoicas/tiendita/internal/domain/repository"
)

const writeTimeout = 5 * time.Second

// Mirror implementa ledger.Observer. Notify no bloquea: guarda solo el último snapshot
// pendiente y una goroutine lo escribe en el almacén. Si la escritura falla se registra
// y se descarta; no hay reintentos.
type Mirror struct {
	store repository.KeyValueStore
	log   zerolog.Logger

	mu      sync.Mutex
	pending *entity.Snapshot

	wake      chan struct{}
	stop      chan struct{}
	done      chan struct{}
	started   atomic.Bool
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewMirror construye el espejo; llamar Start para iniciar la escritura en segundo plano.
func NewMirror(store repository.KeyValueStore, log zerolog.Logger) *Mirror {
	return &Mirror{
		store: store,
		log:   log,
		wake:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Notify registra el snapshot más reciente.
func (m *Mirror) Notify(snap entity.Snapshot) {
	m.mu.Lock()
	m.pending = &snap
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// Start lanza la goroutine de escritura. Llamadas repetidas no tienen efecto.
func (m *Mirror) Start() {
	m.startOnce.Do(func() {
		m.started.Store(true)
		go m.loop()
	})
}

// Close detiene la goroutine tras escribir el último snapshot pendiente. Sin Start
// previo solo escribe lo pendiente.
func (m *Mirror) Close() {
	m.startOnce.Do(func() {})
	if !m.started.Load() {
		m.Flush()
		return
	}
	m.stopOnce.Do(func() { close(m.stop) })
	<-m.done
}

func (m *Mirror) loop() {
	defer close(m.done)
	for {
		select {
		case <-m.wake:
			m.Flush()
		case <-m.stop:
			m.Flush()
			return
		}
	}
}

// Flush escribe el snapshot pendiente, si existe.
func (m *Mirror) Flush() {
	m.mu.Lock()
	snap := m.pending
	m.pending = nil
	m.mu.Unlock()
	if snap == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	err := m.store.SetMany(ctx, map[string]any{
		repository.KeyItems: snap.Items,
		repository.KeySales: snap.Sales,
	})
	if err != nil {
		m.log.Warn().Err(err).Msg("no se pudo guardar el estado; se continúa en memoria")
		return
	}
	m.log.Debug().Int("items", len(snap.Items)).Int("sales", len(snap.Sales)).Msg("estado guardado")
}
