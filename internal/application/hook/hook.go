// Package hook keeps a live snapshot of one record collection in step with
// the store.
//
// Every mutator writes through the gateway and then re-reads the whole
// collection, so after a mutator returns the snapshot is what storage holds.
package hook

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/infrastructure/logger"
	"github.com/lifeflow/core/internal/ports"
)

// ErrNotActivated is returned by mutators called before Activate.
var ErrNotActivated = errors.New("hook is not bound to a collection")

// Hook is a reloadable snapshot of one collection.
type Hook struct {
	gw     ports.Gateway
	logger *logger.Logger

	mu         sync.RWMutex
	collection string
	data       []entities.Record
	loading    bool
	// gen changes on every Activate; loads started under an older gen are dropped.
	gen uint64
	// seq orders loads within a gen so an older read never replaces a newer one.
	seq     uint64
	applied uint64
}

func New(gw ports.Gateway, log *logger.Logger) *Hook {
	return &Hook{
		gw:     gw,
		logger: log.WithComponent("hook"),
	}
}

// Activate binds the hook to name, drops the current snapshot and starts a
// load in the background. The returned channel is closed once that load has
// settled, whether it succeeded or not.
func (h *Hook) Activate(ctx context.Context, name string) <-chan struct{} {
	h.mu.Lock()
	h.gen++
	h.collection = name
	h.data = nil
	h.loading = true
	gen, seq := h.gen, h.nextSeqLocked()
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.load(ctx, name, gen, seq)
	}()
	return done
}

// Reload re-reads the bound collection synchronously.
func (h *Hook) Reload(ctx context.Context) error {
	h.mu.Lock()
	name, gen, seq := h.collection, h.gen, h.nextSeqLocked()
	h.mu.Unlock()

	if name == "" {
		return ErrNotActivated
	}
	return h.load(ctx, name, gen, seq)
}

func (h *Hook) nextSeqLocked() uint64 {
	h.seq++
	return h.seq
}

func (h *Hook) load(ctx context.Context, name string, gen, seq uint64) error {
	records, err := h.gw.GetAll(ctx, name)

	h.mu.Lock()
	defer h.mu.Unlock()

	if gen != h.gen || seq < h.applied {
		return nil
	}
	h.applied = seq
	h.loading = false

	if err != nil {
		h.logger.WithCollection(name).WithError(err).Errorw("Failed to load collection")
		return fmt.Errorf("load %s: %w", name, err)
	}
	h.data = records
	return nil
}

// Data returns a copy of the current snapshot.
func (h *Hook) Data() []entities.Record {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]entities.Record, len(h.data))
	for i, r := range h.data {
		out[i] = r.Clone()
	}
	return out
}

// Loading reports whether the activation load is still pending.
func (h *Hook) Loading() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loading
}

// Collection returns the bound collection name.
func (h *Hook) Collection() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.collection
}

func (h *Hook) AddItem(ctx context.Context, record entities.Record) error {
	return h.write(ctx, func(name string) error {
		return h.gw.Add(ctx, name, record)
	})
}

func (h *Hook) UpdateItem(ctx context.Context, record entities.Record) error {
	return h.write(ctx, func(name string) error {
		return h.gw.Update(ctx, name, record)
	})
}

func (h *Hook) RemoveItem(ctx context.Context, id string) error {
	return h.write(ctx, func(name string) error {
		return h.gw.Remove(ctx, name, id)
	})
}

// write runs op and reloads on success. A reload failure is logged by load
// and is not reported to the caller; the write itself has committed.
func (h *Hook) write(ctx context.Context, op func(name string) error) error {
	name := h.Collection()
	if name == "" {
		return ErrNotActivated
	}
	if err := op(name); err != nil {
		return err
	}
	_ = h.Reload(ctx)
	return nil
}
