package hook

import (
	"context"
	"errors"
	"fmt"

	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/infrastructure/logger"
	"github.com/lifeflow/core/internal/ports"
)

// Registry owns one activated hook per declared collection.
type Registry struct {
	hooks   map[string]*Hook
	pending []<-chan struct{}
}

// NewRegistry creates and activates a hook for every collection in the
// schema registry. Use Wait to block until the first loads settle.
func NewRegistry(ctx context.Context, gw ports.Gateway, log *logger.Logger) *Registry {
	r := &Registry{hooks: map[string]*Hook{}}
	for _, name := range schema.Names() {
		h := New(gw, log)
		r.pending = append(r.pending, h.Activate(ctx, name))
		r.hooks[name] = h
	}
	return r
}

// Wait blocks until every activation load has settled or ctx is done.
func (r *Registry) Wait(ctx context.Context) error {
	for _, done := range r.pending {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Hook returns the hook bound to name.
func (r *Registry) Hook(name string) (*Hook, bool) {
	h, ok := r.hooks[name]
	return h, ok
}

// MustHook is Hook for names known at compile time.
func (r *Registry) MustHook(name string) *Hook {
	h, ok := r.hooks[name]
	if !ok {
		panic(fmt.Sprintf("hook: no hook for collection %q", name))
	}
	return h
}

// ReloadAll reloads every hook and joins the failures.
func (r *Registry) ReloadAll(ctx context.Context) error {
	var errs []error
	for _, name := range schema.Names() {
		if err := r.hooks[name].Reload(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
