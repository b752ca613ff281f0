// Package version detects that the running build differs from the one that
// last ran against the store.
package version

import (
	"context"
	"fmt"

	"github.com/lifeflow/core/internal/ports"
)

// Key is where the last-seen version is persisted.
const Key = "lifeflow-version"

// Current is the compiled-in version, set with
// -ldflags "-X github.com/lifeflow/core/internal/application/version.Current=..."
var Current = "1.0.0"

// Marker compares and records the application version.
type Marker struct {
	meta    ports.MetaStore
	current string
}

func NewMarker(meta ports.MetaStore, current string) *Marker {
	return &Marker{meta: meta, current: current}
}

// Check reports whether the persisted version differs from the current one,
// which includes the first run, and persists the current version if so.
func (m *Marker) Check(ctx context.Context) (bool, error) {
	seen, ok, err := m.meta.Get(ctx, Key)
	if err != nil {
		return false, fmt.Errorf("check version: %w", err)
	}
	if ok && seen == m.current {
		return false, nil
	}
	if err := m.meta.Set(ctx, Key, m.current); err != nil {
		return false, fmt.Errorf("check version: %w", err)
	}
	return true, nil
}

// Previous returns the persisted version without changing it.
func (m *Marker) Previous(ctx context.Context) (string, bool, error) {
	return m.meta.Get(ctx, Key)
}
