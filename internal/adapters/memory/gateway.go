// Package memory implements the record store in process memory. Records are
// kept as encoded JSON so callers never share state with the store.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/ports"
)

type tables map[string]map[string][]byte

func (t tables) clone() tables {
	out := make(tables, len(t))
	for name, rows := range t {
		copied := make(map[string][]byte, len(rows))
		for id, body := range rows {
			copied[id] = body
		}
		out[name] = copied
	}
	return out
}

// Gateway is a ports.Gateway over maps.
type Gateway struct {
	mu     sync.Mutex
	data   tables
	closed bool
}

var _ ports.Gateway = (*Gateway)(nil)

func NewGateway() *Gateway {
	return &Gateway{}
}

func (g *Gateway) Open(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.openLocked()
}

func (g *Gateway) openLocked() error {
	if g.closed {
		return entities.NewStorageError("open", "", fmt.Errorf("gateway is closed"))
	}
	if g.data == nil {
		g.data = tables{}
	}
	for _, name := range schema.Names() {
		if _, ok := g.data[name]; !ok {
			g.data[name] = map[string][]byte{}
		}
	}
	return nil
}

func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	return nil
}

func (g *Gateway) GetAll(ctx context.Context, collection string) ([]entities.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.openLocked(); err != nil {
		return nil, err
	}
	return view{g.data}.GetAll(ctx, collection)
}

func (g *Gateway) GetByID(ctx context.Context, collection, id string) (entities.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.openLocked(); err != nil {
		return nil, err
	}
	return view{g.data}.GetByID(ctx, collection, id)
}

func (g *Gateway) GetAllByIndex(ctx context.Context, collection, index string, value any) ([]entities.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.openLocked(); err != nil {
		return nil, err
	}
	return view{g.data}.GetAllByIndex(ctx, collection, index, value)
}

func (g *Gateway) Add(ctx context.Context, collection string, record entities.Record) error {
	return g.Tx(ctx, func(tx ports.Tx) error { return tx.Add(ctx, collection, record) })
}

func (g *Gateway) Update(ctx context.Context, collection string, record entities.Record) error {
	return g.Tx(ctx, func(tx ports.Tx) error { return tx.Update(ctx, collection, record) })
}

func (g *Gateway) Remove(ctx context.Context, collection, id string) error {
	return g.Tx(ctx, func(tx ports.Tx) error { return tx.Remove(ctx, collection, id) })
}

// Tx stages writes on a copy and swaps it in when fn succeeds. The gateway
// is locked for the duration of fn, so fn must only use tx.
func (g *Gateway) Tx(ctx context.Context, fn func(tx ports.Tx) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.openLocked(); err != nil {
		return err
	}

	staged := g.data.clone()
	if err := fn(view{staged}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return entities.NewStorageError("commit", "", err)
	}
	g.data = staged
	return nil
}

// view implements ports.Tx over one set of tables.
type view struct {
	data tables
}

func (v view) rows(collection string) (schema.Collection, map[string][]byte, error) {
	c, ok := schema.Lookup(collection)
	if !ok {
		return schema.Collection{}, nil, fmt.Errorf("%w: %q", entities.ErrUnknownCollection, collection)
	}
	return c, v.data[c.Name], nil
}

func (v view) GetAll(_ context.Context, collection string) ([]entities.Record, error) {
	c, rows, err := v.rows(collection)
	if err != nil {
		return nil, err
	}
	return decodeSorted(c, rows, func(entities.Record) bool { return true })
}

func (v view) GetByID(_ context.Context, collection, id string) (entities.Record, error) {
	c, rows, err := v.rows(collection)
	if err != nil {
		return nil, err
	}
	body, ok := rows[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", entities.ErrNotFound, c.Name, id)
	}
	r, err := entities.DecodeRecord(body)
	if err != nil {
		return nil, entities.NewStorageError("decode", c.Name, err)
	}
	return r, nil
}

func (v view) GetAllByIndex(_ context.Context, collection, index string, value any) ([]entities.Record, error) {
	c, rows, err := v.rows(collection)
	if err != nil {
		return nil, err
	}
	idx, ok := c.Index(index)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", entities.ErrUnknownIndex, c.Name, index)
	}
	want, err := indexKey(value)
	if err != nil {
		return nil, fmt.Errorf("encode index value: %w", err)
	}
	return decodeSorted(c, rows, func(r entities.Record) bool {
		return matches(r[idx.Field], want, idx.MultiEntry)
	})
}

func (v view) Add(_ context.Context, collection string, record entities.Record) error {
	c, rows, err := v.rows(collection)
	if err != nil {
		return err
	}
	id, body, err := encode(record)
	if err != nil {
		return err
	}
	if _, exists := rows[id]; exists {
		return fmt.Errorf("%w: %s/%s", entities.ErrDuplicateKey, c.Name, id)
	}
	rows[id] = body
	return nil
}

func (v view) Update(_ context.Context, collection string, record entities.Record) error {
	_, rows, err := v.rows(collection)
	if err != nil {
		return err
	}
	id, body, err := encode(record)
	if err != nil {
		return err
	}
	rows[id] = body
	return nil
}

func (v view) Remove(_ context.Context, collection, id string) error {
	_, rows, err := v.rows(collection)
	if err != nil {
		return err
	}
	delete(rows, id)
	return nil
}

func matches(field, want any, multiEntry bool) bool {
	if want == nil {
		return false
	}
	if multiEntry {
		if items, ok := field.([]any); ok {
			for _, it := range items {
				if k, err := indexKey(it); err == nil && k == want {
					return true
				}
			}
			return false
		}
	}
	k, err := indexKey(field)
	return err == nil && k == want
}

// composite is the JSON encoding of an object or array index value.
type composite string

// indexKey normalises v the way SQLite compares json_extract results:
// booleans are the integers 0 and 1 and numbers compare by value.
func indexKey(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var n any
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	switch t := n.(type) {
	case bool:
		if t {
			return 1.0, nil
		}
		return 0.0, nil
	case nil, float64, string:
		return t, nil
	}
	return composite(data), nil
}

func decodeSorted(c schema.Collection, rows map[string][]byte, keep func(entities.Record) bool) ([]entities.Record, error) {
	keys := make([]string, 0, len(rows))
	for id := range rows {
		keys = append(keys, id)
	}
	sort.Strings(keys)

	out := make([]entities.Record, 0, len(keys))
	for _, id := range keys {
		r, err := entities.DecodeRecord(rows[id])
		if err != nil {
			return nil, entities.NewStorageError("decode", c.Name, err)
		}
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func encode(record entities.Record) (string, []byte, error) {
	id, ok := record.ID()
	if !ok {
		return "", nil, entities.ErrMissingID
	}
	body, err := json.Marshal(record)
	if err != nil {
		return "", nil, fmt.Errorf("encode record %s: %w", id, err)
	}
	return id, body, nil
}
