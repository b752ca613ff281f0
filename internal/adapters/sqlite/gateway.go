// Package sqlite implements the record store on an embedded SQLite database.
//
// Each collection is a table of (id, body) rows where body is the record's
// JSON. Scalar indexes are expression indexes over json_extract; multi-entry
// indexes are side tables of (value, id) pairs maintained in the same
// transaction as the record write.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/ports"
)

// Gateway is a ports.Gateway backed by SQLite.
type Gateway struct {
	db *sqlx.DB

	mu      sync.Mutex
	opened  bool
	applied schema.Plan
}

var _ ports.Gateway = (*Gateway)(nil)

// NewGateway returns a gateway over an open database handle. The schema is
// brought up to date on the first call to Open or to any other method.
func NewGateway(db *sqlx.DB) (*Gateway, error) {
	if db == nil {
		return nil, fmt.Errorf("new gateway: db is nil")
	}
	return &Gateway{db: db}, nil
}

// Open creates whatever collections and indexes the registry declares and the
// database lacks. It never drops or rewrites existing tables or rows.
func (g *Gateway) Open(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.opened {
		return nil
	}

	plan, err := g.upgrade(ctx)
	if err != nil {
		return entities.NewStorageError("open", "", err)
	}
	g.applied = plan
	g.opened = true
	return nil
}

// Applied returns what the first successful Open created.
func (g *Gateway) Applied() schema.Plan {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.applied
}

// Close closes the underlying database.
func (g *Gateway) Close() error {
	return g.db.Close()
}

func (g *Gateway) GetAll(ctx context.Context, collection string) ([]entities.Record, error) {
	c, err := g.prepare(ctx, collection)
	if err != nil {
		return nil, err
	}
	return getAll(ctx, g.db, c)
}

func (g *Gateway) GetByID(ctx context.Context, collection, id string) (entities.Record, error) {
	c, err := g.prepare(ctx, collection)
	if err != nil {
		return nil, err
	}
	return getByID(ctx, g.db, c, id)
}

func (g *Gateway) GetAllByIndex(ctx context.Context, collection, index string, value any) ([]entities.Record, error) {
	c, err := g.prepare(ctx, collection)
	if err != nil {
		return nil, err
	}
	return getAllByIndex(ctx, g.db, c, index, value)
}

func (g *Gateway) Add(ctx context.Context, collection string, record entities.Record) error {
	return g.Tx(ctx, func(tx ports.Tx) error {
		return tx.Add(ctx, collection, record)
	})
}

func (g *Gateway) Update(ctx context.Context, collection string, record entities.Record) error {
	return g.Tx(ctx, func(tx ports.Tx) error {
		return tx.Update(ctx, collection, record)
	})
}

func (g *Gateway) Remove(ctx context.Context, collection, id string) error {
	return g.Tx(ctx, func(tx ports.Tx) error {
		return tx.Remove(ctx, collection, id)
	})
}

// Tx runs fn inside one SQLite transaction. fn must only use tx; calling back
// into the gateway from fn can block on a single-connection pool.
func (g *Gateway) Tx(ctx context.Context, fn func(tx ports.Tx) error) error {
	if err := g.Open(ctx); err != nil {
		return err
	}

	sqlTx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return entities.NewStorageError("begin", "", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&txView{g: g, ext: sqlTx}); err != nil {
		if rollbackErr := sqlTx.Rollback(); rollbackErr != nil {
			return entities.NewStorageError("rollback", "", fmt.Errorf("%v (original error: %w)", rollbackErr, err))
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return entities.NewStorageError("commit", "", err)
	}
	return nil
}

// prepare opens the store lazily and resolves the collection descriptor.
func (g *Gateway) prepare(ctx context.Context, collection string) (schema.Collection, error) {
	if err := g.Open(ctx); err != nil {
		return schema.Collection{}, err
	}
	return lookup(collection)
}

func lookup(collection string) (schema.Collection, error) {
	c, ok := schema.Lookup(collection)
	if !ok {
		return schema.Collection{}, fmt.Errorf("%w: %q", entities.ErrUnknownCollection, collection)
	}
	return c, nil
}

// txView implements ports.Tx on an open transaction.
type txView struct {
	g   *Gateway
	ext sqlx.ExtContext
}

func (t *txView) GetAll(ctx context.Context, collection string) ([]entities.Record, error) {
	c, err := lookup(collection)
	if err != nil {
		return nil, err
	}
	return getAll(ctx, t.ext, c)
}

func (t *txView) GetByID(ctx context.Context, collection, id string) (entities.Record, error) {
	c, err := lookup(collection)
	if err != nil {
		return nil, err
	}
	return getByID(ctx, t.ext, c, id)
}

func (t *txView) GetAllByIndex(ctx context.Context, collection, index string, value any) ([]entities.Record, error) {
	c, err := lookup(collection)
	if err != nil {
		return nil, err
	}
	return getAllByIndex(ctx, t.ext, c, index, value)
}

func (t *txView) Add(ctx context.Context, collection string, record entities.Record) error {
	c, err := lookup(collection)
	if err != nil {
		return err
	}
	id, body, err := encode(record)
	if err != nil {
		return err
	}

	var exists int
	err = sqlx.GetContext(ctx, t.ext, &exists, fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE id = ?`, quote(c.Name)), id)
	if err != nil {
		return entities.NewStorageError("add", c.Name, err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s/%s", entities.ErrDuplicateKey, c.Name, id)
	}

	_, err = t.ext.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (id, body) VALUES (?, ?)`, quote(c.Name)), id, body)
	if err != nil {
		if isConstraint(err) {
			return fmt.Errorf("%w: %s/%s", entities.ErrDuplicateKey, c.Name, id)
		}
		return entities.NewStorageError("add", c.Name, err)
	}
	return reindex(ctx, t.ext, c, id)
}

func (t *txView) Update(ctx context.Context, collection string, record entities.Record) error {
	c, err := lookup(collection)
	if err != nil {
		return err
	}
	id, body, err := encode(record)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, body) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body`, quote(c.Name))
	if _, err := t.ext.ExecContext(ctx, query, id, body); err != nil {
		return entities.NewStorageError("update", c.Name, err)
	}
	return reindex(ctx, t.ext, c, id)
}

func (t *txView) Remove(ctx context.Context, collection, id string) error {
	c, err := lookup(collection)
	if err != nil {
		return err
	}
	if _, err := t.ext.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, quote(c.Name)), id); err != nil {
		return entities.NewStorageError("remove", c.Name, err)
	}
	for _, idx := range c.Indexes {
		if !idx.MultiEntry {
			continue
		}
		if _, err := t.ext.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, quote(entryTable(c, idx))), id); err != nil {
			return entities.NewStorageError("remove", c.Name, err)
		}
	}
	return nil
}

func getAll(ctx context.Context, q sqlx.QueryerContext, c schema.Collection) ([]entities.Record, error) {
	var bodies []string
	if err := sqlx.SelectContext(ctx, q, &bodies, fmt.Sprintf(`SELECT body FROM %s ORDER BY id`, quote(c.Name))); err != nil {
		return nil, entities.NewStorageError("get all", c.Name, err)
	}
	return decodeAll(c, bodies)
}

func getByID(ctx context.Context, q sqlx.QueryerContext, c schema.Collection, id string) (entities.Record, error) {
	var body string
	err := sqlx.GetContext(ctx, q, &body, fmt.Sprintf(`SELECT body FROM %s WHERE id = ?`, quote(c.Name)), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s/%s", entities.ErrNotFound, c.Name, id)
		}
		return nil, entities.NewStorageError("get", c.Name, err)
	}
	r, err := entities.DecodeRecord([]byte(body))
	if err != nil {
		return nil, entities.NewStorageError("decode", c.Name, err)
	}
	return r, nil
}

func getAllByIndex(ctx context.Context, q sqlx.QueryerContext, c schema.Collection, index string, value any) ([]entities.Record, error) {
	idx, ok := c.Index(index)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", entities.ErrUnknownIndex, c.Name, index)
	}

	var query string
	if idx.MultiEntry {
		query = fmt.Sprintf(`SELECT c.body FROM %s c JOIN %s e ON e.id = c.id WHERE e.value = ? ORDER BY c.id`,
			quote(c.Name), quote(entryTable(c, idx)))
	} else {
		query = fmt.Sprintf(`SELECT body FROM %s WHERE %s = ? ORDER BY id`, quote(c.Name), extract(idx))
	}

	var bodies []string
	if err := sqlx.SelectContext(ctx, q, &bodies, query, value); err != nil {
		return nil, entities.NewStorageError("get by index", c.Name, err)
	}
	return decodeAll(c, bodies)
}

// reindex refreshes the multi-entry rows of one record from its stored body.
func reindex(ctx context.Context, ext sqlx.ExecerContext, c schema.Collection, id string) error {
	for _, idx := range c.Indexes {
		if !idx.MultiEntry {
			continue
		}
		table := quote(entryTable(c, idx))
		if _, err := ext.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id); err != nil {
			return entities.NewStorageError("index", c.Name, err)
		}
		query := fmt.Sprintf(`INSERT OR IGNORE INTO %s (value, id)
			SELECT j.value, c.id FROM %s c, json_each(c.body, '$.%s') j WHERE c.id = ? AND j.type <> 'null'`,
			table, quote(c.Name), idx.Field)
		if _, err := ext.ExecContext(ctx, query, id); err != nil {
			return entities.NewStorageError("index", c.Name, err)
		}
	}
	return nil
}

func decodeAll(c schema.Collection, bodies []string) ([]entities.Record, error) {
	out := make([]entities.Record, 0, len(bodies))
	for _, body := range bodies {
		r, err := entities.DecodeRecord([]byte(body))
		if err != nil {
			return nil, entities.NewStorageError("decode", c.Name, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func encode(record entities.Record) (string, string, error) {
	id, ok := record.ID()
	if !ok {
		return "", "", entities.ErrMissingID
	}
	body, err := json.Marshal(record)
	if err != nil {
		return "", "", fmt.Errorf("encode record %s: %w", id, err)
	}
	return id, string(body), nil
}

func isConstraint(err error) bool {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
