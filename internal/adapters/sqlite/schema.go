package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/lifeflow/core/internal/domain/schema"
)

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func indexName(c schema.Collection, idx schema.Index) string {
	return "idx_" + c.QualifiedIndexName(idx)
}

// entryTable names the side table backing a multi-entry index.
func entryTable(c schema.Collection, idx schema.Index) string {
	return c.Name + "__" + idx.Name
}

func extract(idx schema.Index) string {
	return fmt.Sprintf(`json_extract(body, '$.%s')`, idx.Field)
}

// inspect reports which declared collections and indexes already exist.
func inspect(ctx context.Context, q sqlx.QueryerContext) (schema.Existing, error) {
	type object struct {
		Type string `db:"type"`
		Name string `db:"name"`
	}
	var objects []object
	err := sqlx.SelectContext(ctx, q, &objects, `SELECT type, name FROM sqlite_master WHERE type IN ('table', 'index')`)
	if err != nil {
		return nil, fmt.Errorf("inspect schema: %w", err)
	}

	tables := map[string]bool{}
	indexes := map[string]bool{}
	for _, o := range objects {
		if o.Type == "table" {
			tables[o.Name] = true
		} else {
			indexes[o.Name] = true
		}
	}

	existing := schema.Existing{}
	for _, c := range schema.Collections() {
		if !tables[c.Name] {
			continue
		}
		have := map[string]bool{}
		for _, idx := range c.Indexes {
			if idx.MultiEntry {
				have[idx.Name] = tables[entryTable(c, idx)]
			} else {
				have[idx.Name] = indexes[indexName(c, idx)]
			}
		}
		existing[c.Name] = have
	}
	return existing, nil
}

// upgrade applies the additive plan in one transaction.
func (g *Gateway) upgrade(ctx context.Context) (schema.Plan, error) {
	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return schema.Plan{}, fmt.Errorf("upgrade: begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := inspect(ctx, tx)
	if err != nil {
		return schema.Plan{}, fmt.Errorf("upgrade: %w", err)
	}

	plan := schema.Missing(existing)
	if plan.Empty() {
		return plan, nil
	}

	for _, c := range plan.Collections {
		query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			body TEXT NOT NULL
		)`, quote(c.Name))
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return schema.Plan{}, fmt.Errorf("upgrade: create collection %s: %w", c.Name, err)
		}
		for _, idx := range c.Indexes {
			if err := createIndex(ctx, tx, c, idx); err != nil {
				return schema.Plan{}, err
			}
		}
	}

	for name, idxs := range plan.Indexes {
		c, _ := schema.Lookup(name)
		for _, idx := range idxs {
			if err := createIndex(ctx, tx, c, idx); err != nil {
				return schema.Plan{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return schema.Plan{}, fmt.Errorf("upgrade: commit transaction: %w", err)
	}
	return plan, nil
}

// createIndex builds one index and fills it from rows already present.
func createIndex(ctx context.Context, tx *sqlx.Tx, c schema.Collection, idx schema.Index) error {
	if !idx.MultiEntry {
		query := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s)`,
			quote(indexName(c, idx)), quote(c.Name), extract(idx))
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("upgrade: create index %s: %w", c.QualifiedIndexName(idx), err)
		}
		return nil
	}

	table := entryTable(c, idx)
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			value NOT NULL,
			id TEXT NOT NULL,
			PRIMARY KEY (value, id)
		)`, quote(table)),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (id)`, quote("idx_"+table+"_id"), quote(table)),
		fmt.Sprintf(`INSERT OR IGNORE INTO %s (value, id)
			SELECT j.value, c.id FROM %s c, json_each(c.body, '$.%s') j WHERE j.type <> 'null'`,
			quote(table), quote(c.Name), idx.Field),
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("upgrade: create index %s: %w", c.QualifiedIndexName(idx), err)
		}
	}
	return nil
}
