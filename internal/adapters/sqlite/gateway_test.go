package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/matryer/is"

	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/infrastructure/config"
	"github.com/lifeflow/core/internal/ports"
)

func openDB(t *testing.T, path string) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	return db
}

func newGateway(t *testing.T) *Gateway {
	t.Helper()
	g, err := NewGateway(openDB(t, filepath.Join(t.TempDir(), "store.db")))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func ids(records []entities.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		id, _ := r.ID()
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func TestOpenCreatesEveryCollection(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	g := newGateway(t)

	is.NoErr(g.Open(ctx))
	is.NoErr(g.Open(ctx)) // second call is a no-op
	is.Equal(len(g.Applied().Collections), len(schema.Names()))

	existing, err := inspect(ctx, g.db)
	is.NoErr(err)
	for _, c := range schema.Collections() {
		have, ok := existing[c.Name]
		is.True(ok)
		for _, idx := range c.Indexes {
			is.True(have[idx.Name])
		}
	}
}

func TestAddThenGetByID(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	g := newGateway(t)

	is.NoErr(g.Add(ctx, schema.Tasks, entities.Record{"id": "t1", "title": "Write report", "completed": false}))

	got, err := g.GetByID(ctx, schema.Tasks, "t1")
	is.NoErr(err)
	is.Equal(got["title"], "Write report")
	is.Equal(got["completed"], false)

	all, err := g.GetAll(ctx, schema.Tasks)
	is.NoErr(err)
	is.Equal(ids(all), []string{"t1"})
}

func TestAddDuplicateKeepsOriginal(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	g := newGateway(t)

	is.NoErr(g.Add(ctx, schema.Notes, entities.Record{"id": "n1", "title": "first"}))
	err := g.Add(ctx, schema.Notes, entities.Record{"id": "n1", "title": "second"})
	is.True(errors.Is(err, entities.ErrDuplicateKey))

	got, err := g.GetByID(ctx, schema.Notes, "n1")
	is.NoErr(err)
	is.Equal(got["title"], "first")
}

func TestAddWithoutID(t *testing.T) {
	is := is.New(t)
	err := newGateway(t).Add(context.Background(), schema.Notes, entities.Record{"title": "x"})
	is.True(errors.Is(err, entities.ErrMissingID))
}

func TestUpdateUpserts(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	g := newGateway(t)

	is.NoErr(g.Update(ctx, schema.Habits, entities.Record{"id": "h1", "streak": 1}))
	is.NoErr(g.Update(ctx, schema.Habits, entities.Record{"id": "h1", "streak": 2}))

	all, err := g.GetAll(ctx, schema.Habits)
	is.NoErr(err)
	is.Equal(len(all), 1)
	is.Equal(all[0]["streak"], float64(2))
}

func TestRemove(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	g := newGateway(t)

	is.NoErr(g.Add(ctx, schema.Events, entities.Record{"id": "e1"}))
	is.NoErr(g.Remove(ctx, schema.Events, "e1"))
	is.NoErr(g.Remove(ctx, schema.Events, "e1")) // missing id is not an error

	_, err := g.GetByID(ctx, schema.Events, "e1")
	is.True(errors.Is(err, entities.ErrNotFound))
}

func TestUnknownCollection(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	g := newGateway(t)

	_, err := g.GetAll(ctx, "projects")
	is.True(errors.Is(err, entities.ErrUnknownCollection))
	err = g.Add(ctx, "projects", entities.Record{"id": "p1"})
	is.True(errors.Is(err, entities.ErrUnknownCollection))
}

func TestScalarIndex(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	g := newGateway(t)

	is.NoErr(g.Add(ctx, schema.Tasks, entities.Record{"id": "a", "completed": true}))
	is.NoErr(g.Add(ctx, schema.Tasks, entities.Record{"id": "b", "completed": false}))
	is.NoErr(g.Add(ctx, schema.Tasks, entities.Record{"id": "c", "completed": true}))

	done, err := g.GetAllByIndex(ctx, schema.Tasks, "completed", true)
	is.NoErr(err)
	is.Equal(ids(done), []string{"a", "c"})

	_, err = g.GetAllByIndex(ctx, schema.Tasks, "owner", "x")
	is.True(errors.Is(err, entities.ErrUnknownIndex))
}

func TestMultiEntryIndex(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	g := newGateway(t)

	is.NoErr(g.Add(ctx, schema.Notes, entities.Record{"id": "n1", "tags": []any{"work", "ideas"}}))
	is.NoErr(g.Add(ctx, schema.Notes, entities.Record{"id": "n2", "tags": []any{"home"}}))

	work, err := g.GetAllByIndex(ctx, schema.Notes, "tags", "work")
	is.NoErr(err)
	is.Equal(ids(work), []string{"n1"})

	// re-tagging moves the note between index entries
	is.NoErr(g.Update(ctx, schema.Notes, entities.Record{"id": "n1", "tags": []any{"home"}}))
	home, err := g.GetAllByIndex(ctx, schema.Notes, "tags", "home")
	is.NoErr(err)
	is.Equal(ids(home), []string{"n1", "n2"})
	work, err = g.GetAllByIndex(ctx, schema.Notes, "tags", "work")
	is.NoErr(err)
	is.Equal(len(work), 0)

	is.NoErr(g.Remove(ctx, schema.Notes, "n2"))
	home, err = g.GetAllByIndex(ctx, schema.Notes, "tags", "home")
	is.NoErr(err)
	is.Equal(ids(home), []string{"n1"})
}

func TestTxRollsBackOnError(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	g := newGateway(t)
	boom := errors.New("boom")

	err := g.Tx(ctx, func(tx ports.Tx) error {
		if err := tx.Add(ctx, schema.Tasks, entities.Record{"id": "t1"}); err != nil {
			return err
		}
		if err := tx.Update(ctx, schema.Lists, entities.Record{"id": "l1"}); err != nil {
			return err
		}
		return boom
	})
	is.True(errors.Is(err, boom))

	tasks, err := g.GetAll(ctx, schema.Tasks)
	is.NoErr(err)
	is.Equal(len(tasks), 0)
	lists, err := g.GetAll(ctx, schema.Lists)
	is.NoErr(err)
	is.Equal(len(lists), 0)
}

func TestTxCommitsAcrossCollections(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	g := newGateway(t)

	err := g.Tx(ctx, func(tx ports.Tx) error {
		if err := tx.Add(ctx, schema.Tasks, entities.Record{"id": "t1"}); err != nil {
			return err
		}
		got, err := tx.GetByID(ctx, schema.Tasks, "t1")
		if err != nil {
			return err
		}
		if got["id"] != "t1" {
			return errors.New("write not visible inside tx")
		}
		return tx.Update(ctx, schema.Lists, entities.Record{"id": "l1"})
	})
	is.NoErr(err)

	_, err = g.GetByID(ctx, schema.Tasks, "t1")
	is.NoErr(err)
	_, err = g.GetByID(ctx, schema.Lists, "l1")
	is.NoErr(err)
}

func TestReopenIsAdditive(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "old.db")

	// a store from an older build that only knew about tasks, without indexes
	old := openDB(t, path)
	_, err := old.Exec(`CREATE TABLE tasks (id TEXT PRIMARY KEY, body TEXT NOT NULL)`)
	is.NoErr(err)
	_, err = old.Exec(`INSERT INTO tasks (id, body) VALUES ('t1', '{"id":"t1","completed":true}')`)
	is.NoErr(err)
	_, err = old.Exec(`CREATE TABLE notes (id TEXT PRIMARY KEY, body TEXT NOT NULL)`)
	is.NoErr(err)
	_, err = old.Exec(`INSERT INTO notes (id, body) VALUES ('n1', '{"id":"n1","tags":["work"]}')`)
	is.NoErr(err)
	is.NoErr(old.Close())

	g, err := NewGateway(openDB(t, path))
	is.NoErr(err)
	defer g.Close()
	is.NoErr(g.Open(ctx))

	plan := g.Applied()
	is.Equal(len(plan.Collections), len(schema.Names())-2)
	is.Equal(len(plan.Indexes[schema.Tasks]), 3)
	is.Equal(len(plan.Indexes[schema.Notes]), 1)

	tasks, err := g.GetAll(ctx, schema.Tasks)
	is.NoErr(err)
	is.Equal(ids(tasks), []string{"t1"})

	// indexes added later cover rows written before them
	done, err := g.GetAllByIndex(ctx, schema.Tasks, "completed", true)
	is.NoErr(err)
	is.Equal(ids(done), []string{"t1"})
	work, err := g.GetAllByIndex(ctx, schema.Notes, "tags", "work")
	is.NoErr(err)
	is.Equal(ids(work), []string{"n1"})

	events, err := g.GetAll(ctx, schema.Events)
	is.NoErr(err)
	is.Equal(len(events), 0)
}

func TestStorageErrorWrapsCause(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	g := newGateway(t)
	is.NoErr(g.Open(ctx))

	// lists has no json_extract indexes, so the engine stores the body as is.
	_, err := g.db.Exec(`INSERT INTO lists (id, body) VALUES ('bad', 'not json')`)
	is.NoErr(err)

	_, err = g.GetAll(ctx, schema.Lists)
	var se *entities.StorageError
	is.True(errors.As(err, &se))
	is.Equal(se.Op, "decode")
	is.Equal(se.Collection, schema.Lists)
	var syntaxErr *json.SyntaxError
	is.True(errors.As(err, &syntaxErr)) // cause kept
}

func TestMetaStore(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	db := openDB(t, filepath.Join(t.TempDir(), "meta.db"))
	defer db.Close()
	_, err := db.Exec(`CREATE TABLE app_meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	is.NoErr(err)

	m, err := NewMetaStore(db)
	is.NoErr(err)

	_, ok, err := m.Get(ctx, "lifeflow-version")
	is.NoErr(err)
	is.True(!ok)

	is.NoErr(m.Set(ctx, "lifeflow-version", "1.0.0"))
	is.NoErr(m.Set(ctx, "lifeflow-version", "1.1.0"))
	v, ok, err := m.Get(ctx, "lifeflow-version")
	is.NoErr(err)
	is.True(ok)
	is.Equal(v, "1.1.0")
}

func TestMetaStoreEngineFailure(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	db := openDB(t, filepath.Join(t.TempDir(), "meta.db"))
	defer db.Close()

	m, err := NewMetaStore(db) // app_meta was never migrated
	is.NoErr(err)

	_, _, err = m.Get(ctx, "lifeflow-version")
	is.True(entities.IsStorageError(err))
	err = m.Set(ctx, "lifeflow-version", "1.0.0")
	is.True(entities.IsStorageError(err))
}

func TestGetAllCountsAddsMinusRemoves(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	g := newGateway(t)

	const added = 12
	for i := 0; i < added; i++ {
		is.NoErr(g.Add(ctx, schema.Notes, entities.Record{"id": fmt.Sprintf("n%02d", i)}))
	}
	removed := []string{"n00", "n03", "n07", "n11"}
	for _, id := range removed {
		is.NoErr(g.Remove(ctx, schema.Notes, id))
	}
	is.NoErr(g.Remove(ctx, schema.Notes, "n03")) // repeated removal

	all, err := g.GetAll(ctx, schema.Notes)
	is.NoErr(err)
	is.Equal(len(all), added-len(removed))
}

func TestConcurrentWritersShareThePool(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	store := config.StoreConfig{
		Path:        filepath.Join(t.TempDir(), "store.db"),
		BusyTimeout: 5 * time.Second,
	}
	db, err := sqlx.Open("sqlite", store.DSN())
	is.NoErr(err)
	db.SetMaxOpenConns(4)
	g, err := NewGateway(db)
	is.NoErr(err)
	t.Cleanup(func() { _ = g.Close() })
	is.NoErr(g.Open(ctx))

	const writers = 40
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := g.GetAll(ctx, schema.Notes); err != nil {
				errs <- err
				return
			}
			errs <- g.Add(ctx, schema.Notes, entities.Record{"id": fmt.Sprintf("n%02d", i)})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		is.NoErr(err)
	}

	all, err := g.GetAll(ctx, schema.Notes)
	is.NoErr(err)
	is.Equal(len(all), writers)
}
