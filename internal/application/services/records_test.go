package services

import (
	"context"
	"testing"
	"time"

	"github.com/matryer/is"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/infrastructure/logger"
)

func (f *fixture) seedRaw(t *testing.T, collection string, rec entities.Record) {
	t.Helper()
	if err := f.gw.Add(context.Background(), collection, rec); err != nil {
		t.Fatal(err)
	}
	if err := f.reg.MustHook(collection).Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestLooselyTypedRecords(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	f := setup(t)

	core, logs := observer.New(zapcore.WarnLevel)
	svc := New(f.reg, f.gw, Options{
		Clock:  func() time.Time { return f.now },
		Logger: logger.FromZap(zap.New(core)),
	})

	f.seedRaw(t, schema.Events, entities.Record{"id": "e1", "title": "Bare date", "date": "2026-10-14"})
	f.seedRaw(t, schema.Events, entities.Record{"id": "e2", "title": "Garbage", "date": "someday"})
	f.seedRaw(t, schema.Habits, entities.Record{"id": "h1", "name": "Walk", "streak": 1.0, "history": []any{"2026-10-13"}})
	f.seedRaw(t, schema.Tasks, entities.Record{"id": "t1", "title": 42.0})

	events, err := svc.Events.ListEvents()
	is.NoErr(err)
	is.Equal(len(events), 1) // malformed event left out
	is.Equal(events[0].ID, "e1")
	is.True(!events[0].Date.IsZero())

	_, err = svc.Dashboard.Dashboard(ctx)
	is.NoErr(err)
	_, err = svc.Dashboard.Insights(ctx)
	is.NoErr(err)
	_, err = svc.Calendar.Month(ctx, 2026, time.October)
	is.NoErr(err)

	h, err := svc.Habits.ToggleToday(ctx, "h1")
	is.NoErr(err)
	is.Equal(h.Streak, 2)
	is.Equal(len(h.History), 2)

	skipped := logs.FilterMessage("Skipping malformed record")
	is.True(skipped.Len() > 0)
	is.True(skipped.FilterField(zap.String("id", "t1")).Len() > 0)
	is.True(skipped.FilterField(zap.String("id", "e2")).Len() > 0)
}
