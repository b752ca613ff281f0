package schema

import (
	"testing"

	"github.com/matryer/is"
)

func TestCollections_OrderAndIndexes(t *testing.T) {
	is := is.New(t)

	cs := Collections()
	is.Equal(len(cs), 6)
	is.Equal(Names(), []string{Tasks, Notes, Habits, Events, Lists, Pomodoros})

	tasks := cs[0]
	is.Equal(tasks.PrimaryKey, "id")
	is.Equal(len(tasks.Indexes), 3)

	tags, ok := cs[1].Index("tags")
	is.True(ok)
	is.True(tags.MultiEntry)
	is.Equal(cs[1].QualifiedIndexName(tags), "notes_tags")

	_, ok = cs[2].Index("anything")
	is.True(!ok) // habits have no indexes
}

func TestCollections_ReturnsCopy(t *testing.T) {
	is := is.New(t)

	cs := Collections()
	cs[0].Name = "changed"
	cs[0].Indexes[0].Field = "changed"

	again := Collections()
	is.Equal(again[0].Name, Tasks)
	is.Equal(again[0].Indexes[0].Field, "project")
}

func TestLookup(t *testing.T) {
	is := is.New(t)

	c, ok := Lookup(Events)
	is.True(ok)
	is.Equal(c.Indexes[0].Name, "date")

	_, ok = Lookup("projects")
	is.True(!ok)
}

func TestMissing(t *testing.T) {
	t.Run("empty store needs everything", func(t *testing.T) {
		is := is.New(t)
		plan := Missing(Existing{})
		is.Equal(len(plan.Collections), 6)
		is.True(plan.Indexes == nil)
	})

	t.Run("complete store needs nothing", func(t *testing.T) {
		is := is.New(t)
		existing := Existing{}
		for _, c := range Collections() {
			have := map[string]bool{}
			for _, idx := range c.Indexes {
				have[idx.Name] = true
			}
			existing[c.Name] = have
		}
		is.True(Missing(existing).Empty())
	})

	t.Run("older store only gains what is absent", func(t *testing.T) {
		is := is.New(t)
		existing := Existing{
			Tasks:    {"completed": true},
			"legacy": {"whatever": true},
		}
		plan := Missing(existing)
		is.Equal(len(plan.Collections), 5)
		for _, c := range plan.Collections {
			is.True(c.Name != Tasks)
			is.True(c.Name != "legacy")
		}
		is.Equal(len(plan.Indexes[Tasks]), 2)
		is.Equal(plan.Indexes[Tasks][0].Name, "project")
		is.Equal(plan.Indexes[Tasks][1].Name, "dueDate")
	})
}
