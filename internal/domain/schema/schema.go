// Package schema declares the record collections persisted by LifeFlow and
// the secondary indexes each one carries.
//
// The registry is fixed at compile time. Evolving it is strictly additive:
// a later version may declare new collections or new indexes, never remove
// or rename existing ones, so that Missing can always be applied to a store
// created by an older build.
package schema

// Version is the schema version of the declared registry.
const Version = 1

// Collection names.
const (
	Tasks     = "tasks"
	Notes     = "notes"
	Habits    = "habits"
	Events    = "events"
	Lists     = "lists"
	Pomodoros = "pomodoros"
)

// PrimaryKey is the attribute every collection is keyed by.
const PrimaryKey = "id"

// Index describes a secondary lookup path inside a collection.
type Index struct {
	Name       string `json:"name"`
	Field      string `json:"field"`
	MultiEntry bool   `json:"multiEntry"`
}

// Collection describes one named record collection.
type Collection struct {
	Name       string  `json:"name"`
	PrimaryKey string  `json:"keyPath"`
	Indexes    []Index `json:"indexes"`
}

// Index returns the index declared under name.
func (c Collection) Index(name string) (Index, bool) {
	for _, idx := range c.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return Index{}, false
}

// QualifiedIndexName returns the engine-level name of idx, e.g. tasks_completed.
func (c Collection) QualifiedIndexName(idx Index) string {
	return c.Name + "_" + idx.Name
}

var registry = []Collection{
	{
		Name:       Tasks,
		PrimaryKey: PrimaryKey,
		Indexes: []Index{
			// project is kept for layout compatibility; nothing queries it
			{Name: "project", Field: "project"},
			{Name: "completed", Field: "completed"},
			{Name: "dueDate", Field: "dueDate"},
		},
	},
	{
		Name:       Notes,
		PrimaryKey: PrimaryKey,
		Indexes: []Index{
			{Name: "tags", Field: "tags", MultiEntry: true},
		},
	},
	{Name: Habits, PrimaryKey: PrimaryKey},
	{
		Name:       Events,
		PrimaryKey: PrimaryKey,
		Indexes: []Index{
			{Name: "date", Field: "date"},
		},
	},
	{Name: Lists, PrimaryKey: PrimaryKey},
	{
		Name:       Pomodoros,
		PrimaryKey: PrimaryKey,
		Indexes: []Index{
			{Name: "date", Field: "date"},
		},
	},
}

// Collections returns the declared collections in registration order.
// The result is a copy; callers may modify it freely.
func Collections() []Collection {
	out := make([]Collection, len(registry))
	for i, c := range registry {
		out[i] = c.clone()
	}
	return out
}

// Names returns the declared collection names in registration order.
func Names() []string {
	names := make([]string, len(registry))
	for i, c := range registry {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the descriptor of the named collection.
func Lookup(name string) (Collection, bool) {
	for _, c := range registry {
		if c.Name == name {
			return c.clone(), true
		}
	}
	return Collection{}, false
}

func (c Collection) clone() Collection {
	out := c
	if c.Indexes != nil {
		out.Indexes = append([]Index(nil), c.Indexes...)
	}
	return out
}

// Existing is what a store reports it already holds: collection names mapped
// to the set of index names present in each.
type Existing map[string]map[string]bool

// Plan is the additive work needed to bring a store up to the registry.
type Plan struct {
	// Collections lists collections to create, with all their indexes.
	Collections []Collection
	// Indexes lists indexes missing from collections that already exist.
	Indexes map[string][]Index
}

// Empty reports whether the plan has nothing to do.
func (p Plan) Empty() bool {
	return len(p.Collections) == 0 && len(p.Indexes) == 0
}

// Missing compares the registry against what exists and returns only
// creations. Anything present in existing but not declared is left alone.
func Missing(existing Existing) Plan {
	plan := Plan{Indexes: map[string][]Index{}}
	for _, c := range registry {
		have, ok := existing[c.Name]
		if !ok {
			plan.Collections = append(plan.Collections, c.clone())
			continue
		}
		for _, idx := range c.Indexes {
			if !have[idx.Name] {
				plan.Indexes[c.Name] = append(plan.Indexes[c.Name], idx)
			}
		}
	}
	if len(plan.Indexes) == 0 {
		plan.Indexes = nil
	}
	return plan
}
