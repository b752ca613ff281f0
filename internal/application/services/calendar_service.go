package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lifeflow/core/internal/domain/dates"
	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/ports"
)

// CalendarService lays events and due tasks out on a month grid
type CalendarService struct {
	reader ports.Reader
	opts   Options
}

func NewCalendarService(reader ports.Reader, opts Options) *CalendarService {
	return &CalendarService{reader: reader, opts: opts.withDefaults()}
}

// Month returns the 42-day grid containing month, with every cell holding
// the events on that day followed by the tasks due that day.
func (s *CalendarService) Month(ctx context.Context, year int, month time.Month) (*ports.CalendarMonth, error) {
	if month < time.January || month > time.December {
		return nil, &ValidationError{Err: fmt.Errorf("month %d out of range", month)}
	}

	eventRecs, err := s.reader.GetAll(ctx, schema.Events)
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	events := decodeAll[entities.Event](s.opts, schema.Events, eventRecs)
	taskRecs, err := s.reader.GetAll(ctx, schema.Tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	tasks := decodeAll[entities.Task](s.opts, schema.Tasks, taskRecs)

	now := s.opts.Clock()
	loc := now.Location()

	// bucket once by civil date
	byDay := map[string][]ports.CalendarItem{}
	key := func(t time.Time) string { return t.In(loc).Format("2006-01-02") }
	for _, e := range sortedByTime(events) {
		k := key(e.Date)
		byDay[k] = append(byDay[k], ports.CalendarItem{Type: "event", ID: e.ID, Title: e.Title, Time: e.Time})
	}
	for _, t := range tasks {
		if t.DueDate == "" {
			continue
		}
		due, err := dates.Parse(t.DueDate, loc)
		if err != nil {
			continue
		}
		k := key(due)
		byDay[k] = append(byDay[k], ports.CalendarItem{Type: "task", ID: t.ID, Title: t.Title})
	}

	cells := dates.MonthGrid(year, month, loc)
	out := &ports.CalendarMonth{
		Year:  year,
		Month: month,
		Title: time.Date(year, month, 1, 0, 0, 0, 0, loc).Format("January 2006"),
		Days:  make([]ports.CalendarDay, len(cells)),
	}
	for i, c := range cells {
		items := byDay[key(c.Date)]
		if items == nil {
			items = []ports.CalendarItem{}
		}
		out.Days[i] = ports.CalendarDay{Cell: c, Today: dates.IsToday(c.Date, now), Items: items}
	}
	return out, nil
}
