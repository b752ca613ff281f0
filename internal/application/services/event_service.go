package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lifeflow/core/internal/application/hook"
	"github.com/lifeflow/core/internal/domain/dates"
	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/ports"
)

// EventService handles calendar events
type EventService struct {
	events *hook.Hook
	opts   Options
}

func NewEventService(events *hook.Hook, opts Options) *EventService {
	return &EventService{events: events, opts: opts.withDefaults()}
}

// CreateEvent adds an event. A bare date is read as midnight in the
// clock's location.
func (s *EventService) CreateEvent(ctx context.Context, req ports.CreateEventRequest) (*entities.Event, error) {
	if err := s.opts.validate(req); err != nil {
		return nil, err
	}

	day, err := dates.Parse(req.Date, s.opts.Clock().Location())
	if err != nil {
		return nil, &ValidationError{Err: err}
	}

	event := &entities.Event{
		ID:          newID(),
		Title:       strings.TrimSpace(req.Title),
		Date:        day.UTC(),
		Time:        req.Time,
		Location:    req.Location,
		Description: req.Description,
	}

	rec, err := entities.ToRecord(event)
	if err != nil {
		return nil, err
	}
	if err := s.events.AddItem(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *EventService) ListEvents() ([]entities.Event, error) {
	return decodeAll[entities.Event](s.opts, schema.Events, s.events.Data()), nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.events.RemoveItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// EventsOn returns the events falling on day's date in day's location,
// ordered by their time of day.
func (s *EventService) EventsOn(day time.Time) ([]entities.Event, error) {
	events, err := s.ListEvents()
	if err != nil {
		return nil, err
	}
	return eventsOn(events, day), nil
}

func eventsOn(events []entities.Event, day time.Time) []entities.Event {
	out := []entities.Event{}
	for _, e := range events {
		if dates.SameDay(e.Date, day) {
			out = append(out, e)
		}
	}
	return sortedByTime(out)
}

// sortedByTime orders events by their HH:MM time, untimed ones first.
func sortedByTime(events []entities.Event) []entities.Event {
	out := append([]entities.Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
