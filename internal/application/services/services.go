package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lifeflow/core/internal/application/hook"
	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/infrastructure/logger"
	"github.com/lifeflow/core/internal/ports"
)

// Clock returns the current time in the user's location.
type Clock func() time.Time

// Options carries what every service shares.
type Options struct {
	Validator *validator.Validate
	Clock     Clock
	Logger    *logger.Logger
}

func (o Options) withDefaults() Options {
	if o.Validator == nil {
		o.Validator = validator.New()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = logger.NewNop()
	}
	return o
}

func (o Options) validate(v any) error {
	if err := o.Validator.Struct(v); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidationError reports a request rejected before reaching the store.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Services bundles every domain service of the application.
type Services struct {
	Tasks     *TaskService
	Notes     *NoteService
	Habits    *HabitService
	Events    *EventService
	Lists     *ListService
	Focus     *FocusService
	Dashboard *DashboardService
	Calendar  *CalendarService
}

// New wires the services to the shared hooks. gw serves the one-shot
// aggregate reads and the cross-collection transaction.
func New(reg *hook.Registry, gw ports.Gateway, opts Options) *Services {
	opts = opts.withDefaults()
	tasks := reg.MustHook(schema.Tasks)
	return &Services{
		Tasks:     NewTaskService(tasks, opts),
		Notes:     NewNoteService(reg.MustHook(schema.Notes), gw, opts),
		Habits:    NewHabitService(reg.MustHook(schema.Habits), opts),
		Events:    NewEventService(reg.MustHook(schema.Events), opts),
		Lists:     NewListService(reg.MustHook(schema.Lists), tasks, gw, opts),
		Focus:     NewFocusService(reg.MustHook(schema.Pomodoros), opts),
		Dashboard: NewDashboardService(gw, opts),
		Calendar:  NewCalendarService(gw, opts),
	}
}

func newID() string {
	return uuid.NewString()
}

// decodeAll decodes every record it can. Records are loosely typed, so one
// malformed record is logged and left out instead of failing the read.
func decodeAll[T any](opts Options, collection string, records []entities.Record) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		var v T
		if err := entities.FromRecord(r, &v); err != nil {
			id, _ := r.ID()
			opts.Logger.Warnw("Skipping malformed record",
				"collection", collection,
				"id", id,
				"error", err,
			)
			continue
		}
		out = append(out, v)
	}
	return out
}

// find returns the raw record with id from the hook's snapshot.
func find(h *hook.Hook, id string) (entities.Record, error) {
	for _, r := range h.Data() {
		if rid, _ := r.ID(); rid == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", entities.ErrNotFound, h.Collection(), id)
}

// findAs is find followed by a decode into T.
func findAs[T any](h *hook.Hook, id string) (entities.Record, *T, error) {
	r, err := find(h, id)
	if err != nil {
		return nil, nil, err
	}
	var v T
	if err := entities.FromRecord(r, &v); err != nil {
		return nil, nil, err
	}
	return r, &v, nil
}
