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

const (
	dashboardTasks  = 5
	dashboardHabits = 4
	dashboardEvents = 3
)

// DashboardService builds the aggregate views. It reads the store directly
// in one pass instead of going through the collection hooks.
type DashboardService struct {
	reader ports.Reader
	opts   Options
}

func NewDashboardService(reader ports.Reader, opts Options) *DashboardService {
	return &DashboardService{reader: reader, opts: opts.withDefaults()}
}

type snapshot struct {
	tasks    []entities.Task
	habits   []entities.Habit
	events   []entities.Event
	sessions []entities.FocusSession
}

func (s *DashboardService) load(ctx context.Context, names ...string) (*snapshot, error) {
	snap := &snapshot{}
	for _, name := range names {
		records, err := s.reader.GetAll(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		switch name {
		case schema.Tasks:
			snap.tasks = decodeAll[entities.Task](s.opts, name, records)
		case schema.Habits:
			snap.habits = decodeAll[entities.Habit](s.opts, name, records)
		case schema.Events:
			snap.events = decodeAll[entities.Event](s.opts, name, records)
		case schema.Pomodoros:
			snap.sessions = decodeAll[entities.FocusSession](s.opts, name, records)
		}
	}
	return snap, nil
}

// Dashboard returns today's overview.
func (s *DashboardService) Dashboard(ctx context.Context) (*ports.Dashboard, error) {
	snap, err := s.load(ctx, schema.Tasks, schema.Habits, schema.Events)
	if err != nil {
		return nil, err
	}
	now := s.opts.Clock()

	d := &ports.Dashboard{
		Greeting:    dates.Greeting(now),
		TodayTasks:  []entities.Task{},
		Habits:      []entities.Habit{},
		TodayEvents: []entities.Event{},
	}

	for _, t := range snap.tasks {
		if isDone(t) {
			d.Stats.Completed++
		} else if len(d.TodayTasks) < dashboardTasks && dueTodayOrUndated(t, now) {
			d.TodayTasks = append(d.TodayTasks, t)
		}
	}
	d.Stats.Total = len(snap.tasks)

	for i, h := range snap.habits {
		if i < dashboardHabits {
			d.Habits = append(d.Habits, h)
		}
		if h.Streak > d.Stats.Streak {
			d.Stats.Streak = h.Streak
		}
	}

	for _, e := range eventsOn(snap.events, now) {
		if len(d.TodayEvents) == dashboardEvents {
			break
		}
		d.TodayEvents = append(d.TodayEvents, e)
	}

	return d, nil
}

// Insights returns the productivity summary.
func (s *DashboardService) Insights(ctx context.Context) (*ports.Insights, error) {
	snap, err := s.load(ctx, schema.Tasks, schema.Habits, schema.Pomodoros)
	if err != nil {
		return nil, err
	}
	now := s.opts.Clock()

	in := &ports.Insights{
		TotalTasks:     len(snap.tasks),
		TotalFocusTime: len(snap.sessions) * int(WorkDuration/time.Minute),
	}

	for _, t := range snap.tasks {
		if isDone(t) {
			in.CompletedTasks++
		}
		switch t.Priority {
		case entities.PriorityHigh:
			in.Priorities.High++
		case entities.PriorityMedium:
			in.Priorities.Medium++
		case entities.PriorityLow:
			in.Priorities.Low++
		}
	}
	if in.TotalTasks > 0 {
		in.CompletionRate = float64(in.CompletedTasks) / float64(in.TotalTasks) * 100
	}

	if len(snap.habits) > 0 {
		sum := 0
		for _, h := range snap.habits {
			sum += h.Streak
		}
		in.AvgStreak = float64(sum) / float64(len(snap.habits))
	}

	for _, day := range dates.LastDays(now, 7) {
		count := 0
		for _, t := range snap.tasks {
			if isDone(t) && !t.UpdatedAt.IsZero() && dates.SameDay(t.UpdatedAt, day) {
				count++
			}
		}
		in.Last7Days = append(in.Last7Days, ports.DayCount{Day: day.Format("Mon"), Count: count})
	}

	return in, nil
}

func isDone(t entities.Task) bool {
	return t.EffectiveStatus() == entities.TaskStatusCompleted
}

func dueTodayOrUndated(t entities.Task, now time.Time) bool {
	if t.DueDate == "" {
		return true
	}
	due, err := dates.Parse(t.DueDate, now.Location())
	return err == nil && dates.IsToday(due, now)
}
