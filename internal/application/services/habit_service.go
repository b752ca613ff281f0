package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lifeflow/core/internal/application/hook"
	"github.com/lifeflow/core/internal/domain/dates"
	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/ports"
)

// HabitService tracks routines and their streaks
type HabitService struct {
	habits *hook.Hook
	opts   Options
}

func NewHabitService(habits *hook.Hook, opts Options) *HabitService {
	return &HabitService{habits: habits, opts: opts.withDefaults()}
}

func (s *HabitService) CreateHabit(ctx context.Context, req ports.CreateHabitRequest) (*entities.Habit, error) {
	if err := s.opts.validate(req); err != nil {
		return nil, err
	}

	habit := &entities.Habit{
		ID:           newID(),
		Name:         strings.TrimSpace(req.Name),
		Type:         req.Type,
		Frequency:    req.Frequency,
		SelectedDays: req.SelectedDays,
		Streak:       0,
		History:      []time.Time{},
		Created:      s.opts.Clock().UTC(),
	}
	if habit.Type == "" {
		habit.Type = entities.HabitTypeGood
	}
	if habit.Frequency == "" {
		habit.Frequency = entities.FrequencyDaily
	}
	if habit.SelectedDays == nil {
		habit.SelectedDays = []int{}
	}

	rec, err := entities.ToRecord(habit)
	if err != nil {
		return nil, err
	}
	if err := s.habits.AddItem(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}
	return habit, nil
}

func (s *HabitService) ListHabits() ([]entities.Habit, error) {
	return decodeAll[entities.Habit](s.opts, schema.Habits, s.habits.Data()), nil
}

func (s *HabitService) DeleteHabit(ctx context.Context, id string) error {
	if err := s.habits.RemoveItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

// ToggleToday marks or unmarks today. Unmarking removes today's entry and
// lowers the streak, never below zero; marking appends now and raises it.
func (s *HabitService) ToggleToday(ctx context.Context, id string) (*entities.Habit, error) {
	base, habit, err := findAs[entities.Habit](s.habits, id)
	if err != nil {
		return nil, err
	}

	now := s.opts.Clock()
	if i := todayIndex(habit, now); i >= 0 {
		habit.History = append(habit.History[:i:i], habit.History[i+1:]...)
		if habit.Streak > 0 {
			habit.Streak--
		}
	} else {
		habit.History = append(habit.History, now.UTC())
		habit.Streak++
	}

	rec, err := entities.Merge(base, habit)
	if err != nil {
		return nil, err
	}
	if err := s.habits.UpdateItem(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to toggle habit: %w", err)
	}

	s.opts.Logger.Infow("Habit toggled", "habit_id", id, "streak", habit.Streak)
	return habit, nil
}

// CompletedToday reports whether the habit's history has an entry today.
func CompletedToday(h entities.Habit, now time.Time) bool {
	return todayIndex(&h, now) >= 0
}

// Progress returns the completion strip for the seven days ending today.
func Progress(h entities.Habit, now time.Time) []ports.HabitDay {
	days := dates.LastDays(now, 7)
	out := make([]ports.HabitDay, len(days))
	for i, d := range days {
		day := ports.HabitDay{Date: d, Today: i == len(days)-1}
		for _, entry := range h.History {
			if dates.SameDay(entry, d) {
				day.Completed = true
				break
			}
		}
		out[i] = day
	}
	return out
}

func todayIndex(h *entities.Habit, now time.Time) int {
	for i, entry := range h.History {
		if dates.IsToday(entry, now) {
			return i
		}
	}
	return -1
}

// WeekProgress returns the seven-day strip of one habit.
func (s *HabitService) WeekProgress(id string) ([]ports.HabitDay, error) {
	_, habit, err := findAs[entities.Habit](s.habits, id)
	if err != nil {
		return nil, err
	}
	return Progress(*habit, s.opts.Clock()), nil
}
