package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lifeflow/core/internal/application/hook"
	"github.com/lifeflow/core/internal/domain/dates"
	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/ports"
)

// Focus cycle lengths.
const (
	WorkDuration      = 25 * time.Minute
	BreakDuration     = 5 * time.Minute
	LongBreakDuration = 15 * time.Minute

	// LongBreakEvery is how many work sessions earn a long break.
	LongBreakEvery = 4
)

// NextPhase returns the phase that follows mode once it runs out.
// completed is the number of finished work sessions before this one ended.
func NextPhase(mode ports.FocusMode, completed int) ports.FocusPhase {
	next := ports.FocusWork
	if mode == ports.FocusWork {
		completed++
		next = ports.FocusBreak
		if completed%LongBreakEvery == 0 {
			next = ports.FocusLongBreak
		}
	}
	return ports.FocusPhase{Mode: next, Duration: PhaseDuration(next), Completed: completed}
}

// PhaseDuration returns the length of mode.
func PhaseDuration(mode ports.FocusMode) time.Duration {
	switch mode {
	case ports.FocusBreak:
		return BreakDuration
	case ports.FocusLongBreak:
		return LongBreakDuration
	}
	return WorkDuration
}

// FocusService records finished work sessions
type FocusService struct {
	sessions *hook.Hook
	opts     Options
}

func NewFocusService(sessions *hook.Hook, opts Options) *FocusService {
	return &FocusService{sessions: sessions, opts: opts.withDefaults()}
}

// CompletePhase ends mode, recording a session when it was a work phase,
// and returns the phase to run next.
func (s *FocusService) CompletePhase(ctx context.Context, mode ports.FocusMode, completed int) (ports.FocusPhase, error) {
	if mode == ports.FocusWork {
		session := entities.FocusSession{ID: newID(), Date: s.opts.Clock().UTC()}
		rec, err := entities.ToRecord(session)
		if err != nil {
			return ports.FocusPhase{}, err
		}
		if err := s.sessions.AddItem(ctx, rec); err != nil {
			return ports.FocusPhase{}, fmt.Errorf("failed to record focus session: %w", err)
		}
	}
	return NextPhase(mode, completed), nil
}

func (s *FocusService) ListSessions() ([]entities.FocusSession, error) {
	return decodeAll[entities.FocusSession](s.opts, schema.Pomodoros, s.sessions.Data()), nil
}

// SessionsToday counts the work sessions finished today.
func (s *FocusService) SessionsToday() (int, error) {
	sessions, err := s.ListSessions()
	if err != nil {
		return 0, err
	}
	now := s.opts.Clock()
	n := 0
	for _, fs := range sessions {
		if dates.IsToday(fs.Date, now) {
			n++
		}
	}
	return n, nil
}
