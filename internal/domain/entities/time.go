package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lifeflow/core/internal/domain/dates"
)

// looseTime reads a stored timestamp. Besides RFC 3339 it accepts bare
// calendar dates, timestamps without an offset (local time) and epoch
// milliseconds. Missing, null and "" decode as the zero time.
func looseTime(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, nil
	}
	if raw[0] != '"' {
		var ms float64
		if err := json.Unmarshal(raw, &ms); err != nil {
			return time.Time{}, fmt.Errorf("timestamp %s: %w", raw, err)
		}
		return time.UnixMilli(int64(ms)), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, err
	}
	if s == "" {
		return time.Time{}, nil
	}
	return dates.Parse(s, time.Local)
}

func (h *Habit) UnmarshalJSON(data []byte) error {
	type plain Habit
	var aux struct {
		plain
		History []json.RawMessage `json:"history"`
		Created json.RawMessage   `json:"created"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*h = Habit(aux.plain)
	if aux.History != nil {
		h.History = make([]time.Time, 0, len(aux.History))
	}
	for _, raw := range aux.History {
		t, err := looseTime(raw)
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		if !t.IsZero() {
			h.History = append(h.History, t)
		}
	}
	var err error
	if h.Created, err = looseTime(aux.Created); err != nil {
		return fmt.Errorf("created: %w", err)
	}
	return nil
}

func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	var aux struct {
		plain
		Date json.RawMessage `json:"date"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Event(aux.plain)
	var err error
	if e.Date, err = looseTime(aux.Date); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	return nil
}

func (f *FocusSession) UnmarshalJSON(data []byte) error {
	type plain FocusSession
	var aux struct {
		plain
		Date json.RawMessage `json:"date"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*f = FocusSession(aux.plain)
	var err error
	if f.Date, err = looseTime(aux.Date); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	return nil
}
