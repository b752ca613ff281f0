package entities

import "time"

// Task is a card on the action board.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Category  string     `json:"category"`
	Priority  Priority   `json:"priority"`
	Status    TaskStatus `json:"status"`
	Completed bool       `json:"completed"`
	// DueDate is kept as entered, a calendar date or a full timestamp.
	DueDate   string    `json:"dueDate"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EffectiveStatus returns Status, falling back to the completed flag for
// records written before status existed.
func (t Task) EffectiveStatus() TaskStatus {
	if t.Status != "" {
		return t.Status
	}
	if t.Completed {
		return TaskStatusCompleted
	}
	return TaskStatusPending
}

// SetStatus moves the task and keeps Completed in step with it.
func (t *Task) SetStatus(s TaskStatus) {
	t.Status = s
	t.Completed = s == TaskStatusCompleted
}

// Note is a free-form text note.
type Note struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Tags    []string  `json:"tags"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// Habit is a tracked routine. Streak is maintained by toggling and is never
// recomputed from History.
type Habit struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Type         HabitType   `json:"type"`
	Frequency    Frequency   `json:"frequency"`
	SelectedDays []int       `json:"selectedDays"`
	Streak       int         `json:"streak"`
	History      []time.Time `json:"history"`
	Created      time.Time   `json:"created"`
}

// Event is a calendar entry.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
}

// ListItem is one line of a checklist, embedded in its List.
type ListItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// List is a checklist.
type List struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	Icon      string     `json:"icon"`
	Items     []ListItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Progress returns the completed share of items as a percentage.
func (l List) Progress() float64 {
	if len(l.Items) == 0 {
		return 0
	}
	done := 0
	for _, it := range l.Items {
		if it.Completed {
			done++
		}
	}
	return float64(done) / float64(len(l.Items)) * 100
}

// FocusSession marks one completed work interval of the focus timer.
type FocusSession struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
}
