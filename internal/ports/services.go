package ports

import (
	"time"

	"github.com/lifeflow/core/internal/domain/dates"
	"github.com/lifeflow/core/internal/domain/entities"
)

// Request/Response Types

// Task related types
type CreateTaskRequest struct {
	Title    string              `json:"title" validate:"required,max=500"`
	Category string              `json:"category" validate:"omitempty,max=200"`
	Priority entities.Priority   `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status   entities.TaskStatus `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	DueDate  string              `json:"dueDate" validate:"omitempty,max=40"`
	Icon     string              `json:"icon" validate:"omitempty,max=100"`
}

type UpdateTaskRequest struct {
	Title    string              `json:"title" validate:"required,max=500"`
	Category string              `json:"category" validate:"omitempty,max=200"`
	Priority entities.Priority   `json:"priority" validate:"required,oneof=low medium high"`
	Status   entities.TaskStatus `json:"status" validate:"required,oneof=pending in-progress completed"`
	DueDate  string              `json:"dueDate" validate:"omitempty,max=40"`
	Icon     string              `json:"icon" validate:"omitempty,max=100"`
}

type MoveTaskRequest struct {
	Status entities.TaskStatus `json:"status" validate:"required,oneof=pending in-progress completed"`
}

// TaskView is a task with the flags the board shows next to it.
type TaskView struct {
	entities.Task
	// Overdue is set for unfinished tasks due before today.
	Overdue  bool   `json:"overdue"`
	DueLabel string `json:"dueLabel,omitempty"`
}

// Board groups tasks by column.
type Board struct {
	Pending    []TaskView `json:"pending"`
	InProgress []TaskView `json:"in-progress"`
	Completed  []TaskView `json:"completed"`
}

// Note related types
type SaveNoteRequest struct {
	Title   string `json:"title" validate:"required,max=500"`
	Content string `json:"content" validate:"max=100000"`
	// Tags is the raw comma-separated input.
	Tags string `json:"tags" validate:"max=1000"`
}

// Habit related types
type CreateHabitRequest struct {
	Name         string             `json:"name" validate:"required,max=200"`
	Type         entities.HabitType `json:"type" validate:"omitempty,oneof=good bad"`
	Frequency    entities.Frequency `json:"frequency" validate:"omitempty,oneof=daily weekly custom"`
	SelectedDays []int              `json:"selectedDays" validate:"omitempty,dive,min=0,max=6"`
}

// HabitDay is one cell of a habit's recent-progress strip.
type HabitDay struct {
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
	Today     bool      `json:"today"`
}

// Event related types
type CreateEventRequest struct {
	Title       string `json:"title" validate:"required,max=500"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"omitempty,max=20"`
	Location    string `json:"location" validate:"omitempty,max=500"`
	Description string `json:"description" validate:"omitempty,max=5000"`
}

// Checklist related types
type CreateListRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"omitempty,max=30"`
	Icon  string `json:"icon" validate:"omitempty,max=100"`
}

type AddListItemRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// Focus related types
type FocusMode string

const (
	FocusWork      FocusMode = "work"
	FocusBreak     FocusMode = "break"
	FocusLongBreak FocusMode = "longBreak"
)

type CompletePhaseRequest struct {
	Mode      FocusMode `json:"mode" validate:"required,oneof=work break longBreak"`
	Completed int       `json:"completed" validate:"min=0"`
}

// FocusPhase is the timer state after a phase change.
type FocusPhase struct {
	Mode      FocusMode     `json:"mode"`
	Duration  time.Duration `json:"duration"`
	Completed int           `json:"completed"`
}

// Aggregates

type DashboardStats struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Streak    int `json:"streak"`
}

type Dashboard struct {
	Greeting    string           `json:"greeting"`
	TodayTasks  []entities.Task  `json:"todayTasks"`
	Habits      []entities.Habit `json:"habits"`
	TodayEvents []entities.Event `json:"todayEvents"`
	Stats       DashboardStats   `json:"stats"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type PriorityDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type Insights struct {
	CompletedTasks int                  `json:"completedTasks"`
	TotalTasks     int                  `json:"totalTasks"`
	CompletionRate float64              `json:"completionRate"`
	AvgStreak      float64              `json:"avgStreak"`
	Priorities     PriorityDistribution `json:"priorities"`
	Last7Days      []DayCount           `json:"last7Days"`
	TotalFocusTime int                  `json:"totalFocusTime"`
}

// CalendarItem is an event or a due task placed on a day.
type CalendarItem struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Title string `json:"title"`
	Time  string `json:"time,omitempty"`
}

type CalendarDay struct {
	dates.Cell
	Today bool           `json:"isToday"`
	Items []CalendarItem `json:"items"`
}

type CalendarMonth struct {
	Year  int           `json:"year"`
	Month time.Month    `json:"month"`
	Title string        `json:"title"`
	Days  []CalendarDay `json:"days"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
