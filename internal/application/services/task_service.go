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

const defaultTaskIcon = "CheckSquare"

// TaskService handles the action board
type TaskService struct {
	tasks *hook.Hook
	opts  Options
}

// NewTaskService creates a new task service
func NewTaskService(tasks *hook.Hook, opts Options) *TaskService {
	return &TaskService{tasks: tasks, opts: opts.withDefaults()}
}

// CreateTask creates a new task
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	if err := s.opts.validate(req); err != nil {
		return nil, err
	}

	now := s.opts.Clock().UTC()
	task := &entities.Task{
		ID:        newID(),
		Title:     strings.TrimSpace(req.Title),
		Category:  req.Category,
		Priority:  req.Priority,
		DueDate:   req.DueDate,
		Icon:      req.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if task.Priority == "" {
		task.Priority = entities.PriorityMedium
	}
	if task.Icon == "" {
		task.Icon = defaultTaskIcon
	}
	status := req.Status
	if status == "" {
		status = entities.TaskStatusPending
	}
	task.SetStatus(status)

	rec, err := entities.ToRecord(task)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.AddItem(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.opts.Logger.Infow("Task created", "task_id", task.ID, "title", task.Title)
	return task, nil
}

// GetTask returns a task from the current snapshot
func (s *TaskService) GetTask(id string) (*entities.Task, error) {
	_, task, err := findAs[entities.Task](s.tasks, id)
	return task, err
}

// ListTasks returns every task in the snapshot
func (s *TaskService) ListTasks() ([]entities.Task, error) {
	return decodeAll[entities.Task](s.opts, schema.Tasks, s.tasks.Data()), nil
}

// UpdateTask replaces the editable fields, keeping createdAt and any field
// this build does not know about.
func (s *TaskService) UpdateTask(ctx context.Context, id string, req ports.UpdateTaskRequest) (*entities.Task, error) {
	if err := s.opts.validate(req); err != nil {
		return nil, err
	}

	base, task, err := findAs[entities.Task](s.tasks, id)
	if err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(req.Title)
	task.Category = req.Category
	task.Priority = req.Priority
	task.DueDate = req.DueDate
	if req.Icon != "" {
		task.Icon = req.Icon
	}
	task.SetStatus(req.Status)
	task.UpdatedAt = s.opts.Clock().UTC()

	if err := s.save(ctx, base, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// MoveTask drops a task into a board column
func (s *TaskService) MoveTask(ctx context.Context, id string, status entities.TaskStatus) (*entities.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidStatus, status)
	}

	base, task, err := findAs[entities.Task](s.tasks, id)
	if err != nil {
		return nil, err
	}

	task.SetStatus(status)
	task.UpdatedAt = s.opts.Clock().UTC()

	if err := s.save(ctx, base, task); err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	s.opts.Logger.Infow("Task moved", "task_id", id, "status", status)
	return task, nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.tasks.RemoveItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Board groups the snapshot by column
func (s *TaskService) Board() (ports.Board, error) {
	tasks, err := s.ListTasks()
	if err != nil {
		return ports.Board{}, err
	}

	board := ports.Board{
		Pending:    []ports.TaskView{},
		InProgress: []ports.TaskView{},
		Completed:  []ports.TaskView{},
	}
	for _, t := range s.Views(tasks) {
		switch t.EffectiveStatus() {
		case entities.TaskStatusInProgress:
			board.InProgress = append(board.InProgress, t)
		case entities.TaskStatusCompleted:
			board.Completed = append(board.Completed, t)
		default:
			board.Pending = append(board.Pending, t)
		}
	}
	return board, nil
}

// View adds the overdue flag and a relative due label to t.
func (s *TaskService) View(t entities.Task) ports.TaskView {
	return viewTask(t, s.opts.Clock())
}

func (s *TaskService) Views(tasks []entities.Task) []ports.TaskView {
	now := s.opts.Clock()
	out := make([]ports.TaskView, len(tasks))
	for i, t := range tasks {
		out[i] = viewTask(t, now)
	}
	return out
}

func viewTask(t entities.Task, now time.Time) ports.TaskView {
	v := ports.TaskView{Task: t}
	if t.DueDate == "" {
		return v
	}
	due, err := dates.Parse(t.DueDate, now.Location())
	if err != nil {
		return v
	}
	v.Overdue = !isDone(t) && dates.IsOverdue(due, now)
	v.DueLabel = dates.Relative(due, now)
	return v
}

func (s *TaskService) save(ctx context.Context, base entities.Record, task *entities.Task) error {
	rec, err := entities.Merge(base, task)
	if err != nil {
		return err
	}
	return s.tasks.UpdateItem(ctx, rec)
}
