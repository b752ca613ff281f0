package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lifeflow/core/internal/application/hook"
	"github.com/lifeflow/core/internal/domain/entities"
	"github.com/lifeflow/core/internal/domain/schema"
	"github.com/lifeflow/core/internal/ports"
)

const (
	defaultListColor = "#8b5cf6"
	defaultListIcon  = "List"
)

// ListService handles checklists and their embedded items
type ListService struct {
	lists *hook.Hook
	tasks *hook.Hook
	gw    ports.Gateway
	opts  Options
}

// NewListService creates a new list service. gw runs the item to task
// conversion as one transaction; both hooks are reloaded afterwards.
func NewListService(lists, tasks *hook.Hook, gw ports.Gateway, opts Options) *ListService {
	return &ListService{lists: lists, tasks: tasks, gw: gw, opts: opts.withDefaults()}
}

func (s *ListService) CreateList(ctx context.Context, req ports.CreateListRequest) (*entities.List, error) {
	if err := s.opts.validate(req); err != nil {
		return nil, err
	}

	list := &entities.List{
		ID:        newID(),
		Name:      strings.TrimSpace(req.Name),
		Color:     req.Color,
		Icon:      req.Icon,
		Items:     []entities.ListItem{},
		CreatedAt: s.opts.Clock().UTC(),
	}
	if list.Color == "" {
		list.Color = defaultListColor
	}
	if list.Icon == "" {
		list.Icon = defaultListIcon
	}

	rec, err := entities.ToRecord(list)
	if err != nil {
		return nil, err
	}
	if err := s.lists.AddItem(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return list, nil
}

func (s *ListService) ListLists() ([]entities.List, error) {
	return decodeAll[entities.List](s.opts, schema.Lists, s.lists.Data()), nil
}

func (s *ListService) GetList(id string) (*entities.List, error) {
	_, list, err := findAs[entities.List](s.lists, id)
	return list, err
}

// DeleteList removes the list. Tasks converted from its items stay.
func (s *ListService) DeleteList(ctx context.Context, id string) error {
	if err := s.lists.RemoveItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return nil
}

// AddListItem appends an unchecked item with trimmed text.
func (s *ListService) AddListItem(ctx context.Context, listID string, req ports.AddListItemRequest) (*entities.List, error) {
	if err := s.opts.validate(req); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, &ValidationError{Err: entities.ErrEmptyText}
	}

	return s.modify(ctx, listID, func(list *entities.List) error {
		list.Items = append(list.Items, entities.ListItem{ID: newID(), Text: text})
		return nil
	})
}

func (s *ListService) ToggleListItem(ctx context.Context, listID, itemID string) (*entities.List, error) {
	return s.modify(ctx, listID, func(list *entities.List) error {
		i, err := itemIndex(list, itemID)
		if err != nil {
			return err
		}
		list.Items[i].Completed = !list.Items[i].Completed
		return nil
	})
}

func (s *ListService) DeleteListItem(ctx context.Context, listID, itemID string) (*entities.List, error) {
	return s.modify(ctx, listID, func(list *entities.List) error {
		i, err := itemIndex(list, itemID)
		if err != nil {
			return err
		}
		list.Items = append(list.Items[:i:i], list.Items[i+1:]...)
		return nil
	})
}

// ConvertItemToTask creates a pending task from an item, categorised under
// the list's name, and checks the item off. Both writes commit together.
func (s *ListService) ConvertItemToTask(ctx context.Context, listID, itemID string) (*entities.Task, error) {
	var task *entities.Task

	err := s.gw.Tx(ctx, func(tx ports.Tx) error {
		base, err := tx.GetByID(ctx, schema.Lists, listID)
		if err != nil {
			return err
		}
		var list entities.List
		if err := entities.FromRecord(base, &list); err != nil {
			return err
		}
		i, err := itemIndex(&list, itemID)
		if err != nil {
			return err
		}

		now := s.opts.Clock().UTC()
		task = &entities.Task{
			ID:        newID(),
			Title:     list.Items[i].Text,
			Category:  list.Name,
			Priority:  entities.PriorityMedium,
			Icon:      defaultTaskIcon,
			CreatedAt: now,
			UpdatedAt: now,
		}
		task.SetStatus(entities.TaskStatusPending)
		taskRec, err := entities.ToRecord(task)
		if err != nil {
			return err
		}
		if err := tx.Add(ctx, schema.Tasks, taskRec); err != nil {
			return err
		}

		list.Items[i].Completed = true
		listRec, err := entities.Merge(base, list)
		if err != nil {
			return err
		}
		return tx.Update(ctx, schema.Lists, listRec)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to convert list item: %w", err)
	}

	_ = s.lists.Reload(ctx)
	_ = s.tasks.Reload(ctx)

	s.opts.Logger.Infow("List item converted to task", "list_id", listID, "item_id", itemID, "task_id", task.ID)
	return task, nil
}

func (s *ListService) modify(ctx context.Context, listID string, change func(*entities.List) error) (*entities.List, error) {
	base, list, err := findAs[entities.List](s.lists, listID)
	if err != nil {
		return nil, err
	}
	if err := change(list); err != nil {
		return nil, err
	}

	rec, err := entities.Merge(base, list)
	if err != nil {
		return nil, err
	}
	if err := s.lists.UpdateItem(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to update list: %w", err)
	}
	return list, nil
}

func itemIndex(list *entities.List, itemID string) (int, error) {
	for i, it := range list.Items {
		if it.ID == itemID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s in list %s", entities.ErrItemNotFound, itemID, list.ID)
}
