package service

import (
	"context"
	"strings"

	"notodo/internal/models"
	"notodo/internal/query"
)

type TaskInput struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description"`
	Priority    models.Priority `json:"priority" validate:"omitempty,priority"`
	Category    string          `json:"category"`
	IsComplete  bool            `json:"isComplete"`
	// DueDate is a calendar date or RFC 3339 timestamp; empty means none.
	DueDate string `json:"dueDate"`
}

// TaskPatch holds the fields of a partial update. Nil fields are left alone;
// an empty DueDate clears the due date.
type TaskPatch struct {
	Title       *string          `json:"title" validate:"omitempty,max=200"`
	Description *string          `json:"description"`
	Priority    *models.Priority `json:"priority"`
	Category    *string          `json:"category"`
	IsComplete  *bool            `json:"isComplete"`
	DueDate     *string          `json:"dueDate"`
}

type TaskService struct {
	base
}

// List returns the user's tasks filtered and sorted by q.
func (s *TaskService) List(ctx context.Context, userID string, q query.TaskQuery) ([]models.Task, error) {
	const op = "tasks.List"

	if err := q.Validate(); err != nil {
		return nil, validationError(op, "%v", err)
	}
	tasks, err := s.store.ListTasks(ctx, userID)
	if err != nil {
		return nil, storeError(op, "task", err)
	}
	return q.Apply(tasks), nil
}

func (s *TaskService) Get(ctx context.Context, userID, id string) (models.Task, error) {
	t, err := s.owned(ctx, "tasks.Get", userID, id)
	if err != nil {
		return models.Task{}, err
	}
	return *t, nil
}

func (s *TaskService) Create(ctx context.Context, userID string, in TaskInput) (models.Task, error) {
	const op = "tasks.Create"

	in.Title = strings.TrimSpace(in.Title)
	if err := check(op, in); err != nil {
		return models.Task{}, err
	}
	due, err := models.ParseDueDate(in.DueDate)
	if err != nil {
		return models.Task{}, validationError(op, "%v", err)
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}

	now := s.now()
	t := models.Task{
		ID:          newID(),
		OwnerID:     userID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Category:    models.CategoryOrDefault(in.Category),
		IsComplete:  in.IsComplete,
		DueDate:     due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateTask(ctx, &t); err != nil {
		return models.Task{}, storeError(op, "task", err)
	}
	return t, nil
}

// Update merges the non-nil fields of p into the task and refreshes updatedAt.
func (s *TaskService) Update(ctx context.Context, userID, id string, p TaskPatch) (models.Task, error) {
	const op = "tasks.Update"

	t, err := s.owned(ctx, op, userID, id)
	if err != nil {
		return models.Task{}, err
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return models.Task{}, validationError(op, "title cannot be empty")
		}
		p.Title = &title
	}
	if err := check(op, p); err != nil {
		return models.Task{}, err
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		if !p.Priority.Valid() {
			return models.Task{}, validationError(op, "priority must be High, Medium or Low")
		}
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = models.CategoryOrDefault(*p.Category)
	}
	if p.IsComplete != nil {
		t.IsComplete = *p.IsComplete
	}
	if p.DueDate != nil {
		due, err := models.ParseDueDate(*p.DueDate)
		if err != nil {
			return models.Task{}, validationError(op, "%v", err)
		}
		t.DueDate = due
	}
	t.UpdatedAt = s.now()

	if err := s.store.UpdateTask(ctx, t); err != nil {
		return models.Task{}, storeError(op, "task", err)
	}
	return *t, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	const op = "tasks.Delete"

	if _, err := s.owned(ctx, op, userID, id); err != nil {
		return err
	}
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return storeError(op, "task", err)
	}
	return nil
}

// IsOverdue evaluates the overdue rule against the service clock in the server's zone.
func (s *TaskService) IsOverdue(t models.Task) bool {
	return query.IsOverdue(t, s.clock().Local())
}

func (s *TaskService) owned(ctx context.Context, op, userID, id string) (*models.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, storeError(op, "task", err)
	}
	if err := authorize(op, "task", userID, t.OwnerID); err != nil {
		return nil, err
	}
	return t, nil
}
