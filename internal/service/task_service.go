package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

// CreateTaskInput carries the fields accepted on creation. Empty status and
// priority fall back to not-started and low.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      model.TaskStatus
	Priority    model.TaskPriority
}

// UpdateTaskInput is a partial update: nil fields keep their stored value,
// non-nil fields are applied as given, including empty strings.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
	Priority    *model.TaskPriority
}

// TaskService exposes task operations scoped to the owning user.
type TaskService interface {
	List(ctx context.Context, userID uint) ([]model.Task, error)
	ListByStatus(ctx context.Context, userID uint, status model.TaskStatus) ([]model.Task, error)
	ListByPriority(ctx context.Context, userID uint, priority model.TaskPriority) ([]model.Task, error)
	Get(ctx context.Context, userID, taskID uint) (*model.Task, error)
	Create(ctx context.Context, userID uint, in CreateTaskInput) (*model.Task, error)
	Update(ctx context.Context, userID, taskID uint, in UpdateTaskInput) (*model.Task, error)
	Delete(ctx context.Context, userID, taskID uint) error
}

type taskService struct {
	repo repository.TaskRepository
	now  func() time.Time
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo, now: time.Now}
}

func (s *taskService) List(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.repo.List(ctx, userID, repository.TaskFilter{})
}

func (s *taskService) ListByStatus(ctx context.Context, userID uint, status model.TaskStatus) ([]model.Task, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}
	return s.repo.List(ctx, userID, repository.TaskFilter{Status: status})
}

func (s *taskService) ListByPriority(ctx context.Context, userID uint, priority model.TaskPriority) ([]model.Task, error) {
	if !priority.Valid() {
		return nil, apperrors.ErrInvalidPriority
	}
	return s.repo.List(ctx, userID, repository.TaskFilter{Priority: priority})
}

func (s *taskService) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.repo.FindForUser(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

func (s *taskService) Create(ctx context.Context, userID uint, in CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.ErrTitleRequired
	}

	status := in.Status
	if status == "" {
		status = model.StatusNotStarted
	}
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityLow
	}
	if !priority.Valid() {
		return nil, apperrors.ErrInvalidPriority
	}

	task := &model.Task{
		Title:       title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		Date:        model.DateOf(s.now()),
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update is a read-modify-write without a transaction; a concurrent delete
// between the steps yields ErrTaskNotFound.
func (s *taskService) Update(ctx context.Context, userID, taskID uint, in UpdateTaskInput) (*model.Task, error) {
	if _, err := s.Get(ctx, userID, taskID); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{}, 4)
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperrors.ErrTitleRequired
		}
		fields["title"] = title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperrors.ErrInvalidStatus
		}
		fields["status"] = *in.Status
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, apperrors.ErrInvalidPriority
		}
		fields["priority"] = *in.Priority
	}

	if err := s.repo.UpdateFields(ctx, userID, taskID, fields); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, taskID)
}

func (s *taskService) Delete(ctx context.Context, userID, taskID uint) error {
	deleted, err := s.repo.DeleteForUser(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
