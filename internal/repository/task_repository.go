package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskmanager/internal/model"
)

// newestFirst orders by the creation date, breaking same-day ties by id.
const newestFirst = "date DESC, id DESC"

// TaskFilter narrows a task listing. Zero values match everything.
type TaskFilter struct {
	Status   model.TaskStatus
	Priority model.TaskPriority
}

// TaskRepository defines task persistence. Every method is scoped to one owner.
type TaskRepository interface {
	List(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error)
	FindForUser(ctx context.Context, userID, taskID uint) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	UpdateFields(ctx context.Context, userID, taskID uint, fields map[string]interface{}) error
	DeleteForUser(ctx context.Context, userID, taskID uint) (bool, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// List returns the owner's tasks, newest first.
func (r *taskRepository) List(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}

	tasks := make([]model.Task, 0)
	if err := q.Order(newestFirst).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// FindForUser returns gorm.ErrRecordNotFound both when the task is missing
// and when it belongs to someone else.
func (r *taskRepository) FindForUser(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// UpdateFields writes only the given columns.
func (r *taskRepository) UpdateFields(ctx context.Context, userID, taskID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// DeleteForUser reports whether a row was removed.
func (r *taskRepository) DeleteForUser(ctx context.Context, userID, taskID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", taskID, userID).Delete(&model.Task{})
	if res.Error != nil {
		return false, fmt.Errorf("delete task: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
