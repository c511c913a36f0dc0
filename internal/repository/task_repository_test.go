package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskmanager/internal/model"
)

func newTask(userID uint, title string, status model.TaskStatus, priority model.TaskPriority) *model.Task {
	return &model.Task{
		Title:    title,
		Status:   status,
		Priority: priority,
		Date:     time.Now(),
		UserID:   userID,
	}
}

func TestTaskRepository_ListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewTaskRepository(db)
	ctx := t.Context()
	owner := createUser(t, users, "a@x.com")

	older := newTask(owner.ID, "older", model.StatusNotStarted, model.PriorityLow)
	older.Date = time.Now().AddDate(0, 0, -2)
	require.NoError(t, repo.Create(ctx, older))
	first := newTask(owner.ID, "first today", model.StatusNotStarted, model.PriorityLow)
	require.NoError(t, repo.Create(ctx, first))
	second := newTask(owner.ID, "second today", model.StatusNotStarted, model.PriorityLow)
	require.NoError(t, repo.Create(ctx, second))

	tasks, err := repo.List(ctx, owner.ID, TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "second today", tasks[0].Title)
	assert.Equal(t, "first today", tasks[1].Title)
	assert.Equal(t, "older", tasks[2].Title)
}

func TestTaskRepository_ListEmptyIsNotNil(t *testing.T) {
	db := setupTestDB(t)
	owner := createUser(t, NewUserRepository(db), "a@x.com")

	tasks, err := NewTaskRepository(db).List(t.Context(), owner.ID, TaskFilter{})
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskRepository_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := t.Context()
	owner := createUser(t, NewUserRepository(db), "a@x.com")

	require.NoError(t, repo.Create(ctx, newTask(owner.ID, "a", model.StatusDone, model.PriorityHigh)))
	require.NoError(t, repo.Create(ctx, newTask(owner.ID, "b", model.StatusInProgress, model.PriorityHigh)))
	require.NoError(t, repo.Create(ctx, newTask(owner.ID, "c", model.StatusDone, model.PriorityLow)))

	done, err := repo.List(ctx, owner.ID, TaskFilter{Status: model.StatusDone})
	require.NoError(t, err)
	assert.Len(t, done, 2)
	for _, task := range done {
		assert.Equal(t, model.StatusDone, task.Status)
	}

	high, err := repo.List(ctx, owner.ID, TaskFilter{Priority: model.PriorityHigh})
	require.NoError(t, err)
	assert.Len(t, high, 2)
	assert.Equal(t, "b", high[0].Title)
}

func TestTaskRepository_OwnershipIsolation(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	repo := NewTaskRepository(db)
	ctx := t.Context()
	alice := createUser(t, users, "alice@x.com")
	bob := createUser(t, users, "bob@x.com")

	task := newTask(alice.ID, "alice's", model.StatusNotStarted, model.PriorityLow)
	require.NoError(t, repo.Create(ctx, task))

	_, err := repo.FindForUser(ctx, bob.ID, task.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	bobTasks, err := repo.List(ctx, bob.ID, TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, bobTasks)

	require.NoError(t, repo.UpdateFields(ctx, bob.ID, task.ID, map[string]interface{}{"title": "hijacked"}))
	deleted, err := repo.DeleteForUser(ctx, bob.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	stored, err := repo.FindForUser(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice's", stored.Title)
}

func TestTaskRepository_UpdateFieldsIsPartial(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := t.Context()
	owner := createUser(t, NewUserRepository(db), "a@x.com")

	desc := "two litres"
	task := newTask(owner.ID, "Buy milk", model.StatusNotStarted, model.PriorityMedium)
	task.Description = &desc
	require.NoError(t, repo.Create(ctx, task))

	require.NoError(t, repo.UpdateFields(ctx, owner.ID, task.ID, map[string]interface{}{"status": model.StatusDone}))

	stored, err := repo.FindForUser(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, stored.Status)
	assert.Equal(t, "Buy milk", stored.Title)
	assert.Equal(t, model.PriorityMedium, stored.Priority)
	require.NotNil(t, stored.Description)
	assert.Equal(t, "two litres", *stored.Description)

	require.NoError(t, repo.UpdateFields(ctx, owner.ID, task.ID, nil))
}

func TestTaskRepository_DeleteTwice(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := t.Context()
	owner := createUser(t, NewUserRepository(db), "a@x.com")

	task := newTask(owner.ID, "temp", model.StatusNotStarted, model.PriorityLow)
	require.NoError(t, repo.Create(ctx, task))

	deleted, err := repo.DeleteForUser(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteForUser(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
