package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskmanager/internal/model"
	"taskmanager/internal/service"
)

// TaskHandler handles task endpoints for the authenticated user.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string             `json:"title"`
	Description *string            `json:"description"`
	Status      model.TaskStatus   `json:"status"`
	Priority    model.TaskPriority `json:"priority"`
}

// UpdateTaskRequest represents a partial task update. Omitted fields keep
// their stored value.
type UpdateTaskRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Status      *model.TaskStatus   `json:"status"`
	Priority    *model.TaskPriority `json:"priority"`
}

// ListTasks godoc
// @Summary List tasks
// @Description Returns the caller's tasks, newest first.
// @Tags tasks
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.List(c.Request().Context(), id.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTask godoc
// @Summary Get task by id
// @Tags tasks
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	tid, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), id.UserID, tid)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// CreateTask godoc
// @Summary Create task
// @Description Status defaults to not-started and priority to low.
// @Tags tasks
// @Accept json
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task payload"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}

	task, err := h.taskService.Create(c.Request().Context(), id.UserID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

// UpdateTask godoc
// @Summary Update task
// @Description Partial update; omitted fields keep their value.
// @Tags tasks
// @Accept json
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to change"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	tid, err := taskID(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}

	task, err := h.taskService.Update(c.Request().Context(), id.UserID, tid, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete task
// @Tags tasks
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	tid, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), id.UserID, tid); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}

// ListTasksByStatus godoc
// @Summary List tasks with a status
// @Tags tasks
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param status path string true "not-started, in-progress or done"
// @Success 200 {array} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/status/{status} [get]
func (h *TaskHandler) ListTasksByStatus(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListByStatus(c.Request().Context(), id.UserID, model.TaskStatus(c.Param("status")))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// ListTasksByPriority godoc
// @Summary List tasks with a priority
// @Tags tasks
// @Produce json
// @Security CookieAuth
// @Security BearerAuth
// @Param priority path string true "low, medium or high"
// @Success 200 {array} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/priority/{priority} [get]
func (h *TaskHandler) ListTasksByPriority(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListByPriority(c.Request().Context(), id.UserID, model.TaskPriority(c.Param("priority")))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}
