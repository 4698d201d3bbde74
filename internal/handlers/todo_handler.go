package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/repositories"
	"github.com/AP-CSE-2025/proctor-service/internal/services"
	"github.com/AP-CSE-2025/proctor-service/internal/utils"
)

type TodoHandler struct {
	BaseHandler
	todoService services.TodoService
}

func NewTodoHandler(todoService services.TodoService, logger utils.Logger) *TodoHandler {
	return &TodoHandler{
		BaseHandler: NewBaseHandler(logger),
		todoService: todoService,
	}
}

// CreateTask creates a task owned by the caller
// @Summary Create task
// @Tags todo
// @Accept json
// @Produce json
// @Param task body services.CreateTaskRequest true "Task data"
// @Success 201 {object} Response{data=models.ToDoTask}
// @Failure 422 {object} ErrorResponse
// @Router /todo [post]
func (h *TodoHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request payload", err.Error())
		return
	}

	task, err := h.todoService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.Created(c, "Task created", task)
}

// ListTasks returns the caller's tasks
// @Summary List tasks
// @Tags todo
// @Produce json
// @Param completed query bool false "Filter by completion"
// @Param priority query string false "Filter by priority"
// @Success 200 {object} Response{data=services.TaskListResponse}
// @Router /todo [get]
func (h *TodoHandler) ListTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var filters repositories.TodoFilters
	if completed, err := strconv.ParseBool(c.Query("completed")); err == nil {
		filters.Completed = &completed
	}
	if priority := c.Query("priority"); priority != "" {
		p := models.TaskPriority(priority)
		filters.Priority = &p
	}

	list, err := h.todoService.List(c.Request.Context(), userID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.OK(c, "Tasks fetched", list)
}

// UpdateTask updates one of the caller's tasks
// @Summary Update task
// @Tags todo
// @Accept json
// @Produce json
// @Param id path uint true "Task ID"
// @Param task body services.UpdateTaskRequest true "Task changes"
// @Success 200 {object} Response{data=models.ToDoTask}
// @Failure 404 {object} ErrorResponse
// @Router /todo/{id} [put]
func (h *TodoHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request payload", err.Error())
		return
	}

	task, err := h.todoService.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.OK(c, "Task updated", task)
}

// DeleteTask deletes one of the caller's tasks
// @Summary Delete task
// @Tags todo
// @Produce json
// @Param id path uint true "Task ID"
// @Success 200 {object} Response
// @Failure 404 {object} ErrorResponse
// @Router /todo/{id} [delete]
func (h *TodoHandler) DeleteTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.todoService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.OK(c, "Task deleted", nil)
}
