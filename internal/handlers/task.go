package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tasker-api/internal/dto"
	apierrors "github.com/yukikurage/tasker-api/internal/errors"
	"github.com/yukikurage/tasker-api/internal/middleware"
	"github.com/yukikurage/tasker-api/internal/models"
	"github.com/yukikurage/tasker-api/internal/services"
	"github.com/yukikurage/tasker-api/internal/utils"
)

type TaskHandler struct {
	taskService    *services.TaskService
	historyService *services.HistoryService
}

func NewTaskHandler(taskService *services.TaskService, historyService *services.HistoryService) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		historyService: historyService,
	}
}

// ListTasks returns tasks the current user created or is assigned to
// Can filter by status
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.FindAllFiltered(c.Request.Context(), c.Query("status"), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string `json:"title" binding:"required,max=255"`
		Description string `json:"description"`
		ProjectID   uint64 `json:"project_id" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
	}, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	task, err := h.taskService.FindOneSecure(c.Request.Context(), middleware.GetTaskID(c), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask changes the status of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	task, err := h.taskService.UpdateStatus(c.Request.Context(), middleware.GetTaskID(c), req.Status, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// AssignTask sets the assignee of a task and records the assignment
func (h *TaskHandler) AssignTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	type AssignTaskRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	task, err := h.taskService.AssignTask(c.Request.Context(), middleware.GetTaskID(c), userID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.historyService.LogAssignment(c.Request.Context(), task, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.taskService.Remove(c.Request.Context(), middleware.GetTaskID(c), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// GenerateTasks suggests tasks from free text using AI
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	type GenerateTasksRequest struct {
		Text      string `json:"text" binding:"required"`
		ProjectID uint64 `json:"project_id" binding:"required"`
	}

	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	generated, err := h.taskService.SuggestTasks(c.Request.Context(), req.ProjectID, userID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	suggestions := make([]dto.GeneratedTaskDTO, len(generated))
	for i, g := range generated {
		suggestions[i] = dto.GeneratedTaskDTO{Title: g.Title, Description: g.Description}
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": suggestions,
	})
}

// ListHistory returns the audit trail of a task
func (h *TaskHandler) ListHistory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entries, err := h.historyService.FindByTask(c.Request.Context(), middleware.GetTaskID(c), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": dto.ToHistoryDTOs(entries),
	})
}
