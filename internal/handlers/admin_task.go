package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openedu/conductor-api/internal/dto"
	apierrors "github.com/openedu/conductor-api/internal/errors"
	"github.com/openedu/conductor-api/internal/models"
	"github.com/openedu/conductor-api/internal/services"
)

type AdminTaskHandler struct {
	tasks *services.AdminTaskService
}

func NewAdminTaskHandler(tasks *services.AdminTaskService) *AdminTaskHandler {
	return &AdminTaskHandler{tasks: tasks}
}

type taskIDQuery struct {
	ID string `form:"id" binding:"required"`
}

// CreateTask adds a task to the backlog
func (h *AdminTaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string                 `json:"title" binding:"required"`
		Status      models.AdminTaskStatus `json:"status"`
		Description string                 `json:"description"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.tasks.CreateTask(services.CreateAdminTaskInput{
		Title:       req.Title,
		Status:      req.Status,
		Description: req.Description,
		RequesterID: userID,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"err": false, "id": task.ID})
}

// ListTasks returns the open backlog
func (h *AdminTaskHandler) ListTasks(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	tasks, err := h.tasks.ListOpenTasks()
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"err": false, "tasks": dto.ToAdminTaskList(tasks)})
}

// GetTask returns a single task
func (h *AdminTaskHandler) GetTask(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var query taskIDQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.tasks.GetTask(query.ID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"err": false, "task": dto.ToAdminTaskDTO(*task)})
}

// UpdateTask applies the fields present in the body
func (h *AdminTaskHandler) UpdateTask(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	type UpdateTaskRequest struct {
		ID          string                  `json:"id" binding:"required"`
		Title       *string                 `json:"title"`
		Status      *models.AdminTaskStatus `json:"status"`
		Description *string                 `json:"description"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := h.tasks.UpdateTask(req.ID, services.UpdateAdminTaskInput{
		Title:       req.Title,
		Status:      req.Status,
		Description: req.Description,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"err": false, "id": task.ID})
}

// DeleteTask removes a task from the backlog
func (h *AdminTaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var query taskIDQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.tasks.DeleteTask(query.ID, userID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"err": false, "deletedTask": true})
}
