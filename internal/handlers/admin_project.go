package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openedu/conductor-api/internal/dto"
	apierrors "github.com/openedu/conductor-api/internal/errors"
	"github.com/openedu/conductor-api/internal/services"
)

type AdminProjectHandler struct {
	projects *services.AdminProjectService
}

func NewAdminProjectHandler(projects *services.AdminProjectService) *AdminProjectHandler {
	return &AdminProjectHandler{projects: projects}
}

type projectIDQuery struct {
	ID string `form:"id" binding:"required"`
}

// CreateProject creates a project with the requester as its first assignee
func (h *AdminProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CreateProjectRequest struct {
		Title             string `json:"title" binding:"required"`
		Description       string `json:"description"`
		EstimatedProgress *int   `json:"estimatedProgress"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projects.CreateProject(services.CreateAdminProjectInput{
		Title:             req.Title,
		Description:       req.Description,
		EstimatedProgress: req.EstimatedProgress,
		RequesterID:       userID,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"err": false, "id": project.ID})
}

// CreateProjectFromTask promotes a backlog task to a project
func (h *AdminProjectHandler) CreateProjectFromTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CreateFromTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		AdminTaskID string `json:"adminTaskID" binding:"required"`
	}

	var req CreateFromTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projects.CreateProjectFromTask(services.CreateAdminProjectFromTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AdminTaskID: req.AdminTaskID,
		RequesterID: userID,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"err": false, "id": project.ID})
}

// GetProject returns a project with its assignees resolved
func (h *AdminProjectHandler) GetProject(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var query projectIDQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	detail, err := h.projects.GetProjectDetail(query.ID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"err": false, "project": dto.ToAdminProjectDetailDTO(*detail)})
}

// ListCurrentProjects returns the requester's ready and in-progress projects
func (h *AdminProjectHandler) ListCurrentProjects(c *gin.Context) {
	h.listProjects(c, h.projects.ListCurrentProjects)
}

// ListRecentlyCompleted returns the requester's latest completed projects
func (h *AdminProjectHandler) ListRecentlyCompleted(c *gin.Context) {
	h.listProjects(c, h.projects.ListRecentlyCompleted)
}

// ListAllCompleted returns every completed project of the requester
func (h *AdminProjectHandler) ListAllCompleted(c *gin.Context) {
	h.listProjects(c, h.projects.ListAllCompleted)
}

func (h *AdminProjectHandler) listProjects(c *gin.Context, list func(string) ([]services.ProjectWithLastUpdate, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projects, err := list(userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"err": false, "projects": dto.ToProjectWithLastUpdateList(projects)})
}

// AddAssignee appends a user to a project's assignees
func (h *AdminProjectHandler) AddAssignee(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type AddAssigneeRequest struct {
		ID          string `json:"id" binding:"required"`
		NewAssignee string `json:"newAssignee" binding:"required"`
	}

	var req AddAssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.projects.AddAssignee(req.ID, req.NewAssignee, userID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"err": false, "id": req.ID})
}

// UpdateProject changes the title and/or description of a project
func (h *AdminProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		ID          string  `json:"id" binding:"required"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := h.projects.UpdateProject(req.ID, services.UpdateAdminProjectInput{
		Title:       req.Title,
		Description: req.Description,
	}, userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"err": false, "id": project.ID})
}

// MarkProjectCompleted completes a project at full progress
func (h *AdminProjectHandler) MarkProjectCompleted(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CompleteProjectRequest struct {
		ID string `json:"id" binding:"required"`
	}

	var req CompleteProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.projects.MarkProjectCompleted(req.ID, userID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"err": false, "msg": "Project marked as completed."})
}

// DeleteProject removes a project with its assignees and updates
func (h *AdminProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var query projectIDQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.projects.DeleteProject(query.ID, userID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"err": false, "deletedProject": true})
}

// AddProgressUpdate posts a progress update to a project
func (h *AdminProjectHandler) AddProgressUpdate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type AddUpdateRequest struct {
		ProjectID         string `json:"projectID" binding:"required"`
		Message           string `json:"message" binding:"required"`
		EstimatedProgress *int   `json:"estimatedProgress" binding:"required"`
	}

	var req AddUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.projects.AddProgressUpdate(services.AddProgressUpdateInput{
		ProjectID:         req.ProjectID,
		Message:           req.Message,
		EstimatedProgress: *req.EstimatedProgress,
		AuthorID:          userID,
	}); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"err": false, "msg": "Progress update saved."})
}

// ListProgressUpdates returns a project's updates, newest first
func (h *AdminProjectHandler) ListProgressUpdates(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var query projectIDQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	updates, err := h.projects.ListProgressUpdates(query.ID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"err": false, "updates": dto.ToProgressUpdateList(updates)})
}

// DeleteProgressUpdate removes one update from a project
func (h *AdminProjectHandler) DeleteProgressUpdate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type DeleteUpdateQuery struct {
		ProjectID string `form:"projectID" binding:"required"`
		UpdateID  string `form:"updateID" binding:"required"`
	}

	var query DeleteUpdateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.projects.DeleteProgressUpdate(query.ProjectID, query.UpdateID, userID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"err": false, "deletedProgressUpdate": true})
}

// GetFeed returns the digest of recent progress updates
func (h *AdminProjectHandler) GetFeed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type FeedQuery struct {
		FromDate string `form:"fromDate"`
		ToDate   string `form:"toDate"`
	}

	var query FeedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	feed, err := h.projects.GetFeed(services.FeedInput{
		RequesterID: userID,
		FromDate:    query.FromDate,
		ToDate:      query.ToDate,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	out := dto.ToFeedDTO(*feed)
	c.JSON(http.StatusOK, gin.H{
		"err":       false,
		"updates":   out.Updates,
		"startDate": out.StartDate,
		"endDate":   out.EndDate,
	})
}
