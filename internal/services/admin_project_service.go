package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openedu/conductor-api/internal/authz"
	"github.com/openedu/conductor-api/internal/constants"
	"github.com/openedu/conductor-api/internal/models"
	"github.com/openedu/conductor-api/internal/repository"
	"gorm.io/gorm"
)

// AdminProjectService handles admin projects, their assignees and progress updates
type AdminProjectService struct {
	projectRepo repository.AdminProjectRepository
	updateRepo  repository.AdminProjectUpdateRepository
	userRepo    repository.UserRepository
	actors      actorResolver
	now         func() time.Time
}

// NewAdminProjectService creates a new AdminProjectService
func NewAdminProjectService(
	projectRepo repository.AdminProjectRepository,
	updateRepo repository.AdminProjectUpdateRepository,
	userRepo repository.UserRepository,
) *AdminProjectService {
	return &AdminProjectService{
		projectRepo: projectRepo,
		updateRepo:  updateRepo,
		userRepo:    userRepo,
		actors:      actorResolver{userRepo: userRepo},
		now:         time.Now,
	}
}

// CreateAdminProjectInput represents input for creating a project
type CreateAdminProjectInput struct {
	Title             string
	Description       string
	EstimatedProgress *int
	RequesterID       string
}

// CreateAdminProjectFromTaskInput represents input for converting a task into a project
type CreateAdminProjectFromTaskInput struct {
	Title       string
	Description string
	AdminTaskID string
	RequesterID string
}

// UpdateAdminProjectInput represents input for updating a project.
// Nil fields are left untouched.
type UpdateAdminProjectInput struct {
	Title       *string
	Description *string
}

// AddProgressUpdateInput represents input for posting a progress update
type AddProgressUpdateInput struct {
	ProjectID         string
	Message           string
	EstimatedProgress int
	AuthorID          string
}

// FeedInput represents the optional MM-DD-YYYY window of the feed
type FeedInput struct {
	RequesterID string
	FromDate    string
	ToDate      string
}

// ProjectDetail is a project with its assignees resolved to users
type ProjectDetail struct {
	Project   models.AdminProject
	Assignees []models.User
}

// ProjectWithLastUpdate is a project annotated with its most recent update.
// Projects without updates carry a synthetic entry built from their last modification.
type ProjectWithLastUpdate struct {
	Project    models.AdminProject
	LastUpdate models.AdminProjectUpdate
	Synthetic  bool
}

// Feed is the digest of progress updates in a date window.
// EndDate is exclusive.
type Feed struct {
	Updates   []models.AdminProjectUpdate
	StartDate time.Time
	EndDate   time.Time
}

// CreateProject creates a project with the requester as its sole assignee
func (s *AdminProjectService) CreateProject(input CreateAdminProjectInput) (*models.AdminProject, error) {
	actor, err := s.actors.resolve(input.RequesterID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(authz.ActionCreateProject, authz.Resource{}, actor); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	progress := constants.MinProgress
	if input.EstimatedProgress != nil {
		if !validProgress(*input.EstimatedProgress) {
			return nil, ErrInvalidProgress
		}
		progress = *input.EstimatedProgress
	}

	project := &models.AdminProject{
		Title:           title,
		Description:     input.Description,
		Status:          models.AdminProjectStatusReady,
		CurrentProgress: progress,
	}

	if err := s.projectRepo.Create(project, actor.UUID); err != nil {
		return nil, fmt.Errorf("failed to create admin project: %w", err)
	}

	return project, nil
}

// CreateProjectFromTask converts a backlog task into a project.
// The project, its first assignee and the task's converted status are written atomically.
func (s *AdminProjectService) CreateProjectFromTask(input CreateAdminProjectFromTaskInput) (*models.AdminProject, error) {
	actor, err := s.actors.resolve(input.RequesterID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(authz.ActionCreateProject, authz.Resource{}, actor); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.AdminTaskID) == "" {
		return nil, ErrAdminTaskIDMissing
	}

	project := &models.AdminProject{
		Title:       title,
		Description: input.Description,
		Status:      models.AdminProjectStatusReady,
	}

	if err := s.projectRepo.CreateFromTask(project, actor.UUID, input.AdminTaskID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrAdminTaskNotFound
		case errors.Is(err, repository.ErrTaskAlreadyConverted):
			return nil, ErrTaskAlreadyConverted
		default:
			return nil, fmt.Errorf("failed to convert admin task: %w", err)
		}
	}

	return project, nil
}

// GetProjectDetail returns a project with assignee names in assignee order.
// Any authenticated user may read.
func (s *AdminProjectService) GetProjectDetail(id string) (*ProjectDetail, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, ErrProjectNotFound, "find admin project")
	}

	ids := project.AssigneeUUIDs()
	users, err := s.userRepo.FindByUUIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve assignees: %w", err)
	}

	byUUID := make(map[string]models.User, len(users))
	for _, u := range users {
		byUUID[u.UUID] = u
	}

	// Assignees whose user record is gone are skipped
	assignees := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byUUID[id]; ok {
			assignees = append(assignees, u)
		}
	}

	return &ProjectDetail{Project: *project, Assignees: assignees}, nil
}

// ListCurrentProjects returns the requester's ready and in-progress projects
func (s *AdminProjectService) ListCurrentProjects(requesterID string) ([]ProjectWithLastUpdate, error) {
	return s.listWithLastUpdate(repository.AdminProjectFilter{
		AssigneeUUID: requesterID,
		Statuses:     models.CurrentAdminProjectStatuses,
	})
}

// ListRecentlyCompleted returns the requester's two most recently completed projects
func (s *AdminProjectService) ListRecentlyCompleted(requesterID string) ([]ProjectWithLastUpdate, error) {
	return s.listWithLastUpdate(repository.AdminProjectFilter{
		AssigneeUUID:      requesterID,
		Statuses:          []models.AdminProjectStatus{models.AdminProjectStatusCompleted},
		OrderByCompletion: true,
		Limit:             constants.RecentlyCompletedLimit,
	})
}

// ListAllCompleted returns all of the requester's completed projects, newest completion first
func (s *AdminProjectService) ListAllCompleted(requesterID string) ([]ProjectWithLastUpdate, error) {
	return s.listWithLastUpdate(repository.AdminProjectFilter{
		AssigneeUUID:      requesterID,
		Statuses:          []models.AdminProjectStatus{models.AdminProjectStatusCompleted},
		OrderByCompletion: true,
	})
}

func (s *AdminProjectService) listWithLastUpdate(filter repository.AdminProjectFilter) ([]ProjectWithLastUpdate, error) {
	projects, err := s.projectRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin projects: %w", err)
	}

	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	latest, err := s.updateRepo.LatestByProjects(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest progress updates: %w", err)
	}

	result := make([]ProjectWithLastUpdate, len(projects))
	for i, p := range projects {
		item := ProjectWithLastUpdate{Project: p}
		if u, ok := latest[p.ID]; ok {
			item.LastUpdate = u
		} else {
			item.LastUpdate = models.AdminProjectUpdate{
				ProjectID:         p.ID,
				EstimatedProgress: p.CurrentProgress,
				CreatedAt:         p.UpdatedAt,
			}
			item.Synthetic = true
		}
		result[i] = item
	}

	return result, nil
}

// AddAssignee appends a user to a project. Adding an existing assignee is a no-op.
func (s *AdminProjectService) AddAssignee(id, newAssigneeID, requesterID string) error {
	project, err := s.authorizeOnProject(authz.ActionAddAssignee, id, requesterID)
	if err != nil {
		return err
	}

	if _, err := s.userRepo.FindByUUID(newAssigneeID); err != nil {
		return notFoundOr(err, ErrAssigneeNotFound, "find assignee")
	}

	if err := s.projectRepo.AddAssignee(project.ID, newAssigneeID); err != nil {
		return fmt.Errorf("failed to add assignee: %w", err)
	}

	return nil
}

// UpdateProject changes a project's title and/or description
func (s *AdminProjectService) UpdateProject(id string, input UpdateAdminProjectInput, requesterID string) (*models.AdminProject, error) {
	project, err := s.authorizeOnProject(authz.ActionModifyProject, id, requesterID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		project.Title = title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}

	if err := s.projectRepo.UpdateDetails(project); err != nil {
		return nil, fmt.Errorf("failed to update admin project: %w", err)
	}

	return project, nil
}

// MarkProjectCompleted completes a project that has reached 100% progress
func (s *AdminProjectService) MarkProjectCompleted(id, requesterID string) (*models.AdminProject, error) {
	if _, err := s.authorizeOnProject(authz.ActionCompleteProject, id, requesterID); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.Complete(id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectIncomplete) {
			return nil, ErrProjectNotAtFullProgress
		}
		return nil, notFoundOr(err, ErrProjectNotFound, "complete admin project")
	}

	return project, nil
}

// DeleteProject deletes a project along with its assignees and updates
func (s *AdminProjectService) DeleteProject(id, requesterID string) error {
	if _, err := s.authorizeOnProject(authz.ActionDeleteProject, id, requesterID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete admin project: %w", err)
	}

	return nil
}

// AddProgressUpdate records an update and moves the project's progress to the new estimate.
// The first update of a ready project puts it in progress.
func (s *AdminProjectService) AddProgressUpdate(input AddProgressUpdateInput) (*models.AdminProject, error) {
	if _, err := s.authorizeOnProject(authz.ActionPostUpdate, input.ProjectID, input.AuthorID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Message) == "" {
		return nil, ErrMessageRequired
	}
	if !validProgress(input.EstimatedProgress) {
		return nil, ErrInvalidProgress
	}

	update := &models.AdminProjectUpdate{
		ProjectID:         input.ProjectID,
		AuthorUUID:        input.AuthorID,
		Message:           strings.TrimSpace(input.Message),
		EstimatedProgress: input.EstimatedProgress,
	}

	project, err := s.projectRepo.AppendUpdate(update)
	if err != nil {
		if errors.Is(err, repository.ErrProjectCompleted) {
			return nil, ErrProjectAlreadyCompleted
		}
		return nil, notFoundOr(err, ErrProjectNotFound, "add progress update")
	}

	return project, nil
}

// ListProgressUpdates returns a project's updates, newest first. Any authenticated user may read.
func (s *AdminProjectService) ListProgressUpdates(projectID string) ([]models.AdminProjectUpdate, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		return nil, notFoundOr(err, ErrProjectNotFound, "find admin project")
	}

	updates, err := s.updateRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress updates: %w", err)
	}

	return updates, nil
}

// DeleteProgressUpdate removes an update. Any assignee of the parent project may delete it.
func (s *AdminProjectService) DeleteProgressUpdate(projectID, updateID, requesterID string) error {
	if _, err := s.authorizeOnProject(authz.ActionDeleteUpdate, projectID, requesterID); err != nil {
		return err
	}

	if _, err := s.updateRepo.FindByID(projectID, updateID); err != nil {
		return notFoundOr(err, ErrProgressUpdateNotFound, "find progress update")
	}

	if err := s.updateRepo.Delete(updateID); err != nil {
		return fmt.Errorf("failed to delete progress update: %w", err)
	}

	return nil
}

// GetFeed returns up to 200 updates in the window, defaulting to the trailing seven days.
// Both dates are whole UTC days and the end date is inclusive.
func (s *AdminProjectService) GetFeed(input FeedInput) (*Feed, error) {
	actor, err := s.actors.resolve(input.RequesterID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(authz.ActionReadFeed, authz.Resource{}, actor); err != nil {
		return nil, err
	}

	// Without a toDate the window ends after today, so every day in it is whole
	now := s.now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	if input.ToDate != "" {
		day, err := parseFeedDate(input.ToDate)
		if err != nil {
			return nil, err
		}
		end = day.AddDate(0, 0, 1)
	}

	start := end.AddDate(0, 0, -constants.FeedDefaultWindowInDays)
	if input.FromDate != "" {
		day, err := parseFeedDate(input.FromDate)
		if err != nil {
			return nil, err
		}
		start = day
	}

	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}

	updates, err := s.updateRepo.ListBetween(start, end, constants.FeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}

	return &Feed{Updates: updates, StartDate: start, EndDate: end}, nil
}

// authorizeOnProject loads a project and checks the requester against its assignees
func (s *AdminProjectService) authorizeOnProject(action authz.Action, projectID, requesterID string) (*models.AdminProject, error) {
	actor, err := s.actors.resolve(requesterID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, notFoundOr(err, ErrProjectNotFound, "find admin project")
	}

	if err := authz.Authorize(action, authz.Resource{Assignees: project.AssigneeUUIDs()}, actor); err != nil {
		return nil, err
	}

	return project, nil
}

func parseFeedDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.FeedDateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func validProgress(p int) bool {
	return p >= constants.MinProgress && p <= constants.MaxProgress
}
