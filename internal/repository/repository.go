package repository

import (
	"time"

	"github.com/openedu/conductor-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user together with its roles
	Create(user *models.User) error

	// FindByUUID finds a user by identifier with roles preloaded
	FindByUUID(uuid string) (*models.User, error)

	// FindByUUIDs finds every existing user among the given identifiers
	FindByUUIDs(uuids []string) ([]models.User, error)

	// GrantRole attaches a role to a user, ignoring roles already held
	GrantRole(uuid, role string) error
}

// AdminTaskRepository defines the interface for admin task data access
type AdminTaskRepository interface {
	// Create creates a new task
	Create(task *models.AdminTask) error

	// FindByID finds a task by ID
	FindByID(id string) (*models.AdminTask, error)

	// ListByStatus lists up to limit tasks in any of the given statuses
	ListByStatus(statuses []models.AdminTaskStatus, limit int) ([]models.AdminTask, error)

	// Update writes the named columns of task
	Update(task *models.AdminTask, fields ...string) error

	// Delete soft deletes a task
	Delete(id string) error
}

// AdminProjectRepository defines the interface for admin project data access.
// Operations touching more than one record run in a single transaction.
type AdminProjectRepository interface {
	// Create creates a project with its first assignee
	Create(project *models.AdminProject, assigneeUUID string) error

	// CreateFromTask creates a project with its first assignee and marks the task converted
	CreateFromTask(project *models.AdminProject, assigneeUUID, taskID string) error

	// FindByID finds a project by ID with assignees preloaded in display order
	FindByID(id string) (*models.AdminProject, error)

	// List lists projects matching the filter with assignees preloaded
	List(filter AdminProjectFilter) ([]models.AdminProject, error)

	// UpdateDetails saves the title and description of a project
	UpdateDetails(project *models.AdminProject) error

	// AddAssignee appends a user to the end of the assignee list; existing assignees are left alone
	AddAssignee(projectID, userUUID string) error

	// Complete marks a project completed once it has reached full progress
	Complete(id string) (*models.AdminProject, error)

	// Delete deletes a project, its assignees and its progress updates
	Delete(id string) error

	// AppendUpdate stores a progress update and advances the parent project
	AppendUpdate(update *models.AdminProjectUpdate) (*models.AdminProject, error)
}

// AdminProjectUpdateRepository defines the interface for progress update reads and removal
type AdminProjectUpdateRepository interface {
	// FindByID finds an update belonging to a project
	FindByID(projectID, updateID string) (*models.AdminProjectUpdate, error)

	// ListByProject lists a project's updates, newest first, with authors preloaded
	ListByProject(projectID string) ([]models.AdminProjectUpdate, error)

	// LatestByProjects returns the newest update of each project that has one
	LatestByProjects(projectIDs []string) (map[string]models.AdminProjectUpdate, error)

	// ListBetween lists up to limit updates created in [from, to), newest first,
	// with authors and parent projects preloaded
	ListBetween(from, to time.Time, limit int) ([]models.AdminProjectUpdate, error)

	// Delete soft deletes an update
	Delete(updateID string) error
}

// AdminProjectFilter holds filtering options for listing projects
type AdminProjectFilter struct {
	AssigneeUUID      string
	Statuses          []models.AdminProjectStatus
	OrderByCompletion bool
	Limit             int
}
