package services

import (
	"fmt"
	"strings"

	"github.com/openedu/conductor-api/internal/authz"
	"github.com/openedu/conductor-api/internal/constants"
	"github.com/openedu/conductor-api/internal/models"
	"github.com/openedu/conductor-api/internal/repository"
)

// AdminTaskService handles the admin task backlog
type AdminTaskService struct {
	taskRepo repository.AdminTaskRepository
	actors   actorResolver
}

// NewAdminTaskService creates a new AdminTaskService
func NewAdminTaskService(taskRepo repository.AdminTaskRepository, userRepo repository.UserRepository) *AdminTaskService {
	return &AdminTaskService{
		taskRepo: taskRepo,
		actors:   actorResolver{userRepo: userRepo},
	}
}

// CreateAdminTaskInput represents input for creating a task
type CreateAdminTaskInput struct {
	Title       string
	Status      models.AdminTaskStatus
	Description string
	RequesterID string
}

// UpdateAdminTaskInput represents input for updating a task.
// Nil fields are left untouched.
type UpdateAdminTaskInput struct {
	Title       *string
	Status      *models.AdminTaskStatus
	Description *string
}

// CreateTask stores a new backlog task. Only admins may create tasks.
func (s *AdminTaskService) CreateTask(input CreateAdminTaskInput) (*models.AdminTask, error) {
	actor, err := s.actors.resolve(input.RequesterID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(authz.ActionCreateTask, authz.Resource{}, actor); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if input.Status == "" {
		input.Status = models.AdminTaskStatusReady
	}
	if !isOpenTaskStatus(input.Status) {
		return nil, ErrInvalidTaskStatus
	}

	task := &models.AdminTask{
		Title:       title,
		Status:      input.Status,
		Description: input.Description,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create admin task: %w", err)
	}

	return task, nil
}

// ListOpenTasks returns up to 50 tasks that have not been converted
func (s *AdminTaskService) ListOpenTasks() ([]models.AdminTask, error) {
	tasks, err := s.taskRepo.ListByStatus(models.OpenAdminTaskStatuses, constants.OpenTaskListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list admin tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task
func (s *AdminTaskService) GetTask(id string) (*models.AdminTask, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, ErrAdminTaskNotFound, "find admin task")
	}
	return task, nil
}

// UpdateTask applies the provided fields. Status values may replace each other freely.
func (s *AdminTaskService) UpdateTask(id string, input UpdateAdminTaskInput) (*models.AdminTask, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, ErrAdminTaskNotFound, "find admin task")
	}

	var fields []string
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = title
		fields = append(fields, "title")
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *input.Status
		fields = append(fields, "status")
	}
	if input.Description != nil {
		task.Description = *input.Description
		fields = append(fields, "description")
	}

	if err := s.taskRepo.Update(task, fields...); err != nil {
		return nil, fmt.Errorf("failed to update admin task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task. Only admins may delete tasks.
func (s *AdminTaskService) DeleteTask(id, requesterID string) error {
	actor, err := s.actors.resolve(requesterID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(authz.ActionDeleteTask, authz.Resource{}, actor); err != nil {
		return err
	}

	if _, err := s.taskRepo.FindByID(id); err != nil {
		return notFoundOr(err, ErrAdminTaskNotFound, "find admin task")
	}

	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete admin task: %w", err)
	}

	return nil
}

func isOpenTaskStatus(status models.AdminTaskStatus) bool {
	for _, s := range models.OpenAdminTaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}
