package dto

import (
	"time"

	"github.com/openedu/conductor-api/internal/models"
)

// AdminTaskDTO represents a task in API responses
type AdminTaskDTO struct {
	ID          string                 `json:"adminTaskID"`
	Title       string                 `json:"title"`
	Status      models.AdminTaskStatus `json:"status"`
	Description string                 `json:"description"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// AdminTaskListItemDTO represents a task in list responses (minimal data)
type AdminTaskListItemDTO struct {
	ID     string                 `json:"adminTaskID"`
	Title  string                 `json:"title"`
	Status models.AdminTaskStatus `json:"status"`
}

// ToAdminTaskDTO converts an AdminTask model to AdminTaskDTO
func ToAdminTaskDTO(task models.AdminTask) AdminTaskDTO {
	return AdminTaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Status:      task.Status,
		Description: task.Description,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToAdminTaskList converts tasks to their list projection
func ToAdminTaskList(tasks []models.AdminTask) []AdminTaskListItemDTO {
	items := make([]AdminTaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = AdminTaskListItemDTO{
			ID:     task.ID,
			Title:  task.Title,
			Status: task.Status,
		}
	}
	return items
}
