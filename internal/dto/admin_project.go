package dto

import (
	"time"

	"github.com/openedu/conductor-api/internal/constants"
	"github.com/openedu/conductor-api/internal/models"
	"github.com/openedu/conductor-api/internal/services"
)

// UserDTO represents a user's display fields in API responses
type UserDTO struct {
	UUID      string `json:"uuid"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Avatar    string `json:"avatar,omitempty"`
}

// AdminProjectDTO represents a project in API responses
type AdminProjectDTO struct {
	ID              string                    `json:"projectID"`
	Title           string                    `json:"title"`
	Description     string                    `json:"description"`
	Status          models.AdminProjectStatus `json:"status"`
	CurrentProgress int                       `json:"currentProgress"`
	Assignees       []string                  `json:"assignees"`
	ConvertedFrom   *string                   `json:"convertedFrom,omitempty"`
	CompletedAt     *time.Time                `json:"completedAt,omitempty"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
}

// AdminProjectDetailDTO is a project with its assignees resolved to users
type AdminProjectDetailDTO struct {
	AdminProjectDTO
	Assignees []UserDTO `json:"assignees"`
}

// ProjectRefDTO identifies the parent project of a feed entry
type ProjectRefDTO struct {
	ID    string `json:"projectID"`
	Title string `json:"title"`
}

// ProgressUpdateDTO represents a progress update in API responses
type ProgressUpdateDTO struct {
	ID                string         `json:"updateID,omitempty"`
	ProjectID         string         `json:"projectID"`
	Message           string         `json:"message"`
	EstimatedProgress int            `json:"estimatedProgress"`
	Author            *UserDTO       `json:"author,omitempty"`
	Project           *ProjectRefDTO `json:"project,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// ProjectWithLastUpdateDTO is a dashboard entry
type ProjectWithLastUpdateDTO struct {
	AdminProjectDTO
	LastUpdate ProgressUpdateDTO `json:"lastUpdate"`
	Synthetic  bool              `json:"lastUpdateSynthetic,omitempty"`
}

// FeedDTO is the digest response. Both dates are inclusive MM-DD-YYYY days.
type FeedDTO struct {
	StartDate string              `json:"startDate"`
	EndDate   string              `json:"endDate"`
	Updates   []ProgressUpdateDTO `json:"updates"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		UUID:      user.UUID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
	}
}

// ToAdminProjectDTO converts an AdminProject model to AdminProjectDTO
func ToAdminProjectDTO(project models.AdminProject) AdminProjectDTO {
	return AdminProjectDTO{
		ID:              project.ID,
		Title:           project.Title,
		Description:     project.Description,
		Status:          project.Status,
		CurrentProgress: project.CurrentProgress,
		Assignees:       project.AssigneeUUIDs(),
		ConvertedFrom:   project.ConvertedFrom,
		CompletedAt:     project.CompletedAt,
		CreatedAt:       project.CreatedAt,
		UpdatedAt:       project.UpdatedAt,
	}
}

// ToAdminProjectDetailDTO converts a ProjectDetail to AdminProjectDetailDTO
func ToAdminProjectDetailDTO(detail services.ProjectDetail) AdminProjectDetailDTO {
	assignees := make([]UserDTO, len(detail.Assignees))
	for i, user := range detail.Assignees {
		assignees[i] = ToUserDTO(user)
	}
	return AdminProjectDetailDTO{
		AdminProjectDTO: ToAdminProjectDTO(detail.Project),
		Assignees:       assignees,
	}
}

// ToProgressUpdateDTO converts an AdminProjectUpdate model to ProgressUpdateDTO
func ToProgressUpdateDTO(update models.AdminProjectUpdate) ProgressUpdateDTO {
	dto := ProgressUpdateDTO{
		ID:                update.ID,
		ProjectID:         update.ProjectID,
		Message:           update.Message,
		EstimatedProgress: update.EstimatedProgress,
		CreatedAt:         update.CreatedAt,
	}

	// Include author if preloaded
	if update.Author.UUID != "" {
		author := ToUserDTO(update.Author)
		dto.Author = &author
	}

	// Include parent project if preloaded
	if update.Project.ID != "" {
		dto.Project = &ProjectRefDTO{ID: update.Project.ID, Title: update.Project.Title}
	}

	return dto
}

// ToProgressUpdateList converts updates to their DTOs, keeping order
func ToProgressUpdateList(updates []models.AdminProjectUpdate) []ProgressUpdateDTO {
	items := make([]ProgressUpdateDTO, len(updates))
	for i, update := range updates {
		items[i] = ToProgressUpdateDTO(update)
	}
	return items
}

// ToProjectWithLastUpdateList converts dashboard entries to their DTOs
func ToProjectWithLastUpdateList(entries []services.ProjectWithLastUpdate) []ProjectWithLastUpdateDTO {
	items := make([]ProjectWithLastUpdateDTO, len(entries))
	for i, entry := range entries {
		items[i] = ProjectWithLastUpdateDTO{
			AdminProjectDTO: ToAdminProjectDTO(entry.Project),
			LastUpdate:      ToProgressUpdateDTO(entry.LastUpdate),
			Synthetic:       entry.Synthetic,
		}
	}
	return items
}

// ToFeedDTO converts a Feed, turning its exclusive end bound into the last included day
func ToFeedDTO(feed services.Feed) FeedDTO {
	return FeedDTO{
		StartDate: feed.StartDate.Format(constants.FeedDateLayout),
		EndDate:   feed.EndDate.Add(-time.Nanosecond).Format(constants.FeedDateLayout),
		Updates:   ToProgressUpdateList(feed.Updates),
	}
}
