package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminProjectStatus string

const (
	AdminProjectStatusReady      AdminProjectStatus = "ready"
	AdminProjectStatusInProgress AdminProjectStatus = "ip"
	AdminProjectStatusCompleted  AdminProjectStatus = "completed"
)

// CurrentAdminProjectStatuses are the statuses shown on an assignee's dashboard
var CurrentAdminProjectStatuses = []AdminProjectStatus{
	AdminProjectStatusReady,
	AdminProjectStatusInProgress,
}

type AdminProject struct {
	ID              string             `gorm:"primaryKey;type:varchar(36)" json:"projectID"`
	Title           string             `gorm:"type:varchar(255);not null" json:"title"`
	Description     string             `gorm:"type:text" json:"description"`
	Status          AdminProjectStatus `gorm:"type:varchar(20);not null;default:'ready';index" json:"status"`
	CurrentProgress int                `gorm:"not null;default:0" json:"currentProgress"`
	ConvertedFrom   *string            `gorm:"type:varchar(36);index" json:"convertedFrom,omitempty"`
	CompletedAt     *time.Time         `gorm:"index" json:"completedAt,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relations
	Assignees []AdminProjectAssignee `gorm:"foreignKey:ProjectID" json:"-"`
}

// BeforeCreate assigns a fresh identifier when none was provided
func (p *AdminProject) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// AssigneeUUIDs returns the assignee identifiers in display order.
// Assignees must be preloaded.
func (p AdminProject) AssigneeUUIDs() []string {
	ids := make([]string, 0, len(p.Assignees))
	for _, a := range p.Assignees {
		ids = append(ids, a.UserUUID)
	}
	return ids
}
