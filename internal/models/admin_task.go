package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminTaskStatus string

const (
	AdminTaskStatusReady     AdminTaskStatus = "ready"
	AdminTaskStatusWait      AdminTaskStatus = "wait"
	AdminTaskStatusReview    AdminTaskStatus = "review"
	AdminTaskStatusConverted AdminTaskStatus = "converted"
)

// OpenAdminTaskStatuses are the statuses of tasks still in the backlog
var OpenAdminTaskStatuses = []AdminTaskStatus{
	AdminTaskStatusReady,
	AdminTaskStatusWait,
	AdminTaskStatusReview,
}

// Valid reports whether s is a known task status
func (s AdminTaskStatus) Valid() bool {
	switch s {
	case AdminTaskStatusReady, AdminTaskStatusWait, AdminTaskStatusReview, AdminTaskStatusConverted:
		return true
	}
	return false
}

type AdminTask struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)" json:"adminTaskID"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Status      AdminTaskStatus `gorm:"type:varchar(20);not null;default:'ready';index" json:"status"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate assigns a fresh identifier when none was provided
func (t *AdminTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
