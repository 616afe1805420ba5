package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminProjectUpdate struct {
	ID                string         `gorm:"primaryKey;type:varchar(36)" json:"updateID"`
	ProjectID         string         `gorm:"type:varchar(36);not null;index" json:"projectID"`
	AuthorUUID        string         `gorm:"type:varchar(36);not null;index" json:"author"`
	Message           string         `gorm:"type:text;not null" json:"message"`
	EstimatedProgress int            `gorm:"not null" json:"estimatedProgress"`
	CreatedAt         time.Time      `gorm:"index" json:"createdAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Author  User         `gorm:"foreignKey:AuthorUUID;references:UUID" json:"-"`
	Project AdminProject `gorm:"foreignKey:ProjectID" json:"-"`
}

// BeforeCreate assigns a fresh identifier when none was provided
func (u *AdminProjectUpdate) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
