package models

import "time"

type AdminProjectAssignee struct {
	ProjectID string    `gorm:"primaryKey;type:varchar(36)" json:"projectID"`
	UserUUID  string    `gorm:"primaryKey;type:varchar(36);index" json:"userUUID"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	User User `gorm:"foreignKey:UserUUID;references:UUID" json:"user,omitempty"`
}
