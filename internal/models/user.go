package models

import (
	"time"

	"github.com/openedu/conductor-api/internal/constants"
)

type User struct {
	UUID      string    `gorm:"primaryKey;type:varchar(36)" json:"uuid"`
	FirstName string    `gorm:"type:varchar(255);not null" json:"firstName"`
	LastName  string    `gorm:"type:varchar(255);not null" json:"lastName"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Avatar    string    `gorm:"type:varchar(512)" json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Roles []UserRole `gorm:"foreignKey:UserUUID;references:UUID" json:"-"`
}

// UserRole attaches a named role to a user
type UserRole struct {
	UserUUID  string    `gorm:"primaryKey;type:varchar(36)" json:"userUUID"`
	Role      string    `gorm:"primaryKey;type:varchar(50)" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasRole reports whether the user holds the named role. Roles must be preloaded.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user holds the admin role
func (u User) IsAdmin() bool {
	return u.HasRole(constants.RoleAdmin)
}
