package repository

import (
	"github.com/openedu/conductor-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user together with its roles
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByUUID finds a user by identifier with roles preloaded
func (r *GormUserRepository) FindByUUID(uuid string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Roles").Where("uuid = ?", uuid).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUUIDs finds every existing user among the given identifiers
func (r *GormUserRepository) FindByUUIDs(uuids []string) ([]models.User, error) {
	if len(uuids) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := r.db.Where("uuid IN ?", uuids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GrantRole attaches a role to a user, ignoring roles already held
func (r *GormUserRepository) GrantRole(uuid, role string) error {
	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserRole{UserUUID: uuid, Role: role}).Error
}
