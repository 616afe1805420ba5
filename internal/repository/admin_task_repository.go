package repository

import (
	"github.com/openedu/conductor-api/internal/models"
	"gorm.io/gorm"
)

// GormAdminTaskRepository is a GORM implementation of AdminTaskRepository
type GormAdminTaskRepository struct {
	db *gorm.DB
}

// NewAdminTaskRepository creates a new AdminTaskRepository
func NewAdminTaskRepository(db *gorm.DB) AdminTaskRepository {
	return &GormAdminTaskRepository{db: db}
}

// Create creates a new task
func (r *GormAdminTaskRepository) Create(task *models.AdminTask) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormAdminTaskRepository) FindByID(id string) (*models.AdminTask, error) {
	var task models.AdminTask
	if err := r.db.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByStatus lists up to limit tasks in any of the given statuses
func (r *GormAdminTaskRepository) ListByStatus(statuses []models.AdminTaskStatus, limit int) ([]models.AdminTask, error) {
	var tasks []models.AdminTask

	query := r.db.Where("status IN ?", statuses).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update writes the named columns of task; other columns keep their stored values
func (r *GormAdminTaskRepository) Update(task *models.AdminTask, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(task).Select(fields).Updates(task).Error
}

// Delete soft deletes a task
func (r *GormAdminTaskRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.AdminTask{}).Error
}
