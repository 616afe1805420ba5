package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/openedu/conductor-api/internal/constants"
	"github.com/openedu/conductor-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrTaskAlreadyConverted is returned when a task has already been promoted to a project.
	ErrTaskAlreadyConverted = errors.New("admin project repository: task already converted")
	// ErrProjectCompleted is returned when a progress update targets a completed project.
	ErrProjectCompleted = errors.New("admin project repository: project already completed")
	// ErrProjectIncomplete is returned when completing a project below full progress.
	ErrProjectIncomplete = errors.New("admin project repository: project progress below 100")
	// ErrCreateProject is returned when inserting the project fails inside a transaction.
	ErrCreateProject = errors.New("admin project repository: create project failed")
	// ErrCreateAssignee is returned when inserting the first assignee fails inside a transaction.
	ErrCreateAssignee = errors.New("admin project repository: create assignee failed")
	// ErrConvertTask is returned when flipping the source task fails inside a transaction.
	ErrConvertTask = errors.New("admin project repository: convert task failed")
)

// forUpdate locks the selected rows until the surrounding transaction ends.
// Dialects without row locks (SQLite) drop the clause.
var forUpdate = clause.Locking{Strength: "UPDATE"}

// GormAdminProjectRepository is a GORM implementation of AdminProjectRepository
type GormAdminProjectRepository struct {
	db *gorm.DB
}

// NewAdminProjectRepository creates a new AdminProjectRepository
func NewAdminProjectRepository(db *gorm.DB) AdminProjectRepository {
	return &GormAdminProjectRepository{db: db}
}

// Create creates a project with its first assignee
func (r *GormAdminProjectRepository) Create(project *models.AdminProject, assigneeUUID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return createWithAssignee(tx, project, assigneeUUID)
	})
}

// CreateFromTask creates a project with its first assignee and marks the task converted
func (r *GormAdminProjectRepository) CreateFromTask(project *models.AdminProject, assigneeUUID, taskID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task models.AdminTask
		if err := tx.Clauses(forUpdate).Where("id = ?", taskID).First(&task).Error; err != nil {
			return err
		}
		if task.Status == models.AdminTaskStatusConverted {
			return ErrTaskAlreadyConverted
		}

		project.ConvertedFrom = &task.ID
		if err := createWithAssignee(tx, project, assigneeUUID); err != nil {
			return err
		}

		if err := tx.Model(&task).Update("status", models.AdminTaskStatusConverted).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrConvertTask, err)
		}

		return nil
	})
}

func createWithAssignee(tx *gorm.DB, project *models.AdminProject, assigneeUUID string) error {
	if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrCreateProject, err)
	}

	assignee := models.AdminProjectAssignee{
		ProjectID: project.ID,
		UserUUID:  assigneeUUID,
		Position:  0,
	}
	if err := tx.Create(&assignee).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrCreateAssignee, err)
	}

	project.Assignees = []models.AdminProjectAssignee{assignee}
	return nil
}

// FindByID finds a project by ID with assignees preloaded in display order
func (r *GormAdminProjectRepository) FindByID(id string) (*models.AdminProject, error) {
	var project models.AdminProject
	if err := r.db.Preload("Assignees", orderByPosition).Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List lists projects matching the filter with assignees preloaded
func (r *GormAdminProjectRepository) List(filter AdminProjectFilter) ([]models.AdminProject, error) {
	var projects []models.AdminProject

	query := r.db.Model(&models.AdminProject{})

	if filter.AssigneeUUID != "" {
		assigneeSubQuery := r.db.Model(&models.AdminProjectAssignee{}).
			Select("1").
			Where("admin_project_assignees.project_id = admin_projects.id").
			Where("admin_project_assignees.user_uuid = ?", filter.AssigneeUUID)
		query = query.Where("EXISTS (?)", assigneeSubQuery)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("admin_projects.status IN ?", filter.Statuses)
	}

	if filter.OrderByCompletion {
		query = query.Order("admin_projects.completed_at DESC").Order("admin_projects.updated_at DESC")
	} else {
		query = query.Order("admin_projects.updated_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Preload("Assignees", orderByPosition).Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

// UpdateDetails saves the title and description of a project
func (r *GormAdminProjectRepository) UpdateDetails(project *models.AdminProject) error {
	return r.db.Model(project).
		Select("title", "description").
		Updates(map[string]interface{}{
			"title":       project.Title,
			"description": project.Description,
		}).Error
}

// AddAssignee appends a user to the end of the assignee list; existing assignees are left alone
func (r *GormAdminProjectRepository) AddAssignee(projectID, userUUID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxPosition int
		if err := tx.Model(&models.AdminProjectAssignee{}).
			Where("project_id = ?", projectID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&maxPosition).Error; err != nil {
			return err
		}

		assignee := models.AdminProjectAssignee{
			ProjectID: projectID,
			UserUUID:  userUUID,
			Position:  maxPosition + 1,
		}

		return tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&assignee).Error
	})
}

// Complete marks a project completed once it has reached full progress
func (r *GormAdminProjectRepository) Complete(id string) (*models.AdminProject, error) {
	var project models.AdminProject

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(forUpdate).Where("id = ?", id).First(&project).Error; err != nil {
			return err
		}
		if project.Status == models.AdminProjectStatusCompleted {
			return nil
		}
		if project.CurrentProgress != constants.MaxProgress {
			return ErrProjectIncomplete
		}

		now := tx.NowFunc()
		if err := tx.Model(&project).Updates(map[string]interface{}{
			"status":       models.AdminProjectStatusCompleted,
			"completed_at": now,
		}).Error; err != nil {
			return err
		}
		project.Status = models.AdminProjectStatusCompleted
		project.CompletedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// Delete deletes a project, its assignees and its progress updates
func (r *GormAdminProjectRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.AdminProjectUpdate{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.AdminProjectAssignee{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.AdminProject{}).Error
	})
}

// AppendUpdate stores a progress update and advances the parent project.
// The project row is locked so concurrent updates apply one after another.
func (r *GormAdminProjectRepository) AppendUpdate(update *models.AdminProjectUpdate) (*models.AdminProject, error) {
	var project models.AdminProject

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(forUpdate).Where("id = ?", update.ProjectID).First(&project).Error; err != nil {
			return err
		}
		if project.Status == models.AdminProjectStatusCompleted {
			return ErrProjectCompleted
		}

		if err := tx.Omit(clause.Associations).Create(update).Error; err != nil {
			return err
		}

		changes := map[string]interface{}{
			"current_progress": update.EstimatedProgress,
		}
		if project.Status == models.AdminProjectStatusReady {
			changes["status"] = models.AdminProjectStatusInProgress
		}
		if err := tx.Model(&project).Updates(changes).Error; err != nil {
			return err
		}

		project.CurrentProgress = update.EstimatedProgress
		if project.Status == models.AdminProjectStatusReady {
			project.Status = models.AdminProjectStatusInProgress
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &project, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// GormAdminProjectUpdateRepository is a GORM implementation of AdminProjectUpdateRepository
type GormAdminProjectUpdateRepository struct {
	db *gorm.DB
}

// NewAdminProjectUpdateRepository creates a new AdminProjectUpdateRepository
func NewAdminProjectUpdateRepository(db *gorm.DB) AdminProjectUpdateRepository {
	return &GormAdminProjectUpdateRepository{db: db}
}

// FindByID finds an update belonging to a project
func (r *GormAdminProjectUpdateRepository) FindByID(projectID, updateID string) (*models.AdminProjectUpdate, error) {
	var update models.AdminProjectUpdate
	if err := r.db.Where("id = ? AND project_id = ?", updateID, projectID).First(&update).Error; err != nil {
		return nil, err
	}
	return &update, nil
}

// ListByProject lists a project's updates, newest first, with authors preloaded
func (r *GormAdminProjectUpdateRepository) ListByProject(projectID string) ([]models.AdminProjectUpdate, error) {
	var updates []models.AdminProjectUpdate
	if err := r.db.Preload("Author").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}

// LatestByProjects returns the newest update of each project that has one
func (r *GormAdminProjectUpdateRepository) LatestByProjects(projectIDs []string) (map[string]models.AdminProjectUpdate, error) {
	latest := make(map[string]models.AdminProjectUpdate, len(projectIDs))
	if len(projectIDs) == 0 {
		return latest, nil
	}

	var updates []models.AdminProjectUpdate
	if err := r.db.Preload("Author").
		Where("project_id IN ?", projectIDs).
		Order("created_at DESC").
		Find(&updates).Error; err != nil {
		return nil, err
	}

	for _, u := range updates {
		if _, seen := latest[u.ProjectID]; !seen {
			latest[u.ProjectID] = u
		}
	}

	return latest, nil
}

// ListBetween lists up to limit updates created in [from, to), newest first,
// with authors and parent projects preloaded
func (r *GormAdminProjectUpdateRepository) ListBetween(from, to time.Time, limit int) ([]models.AdminProjectUpdate, error) {
	var updates []models.AdminProjectUpdate

	query := r.db.Preload("Author").
		Preload("Project").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}

// Delete soft deletes an update
func (r *GormAdminProjectUpdateRepository) Delete(updateID string) error {
	return r.db.Where("id = ?", updateID).Delete(&models.AdminProjectUpdate{}).Error
}
