package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes behind the dashboard and feed queries.
// Existing indexes are left alone.
func AddIndexes(db *gorm.DB, logger *slog.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Assignee dashboards filter by user then status
		{"admin_project_assignees", "idx_assignees_user_project", "user_uuid, project_id"},
		{"admin_projects", "idx_projects_status_updated", "status, updated_at"},
		{"admin_projects", "idx_projects_status_completed", "status, completed_at"},

		// Last update lookups and the project update list
		{"admin_project_updates", "idx_updates_project_created", "project_id, created_at"},

		// Open task backlog
		{"admin_tasks", "idx_admin_tasks_status_created", "status, created_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			logger.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.Info("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}
