package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/tasker-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds composite indexes the task listing and history queries rely on.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   any
		name    string
		columns string
	}{
		{&models.Task{}, "idx_tasks_creator_status", "creator_id, status"},
		{&models.Task{}, "idx_tasks_assignee_status", "assignee_id, status"},
		{&models.TaskHistory{}, "idx_task_histories_task_created", "task_id, created_at"},
		{&models.Comment{}, "idx_comments_task_created", "task_id, created_at"},
		{&models.ProjectMember{}, "idx_project_members_user", "user_id"},
		{&models.RefreshSession{}, "idx_refresh_sessions_expires_at", "expires_at"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, stmt.Schema.Table, idx.columns)
	}

	return nil
}
