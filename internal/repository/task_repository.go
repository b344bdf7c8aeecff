package repository

import (
	"context"
	"fmt"

	"github.com/yukikurage/tasker-api/internal/database"
	"github.com/yukikurage/tasker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// CreateWithHistory creates a task and its creation entry
func (r *GormTaskRepository) CreateWithHistory(ctx context.Context, task *models.Task, entry *models.TaskHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return fmt.Errorf("create task: %w", err)
		}

		entry.TaskID = task.ID
		if err := tx.Omit(clause.Associations).Create(entry).Error; err != nil {
			return fmt.Errorf("create task history: %w", err)
		}

		return nil
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.WithContext(ctx)

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListInvolving retrieves tasks the user created or is assigned to
func (r *GormTaskRepository) ListInvolving(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Task{}).
		Scopes(database.InvolvingUser(filter.UserID), database.WithStatus(filter.Status))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	if err := query.
		Preload("Creator").
		Preload("Assignee").
		Order("tasks.created_at DESC").
		Order("tasks.id DESC").
		Scopes(database.Paginate(filter.Pagination)).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// UpdateStatusWithHistory writes the new status and appends entry
func (r *GormTaskRepository) UpdateStatusWithHistory(ctx context.Context, task *models.Task, entry *models.TaskHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(task).Omit(clause.Associations).Update("status", task.Status).Error; err != nil {
			return fmt.Errorf("update task status: %w", err)
		}

		entry.TaskID = task.ID
		if err := tx.Omit(clause.Associations).Create(entry).Error; err != nil {
			return fmt.Errorf("create task history: %w", err)
		}

		return nil
	})
}

// UpdateAssignee persists the task assignee
func (r *GormTaskRepository) UpdateAssignee(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Model(task).Omit(clause.Associations).Update("assignee_id", task.AssigneeID).Error
}

// Delete deletes a task together with its comments and history
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskHistory{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}
