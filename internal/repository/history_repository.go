package repository

import (
	"context"

	"github.com/yukikurage/tasker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormHistoryRepository is a GORM implementation of HistoryRepository
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Create appends a history entry
func (r *GormHistoryRepository) Create(ctx context.Context, entry *models.TaskHistory) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error
}

// ListByTask lists entries of a task, oldest first
func (r *GormHistoryRepository) ListByTask(ctx context.Context, taskID uint64) ([]models.TaskHistory, error) {
	var entries []models.TaskHistory
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
