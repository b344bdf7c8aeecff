package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/tasker-api/internal/models"
	"github.com/yukikurage/tasker-api/internal/utils"
)

// Paginate applies offset/limit from params. A zero limit leaves the query unbounded.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit <= 0 {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// InvolvingUser restricts tasks to those created by or assigned to userID.
func InvolvingUser(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(tasks.creator_id = ? OR tasks.assignee_id = ?)", userID, userID)
	}
}

// WithStatus restricts tasks to status when it is set.
func WithStatus(status *models.TaskStatus) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == nil {
			return db
		}
		return db.Where("tasks.status = ?", *status)
	}
}
