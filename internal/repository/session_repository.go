package repository

import (
	"context"
	"fmt"

	"github.com/yukikurage/tasker-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionRepository is a GORM implementation of SessionRepository
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &GormSessionRepository{db: db}
}

// Create persists a new refresh session
func (r *GormSessionRepository) Create(ctx context.Context, session *models.RefreshSession) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(session).Error
}

// FindByToken finds a session by its token value, loading its user
func (r *GormSessionRepository) FindByToken(ctx context.Context, token string) (*models.RefreshSession, error) {
	var session models.RefreshSession
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("token = ?", token).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteByToken removes a session
func (r *GormSessionRepository) DeleteByToken(ctx context.Context, token string) (int64, error) {
	res := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.RefreshSession{})
	return res.RowsAffected, res.Error
}

// DeleteAllForUser removes every session of a user
func (r *GormSessionRepository) DeleteAllForUser(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshSession{}).Error
}

// Rotate deletes oldToken and inserts next in one transaction. The delete has to
// remove exactly one row; a concurrent rotation of the same token removes nothing
// and gets ErrSessionConsumed.
func (r *GormSessionRepository) Rotate(ctx context.Context, oldToken string, next *models.RefreshSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("token = ?", oldToken).Delete(&models.RefreshSession{})
		if res.Error != nil {
			return fmt.Errorf("delete refresh session: %w", res.Error)
		}
		if res.RowsAffected != 1 {
			return ErrSessionConsumed
		}

		if err := tx.Omit(clause.Associations).Create(next).Error; err != nil {
			return fmt.Errorf("create refresh session: %w", err)
		}
		return nil
	})
}
