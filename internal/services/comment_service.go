package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/tasker-api/internal/models"
	"github.com/yukikurage/tasker-api/internal/repository"
	"gorm.io/gorm"
)

// CommentService manages threaded comments on tasks.
type CommentService struct {
	commentRepo repository.CommentRepository
	tasks       *TaskService
}

func NewCommentService(commentRepo repository.CommentRepository, tasks *TaskService) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		tasks:       tasks,
	}
}

// Create adds a top-level comment to a task the author can access.
func (s *CommentService) Create(ctx context.Context, taskID, userID uint64, content string) (*models.Comment, error) {
	return s.create(ctx, taskID, nil, userID, content)
}

// Reply adds a reply to parentID, which must belong to the same task.
func (s *CommentService) Reply(ctx context.Context, taskID, parentID, userID uint64, content string) (*models.Comment, error) {
	parent, err := s.commentRepo.FindByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentCommentMismatch
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	if parent.TaskID != taskID {
		return nil, ErrParentCommentMismatch
	}

	return s.create(ctx, taskID, &parent.ID, userID, content)
}

// Update edits the content of the caller's own comment.
func (s *CommentService) Update(ctx context.Context, taskID, commentID, userID uint64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	comment, err := s.ownComment(ctx, taskID, commentID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment.Content = content
	comment.EditedAt = &now

	if err := s.commentRepo.UpdateContent(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// Remove deletes the caller's own comment together with its replies.
func (s *CommentService) Remove(ctx context.Context, taskID, commentID, userID uint64) error {
	comment, err := s.ownComment(ctx, taskID, commentID, userID)
	if err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// FindByTask lists the comments of a task the caller can access, oldest first.
func (s *CommentService) FindByTask(ctx context.Context, taskID, userID uint64) ([]models.Comment, error) {
	if _, err := s.tasks.FindOneWithAccess(ctx, taskID, userID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *CommentService) create(ctx context.Context, taskID uint64, parentID *uint64, userID uint64, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}

	if _, err := s.tasks.FindOneWithAccess(ctx, taskID, userID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TaskID:   taskID,
		AuthorID: userID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.commentRepo.FindByID(ctx, comment.ID)
}

func (s *CommentService) ownComment(ctx context.Context, taskID, commentID, userID uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if comment.TaskID != taskID {
		return nil, ErrCommentTaskMismatch
	}
	if comment.AuthorID != userID {
		return nil, ErrNotCommentAuthor
	}
	return comment, nil
}
