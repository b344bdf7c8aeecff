package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/tasker-api/internal/models"
	"github.com/yukikurage/tasker-api/internal/utils"
)

// ErrSessionConsumed is returned by Rotate when the old token no longer exists,
// either because it was already rotated, logged out or cleaned up.
var ErrSessionConsumed = errors.New("session repository: refresh session already consumed")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateProfile persists username and email
	UpdateProfile(ctx context.Context, user *models.User) error

	// UpdatePasswordHash replaces the stored password hash
	UpdatePasswordHash(ctx context.Context, userID uint64, hash string) error
}

// SessionRepository defines the interface for refresh session data access
type SessionRepository interface {
	// Create persists a new refresh session
	Create(ctx context.Context, session *models.RefreshSession) error

	// FindByToken finds a session by its token value
	FindByToken(ctx context.Context, token string) (*models.RefreshSession, error)

	// DeleteByToken removes a session, reporting how many rows were removed
	DeleteByToken(ctx context.Context, token string) (int64, error)

	// DeleteAllForUser removes every session of a user
	DeleteAllForUser(ctx context.Context, userID uint64) error

	// Rotate atomically replaces oldToken with next. Only one caller can rotate a given token.
	Rotate(ctx context.Context, oldToken string, next *models.RefreshSession) error
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// CreateWithOwner creates a project and its owner membership in one transaction
	CreateWithOwner(ctx context.Context, project *models.Project, owner *models.ProjectMember) error

	// FindByID finds a project by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error)

	// ListForUser lists the projects userID is a member of, with members loaded
	ListForUser(ctx context.Context, userID uint64) ([]models.Project, error)

	// Delete deletes a project and all related data
	Delete(ctx context.Context, id uint64) error

	// AddMember adds a member to a project
	AddMember(ctx context.Context, member *models.ProjectMember) error

	// RemoveMember removes a member from a project
	RemoveMember(ctx context.Context, projectID, userID uint64) (int64, error)

	// FindMember finds a specific project member
	FindMember(ctx context.Context, projectID, userID uint64) (*models.ProjectMember, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserID     uint64
	Status     *models.TaskStatus
	Pagination utils.PaginationParams
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// CreateWithHistory creates a task and its first history entry in one transaction
	CreateWithHistory(ctx context.Context, task *models.Task, entry *models.TaskHistory) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error)

	// ListInvolving lists tasks created by or assigned to filter.UserID
	ListInvolving(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// UpdateStatusWithHistory writes the task status and appends entry in one transaction
	UpdateStatusWithHistory(ctx context.Context, task *models.Task, entry *models.TaskHistory) error

	// UpdateAssignee persists the task assignee
	UpdateAssignee(ctx context.Context, task *models.Task) error

	// Delete deletes a task with its comments and history
	Delete(ctx context.Context, id uint64) error
}

// HistoryRepository defines the interface for task history data access
type HistoryRepository interface {
	// Create appends a history entry
	Create(ctx context.Context, entry *models.TaskHistory) error

	// ListByTask lists entries of a task, oldest first
	ListByTask(ctx context.Context, taskID uint64) ([]models.TaskHistory, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a comment or reply
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID finds a comment by ID with its author
	FindByID(ctx context.Context, id uint64) (*models.Comment, error)

	// UpdateContent persists content and edited_at
	UpdateContent(ctx context.Context, comment *models.Comment) error

	// Delete deletes a comment and its replies
	Delete(ctx context.Context, id uint64) error

	// ListByTask lists comments of a task, oldest first
	ListByTask(ctx context.Context, taskID uint64) ([]models.Comment, error)
}
