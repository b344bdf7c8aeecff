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

// ProjectService provides business logic for projects and their memberships.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProject creates a project and makes ownerID its owner member.
func (s *ProjectService) CreateProject(ctx context.Context, name string, ownerID uint64) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	project := &models.Project{
		Name:    name,
		OwnerID: ownerID,
	}
	owner := &models.ProjectMember{
		UserID:   ownerID,
		Role:     models.RoleOwner,
		JoinedAt: time.Now(),
	}

	if err := s.projectRepo.CreateWithOwner(ctx, project, owner); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.load(ctx, project.ID)
}

// ListForUser returns the projects the user belongs to.
func (s *ProjectService) ListForUser(ctx context.Context, userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project visible to userID.
func (s *ProjectService) GetProject(ctx context.Context, projectID, userID uint64) (*models.Project, error) {
	return s.AssertMember(ctx, projectID, userID)
}

// AssertMember loads the project with its members and fails unless userID is one of them.
// Membership is always read from the store.
func (s *ProjectService) AssertMember(ctx context.Context, projectID, userID uint64) (*models.Project, error) {
	project, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := AssertMember(project, userID); err != nil {
		return nil, err
	}
	return project, nil
}

// AddMember adds userID to the project with role. Only the owner may add members.
func (s *ProjectService) AddMember(ctx context.Context, projectID, actorID, userID uint64, role models.ProjectRole) (*models.ProjectMember, error) {
	if role != models.RoleMember && role != models.RoleViewer {
		return nil, ErrInvalidMemberRole
	}

	project, err := s.assertOwner(ctx, projectID, actorID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, ok := project.MemberFor(userID); ok {
		return nil, ErrAlreadyProjectMember
	}

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
	if err := s.projectRepo.AddMember(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyProjectMember
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	member.User = *user

	return member, nil
}

// RemoveMember removes userID from the project. The owner cannot be removed.
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, actorID, userID uint64) error {
	project, err := s.assertOwner(ctx, projectID, actorID)
	if err != nil {
		return err
	}

	if userID == project.OwnerID {
		return ErrCannotRemoveOwner
	}

	removed, err := s.projectRepo.RemoveMember(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if removed == 0 {
		return ErrMemberNotFound
	}

	return nil
}

// DeleteProject deletes the project with its tasks and memberships.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID, actorID uint64) error {
	if _, err := s.assertOwner(ctx, projectID, actorID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *ProjectService) assertOwner(ctx context.Context, projectID, actorID uint64) (*models.Project, error) {
	project, err := s.AssertMember(ctx, projectID, actorID)
	if err != nil {
		return nil, err
	}

	member, _ := project.MemberFor(actorID)
	if member.Role != models.RoleOwner {
		return nil, ErrNotProjectOwner
	}
	return project, nil
}

func (s *ProjectService) load(ctx context.Context, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID, "Owner", "Members", "Members.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}
