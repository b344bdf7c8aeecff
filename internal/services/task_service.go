package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/tasker-api/internal/constants"
	"github.com/yukikurage/tasker-api/internal/models"
	"github.com/yukikurage/tasker-api/internal/repository"
	"github.com/yukikurage/tasker-api/internal/utils"
	"gorm.io/gorm"
)

// TaskSuggester extracts task suggestions from free text.
type TaskSuggester interface {
	GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error)
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	projects  *ProjectService
	policy    StatusPolicy
	suggester TaskSuggester
}

// NewTaskService creates a new TaskService. A nil policy accepts any transition and a
// nil suggester disables SuggestTasks.
func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	projects *ProjectService,
	policy StatusPolicy,
	suggester TaskSuggester,
) *TaskService {
	if policy == nil {
		policy = AnyTransitionPolicy{}
	}
	return &TaskService{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		projects:  projects,
		policy:    policy,
		suggester: suggester,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   uint64
}

// Create creates a DRAFT task in a project the creator belongs to and records it in the history.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput, creatorID uint64) (*models.Task, error) {
	project, err := s.projects.AssertMember(ctx, input.ProjectID, creatorID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	member, _ := project.MemberFor(creatorID)

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Status:      models.TaskStatusDraft,
		CreatorID:   creatorID,
		ProjectID:   project.ID,
	}

	if err := s.taskRepo.CreateWithHistory(ctx, task, CreatedEntry(&member.User)); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.find(ctx, task.ID)
}

// UpdateStatus writes a new status for a task the caller belongs to and can access,
// then records the change.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID uint64, status models.TaskStatus, userID uint64) (*models.Task, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	task, err := s.FindOneSecure(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	previous := task.Status
	if !s.policy.Allow(previous, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrTransitionNotAllowed, previous, status)
	}

	task.Status = status
	if err := s.taskRepo.UpdateStatusWithHistory(ctx, task, StatusChangeEntry(userID, previous, status)); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return s.find(ctx, task.ID)
}

// AssignTask sets the assignee of a task. Only the creator may assign, and the assignee
// must belong to the task's project. No history entry is written here.
func (s *TaskService) AssignTask(ctx context.Context, taskID, actorID, assigneeID uint64) (*models.Task, error) {
	task, err := s.find(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := AssertIsCreator(task, actorID); err != nil {
		return nil, err
	}

	project, err := s.projects.AssertMember(ctx, task.ProjectID, actorID)
	if err != nil {
		return nil, err
	}

	assignee, err := s.userRepo.FindByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := AssertMember(project, assignee.ID); err != nil {
		return nil, ErrAssigneeNotMember
	}

	task.AssigneeID = &assignee.ID
	task.Assignee = assignee
	if err := s.taskRepo.UpdateAssignee(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	return task, nil
}

// Remove deletes a task with its comments and history. Only the creator may delete.
func (s *TaskService) Remove(ctx context.Context, taskID, userID uint64) error {
	task, err := s.find(ctx, taskID)
	if err != nil {
		return err
	}

	if _, err := s.projects.AssertMember(ctx, task.ProjectID, userID); err != nil {
		return err
	}
	if err := AssertIsCreator(task, userID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// FindAllFiltered lists tasks the user created or is assigned to, newest first.
// An empty status matches every status.
func (s *TaskService) FindAllFiltered(ctx context.Context, status string, userID uint64, page utils.PaginationParams) ([]models.Task, int64, error) {
	if userID == 0 {
		return nil, 0, ErrUserIDRequired
	}

	filter := repository.TaskFilter{
		UserID:     userID,
		Pagination: page,
	}

	if status != "" {
		st := models.TaskStatus(status)
		if !st.IsValid() {
			return nil, 0, ErrInvalidStatus
		}
		filter.Status = &st
	}

	tasks, total, err := s.taskRepo.ListInvolving(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// FindOneSecure returns a task after checking project membership and creator/assignee access.
func (s *TaskService) FindOneSecure(ctx context.Context, taskID, userID uint64) (*models.Task, error) {
	task, err := s.find(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.projects.AssertMember(ctx, task.ProjectID, userID); err != nil {
		return nil, err
	}
	if err := AssertCanAccess(task, userID); err != nil {
		return nil, err
	}

	return task, nil
}

// FindOneWithAccess returns a task after checking creator/assignee access only.
func (s *TaskService) FindOneWithAccess(ctx context.Context, taskID, userID uint64) (*models.Task, error) {
	task, err := s.find(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := AssertCanAccess(task, userID); err != nil {
		return nil, err
	}

	return task, nil
}

// SuggestTasks asks the configured suggester for tasks found in text. Nothing is persisted.
func (s *TaskService) SuggestTasks(ctx context.Context, projectID, userID uint64, text string) ([]GeneratedTask, error) {
	if s.suggester == nil {
		return nil, ErrAIServiceNotConfigured
	}

	if _, err := s.projects.AssertMember(ctx, projectID, userID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	aiTasks, err := s.suggester.GenerateTasksFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("%w (max %d)", ErrAITooManyTasks, constants.MaxAIGeneratedTasks)
	}

	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	for _, aiTask := range aiTasks {
		aiTask.Title = strings.TrimSpace(aiTask.Title)
		if aiTask.Title == "" {
			continue
		}
		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}

func (s *TaskService) find(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID, "Creator", "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}
