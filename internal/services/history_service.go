package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/tasker-api/internal/models"
	"github.com/yukikurage/tasker-api/internal/repository"
	"gorm.io/gorm"
)

// HistoryService records and reads the audit trail of tasks.
type HistoryService struct {
	historyRepo repository.HistoryRepository
	taskRepo    repository.TaskRepository
}

func NewHistoryService(historyRepo repository.HistoryRepository, taskRepo repository.TaskRepository) *HistoryService {
	return &HistoryService{
		historyRepo: historyRepo,
		taskRepo:    taskRepo,
	}
}

// CreatedEntry builds the entry appended when actor creates a task.
func CreatedEntry(actor *models.User) *models.TaskHistory {
	return &models.TaskHistory{
		UserID: actor.ID,
		Action: models.HistoryActionCreated,
		Detail: fmt.Sprintf("%s created task", actor.Username),
	}
}

// StatusChangeEntry builds the entry appended on a status write.
func StatusChangeEntry(actorID uint64, from, to models.TaskStatus) *models.TaskHistory {
	return &models.TaskHistory{
		UserID: actorID,
		Action: models.HistoryActionStatusChanged,
		Detail: fmt.Sprintf("status: %s → %s", from, to),
	}
}

// AssignmentEntry builds the entry for an assignment to assignee.
func AssignmentEntry(actorID uint64, assignee *models.User) *models.TaskHistory {
	return &models.TaskHistory{
		UserID: actorID,
		Action: models.HistoryActionAssigned,
		Detail: fmt.Sprintf("assigned to %s", assignee.Username),
	}
}

// AddEntry appends a free-form entry to the history of taskID.
func (s *HistoryService) AddEntry(ctx context.Context, taskID, actorID uint64, action, detail string) (*models.TaskHistory, error) {
	entry := &models.TaskHistory{
		TaskID: taskID,
		UserID: actorID,
		Action: action,
		Detail: detail,
	}
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to add history entry: %w", err)
	}
	return entry, nil
}

// LogAssignment records that actorID assigned task to its current assignee.
// task must have Assignee loaded.
func (s *HistoryService) LogAssignment(ctx context.Context, task *models.Task, actorID uint64) (*models.TaskHistory, error) {
	if task.Assignee == nil {
		return nil, fmt.Errorf("task %d has no assignee loaded", task.ID)
	}

	entry := AssignmentEntry(actorID, task.Assignee)
	entry.TaskID = task.ID
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to log assignment: %w", err)
	}
	return entry, nil
}

// FindByTask lists the history of a task the caller can access, oldest first.
func (s *HistoryService) FindByTask(ctx context.Context, taskID, userID uint64) ([]models.TaskHistory, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := AssertCanAccess(task, userID); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}
