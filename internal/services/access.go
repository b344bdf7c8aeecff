package services

import "github.com/yukikurage/tasker-api/internal/models"

// AssertCanAccess allows the task creator and the assignee only.
func AssertCanAccess(task *models.Task, userID uint64) error {
	if task.CreatorID == userID {
		return nil
	}
	if task.AssigneeID != nil && *task.AssigneeID == userID {
		return nil
	}
	return ErrNoTaskAccess
}

// AssertIsCreator allows the task creator only.
func AssertIsCreator(task *models.Task, userID uint64) error {
	if task.CreatorID != userID {
		return ErrNotTaskCreator
	}
	return nil
}

// AssertMember requires userID in the loaded membership list of project.
func AssertMember(project *models.Project, userID uint64) error {
	if _, ok := project.MemberFor(userID); !ok {
		return ErrNotProjectMember
	}
	return nil
}
