package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/tasker-api/internal/models"
)

func TestHistoryService_Trail(t *testing.T) {
	env := newTestEnv(t, envOptions{})
	ctx := context.Background()

	owner := env.register(t, "owner")
	helper := env.register(t, "helper")
	outsider := env.register(t, "outsider")
	project := env.project(t, owner, helper)
	task := env.task(t, owner, project)

	assigned, err := env.tasks.AssignTask(ctx, task.ID, owner.ID, helper.ID)
	require.NoError(t, err)
	_, err = env.history.LogAssignment(ctx, assigned, owner.ID)
	require.NoError(t, err)

	_, err = env.history.AddEntry(ctx, task.ID, helper.ID, "note", "picked up")
	require.NoError(t, err)

	entries, err := env.history.FindByTask(ctx, task.ID, helper.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, models.HistoryActionCreated, entries[0].Action)
	assert.Equal(t, "owner created task", entries[0].Detail)
	assert.Equal(t, models.HistoryActionAssigned, entries[1].Action)
	assert.Equal(t, "assigned to helper", entries[1].Detail)
	assert.Equal(t, "note", entries[2].Action)
	assert.Equal(t, "helper", entries[2].User.Username)

	_, err = env.history.FindByTask(ctx, task.ID, outsider.ID)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = env.history.FindByTask(ctx, 9999, owner.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestHistoryService_LogAssignmentNeedsAssignee(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	_, err := env.history.LogAssignment(context.Background(), &models.Task{ID: 1}, 1)
	require.Error(t, err)
}

func TestStatusChangeEntry(t *testing.T) {
	entry := StatusChangeEntry(7, models.TaskStatusReview, models.TaskStatusDone)
	assert.Equal(t, uint64(7), entry.UserID)
	assert.Equal(t, models.HistoryActionStatusChanged, entry.Action)
	assert.Equal(t, "status: REVIEW → DONE", entry.Detail)
}
