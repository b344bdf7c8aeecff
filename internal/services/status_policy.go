package services

import (
	"fmt"

	"github.com/yukikurage/tasker-api/internal/models"
)

// StatusPolicy decides whether a task may move from one status to another.
type StatusPolicy interface {
	Allow(from, to models.TaskStatus) bool
}

// AnyTransitionPolicy accepts every valid status, including the current one.
type AnyTransitionPolicy struct{}

func (AnyTransitionPolicy) Allow(_, to models.TaskStatus) bool {
	return to.IsValid()
}

// ForwardOnlyPolicy accepts DRAFT -> IN_PROGRESS -> REVIEW -> DONE, one step at a time.
type ForwardOnlyPolicy struct{}

func (ForwardOnlyPolicy) Allow(from, to models.TaskStatus) bool {
	for i := 0; i+1 < len(models.TaskStatuses); i++ {
		if models.TaskStatuses[i] == from {
			return models.TaskStatuses[i+1] == to
		}
	}
	return false
}

// NewStatusPolicy returns the policy registered under name ("any" or "forward").
func NewStatusPolicy(name string) (StatusPolicy, error) {
	switch name {
	case "", "any":
		return AnyTransitionPolicy{}, nil
	case "forward":
		return ForwardOnlyPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown task status policy %q", name)
	}
}
