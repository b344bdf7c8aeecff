package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusDraft      TaskStatus = "DRAFT"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusReview     TaskStatus = "REVIEW"
	TaskStatusDone       TaskStatus = "DONE"
)

// TaskStatuses lists every status in workflow order.
var TaskStatuses = []TaskStatus{
	TaskStatusDraft,
	TaskStatusInProgress,
	TaskStatusReview,
	TaskStatusDone,
}

// IsValid reports whether s is a known status.
func (s TaskStatus) IsValid() bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	CreatorID   uint64     `gorm:"not null;index" json:"creator_id"`
	AssigneeID  *uint64    `gorm:"index" json:"assignee_id"`
	ProjectID   uint64     `gorm:"not null;index" json:"project_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Creator  User    `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Assignee *User   `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Project  Project `gorm:"foreignKey:ProjectID" json:"-"`
}
