package models

import (
	"time"
)

const (
	HistoryActionCreated       = "task-created"
	HistoryActionStatusChanged = "status_changed"
	HistoryActionAssigned      = "assigned"
)

// TaskHistory is an append-only audit record. It is never updated and only
// removed together with its task.
type TaskHistory struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	TaskID    uint64    `gorm:"not null;index" json:"task_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	Action    string    `gorm:"type:varchar(50);not null" json:"action"`
	Detail    string    `gorm:"type:text" json:"detail"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
