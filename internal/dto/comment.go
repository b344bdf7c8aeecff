package dto

import (
	"time"

	"github.com/yukikurage/tasker-api/internal/models"
)

type CommentDTO struct {
	ID        uint64     `json:"id"`
	TaskID    uint64     `json:"task_id"`
	ParentID  *uint64    `json:"parent_id"`
	Content   string     `json:"content"`
	Author    UserDTO    `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at"`
}

type HistoryEntryDTO struct {
	ID        uint64    `json:"id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	User      UserDTO   `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		ParentID:  comment.ParentID,
		Content:   comment.Content,
		Author:    ToUserDTO(comment.Author),
		CreatedAt: comment.CreatedAt,
		EditedAt:  comment.EditedAt,
	}
}

func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	out := make([]CommentDTO, len(comments))
	for i, c := range comments {
		out[i] = ToCommentDTO(c)
	}
	return out
}

func ToHistoryDTOs(entries []models.TaskHistory) []HistoryEntryDTO {
	out := make([]HistoryEntryDTO, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntryDTO{
			ID:        e.ID,
			Action:    e.Action,
			Detail:    e.Detail,
			User:      ToUserDTO(e.User),
			CreatedAt: e.CreatedAt,
		}
	}
	return out
}
