package dto

import (
	"time"

	"github.com/yukikurage/tasker-api/internal/models"
)

// ProjectMemberDTO represents a member in a project
type ProjectMemberDTO struct {
	User     UserDTO            `json:"user"`
	Role     models.ProjectRole `json:"role"`
	JoinedAt time.Time          `json:"joined_at"`
}

// ProjectDTO represents a project with its members
type ProjectDTO struct {
	ID        uint64             `json:"id"`
	Name      string             `json:"name"`
	Owner     UserDTO            `json:"owner"`
	Members   []ProjectMemberDTO `json:"members"`
	CreatedAt time.Time          `json:"created_at"`
}

// ToProjectMemberDTO converts a member to DTO
func ToProjectMemberDTO(member models.ProjectMember) ProjectMemberDTO {
	return ProjectMemberDTO{
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

// ToProjectDTO converts a project with preloaded owner and members
func ToProjectDTO(project models.Project) ProjectDTO {
	members := make([]ProjectMemberDTO, len(project.Members))
	for i, member := range project.Members {
		members[i] = ToProjectMemberDTO(member)
	}

	return ProjectDTO{
		ID:        project.ID,
		Name:      project.Name,
		Owner:     ToUserDTO(project.Owner),
		Members:   members,
		CreatedAt: project.CreatedAt,
	}
}

// ToProjectDTOs converts a list of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = ToProjectDTO(p)
	}
	return out
}
