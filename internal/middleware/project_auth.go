package middleware

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tasker-api/internal/constants"
	apierrors "github.com/yukikurage/tasker-api/internal/errors"
	"github.com/yukikurage/tasker-api/internal/models"
	"github.com/yukikurage/tasker-api/internal/services"
)

// ProjectGate loads a project with its members for a user.
type ProjectGate interface {
	AssertMember(ctx context.Context, projectID, userID uint64) (*models.Project, error)
}

// RequireProjectMember checks if the user is a member of the project in :id
func RequireProjectMember(gate ProjectGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		project, err := gate.AssertMember(c.Request.Context(), projectID, userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				apierrors.NotFound(c, "Project not found")
			case errors.Is(err, services.ErrForbidden):
				apierrors.Forbidden(c, err.Error())
			default:
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		member, _ := project.MemberFor(userID)

		// Store project and membership in context
		c.Set(constants.ContextKeyProject, project)
		c.Set(constants.ContextKeyMember, *member)
		c.Next()
	}
}

// RequireProjectOwner checks if the user owns the project loaded by RequireProjectMember
func RequireProjectOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		memberValue, exists := c.Get(constants.ContextKeyMember)
		if !exists {
			apierrors.Forbidden(c, "Project access required")
			c.Abort()
			return
		}

		member, ok := memberValue.(models.ProjectMember)
		if !ok {
			apierrors.InternalError(c, "Invalid project member data")
			c.Abort()
			return
		}

		if member.Role != models.RoleOwner {
			apierrors.Forbidden(c, "Only the project owner can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetProject retrieves the project loaded by RequireProjectMember
func GetProject(c *gin.Context) (*models.Project, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return nil, false
	}
	project, ok := value.(*models.Project)
	return project, ok
}
