package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tasker-api/internal/constants"
	apierrors "github.com/yukikurage/tasker-api/internal/errors"
)

// RequireTaskID parses the :id route parameter of task routes.
// Access rules differ per route and are enforced by TaskService.
func RequireTaskID() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || taskID == 0 {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTaskID, taskID)
		c.Next()
	}
}

// GetTaskID retrieves the task ID set by RequireTaskID
func GetTaskID(c *gin.Context) uint64 {
	return c.GetUint64(constants.ContextKeyTaskID)
}
