package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tasker-api/internal/middleware"
	"github.com/yukikurage/tasker-api/internal/services"
)

// Dependencies bundles everything the HTTP layer needs.
type Dependencies struct {
	AuthService    *services.AuthService
	UserService    *services.UserService
	ProjectService *services.ProjectService
	TaskService    *services.TaskService
	HistoryService *services.HistoryService
	CommentService *services.CommentService
	LoginLimiter   *middleware.IPRateLimiter
}

// RegisterRoutes mounts the health check and the /api/v1 surface on r.
// Session middleware must already be installed on r.
func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	authHandler := NewAuthHandler(deps.AuthService)
	userHandler := NewUserHandler(deps.UserService)
	projectHandler := NewProjectHandler(deps.ProjectService)
	taskHandler := NewTaskHandler(deps.TaskService, deps.HistoryService)
	commentHandler := NewCommentHandler(deps.CommentService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Tasker API is running",
		})
	})

	requireAuth := middleware.RequireAuth(deps.AuthService)

	api := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			if deps.LoginLimiter != nil {
				auth.POST("/login", middleware.RateLimit(deps.LoginLimiter), authHandler.Login)
			} else {
				auth.POST("/login", authHandler.Login)
			}
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("/me", userHandler.GetMe)
			users.PATCH("/me", userHandler.UpdateMe)
			users.PATCH("/me/password", userHandler.ChangePassword)
		}

		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			member := middleware.RequireProjectMember(deps.ProjectService)
			owner := middleware.RequireProjectOwner()

			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", member, projectHandler.GetProject)
			projects.DELETE("/:id", member, owner, projectHandler.DeleteProject)
			projects.POST("/:id/members", member, owner, projectHandler.AddMember)
			projects.DELETE("/:id/members/:user_id", member, owner, projectHandler.RemoveMember)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/generate", taskHandler.GenerateTasks)

			task := tasks.Group("/:id")
			task.Use(middleware.RequireTaskID())
			{
				task.GET("", taskHandler.GetTask)
				task.PATCH("", taskHandler.UpdateTask)
				task.DELETE("", taskHandler.DeleteTask)
				task.POST("/assign", taskHandler.AssignTask)
				task.GET("/history", taskHandler.ListHistory)

				task.GET("/comments", commentHandler.ListComments)
				task.POST("/comments", commentHandler.CreateComment)
				task.PATCH("/comments/:comment_id", commentHandler.UpdateComment)
				task.DELETE("/comments/:comment_id", commentHandler.DeleteComment)
				task.POST("/comments/:comment_id/replies", commentHandler.ReplyToComment)
			}
		}
	}
}
