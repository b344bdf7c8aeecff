package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tasker-api/internal/auth"
	"github.com/yukikurage/tasker-api/internal/config"
	"github.com/yukikurage/tasker-api/internal/constants"
	"github.com/yukikurage/tasker-api/internal/database"
	"github.com/yukikurage/tasker-api/internal/handlers"
	"github.com/yukikurage/tasker-api/internal/middleware"
	"github.com/yukikurage/tasker-api/internal/repository"
	"github.com/yukikurage/tasker-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	policy, err := services.NewStatusPolicy(cfg.TaskStatusPolicy)
	if err != nil {
		log.Fatalf("Invalid task status policy: %v", err)
	}

	// Initialize AI service
	var suggester services.TaskSuggester
	if cfg.OpenAIAPIKey != "" {
		suggester = services.NewAIService(cfg.OpenAIAPIKey)
	}

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	issuer := auth.NewTokenIssuer(cfg.AccessSecret, cfg.AccessTTL, cfg.RefreshSecret, cfg.RefreshTTL)

	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, projectService, policy, suggester)

	deps := handlers.Dependencies{
		AuthService:    services.NewAuthService(userRepo, sessionRepo, hasher, issuer),
		UserService:    services.NewUserService(userRepo, hasher),
		ProjectService: projectService,
		TaskService:    taskService,
		HistoryService: services.NewHistoryService(historyRepo, taskRepo),
		CommentService: services.NewCommentService(commentRepo, taskService),
		LoginLimiter:   middleware.NewIPRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow),
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(), // true in production (HTTPS), false in development
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	handlers.RegisterRoutes(r, deps)

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newSessionStore picks the session backend from SESSION_STORE.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.SessionStore != "redis" {
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	return redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
}
