package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/tasker-api/internal/auth"
	"github.com/yukikurage/tasker-api/internal/config"
	"github.com/yukikurage/tasker-api/internal/database"
	"github.com/yukikurage/tasker-api/internal/models"
	"github.com/yukikurage/tasker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testAccessTTL  = 15 * time.Minute
	testRefreshTTL = 7 * 24 * time.Hour
	testPassword   = "correct-horse-battery"
)

type testEnv struct {
	db       *gorm.DB
	sessions repository.SessionRepository
	auth     *AuthService
	users    *UserService
	projects *ProjectService
	tasks    *TaskService
	history  *HistoryService
	comments *CommentService
}

type envOptions struct {
	policy    StatusPolicy
	suggester TaskSuggester
	authOpts  []AuthOption
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:", DBLogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()

	db := newTestDB(t)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	issuer := auth.NewTokenIssuer("access-secret", testAccessTTL, "refresh-secret", testRefreshTTL)

	projects := NewProjectService(projectRepo, userRepo)
	tasks := NewTaskService(taskRepo, userRepo, projects, opts.policy, opts.suggester)

	return &testEnv{
		db:       db,
		sessions: sessionRepo,
		auth:     NewAuthService(userRepo, sessionRepo, hasher, issuer, opts.authOpts...),
		users:    NewUserService(userRepo, hasher),
		projects: projects,
		tasks:    tasks,
		history:  NewHistoryService(historyRepo, taskRepo),
		comments: NewCommentService(commentRepo, tasks),
	}
}

func (e *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := e.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) project(t *testing.T, owner *models.User, members ...*models.User) *models.Project {
	t.Helper()

	ctx := context.Background()
	project, err := e.projects.CreateProject(ctx, owner.Username+"'s project", owner.ID)
	require.NoError(t, err)

	for _, m := range members {
		_, err := e.projects.AddMember(ctx, project.ID, owner.ID, m.ID, models.RoleMember)
		require.NoError(t, err)
	}
	return project
}

func (e *testEnv) task(t *testing.T, creator *models.User, project *models.Project) *models.Task {
	t.Helper()

	task, err := e.tasks.Create(context.Background(), CreateTaskInput{
		Title:     "write tests",
		ProjectID: project.ID,
	}, creator.ID)
	require.NoError(t, err)
	return task
}

func (e *testEnv) sessionCount(t *testing.T, userID uint64) int64 {
	t.Helper()

	var n int64
	require.NoError(t, e.db.Model(&models.RefreshSession{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}
