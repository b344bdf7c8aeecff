package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/tasker-api/internal/auth"
	"github.com/yukikurage/tasker-api/internal/config"
	"github.com/yukikurage/tasker-api/internal/constants"
	"github.com/yukikurage/tasker-api/internal/database"
	"github.com/yukikurage/tasker-api/internal/dto"
	"github.com/yukikurage/tasker-api/internal/middleware"
	"github.com/yukikurage/tasker-api/internal/repository"
	"github.com/yukikurage/tasker-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	deps   Dependencies
}

type serverOptions struct {
	suggester  services.TaskSuggester
	loginLimit int
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	db, err := database.Connect(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:", DBLogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	issuer := auth.NewTokenIssuer("access-secret", 15*time.Minute, "refresh-secret", 24*time.Hour)

	projects := services.NewProjectService(repository.NewProjectRepository(db), userRepo)
	tasks := services.NewTaskService(repository.NewTaskRepository(db), userRepo, projects, nil, opts.suggester)

	deps := Dependencies{
		AuthService:    services.NewAuthService(userRepo, sessionRepo, hasher, issuer),
		UserService:    services.NewUserService(userRepo, hasher),
		ProjectService: projects,
		TaskService:    tasks,
		HistoryService: services.NewHistoryService(repository.NewHistoryRepository(db), repository.NewTaskRepository(db)),
		CommentService: services.NewCommentService(repository.NewCommentRepository(db), tasks),
	}
	if opts.loginLimit > 0 {
		deps.LoginLimiter = middleware.NewIPRateLimiter(opts.loginLimit, time.Minute)
	}

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	RegisterRoutes(r, deps)

	return &testServer{t: t, db: db, router: r, deps: deps}
}

type requestOptions struct {
	token   string
	cookies []*http.Cookie
}

func (s *testServer) do(method, path string, payload any, opts requestOptions) *httptest.ResponseRecorder {
	s.t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(s.t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	for _, c := range opts.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(username, email string) dto.ProfileDTO {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": username,
		"email":    email,
		"password": "supersecret",
	}, requestOptions{})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var profile dto.ProfileDTO
	decode(s.t, w, &profile)
	return profile
}

func (s *testServer) login(email string) (dto.TokenResponse, []*http.Cookie) {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    email,
		"password": "supersecret",
	}, requestOptions{})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var tokens dto.TokenResponse
	decode(s.t, w, &tokens)
	return tokens, w.Result().Cookies()
}

// signup registers and logs in a user, returning the access token.
func (s *testServer) signup(username string) (dto.ProfileDTO, string) {
	s.t.Helper()

	profile := s.register(username, username+"@example.com")
	tokens, _ := s.login(username + "@example.com")
	return profile, tokens.AccessToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Code string `json:"code"`
	}
	decode(t, w, &body)
	return body.Code
}
