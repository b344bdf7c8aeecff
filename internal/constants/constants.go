package constants

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyPrincipal = "principal"
	ContextKeyProject   = "project"
	ContextKeyMember    = "project_member"
	ContextKeyTaskID    = "task_id"
)

// Session
const (
	SessionCookieName      = "tasker_session"
	SessionKeyRefreshToken = "refresh_token"
	SessionMaxAge          = 86400 * 7
)

// Validation
const (
	MinPasswordLength = 8
	MaxUsernameLength = 50
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AI
const (
	MaxAIGeneratedTasks = 20
)
