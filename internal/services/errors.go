package services

import "errors"

// Error kinds. Every error a service returns on purpose wraps exactly one of these,
// so the HTTP layer only has to map kinds to status codes.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("service unavailable")
)

type serviceError struct {
	kind error
	msg  string
}

func (e *serviceError) Error() string { return e.msg }

func (e *serviceError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &serviceError{kind: kind, msg: msg}
}

var (
	ErrEmailTaken          = newError(ErrConflict, "email already registered")
	ErrInvalidCredentials  = newError(ErrUnauthorized, "invalid email or password")
	ErrPasswordTooShort    = newError(ErrBadRequest, "password too short")
	ErrUsernameRequired    = newError(ErrBadRequest, "username is required")
	ErrUsernameTooLong     = newError(ErrBadRequest, "username too long")
	ErrEmailRequired       = newError(ErrBadRequest, "email is required")
	ErrUserNotFound        = newError(ErrNotFound, "user not found")
	ErrRefreshTokenInvalid = newError(ErrUnauthorized, "refresh token invalid")
	ErrRefreshTokenExpired = newError(ErrUnauthorized, "refresh token expired")
	ErrAccessTokenInvalid  = newError(ErrUnauthorized, "access token invalid")
	ErrWrongPassword       = newError(ErrUnauthorized, "current password is incorrect")
	ErrSamePassword        = newError(ErrBadRequest, "new password must differ from the current one")

	ErrProjectNotFound      = newError(ErrNotFound, "project not found")
	ErrProjectNameRequired  = newError(ErrBadRequest, "project name is required")
	ErrNotProjectMember     = newError(ErrForbidden, "user is not a member of the project")
	ErrNotProjectOwner      = newError(ErrForbidden, "only the project owner can perform this action")
	ErrInvalidMemberRole    = newError(ErrBadRequest, "role must be MEMBER or VIEWER")
	ErrAlreadyProjectMember = newError(ErrConflict, "user is already a member of the project")
	ErrMemberNotFound       = newError(ErrNotFound, "project member not found")
	ErrCannotRemoveOwner    = newError(ErrBadRequest, "the project owner cannot be removed")

	ErrTaskNotFound           = newError(ErrNotFound, "task not found")
	ErrTitleRequired          = newError(ErrBadRequest, "title is required")
	ErrUserIDRequired         = newError(ErrBadRequest, "user id is required")
	ErrInvalidStatus          = newError(ErrBadRequest, "invalid task status")
	ErrTransitionNotAllowed   = newError(ErrBadRequest, "status transition not allowed")
	ErrNoTaskAccess           = newError(ErrForbidden, "only the task creator or assignee can access this task")
	ErrNotTaskCreator         = newError(ErrForbidden, "only the task creator can perform this action")
	ErrAssigneeNotMember      = newError(ErrBadRequest, "assignee is not a member of the project")
	ErrAIServiceNotConfigured = newError(ErrUnavailable, "AI service is not configured")
	ErrAINoTasksGenerated     = newError(ErrBadRequest, "AI did not generate any tasks")
	ErrAINoValidTasks         = newError(ErrBadRequest, "no valid tasks could be created from AI output")
	ErrAITooManyTasks         = newError(ErrBadRequest, "AI generated too many tasks")
	ErrTextRequired           = newError(ErrBadRequest, "text is required")

	ErrCommentNotFound       = newError(ErrNotFound, "comment not found")
	ErrContentRequired       = newError(ErrBadRequest, "content is required")
	ErrCommentTaskMismatch   = newError(ErrBadRequest, "comment does not belong to this task")
	ErrParentCommentMismatch = newError(ErrBadRequest, "parent comment not found on this task")
	ErrNotCommentAuthor      = newError(ErrForbidden, "only the author can modify this comment")
)
