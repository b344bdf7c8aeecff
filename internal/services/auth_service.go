package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/tasker-api/internal/auth"
	"github.com/yukikurage/tasker-api/internal/constants"
	"github.com/yukikurage/tasker-api/internal/models"
	"github.com/yukikurage/tasker-api/internal/repository"
	"gorm.io/gorm"
)

// Principal is the authenticated caller derived from a verified access token.
type Principal struct {
	UserID uint64
	Email  string
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  auth.IssuedToken
	RefreshToken auth.IssuedToken
	User         *models.User
}

// AuthService handles registration, login and the refresh session lifecycle.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	hasher      *auth.PasswordHasher
	issuer      *auth.TokenIssuer
	now         func() time.Time
}

// AuthOption configures an AuthService.
type AuthOption func(*AuthService)

// WithClock overrides the time source used for token issuance and expiry checks.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) {
		s.now = now
	}
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	hasher *auth.PasswordHasher,
	issuer *auth.TokenIssuer,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		issuer:      issuer,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)

	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(username) > constants.MaxUsernameLength {
		return nil, ErrUsernameTooLong
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index decides when two registrations race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials, revokes every existing session of the user and issues a new pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.hasher.Compare(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	if err := s.sessionRepo.DeleteAllForUser(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke sessions: %w", err)
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	session := &models.RefreshSession{
		Token:     pair.RefreshToken.Value,
		UserID:    user.ID,
		ExpiresAt: pair.RefreshToken.ExpiresAt,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return pair, nil
}

// Refresh consumes oldToken and returns a new token pair. A token can be used at most once.
func (s *AuthService) Refresh(ctx context.Context, oldToken string) (*TokenPair, error) {
	if oldToken == "" {
		return nil, ErrRefreshTokenInvalid
	}

	session, err := s.sessionRepo.FindByToken(ctx, oldToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	if session.Expired(s.now()) {
		if _, err := s.sessionRepo.DeleteByToken(ctx, oldToken); err != nil {
			return nil, fmt.Errorf("failed to delete expired session: %w", err)
		}
		return nil, ErrRefreshTokenExpired
	}

	claims, err := s.issuer.VerifyRefresh(oldToken)
	if err != nil {
		return nil, ErrRefreshTokenInvalid
	}
	if subject, err := claims.UserID(); err != nil || subject != session.UserID {
		return nil, ErrRefreshTokenInvalid
	}

	pair, err := s.issuePair(&session.User)
	if err != nil {
		return nil, err
	}

	next := &models.RefreshSession{
		Token:     pair.RefreshToken.Value,
		UserID:    session.UserID,
		ExpiresAt: pair.RefreshToken.ExpiresAt,
	}
	if err := s.sessionRepo.Rotate(ctx, oldToken, next); err != nil {
		if errors.Is(err, repository.ErrSessionConsumed) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	return pair, nil
}

// Logout deletes the session for token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if _, err := s.sessionRepo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Authenticate verifies an access token and returns its principal.
func (s *AuthService) Authenticate(accessToken string) (*Principal, error) {
	claims, err := s.issuer.VerifyAccess(accessToken)
	if err != nil {
		return nil, ErrAccessTokenInvalid
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrAccessTokenInvalid
	}

	return &Principal{UserID: userID, Email: claims.Email}, nil
}

func (s *AuthService) issuePair(user *models.User) (*TokenPair, error) {
	now := s.now()

	access, err := s.issuer.IssueAccess(user.ID, user.Email, now)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := s.issuer.IssueRefresh(user.ID, user.Email, now)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
