package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"creditsea/internal/metrics"
	"creditsea/internal/model"
	"creditsea/internal/policy"
	"creditsea/internal/repository"
	"creditsea/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const minPasswordLength = 6

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// AuthService registers users and manages their login sessions
type AuthService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	ResolveIdentity(ctx context.Context, token string) (*policy.Identity, error)
}

// AuthOptions configures an AuthService
type AuthOptions struct {
	SessionTTL time.Duration
	// AdminEmail, when set, is registered with the admin role.
	AdminEmail string
	Logger     logrus.FieldLogger
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtUtil     *utils.JWTUtil
	ttl         time.Duration
	adminEmail  string
	log         logrus.FieldLogger
	now         func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, jwtUtil *utils.JWTUtil, opts AuthOptions) AuthService {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtUtil:     jwtUtil,
		ttl:         ttl,
		adminEmail:  model.NormalizeEmail(opts.AdminEmail),
		log:         log,
		now:         time.Now,
	}
}

// Register creates a new user account with the user role
func (s *authService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, validationError("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, validationError("password must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return nil, validationError("password must be at most %d bytes", maxPasswordBytes)
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := model.RoleUser
	if s.adminEmail != "" && email == s.adminEmail {
		role = model.RoleAdmin
		s.log.WithField("email", email).Info("registering bootstrap admin account")
	}

	now := s.now()
	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and opens a session, returning the signed session token
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		utils.BurnPasswordCheck(password)
		metrics.LoginAttempt(false)
		return nil, "", ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		metrics.LoginAttempt(false)
		return nil, "", ErrInvalidCredentials
	}

	now := s.now()
	if err := s.sessionRepo.DeleteExpiredForUser(ctx, user.ID, now); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("failed to prune expired sessions")
	}

	session := &model.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.jwtUtil.GenerateToken(session.ID, user.ID, session.ExpiresAt)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	metrics.LoginAttempt(true)
	return user, token, nil
}

// Logout destroys the session behind token. Unknown or invalid tokens are ignored.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.jwtUtil.ValidateToken(token)
	if err != nil {
		return nil
	}
	sessionID, err := claims.SessionID()
	if err != nil {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ResolveIdentity maps a session token to the authenticated identity. It
// returns (nil, nil) for anything that is not a live session of an existing
// user; errors are reserved for store failures.
func (s *authService) ResolveIdentity(ctx context.Context, token string) (*policy.Identity, error) {
	if token == "" {
		return nil, nil
	}
	claims, err := s.jwtUtil.ValidateToken(token)
	if err != nil {
		return nil, nil
	}
	sessionID, err := claims.SessionID()
	if err != nil {
		return nil, nil
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, nil
	}
	if session.Expired(s.now()) {
		if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
			s.log.WithError(err).WithField("session_id", session.ID).Warn("failed to delete expired session")
		}
		return nil, nil
	}
	if subject, err := claims.UserID(); err != nil || subject != session.UserID {
		return nil, nil
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if user == nil {
		if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
			s.log.WithError(err).WithField("session_id", session.ID).Warn("failed to delete orphaned session")
		}
		return nil, nil
	}

	return &policy.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}
