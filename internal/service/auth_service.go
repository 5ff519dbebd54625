package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/erp-service/internal/auth"
	"github.com/spec-kit/erp-service/internal/config"
	"github.com/spec-kit/erp-service/internal/domain"
	"github.com/spec-kit/erp-service/internal/events"
	"github.com/spec-kit/erp-service/internal/repository"
	apperrors "github.com/spec-kit/erp-service/pkg/util"
)

// AuthService coordinates login and user account management.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login authenticates by exact email match and password digest verification.
// A missing account and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// CreateUser stores a new account. A requested role outside the fixed set is
// coerced to the unassigned role, not rejected.
func (s *AuthService) CreateUser(ctx context.Context, email, password, requestedRole string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already in use", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.NormalizeRole(requestedRole),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserCreated,
		EntityID:  user.ID,
		Timestamp: time.Now(),
		Payload:   events.UserCreatedPayload{Email: user.Email, Role: user.Role},
	})
	return user, nil
}

// UpdateUser replaces email and role; the password digest is replaced only
// when a non-empty new password is supplied.
func (s *AuthService) UpdateUser(ctx context.Context, id, email, requestedRole, newPassword string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, err
	}

	user.Email = email
	user.Role = domain.NormalizeRole(requestedRole)
	if newPassword != "" {
		hash, err := auth.HashPassword(newPassword, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account physically. Orders referencing it keep a
// dangling userId resolved as absent at read time.
func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// ListUsers returns all accounts; callers must not expose password digests.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Roles returns the fixed role enum.
func (s *AuthService) Roles() []domain.Role {
	return domain.ValidRoles()
}

// EnsureDefaultAdmin creates the bootstrap admin account when absent.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, cfg config.AdminConfig, logger *zap.Logger) error {
	if !cfg.Seed {
		return nil
	}

	if _, err := s.users.GetByEmail(ctx, cfg.Email); err == nil {
		logger.Info("default admin user already exists")
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Password, s.bcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		ID:           uuid.NewString(),
		Email:        cfg.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("default admin user created", zap.String("email", cfg.Email))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
