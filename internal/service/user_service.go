package service

import (
	"context"
	"fmt"

	"creditsea/internal/model"
	"creditsea/internal/policy"
	"creditsea/internal/repository"

	"github.com/google/uuid"
)

// UserService provides user administration for admins
type UserService interface {
	ListUsers(ctx context.Context, identity *policy.Identity) ([]model.User, error)
	DeleteUser(ctx context.Context, identity *policy.Identity, userID uuid.UUID) (*model.User, error)
	SetRole(ctx context.Context, identity *policy.Identity, userID uuid.UUID, role string) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) ListUsers(ctx context.Context, identity *policy.Identity) ([]model.User, error) {
	if err := policy.Authorize(identity, policy.ListUsers); err != nil {
		return nil, err
	}
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes the account and returns it. The user's loan applications are kept.
func (s *userService) DeleteUser(ctx context.Context, identity *policy.Identity, userID uuid.UUID) (*model.User, error) {
	if err := policy.Authorize(identity, policy.DeleteUser); err != nil {
		return nil, err
	}
	user, err := s.repo.Delete(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user in repo: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// SetRole changes a user's role. Admins may demote themselves.
func (s *userService) SetRole(ctx context.Context, identity *policy.Identity, userID uuid.UUID, role string) (*model.User, error) {
	if err := policy.Authorize(identity, policy.ChangeUserRole); err != nil {
		return nil, err
	}
	if !model.IsValidRole(role) {
		return nil, validationError("role must be one of user, verifier, admin")
	}
	user, err := s.repo.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to update user role in repo: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
