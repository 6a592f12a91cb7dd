package service

import (
	"context"
	"testing"

	"creditsea/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_ListUsers(t *testing.T) {
	repo := new(mockUserRepo)
	users := []model.User{{ID: uuid.New(), Email: "a@x.com", Role: model.RoleUser}}
	repo.On("FindAll", mock.Anything).Return(users, nil)

	got, err := NewUserService(repo).ListUsers(context.Background(), identityWithRole(model.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, users, got)
}

func TestUserService_RequiresAdmin(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)
	ctx := context.Background()
	target := uuid.New()

	for _, role := range []string{model.RoleUser, model.RoleVerifier} {
		caller := identityWithRole(role)
		_, err := svc.ListUsers(ctx, caller)
		assert.ErrorIs(t, err, ErrForbidden)
		_, err = svc.DeleteUser(ctx, caller, target)
		assert.ErrorIs(t, err, ErrForbidden)
		_, err = svc.SetRole(ctx, caller, target, model.RoleAdmin)
		assert.ErrorIs(t, err, ErrForbidden)
	}

	_, err := svc.ListUsers(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	assert.Empty(t, repo.Calls)
}

func TestUserService_DeleteUser(t *testing.T) {
	repo := new(mockUserRepo)
	target := uuid.New()
	repo.On("Delete", mock.Anything, target).Return(&model.User{ID: target}, nil).Once()
	repo.On("Delete", mock.Anything, target).Return(nil, nil)

	svc := NewUserService(repo)
	admin := identityWithRole(model.RoleAdmin)

	deleted, err := svc.DeleteUser(context.Background(), admin, target)
	require.NoError(t, err)
	assert.Equal(t, target, deleted.ID)

	_, err = svc.DeleteUser(context.Background(), admin, target)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_SetRole(t *testing.T) {
	repo := new(mockUserRepo)
	target := uuid.New()
	repo.On("UpdateRole", mock.Anything, target, model.RoleVerifier).Return(&model.User{ID: target, Role: model.RoleVerifier}, nil)

	user, err := NewUserService(repo).SetRole(context.Background(), identityWithRole(model.RoleAdmin), target, model.RoleVerifier)
	require.NoError(t, err)
	assert.Equal(t, model.RoleVerifier, user.Role)
}

func TestUserService_SetRole_InvalidRole(t *testing.T) {
	repo := new(mockUserRepo)
	_, err := NewUserService(repo).SetRole(context.Background(), identityWithRole(model.RoleAdmin), uuid.New(), "superuser")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, repo.Calls)
}

func TestUserService_SetRole_NotFound(t *testing.T) {
	repo := new(mockUserRepo)
	target := uuid.New()
	repo.On("UpdateRole", mock.Anything, target, model.RoleUser).Return(nil, nil)

	_, err := NewUserService(repo).SetRole(context.Background(), identityWithRole(model.RoleAdmin), target, model.RoleUser)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_AdminMayDemoteSelf(t *testing.T) {
	repo := new(mockUserRepo)
	admin := identityWithRole(model.RoleAdmin)
	repo.On("UpdateRole", mock.Anything, admin.UserID, model.RoleUser).Return(&model.User{ID: admin.UserID, Role: model.RoleUser}, nil)

	user, err := NewUserService(repo).SetRole(context.Background(), admin, admin.UserID, model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
}
