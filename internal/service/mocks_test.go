package service

import (
	"context"
	"time"

	"creditsea/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*model.User, error) {
	args := m.Called(ctx, id, role)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

type mockLoanRepo struct{ mock.Mock }

func (m *mockLoanRepo) Create(ctx context.Context, loan *model.LoanApplication) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *mockLoanRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.LoanApplication, error) {
	args := m.Called(ctx, id)
	loan, _ := args.Get(0).(*model.LoanApplication)
	return loan, args.Error(1)
}

func (m *mockLoanRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.LoanApplication, error) {
	args := m.Called(ctx, userID)
	loans, _ := args.Get(0).([]model.LoanApplication)
	return loans, args.Error(1)
}

func (m *mockLoanRepo) FindAll(ctx context.Context) ([]model.LoanApplication, error) {
	args := m.Called(ctx)
	loans, _ := args.Get(0).([]model.LoanApplication)
	return loans, args.Error(1)
}

func (m *mockLoanRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.LoanApplication, error) {
	args := m.Called(ctx, id, status)
	loan, _ := args.Get(0).(*model.LoanApplication)
	return loan, args.Error(1)
}

func (m *mockLoanRepo) Stats(ctx context.Context) (*model.LoanStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*model.LoanStats)
	return stats, args.Error(1)
}

type mockSessionRepo struct{ mock.Mock }

func (m *mockSessionRepo) Create(ctx context.Context, session *model.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*model.Session)
	return session, args.Error(1)
}

func (m *mockSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSessionRepo) DeleteExpiredForUser(ctx context.Context, userID uuid.UUID, now time.Time) error {
	return m.Called(ctx, userID, now).Error(0)
}
