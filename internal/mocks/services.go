package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/velorent/velorent-auth/internal/model"
	"github.com/velorent/velorent-auth/internal/service"
)

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Login(ctx context.Context, email, password string, code *int) (service.LoginResult, error) {
	args := m.Called(ctx, email, password, code)
	return args.Get(0).(service.LoginResult), args.Error(1)
}

func (m *AuthService) Refresh(ctx context.Context, presented string) (service.LoginResult, error) {
	args := m.Called(ctx, presented)
	return args.Get(0).(service.LoginResult), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, access string) error {
	args := m.Called(ctx, access)
	return args.Error(0)
}

func (m *AuthService) Authenticate(ctx context.Context, access string) (model.SessionClaims, error) {
	args := m.Called(ctx, access)
	return args.Get(0).(model.SessionClaims), args.Error(1)
}

type AccountService struct {
	mock.Mock
}

func (m *AccountService) SignupClient(ctx context.Context, params service.SignupParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *AccountService) RegisterEmployee(ctx context.Context, params service.SignupParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *AccountService) ListEmployees(ctx context.Context) ([]service.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]service.Employee), args.Error(1)
}

func (m *AccountService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AccountService) ChangePhone(ctx context.Context, userID uuid.UUID, phone string) error {
	args := m.Called(ctx, userID, phone)
	return args.Error(0)
}

type PasswordResetService struct {
	mock.Mock
}

func (m *PasswordResetService) Request(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *PasswordResetService) Check(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *PasswordResetService) Change(ctx context.Context, code, newPassword string) error {
	args := m.Called(ctx, code, newPassword)
	return args.Error(0)
}
