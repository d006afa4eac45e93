package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/velorent/velorent-auth/internal/model"
)

type UserInfoStore struct {
	mock.Mock
}

func (m *UserInfoStore) GetByUserID(ctx context.Context, userID uuid.UUID) (model.UserInfo, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.UserInfo), args.Error(1)
}

func (m *UserInfoStore) UpdatePhone(ctx context.Context, userID uuid.UUID, phone string) error {
	args := m.Called(ctx, userID, phone)
	return args.Error(0)
}

type TwoFactorCodeStore struct {
	mock.Mock
}

func (m *TwoFactorCodeStore) Replace(ctx context.Context, code model.TwoFactorCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *TwoFactorCodeStore) GetByUserID(ctx context.Context, userID uuid.UUID) (model.TwoFactorCode, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.TwoFactorCode), args.Error(1)
}

type PasswordResetCodeStore struct {
	mock.Mock
}

func (m *PasswordResetCodeStore) Replace(ctx context.Context, code model.PasswordResetCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *PasswordResetCodeStore) GetByCode(ctx context.Context, code string) (model.PasswordResetCode, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(model.PasswordResetCode), args.Error(1)
}

func (m *PasswordResetCodeStore) Consume(ctx context.Context, userID uuid.UUID, passwordHash, salt string) error {
	args := m.Called(ctx, userID, passwordHash, salt)
	return args.Error(0)
}
