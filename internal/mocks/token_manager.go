package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/velorent/velorent-auth/internal/model"
)

type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) GenerateAccessToken(userID uuid.UUID, role model.Role) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) GenerateRefreshToken(userID uuid.UUID, role model.Role) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) ParseAccessToken(token string) (model.SessionClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.SessionClaims), args.Error(1)
}

func (m *TokenManager) ParseRefreshToken(token string) (model.SessionClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.SessionClaims), args.Error(1)
}

type Mailer struct {
	mock.Mock
}

func (m *Mailer) Send(ctx context.Context, recipient, subject, body string) error {
	args := m.Called(ctx, recipient, subject, body)
	return args.Error(0)
}
