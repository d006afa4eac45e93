package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/velorent/velorent-auth/internal/mocks"
	"github.com/velorent/velorent-auth/internal/model"
	"github.com/velorent/velorent-auth/internal/service"
	"github.com/velorent/velorent-auth/internal/testutil"
)

func newReset(users *mocks.UserStore, codes *mocks.PasswordResetCodeStore, mailer *mocks.Mailer) *service.PasswordReset {
	return service.NewPasswordReset(users, codes, mailer, "https://app.velorent.test", time.Hour, testutil.MakeNoopLogger())
}

func TestPasswordReset_Request(t *testing.T) {
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Email: "ada@example.com", Name: "Ada"}

	users := &mocks.UserStore{}
	codes := &mocks.PasswordResetCodeStore{}
	mailer := &mocks.Mailer{}

	users.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
	codes.On("Replace", ctx, mock.MatchedBy(func(c model.PasswordResetCode) bool {
		return c.UserID == user.ID && len(c.Code) == 64
	})).Return(nil).Once()
	mailer.On("Send", ctx, user.Email, mock.Anything, mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "https://app.velorent.test/changepassword?code=")
	})).Return(nil).Once()

	svc := newReset(users, codes, mailer)

	require.NoError(t, svc.Request(ctx, user.Email))
	mailer.AssertExpectations(t)
}

func TestPasswordReset_Request_UnknownEmail(t *testing.T) {
	ctx := context.Background()

	users := &mocks.UserStore{}
	users.On("GetByEmail", ctx, "nobody@example.com").Return(model.User{}, model.ErrNotFound).Once()

	svc := newReset(users, &mocks.PasswordResetCodeStore{}, &mocks.Mailer{})

	err := svc.Request(ctx, "nobody@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestPasswordReset_Check(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name      string
		stored    model.PasswordResetCode
		storedErr error
		want      bool
	}{
		{
			name:   "fresh code is valid",
			stored: model.PasswordResetCode{UserID: userID, Code: "abc", CreatedAt: time.Now().Add(-5 * time.Minute)},
			want:   true,
		},
		{
			name:   "expired code is invalid",
			stored: model.PasswordResetCode{UserID: userID, Code: "abc", CreatedAt: time.Now().Add(-2 * time.Hour)},
			want:   false,
		},
		{
			name:      "unknown code is invalid",
			storedErr: model.ErrNotFound,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes := &mocks.PasswordResetCodeStore{}
			codes.On("GetByCode", ctx, "abc").Return(tt.stored, tt.storedErr).Once()

			svc := newReset(&mocks.UserStore{}, codes, &mocks.Mailer{})

			valid, err := svc.Check(ctx, "abc")
			require.NoError(t, err)
			assert.Equal(t, tt.want, valid)
		})
	}
}

func TestPasswordReset_Change(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	codes := &mocks.PasswordResetCodeStore{}
	codes.On("GetByCode", ctx, "abc").Return(model.PasswordResetCode{
		UserID: userID, Code: "abc", CreatedAt: time.Now().Add(-5 * time.Minute),
	}, nil).Once()
	codes.On("Consume", ctx, userID, mock.AnythingOfType("string"), mock.MatchedBy(func(salt string) bool {
		return len(salt) == 16
	})).Return(nil).Once()

	svc := newReset(&mocks.UserStore{}, codes, &mocks.Mailer{})

	require.NoError(t, svc.Change(ctx, "abc", "brand-new-password"))
	codes.AssertExpectations(t)
}

func TestPasswordReset_Change_WeakPassword(t *testing.T) {
	codes := &mocks.PasswordResetCodeStore{}
	svc := newReset(&mocks.UserStore{}, codes, &mocks.Mailer{})

	err := svc.Change(context.Background(), "abc", "short")
	require.ErrorIs(t, err, model.ErrWeakPassword)
	codes.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything)
}

func TestPasswordReset_Change_UnknownCode(t *testing.T) {
	ctx := context.Background()

	codes := &mocks.PasswordResetCodeStore{}
	codes.On("GetByCode", ctx, "gone").Return(model.PasswordResetCode{}, model.ErrNotFound).Once()

	svc := newReset(&mocks.UserStore{}, codes, &mocks.Mailer{})

	err := svc.Change(ctx, "gone", "brand-new-password")
	require.ErrorIs(t, err, model.ErrInvalidCode)
}

func TestPasswordReset_Change_ExpiredCode(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	codes := &mocks.PasswordResetCodeStore{}
	codes.On("GetByCode", ctx, "stale").Return(model.PasswordResetCode{
		UserID: userID, Code: "stale", CreatedAt: time.Now().Add(-2 * time.Hour),
	}, nil).Once()

	svc := newReset(&mocks.UserStore{}, codes, &mocks.Mailer{})

	err := svc.Change(ctx, "stale", "brand-new-password")
	require.ErrorIs(t, err, model.ErrCodeExpired)
	codes.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
